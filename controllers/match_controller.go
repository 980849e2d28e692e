package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"pookiey_server/middleware"
	"pookiey_server/models"
	"pookiey_server/services"
)

// Matcher is the slice of MatchService the controller needs.
type Matcher interface {
	GetMatchesForUser(ctx context.Context, userID string) ([]models.MatchWithProfile, error)
	GetAdmirers(ctx context.Context, userID string) ([]models.AdmirerView, error)
	Unmatch(ctx context.Context, byUser, withUser string) (*models.Match, error)
}

type MatchController struct {
	Matches Matcher
}

func NewMatchController(service Matcher) *MatchController {
	return &MatchController{Matches: service}
}

// GetMatches - active matches for the caller
func (c *MatchController) GetMatches(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)

	matches, err := c.Matches.GetMatchesForUser(r.Context(), userID)
	if err != nil {
		log.Printf("fetching matches for %s failed: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch matches")
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

// GetAdmirers - users who liked the caller and were not acted on yet
func (c *MatchController) GetAdmirers(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)

	admirers, err := c.Matches.GetAdmirers(r.Context(), userID)
	if err != nil {
		log.Printf("fetching admirers for %s failed: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch admirers")
		return
	}
	writeJSON(w, http.StatusOK, admirers)
}

// HandleUnmatch - transition the caller's match with another user to unmatched
func (c *MatchController) HandleUnmatch(w http.ResponseWriter, r *http.Request) {
	var request struct {
		WithUser string `json:"withUser"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if request.WithUser == "" {
		writeError(w, http.StatusBadRequest, "withUser is required")
		return
	}

	userID := middleware.UserID(r)
	match, err := c.Matches.Unmatch(r.Context(), userID, request.WithUser)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSelfInteraction):
			writeError(w, http.StatusBadRequest, "You cannot unmatch yourself")
		case errors.Is(err, services.ErrMatchNotFound):
			writeError(w, http.StatusNotFound, "Match not found")
		default:
			log.Printf("unmatch by %s failed: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "Failed to unmatch")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "match": match})
}
