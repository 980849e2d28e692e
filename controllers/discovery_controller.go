package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"pookiey_server/middleware"
	"pookiey_server/models"
	"pookiey_server/services"
)

// Discoverer is the slice of DiscoveryService the controller needs.
type Discoverer interface {
	Discover(ctx context.Context, userID string) ([]models.CandidateView, error)
}

type DiscoveryController struct {
	Discovery Discoverer
}

func NewDiscoveryController(service Discoverer) *DiscoveryController {
	return &DiscoveryController{Discovery: service}
}

// HandleDiscover - the ranked candidate feed for the caller.
func (c *DiscoveryController) HandleDiscover(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)

	candidates, err := c.Discovery.Discover(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLocationRequired):
			writeError(w, http.StatusPreconditionFailed, "Location required before discovery")
		case errors.Is(err, services.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "User not found")
		default:
			log.Printf("discovery for %s failed: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "Failed to fetch candidates")
		}
		return
	}

	writeJSON(w, http.StatusOK, candidates)
}
