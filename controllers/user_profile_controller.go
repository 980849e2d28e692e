package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"pookiey_server/models"
	"pookiey_server/services"

	"github.com/gorilla/mux"
)

// ProfileStore is the slice of UserProfileService the controller needs.
type ProfileStore interface {
	AddUserProfile(ctx context.Context, profile models.UserProfile) (*models.UserProfile, error)
	GetUserProfile(ctx context.Context, userID string) (*models.UserProfile, error)
	UpdateLocation(ctx context.Context, userID string, latitude, longitude float64, city string) (*models.UserProfile, error)
	UpdatePreferences(ctx context.Context, userID string, prefs models.Preferences) (*models.UserProfile, error)
}

type UserProfileController struct {
	Profiles ProfileStore
}

func NewUserProfileController(service ProfileStore) *UserProfileController {
	return &UserProfileController{Profiles: service}
}

// AddUserProfileHandler handles adding a new user profile
func (c *UserProfileController) AddUserProfileHandler(w http.ResponseWriter, r *http.Request) {
	var profile models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	created, err := c.Profiles.AddUserProfile(r.Context(), profile)
	if err != nil {
		log.Printf("creating profile failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to create profile")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// GetUserProfileHandler handles fetching a user profile by ID
func (c *UserProfileController) GetUserProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	profile, err := c.Profiles.GetUserProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("fetching profile %s failed: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// UpdateLocationHandler stores new coordinates for a user
func (c *UserProfileController) UpdateLocationHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var request struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		City      string  `json:"city"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	profile, err := c.Profiles.UpdateLocation(r.Context(), userID, request.Latitude, request.Longitude, request.City)
	if err != nil {
		log.Printf("updating location for %s failed: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "Failed to update location")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// UpdatePreferencesHandler replaces the discovery preferences for a user
func (c *UserProfileController) UpdatePreferencesHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	var prefs models.Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	profile, err := c.Profiles.UpdatePreferences(r.Context(), userID, prefs)
	if err != nil {
		log.Printf("updating preferences for %s failed: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "Failed to update preferences")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
