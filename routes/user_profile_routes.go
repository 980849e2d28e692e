package routes

import (
	"pookiey_server/controllers"

	"github.com/gorilla/mux"
)

// RegisterUserProfileRoutes sets up routes for profile operations under /api/profiles
func RegisterUserProfileRoutes(r *mux.Router, userProfileController *controllers.UserProfileController) {
	profileRouter := r.PathPrefix("/api/profiles").Subrouter()

	profileRouter.HandleFunc("", userProfileController.AddUserProfileHandler).Methods("POST")
	profileRouter.HandleFunc("/{userId}", userProfileController.GetUserProfileHandler).Methods("GET")
	profileRouter.HandleFunc("/{userId}/location", userProfileController.UpdateLocationHandler).Methods("PATCH")
	profileRouter.HandleFunc("/{userId}/preferences", userProfileController.UpdatePreferencesHandler).Methods("PATCH")
}
