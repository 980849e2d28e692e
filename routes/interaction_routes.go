package routes

import (
	"pookiey_server/controllers"
	"pookiey_server/middleware"

	"github.com/gorilla/mux"
)

// RegisterInteractionRoutes sets up routes for interaction-related operations under /api/interactions
func RegisterInteractionRoutes(r *mux.Router, interactionController *controllers.InteractionController) {
	interactionRouter := r.PathPrefix("/api/interactions").Subrouter()
	interactionRouter.Use(middleware.RequireUser)

	interactionRouter.HandleFunc("", interactionController.HandleInteract).Methods("POST")
}
