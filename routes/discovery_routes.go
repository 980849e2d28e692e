package routes

import (
	"pookiey_server/controllers"
	"pookiey_server/middleware"

	"github.com/gorilla/mux"
)

// RegisterDiscoveryRoutes sets up the discovery feed under /api/discovery
func RegisterDiscoveryRoutes(r *mux.Router, discoveryController *controllers.DiscoveryController) {
	discoveryRouter := r.PathPrefix("/api/discovery").Subrouter()
	discoveryRouter.Use(middleware.RequireUser)

	discoveryRouter.HandleFunc("", discoveryController.HandleDiscover).Methods("GET")
}
