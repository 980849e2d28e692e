package routes

import (
	"pookiey_server/controllers"
	"pookiey_server/middleware"

	"github.com/gorilla/mux"
)

// RegisterMatchRoutes sets up routes for match-related operations under /api/matches
func RegisterMatchRoutes(r *mux.Router, matchController *controllers.MatchController) {
	matchRouter := r.PathPrefix("/api/matches").Subrouter()
	matchRouter.Use(middleware.RequireUser)

	matchRouter.HandleFunc("", matchController.GetMatches).Methods("GET")
	matchRouter.HandleFunc("/admirers", matchController.GetAdmirers).Methods("GET")
	matchRouter.HandleFunc("/unmatch", matchController.HandleUnmatch).Methods("POST")
}
