package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"pookiey_server/config"
	"pookiey_server/controllers"
	"pookiey_server/routes"
	"pookiey_server/services"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	cfg := config.LoadConfigOrPanic()

	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient(cfg.AWSConfig.Region)
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	// Initialize Services
	quotaService := &services.QuotaService{Config: cfg.QuotaConfig}
	interactionService := services.NewInteractionService(dynamoService, quotaService, services.LogMatchNotifier{})
	discoveryService := services.NewDiscoveryService(dynamoService, cfg.DiscoveryConfig)
	matchService := services.NewMatchService(dynamoService)
	userProfileService := services.NewUserProfileService(dynamoService)

	// Initialize the router
	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to Pookiey")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods("GET")

	// Register routes
	routes.RegisterInteractionRoutes(r, controllers.NewInteractionController(interactionService))
	routes.RegisterDiscoveryRoutes(r, controllers.NewDiscoveryController(discoveryService))
	routes.RegisterMatchRoutes(r, controllers.NewMatchController(matchService))
	routes.RegisterUserProfileRoutes(r, controllers.NewUserProfileController(userProfileService))

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-User-Id"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	addr := fmt.Sprintf(":%d", cfg.AppConfig.Port)
	log.Printf("Starting server on %s...\n", addr)
	log.Fatal(http.ListenAndServe(addr, corsHandler))
}
