package main

import (
	"log"
	"net/http"

	"impound_manager/internal/config"
	"impound_manager/internal/controllers"
	"impound_manager/internal/logger"
	"impound_manager/internal/middleware"
	"impound_manager/internal/routes"
)

func main() {
	// Structured logging to a rotating file
	logger.Setup()

	// Connect to the database and migrate the schema
	config.InitDB()
	config.SeedAdmin()

	// Wire the lifecycle, settings and notification services
	controllers.Setup()

	// Setup Gin router (recovery + request logging wired inside)
	r := routes.SetupRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	log.Println("Impound management API running at :8080")
	log.Fatal(http.ListenAndServe("0.0.0.0:8080", handler))
}
