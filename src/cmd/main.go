package main

import (
	"context"
	"os"

	"user-auth-service/src/config"
	"user-auth-service/src/database"
	"user-auth-service/src/logger"
	"user-auth-service/src/server"
)

func main() {
	log := logger.NewLogger(logger.ParseLevel(os.Getenv("LOG_LEVEL")))

	// Load .env before reading configuration
	config.LoadDotEnv(log)

	// Exits the process when required settings are missing or malformed
	cfg := config.NewConfig(log)

	db, err := database.ConnectToDB(context.Background(), cfg, log)
	if err != nil {
		log.Fatalf("❌ DATABASE FATAL ERROR: Failed to connect to the database: %v", err)
	}
	defer db.Close()

	server.StartServer(cfg, db, log)
}
