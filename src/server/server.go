package server

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"user-auth-service/src/config"
	"user-auth-service/src/logger"
	"user-auth-service/src/route"
)

const shutdownTimeout = 5 * time.Second

// StartServer serves the API on the configured port until SIGINT or SIGTERM.
func StartServer(cfg *config.Config, db *sql.DB, log *logger.Logger) {
	r := route.NewRoutes(cfg, db, log)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("✅ HTTP server setup completed successfully")

	go func() {
		log.Info(fmt.Sprintf("✅ authentication service is running on port: %d", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Server failed to start: %v", err)
		}
	}()

	GracefulShutdown(srv, shutdownTimeout, log)
}
