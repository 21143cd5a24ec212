package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"user-auth-service/src/logger"
)

// GracefulShutdown blocks until SIGINT or SIGTERM, then shuts srv down within timeout
func GracefulShutdown(srv *http.Server, timeout time.Duration, log *logger.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	log.Info("✅ Graceful shutdown monitoring initialized successfully")

	<-stop
	log.Info("🔄 Shutdown signal received. Cleaning up...")

	_ = shutdown(srv, timeout, log)
}

func shutdown(srv *http.Server, timeout time.Duration, log *logger.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("⚠️ Graceful shutdown failed: " + err.Error())
		return err
	}
	log.Info("✅ Server shut down gracefully")
	return nil
}
