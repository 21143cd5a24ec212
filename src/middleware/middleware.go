package middleware

import (
	"database/sql"
	"net/http"
	"os"
	"strings"
	"time"

	"user-auth-service/src/config"
	apperrors "user-auth-service/src/error"
	"user-auth-service/src/logger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

const defaultCORSOrigin = "http://localhost:3000"

type Middleware struct {
	Config *config.Config
	DB     *sql.DB
	Logger *logger.Logger
}

// NewMiddleware creates a new instance of Middleware
func NewMiddleware(cfg *config.Config, db *sql.DB, log *logger.Logger) *Middleware {
	return &Middleware{
		Config: cfg,
		DB:     db,
		Logger: log,
	}
}

// RateLimiterMiddleware limits each IP to 100 requests per minute
func (m *Middleware) RateLimiterMiddleware() func(http.Handler) http.Handler {
	return httprate.Limit(
		100,
		1*time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			apperrors.WriteError(w, apperrors.New("Too many requests, please try again later", http.StatusTooManyRequests))
		}),
	)
}

// SetupMiddleware sets up all global middleware
func (m *Middleware) SetupMiddleware(mux *chi.Mux) {
	mux.Use(m.CORSMiddleware())
	mux.Use(middleware.Heartbeat("/ping"))
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.Logger)
	mux.Use(m.RateLimiterMiddleware())

	m.Logger.Info("✅ Middleware initialized successfully")
}

// CORSMiddleware returns a cors.Handler middleware
func (m *Middleware) CORSMiddleware() func(http.Handler) http.Handler {
	allowedOrigins := parseOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"))

	m.Logger.Info("✅ CORS middleware initialized with allowed origins: " + strings.Join(allowedOrigins, ", "))

	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

func parseOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{defaultCORSOrigin}
	}
	return origins
}
