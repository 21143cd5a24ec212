package route

import (
	"database/sql"
	"net/http"

	"user-auth-service/src/config"
	"user-auth-service/src/handler"
	"user-auth-service/src/logger"
	"user-auth-service/src/middleware"
	"user-auth-service/src/models"

	"github.com/go-chi/chi/v5"
)

type Routes struct {
	Config     *config.Config
	Handler    *handler.Handler
	Middleware *middleware.Middleware
	Logger     *logger.Logger
}

func NewRoutes(cfg *config.Config, db *sql.DB, log *logger.Logger) *Routes {
	return &Routes{
		Config:     cfg,
		Handler:    handler.NewHandler(cfg, db, log),
		Middleware: middleware.NewMiddleware(cfg, db, log),
		Logger:     log,
	}
}

func (r *Routes) Routes() http.Handler {
	mux := chi.NewRouter()

	// Setup global middleware
	r.Middleware.SetupMiddleware(mux)

	mux.Route("/api", func(api chi.Router) {
		api.Get("/healthchecker", r.Handler.HealthCheckHandler)
		r.authRoutes(api)
		r.userRoutes(api)
	})

	// Set after mounting so every sub-router answers with the error envelope too
	mux.NotFound(r.Handler.NotFoundHandler)
	mux.MethodNotAllowed(r.Handler.MethodNotAllowedHandler)
	r.Logger.Info("✅ Routes endpoints initialized successfully")

	return mux
}

func (r *Routes) authRoutes(api chi.Router) {
	api.Route("/auth", func(auth chi.Router) {
		auth.Post("/register", r.Handler.RegisterUserHandler)
		auth.Post("/login", r.Handler.LoginUserHandler)
		auth.With(r.Middleware.Auth).Post("/logout", r.Handler.LogoutUserHandler)
	})
}

func (r *Routes) userRoutes(api chi.Router) {
	api.Route("/users", func(users chi.Router) {
		users.Use(r.Middleware.Auth)
		users.With(r.Middleware.RoleCheck(models.RoleAdmin, models.RoleUser)).Get("/me", r.Handler.GetMeHandler)
		users.With(r.Middleware.RoleCheck(models.RoleAdmin)).Get("/", r.Handler.GetUsersHandler)
	})
}
