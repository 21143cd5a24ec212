package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"user-auth-service/src/config"
	apperrors "user-auth-service/src/error"
	"user-auth-service/src/logger"
	"user-auth-service/src/middleware"
	"user-auth-service/src/models"
	"user-auth-service/src/repository"
	"user-auth-service/src/utils"
)

type Handler struct {
	App    *config.Config
	DB     *sql.DB
	Logger *logger.Logger
}

// NewHandler creates a new Handler instance
func NewHandler(app *config.Config, db *sql.DB, log *logger.Logger) *Handler {
	log.Info("✅ Handler initialized successfully")
	return &Handler{App: app, DB: db, Logger: log}
}

func (h *Handler) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.Response{
		Status:  "success",
		Message: "Authentication service is up",
	})
}

func (h *Handler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()

	var body models.RegisterUserDto
	if err := decodeAndValidate(w, r, &body); err != nil {
		apperrors.WriteError(w, err)
		return
	}

	hashed, err := utils.HashPassword(body.Password)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}

	_, err = repository.SaveUser(r.Context(), h.DB, body.Name, body.Email, hashed)
	if errors.Is(err, repository.ErrEmailTaken) {
		apperrors.WriteError(w, apperrors.FromReason(apperrors.EmailExist))
		return
	}
	if err != nil {
		h.Logger.Error("RegisterUser: " + err.Error())
		apperrors.WriteError(w, apperrors.FromReason(apperrors.ServerError))
		return
	}

	writeJSON(w, http.StatusCreated, models.Response{
		Status:  "success",
		Message: "Registration successful!",
	})
	h.Logger.Info("✅ User registered: " + body.Email + " Duration: " + time.Since(startTime).String())
}

func (h *Handler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	var body models.LoginUserDto
	if err := decodeAndValidate(w, r, &body); err != nil {
		apperrors.WriteError(w, err)
		return
	}

	user, err := repository.GetUserByEmail(r.Context(), h.DB, body.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		h.Logger.Warn("Login attempt failed: user not found with email " + body.Email)
		apperrors.WriteError(w, apperrors.FromReason(apperrors.WrongCredentials))
		return
	}
	if err != nil {
		h.Logger.Error("LoginUser: " + err.Error())
		apperrors.WriteError(w, apperrors.FromReason(apperrors.ServerError))
		return
	}

	match, err := utils.ComparePassword(body.Password, user.Password)
	if err != nil {
		h.Logger.Error("LoginUser: password check for " + body.Email + ": " + err.Error())
		apperrors.WriteError(w, err)
		return
	}
	if !match {
		apperrors.WriteError(w, apperrors.FromReason(apperrors.WrongCredentials))
		return
	}

	token, err := utils.CreateToken(user.ID.String(), h.App.JWTSecret, h.App.JWTMaxAge)
	if err != nil {
		h.Logger.Error("LoginUser: create token: " + err.Error())
		apperrors.WriteError(w, apperrors.FromReason(apperrors.ServerError))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.App.JWTMaxAge),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, models.UserLoginResponseDto{Status: "success", Token: token})
	h.Logger.Info("✅ User logged in: " + body.Email)
}

func (h *Handler) LogoutUserHandler(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, models.Response{Status: "success", Message: "You have been logged out"})
}

func (h *Handler) GetMeHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		apperrors.WriteError(w, apperrors.FromReason(apperrors.UserNotAuthenticated))
		return
	}

	writeJSON(w, http.StatusOK, models.UserResponseDto{
		Status: "success",
		Data:   models.UserData{User: models.FilterUser(user)},
	})
}

func (h *Handler) GetUsersHandler(w http.ResponseWriter, r *http.Request) {
	page, limit, err := parsePagination(r)
	if err != nil {
		apperrors.WriteError(w, err)
		return
	}

	users, err := repository.GetUsers(r.Context(), h.DB, page, limit)
	if err != nil {
		h.Logger.Error("GetUsers: " + err.Error())
		apperrors.WriteError(w, apperrors.FromReason(apperrors.ServerError))
		return
	}

	count, err := repository.GetUserCount(r.Context(), h.DB)
	if err != nil {
		h.Logger.Error("GetUsers: " + err.Error())
		apperrors.WriteError(w, apperrors.FromReason(apperrors.ServerError))
		return
	}

	writeJSON(w, http.StatusOK, models.UserListResponseDto{
		Status:  "success",
		Users:   models.FilterUsers(users),
		Results: count,
	})
}

func (h *Handler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	apperrors.WriteError(w, apperrors.New("Route "+r.URL.Path+" not found", http.StatusNotFound))
}

func (h *Handler) MethodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	apperrors.WriteError(w, apperrors.New("Method "+r.Method+" not allowed", http.StatusMethodNotAllowed))
}
