package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	apperrors "user-auth-service/src/error"
	"user-auth-service/src/models"
	"user-auth-service/src/repository"
	"user-auth-service/src/utils"

	"github.com/google/uuid"
)

// TokenCookie is the cookie the login handler stores the JWT in.
const TokenCookie = "token"

type ctxKey string

const userCtxKey ctxKey = "authenticated_user"

// WithUser returns a copy of ctx carrying u.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userCtxKey, u)
}

// UserFromContext returns the user stored by Auth, if any.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userCtxKey).(*models.User)
	return u, ok && u != nil
}

// Auth resolves the request's token to a stored user and puts it in the request context.
func (m *Middleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			apperrors.WriteError(w, apperrors.FromReason(apperrors.TokenNotProvided))
			return
		}

		subject, err := utils.DecodeToken(token, m.Config.JWTSecret)
		if err != nil {
			apperrors.WriteError(w, err)
			return
		}

		userID, err := uuid.Parse(subject)
		if err != nil {
			apperrors.WriteError(w, apperrors.FromReason(apperrors.InvalidToken))
			return
		}

		user, err := repository.GetUserByID(r.Context(), m.DB, userID)
		if errors.Is(err, repository.ErrUserNotFound) {
			apperrors.WriteError(w, apperrors.FromReason(apperrors.UserNoLongerExist))
			return
		}
		if err != nil {
			m.Logger.Error("Auth: failed to load user " + userID.String() + ": " + err.Error())
			apperrors.WriteError(w, apperrors.FromReason(apperrors.ServerError))
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// RoleCheck lets the request through only when the authenticated user has one of roles.
func (m *Middleware) RoleCheck(roles ...models.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				apperrors.WriteError(w, apperrors.FromReason(apperrors.UserNotAuthenticated))
				return
			}

			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			apperrors.WriteError(w, apperrors.FromReason(apperrors.PermissionDenied))
		})
	}
}

func extractToken(r *http.Request) string {
	if c, err := r.Cookie(TokenCookie); err == nil && c.Value != "" {
		return c.Value
	}

	header := r.Header.Get("Authorization")
	if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return ""
}
