package utils

import (
	"errors"
	"math"
	"time"

	apperrors "user-auth-service/src/error"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CreateToken signs an HS256 token for userID that expires after maxAge seconds.
func CreateToken(userID, secret string, maxAge int64) (string, error) {
	if userID == "" {
		return "", errors.New("token subject is empty")
	}
	if maxAge > math.MaxInt64/int64(time.Second) {
		return "", errors.New("token max age overflows time.Duration")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(maxAge) * time.Second)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// DecodeToken validates token and returns its subject. Every failure is InvalidToken.
func DecodeToken(token, secret string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return "", apperrors.FromReason(apperrors.InvalidToken)
	}
	return claims.Subject, nil
}
