package middleware

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v4"
	"github.com/hirohaya/racket-hero/models"
)

var ErrNoClaimsInContext = errors.New("no authentication claims in context")

func claimsFromContext(ctx context.Context) (jwt.MapClaims, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if !ok {
		return nil, ErrNoClaimsInContext
	}
	return claims, nil
}

// GetUserIDFromContext returns the authenticated user's id.
func GetUserIDFromContext(ctx context.Context) (int, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return 0, err
	}
	id, ok := claims["user_id"].(float64)
	if !ok {
		return 0, ErrNoClaimsInContext
	}
	return int(id), nil
}

// GetUserRoleFromContext returns the authenticated user's role.
func GetUserRoleFromContext(ctx context.Context) (models.UserRole, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return "", err
	}
	role, ok := claims["role"].(string)
	if !ok {
		return "", ErrNoClaimsInContext
	}
	return models.UserRole(role), nil
}
