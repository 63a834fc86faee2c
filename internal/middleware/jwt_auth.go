package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/anonto42/night-walker/backend/internal/models"
	"github.com/labstack/echo/v4"
)

const (
	userKey  = "user"
	tokenKey = "token"
)

// TokenResolver maps a bearer token to its user. *auth.Service satisfies it.
type TokenResolver interface {
	Resolve(ctx context.Context, token string) (models.User, error)
}

// OptionalJWTAuthMiddleware resolves the bearer token when one is sent and
// stores the user in the context. Requests without a valid token pass
// through anonymously.
func OptionalJWTAuthMiddleware(resolver TokenResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token, ok := bearerToken(c); ok {
				if user, err := resolver.Resolve(c.Request().Context(), token); err == nil {
					c.Set(userKey, user)
					c.Set(tokenKey, token)
				}
			}
			return next(c)
		}
	}
}

// JWTAuthMiddleware rejects requests without a valid session token
func JWTAuthMiddleware(resolver TokenResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := CurrentUser(c); ok {
				return next(c)
			}
			token, ok := bearerToken(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
			}
			user, err := resolver.Resolve(c.Request().Context(), token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token").SetInternal(err)
			}
			c.Set(userKey, user)
			c.Set(tokenKey, token)
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated user, if any
func CurrentUser(c echo.Context) (models.User, bool) {
	user, ok := c.Get(userKey).(models.User)
	return user, ok
}

// CurrentToken returns the bearer token the user was resolved from
func CurrentToken(c echo.Context) string {
	token, _ := c.Get(tokenKey).(string)
	return token
}

// Expecting "Bearer <token>"
func bearerToken(c echo.Context) (string, bool) {
	parts := strings.Fields(c.Request().Header.Get(echo.HeaderAuthorization))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}
