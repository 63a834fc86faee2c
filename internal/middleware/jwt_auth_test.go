package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anonto42/night-walker/backend/internal/apperrors"
	"github.com/anonto42/night-walker/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type fakeResolver map[string]models.User

func (f fakeResolver) Resolve(_ context.Context, token string) (models.User, error) {
	if user, ok := f[token]; ok {
		return user, nil
	}
	return models.User{}, apperrors.ErrUnauthenticated
}

func serve(t *testing.T, mw echo.MiddlewareFunc, header string) (*httptest.ResponseRecorder, echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	err := mw(func(c echo.Context) error {
		user, ok := CurrentUser(c)
		if !ok {
			return c.String(http.StatusOK, "anonymous")
		}
		return c.String(http.StatusOK, user.Username)
	})(c)
	return rec, c, err
}

func TestJWTAuthMiddleware(t *testing.T) {
	mw := JWTAuthMiddleware(fakeResolver{"good": {ID: "u1", Username: "stardust"}})

	rec, c, err := serve(t, mw, "Bearer good")
	require.NoError(t, err)
	require.Equal(t, "stardust", rec.Body.String())
	require.Equal(t, "good", CurrentToken(c))

	for _, header := range []string{"", "good", "Basic good", "Bearer bad", "Bearer a b"} {
		_, _, err := serve(t, mw, header)
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he, header)
		require.Equal(t, http.StatusUnauthorized, he.Code)
	}
}

func TestOptionalJWTAuthMiddleware(t *testing.T) {
	mw := OptionalJWTAuthMiddleware(fakeResolver{"good": {ID: "u1", Username: "stardust"}})

	rec, _, err := serve(t, mw, "bearer good")
	require.NoError(t, err)
	require.Equal(t, "stardust", rec.Body.String())

	rec, _, err = serve(t, mw, "Bearer bad")
	require.NoError(t, err)
	require.Equal(t, "anonymous", rec.Body.String())
}
