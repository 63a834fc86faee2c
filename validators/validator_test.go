package validators

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/anonto42/night-walker/backend/internal/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func httpErr(t *testing.T, err error) *echo.HTTPError {
	t.Helper()
	var he *echo.HTTPError
	require.True(t, errors.As(err, &he))
	require.Equal(t, http.StatusBadRequest, he.Code)
	return he
}

func TestValidate(t *testing.T) {
	v := NewValidator()

	require.NoError(t, v.Validate(models.CreateUserRequest{
		Username: "stardust", Email: "star@example.com", Password: "secret1", DisplayName: "Star",
	}))
	require.NoError(t, v.Validate(models.CreateUserRequest{
		Username: "s", Email: "nope", Password: "p", DisplayName: "S",
	}))

	he := httpErr(t, v.Validate(models.CreateUserRequest{Username: "s"}))
	require.Equal(t, "email is required; password is required; display_name is required", he.Message)

	empty := ""
	he = httpErr(t, v.Validate(models.UpdateUserRequest{DisplayName: &empty}))
	require.Equal(t, "display_name must not be empty", he.Message)
	require.NoError(t, v.Validate(models.UpdateUserRequest{Bio: &empty}))

	long := strings.Repeat("b", 301)
	he = httpErr(t, v.Validate(models.UpdateUserRequest{Bio: &long}))
	require.Equal(t, "bio must be at most 300 characters", he.Message)
}
