package handlers

import (
	"errors"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/anonto42/night-walker/backend/internal/apperrors"
	"github.com/labstack/echo/v4"
)

// httpError maps a domain error to an HTTP error. Conflict, invalid and
// credential errors carry the outermost context of err as the message,
// e.g. "Username already exists".
func httpError(err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrInvalid):
		return echo.NewHTTPError(http.StatusBadRequest, message(err))
	case errors.Is(err, apperrors.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, message(err)).SetInternal(err)
	case errors.Is(err, apperrors.ErrUnauthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated").SetInternal(err)
	case errors.Is(err, apperrors.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "Forbidden").SetInternal(err)
	case errors.Is(err, apperrors.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Not found").SetInternal(err)
	case errors.Is(err, apperrors.ErrStorageFailure):
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store media").SetInternal(err)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error").SetInternal(err)
	}
}

func message(err error) string {
	msg, _, _ := strings.Cut(err.Error(), ": ")
	r, size := utf8.DecodeRuneInString(msg)
	return string(unicode.ToUpper(r)) + msg[size:]
}
