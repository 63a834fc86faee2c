package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/night-walker/backend/internal/apperrors"
	"github.com/anonto42/night-walker/backend/internal/middleware"
	"github.com/anonto42/night-walker/backend/internal/models"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	users UserStore
}

func NewUserHandler(users UserStore) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) RegisterProfileRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.GET("/users/profile", h.GetProfile, requireAuth)
	g.PUT("/users/profile", h.UpdateProfile, requireAuth)
	g.PUT("/users/profile/avatar", h.UploadAvatar, requireAuth)
	g.GET("/users/:username", h.GetUserByUsername)
}

// GetProfile returns the authenticated user
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, _ := middleware.CurrentUser(c)
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) GetUserByUsername(c echo.Context) error {
	user, err := h.users.GetUserByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile applies the fields present in the body. An empty bio
// clears it.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	current, _ := middleware.CurrentUser(c)

	var req models.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	user, err := h.users.UpdateProfile(current.ID, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// UploadAvatar expects a multipart form with an "avatar" image file
func (h *UserHandler) UploadAvatar(c echo.Context) error {
	current, _ := middleware.CurrentUser(c)

	file, err := c.FormFile("avatar")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing avatar file")
	}
	upload, err := readUpload(file)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Unreadable avatar file")
	}

	user, err := h.users.UploadAvatar(c.Request().Context(), current.ID, upload)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}
