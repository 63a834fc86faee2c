package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/night-walker/backend/internal/apperrors"
	"github.com/anonto42/night-walker/backend/internal/middleware"
	"github.com/anonto42/night-walker/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	likes LikeStore
}

func NewLikeHandler(likes LikeStore) *LikeHandler {
	return &LikeHandler{likes: likes}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.POST("/posts/:id/like", h.LikePost, requireAuth)
	g.DELETE("/posts/:id/like", h.UnlikePost, requireAuth)
}

// LikePost handles liking a post. Liking twice is not an error.
func (h *LikeHandler) LikePost(c echo.Context) error {
	user, _ := middleware.CurrentUser(c)

	result, err := h.likes.Like(user.ID, c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return httpError(err)
	}
	if result == models.AlreadyLiked {
		return c.JSON(http.StatusOK, echo.Map{"message": "Post already liked"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Post liked successfully"})
}

// UnlikePost removes the caller's like if there is one
func (h *LikeHandler) UnlikePost(c echo.Context) error {
	user, _ := middleware.CurrentUser(c)
	h.likes.Unlike(user.ID, c.Param("id"))
	return c.JSON(http.StatusOK, echo.Map{"message": "Post unliked successfully"})
}
