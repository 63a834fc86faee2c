package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/night-walker/backend/internal/apperrors"
	"github.com/anonto42/night-walker/backend/internal/middleware"
	"github.com/anonto42/night-walker/backend/internal/models"
	"github.com/labstack/echo/v4"
)

type FollowHandler struct {
	follows FollowStore
}

func NewFollowHandler(follows FollowStore) *FollowHandler {
	return &FollowHandler{follows: follows}
}

func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.POST("/users/:id/follow", h.FollowUser, requireAuth)
	g.DELETE("/users/:id/follow", h.UnfollowUser, requireAuth)
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
}

func (h *FollowHandler) FollowUser(c echo.Context) error {
	user, _ := middleware.CurrentUser(c)

	result, err := h.follows.Follow(user.ID, c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return httpError(err)
	}
	if result == models.AlreadyFollowing {
		return c.JSON(http.StatusOK, echo.Map{"message": "Already following"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User followed successfully"})
}

func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	user, _ := middleware.CurrentUser(c)
	h.follows.Unfollow(user.ID, c.Param("id"))
	return c.JSON(http.StatusOK, echo.Map{"message": "User unfollowed successfully"})
}

func (h *FollowHandler) GetFollowers(c echo.Context) error {
	id := c.Param("id")
	if _, err := h.follows.GetUserByID(id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	return c.JSON(http.StatusOK, h.follows.Followers(id))
}

func (h *FollowHandler) GetFollowing(c echo.Context) error {
	id := c.Param("id")
	if _, err := h.follows.GetUserByID(id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	return c.JSON(http.StatusOK, h.follows.Following(id))
}
