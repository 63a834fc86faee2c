package handlers

import (
	"net/http"

	"github.com/anonto42/night-walker/backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

type FeedHandler struct {
	posts PostStore
}

func NewFeedHandler(posts PostStore) *FeedHandler {
	return &FeedHandler{posts: posts}
}

func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.GET("/posts/feed", h.GetFeed, requireAuth)
}

// GetFeed returns the caller's posts and the posts of everyone they
// follow, newest first.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	user, _ := middleware.CurrentUser(c)
	return c.JSON(http.StatusOK, h.posts.ViewPosts(user.ID, h.posts.Feed(user.ID)))
}
