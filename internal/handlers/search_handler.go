package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type SearchHandler struct {
	search SearchStore
}

func NewSearchHandler(search SearchStore) *SearchHandler {
	return &SearchHandler{search: search}
}

func (h *SearchHandler) RegisterSearchRoutes(g *echo.Group) {
	g.GET("/search/users", h.SearchUsers)
	g.GET("/search/posts", h.SearchPosts)
}

// SearchUsers matches ?query= against usernames and display names
func (h *SearchHandler) SearchUsers(c echo.Context) error {
	return c.JSON(http.StatusOK, h.search.SearchUsers(c.QueryParam("query")))
}

// SearchPosts matches ?query= against post content
func (h *SearchHandler) SearchPosts(c echo.Context) error {
	return c.JSON(http.StatusOK, h.search.SearchPosts(c.QueryParam("query")))
}
