package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/night-walker/backend/internal/apperrors"
	"github.com/anonto42/night-walker/backend/internal/middleware"
	"github.com/anonto42/night-walker/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	comments CommentStore
}

func NewCommentHandler(comments CommentStore) *CommentHandler {
	return &CommentHandler{comments: comments}
}

func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.POST("/posts/:id/comments", h.CreateComment, requireAuth)
	g.GET("/posts/:id/comments", h.GetComments)
}

func (h *CommentHandler) CreateComment(c echo.Context) error {
	user, _ := middleware.CurrentUser(c)

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	comment, err := h.comments.CreateComment(user.ID, c.Param("id"), req.Content)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return httpError(err)
	}
	return c.JSON(http.StatusOK, comment)
}

// GetComments lists a post's comments oldest first
func (h *CommentHandler) GetComments(c echo.Context) error {
	return c.JSON(http.StatusOK, h.comments.GetComments(c.Param("id")))
}
