package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/anonto42/night-walker/backend/internal/apperrors"
	"github.com/anonto42/night-walker/backend/internal/middleware"
	"github.com/anonto42/night-walker/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	posts PostStore
}

func NewPostHandler(posts PostStore) *PostHandler {
	return &PostHandler{posts: posts}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.POST("/posts", h.CreatePost, requireAuth)
	g.GET("/posts", h.ListPosts)
	g.GET("/posts/:id", h.GetPost)
	g.GET("/users/:id/posts", h.GetUserPosts)
}

// CreatePost expects a multipart form with a "content" field and zero or
// more "media" files.
func (h *PostHandler) CreatePost(c echo.Context) error {
	user, _ := middleware.CurrentUser(c)

	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid multipart form")
	}
	contents, ok := form.Value["content"]
	if !ok || len(contents) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing content")
	}

	var uploads []models.Upload
	for _, file := range form.File["media"] {
		upload, err := readUpload(file)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Unreadable media file")
		}
		uploads = append(uploads, upload)
	}

	post, err := h.posts.CreatePost(c.Request().Context(), user.ID, contents[0], uploads)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// ListPosts returns every post in the order it was created
func (h *PostHandler) ListPosts(c echo.Context) error {
	return c.JSON(http.StatusOK, h.posts.ViewPosts(viewerID(c), h.posts.ListPosts()))
}

func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.posts.GetPost(c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return httpError(err)
	}
	views := h.posts.ViewPosts(viewerID(c), []models.Post{post})
	return c.JSON(http.StatusOK, views[0])
}

// GetUserPosts lists the posts owned by the user id in the path. An
// unknown user has no posts.
func (h *PostHandler) GetUserPosts(c echo.Context) error {
	posts := h.posts.GetUserPosts(c.Param("id"))
	return c.JSON(http.StatusOK, h.posts.ViewPosts(viewerID(c), posts))
}

func viewerID(c echo.Context) string {
	user, _ := middleware.CurrentUser(c)
	return user.ID
}

func readUpload(file *multipart.FileHeader) (models.Upload, error) {
	src, err := file.Open()
	if err != nil {
		return models.Upload{}, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return models.Upload{}, err
	}
	return models.Upload{
		Filename:    file.Filename,
		ContentType: file.Header.Get(echo.HeaderContentType),
		Data:        data,
	}, nil
}
