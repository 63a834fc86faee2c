package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/anonto42/night-walker/backend/internal/apperrors"
	"github.com/labstack/echo/v4"
)

// BlobReader is satisfied by *media.GridFSStore
type BlobReader interface {
	Open(ctx context.Context, id string) (io.ReadCloser, string, error)
}

// MediaHandler streams stored media back to clients
type MediaHandler struct {
	blobs BlobReader
}

func NewMediaHandler(blobs BlobReader) *MediaHandler {
	return &MediaHandler{blobs: blobs}
}

func (h *MediaHandler) RegisterMediaRoutes(e *echo.Echo, prefix string) {
	e.GET(prefix+"/:id", h.GetMedia)
}

func (h *MediaHandler) GetMedia(c echo.Context) error {
	rc, contentType, err := h.blobs.Open(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Media not found")
		}
		return httpError(err)
	}
	defer rc.Close()

	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	c.Response().Header().Set("Cache-Control", "public, max-age=86400")
	return c.Stream(http.StatusOK, contentType, rc)
}
