package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"pixelcove/internal/domain/domainerr"
	"pixelcove/internal/infrastructure/unsplash"
	"pixelcove/pkg/response"
)

// PhotoAPI is the upstream image catalogue surface the handler proxies.
type PhotoAPI interface {
	SearchPhotos(ctx context.Context, query string, page, perPage int) (*unsplash.SearchResult, error)
	RandomPhotos(ctx context.Context, count int, query string) ([]unsplash.Photo, error)
	GetPhoto(ctx context.Context, id string) (*unsplash.Photo, error)
}

type PhotoHandler struct {
	API    PhotoAPI
	Logger *logrus.Logger
}

func NewPhotoHandler(api PhotoAPI, logger *logrus.Logger) *PhotoHandler {
	return &PhotoHandler{API: api, Logger: logger}
}

func (h *PhotoHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, unsplash.ErrRateLimited):
		response.Error[any](c, http.StatusTooManyRequests, "image service rate limit reached, try again later", nil)
	case errors.Is(err, domainerr.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, "photo not found", nil)
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).Error("photo request failed")
		}
		response.Error[any](c, http.StatusBadGateway, "image service unavailable", nil)
	}
}

// Search handles GET /photos/search?query=&page=&per_page=
func (h *PhotoHandler) Search(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		response.Error[any](c, http.StatusBadRequest, "query parameter is required", nil)
		return
	}
	page := intQuery(c, "page", 1)
	perPage := intQuery(c, "per_page", 20)
	res, err := h.API.SearchPhotos(c.Request.Context(), query, page, perPage)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, "photos")
}

// Random handles GET /photos/random?count=&query=
func (h *PhotoHandler) Random(c *gin.Context) {
	count := intQuery(c, "count", 12)
	photos, err := h.API.RandomPhotos(c.Request.Context(), count, c.Query("query"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, photos, "photos")
}

// Get handles GET /photos/:id
func (h *PhotoHandler) Get(c *gin.Context) {
	photo, err := h.API.GetPhoto(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, photo, "photo")
}

func intQuery(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}
