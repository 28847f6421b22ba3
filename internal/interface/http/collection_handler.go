package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"pixelcove/internal/domain/domainerr"
	"pixelcove/internal/domain/entity"
	"pixelcove/internal/interface/middleware"
	"pixelcove/pkg/response"
	"pixelcove/pkg/validation"
)

// CollectionService is the application surface the handler needs; the
// concrete implementation lives in internal/application.
type CollectionService interface {
	Create(ctx context.Context, ownerID, name string) (*entity.Collection, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Collection, error)
	GetByIDForOwner(ctx context.Context, id, ownerID string) (*entity.Collection, error)
	ListPhotos(ctx context.Context, id string) ([]string, error)
	AddImage(ctx context.Context, id, ownerID, imageID string) (*entity.Collection, error)
	RemoveImage(ctx context.Context, id, ownerID, imageID string) (*entity.Collection, error)
	Delete(ctx context.Context, id, ownerID string) error
	Search(ctx context.Context, ownerID, q string, size int) ([]map[string]any, error)
}

type CollectionHandler struct {
	Svc    CollectionService
	Logger *logrus.Logger
}

func NewCollectionHandler(svc CollectionService, logger *logrus.Logger) *CollectionHandler {
	return &CollectionHandler{Svc: svc, Logger: logger}
}

type createCollectionRequest struct {
	Name string `json:"name" binding:"required"`
}

type imageRequest struct {
	CollectionID string `json:"collectionId" binding:"required"`
	ImageID      string `json:"imageId" binding:"required"`
}

// writeCollectionError maps domain errors to HTTP statuses; anything
// unclassified is a 500 with a generic message.
func (h *CollectionHandler) writeCollectionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainerr.ErrValidation):
		response.Error[any](c, http.StatusBadRequest, validationMessage(err), nil)
	case errors.Is(err, domainerr.ErrDuplicateImage):
		response.Error[any](c, http.StatusBadRequest, "image already exists in collection", nil)
	case errors.Is(err, domainerr.ErrImageNotInCollection):
		response.Error[any](c, http.StatusNotFound, "image not found in collection", nil)
	case errors.Is(err, domainerr.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, "collection not found", nil)
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).Error("collection operation failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "server error", nil)
	}
}

// validationMessage strips the sentinel suffix from a wrapped validation
// error, leaving the human-readable part.
func validationMessage(err error) string {
	msg := strings.TrimSuffix(err.Error(), ": "+domainerr.ErrValidation.Error())
	if msg == "" {
		return domainerr.ErrValidation.Error()
	}
	return msg
}

// Create handles POST /collections/create
func (h *CollectionHandler) Create(c *gin.Context) {
	var req createCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "collection name is required", validation.ToDetails(err))
		return
	}
	uid := c.GetString(middleware.CtxUserIDKey)
	col, err := h.Svc.Create(c.Request.Context(), uid, req.Name)
	if err != nil {
		h.writeCollectionError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, col, "collection created")
}

// ListMine handles GET /collections/user
func (h *CollectionHandler) ListMine(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	cols, err := h.Svc.ListByOwner(c.Request.Context(), uid)
	if err != nil {
		h.writeCollectionError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cols, "collections")
}

// GetMine handles GET /collections/user/:id
func (h *CollectionHandler) GetMine(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	col, err := h.Svc.GetByIDForOwner(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		h.writeCollectionError(c, err)
		return
	}
	response.Success(c, http.StatusOK, col, "collection")
}

// ListPhotos handles GET /collections/:id/photos (public: collection pages
// are shareable by id, matching the web app's behavior)
func (h *CollectionHandler) ListPhotos(c *gin.Context) {
	images, err := h.Svc.ListPhotos(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeCollectionError(c, err)
		return
	}
	response.Success(c, http.StatusOK, images, "collection photos")
}

// AddImage handles PUT /collections/add-image
func (h *CollectionHandler) AddImage(c *gin.Context) {
	var req imageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "collection id and image id are required", validation.ToDetails(err))
		return
	}
	uid := c.GetString(middleware.CtxUserIDKey)
	col, err := h.Svc.AddImage(c.Request.Context(), req.CollectionID, uid, req.ImageID)
	if err != nil {
		h.writeCollectionError(c, err)
		return
	}
	response.Success(c, http.StatusOK, col, "image added to collection")
}

// RemoveImage handles DELETE /collections/remove-image
func (h *CollectionHandler) RemoveImage(c *gin.Context) {
	var req imageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "collection id and image id are required", validation.ToDetails(err))
		return
	}
	uid := c.GetString(middleware.CtxUserIDKey)
	col, err := h.Svc.RemoveImage(c.Request.Context(), req.CollectionID, uid, req.ImageID)
	if err != nil {
		h.writeCollectionError(c, err)
		return
	}
	response.Success(c, http.StatusOK, col, "image removed from collection")
}

// Delete handles DELETE /collections/delete/:id
func (h *CollectionHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id"), uid); err != nil {
		h.writeCollectionError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "collection deleted successfully")
}

// Search handles GET /collections/search?q=
func (h *CollectionHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "query is required", nil)
		return
	}
	uid := c.GetString(middleware.CtxUserIDKey)
	hits, err := h.Svc.Search(c.Request.Context(), uid, q, 10)
	if err != nil {
		h.writeCollectionError(c, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results")
}
