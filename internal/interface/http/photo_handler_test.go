package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"pixelcove/internal/domain/domainerr"
	"pixelcove/internal/infrastructure/unsplash"
)

type mockPhotoAPI struct {
	SearchPhotosFunc func(ctx context.Context, query string, page, perPage int) (*unsplash.SearchResult, error)
	RandomPhotosFunc func(ctx context.Context, count int, query string) ([]unsplash.Photo, error)
	GetPhotoFunc     func(ctx context.Context, id string) (*unsplash.Photo, error)
}

func (m *mockPhotoAPI) SearchPhotos(ctx context.Context, query string, page, perPage int) (*unsplash.SearchResult, error) {
	if m.SearchPhotosFunc != nil {
		return m.SearchPhotosFunc(ctx, query, page, perPage)
	}
	return &unsplash.SearchResult{}, nil
}

func (m *mockPhotoAPI) RandomPhotos(ctx context.Context, count int, query string) ([]unsplash.Photo, error) {
	if m.RandomPhotosFunc != nil {
		return m.RandomPhotosFunc(ctx, count, query)
	}
	return []unsplash.Photo{}, nil
}

func (m *mockPhotoAPI) GetPhoto(ctx context.Context, id string) (*unsplash.Photo, error) {
	if m.GetPhotoFunc != nil {
		return m.GetPhotoFunc(ctx, id)
	}
	return &unsplash.Photo{ID: id}, nil
}

func newPhotoRouter(api *mockPhotoAPI) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPhotoHandler(api, nil)

	r := gin.New()
	r.GET("/photos/search", h.Search)
	r.GET("/photos/random", h.Random)
	r.GET("/photos/:id", h.Get)
	return r
}

func TestPhotoHandler_Search(t *testing.T) {
	t.Run("missing query", func(t *testing.T) {
		w, env := doJSON(t, newPhotoRouter(&mockPhotoAPI{}), http.MethodGet, "/photos/search", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "query parameter is required", env.Message)
	})

	t.Run("defaults page and per_page", func(t *testing.T) {
		api := &mockPhotoAPI{
			SearchPhotosFunc: func(ctx context.Context, query string, page, perPage int) (*unsplash.SearchResult, error) {
				assert.Equal(t, "sunset", query)
				assert.Equal(t, 1, page)
				assert.Equal(t, 20, perPage)
				return &unsplash.SearchResult{Total: 1}, nil
			},
		}
		w, _ := doJSON(t, newPhotoRouter(api), http.MethodGet, "/photos/search?query=sunset", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("ignores malformed paging", func(t *testing.T) {
		api := &mockPhotoAPI{
			SearchPhotosFunc: func(ctx context.Context, query string, page, perPage int) (*unsplash.SearchResult, error) {
				assert.Equal(t, 1, page)
				return &unsplash.SearchResult{}, nil
			},
		}
		w, _ := doJSON(t, newPhotoRouter(api), http.MethodGet, "/photos/search?query=x&page=zero", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("upstream rate limit is 429", func(t *testing.T) {
		api := &mockPhotoAPI{
			SearchPhotosFunc: func(ctx context.Context, query string, page, perPage int) (*unsplash.SearchResult, error) {
				return nil, unsplash.ErrRateLimited
			},
		}
		w, _ := doJSON(t, newPhotoRouter(api), http.MethodGet, "/photos/search?query=x", nil)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	})

	t.Run("upstream failure is 502", func(t *testing.T) {
		api := &mockPhotoAPI{
			SearchPhotosFunc: func(ctx context.Context, query string, page, perPage int) (*unsplash.SearchResult, error) {
				return nil, errors.New("connection reset")
			},
		}
		w, env := doJSON(t, newPhotoRouter(api), http.MethodGet, "/photos/search?query=x", nil)
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, "image service unavailable", env.Message)
	})
}

func TestPhotoHandler_Get(t *testing.T) {
	t.Run("unknown photo", func(t *testing.T) {
		api := &mockPhotoAPI{
			GetPhotoFunc: func(ctx context.Context, id string) (*unsplash.Photo, error) {
				return nil, domainerr.ErrNotFound
			},
		}
		w, env := doJSON(t, newPhotoRouter(api), http.MethodGet, "/photos/nope", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "photo not found", env.Message)
	})
}

func TestPhotoHandler_Random(t *testing.T) {
	api := &mockPhotoAPI{
		RandomPhotosFunc: func(ctx context.Context, count int, query string) ([]unsplash.Photo, error) {
			assert.Equal(t, 12, count)
			assert.Equal(t, "nature", query)
			return []unsplash.Photo{{ID: "p1"}}, nil
		},
	}
	w, _ := doJSON(t, newPhotoRouter(api), http.MethodGet, "/photos/random?query=nature", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
