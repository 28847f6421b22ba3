package unsplash

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelcove/internal/domain/domainerr"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := NewClient(Config{BaseURL: srv.URL, AccessKey: "test-key"}, srv.Client())
	return c, srv
}

func TestClient_SearchPhotos(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/photos", r.URL.Path)
		assert.Equal(t, "Client-ID test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "v1", r.Header.Get("Accept-Version"))
		assert.Equal(t, "mountains", r.URL.Query().Get("query"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "landscape", r.URL.Query().Get("orientation"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"total": 1,
			"total_pages": 1,
			"results": [{"id": "abc123", "width": 4000, "height": 3000,
				"urls": {"regular": "https://img.example/abc123.jpg"}}]
		}`))
	})
	defer srv.Close()

	res, err := c.SearchPhotos(context.Background(), "mountains", 2, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	require.Len(t, res.Results, 1)
	assert.Equal(t, "abc123", res.Results[0].ID)
	assert.Equal(t, "https://img.example/abc123.jpg", res.Results[0].URLs.Regular)
}

func TestClient_SearchPhotos_ClampsPaging(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("per_page"))
		_, _ = w.Write([]byte(`{"total":0,"total_pages":0,"results":[]}`))
	})
	defer srv.Close()

	_, err := c.SearchPhotos(context.Background(), "x", -5, 500)
	require.NoError(t, err)
}

func TestClient_GetPhoto(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/photos/abc123", r.URL.Path)
			_, _ = w.Write([]byte(`{"id": "abc123", "alt_description": "a sunset"}`))
		})
		defer srv.Close()

		p, err := c.GetPhoto(context.Background(), "abc123")
		require.NoError(t, err)
		assert.Equal(t, "abc123", p.ID)
		assert.Equal(t, "a sunset", p.AltDescription)
	})

	t.Run("missing photo maps to not found", func(t *testing.T) {
		c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		defer srv.Close()

		_, err := c.GetPhoto(context.Background(), "nope")
		assert.ErrorIs(t, err, domainerr.ErrNotFound)
	})
}

func TestClient_RateLimit(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	defer srv.Close()

	_, err := c.RandomPhotos(context.Background(), 5, "")
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestClient_UpstreamError(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"errors":["boom"]}`))
	})
	defer srv.Close()

	_, err := c.GetPhoto(context.Background(), "abc123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsplash http 500")
}
