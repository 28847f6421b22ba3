// Package unsplash is a thin client for the Unsplash REST API. The access
// key stays server-side; browsers talk to our /api/photos proxy routes.
package unsplash

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"pixelcove/internal/domain/domainerr"
)

// ErrRateLimited is returned when Unsplash answers 403 (demo keys are
// capped at 50 requests/hour).
var ErrRateLimited = errors.New("unsplash rate limit exceeded")

type Config struct {
	BaseURL   string
	AccessKey string
}

type Client struct {
	cfg    Config
	client *http.Client
}

func NewClient(cfg Config, client *http.Client) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{cfg: cfg, client: client}
}

// SearchPhotos queries /search/photos. perPage is capped at 30, matching
// the Unsplash API maximum.
func (c *Client) SearchPhotos(ctx context.Context, query string, page, perPage int) (*SearchResult, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 30 {
		perPage = 10
	}
	q := url.Values{}
	q.Set("query", query)
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("orientation", "landscape")

	var out SearchResult
	if err := c.get(ctx, "/search/photos?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RandomPhotos queries /photos/random for count photos matching query.
func (c *Client) RandomPhotos(ctx context.Context, count int, query string) ([]Photo, error) {
	if count < 1 || count > 30 {
		count = 5
	}
	q := url.Values{}
	q.Set("count", strconv.Itoa(count))
	if query != "" {
		q.Set("query", query)
	}
	q.Set("orientation", "landscape")

	var out []Photo
	if err := c.get(ctx, "/photos/random?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPhoto fetches a single photo by its opaque id.
func (c *Client) GetPhoto(ctx context.Context, id string) (*Photo, error) {
	var out Photo
	if err := c.get(ctx, "/photos/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Client-ID "+c.cfg.AccessKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Version", "v1")

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()

	switch {
	case res.StatusCode == http.StatusForbidden:
		return ErrRateLimited
	case res.StatusCode == http.StatusNotFound:
		return domainerr.ErrNotFound
	case res.StatusCode >= 400:
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("unsplash http %d: %s", res.StatusCode, body)
	}

	return json.NewDecoder(res.Body).Decode(dest)
}
