package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"pixelcove/internal/domain/domainerr"
	"pixelcove/internal/domain/entity"
	"pixelcove/internal/domain/repository"
)

// CollectionService enforces per-user ownership and duplicate-free
// membership for photo collections. Every mutation is addressed by
// (collection id, owner id); an ownership mismatch reads as absence.
type CollectionService struct {
	Repo    repository.CollectionRepository
	ES      *elasticsearch.Client
	ESIndex string
	Logger  *logrus.Logger
}

func NewCollectionService(repo repository.CollectionRepository, es *elasticsearch.Client, esIndex string, logger *logrus.Logger) *CollectionService {
	return &CollectionService{Repo: repo, ES: es, ESIndex: esIndex, Logger: logger}
}

func (s *CollectionService) Create(ctx context.Context, ownerID, name string) (*entity.Collection, error) {
	if name == "" {
		return nil, fmt.Errorf("collection name is required: %w", domainerr.ErrValidation)
	}
	if _, err := uuid.Parse(ownerID); err != nil {
		return nil, fmt.Errorf("owner id %q: %w", ownerID, domainerr.ErrValidation)
	}
	c, err := s.Repo.Create(ctx, ownerID, name)
	if err != nil {
		return nil, err
	}
	s.index(ctx, c)
	return c, nil
}

func (s *CollectionService) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Collection, error) {
	if _, err := uuid.Parse(ownerID); err != nil {
		return nil, fmt.Errorf("owner id %q: %w", ownerID, domainerr.ErrValidation)
	}
	return s.Repo.ListByOwner(ctx, ownerID)
}

func (s *CollectionService) GetByIDForOwner(ctx context.Context, id, ownerID string) (*entity.Collection, error) {
	// A malformed id cannot address any record, so it reads as absence.
	if _, err := uuid.Parse(id); err != nil {
		return nil, domainerr.ErrNotFound
	}
	return s.Repo.GetByIDForOwner(ctx, id, ownerID)
}

// ListPhotos returns the image ids of a collection without an ownership
// check; collection pages are shareable by id.
func (s *CollectionService) ListPhotos(ctx context.Context, id string) ([]string, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domainerr.ErrNotFound
	}
	c, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.Images, nil
}

func (s *CollectionService) AddImage(ctx context.Context, id, ownerID, imageID string) (*entity.Collection, error) {
	if err := s.checkImageArgs(id, imageID); err != nil {
		return nil, err
	}
	c, err := s.Repo.AddImage(ctx, id, ownerID, imageID)
	if err != nil {
		return nil, err
	}
	s.index(ctx, c)
	return c, nil
}

func (s *CollectionService) RemoveImage(ctx context.Context, id, ownerID, imageID string) (*entity.Collection, error) {
	if err := s.checkImageArgs(id, imageID); err != nil {
		return nil, err
	}
	c, err := s.Repo.RemoveImage(ctx, id, ownerID, imageID)
	if err != nil {
		return nil, err
	}
	s.index(ctx, c)
	return c, nil
}

func (s *CollectionService) Delete(ctx context.Context, id, ownerID string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domainerr.ErrNotFound
	}
	if err := s.Repo.Delete(ctx, id, ownerID); err != nil {
		return err
	}
	s.deleteIndex(ctx, id)
	return nil
}

func (s *CollectionService) checkImageArgs(id, imageID string) error {
	if imageID == "" {
		return fmt.Errorf("image id is required: %w", domainerr.ErrValidation)
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid collection id format: %w", domainerr.ErrValidation)
	}
	return nil
}

// Search finds the caller's collections by name via Elasticsearch. A nil
// ES client degrades to an empty result rather than an error.
func (s *CollectionService) Search(ctx context.Context, ownerID, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"match": map[string]any{"name": q},
				},
				"filter": map[string]any{
					// dynamic mapping analyzes user_id as text, which
					// tokenizes the UUID on hyphens; the keyword
					// subfield keeps the exact value for term lookups
					"term": map[string]any{"user_id.keyword": ownerID},
				},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

// index mirrors a collection into Elasticsearch, best effort: search
// staleness is acceptable, a failed request is not.
func (s *CollectionService) index(ctx context.Context, col *entity.Collection) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          col.ID,
		"user_id":     col.UserID,
		"name":        col.Name,
		"image_count": len(col.Images),
		"created_at":  col.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: col.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("collection_id", col.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("collection_id", col.ID).Warn("es index response error")
	}
}

func (s *CollectionService) deleteIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("collection_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}
