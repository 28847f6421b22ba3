package repository

import (
	"context"

	"pixelcove/internal/domain/entity"
)

// CollectionRepository owns the lifecycle of named photo collections.
// Every owner-scoped operation addresses records by (id, ownerID); a lookup
// that does not match both fields behaves exactly like a missing record.
type CollectionRepository interface {
	Create(ctx context.Context, ownerID, name string) (*entity.Collection, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Collection, error)
	GetByIDForOwner(ctx context.Context, id, ownerID string) (*entity.Collection, error)

	// GetByID fetches a collection without an ownership check. It backs the
	// public photos listing only; mutations never use it.
	GetByID(ctx context.Context, id string) (*entity.Collection, error)

	AddImage(ctx context.Context, id, ownerID, imageID string) (*entity.Collection, error)
	RemoveImage(ctx context.Context, id, ownerID, imageID string) (*entity.Collection, error)
	Delete(ctx context.Context, id, ownerID string) error
}
