package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pixelcove/internal/domain/domainerr"
	"pixelcove/internal/domain/entity"
	"pixelcove/internal/domain/repository"
)

const collectionColumns = `id, user_id, name, images, created_at, updated_at`

// CollectionRepository persists collections as rows with a text[] image
// list. Membership mutations are single conditional UPDATE statements, so
// two concurrent adds of the same image cannot both commit: the duplicate
// guard is evaluated inside the statement, not in application code.
type CollectionRepository struct {
	pool *pgxpool.Pool
}

func NewCollectionRepository(pool *pgxpool.Pool) *CollectionRepository {
	return &CollectionRepository{pool: pool}
}

func scanCollection(row pgx.Row) (*entity.Collection, error) {
	c := &entity.Collection{}
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Images, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainerr.ErrNotFound
		}
		return nil, err
	}
	if c.Images == nil {
		c.Images = []string{}
	}
	return c, nil
}

func (r *CollectionRepository) Create(ctx context.Context, ownerID, name string) (*entity.Collection, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO collections (user_id, name)
		VALUES ($1, $2)
		RETURNING `+collectionColumns+`
	`, ownerID, name)
	return scanCollection(row)
}

func (r *CollectionRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Collection, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+collectionColumns+`
		FROM collections
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*entity.Collection, 0)
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CollectionRepository) GetByIDForOwner(ctx context.Context, id, ownerID string) (*entity.Collection, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+collectionColumns+`
		FROM collections
		WHERE id = $1 AND user_id = $2
	`, id, ownerID)
	return scanCollection(row)
}

func (r *CollectionRepository) GetByID(ctx context.Context, id string) (*entity.Collection, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+collectionColumns+`
		FROM collections
		WHERE id = $1
	`, id)
	return scanCollection(row)
}

// AddImage appends imageID unless it is already present. The membership
// check and the append run in one statement; a zero-row result is then
// classified with a follow-up owner-scoped read.
func (r *CollectionRepository) AddImage(ctx context.Context, id, ownerID, imageID string) (*entity.Collection, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE collections
		SET images = array_append(images, $3), updated_at = now()
		WHERE id = $1 AND user_id = $2 AND NOT ($3 = ANY(images))
		RETURNING `+collectionColumns+`
	`, id, ownerID, imageID)

	c, err := scanCollection(row)
	if errors.Is(err, domainerr.ErrNotFound) {
		if _, gerr := r.GetByIDForOwner(ctx, id, ownerID); gerr == nil {
			return nil, domainerr.ErrDuplicateImage
		}
		return nil, domainerr.ErrNotFound
	}
	return c, err
}

func (r *CollectionRepository) RemoveImage(ctx context.Context, id, ownerID, imageID string) (*entity.Collection, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE collections
		SET images = array_remove(images, $3), updated_at = now()
		WHERE id = $1 AND user_id = $2 AND $3 = ANY(images)
		RETURNING `+collectionColumns+`
	`, id, ownerID, imageID)

	c, err := scanCollection(row)
	if errors.Is(err, domainerr.ErrNotFound) {
		if _, gerr := r.GetByIDForOwner(ctx, id, ownerID); gerr == nil {
			return nil, domainerr.ErrImageNotInCollection
		}
		return nil, domainerr.ErrNotFound
	}
	return c, err
}

// Delete removes the record matching both fields in one statement, so a
// repeated delete of the same id reports not found.
func (r *CollectionRepository) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM collections
		WHERE id = $1 AND user_id = $2
	`, id, ownerID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domainerr.ErrNotFound
	}
	return nil
}

var _ repository.CollectionRepository = (*CollectionRepository)(nil)
