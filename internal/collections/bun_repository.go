package collections

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type BunCollectionRepository struct {
	db   *bun.DB
	repo repository.Repository[*Collection]
}

func NewBunCollectionRepository(db *bun.DB) *BunCollectionRepository {
	return NewBunCollectionRepositoryWithCache(db, nil, nil)
}

// NewBunCollectionRepositoryWithCache constructs a CollectionRepository backed
// by bun with optional caching.
func NewBunCollectionRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunCollectionRepository {
	base := NewCollectionRepository(db)
	return &BunCollectionRepository{
		db:   db,
		repo: wrapWithCache(base, cacheService, keySerializer),
	}
}

func (r *BunCollectionRepository) Create(ctx context.Context, record *Collection) (*Collection, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunCollectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*Collection, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "collection", id.String())
	}
	return result, nil
}

func (r *BunCollectionRepository) GetBySlug(ctx context.Context, slug string) (*Collection, error) {
	result, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "collection", slug)
	}
	return result, nil
}

func (r *BunCollectionRepository) Update(ctx context.Context, record *Collection) (*Collection, error) {
	updated, err := r.repo.Update(ctx, record,
		repository.UpdateByID(record.ID.String()),
		repository.UpdateColumns(
			"name",
			"description",
			"permission",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "collection", record.ID.String())
	}
	return updated, nil
}

func (r *BunCollectionRepository) List(ctx context.Context) ([]*Collection, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.created_at ASC")
		}),
	)
	return records, err
}

func (r *BunCollectionRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	if r.db == nil {
		return fmt.Errorf("collection repository: database not configured")
	}

	result, err := r.db.NewDelete().
		Model((*Collection)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("collection delete rows affected: %w", err)
	}
	if affected == 0 {
		return &NotFoundError{Resource: "collection", Key: id.String()}
	}
	return nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
