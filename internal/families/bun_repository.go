package families

import (
	"context"
	"fmt"

	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunFamilyRepository implements FamilyRepository with optional caching.
type BunFamilyRepository struct {
	repo repository.Repository[*Family]
}

// NewBunFamilyRepository creates a family repository without caching.
func NewBunFamilyRepository(db *bun.DB) *BunFamilyRepository {
	return NewBunFamilyRepositoryWithCache(db, nil, nil)
}

// NewBunFamilyRepositoryWithCache creates a family repository with caching support.
func NewBunFamilyRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunFamilyRepository {
	base := NewFamilyRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &BunFamilyRepository{repo: base}
}

func (r *BunFamilyRepository) Create(ctx context.Context, family *Family) (*Family, error) {
	return r.repo.Create(ctx, family)
}

func (r *BunFamilyRepository) Update(ctx context.Context, family *Family) (*Family, error) {
	record, err := r.repo.Update(ctx, family,
		repository.UpdateByID(family.ID.String()),
		repository.UpdateColumns(
			"name",
			"slug",
			"header_title",
			"body_title",
			"body_markdown",
			"footer",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, family.ID.String())
	}
	return record, nil
}

func (r *BunFamilyRepository) GetByID(ctx context.Context, id uuid.UUID) (*Family, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

func (r *BunFamilyRepository) GetByOwner(ctx context.Context, ownerUID string) (*Family, error) {
	record, err := r.repo.GetByIdentifier(ctx, ownerUID)
	if err != nil {
		return nil, mapRepositoryError(err, ownerUID)
	}
	return record, nil
}

func (r *BunFamilyRepository) List(ctx context.Context) ([]*Family, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.OrderExpr("?TableAlias.name ASC").OrderExpr("?TableAlias.owner_uid ASC")
	}))
	return records, err
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Key: key}
	}
	return fmt.Errorf("family repository error: %w", err)
}
