package repository

import (
	"context"

	"github.com/viettour/backend/internal/domain"
)

// TourStore is the uniform CRUD surface over tour records implemented by the
// MySQL remote backend, the redis local backend and the fallback facade that
// wraps both.
//
// Create expects the caller to supply a fully populated record including a
// client-generated id. Update is a silent no-op on the local backend when the
// id does not exist but may still succeed on the remote one; callers must not
// assume an unknown id is an error. Delete is idempotent. ReplaceAll is a
// destructive bulk overwrite and is not atomic on the remote backend: a
// failure midway leaves a partially repopulated store.
type TourStore interface {
	List(ctx context.Context) ([]domain.Tour, error)
	GetByID(ctx context.Context, id string) (*domain.Tour, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Tour, error)
	ListByRegion(ctx context.Context, region domain.Region) ([]domain.Tour, error)
	Create(ctx context.Context, tour *domain.Tour) error
	Update(ctx context.Context, tour *domain.Tour) error
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, tours []domain.Tour) error
	Clear(ctx context.Context) error
}
