package service

import (
	"context"

	"github.com/viettour/backend/internal/domain"
	"github.com/viettour/backend/internal/imagecache"
	"github.com/viettour/backend/internal/repository"
	"github.com/viettour/backend/pkg/itinerary"
)

type Services struct {
	Catalog Catalog
	Tours   Tours
}

type Deps struct {
	Store      *repository.Tours
	ImageCache *imagecache.Cache
}

func NewServices(deps Deps) *Services {
	catalog := newCatalogService(deps.Store)
	return &Services{
		Catalog: catalog,
		Tours:   newTourService(deps.Store, catalog, deps.ImageCache),
	}
}

// Catalog holds the in-memory snapshot of all tour records for display and
// exposes region-filtered views over it. Mutations update the snapshot
// optimistically before the store call settles; the snapshot may diverge from
// persisted truth until the next Refresh.
type Catalog interface {
	Refresh(ctx context.Context)
	State() CatalogState
	Tours() []domain.Tour
	ToursByRegion(region domain.Region) []domain.Tour
	TourBySlug(slug string) (*domain.Tour, error)
	Add(ctx context.Context, tour *domain.Tour)
	Update(ctx context.Context, tour *domain.Tour)
	Remove(ctx context.Context, id string)
	Subscribe() (<-chan struct{}, func())
}

// Tours is the admin editing workflow: it translates form input into
// well-formed tour records and dispatches them through the catalog.
type Tours interface {
	Save(ctx context.Context, form TourForm) (*domain.Tour, error)
	Delete(ctx context.Context, id string)
	EditForm(ctx context.Context, id string) (*TourForm, error)
	RenderItinerary(tour *domain.Tour) []itinerary.Block
	Export(ctx context.Context) (string, error)
	Import(ctx context.Context, data string) bool
	Reset(ctx context.Context)
	Seed(ctx context.Context) (*domain.Tour, error)
}
