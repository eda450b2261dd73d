package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viettour/backend/internal/domain"
	"github.com/viettour/backend/internal/repository"
)

// fakeStore is an in-memory repository.TourStore for service tests, with the
// local backend's contract: Update on a missing id is a silent no-op and
// Delete is idempotent.
type fakeStore struct {
	mu    sync.Mutex
	tours []domain.Tour
	fail  error
}

func (f *fakeStore) List(ctx context.Context) ([]domain.Tour, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	out := make([]domain.Tour, len(f.tours))
	copy(out, f.tours)
	return out, nil
}

func (f *fakeStore) GetByID(ctx context.Context, id string) (*domain.Tour, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	for i := range f.tours {
		if f.tours[i].ID == id {
			tour := f.tours[i]
			return &tour, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeStore) GetBySlug(ctx context.Context, slug string) (*domain.Tour, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tours {
		if f.tours[i].Slug == slug {
			tour := f.tours[i]
			return &tour, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeStore) ListByRegion(ctx context.Context, region domain.Region) ([]domain.Tour, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Tour{}
	for _, t := range f.tours {
		if t.Region == region {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeStore) Create(ctx context.Context, tour *domain.Tour) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.tours = append(f.tours, *tour)
	return nil
}

func (f *fakeStore) Update(ctx context.Context, tour *domain.Tour) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tours {
		if f.tours[i].ID == tour.ID {
			f.tours[i] = *tour
			return nil
		}
	}
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	filtered := f.tours[:0]
	for _, t := range f.tours {
		if t.ID != id {
			filtered = append(filtered, t)
		}
	}
	f.tours = filtered
	return nil
}

func (f *fakeStore) ReplaceAll(ctx context.Context, tours []domain.Tour) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tours = append([]domain.Tour{}, tours...)
	return nil
}

func (f *fakeStore) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tours = nil
	return nil
}

func newTestStore(fake *fakeStore) *repository.Tours {
	return repository.NewTours(nil, fake, nil)
}

func testTour(id, slug string, region domain.Region) domain.Tour {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	return domain.Tour{
		ID:        id,
		Slug:      slug,
		Title:     "Tour " + slug,
		Region:    region,
		Image:     "https://cdn.example.com/" + slug + ".jpg",
		Duration:  "1 ngày",
		Transport: "Xe ô tô",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCatalogStartsUninitialized(t *testing.T) {
	t.Parallel()

	catalog := newCatalogService(newTestStore(&fakeStore{}))
	assert.Equal(t, CatalogUninitialized, catalog.State())
	assert.Empty(t, catalog.Tours())
}

func TestCatalogRefreshLoadsSnapshot(t *testing.T) {
	t.Parallel()

	fake := &fakeStore{tours: []domain.Tour{
		testTour("t1", "quy-nhon", domain.RegionBinhDinh),
		testTour("t2", "ha-noi", domain.RegionMienBac),
	}}
	catalog := newCatalogService(newTestStore(fake))

	catalog.Refresh(context.Background())

	assert.Equal(t, CatalogReady, catalog.State())
	require.Len(t, catalog.Tours(), 2)
}

func TestCatalogRefreshFailureYieldsEmptySnapshot(t *testing.T) {
	t.Parallel()

	fake := &fakeStore{tours: []domain.Tour{testTour("t1", "a", domain.RegionMienNam)}}
	catalog := newCatalogService(newTestStore(fake))
	catalog.Refresh(context.Background())
	require.Len(t, catalog.Tours(), 1)

	fake.mu.Lock()
	fake.fail = errors.New("redis down")
	fake.mu.Unlock()

	catalog.Refresh(context.Background())
	assert.Equal(t, CatalogReady, catalog.State())
	assert.Empty(t, catalog.Tours())
}

func TestCatalogAddIsOptimistic(t *testing.T) {
	t.Parallel()

	// Even when the store write fails, the snapshot keeps the new record
	// until the next Refresh.
	fake := &fakeStore{fail: errors.New("redis down")}
	catalog := newCatalogService(newTestStore(fake))

	tour := testTour("t1", "new-tour", domain.RegionMienNam)
	catalog.Add(context.Background(), &tour)

	require.Len(t, catalog.Tours(), 1)
	assert.Equal(t, "new-tour", catalog.Tours()[0].Slug)
}

func TestCatalogUpdateReplacesSnapshotEntry(t *testing.T) {
	t.Parallel()

	fake := &fakeStore{tours: []domain.Tour{testTour("t1", "old-slug", domain.RegionMienNam)}}
	catalog := newCatalogService(newTestStore(fake))
	catalog.Refresh(context.Background())

	updated := testTour("t1", "new-slug", domain.RegionMienNam)
	catalog.Update(context.Background(), &updated)

	tours := catalog.Tours()
	require.Len(t, tours, 1)
	assert.Equal(t, "new-slug", tours[0].Slug)

	stored, err := newTestStore(fake).GetByID(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, "new-slug", stored.Slug)
}

func TestCatalogRemove(t *testing.T) {
	t.Parallel()

	fake := &fakeStore{tours: []domain.Tour{
		testTour("t1", "a", domain.RegionMienNam),
		testTour("t2", "b", domain.RegionMienBac),
	}}
	catalog := newCatalogService(newTestStore(fake))
	catalog.Refresh(context.Background())

	catalog.Remove(context.Background(), "t1")

	tours := catalog.Tours()
	require.Len(t, tours, 1)
	assert.Equal(t, "t2", tours[0].ID)
}

func TestCatalogToursByRegion(t *testing.T) {
	t.Parallel()

	fake := &fakeStore{tours: []domain.Tour{
		testTour("t1", "a", domain.RegionBinhDinh),
		testTour("t2", "b", domain.RegionMienBac),
		testTour("t3", "c", domain.RegionBinhDinh),
	}}
	catalog := newCatalogService(newTestStore(fake))
	catalog.Refresh(context.Background())

	tours := catalog.ToursByRegion(domain.RegionBinhDinh)
	require.Len(t, tours, 2)
	assert.Empty(t, catalog.ToursByRegion(domain.RegionMienNam))
}

func TestCatalogTourBySlug(t *testing.T) {
	t.Parallel()

	fake := &fakeStore{tours: []domain.Tour{testTour("t1", "quy-nhon", domain.RegionBinhDinh)}}
	catalog := newCatalogService(newTestStore(fake))
	catalog.Refresh(context.Background())

	tour, err := catalog.TourBySlug("quy-nhon")
	require.NoError(t, err)
	assert.Equal(t, "t1", tour.ID)

	_, err = catalog.TourBySlug("missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogSubscribeNotifiesOnMutation(t *testing.T) {
	t.Parallel()

	catalog := newCatalogService(newTestStore(&fakeStore{}))
	ch, cancel := catalog.Subscribe()
	defer cancel()

	tour := testTour("t1", "a", domain.RegionMienNam)
	catalog.Add(context.Background(), &tour)

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected a change notification")
	}
}

func TestCatalogSubscribeCancelStopsNotifications(t *testing.T) {
	t.Parallel()

	catalog := newCatalogService(newTestStore(&fakeStore{}))
	ch, cancel := catalog.Subscribe()
	cancel()

	tour := testTour("t1", "a", domain.RegionMienNam)
	catalog.Add(context.Background(), &tour)

	select {
	case <-ch:
		t.Fatal("cancelled subscription must not receive notifications")
	default:
	}
}
