package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viettour/backend/internal/domain"
)

// memStore is an in-memory TourStore with the local backend's contract:
// Update on a missing id is a silent no-op and Delete is idempotent.
type memStore struct {
	mu    sync.Mutex
	tours []domain.Tour
	fail  error
}

func (m *memStore) List(ctx context.Context) ([]domain.Tour, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	out := make([]domain.Tour, len(m.tours))
	copy(out, m.tours)
	return out, nil
}

func (m *memStore) GetByID(ctx context.Context, id string) (*domain.Tour, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	for i := range m.tours {
		if m.tours[i].ID == id {
			tour := m.tours[i]
			return &tour, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memStore) GetBySlug(ctx context.Context, slug string) (*domain.Tour, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	for i := range m.tours {
		if m.tours[i].Slug == slug {
			tour := m.tours[i]
			return &tour, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memStore) ListByRegion(ctx context.Context, region domain.Region) ([]domain.Tour, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	out := []domain.Tour{}
	for _, t := range m.tours {
		if t.Region == region {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memStore) Create(ctx context.Context, tour *domain.Tour) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.tours = append(m.tours, *tour)
	return nil
}

func (m *memStore) Update(ctx context.Context, tour *domain.Tour) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	for i := range m.tours {
		if m.tours[i].ID == tour.ID {
			m.tours[i] = *tour
			return nil
		}
	}
	return nil
}

func (m *memStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	filtered := m.tours[:0]
	for _, t := range m.tours {
		if t.ID != id {
			filtered = append(filtered, t)
		}
	}
	m.tours = filtered
	return nil
}

func (m *memStore) ReplaceAll(ctx context.Context, tours []domain.Tour) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.tours = append([]domain.Tour{}, tours...)
	return nil
}

func (m *memStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.tours = nil
	return nil
}

func sampleTour(id, slug string, region domain.Region) domain.Tour {
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

func alwaysRemote() bool { return true }

func TestToursRemoteFirst(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	remote := &memStore{tours: []domain.Tour{sampleTour("r1", "remote-tour", domain.RegionMienBac)}}
	local := &memStore{tours: []domain.Tour{sampleTour("l1", "local-tour", domain.RegionMienNam)}}
	store := NewTours(remote, local, alwaysRemote)

	tours, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, tours, 1)
	assert.Equal(t, "r1", tours[0].ID)
}

func TestToursFallsBackOnRemoteFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	remote := &memStore{fail: errors.New("connection refused")}
	local := &memStore{tours: []domain.Tour{sampleTour("l1", "local-tour", domain.RegionMienNam)}}
	store := NewTours(remote, local, alwaysRemote)

	tours, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, tours, 1)
	assert.Equal(t, "l1", tours[0].ID)
}

func TestToursFallbackIsPerCall(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	remote := &memStore{
		tours: []domain.Tour{sampleTour("r1", "remote-tour", domain.RegionMienBac)},
		fail:  errors.New("connection refused"),
	}
	local := &memStore{}
	store := NewTours(remote, local, alwaysRemote)

	_, err := store.List(ctx)
	require.NoError(t, err)

	// The remote recovers; the very next call must use it again.
	remote.mu.Lock()
	remote.fail = nil
	remote.mu.Unlock()

	tours, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, tours, 1)
	assert.Equal(t, "r1", tours[0].ID)
}

func TestToursLocalOnlyWhenNotConfigured(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	remote := &memStore{}
	local := &memStore{}
	store := NewTours(remote, local, func() bool { return false })

	tour := sampleTour("t1", "saigon-city", domain.RegionMienNam)
	require.NoError(t, store.Create(ctx, &tour))

	assert.Empty(t, remote.tours)
	require.Len(t, local.tours, 1)

	got, err := store.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "saigon-city", got.Slug)
}

func TestToursGetBySlugFirstMatchWins(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	local := &memStore{tours: []domain.Tour{
		sampleTour("t1", "dup-slug", domain.RegionMienBac),
		sampleTour("t2", "dup-slug", domain.RegionMienNam),
	}}
	store := NewTours(nil, local, nil)

	got, err := store.GetBySlug(ctx, "dup-slug")
	require.NoError(t, err)
	assert.Equal(t, "t1", got.ID)
}

func TestToursGetByIDNotFound(t *testing.T) {
	t.Parallel()

	store := NewTours(nil, &memStore{}, nil)

	_, err := store.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestToursDeleteIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	local := &memStore{tours: []domain.Tour{sampleTour("t1", "a", domain.RegionBinhDinh)}}
	store := NewTours(nil, local, nil)

	require.NoError(t, store.Delete(ctx, "t1"))
	require.NoError(t, store.Delete(ctx, "t1"))
	assert.Empty(t, local.tours)
}

func TestToursListByRegion(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	local := &memStore{tours: []domain.Tour{
		sampleTour("t1", "a", domain.RegionBinhDinh),
		sampleTour("t2", "b", domain.RegionMienBac),
		sampleTour("t3", "c", domain.RegionBinhDinh),
	}}
	store := NewTours(nil, local, nil)

	tours, err := store.ListByRegion(ctx, domain.RegionBinhDinh)
	require.NoError(t, err)
	require.Len(t, tours, 2)
	assert.Equal(t, "t1", tours[0].ID)
	assert.Equal(t, "t3", tours[1].ID)
}

func TestToursClearRunsBothBackends(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	remote := &memStore{tours: []domain.Tour{sampleTour("r1", "a", domain.RegionMienBac)}}
	local := &memStore{tours: []domain.Tour{sampleTour("l1", "b", domain.RegionMienNam)}}
	store := NewTours(remote, local, alwaysRemote)

	require.NoError(t, store.Clear(ctx))
	assert.Empty(t, remote.tours)
	assert.Empty(t, local.tours)
}

func TestToursExportImportRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	local := &memStore{tours: []domain.Tour{
		sampleTour("t1", "quy-nhon", domain.RegionBinhDinh),
		sampleTour("t2", "ha-noi", domain.RegionMienBac),
	}}
	store := NewTours(nil, local, nil)

	data, err := store.ExportJSON(ctx)
	require.NoError(t, err)

	require.NoError(t, store.Clear(ctx))
	require.True(t, store.ImportJSON(ctx, data))

	tours, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, tours, 2)
	assert.Equal(t, "quy-nhon", tours[0].Slug)
	assert.Equal(t, "ha-noi", tours[1].Slug)
}

func TestToursImportRejectsMalformedInput(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	local := &memStore{tours: []domain.Tour{sampleTour("t1", "keep-me", domain.RegionMienNam)}}
	store := NewTours(nil, local, nil)

	for _, data := range []string{"", "not json", `{"id":"x"}`, "null", `[{"id":`} {
		assert.False(t, store.ImportJSON(ctx, data), "input %q should be rejected", data)
	}

	tours, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, tours, 1)
	assert.Equal(t, "keep-me", tours[0].Slug)
}

func TestToursExportEmptyStore(t *testing.T) {
	t.Parallel()

	store := NewTours(nil, &memStore{}, nil)

	data, err := store.ExportJSON(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "[]", data)
}
