package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/viettour/backend/internal/domain"
	"github.com/viettour/backend/internal/repository"
	"github.com/viettour/backend/pkg/logger"
)

type CatalogState int

const (
	CatalogUninitialized CatalogState = iota
	CatalogLoading
	CatalogReady
)

type catalogService struct {
	store *repository.Tours

	mu       sync.RWMutex
	snapshot []domain.Tour
	state    CatalogState

	subMu   sync.Mutex
	subs    map[int]chan struct{}
	nextSub int
}

func newCatalogService(store *repository.Tours) *catalogService {
	return &catalogService{
		store: store,
		subs:  make(map[int]chan struct{}),
	}
}

// Refresh replaces the snapshot wholesale from the store. On failure the
// snapshot becomes empty rather than resurrecting any built-in demo data; an
// admin who deleted everything keeps an empty catalog.
func (s *catalogService) Refresh(ctx context.Context) {
	s.mu.Lock()
	s.state = CatalogLoading
	s.mu.Unlock()

	tours, err := s.store.List(ctx)
	if err != nil {
		logger.Error("catalog refresh failed", zap.Error(err))
		tours = []domain.Tour{}
	}

	s.mu.Lock()
	s.snapshot = tours
	s.state = CatalogReady
	s.mu.Unlock()
}

func (s *catalogService) State() CatalogState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *catalogService) Tours() []domain.Tour {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Tour, len(s.snapshot))
	copy(out, s.snapshot)
	return out
}

func (s *catalogService) ToursByRegion(region domain.Region) []domain.Tour {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Tour{}
	for _, t := range s.snapshot {
		if t.Region == region {
			out = append(out, t)
		}
	}
	return out
}

func (s *catalogService) TourBySlug(slug string) (*domain.Tour, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.snapshot {
		if s.snapshot[i].Slug == slug {
			tour := s.snapshot[i]
			return &tour, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Add appends to the snapshot before the store call settles. The store call
// can fail silently per the facade's contract, so the snapshot may run ahead
// of persisted truth until the next Refresh; that trade-off is accepted for
// a single-admin deployment.
func (s *catalogService) Add(ctx context.Context, tour *domain.Tour) {
	s.mu.Lock()
	s.snapshot = append(s.snapshot, *tour)
	s.mu.Unlock()

	if err := s.store.Create(ctx, tour); err != nil {
		logger.Error("catalog add failed", zap.Error(err))
	}
	s.notify()
}

func (s *catalogService) Update(ctx context.Context, tour *domain.Tour) {
	s.mu.Lock()
	for i := range s.snapshot {
		if s.snapshot[i].ID == tour.ID {
			s.snapshot[i] = *tour
			break
		}
	}
	s.mu.Unlock()

	if err := s.store.Update(ctx, tour); err != nil {
		logger.Error("catalog update failed", zap.Error(err))
	}
	s.notify()
}

func (s *catalogService) Remove(ctx context.Context, id string) {
	s.mu.Lock()
	filtered := s.snapshot[:0]
	for _, t := range s.snapshot {
		if t.ID != id {
			filtered = append(filtered, t)
		}
	}
	s.snapshot = filtered
	s.mu.Unlock()

	if err := s.store.Delete(ctx, id); err != nil {
		logger.Error("catalog remove failed", zap.Error(err))
	}
	s.notify()
}

// Subscribe registers a change listener. The returned channel receives one
// notification per mutation, coalesced when the listener lags; the cancel
// function must be called to release it.
func (s *catalogService) Subscribe() (<-chan struct{}, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan struct{}, 1)
	s.subs[id] = ch

	cancel := func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
	return ch, cancel
}

func (s *catalogService) notify() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
