package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/viettour/backend/internal/domain"
	"github.com/viettour/backend/pkg/logger"
)

// Tours is the record store facade. When the remote backend is judged
// configured by the injected predicate, every operation is attempted there
// first; any remote failure is logged and the call transparently falls back
// to the local backend. The choice is re-evaluated per call, never sticky.
//
// Slug uniqueness is not enforced at write time; lookups resolve duplicates
// as first match wins in the backend's list order.
type Tours struct {
	remote     TourStore
	local      TourStore
	configured func() bool
}

func NewTours(remote, local TourStore, remoteConfigured func() bool) *Tours {
	return &Tours{remote: remote, local: local, configured: remoteConfigured}
}

func (s *Tours) remoteEnabled() bool {
	return s.remote != nil && s.configured != nil && s.configured()
}

func (s *Tours) fallback(op string, err error) {
	if !errors.Is(err, domain.ErrNotFound) {
		logger.Warn("remote store failed, falling back to local store", zap.String("op", op), zap.Error(err))
	}
}

func (s *Tours) List(ctx context.Context) ([]domain.Tour, error) {
	if s.remoteEnabled() {
		tours, err := s.remote.List(ctx)
		if err == nil {
			return tours, nil
		}
		s.fallback("list", err)
	}
	return s.local.List(ctx)
}

func (s *Tours) GetByID(ctx context.Context, id string) (*domain.Tour, error) {
	if s.remoteEnabled() {
		tour, err := s.remote.GetByID(ctx, id)
		if err == nil {
			return tour, nil
		}
		s.fallback("get_by_id", err)
	}
	return s.local.GetByID(ctx, id)
}

func (s *Tours) GetBySlug(ctx context.Context, slug string) (*domain.Tour, error) {
	if s.remoteEnabled() {
		tour, err := s.remote.GetBySlug(ctx, slug)
		if err == nil {
			return tour, nil
		}
		s.fallback("get_by_slug", err)
	}
	return s.local.GetBySlug(ctx, slug)
}

func (s *Tours) ListByRegion(ctx context.Context, region domain.Region) ([]domain.Tour, error) {
	if s.remoteEnabled() {
		tours, err := s.remote.ListByRegion(ctx, region)
		if err == nil {
			return tours, nil
		}
		s.fallback("list_by_region", err)
	}
	return s.local.ListByRegion(ctx, region)
}

func (s *Tours) Create(ctx context.Context, tour *domain.Tour) error {
	if s.remoteEnabled() {
		err := s.remote.Create(ctx, tour)
		if err == nil {
			return nil
		}
		s.fallback("create", err)
	}
	return s.local.Create(ctx, tour)
}

func (s *Tours) Update(ctx context.Context, tour *domain.Tour) error {
	if s.remoteEnabled() {
		err := s.remote.Update(ctx, tour)
		if err == nil {
			return nil
		}
		s.fallback("update", err)
	}
	return s.local.Update(ctx, tour)
}

func (s *Tours) Delete(ctx context.Context, id string) error {
	if s.remoteEnabled() {
		err := s.remote.Delete(ctx, id)
		if err == nil {
			return nil
		}
		s.fallback("delete", err)
	}
	return s.local.Delete(ctx, id)
}

func (s *Tours) ReplaceAll(ctx context.Context, tours []domain.Tour) error {
	if s.remoteEnabled() {
		err := s.remote.ReplaceAll(ctx, tours)
		if err == nil {
			return nil
		}
		s.fallback("replace_all", err)
	}
	return s.local.ReplaceAll(ctx, tours)
}

func (s *Tours) Clear(ctx context.Context) error {
	if s.remoteEnabled() {
		if err := s.remote.Clear(ctx); err != nil {
			s.fallback("clear", err)
		}
	}
	return s.local.Clear(ctx)
}

// ExportJSON serializes the current record list as a pretty-printed JSON
// array, the interchange format accepted back by ImportJSON.
func (s *Tours) ExportJSON(ctx context.Context) (string, error) {
	tours, err := s.List(ctx)
	if err != nil {
		return "", err
	}
	if tours == nil {
		tours = []domain.Tour{}
	}
	data, err := json.MarshalIndent(tours, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode tours export failed: %w", err)
	}
	return string(data), nil
}

// ImportJSON parses the export format and replaces the store contents when
// the top-level shape is a JSON array. Malformed input is logged and reported
// as false without mutating anything.
func (s *Tours) ImportJSON(ctx context.Context, data string) bool {
	if !strings.HasPrefix(strings.TrimSpace(data), "[") {
		logger.Warn("tours import rejected: not a JSON array")
		return false
	}
	var tours []domain.Tour
	if err := json.Unmarshal([]byte(data), &tours); err != nil {
		logger.Warn("tours import rejected", zap.Error(err))
		return false
	}
	if err := s.ReplaceAll(ctx, tours); err != nil {
		logger.Error("tours import failed", zap.Error(err))
		return false
	}
	return true
}
