package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/viettour/backend/internal/domain"
	"github.com/viettour/backend/pkg/logger"
)

// tourRedis is the local fallback backend: the entire record list lives as
// one JSON blob under a single fixed key and every mutation is a full
// read-modify-write of that blob. Data found under the legacy key is moved to
// the current key on load.
//
// Per the store's failure contract, read/write errors are logged and the
// operation degrades to a no-op with an empty result instead of surfacing to
// the caller.
type tourRedis struct {
	rdb       *redis.Client
	key       string
	legacyKey string
}

func NewTourRedis(rdb *redis.Client, key, legacyKey string) TourStore {
	return &tourRedis{rdb: rdb, key: key, legacyKey: legacyKey}
}

func (r *tourRedis) loadAll(ctx context.Context) ([]domain.Tour, error) {
	if legacy, err := r.rdb.Get(ctx, r.legacyKey).Result(); err == nil && legacy != "" {
		if err := r.rdb.Set(ctx, r.key, legacy, 0).Err(); err != nil {
			return nil, fmt.Errorf("migrate legacy tours key failed: %w", err)
		}
		if err := r.rdb.Del(ctx, r.legacyKey).Err(); err != nil {
			logger.Warn("delete legacy tours key failed", zap.Error(err))
		}
	}

	data, err := r.rdb.Get(ctx, r.key).Result()
	if errors.Is(err, redis.Nil) {
		return []domain.Tour{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read tours blob failed: %w", err)
	}

	var tours []domain.Tour
	if err := json.Unmarshal([]byte(data), &tours); err != nil {
		return nil, fmt.Errorf("decode tours blob failed: %w", err)
	}
	return tours, nil
}

func (r *tourRedis) saveAll(ctx context.Context, tours []domain.Tour) error {
	if tours == nil {
		tours = []domain.Tour{}
	}
	data, err := json.Marshal(tours)
	if err != nil {
		return fmt.Errorf("encode tours blob failed: %w", err)
	}
	if err := r.rdb.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("write tours blob failed: %w", err)
	}
	return nil
}

func (r *tourRedis) List(ctx context.Context) ([]domain.Tour, error) {
	tours, err := r.loadAll(ctx)
	if err != nil {
		logger.Error("local store list failed", zap.Error(err))
		return []domain.Tour{}, nil
	}
	return tours, nil
}

func (r *tourRedis) GetByID(ctx context.Context, id string) (*domain.Tour, error) {
	tours, _ := r.List(ctx)
	for i := range tours {
		if tours[i].ID == id {
			return &tours[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *tourRedis) GetBySlug(ctx context.Context, slug string) (*domain.Tour, error) {
	tours, _ := r.List(ctx)
	for i := range tours {
		if tours[i].Slug == slug {
			return &tours[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *tourRedis) ListByRegion(ctx context.Context, region domain.Region) ([]domain.Tour, error) {
	tours, _ := r.List(ctx)
	filtered := []domain.Tour{}
	for _, t := range tours {
		if t.Region == region {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

func (r *tourRedis) Create(ctx context.Context, tour *domain.Tour) error {
	tours, err := r.loadAll(ctx)
	if err != nil {
		logger.Error("local store create failed", zap.Error(err))
		return nil
	}
	tours = append(tours, *tour)
	if err := r.saveAll(ctx, tours); err != nil {
		logger.Error("local store create failed", zap.Error(err))
	}
	return nil
}

// Update silently does nothing when the id is not present; unknown ids are
// not an error at this layer.
func (r *tourRedis) Update(ctx context.Context, tour *domain.Tour) error {
	tours, err := r.loadAll(ctx)
	if err != nil {
		logger.Error("local store update failed", zap.Error(err))
		return nil
	}
	for i := range tours {
		if tours[i].ID == tour.ID {
			tours[i] = *tour
			if err := r.saveAll(ctx, tours); err != nil {
				logger.Error("local store update failed", zap.Error(err))
			}
			return nil
		}
	}
	return nil
}

func (r *tourRedis) Delete(ctx context.Context, id string) error {
	tours, err := r.loadAll(ctx)
	if err != nil {
		logger.Error("local store delete failed", zap.Error(err))
		return nil
	}
	filtered := tours[:0]
	for _, t := range tours {
		if t.ID != id {
			filtered = append(filtered, t)
		}
	}
	if err := r.saveAll(ctx, filtered); err != nil {
		logger.Error("local store delete failed", zap.Error(err))
	}
	return nil
}

func (r *tourRedis) ReplaceAll(ctx context.Context, tours []domain.Tour) error {
	if err := r.saveAll(ctx, tours); err != nil {
		logger.Error("local store replace failed", zap.Error(err))
	}
	return nil
}

func (r *tourRedis) Clear(ctx context.Context) error {
	if err := r.rdb.Del(ctx, r.key, r.legacyKey).Err(); err != nil {
		logger.Error("local store clear failed", zap.Error(err))
	}
	return nil
}
