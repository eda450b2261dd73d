package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/viettour/backend/internal/domain"
)

// tourMySQL is the remote backend: one row per tour record, listed in
// descending update-time order. Timestamps are stored as native DATETIME and
// surface as time.Time through the driver's ParseTime mode.
type tourMySQL struct {
	db *sqlx.DB
}

func NewTourMySQL(db *sqlx.DB) TourStore {
	return &tourMySQL{db: db}
}

const tourColumns = `id, slug, title, region, image, price, duration, transport, gallery, itinerary_text, itinerary, included_services, excluded_services, policies, policies_text, created_at, updated_at`

func (r *tourMySQL) List(ctx context.Context) ([]domain.Tour, error) {
	const query = `
	SELECT ` + tourColumns + ` FROM tours ORDER BY updated_at DESC;
	`
	tours := []domain.Tour{}
	if err := r.db.SelectContext(ctx, &tours, query); err != nil {
		return nil, fmt.Errorf("select tours failed: %w", err)
	}
	return tours, nil
}

func (r *tourMySQL) GetByID(ctx context.Context, id string) (*domain.Tour, error) {
	const query = `
	SELECT ` + tourColumns + ` FROM tours WHERE id = ?;
	`
	var tour domain.Tour
	if err := r.db.GetContext(ctx, &tour, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select tour by id failed: %w", err)
	}
	return &tour, nil
}

// GetBySlug scans the full list so that duplicate slugs resolve the same way
// on every backend: first match in update-time order wins.
func (r *tourMySQL) GetBySlug(ctx context.Context, slug string) (*domain.Tour, error) {
	tours, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tours {
		if tours[i].Slug == slug {
			return &tours[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *tourMySQL) ListByRegion(ctx context.Context, region domain.Region) ([]domain.Tour, error) {
	const query = `
	SELECT ` + tourColumns + ` FROM tours WHERE region = ? ORDER BY updated_at DESC;
	`
	tours := []domain.Tour{}
	if err := r.db.SelectContext(ctx, &tours, query, region); err != nil {
		return nil, fmt.Errorf("select tours by region failed: %w", err)
	}
	return tours, nil
}

func (r *tourMySQL) Create(ctx context.Context, tour *domain.Tour) error {
	const query = `
	INSERT INTO tours (` + tourColumns + `)
	VALUES (:id, :slug, :title, :region, :image, :price, :duration, :transport, :gallery, :itinerary_text, :itinerary, :included_services, :excluded_services, :policies, :policies_text, :created_at, :updated_at);
	`
	if _, err := r.db.NamedExecContext(ctx, query, tour); err != nil {
		return fmt.Errorf("insert tour failed: %w", err)
	}
	return nil
}

// Update touches zero rows without error when the id is unknown; the remote
// backend does not share the local backend's silent-no-op guarantee and that
// asymmetry is deliberate.
func (r *tourMySQL) Update(ctx context.Context, tour *domain.Tour) error {
	const query = `
	UPDATE tours SET
		slug = :slug,
		title = :title,
		region = :region,
		image = :image,
		price = :price,
		duration = :duration,
		transport = :transport,
		gallery = :gallery,
		itinerary_text = :itinerary_text,
		itinerary = :itinerary,
		included_services = :included_services,
		excluded_services = :excluded_services,
		policies = :policies,
		policies_text = :policies_text,
		updated_at = :updated_at
	WHERE id = :id;
	`
	if _, err := r.db.NamedExecContext(ctx, query, tour); err != nil {
		return fmt.Errorf("update tour failed: %w", err)
	}
	return nil
}

func (r *tourMySQL) Delete(ctx context.Context, id string) error {
	const query = `
	DELETE FROM tours WHERE id = ?;
	`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete tour failed: %w", err)
	}
	return nil
}

// ReplaceAll clears the table and reinserts row by row, not inside a
// transaction: a failure midway leaves a partially repopulated store, which
// import/restore callers accept.
func (r *tourMySQL) ReplaceAll(ctx context.Context, tours []domain.Tour) error {
	if err := r.Clear(ctx); err != nil {
		return err
	}
	for i := range tours {
		if err := r.Create(ctx, &tours[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *tourMySQL) Clear(ctx context.Context) error {
	const query = `
	DELETE FROM tours;
	`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("clear tours failed: %w", err)
	}
	return nil
}
