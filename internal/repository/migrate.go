package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// EnsureSchema creates the tours table when it does not exist yet. List-like
// fields live in JSON columns; the structured itinerary mirror is one of
// them, the raw itinerary text stays a TEXT column.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	const query = `
	CREATE TABLE IF NOT EXISTS tours (
		id                VARCHAR(64)  NOT NULL,
		slug              VARCHAR(255) NOT NULL,
		title             VARCHAR(512) NOT NULL,
		region            VARCHAR(64)  NOT NULL,
		image             TEXT         NOT NULL,
		price             VARCHAR(255) NOT NULL DEFAULT '',
		duration          VARCHAR(255) NOT NULL,
		transport         VARCHAR(255) NOT NULL,
		gallery           JSON,
		itinerary_text    MEDIUMTEXT,
		itinerary         JSON,
		included_services JSON,
		excluded_services JSON,
		policies          JSON,
		policies_text     MEDIUMTEXT,
		created_at        DATETIME     NOT NULL,
		updated_at        DATETIME     NOT NULL,
		PRIMARY KEY (id),
		KEY idx_tours_region (region),
		KEY idx_tours_updated_at (updated_at)
	);
	`
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("ensure tours schema failed: %w", err)
	}
	return nil
}
