// server/internal/geocoding/store.go
package geocoding

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// PostgresStore implements Store against the facilities table.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FacilitiesMissingLocation(ctx context.Context, limit int) ([]PendingFacility, error) {
	pending := []PendingFacility{}
	err := s.db.SelectContext(ctx, &pending, `
		SELECT id, name, street, city, state, zip
		FROM facilities
		WHERE is_active = TRUE AND location IS NULL
		ORDER BY id ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("select pending facilities: %w", err)
	}
	return pending, nil
}

func (s *PostgresStore) SaveLocation(ctx context.Context, facilityID int64, res *Result) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE facilities
		SET latitude = $1,
			longitude = $2,
			location = ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography,
			geocode_source = $3,
			geocode_confidence = $4,
			updated_at = NOW()
		WHERE id = $5`,
		res.Latitude, res.Longitude, res.Source, string(res.Confidence), facilityID)
	if err != nil {
		return fmt.Errorf("save location for facility %d: %w", facilityID, err)
	}
	return nil
}
