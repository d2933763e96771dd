// server/internal/geocoding/queue.go
package geocoding

import (
	"context"

	"go.uber.org/zap"
)

// PendingFacility is one facility still lacking coordinates.
type PendingFacility struct {
	ID     int64  `db:"id"`
	Name   string `db:"name"`
	Street string `db:"street"`
	City   string `db:"city"`
	State  string `db:"state"`
	Zip    string `db:"zip"`
}

// Address returns the free-text form sent to providers.
func (f PendingFacility) Address() string {
	return FormatAddress(f.Street, f.City, f.State, f.Zip)
}

// Store is the persistence surface the queue needs.
type Store interface {
	FacilitiesMissingLocation(ctx context.Context, limit int) ([]PendingFacility, error)
	SaveLocation(ctx context.Context, facilityID int64, res *Result) error
}

// Stats reports one queue run.
type Stats struct {
	Resolved   int
	Unresolved int
	Failed     int
}

// Queue walks facilities without coordinates and resolves them one at a time.
// Provider failures degrade to "unresolved" for that record; the batch always
// continues.
type Queue struct {
	store    Store
	provider Provider
	logger   *zap.Logger
}

func NewQueue(store Store, provider Provider, logger *zap.Logger) *Queue {
	return &Queue{store: store, provider: provider, logger: logger}
}

// Run processes up to limit facilities and reports the outcome.
func (q *Queue) Run(ctx context.Context, limit int) (Stats, error) {
	var stats Stats

	pending, err := q.store.FacilitiesMissingLocation(ctx, limit)
	if err != nil {
		return stats, err
	}
	q.logger.Info("geocoding batch started",
		zap.String("provider", q.provider.Name()),
		zap.Int("pending", len(pending)))

	for _, facility := range pending {
		if ctx.Err() != nil {
			return stats, ctx.Err()
		}

		address := facility.Address()
		if address == "" {
			stats.Unresolved++
			continue
		}

		res, err := q.provider.Geocode(ctx, address)
		if err != nil {
			q.logger.Warn("geocode failed",
				zap.Int64("facility", facility.ID),
				zap.String("address", address),
				zap.Error(err))
			stats.Failed++
			continue
		}
		if res == nil {
			q.logger.Debug("no geocode match",
				zap.Int64("facility", facility.ID),
				zap.String("address", address))
			stats.Unresolved++
			continue
		}

		if err := q.store.SaveLocation(ctx, facility.ID, res); err != nil {
			q.logger.Warn("saving coordinates failed",
				zap.Int64("facility", facility.ID),
				zap.Error(err))
			stats.Failed++
			continue
		}
		stats.Resolved++
	}

	q.logger.Info("geocoding batch finished",
		zap.Int("resolved", stats.Resolved),
		zap.Int("unresolved", stats.Unresolved),
		zap.Int("failed", stats.Failed))
	return stats, nil
}
