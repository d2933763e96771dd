// server/internal/importer/importer.go
package importer

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// railcarStorageSlug is the one category the importer materializes on demand;
// every other slug must already exist in the reference table.
const railcarStorageSlug = "railcar-storage"

// ErrCategoryNotFound aborts the whole file before any row is touched.
var ErrCategoryNotFound = errors.New("category not found")

// Options controls one file import.
type Options struct {
	CategorySlug string
	Source       string
	Force        bool
}

// Stats reports the outcome of one file import.
type Stats struct {
	Imported int
	Skipped  int
}

type Importer struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func New(db *sqlx.DB, logger *zap.Logger) *Importer {
	return &Importer{db: db, logger: logger}
}

// execer is the slice of sqlx.Tx the row loop needs.
type execer interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// ImportRecords writes one file's records inside a single transaction. Any
// row-level error rolls back the entire file.
func (imp *Importer) ImportRecords(ctx context.Context, records []Record, opts Options) (Stats, error) {
	categoryID, err := imp.resolveCategory(ctx, opts.CategorySlug)
	if err != nil {
		return Stats{}, err
	}

	tx, err := imp.db.BeginTxx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin transaction: %w", err)
	}

	stats, err := importRows(ctx, tx, categoryID, records, opts, imp.logger)
	if err != nil {
		tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit: %w", err)
	}
	return stats, nil
}

// resolveCategory fails fast on an unknown slug, except the railcar storage
// category which is created when absent.
func (imp *Importer) resolveCategory(ctx context.Context, slug string) (int64, error) {
	var id int64
	err := imp.db.GetContext(ctx, &id, `SELECT id FROM categories WHERE slug = $1`, slug)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("resolve category %q: %w", slug, err)
	}

	if slug != railcarStorageSlug {
		return 0, fmt.Errorf("%w: %q", ErrCategoryNotFound, slug)
	}

	err = imp.db.GetContext(ctx, &id, `
		INSERT INTO categories (slug, name, description, sort_order)
		VALUES ($1, 'Railcar Storage', 'Track space for storing idle or surplus railcars', 999)
		ON CONFLICT (slug) DO UPDATE SET slug = EXCLUDED.slug
		RETURNING id`, slug)
	if err != nil {
		return 0, fmt.Errorf("create category %q: %w", slug, err)
	}
	imp.logger.Info("created missing category", zap.String("slug", slug))
	return id, nil
}

func importRows(ctx context.Context, tx execer, categoryID int64, records []Record, opts Options, logger *zap.Logger) (Stats, error) {
	var stats Stats

	for _, rec := range records {
		if rec.Name == "" || rec.State == "" {
			stats.Skipped++
			continue
		}

		if !opts.Force {
			var exists bool
			err := tx.GetContext(ctx, &exists, `
				SELECT EXISTS (
					SELECT 1 FROM facilities
					WHERE lower(name) = lower($1) AND lower(city) = lower($2)
						AND state = $3 AND category_id = $4
				)`, rec.Name, rec.City, rec.State, categoryID)
			if err != nil {
				return Stats{}, fmt.Errorf("duplicate check for %q: %w", rec.Name, err)
			}
			if exists {
				stats.Skipped++
				continue
			}
		}

		attrs, err := json.Marshal(rec.Attributes)
		if err != nil {
			return Stats{}, fmt.Errorf("encode attributes for %q: %w", rec.Name, err)
		}

		// The unique index is the real duplicate guard; the pre-check above
		// only keeps the skip counter honest.
		res, err := tx.ExecContext(ctx, `
			INSERT INTO facilities
				(name, category_id, street, city, state, zip, phone, email, website,
				 attributes, source, source_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			ON CONFLICT (lower(name), lower(city), state, category_id) DO NOTHING`,
			rec.Name, categoryID, rec.Street, rec.City, rec.State, rec.Zip,
			rec.Phone, rec.Email, rec.Website, attrs, opts.Source, rec.SourceID)
		if err != nil {
			return Stats{}, fmt.Errorf("insert %q: %w", rec.Name, err)
		}

		if n, _ := res.RowsAffected(); n == 0 {
			stats.Skipped++
		} else {
			stats.Imported++
		}
	}

	logger.Info("file import finished",
		zap.String("source", opts.Source),
		zap.Int("imported", stats.Imported),
		zap.Int("skipped", stats.Skipped))
	return stats, nil
}
