// server/internal/database/schema.go
package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// statements are applied in order on every startup; each is idempotent.
var statements = []string{
	`CREATE EXTENSION IF NOT EXISTS postgis`,

	`CREATE TABLE IF NOT EXISTS categories (
		id          SERIAL PRIMARY KEY,
		slug        VARCHAR(100) UNIQUE NOT NULL,
		name        VARCHAR(200) NOT NULL,
		description TEXT         NOT NULL DEFAULT '',
		sort_order  INT          NOT NULL DEFAULT 0,
		is_active   BOOLEAN      NOT NULL DEFAULT TRUE,
		created_at  TIMESTAMPTZ  NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS facilities (
		id                 SERIAL PRIMARY KEY,
		name               VARCHAR(300) NOT NULL,
		category_id        INT          NOT NULL REFERENCES categories(id),
		street             VARCHAR(300) NOT NULL DEFAULT '',
		city               VARCHAR(150) NOT NULL DEFAULT '',
		state              VARCHAR(2)   NOT NULL DEFAULT '',
		zip                VARCHAR(10)  NOT NULL DEFAULT '',
		latitude           DOUBLE PRECISION,
		longitude          DOUBLE PRECISION,
		location           GEOGRAPHY(POINT, 4326),
		phone              VARCHAR(30)  NOT NULL DEFAULT '',
		email              VARCHAR(200) NOT NULL DEFAULT '',
		website            VARCHAR(300) NOT NULL DEFAULT '',
		attributes         JSONB        NOT NULL DEFAULT '{}',
		source             VARCHAR(100) NOT NULL DEFAULT '',
		source_id          VARCHAR(150) NOT NULL DEFAULT '',
		geocode_source     VARCHAR(50),
		geocode_confidence VARCHAR(10),
		is_active          BOOLEAN      NOT NULL DEFAULT TRUE,
		is_verified        BOOLEAN      NOT NULL DEFAULT FALSE,
		search_text        TSVECTOR,
		created_at         TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
		updated_at         TIMESTAMPTZ  NOT NULL DEFAULT NOW()
	)`,

	// Database-enforced identity; the importer inserts with ON CONFLICT DO
	// NOTHING so concurrent imports cannot create duplicates.
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_facilities_identity
		ON facilities (lower(name), lower(city), state, category_id)`,

	`CREATE INDEX IF NOT EXISTS idx_facilities_category ON facilities(category_id)`,
	`CREATE INDEX IF NOT EXISTS idx_facilities_state    ON facilities(state)`,
	`CREATE INDEX IF NOT EXISTS idx_facilities_search   ON facilities USING GIN (search_text)`,
	`CREATE INDEX IF NOT EXISTS idx_facilities_location ON facilities USING GIST (location)`,

	// search_text is maintained by a write-time trigger so the API never has
	// to recompute tsvectors at query time.
	`CREATE OR REPLACE FUNCTION facilities_search_text_refresh() RETURNS trigger AS $$
	BEGIN
		NEW.search_text :=
			setweight(to_tsvector('english', coalesce(NEW.name, '')), 'A') ||
			setweight(to_tsvector('english', coalesce(NEW.city, '')), 'B') ||
			setweight(to_tsvector('english', coalesce(NEW.state, '')), 'B') ||
			setweight(to_tsvector('english', coalesce(NEW.street, '')), 'C');
		RETURN NEW;
	END
	$$ LANGUAGE plpgsql`,

	`DROP TRIGGER IF EXISTS trg_facilities_search_text ON facilities`,
	`CREATE TRIGGER trg_facilities_search_text
		BEFORE INSERT OR UPDATE OF name, city, state, street ON facilities
		FOR EACH ROW EXECUTE FUNCTION facilities_search_text_refresh()`,

	// Junction tables for multi-category / commodity / railroad assignment.
	// The query layer does not read them yet; the schema keeps the door open.
	`CREATE TABLE IF NOT EXISTS facility_categories (
		facility_id INT NOT NULL REFERENCES facilities(id),
		category_id INT NOT NULL REFERENCES categories(id),
		PRIMARY KEY (facility_id, category_id)
	)`,

	`CREATE TABLE IF NOT EXISTS commodities (
		id   SERIAL PRIMARY KEY,
		name VARCHAR(150) UNIQUE NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS facility_commodities (
		facility_id  INT NOT NULL REFERENCES facilities(id),
		commodity_id INT NOT NULL REFERENCES commodities(id),
		PRIMARY KEY (facility_id, commodity_id)
	)`,

	`CREATE TABLE IF NOT EXISTS railroads (
		id             SERIAL PRIMARY KEY,
		name           VARCHAR(200) UNIQUE NOT NULL,
		reporting_mark VARCHAR(10)  NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS facility_railroads (
		facility_id INT NOT NULL REFERENCES facilities(id),
		railroad_id INT NOT NULL REFERENCES railroads(id),
		PRIMARY KEY (facility_id, railroad_id)
	)`,

	`CREATE TABLE IF NOT EXISTS search_logs (
		id           UUID PRIMARY KEY,
		query        TEXT         NOT NULL DEFAULT '',
		filters      JSONB        NOT NULL DEFAULT '{}',
		result_count INT          NOT NULL DEFAULT 0,
		ip_address   VARCHAR(45)  NOT NULL DEFAULT '',
		user_agent   VARCHAR(300) NOT NULL DEFAULT '',
		created_at   TIMESTAMPTZ  NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS admin_users (
		id            SERIAL PRIMARY KEY,
		email         VARCHAR(200) UNIQUE NOT NULL,
		name          VARCHAR(200) NOT NULL,
		password_hash VARCHAR(100) NOT NULL,
		role          VARCHAR(30)  NOT NULL DEFAULT 'admin',
		created_at    TIMESTAMPTZ  NOT NULL DEFAULT NOW()
	)`,
}

// Migrate applies the schema statements one at a time.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("execute ddl: %w", err)
		}
	}
	return nil
}
