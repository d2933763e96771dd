// server/internal/database/postgres.go
package database

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	"github.com/jmoiron/sqlx"
)

// Connect opens a PostgreSQL connection pool, verifies it with a ping and
// applies the idempotent schema DDL.
func Connect(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	for {
		if err = db.PingContext(ctx); err == nil {
			break
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("postgres: ping: %w", err)
		case <-time.After(2 * time.Second):
		}
	}

	if err := Migrate(ctx, db); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return db, nil
}
