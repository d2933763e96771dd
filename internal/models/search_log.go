// server/internal/models/search_log.go
package models

import (
	"encoding/json"
	"time"
)

// SearchLog is an append-only analytics record of one search interaction.
// Writes are best-effort; a failed insert never surfaces to the caller.
type SearchLog struct {
	ID          string          `db:"id" json:"id"`
	Query       string          `db:"query" json:"query"`
	Filters     json.RawMessage `db:"filters" json:"filters"`
	ResultCount int             `db:"result_count" json:"resultCount"`
	IPAddress   string          `db:"ip_address" json:"ipAddress"`
	UserAgent   string          `db:"user_agent" json:"userAgent"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
}

// AdminUser backs the JWT-protected admin surface.
type AdminUser struct {
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	Name         string    `db:"name" json:"name"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}
