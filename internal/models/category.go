// server/internal/models/category.go
package models

import "time"

// Category is a fixed classification bucket for facilities. Rows are seeded
// reference data; the slug is the URL-stable identifier.
type Category struct {
	ID          int64     `db:"id" json:"id"`
	Slug        string    `db:"slug" json:"slug"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	SortOrder   int       `db:"sort_order" json:"sortOrder"`
	IsActive    bool      `db:"is_active" json:"isActive"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`

	// FacilityCount is filled by list/stats queries, not stored.
	FacilityCount int64 `db:"facility_count" json:"facilityCount"`
}

// StateCount is one row of a per-state facility breakdown.
type StateCount struct {
	State string `db:"state" json:"state"`
	Count int64  `db:"count" json:"count"`
}

// CityCount is one row of a per-city facility breakdown.
type CityCount struct {
	City  string `db:"city" json:"city"`
	State string `db:"state" json:"state"`
	Count int64  `db:"count" json:"count"`
}
