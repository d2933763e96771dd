// server/internal/models/facility.go
package models

import (
	"encoding/json"
	"time"
)

// Facility is a rail-industry business/location record. Category name and slug
// are always joined in from the categories table when a facility is read.
type Facility struct {
	ID           int64  `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	CategoryID   int64  `db:"category_id" json:"categoryId"`
	CategoryName string `db:"category_name" json:"categoryName"`
	CategorySlug string `db:"category_slug" json:"categorySlug"`

	Street string `db:"street" json:"street"`
	City   string `db:"city" json:"city"`
	State  string `db:"state" json:"state"` // 2-letter postal code
	Zip    string `db:"zip" json:"zip"`

	Latitude  *float64 `db:"latitude" json:"latitude"`
	Longitude *float64 `db:"longitude" json:"longitude"`

	Phone   string `db:"phone" json:"phone"`
	Email   string `db:"email" json:"email"`
	Website string `db:"website" json:"website"`

	// Attributes holds category-specific fields (commodities, railroads served,
	// hours, fleet size, ...) exactly as the importer captured them.
	Attributes json.RawMessage `db:"attributes" json:"attributes"`

	Source   string `db:"source" json:"source"`
	SourceID string `db:"source_id" json:"sourceId"`

	GeocodeSource     *string `db:"geocode_source" json:"geocodeSource,omitempty"`
	GeocodeConfidence *string `db:"geocode_confidence" json:"geocodeConfidence,omitempty"`

	IsActive   bool `db:"is_active" json:"isActive"`
	IsVerified bool `db:"is_verified" json:"isVerified"`

	// DistanceMiles is populated only by radius queries.
	DistanceMiles *float64 `db:"distance_miles" json:"distanceMiles,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
