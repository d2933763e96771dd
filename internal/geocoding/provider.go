// server/internal/geocoding/provider.go
package geocoding

import (
	"context"
	"strings"
)

// Confidence is the coarse accuracy tier reported with a geocoding result.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Result is one resolved address. A nil *Result from a provider means the
// address could not be resolved; that is not an error.
type Result struct {
	Latitude   float64
	Longitude  float64
	Confidence Confidence
	Source     string
}

// Provider resolves a free-text address to coordinates.
type Provider interface {
	Name() string
	Geocode(ctx context.Context, address string) (*Result, error)
}

// FormatAddress joins the address fields the way the providers expect.
func FormatAddress(street, city, state, zip string) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{street, city, state, zip} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
