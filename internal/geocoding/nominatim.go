// server/internal/geocoding/nominatim.go
package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Nominatim resolves addresses against the OpenStreetMap Nominatim API. The
// public instance requires a minimum spacing between requests, enforced here
// as a blocking wait before each call.
type Nominatim struct {
	client      *http.Client
	baseURL     string
	userAgent   string
	minInterval time.Duration
	lastCall    time.Time
}

func NewNominatim(baseURL, userAgent string, minInterval time.Duration) *Nominatim {
	return &Nominatim{
		client:      &http.Client{Timeout: 15 * time.Second},
		baseURL:     baseURL,
		userAgent:   userAgent,
		minInterval: minInterval,
	}
}

func (n *Nominatim) Name() string { return "nominatim" }

type nominatimPlace struct {
	Lat   string `json:"lat"`
	Lon   string `json:"lon"`
	Class string `json:"class"`
	Type  string `json:"type"`
}

func (n *Nominatim) Geocode(ctx context.Context, address string) (*Result, error) {
	n.throttle(ctx)

	params := url.Values{}
	params.Set("q", address)
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("countrycodes", "us")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		n.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", n.userAgent)

	resp, err := n.client.Do(req)
	n.lastCall = time.Now()
	if err != nil {
		return nil, fmt.Errorf("nominatim request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim status %d", resp.StatusCode)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("nominatim decode: %w", err)
	}
	if len(places) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim lat %q: %w", places[0].Lat, err)
	}
	lng, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim lon %q: %w", places[0].Lon, err)
	}

	return &Result{
		Latitude:   lat,
		Longitude:  lng,
		Confidence: nominatimConfidence(places[0].Class, places[0].Type),
		Source:     n.Name(),
	}, nil
}

// throttle blocks until minInterval has passed since the previous call.
func (n *Nominatim) throttle(ctx context.Context) {
	if n.lastCall.IsZero() {
		return
	}
	wait := n.minInterval - time.Since(n.lastCall)
	if wait <= 0 {
		return
	}
	select {
	case <-time.After(wait):
	case <-ctx.Done():
	}
}

// nominatimConfidence maps OSM object classes to the coarse tiers: buildings
// and addresses are high, road-level matches medium, everything else low.
func nominatimConfidence(class, osmType string) Confidence {
	switch class {
	case "building", "amenity", "shop", "office", "industrial":
		return ConfidenceHigh
	case "place":
		if osmType == "house" || osmType == "address" {
			return ConfidenceHigh
		}
		return ConfidenceLow
	case "highway", "railway", "landuse":
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
