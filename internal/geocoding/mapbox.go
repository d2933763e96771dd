// server/internal/geocoding/mapbox.go
package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const mapboxBaseURL = "https://api.mapbox.com"

// Mapbox resolves addresses against the Mapbox geocoding API; requires an
// access token.
type Mapbox struct {
	client  *http.Client
	baseURL string
	token   string
}

func NewMapbox(token string) *Mapbox {
	return &Mapbox{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: mapboxBaseURL,
		token:   token,
	}
}

func (m *Mapbox) Name() string { return "mapbox" }

type mapboxResponse struct {
	Features []struct {
		Center    [2]float64 `json:"center"` // [lng, lat]
		Relevance float64    `json:"relevance"`
	} `json:"features"`
}

func (m *Mapbox) Geocode(ctx context.Context, address string) (*Result, error) {
	params := url.Values{}
	params.Set("access_token", m.token)
	params.Set("limit", "1")
	params.Set("country", "us")

	endpoint := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%s.json?%s",
		m.baseURL, url.PathEscape(address), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mapbox request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mapbox status %d", resp.StatusCode)
	}

	var body mapboxResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("mapbox decode: %w", err)
	}
	if len(body.Features) == 0 {
		return nil, nil
	}

	feature := body.Features[0]
	confidence := ConfidenceLow
	switch {
	case feature.Relevance >= 0.9:
		confidence = ConfidenceHigh
	case feature.Relevance >= 0.6:
		confidence = ConfidenceMedium
	}

	return &Result{
		Latitude:   feature.Center[1],
		Longitude:  feature.Center[0],
		Confidence: confidence,
		Source:     m.Name(),
	}, nil
}
