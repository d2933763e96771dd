// server/internal/geocoding/census.go
package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Census resolves addresses against the US Census Bureau geocoder. No API key
// is required and no rate limit is documented.
type Census struct {
	client  *http.Client
	baseURL string
}

func NewCensus(baseURL string) *Census {
	return &Census{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: baseURL,
	}
}

func (c *Census) Name() string { return "census" }

type censusResponse struct {
	Result struct {
		AddressMatches []struct {
			MatchedAddress string `json:"matchedAddress"`
			Coordinates    struct {
				X float64 `json:"x"` // longitude
				Y float64 `json:"y"` // latitude
			} `json:"coordinates"`
		} `json:"addressMatches"`
	} `json:"result"`
}

func (c *Census) Geocode(ctx context.Context, address string) (*Result, error) {
	params := url.Values{}
	params.Set("address", address)
	params.Set("benchmark", "Public_AR_Current")
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/geocoder/locations/onelineaddress?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("census request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("census status %d", resp.StatusCode)
	}

	var body censusResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("census decode: %w", err)
	}

	matches := body.Result.AddressMatches
	if len(matches) == 0 {
		return nil, nil
	}

	// A single candidate is a street-level TIGER match; multiple candidates
	// mean the input was ambiguous.
	confidence := ConfidenceHigh
	if len(matches) > 1 {
		confidence = ConfidenceMedium
	}

	return &Result{
		Latitude:   matches[0].Coordinates.Y,
		Longitude:  matches[0].Coordinates.X,
		Confidence: confidence,
		Source:     c.Name(),
	}, nil
}
