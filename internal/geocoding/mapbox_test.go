package geocoding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestMapbox(serverURL string) *Mapbox {
	m := NewMapbox("test-token")
	m.baseURL = serverURL
	return m
}

func TestMapboxGeocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("access_token"); got != "test-token" {
			t.Errorf("access_token = %q", got)
		}
		w.Write([]byte(`{"features":[{"center":[-95.6752,39.0473],"relevance":0.96}]}`))
	}))
	defer server.Close()

	res, err := newTestMapbox(server.URL).Geocode(context.Background(), "100 Rail Way, Topeka, KS")
	if err != nil {
		t.Fatalf("Geocode returned error: %v", err)
	}
	if res == nil {
		t.Fatal("expected a result")
	}
	if res.Latitude != 39.0473 || res.Longitude != -95.6752 {
		t.Errorf("coordinates = %f,%f", res.Latitude, res.Longitude)
	}
	if res.Confidence != ConfidenceHigh {
		t.Errorf("confidence = %q; want high", res.Confidence)
	}
}

func TestMapboxRelevanceTiers(t *testing.T) {
	tests := []struct {
		relevance string
		want      Confidence
	}{
		{"0.95", ConfidenceHigh},
		{"0.75", ConfidenceMedium},
		{"0.30", ConfidenceLow},
	}

	for _, tt := range tests {
		body := `{"features":[{"center":[-95.0,39.0],"relevance":` + tt.relevance + `}]}`
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		}))

		res, err := newTestMapbox(server.URL).Geocode(context.Background(), "somewhere")
		server.Close()
		if err != nil {
			t.Fatalf("relevance %s: %v", tt.relevance, err)
		}
		if res.Confidence != tt.want {
			t.Errorf("relevance %s -> %q; want %q", tt.relevance, res.Confidence, tt.want)
		}
	}
}

func TestMapboxNoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"features":[]}`))
	}))
	defer server.Close()

	res, err := newTestMapbox(server.URL).Geocode(context.Background(), "nowhere")
	if err != nil {
		t.Fatalf("Geocode returned error: %v", err)
	}
	if res != nil {
		t.Errorf("expected nil result, got %+v", res)
	}
}
