package handlers

import (
	"net/url"
	"strings"
	"testing"
)

func TestParseFacilityFiltersDefaults(t *testing.T) {
	f, err := parseFacilityFilters(url.Values{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Page != 1 || f.Limit != defaultPageSize {
		t.Errorf("defaults = page %d limit %d; want 1/%d", f.Page, f.Limit, defaultPageSize)
	}
}

func TestParseFacilityFiltersStateUppercased(t *testing.T) {
	for _, raw := range []string{"tx", "Tx", "TX"} {
		f, err := parseFacilityFilters(url.Values{"state": {raw}})
		if err != nil {
			t.Fatalf("state %q: unexpected error: %v", raw, err)
		}
		if f.State != "TX" {
			t.Errorf("state %q normalized to %q; want TX", raw, f.State)
		}
	}
}

func TestParseFacilityFiltersRejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
	}{
		{"long state", url.Values{"state": {"Texas"}}},
		{"lat without lng", url.Values{"lat": {"40.71"}}},
		{"malformed lat", url.Values{"lat": {"north"}, "lng": {"-74"}}},
		{"lat out of range", url.Values{"lat": {"91"}, "lng": {"-74"}}},
		{"lng out of range", url.Values{"lat": {"40"}, "lng": {"-181"}}},
		{"negative radius", url.Values{"lat": {"40"}, "lng": {"-74"}, "radius": {"-5"}}},
		{"oversized radius", url.Values{"lat": {"40"}, "lng": {"-74"}, "radius": {"501"}}},
		{"malformed page", url.Values{"page": {"two"}}},
		{"malformed limit", url.Values{"limit": {"all"}}},
	}

	for _, tt := range tests {
		if _, err := parseFacilityFilters(tt.values); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestParseFacilityFiltersPaginationClamped(t *testing.T) {
	tests := []struct {
		page, limit string
		wantPage    int
		wantLimit   int
	}{
		{"0", "0", 1, defaultPageSize},
		{"-3", "250", 1, maxPageSize},
		{"7", "100", 7, 100},
		{"2", "1", 2, 1},
	}

	for _, tt := range tests {
		f, err := parseFacilityFilters(url.Values{"page": {tt.page}, "limit": {tt.limit}})
		if err != nil {
			t.Fatalf("page=%s limit=%s: unexpected error: %v", tt.page, tt.limit, err)
		}
		if f.Page != tt.wantPage || f.Limit != tt.wantLimit {
			t.Errorf("page=%s limit=%s -> %d/%d; want %d/%d",
				tt.page, tt.limit, f.Page, f.Limit, tt.wantPage, tt.wantLimit)
		}
	}
}

func TestBuildQueryOrderingPolicy(t *testing.T) {
	tests := []struct {
		name    string
		filters facilityFilters
		orderBy string
	}{
		{
			"center wins over text query",
			facilityFilters{Query: "grain", HasCenter: true, Lat: 40.71, Lng: -74.0, Radius: 50, Page: 1, Limit: 20},
			"distance_miles ASC",
		},
		{
			"text query without center",
			facilityFilters{Query: "grain", Page: 1, Limit: 20},
			"ts_rank",
		},
		{
			"name fallback",
			facilityFilters{Page: 1, Limit: 20},
			"ORDER BY f.name ASC",
		},
	}

	for _, tt := range tests {
		query, _ := tt.filters.buildQuery()
		if !strings.Contains(query, tt.orderBy) {
			t.Errorf("%s: query missing %q:\n%s", tt.name, tt.orderBy, query)
		}
	}
}

func TestBuildQueryArgs(t *testing.T) {
	f := facilityFilters{
		Query:        "grain elevator",
		CategorySlug: "grain-elevators",
		State:        "KS",
		City:         "topeka",
		Page:         3,
		Limit:        25,
	}

	query, args := f.buildQuery()

	// query, category, state, city, rank query, limit, offset
	if len(args) != 7 {
		t.Fatalf("got %d args: %v", len(args), args)
	}
	if args[3] != "%topeka%" {
		t.Errorf("city arg = %v; want %%topeka%%", args[3])
	}
	if args[5] != 25 || args[6] != 50 {
		t.Errorf("limit/offset = %v/%v; want 25/50", args[5], args[6])
	}
	for _, clause := range []string{
		"f.is_active = TRUE",
		"websearch_to_tsquery",
		"c.slug = $2",
		"f.state = $3",
		"f.city ILIKE $4",
	} {
		if !strings.Contains(query, clause) {
			t.Errorf("query missing clause %q:\n%s", clause, query)
		}
	}
}

func TestBuildQueryRadiusInMeters(t *testing.T) {
	f := facilityFilters{HasCenter: true, Lat: 40.71, Lng: -74.0, Radius: 50, Page: 1, Limit: 20}

	query, args := f.buildQuery()
	if !strings.Contains(query, "ST_DWithin") {
		t.Fatalf("query missing ST_DWithin:\n%s", query)
	}

	want := 50 * milesToMeters
	found := false
	for _, arg := range args {
		if v, ok := arg.(float64); ok && v == want {
			found = true
		}
	}
	if !found {
		t.Errorf("args %v missing radius in meters %.1f", args, want)
	}
}

func TestBuildCountQueryMatchesFilters(t *testing.T) {
	f := facilityFilters{State: "TX", CategorySlug: "ports", Page: 1, Limit: 20}

	query, args := f.buildCountQuery()
	if !strings.Contains(query, "COUNT(*)") {
		t.Fatalf("not a count query:\n%s", query)
	}
	if strings.Contains(query, "LIMIT") || strings.Contains(query, "ORDER BY") {
		t.Errorf("count query must not page or order:\n%s", query)
	}
	if len(args) != 2 {
		t.Errorf("got %d args: %v", len(args), args)
	}
}
