package importer

import (
	"reflect"
	"testing"
)

func TestNormalizeState(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"California", "CA"},
		{"california", "CA"},
		{"  Texas ", "TX"},
		{"New York", "NY"},
		{"District of Columbia", "DC"},
		{"ca", "CA"},
		{"TX", "TX"},
		{"Newfoundland", "NE"}, // unrecognized: first two letters
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeState(tt.raw); got != tt.want {
			t.Errorf("NormalizeState(%q) = %q; want %q", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeWebsite(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"example.com", "https://example.com"},
		{"https://example.com", "https://example.com"},
		{"http://example.com", "http://example.com"},
		{"  www.example.com ", "https://www.example.com"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeWebsite(tt.raw); got != tt.want {
			t.Errorf("NormalizeWebsite(%q) = %q; want %q", tt.raw, got, tt.want)
		}
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"grain, lumber; steel", []string{"grain", "lumber", "steel"}},
		{" BNSF ;UP, ", []string{"BNSF", "UP"}},
		{"single", []string{"single"}},
		{"", []string{}},
		{",;,", []string{}},
	}

	for _, tt := range tests {
		if got := SplitList(tt.raw); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitList(%q) = %v; want %v", tt.raw, got, tt.want)
		}
	}
}
