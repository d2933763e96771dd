package database

import (
	"regexp"
	"testing"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestCategorySeedData(t *testing.T) {
	if len(Categories) != 52 {
		t.Fatalf("expected 52 seed categories, got %d", len(Categories))
	}

	seen := map[string]bool{}
	for _, c := range Categories {
		if !slugPattern.MatchString(c.Slug) {
			t.Errorf("slug %q is not URL-stable", c.Slug)
		}
		if seen[c.Slug] {
			t.Errorf("duplicate slug %q", c.Slug)
		}
		seen[c.Slug] = true

		if c.Name == "" || c.Description == "" {
			t.Errorf("category %q missing name or description", c.Slug)
		}
	}

	// The importer auto-creates this one; it must also be in the seed so a
	// fresh database already has it.
	if !seen["railcar-storage"] {
		t.Error("railcar-storage must be part of the seed data")
	}
}
