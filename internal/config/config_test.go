package config

import "testing"

func TestParseCategories(t *testing.T) {
	categories, err := parseCategories("IT/Science=105/230, Economy=101/259")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}
	if categories[0].Name != "IT/Science" || categories[0].SectionPath != "105/230" {
		t.Fatalf("unexpected first category %+v", categories[0])
	}
	if categories[1].Name != "Economy" {
		t.Fatalf("unexpected second category %+v", categories[1])
	}
}

func TestParseCategoriesRejectsMalformedEntries(t *testing.T) {
	if _, err := parseCategories("just-a-name"); err == nil {
		t.Fatal("expected an error for an entry without a section path")
	}
	if _, err := parseCategories(""); err == nil {
		t.Fatal("expected an error for an empty category list")
	}
}
