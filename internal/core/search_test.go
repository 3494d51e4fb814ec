package core

import "testing"

func testDataset(t *testing.T) *Dataset {
	t.Helper()
	return &Dataset{
		aliases: DefaultFolioAliases,
		records: []Record{
			{{Name: "Folio", Value: "TNM-054-00-2025-123"}, {Name: "Nombre", Value: "ANA"}},
			{{Name: "Folio", Value: "TNM-054-00-2025-124"}, {Name: "Nombre", Value: "LUIS"}},
		},
	}
}

func TestSearch(t *testing.T) {
	ds := testDataset(t)

	tests := []struct {
		name  string
		query string
		found bool
		owner string
	}{
		{"exact match", "TNM-054-00-2025-123", true, "ANA"},
		{"lower case query", "tnm-054-00-2025-123", true, "ANA"},
		{"surrounding whitespace", "  tnm-054-00-2025-123  ", true, "ANA"},
		{"second record", "TNM-054-00-2025-124", true, "LUIS"},
		{"partial folio misses", "TNM-054-00-2025", false, ""},
		{"unknown folio", "TNM-999-00-2025-001", false, ""},
		{"empty query", "", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, found := ds.Search(tt.query)
			if found != tt.found {
				t.Fatalf("Search(%q) found = %v, want %v", tt.query, found, tt.found)
			}
			if !found {
				return
			}
			if name, _ := rec.Get("nombre"); name != tt.owner {
				t.Errorf("matched record nombre = %q, want %q", name, tt.owner)
			}
		})
	}
}

func TestSearch_NilDataset(t *testing.T) {
	var ds *Dataset
	if _, found := ds.Search("TNM-054-00-2025-123"); found {
		t.Error("nil dataset must not report matches")
	}
}

func TestSearch_FolioStoredWithWhitespace(t *testing.T) {
	ds := &Dataset{
		aliases: DefaultFolioAliases,
		records: []Record{
			{{Name: "Folio", Value: "  TNM-054-00-2025-123  "}},
		},
	}
	if _, found := ds.Search("tnm-054-00-2025-123"); !found {
		t.Error("stored folio whitespace must not prevent a match")
	}
}
