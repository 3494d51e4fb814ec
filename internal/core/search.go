package core

import "strings"

// Search returns the first record whose resolved folio value equals the
// query, comparing trimmed and lower-cased. The scan is linear: the
// dataset is bounded by manual spreadsheet entry (thousands of rows at
// most), so no index is pre-built.
func (d *Dataset) Search(query string) (Record, bool) {
	if d == nil {
		return nil, false
	}
	want := strings.ToLower(strings.TrimSpace(query))
	if want == "" {
		return nil, false
	}
	for _, rec := range d.records {
		folio, ok := rec.Folio(d.aliases)
		if !ok {
			continue
		}
		if strings.ToLower(strings.TrimSpace(folio)) == want {
			return rec, true
		}
	}
	return nil, false
}
