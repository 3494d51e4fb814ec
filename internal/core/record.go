package core

import "strings"

// DefaultFolioAliases is the canonical set of recognized folio column
// headers, matched against trimmed, lower-cased cell text. The validator
// and the registration app historically carried two overlapping lists;
// this is their union. Institutions can override it via configuration
// without a code change.
var DefaultFolioAliases = []string{
	"folio",
	"id",
	"clave",
	"constancia",
	"certificado",
	"folio de constancia",
	"folio de la constancia",
	"folio constancia",
	"folio certificado",
	"folio del certificado",
	"no. folio",
	"no. de folio",
	"no de folio",
	"# folio",
	"número de folio",
	"num folio",
}

// Get returns the value of the first field whose trimmed, lower-cased
// name equals the trimmed, lower-cased key. Insertion order decides
// between duplicate case-variant headers.
func (r Record) Get(key string) (string, bool) {
	want := strings.ToLower(strings.TrimSpace(key))
	if want == "" {
		return "", false
	}
	for _, f := range r {
		if strings.ToLower(strings.TrimSpace(f.Name)) == want {
			return f.Value, true
		}
	}
	return "", false
}

// GetAny tries an ordered list of header aliases and returns the first
// value that resolves. Alias order wins over field order: a record holding
// both "ID" and "Folio" answers a ("folio", "id") lookup with the Folio
// column's value.
func (r Record) GetAny(keys ...string) (string, bool) {
	for _, key := range keys {
		if v, ok := r.Get(key); ok {
			return v, true
		}
	}
	return "", false
}

// Folio resolves the record's folio value through the alias list.
// A record is only considered valid when this returns a non-blank value.
func (r Record) Folio(aliases []string) (string, bool) {
	v, ok := r.GetAny(aliases...)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

// Columns returns the record's header names in insertion order.
func (r Record) Columns() []string {
	cols := make([]string, len(r))
	for i, f := range r {
		cols[i] = f.Name
	}
	return cols
}
