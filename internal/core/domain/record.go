package domain

import "sort"

// ValueKind discriminates the two cell types a record may hold.
// The kind is decided once, at parse or cache-load time, and never
// re-derived from the value itself.
type ValueKind int

const (
	// KindNumber marks a numeric cell.
	KindNumber ValueKind = iota

	// KindText marks a textual cell.
	KindText
)

// Value is a single tagged cell in a metric record.
type Value struct {
	// Kind tells which of the payload fields is meaningful.
	Kind ValueKind

	// Num holds the payload when Kind is KindNumber.
	Num float64

	// Str holds the payload when Kind is KindText.
	Str string
}

// Number creates a numeric value.
func Number(v float64) Value {
	return Value{Kind: KindNumber, Num: v}
}

// Text creates a textual value.
func Text(s string) Value {
	return Value{Kind: KindText, Str: s}
}

// IsNumber reports whether the value is numeric.
func (v Value) IsNumber() bool {
	return v.Kind == KindNumber
}

// Record holds the metrics extracted from one model file.
// Path is the model file's base name and is the record's identity
// within a group; the cache is keyed by it.
type Record struct {
	// Path is the model file's base name. It may be empty for stray
	// cache rows, which are kept in the table but ignored for cache
	// membership.
	Path string

	// Fields maps metric name to its extracted value.
	Fields map[string]Value
}

// NewRecord creates an empty record for the named model file.
func NewRecord(path string) *Record {
	return &Record{
		Path:   path,
		Fields: make(map[string]Value),
	}
}

// SetNumber stores a numeric metric on the record.
func (r *Record) SetNumber(name string, v float64) {
	r.Fields[name] = Number(v)
}

// SetText stores a textual field on the record.
func (r *Record) SetText(name, s string) {
	r.Fields[name] = Text(s)
}

// Number returns the named numeric field.
// ok is false when the field is absent or textual.
func (r *Record) Number(name string) (float64, bool) {
	v, present := r.Fields[name]
	if !present || !v.IsNumber() {
		return 0, false
	}
	return v.Num, true
}

// FieldNames returns the record's field names, sorted.
func (r *Record) FieldNames() []string {
	names := make([]string, 0, len(r.Fields))
	for name := range r.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
