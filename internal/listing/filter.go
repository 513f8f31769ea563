package listing

import "strings"

// Filter narrows a listing search. Zero-valued fields impose no constraint
// and set fields are ANDed.
type Filter struct {
	// Location matches as a case-insensitive substring.
	Location string
	// Available must equal the record's availability exactly.
	Available string
	// Beds must equal the numeric value of the record's beds.
	Beds     int
	MinPrice float64
	MaxPrice float64
}

// IsZero reports whether the filter matches every record.
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// Matches reports whether r passes every set constraint.
func (f Filter) Matches(r Record) bool {
	if f.Location != "" && !strings.Contains(strings.ToLower(r.Location), strings.ToLower(f.Location)) {
		return false
	}

	if f.Available != "" && r.Available != f.Available {
		return false
	}

	if f.Beds != 0 {
		beds, ok := bedsValue(r.Beds)
		if !ok || beds != float64(f.Beds) {
			return false
		}
	}

	if f.MinPrice != 0 || f.MaxPrice != 0 {
		price := ParsePrice(r.Price)
		if f.MinPrice != 0 && price < f.MinPrice {
			return false
		}
		if f.MaxPrice != 0 && price > f.MaxPrice {
			return false
		}
	}

	return true
}

// bedsValue reads beds numerically. An empty cell counts as 0.
func bedsValue(m Measure) (float64, bool) {
	switch m.Kind() {
	case MeasureEmpty:
		return 0, true
	case MeasureNumeric:
		return m.Float()
	default:
		return 0, false
	}
}

// Apply returns the records that match f, preserving order.
func (f Filter) Apply(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
