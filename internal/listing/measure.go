package listing

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MeasureKind tells whether a Measure holds a number or free text.
type MeasureKind int

const (
	MeasureEmpty MeasureKind = iota
	MeasureNumeric
	MeasureText
)

// Measure is a numeric-looking sheet cell such as beds or square meters.
// Sheets users write values like "4+" or "2-3", so a cell is decoded as a
// number when it parses and kept as text otherwise. The original text is
// always what gets written back.
//
// Every Measure is classified from its text by ParseMeasure, so decoding an
// encoded Measure yields the same value.
type Measure struct {
	kind MeasureKind
	num  float64
	text string
}

// ParseMeasure classifies a cell value.
func ParseMeasure(s string) Measure {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		if s == "" {
			return Measure{}
		}
		return Measure{kind: MeasureText, text: s}
	}
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
		return Measure{kind: MeasureNumeric, num: n, text: s}
	}
	return Measure{kind: MeasureText, text: s}
}

func (m Measure) Kind() MeasureKind { return m.kind }

// Float returns the numeric value and whether there is one.
func (m Measure) Float() (float64, bool) {
	return m.num, m.kind == MeasureNumeric
}

// String returns the cell text.
func (m Measure) String() string { return m.text }

func (m Measure) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.text)
}

// UnmarshalJSON accepts a JSON string or number.
func (m *Measure) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Measure{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = ParseMeasure(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("measure: expected string or number, got %s", data)
	}
	*m = ParseMeasure(n.String())
	return nil
}
