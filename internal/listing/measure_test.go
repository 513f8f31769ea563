package listing

import (
	"encoding/json"
	"testing"
)

func TestParseMeasure(t *testing.T) {
	tests := []struct {
		in       string
		wantKind MeasureKind
		wantNum  float64
	}{
		{"", MeasureEmpty, 0},
		{"2", MeasureNumeric, 2},
		{"1.5", MeasureNumeric, 1.5},
		{" 3 ", MeasureNumeric, 3},
		{"4+", MeasureText, 0},
		{"2-3", MeasureText, 0},
		{"studio", MeasureText, 0},
	}

	for _, tt := range tests {
		m := ParseMeasure(tt.in)
		if m.Kind() != tt.wantKind {
			t.Errorf("ParseMeasure(%q).Kind(): got %d, want %d", tt.in, m.Kind(), tt.wantKind)
		}
		if n, _ := m.Float(); n != tt.wantNum {
			t.Errorf("ParseMeasure(%q).Float(): got %v, want %v", tt.in, n, tt.wantNum)
		}
		if m.String() != tt.in {
			t.Errorf("ParseMeasure(%q).String(): got %q", tt.in, m.String())
		}
	}
}

func TestMeasure_RoundTripsThroughCell(t *testing.T) {
	measures := []Measure{{}}
	for _, cell := range []string{"", "2", "2.50", " 3 ", "4+", "2-3", "Studio", "1e2", "NaN", "   "} {
		measures = append(measures, ParseMeasure(cell))
	}
	for _, js := range []string{`2`, `"2"`, `1.5`, `"4+"`, `null`} {
		var m Measure
		if err := json.Unmarshal([]byte(js), &m); err != nil {
			t.Fatalf("Unmarshal(%s): %v", js, err)
		}
		measures = append(measures, m)
	}

	for _, m := range measures {
		r := Record{Code: "A", Beds: m, Mts: m}
		if got := Decode(Encode(r)); got != r {
			t.Errorf("measure %q kind %d: decoded %+v, want %+v", m.String(), m.Kind(), got.Beds, m)
		}
	}
}

func TestMeasure_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want string
		kind MeasureKind
	}{
		{`"2"`, "2", MeasureNumeric},
		{`2`, "2", MeasureNumeric},
		{`1.5`, "1.5", MeasureNumeric},
		{`"4+"`, "4+", MeasureText},
		{`null`, "", MeasureEmpty},
	}

	for _, tt := range tests {
		var m Measure
		if err := json.Unmarshal([]byte(tt.in), &m); err != nil {
			t.Errorf("Unmarshal(%s): %v", tt.in, err)
			continue
		}
		if m.String() != tt.want || m.Kind() != tt.kind {
			t.Errorf("Unmarshal(%s): got %q kind %d, want %q kind %d", tt.in, m.String(), m.Kind(), tt.want, tt.kind)
		}
	}

	var m Measure
	if err := json.Unmarshal([]byte(`{"a":1}`), &m); err == nil {
		t.Error("expected error for object")
	}
}
