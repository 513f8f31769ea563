package listing

import "testing"

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"€1,500", 1500},
		{"€ 1,500", 1500},
		{"1500", 1500},
		{"€950.50", 950.5},
		{"", 0},
		{"garbage", 0},
		{"€", 0},
		{"1200/month", 1200},
		{"€1.500", 1.5},
		{"€15,000", 15000},
		{"€1,250,000.50", 1250000.5},
		{"-20", -20},
		{"1e3", 1000},
	}

	for _, tt := range tests {
		if got := ParsePrice(tt.raw); got != tt.want {
			t.Errorf("ParsePrice(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
