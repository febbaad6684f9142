package parse

import (
	"encoding/json"
	"testing"
)

func TestAmericanOdds(t *testing.T) {
	tests := []struct {
		raw  string
		want int
		ok   bool
	}{
		// integer tokens are already American, whatever the magnitude
		{"-150", -150, true},
		{"150", 150, true},
		{"2", 2, true},
		// fractional with |v| > 100: American, truncated toward zero
		{"101.5", 101, true},
		{"-101.5", -101, true},
		// decimal odds >= 2.0: (d-1)*100
		{"2.0", 100, true},
		{"2.5", 150, true},
		{"3.75", 275, true},
		// decimal odds < 2.0: -100/(d-1), truncated toward zero
		{"1.5", -200, true},
		{"1.91", -109, true},
		{"1.2", -500, true},
		{"0.5", 200, true},
		// 1.0 would divide by zero
		{"1.0", 0, false},
		// unparseable
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := AmericanOdds(json.Number(tt.raw))
		if got != tt.want || ok != tt.ok {
			t.Errorf("AmericanOdds(%q) = (%d, %v), want (%d, %v)", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}
