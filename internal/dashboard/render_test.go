package dashboard

import "testing"

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.837, "83.7%"},
		{0.0625, "6.3%"},
		{0.05, "5.0%"},
		{1, "100.0%"},
		{0, "0.0%"},
	}
	for _, tt := range tests {
		if got := formatPercent(tt.in); got != tt.want {
			t.Errorf("formatPercent(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatProbability(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0.42", "42.0%"},
		{" 0.42 ", "42.0%"},
		{"0.9x", "90.0%"},
		{".5", "50.0%"},
		{"1e-3", "0.1%"},
		{"Infinity", "Infinity%"},
		{"bad", "NaN%"},
		{"", "NaN%"},
	}
	for _, tt := range tests {
		if got := formatProbability(tt.in); got != tt.want {
			t.Errorf("formatProbability(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
