package format

import (
	"math"
	"strings"
	"testing"
)

func TestLST(t *testing.T) {
	tests := []struct {
		hours float64
		want  string
	}{
		{0, "0:0:0"},
		{2, "2:0:0"},
		{2.5, "2:30:0"},
		{13.1795463, "13:10:46"},
		{23.99999, "23:59:59"},
		{9 + 5.0/60 + 7.9/3600, "9:5:7"},
	}

	for _, tt := range tests {
		if got := LST(tt.hours); got != tt.want {
			t.Errorf("LST(%v) = %q, want %q", tt.hours, got, tt.want)
		}
	}
}

func TestRound4(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{55.391870000000004, 55.3919},
		{2.00000000001, 2},
		{1.99999, 2},
		{0.00005, 0.0001},
		{-0.00005, 0},
		{-1.23456, -1.2346},
	}

	for _, tt := range tests {
		if got := Round4(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Round4(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDecimal(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{55.391870000000004, "55.3919"},
		{2.0000000001, "2"},
		{math.Copysign(0, -1), "0"},
		{-0.00001, "0"},
		{359.99999, "360"},
		{-12.5, "-12.5"},
	}

	for _, tt := range tests {
		if got := Decimal(tt.in); got != tt.want {
			t.Errorf("Decimal(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSexagesimal(t *testing.T) {
	ra := RA(2.5, 1)
	if !strings.Contains(ra, "30") || !strings.Contains(ra, "ʰ") {
		t.Errorf("RA(2.5) = %q, want hours and 30 minutes", ra)
	}

	dec := Angle(-16.5, 1)
	if !strings.HasPrefix(strings.TrimSpace(dec), "-") || !strings.Contains(dec, "°") {
		t.Errorf("Angle(-16.5) = %q, want a negative degree value", dec)
	}
}

func TestSexagesimal_KeepsZeroSegments(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"zero angle", Angle(0, 1), "0°0′0.0″"},
		{"sub-degree angle", Angle(0.5, 1), "0°30′0.0″"},
		{"zero ra", RA(0, 1), "0ʰ0ᵐ0.0ˢ"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}
