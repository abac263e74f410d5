package format

import (
	"testing"

	"budgetscale/internal/models"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{1234.5, "1,234.5"},
		{1234.567, "1,234.57"},
		{10525, "10,525"},
		{-42000, "-42,000"},
		{-0.001, "0"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{0.001, "<0.01"},
		{0.25, "0.25"},
		{1, "1"},
		{2.5, "2.5"},
		{3, "3"},
		{99.96, "100"},
		{150, "150"},
		{10525, "10,525"},
		{1_300_000, "1.3 million"},
		{4_800_000_000, "4.8 billion"},
		{999_999_999, "1 billion"},
	}
	for _, tt := range tests {
		if got := FormatCount(tt.in); got != tt.want {
			t.Errorf("FormatCount(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCompactNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{2.5, "2.5"},
		{999, "999"},
		{45_000, "45K"},
		{1_200_000, "1.2M"},
		{3_000_000_000, "3B"},
		{-1_500, "-1.5K"},
	}
	for _, tt := range tests {
		if got := CompactNumber(tt.in); got != tt.want {
			t.Errorf("CompactNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatComparisonResult(t *testing.T) {
	f35 := models.Unit{ID: "f35", Name: "F-35 Fighter Jets", NameSingular: "F-35 Fighter Jet", CostPerUnit: 80e6}
	jwst := models.Unit{ID: "jwst", Name: "James Webb Space Telescopes", NameSingular: "James Webb Space Telescope", CostPerUnit: 10e9}

	tests := []struct {
		name  string
		count float64
		unit  models.Unit
		want  string
	}{
		{name: "many jets", count: 10525, unit: f35, want: "10,525 F-35 Fighter Jets"},
		{name: "one jet", count: 1, unit: f35, want: "1 F-35 Fighter Jet"},
		{name: "fractional telescopes", count: 2.5, unit: jwst, want: "2.5 James Webb Space Telescopes"},
		{name: "zero telescopes", count: 0, unit: jwst, want: "0 James Webb Space Telescopes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatComparisonResult(tt.count, tt.unit); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		v      float64
		signed bool
		want   string
	}{
		{3.2, true, "+3.2%"},
		{3.2, false, "3.2%"},
		{-4, true, "-4%"},
		{12.34, false, "12.3%"},
		{0, true, "0%"},
	}
	for _, tt := range tests {
		if got := FormatPercent(tt.v, tt.signed); got != tt.want {
			t.Errorf("FormatPercent(%v, %v) = %q, want %q", tt.v, tt.signed, got, tt.want)
		}
	}
}
