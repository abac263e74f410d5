package format

import "testing"

func TestPerCapita(t *testing.T) {
	if got := PerCapita(670e6, 335e6); got != 2 {
		t.Errorf("PerCapita = %v, want 2", got)
	}
	if got := PerCapita(100, 0); got != 0 {
		t.Errorf("PerCapita with zero population = %v, want 0", got)
	}
}

func TestNewBreakdown(t *testing.T) {
	b := NewBreakdown(USPopulation * 100)
	if b.PerPerson != 100 {
		t.Errorf("PerPerson = %v, want 100", b.PerPerson)
	}
	if b.PerPersonFormatted != "$100.00" {
		t.Errorf("PerPersonFormatted = %q, want %q", b.PerPersonFormatted, "$100.00")
	}
	if b.PerDay <= b.PerHour || b.PerHour <= b.PerSecond {
		t.Errorf("expected per-day > per-hour > per-second, got %v %v %v", b.PerDay, b.PerHour, b.PerSecond)
	}
}
