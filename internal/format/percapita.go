// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package format

// USPopulation is the resident population used for per-person figures.
const USPopulation = 335_000_000

// PerCapita divides an amount across a population. A non-positive
// population yields 0.
func PerCapita(amount, population float64) float64 {
	if population <= 0 {
		return 0
	}
	return amount / population
}

// Breakdown spreads an annual amount across people and time.
type Breakdown struct {
	PerPerson float64 `json:"perPerson"`
	PerDay    float64 `json:"perDay"`
	PerHour   float64 `json:"perHour"`
	PerSecond float64 `json:"perSecond"`

	PerPersonFormatted string `json:"perPersonFormatted"`
	PerDayFormatted    string `json:"perDayFormatted"`
	PerSecondFormatted string `json:"perSecondFormatted"`
}

// NewBreakdown computes the per-person and per-time figures for an annual
// amount, using USPopulation.
func NewBreakdown(amount float64) Breakdown {
	b := Breakdown{
		PerPerson: PerCapita(amount, USPopulation),
		PerDay:    amount / 365,
		PerHour:   amount / (365 * 24),
		PerSecond: amount / (365 * 24 * 60 * 60),
	}
	b.PerPersonFormatted = FormatCurrency(b.PerPerson)
	b.PerDayFormatted = FormatCurrency(b.PerDay)
	b.PerSecondFormatted = FormatCurrency(b.PerSecond)
	return b
}
