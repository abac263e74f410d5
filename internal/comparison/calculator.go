// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package comparison is the comparison engine: it converts a dollar amount
// into a count of some real-world unit, scores how memorable that pairing
// is, picks the best unit for an amount and proposes alternatives.
//
// Everything here is pure and synchronous. The only state is the optional
// score memo held by a Scorer.
package comparison

import (
	"errors"
	"math"

	"budgetscale/internal/format"
	"budgetscale/internal/models"
)

var (
	// ErrInvalidUnitCost is returned when a unit's cost is not a positive number.
	ErrInvalidUnitCost = errors.New("unit cost must be greater than zero")

	// ErrInvalidAmount is returned for negative or non-finite amounts.
	ErrInvalidAmount = errors.New("amount must be a non-negative number")
)

// Result is the minimal comparison: the raw count and its compact form.
type Result struct {
	Count     float64 `json:"count"`
	Formatted string  `json:"formatted"`
}

// Calculation is the full comparison payload served to clients.
type Calculation struct {
	Amount         float64     `json:"amount"`
	Unit           models.Unit `json:"-"`
	Count          float64     `json:"count"`
	Formatted      string      `json:"formatted"`
	FormattedCount string      `json:"formattedCount"`
	UnitName       string      `json:"unitName"`
	DisplayString  string      `json:"displayString"`
	Icon           string      `json:"icon,omitempty"`
}

// ValidUnit reports whether a unit can be divided into.
func ValidUnit(u models.Unit) bool {
	return u.CostPerUnit > 0 && !math.IsInf(u.CostPerUnit, 0)
}

// ValidAmount reports whether an amount can be compared.
func ValidAmount(amount float64) bool {
	return amount >= 0 && !math.IsInf(amount, 0)
}

// Calculate divides amount by the unit cost. The count is not rounded.
func Calculate(amount float64, unit models.Unit) (Result, error) {
	if !ValidUnit(unit) {
		return Result{}, ErrInvalidUnitCost
	}
	if !ValidAmount(amount) {
		return Result{}, ErrInvalidAmount
	}
	count := amount / unit.CostPerUnit
	return Result{Count: count, Formatted: format.CompactNumber(count)}, nil
}

// Compare computes the count for amount in units of unit along with every
// display string a client needs.
func Compare(amount float64, unit models.Unit) (Calculation, error) {
	r, err := Calculate(amount, unit)
	if err != nil {
		return Calculation{}, err
	}
	name := unit.DisplayName(r.Count)
	formatted := format.FormatCount(r.Count)
	return Calculation{
		Amount:         amount,
		Unit:           unit,
		Count:          r.Count,
		Formatted:      r.Formatted,
		FormattedCount: formatted,
		UnitName:       name,
		DisplayString:  formatted + " " + name,
		Icon:           unit.Icon,
	}, nil
}
