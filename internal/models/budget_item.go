// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "fmt"

// Tier classifies where a budget item sits in the federal budget.
type Tier string

const (
	TierDepartment   Tier = "department"
	TierProgram      Tier = "program"
	TierCurrentEvent Tier = "current-event"
)

// ParseTier validates a tier name. An empty string defaults to program.
func ParseTier(s string) (Tier, error) {
	switch Tier(s) {
	case "":
		return TierProgram, nil
	case TierDepartment, TierProgram, TierCurrentEvent:
		return Tier(s), nil
	}
	return "", fmt.Errorf("unknown tier %q", s)
}

// SpendingTier buckets a dollar amount by magnitude.
type SpendingTier string

const (
	SpendingLow      SpendingTier = "low"
	SpendingMedium   SpendingTier = "medium"
	SpendingHigh     SpendingTier = "high"
	SpendingVeryHigh SpendingTier = "very-high"
)

// SpendingTierFor returns the magnitude bucket for an amount in dollars.
func SpendingTierFor(amount float64) SpendingTier {
	switch {
	case amount < 1e9:
		return SpendingLow
	case amount < 1e10:
		return SpendingMedium
	case amount < 1e11:
		return SpendingHigh
	default:
		return SpendingVeryHigh
	}
}

// BudgetItem is a federal spending line. ParentID is a weak reference to the
// containing item; the parent links form a tree.
type BudgetItem struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Amount             float64  `json:"amount"`
	ParentID           string   `json:"parentId,omitempty"`
	FiscalYear         int      `json:"fiscalYear"`
	Tier               Tier     `json:"tier"`
	Description        string   `json:"description,omitempty"`
	Source             string   `json:"source,omitempty"`
	PercentOfParent    *float64 `json:"percentOfParent,omitempty"`
	YearOverYearChange *float64 `json:"yearOverYearChange,omitempty"`
	Spent              *float64 `json:"spent,omitempty"`

	// UnitID is the featured comparison unit for this item, if any.
	UnitID string `json:"unitId,omitempty"`

	// Affinity lists unit categories that read naturally next to this item,
	// e.g. vehicles and defense for a military budget line.
	Affinity []UnitCategory `json:"affinity,omitempty"`
}

// HasParent reports whether the item hangs under another item.
func (b BudgetItem) HasParent() bool {
	return b.ParentID != ""
}
