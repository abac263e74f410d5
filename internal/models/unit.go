// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models holds the canonical records shared by the catalog, the
// comparison engine and the HTTP layer.
package models

import "fmt"

// UnitCategory groups comparison units so budget items can hint at the
// kind of yardstick that reads best next to them.
type UnitCategory string

const (
	CategoryInfrastructure UnitCategory = "infrastructure"
	CategoryEveryday       UnitCategory = "everyday"
	CategoryVehicles       UnitCategory = "vehicles"
	CategoryBuildings      UnitCategory = "buildings"
	CategoryMisc           UnitCategory = "misc"
	CategoryEducation      UnitCategory = "education"
	CategoryFood           UnitCategory = "food"
	CategoryTransportation UnitCategory = "transportation"
	CategoryVeterans       UnitCategory = "veterans"
	CategoryEnvironment    UnitCategory = "environment"
	CategoryPublicServices UnitCategory = "public-services"
	CategoryDefense        UnitCategory = "defense"
	CategoryHealthcare     UnitCategory = "healthcare"
	CategoryScience        UnitCategory = "science"
)

// UnitCategories lists every known category in display order.
var UnitCategories = []UnitCategory{
	CategoryInfrastructure, CategoryEveryday, CategoryVehicles, CategoryBuildings,
	CategoryMisc, CategoryEducation, CategoryFood, CategoryTransportation,
	CategoryVeterans, CategoryEnvironment, CategoryPublicServices,
	CategoryDefense, CategoryHealthcare, CategoryScience,
}

// ParseUnitCategory validates a category name.
func ParseUnitCategory(s string) (UnitCategory, error) {
	for _, c := range UnitCategories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown unit category %q", s)
}

// Unit is a real-world purchasable thing with a known cost, used as the
// yardstick for a budget amount. CostPerUnit is always > 0 once a unit has
// passed catalog validation.
type Unit struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	NameSingular string       `json:"nameSingular"`
	CostPerUnit  float64      `json:"costPerUnit"`
	Category     UnitCategory `json:"category"`
	Description  string       `json:"description,omitempty"`
	Icon         string       `json:"icon,omitempty"`
	Source       string       `json:"source,omitempty"`
}

// DisplayName picks the name form for a count: exactly 1 reads singular,
// everything else (0, fractions, many) reads plural.
func (u Unit) DisplayName(count float64) string {
	if count == 1 {
		return u.NameSingular
	}
	return u.Name
}

// InCategory reports whether the unit belongs to any of the given categories.
func (u Unit) InCategory(cats []UnitCategory) bool {
	for _, c := range cats {
		if u.Category == c {
			return true
		}
	}
	return false
}
