// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package comparison

import (
	"math"
	"sort"

	"budgetscale/internal/format"
	"budgetscale/internal/models"
)

// SpendingAlternative is another budget item measured in the current unit.
type SpendingAlternative struct {
	Item           models.BudgetItem `json:"item"`
	Count          float64           `json:"resultCount"`
	FormattedCount string            `json:"formattedCount"`
	DisplayString  string            `json:"displayString"`
}

// UnitAlternative is another unit measuring the current budget item.
type UnitAlternative struct {
	Unit           models.Unit `json:"unit"`
	Count          float64     `json:"resultCount"`
	Score          float64     `json:"score"`
	FormattedCount string      `json:"formattedCount"`
	DisplayString  string      `json:"displayString"`
}

// AlternativeSet holds both ranked lists in full; callers slice them for
// display and keep the rest for "browse all".
type AlternativeSet struct {
	Spending []SpendingAlternative `json:"spendingAlternatives"`
	Units    []UnitAlternative     `json:"unitAlternatives"`
}

// Generate proposes alternatives for the (item, unit) pairing currently on
// screen.
//
// Spending alternatives are the other items measured in unit, ordered by how
// close their count is to the current count on a log scale, so the reader
// sees comparisons of a similar size first. Items whose count is zero sort
// last.
//
// Unit alternatives are the other units measuring item, ordered by impact
// score with the item's affinity hints. The current unit and the item's own
// featured unit are excluded.
func (s *Scorer) Generate(item models.BudgetItem, unit models.Unit, items []models.BudgetItem, units []models.Unit) (AlternativeSet, error) {
	if !ValidUnit(unit) {
		return AlternativeSet{}, ErrInvalidUnitCost
	}
	if !ValidAmount(item.Amount) {
		return AlternativeSet{}, ErrInvalidAmount
	}

	current := item.Amount / unit.CostPerUnit
	type ranked struct {
		alt  SpendingAlternative
		dist float64
	}
	spending := make([]ranked, 0, len(items))
	for _, other := range items {
		if other.ID == item.ID || !ValidAmount(other.Amount) {
			continue
		}
		count := other.Amount / unit.CostPerUnit
		formatted := format.FormatCount(count)
		spending = append(spending, ranked{
			alt: SpendingAlternative{
				Item:           other,
				Count:          count,
				FormattedCount: formatted,
				DisplayString:  formatted + " " + unit.DisplayName(count),
			},
			dist: logDistance(count, current),
		})
	}
	sort.SliceStable(spending, func(i, j int) bool {
		if spending[i].dist != spending[j].dist {
			return spending[i].dist < spending[j].dist
		}
		return spending[i].alt.Item.ID < spending[j].alt.Item.ID
	})

	set := AlternativeSet{
		Spending: make([]SpendingAlternative, 0, len(spending)),
		Units:    []UnitAlternative{},
	}
	for _, r := range spending {
		set.Spending = append(set.Spending, r.alt)
	}

	for _, c := range s.Alternatives(item.Amount, units, []string{unit.ID, item.UnitID}, 0, item.Affinity...) {
		formatted := format.FormatCount(c.Count)
		set.Units = append(set.Units, UnitAlternative{
			Unit:           c.Unit,
			Count:          c.Count,
			Score:          c.Score,
			FormattedCount: formatted,
			DisplayString:  formatted + " " + c.Unit.DisplayName(c.Count),
		})
	}
	return set, nil
}

// logDistance is |log10(a) − log10(b)|, or +Inf when either side is zero.
func logDistance(a, b float64) float64 {
	if a <= 0 || b <= 0 {
		return math.Inf(1)
	}
	return math.Abs(math.Log10(a) - math.Log10(b))
}
