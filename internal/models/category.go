// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// BudgetCategory is one node of the spending hierarchy. A parent exclusively
// owns its Subcategories slice.
type BudgetCategory struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Allocated     float64          `json:"allocated"`
	Spent         float64          `json:"spent"`
	Subcategories []BudgetCategory `json:"subcategories,omitempty"`
}

// LimitDepth returns a pruned deep copy of the given forest holding at most
// maxDepth levels. maxDepth <= 0 yields an empty result, and nodes on the
// last permitted level carry no subcategories.
func LimitDepth(nodes []BudgetCategory, maxDepth int) []BudgetCategory {
	if maxDepth <= 0 || len(nodes) == 0 {
		return []BudgetCategory{}
	}
	out := make([]BudgetCategory, 0, len(nodes))
	for _, n := range nodes {
		c := BudgetCategory{
			ID:        n.ID,
			Name:      n.Name,
			Allocated: n.Allocated,
			Spent:     n.Spent,
		}
		if maxDepth > 1 && len(n.Subcategories) > 0 {
			c.Subcategories = LimitDepth(n.Subcategories, maxDepth-1)
		}
		out = append(out, c)
	}
	return out
}

// Depth returns the number of levels in the forest (0 when empty).
func Depth(nodes []BudgetCategory) int {
	max := 0
	for _, n := range nodes {
		if d := 1 + Depth(n.Subcategories); d > max {
			max = d
		}
	}
	return max
}
