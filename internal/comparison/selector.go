// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package comparison

import (
	"sort"

	"budgetscale/internal/models"
)

// DefaultAlternatives is how many alternatives a "try other comparisons"
// panel shows.
const DefaultAlternatives = 3

// Candidate is a unit scored against a specific amount.
type Candidate struct {
	Unit  models.Unit `json:"unit"`
	Count float64     `json:"count"`
	Score float64     `json:"score"`
}

// Rank scores every valid unit against amount and sorts them best first.
// Equal scores fall back to ascending unit id so the order is reproducible.
// Units with an invalid cost are skipped; an empty or invalid input yields
// an empty slice.
func (s *Scorer) Rank(amount float64, units []models.Unit, hints ...models.UnitCategory) []Candidate {
	if !ValidAmount(amount) {
		return []Candidate{}
	}
	out := make([]Candidate, 0, len(units))
	for _, u := range units {
		if !ValidUnit(u) {
			continue
		}
		out = append(out, Candidate{
			Unit:  u,
			Count: amount / u.CostPerUnit,
			Score: s.Score(amount, u, hints...),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Unit.ID < out[j].Unit.ID
	})
	return out
}

// FindBest returns the highest scoring unit for amount, or false when there
// is no valid candidate.
func (s *Scorer) FindBest(amount float64, units []models.Unit, hints ...models.UnitCategory) (models.Unit, bool) {
	ranked := s.Rank(amount, units, hints...)
	if len(ranked) == 0 {
		return models.Unit{}, false
	}
	return ranked[0].Unit, true
}

// Alternatives returns the top n candidates for amount, skipping every unit
// whose id is in exclude. n <= 0 returns the whole ranked list.
func (s *Scorer) Alternatives(amount float64, units []models.Unit, exclude []string, n int, hints ...models.UnitCategory) []Candidate {
	skip := make(map[string]bool, len(exclude))
	for _, id := range exclude {
		if id != "" {
			skip[id] = true
		}
	}
	ranked := s.Rank(amount, units, hints...)
	out := make([]Candidate, 0, len(ranked))
	for _, c := range ranked {
		if skip[c.Unit.ID] {
			continue
		}
		out = append(out, c)
		if n > 0 && len(out) == n {
			break
		}
	}
	return out
}

// FindBest is Scorer.FindBest without memoization.
func FindBest(amount float64, units []models.Unit, hints ...models.UnitCategory) (models.Unit, bool) {
	var s Scorer
	return s.FindBest(amount, units, hints...)
}

// Alternatives is Scorer.Alternatives without memoization.
func Alternatives(amount float64, units []models.Unit, exclude []string, n int, hints ...models.UnitCategory) []Candidate {
	var s Scorer
	return s.Alternatives(amount, units, exclude, n, hints...)
}
