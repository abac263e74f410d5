// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package comparison

import (
	"math"

	"budgetscale/internal/models"
)

// AffinityBoost multiplies the score of a unit whose category was hinted by
// the budget item. It is multiplicative so it cannot rescue a pairing whose
// count is absurd.
const AffinityBoost = 1.25

// Scorer ranks (amount, unit) pairings by how memorable they read.
// A Scorer with a memo caches scores and is safe for concurrent use; the
// zero value scores without caching.
type Scorer struct {
	memo *scoreMemo
}

// NewScorer returns a Scorer that memoizes up to maxEntries scores.
// maxEntries <= 0 disables the memo.
func NewScorer(maxEntries int) *Scorer {
	if maxEntries <= 0 {
		return &Scorer{}
	}
	return &Scorer{memo: newScoreMemo(maxEntries)}
}

// Reset drops every memoized score. Called when the catalog is replaced.
func (s *Scorer) Reset() {
	if s.memo != nil {
		s.memo.reset()
	}
}

// Score returns the impact score of comparing amount against unit. Higher is
// better; invalid input scores 0.
//
// With count = amount / cost and m = log10(count):
//
//	fit  = 0.1·count                 count < 1
//	       1 − 0.05·|m − 3|          1 ≤ count ≤ 1e6
//	       0.85 − 0.25·(m − 6)       1e6 < count ≤ 1e9
//	       0.1 / (m − 8)             count > 1e9
//	score = 100 · fit · (0.75 + 0.25·roundness) · affinity
func (s *Scorer) Score(amount float64, unit models.Unit, hints ...models.UnitCategory) float64 {
	if !ValidUnit(unit) || !ValidAmount(amount) {
		return 0
	}
	boosted := unit.InCategory(hints)
	if s.memo != nil {
		key := memoKey{amount: amount, unitID: unit.ID, cost: unit.CostPerUnit, boosted: boosted}
		if v, ok := s.memo.get(key); ok {
			return v
		}
		v := score(amount/unit.CostPerUnit, boosted)
		s.memo.put(key, v)
		return v
	}
	return score(amount/unit.CostPerUnit, boosted)
}

// Score scores without memoization.
func Score(amount float64, unit models.Unit, hints ...models.UnitCategory) float64 {
	var s Scorer
	return s.Score(amount, unit, hints...)
}

func score(count float64, boosted bool) float64 {
	v := 100 * magnitudeFit(count) * (0.75 + 0.25*roundness(count))
	if boosted {
		v *= AffinityBoost
	}
	return v
}

// magnitudeFit peaks at counts in the thousands and falls off steeply
// below one and above a billion.
func magnitudeFit(count float64) float64 {
	if count <= 0 || math.IsNaN(count) {
		return 0
	}
	if count < 1 {
		return 0.1 * count
	}
	m := math.Log10(count)
	switch {
	case count <= 1e6:
		return 1 - 0.05*math.Abs(m-3)
	case count <= 1e9:
		return 0.85 - 0.25*(m-6)
	default:
		return 0.1 / (m - 8)
	}
}

// roundness rates how easily the leading digits read aloud: a leading 1
// followed by zeros is best, then whole leading digits, then halves.
func roundness(count float64) float64 {
	if count <= 0 || math.IsNaN(count) || math.IsInf(count, 0) {
		return 0
	}
	mant := count / math.Pow10(int(math.Floor(math.Log10(count))))
	if mant >= 10 {
		mant /= 10
	} else if mant < 1 {
		mant *= 10
	}

	if near(mant, 1) || near(mant, 10) {
		return 1
	}
	if near(mant, math.Round(mant)) {
		return 0.8
	}
	if near(mant, math.Round(mant*2)/2) {
		return 0.6
	}
	return 0.3
}

// roundTolerance is the absolute slack allowed on the mantissa. A relative
// tolerance would widen with the digit and let 8.42 pass for 8.5.
const roundTolerance = 0.01

// near reports whether the mantissa x is within roundTolerance of target.
func near(x, target float64) bool {
	return math.Abs(x-target) <= roundTolerance
}
