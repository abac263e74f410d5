// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"budgetscale/internal/catalog"
	"budgetscale/internal/comparison"
	"budgetscale/internal/format"
	"budgetscale/internal/models"
)

type comparisonResponse struct {
	BudgetItem      *itemView               `json:"budgetItem"`
	Unit            *unitView               `json:"unit"`
	Comparison      *comparison.Calculation `json:"comparison"`
	Amount          float64                 `json:"amount"`
	FormattedAmount string                  `json:"formattedAmount"`
	SpendingTier    models.SpendingTier     `json:"spendingTier"`
	PerCapita       format.Breakdown        `json:"perCapita"`
}

type alternativesResponse struct {
	BudgetItem    itemView                         `json:"budgetItem"`
	Unit          *unitView                        `json:"unit"`
	Spending      []comparison.SpendingAlternative `json:"spendingAlternatives"`
	Units         []comparison.UnitAlternative     `json:"unitAlternatives"`
	TotalSpending int                              `json:"totalSpending"`
	TotalUnits    int                              `json:"totalUnits"`
}

// Comparison handles GET /api/comparison?item=&unit=&amount=.
//
// The amount is the budget item's unless amount is given, which also allows
// a custom amount with no item at all. Without a unit id the item's featured
// unit is used, falling back to the best-scoring unit for the amount.
func (a *API) Comparison(w http.ResponseWriter, r *http.Request) {
	cat := a.source.Current()
	if a.serveCached(w, r, cat, "comparison") {
		return
	}

	q := r.URL.Query()

	custom, hasAmount, err := parseAmount(q.Get("amount"))
	if err != nil {
		writeError(w, http.StatusBadRequest, paramMessage(err))
		return
	}

	itemID := q.Get("item")
	if itemID == "" && !hasAmount {
		writeError(w, http.StatusBadRequest, "item or amount is required")
		return
	}

	resp := comparisonResponse{}
	var item models.BudgetItem
	if itemID != "" {
		var ok bool
		item, ok = cat.Item(itemID)
		if !ok {
			writeError(w, http.StatusNotFound, "budget item not found")
			return
		}
		v := newItemView(item)
		resp.BudgetItem = &v
		resp.Amount = item.Amount
	}
	if hasAmount {
		resp.Amount = custom
	}

	unit, found, ok := a.resolveUnit(cat, q.Get("unit"), item, resp.Amount)
	if !ok {
		writeError(w, http.StatusNotFound, "unit not found")
		return
	}

	resp.FormattedAmount = format.FormatCurrency(resp.Amount)
	resp.SpendingTier = models.SpendingTierFor(resp.Amount)
	resp.PerCapita = format.NewBreakdown(resp.Amount)

	if found {
		calc, err := comparison.Compare(resp.Amount, unit)
		if err != nil {
			compareFailed(w, err, unit)
			return
		}
		v := newUnitView(unit)
		resp.Unit = &v
		resp.Comparison = &calc
	}

	a.writeCached(w, r, cat, "comparison", resp)
}

// Alternatives handles GET /api/alternatives?item=&unit=&limit=. Both
// lists are cut to limit; totals report the full length so clients can
// offer "browse all" with limit=all.
func (a *API) Alternatives(w http.ResponseWriter, r *http.Request) {
	cat := a.source.Current()
	if a.serveCached(w, r, cat, "alternatives") {
		return
	}

	q := r.URL.Query()

	limit, err := parseLimit(q.Get("limit"), comparison.DefaultAlternatives)
	if err != nil {
		writeError(w, http.StatusBadRequest, paramMessage(err))
		return
	}

	itemID := q.Get("item")
	if itemID == "" {
		writeError(w, http.StatusBadRequest, "item is required")
		return
	}
	item, ok := cat.Item(itemID)
	if !ok {
		writeError(w, http.StatusNotFound, "budget item not found")
		return
	}

	unit, found, ok := a.resolveUnit(cat, q.Get("unit"), item, item.Amount)
	if !ok {
		writeError(w, http.StatusNotFound, "unit not found")
		return
	}

	resp := alternativesResponse{
		BudgetItem: newItemView(item),
		Spending:   []comparison.SpendingAlternative{},
		Units:      []comparison.UnitAlternative{},
	}
	if found {
		set, err := a.scorer.Generate(item, unit, cat.Items(), cat.Units())
		if err != nil {
			compareFailed(w, err, unit)
			return
		}
		v := newUnitView(unit)
		resp.Unit = &v
		resp.TotalSpending = len(set.Spending)
		resp.TotalUnits = len(set.Units)
		resp.Spending = firstN(set.Spending, limit)
		resp.Units = firstN(set.Units, limit)
	}

	a.writeCached(w, r, cat, "alternatives", resp)
}

// resolveUnit picks the unit for a comparison. ok is false when an explicit
// unit id is unknown; found is false when the catalog has no usable unit.
func (a *API) resolveUnit(cat *catalog.Catalog, unitID string, item models.BudgetItem, amount float64) (unit models.Unit, found, ok bool) {
	if unitID != "" {
		u, exists := cat.Unit(unitID)
		return u, exists, exists
	}
	if item.UnitID != "" {
		if u, exists := cat.Unit(item.UnitID); exists {
			return u, true, true
		}
	}
	u, exists := a.scorer.FindBest(amount, cat.Units(), item.Affinity...)
	return u, exists, true
}

func compareFailed(w http.ResponseWriter, err error, unit models.Unit) {
	if errors.Is(err, comparison.ErrInvalidAmount) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	slog.Error("comparison failed", "unit", unit.ID, "error", err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

// firstN returns at most n elements; n <= 0 returns everything.
func firstN[T any](s []T, n int) []T {
	if n <= 0 || n >= len(s) {
		return s
	}
	return s[:n]
}
