// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"budgetscale/internal/models"
)

type itemDetailResponse struct {
	BudgetItem itemView   `json:"budgetItem"`
	Unit       *unitView  `json:"unit"`
	Children   []itemView `json:"children"`
}

type categoriesResponse struct {
	Categories []models.BudgetCategory `json:"categories"`
	Depth      int                     `json:"depth"`
}

// Units handles GET /api/units?category=a,b.
func (a *API) Units(w http.ResponseWriter, r *http.Request) {
	cat := a.source.Current()
	if a.serveCached(w, r, cat, "units") {
		return
	}

	cats, err := parseCategories(r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, http.StatusBadRequest, paramMessage(err))
		return
	}

	units := cat.Units()
	if len(cats) > 0 {
		units = cat.UnitsIn(cats)
	}

	a.writeCached(w, r, cat, "units", map[string]any{
		"units": unitViews(units),
		"total": len(units),
	})
}

// Unit handles GET /api/units/{id}.
func (a *API) Unit(w http.ResponseWriter, r *http.Request) {
	u, ok := a.source.Current().Unit(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "unit not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"unit": newUnitView(u)})
}

// BudgetItems handles GET /api/budget-items?tier=.
func (a *API) BudgetItems(w http.ResponseWriter, r *http.Request) {
	cat := a.source.Current()
	if a.serveCached(w, r, cat, "budget-items") {
		return
	}

	tiers, err := parseTiers(r.URL.Query().Get("tier"))
	if err != nil {
		writeError(w, http.StatusBadRequest, paramMessage(err))
		return
	}

	var items []models.BudgetItem
	if len(tiers) == 0 {
		items = cat.Items()
	} else {
		for _, t := range tiers {
			items = append(items, cat.ItemsByTier(t)...)
		}
	}

	a.writeCached(w, r, cat, "budget-items", map[string]any{
		"budgetItems": itemViews(items),
		"total":       len(items),
	})
}

// BudgetItem handles GET /api/budget-items/{id}, including the item's
// direct children and its featured unit.
func (a *API) BudgetItem(w http.ResponseWriter, r *http.Request) {
	cat := a.source.Current()
	item, ok := cat.Item(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "budget item not found")
		return
	}

	resp := itemDetailResponse{
		BudgetItem: newItemView(item),
		Children:   itemViews(cat.Children(item.ID)),
	}
	if u, ok := cat.Unit(item.UnitID); ok {
		v := newUnitView(u)
		resp.Unit = &v
	}
	writeJSON(w, http.StatusOK, resp)
}

// Categories handles GET /api/budget/categories?depth=. Without depth the
// whole tree is returned.
func (a *API) Categories(w http.ResponseWriter, r *http.Request) {
	cat := a.source.Current()
	if a.serveCached(w, r, cat, "categories") {
		return
	}

	depth, all, err := parseDepth(r.URL.Query().Get("depth"))
	if err != nil {
		writeError(w, http.StatusBadRequest, paramMessage(err))
		return
	}

	tree := cat.Categories()
	if all {
		depth = models.Depth(tree)
	} else {
		tree = models.LimitDepth(tree, depth)
	}
	if tree == nil {
		tree = []models.BudgetCategory{}
	}

	a.writeCached(w, r, cat, "categories", categoriesResponse{Categories: tree, Depth: depth})
}
