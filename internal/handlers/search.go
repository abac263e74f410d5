// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"budgetscale/internal/search"
)

// Search handles GET /api/search?q=&category=&tier=&type=items|units|all.
// The category filter narrows units and the tier filter narrows items.
func (a *API) Search(w http.ResponseWriter, r *http.Request) {
	cat := a.source.Current()
	if a.serveCached(w, r, cat, "search") {
		return
	}

	params := r.URL.Query()
	q := params.Get("q")
	if err := validateQuery(q); err != nil {
		writeError(w, http.StatusBadRequest, paramMessage(err))
		return
	}
	cats, err := parseCategories(params.Get("category"))
	if err != nil {
		writeError(w, http.StatusBadRequest, paramMessage(err))
		return
	}
	tiers, err := parseTiers(params.Get("tier"))
	if err != nil {
		writeError(w, http.StatusBadRequest, paramMessage(err))
		return
	}

	var page search.Page
	switch params.Get("type") {
	case "", "all":
		page = search.SearchAll(q, cat.Units(), cat.Items(), cats, tiers)
	case "items":
		page = search.SearchItems(q, cat.Items(), tiers)
	case "units":
		page = search.SearchUnits(q, cat.Units(), cats)
	default:
		writeError(w, http.StatusBadRequest, "type must be items, units or all")
		return
	}

	a.writeCached(w, r, cat, "search", page)
}
