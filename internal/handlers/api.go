// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers serves the budgetscale JSON API. Every handler reads
// the catalog snapshot current at request time, so a reload never tears a
// response in half.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"budgetscale/internal/cache"
	"budgetscale/internal/catalog"
	"budgetscale/internal/comparison"
	"budgetscale/internal/favorites"
	"budgetscale/internal/markdown"
	"budgetscale/internal/models"
)

// ResponseCache stores encoded responses by key. *cache.ResponseCache
// satisfies it; nil disables response caching.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, body []byte)
}

// API groups the JSON endpoints.
type API struct {
	source    *catalog.Source
	scorer    *comparison.Scorer
	favorites *favorites.Store
	cache     ResponseCache
}

// NewAPI creates the API handler group. responses may be nil.
func NewAPI(source *catalog.Source, scorer *comparison.Scorer, favs *favorites.Store, responses ResponseCache) *API {
	return &API{
		source:    source,
		scorer:    scorer,
		favorites: favs,
		cache:     responses,
	}
}

// unitView is a unit with its description rendered to HTML.
type unitView struct {
	models.Unit
	DescriptionHTML string `json:"descriptionHtml,omitempty"`
}

// itemView is a budget item with its description rendered to HTML.
type itemView struct {
	models.BudgetItem
	DescriptionHTML string `json:"descriptionHtml,omitempty"`
}

func newUnitView(u models.Unit) unitView {
	return unitView{Unit: u, DescriptionHTML: renderDescription(u.Description)}
}

func newItemView(b models.BudgetItem) itemView {
	return itemView{BudgetItem: b, DescriptionHTML: renderDescription(b.Description)}
}

func unitViews(units []models.Unit) []unitView {
	out := make([]unitView, 0, len(units))
	for _, u := range units {
		out = append(out, newUnitView(u))
	}
	return out
}

func itemViews(items []models.BudgetItem) []itemView {
	out := make([]itemView, 0, len(items))
	for _, b := range items {
		out = append(out, newItemView(b))
	}
	return out
}

func renderDescription(src string) string {
	if src == "" {
		return ""
	}
	html, err := markdown.ToHTML(src)
	if err != nil {
		slog.Warn("render description failed", "error", err)
		return ""
	}
	return html
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// writeError writes {"error": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// serveCached answers from the response cache when it holds route with the
// request's query for the catalog snapshot cat. It reports whether the
// response was written.
func (a *API) serveCached(w http.ResponseWriter, r *http.Request, cat *catalog.Catalog, route string) bool {
	if a.cache == nil {
		return false
	}
	body, ok := a.cache.Get(r.Context(), cache.Key(route, cat.Version(), r.URL.Query()))
	if !ok {
		return false
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Cache", "HIT")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
	return true
}

// writeCached writes a 200 JSON response and stores it under route and the
// version of cat, the snapshot data was computed from.
func (a *API) writeCached(w http.ResponseWriter, r *http.Request, cat *catalog.Catalog, route string, data any) {
	if a.cache == nil {
		writeJSON(w, http.StatusOK, data)
		return
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		slog.Error("encode response failed", "route", route, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	a.cache.Set(r.Context(), cache.Key(route, cat.Version(), r.URL.Query()), buf.Bytes())

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Cache", "MISS")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
