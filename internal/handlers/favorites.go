// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"budgetscale/internal/comparison"
	"budgetscale/internal/favorites"
	"budgetscale/internal/middleware"
	"budgetscale/internal/models"
)

const maxFavoriteBody = 4 << 10

type favoriteRequest struct {
	BudgetItemID string `json:"budgetItemId"`
	UnitID       string `json:"unitId"`
}

// favoriteView resolves a saved pairing against the current catalog.
// Entries whose item or unit has since left the catalog keep a nil
// BudgetItem, Unit or Comparison.
type favoriteView struct {
	favorites.Favorite
	BudgetItem *models.BudgetItem      `json:"budgetItem"`
	Unit       *models.Unit            `json:"unit"`
	Comparison *comparison.Calculation `json:"comparison"`
}

// ListFavorites handles GET /api/favorites for the current visitor.
func (a *API) ListFavorites(w http.ResponseWriter, r *http.Request) {
	owner := middleware.VisitorFromCtx(r.Context())
	if owner == "" {
		writeError(w, http.StatusBadRequest, "missing visitor id")
		return
	}

	favs, err := a.favorites.List(r.Context(), owner)
	if err != nil {
		slog.Error("list favorites failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	out := make([]favoriteView, 0, len(favs))
	for _, f := range favs {
		out = append(out, a.resolveFavorite(f))
	}
	writeJSON(w, http.StatusOK, map[string]any{"favorites": out})
}

// AddFavorite handles POST /api/favorites with a JSON body
// {"budgetItemId": "...", "unitId": "..."}.
func (a *API) AddFavorite(w http.ResponseWriter, r *http.Request) {
	owner := middleware.VisitorFromCtx(r.Context())
	if owner == "" {
		writeError(w, http.StatusBadRequest, "missing visitor id")
		return
	}

	var req favoriteRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFavoriteBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	cat := a.source.Current()
	if _, ok := cat.Item(req.BudgetItemID); req.BudgetItemID != "" && !ok {
		writeError(w, http.StatusNotFound, "budget item not found")
		return
	}
	if _, ok := cat.Unit(req.UnitID); req.UnitID != "" && !ok {
		writeError(w, http.StatusNotFound, "unit not found")
		return
	}

	fav, err := a.favorites.Add(r.Context(), owner, req.BudgetItemID, req.UnitID)
	switch {
	case errors.Is(err, favorites.ErrInvalidFavorite):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, favorites.ErrTooManyFavorites):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		slog.Error("add favorite failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"favorite": a.resolveFavorite(fav)})
}

// RemoveFavorite handles DELETE /api/favorites/{id}.
func (a *API) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	owner := middleware.VisitorFromCtx(r.Context())
	if owner == "" {
		writeError(w, http.StatusBadRequest, "missing visitor id")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid favorite id")
		return
	}

	removed, err := a.favorites.Remove(r.Context(), owner, id)
	if err != nil {
		slog.Error("remove favorite failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "favorite not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) resolveFavorite(f favorites.Favorite) favoriteView {
	cat := a.source.Current()
	v := favoriteView{Favorite: f}
	if item, ok := cat.Item(f.BudgetItemID); ok {
		v.BudgetItem = &item
	}
	if unit, ok := cat.Unit(f.UnitID); ok {
		v.Unit = &unit
	}
	if v.BudgetItem != nil && v.Unit != nil {
		if calc, err := comparison.Compare(v.BudgetItem.Amount, *v.Unit); err == nil {
			v.Comparison = &calc
		}
	}
	return v
}
