// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog loads, validates and serves the unit and budget item
// catalogs. A Catalog is an immutable snapshot; Source swaps snapshots when
// the underlying data changes.
package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"budgetscale/internal/comparison"
	"budgetscale/internal/models"
	"budgetscale/internal/slug"
)

var (
	// ErrDuplicateID is returned when two units or two items share an id.
	ErrDuplicateID = errors.New("duplicate id")

	// ErrUnknownCategory is returned for a unit category or affinity hint
	// outside the fixed enumeration.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrUnknownParent is returned when an item's parentId names no item.
	ErrUnknownParent = errors.New("unknown parent")

	// ErrUnknownUnit is returned when an item features a unit that does not exist.
	ErrUnknownUnit = errors.New("unknown unit")

	// ErrCycle is returned when parent links loop back on themselves.
	ErrCycle = errors.New("parent cycle")

	// ErrInvalidTier is returned for an unrecognised item tier.
	ErrInvalidTier = errors.New("invalid tier")

	// ErrMissingName is returned for a record with neither id nor name.
	ErrMissingName = errors.New("missing name")
)

// Catalog is a validated, read-only snapshot of units and budget items.
// Accessors hand out copies of the top-level slices; callers must not
// mutate the pointed-to fields of returned items.
type Catalog struct {
	units    []models.Unit
	items    []models.BudgetItem
	unitIdx  map[string]int
	itemIdx  map[string]int
	children map[string][]int
	version  string
}

// New validates units and items and builds a snapshot. Missing ids are
// derived from names, missing tiers default to program and missing
// percentOfParent values are computed from the parent amount. Every
// problem found is returned at once via errors.Join.
func New(units []models.Unit, items []models.BudgetItem) (*Catalog, error) {
	c := &Catalog{
		units:    make([]models.Unit, len(units)),
		items:    make([]models.BudgetItem, len(items)),
		unitIdx:  make(map[string]int, len(units)),
		itemIdx:  make(map[string]int, len(items)),
		children: make(map[string][]int),
	}
	copy(c.units, units)
	copy(c.items, items)

	var errs []error

	assignIDs(len(c.units),
		func(i int) (string, string) { return c.units[i].ID, c.units[i].Name },
		func(i int, id string) { c.units[i].ID = id })
	for i, u := range c.units {
		switch {
		case u.ID == "":
			errs = append(errs, fmt.Errorf("unit #%d: %w", i+1, ErrMissingName))
			continue
		case !comparison.ValidUnit(u):
			errs = append(errs, fmt.Errorf("unit %q: %w", u.ID, comparison.ErrInvalidUnitCost))
		}
		if _, err := models.ParseUnitCategory(string(u.Category)); err != nil {
			errs = append(errs, fmt.Errorf("unit %q: %w %q", u.ID, ErrUnknownCategory, u.Category))
		}
		if _, dup := c.unitIdx[u.ID]; dup {
			errs = append(errs, fmt.Errorf("unit %q: %w", u.ID, ErrDuplicateID))
			continue
		}
		c.unitIdx[u.ID] = i
	}

	assignIDs(len(c.items),
		func(i int) (string, string) { return c.items[i].ID, c.items[i].Name },
		func(i int, id string) { c.items[i].ID = id })
	for i := range c.items {
		it := &c.items[i]
		if it.ID == "" {
			errs = append(errs, fmt.Errorf("item #%d: %w", i+1, ErrMissingName))
			continue
		}
		if !comparison.ValidAmount(it.Amount) {
			errs = append(errs, fmt.Errorf("item %q: %w", it.ID, comparison.ErrInvalidAmount))
		}
		tier, err := models.ParseTier(string(it.Tier))
		if err != nil {
			errs = append(errs, fmt.Errorf("item %q: %w %q", it.ID, ErrInvalidTier, it.Tier))
		}
		it.Tier = tier
		for _, a := range it.Affinity {
			if _, err := models.ParseUnitCategory(string(a)); err != nil {
				errs = append(errs, fmt.Errorf("item %q affinity: %w %q", it.ID, ErrUnknownCategory, a))
			}
		}
		if it.UnitID != "" {
			if _, ok := c.unitIdx[it.UnitID]; !ok {
				errs = append(errs, fmt.Errorf("item %q: %w %q", it.ID, ErrUnknownUnit, it.UnitID))
			}
		}
		if _, dup := c.itemIdx[it.ID]; dup {
			errs = append(errs, fmt.Errorf("item %q: %w", it.ID, ErrDuplicateID))
			continue
		}
		c.itemIdx[it.ID] = i
	}

	for i := range c.items {
		it := &c.items[i]
		if it.ParentID == "" || it.ID == "" {
			continue
		}
		p, ok := c.itemIdx[it.ParentID]
		if !ok {
			errs = append(errs, fmt.Errorf("item %q: %w %q", it.ID, ErrUnknownParent, it.ParentID))
			continue
		}
		c.children[it.ParentID] = append(c.children[it.ParentID], i)
		if it.PercentOfParent == nil && c.items[p].Amount > 0 {
			pct := math.Round(it.Amount/c.items[p].Amount*1000) / 10
			it.PercentOfParent = &pct
		}
	}
	errs = append(errs, c.findCycles()...)

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	v, err := fingerprint(c.units, c.items)
	if err != nil {
		return nil, err
	}
	c.version = v
	return c, nil
}

// fingerprint hashes the normalized catalog contents. Identical data
// yields the same fingerprint in every process.
func fingerprint(units []models.Unit, items []models.BudgetItem) (string, error) {
	h := sha256.New()
	if err := json.NewEncoder(h).Encode(struct {
		Units []models.Unit       `json:"units"`
		Items []models.BudgetItem `json:"items"`
	}{units, items}); err != nil {
		return "", fmt.Errorf("catalog fingerprint: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)[:8]), nil
}

// Version identifies the snapshot's contents. Responses derived from a
// snapshot are cached under its version.
func (c *Catalog) Version() string {
	return c.version
}

// assignIDs fills empty ids from the record name, suffixing on collision
// with any id already present.
func assignIDs(n int, get func(int) (id, name string), set func(int, string)) {
	taken := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		if id, _ := get(i); id != "" {
			taken[id] = true
		}
	}
	for i := 0; i < n; i++ {
		id, name := get(i)
		if id != "" {
			continue
		}
		base := slug.Generate(name)
		if base == "" {
			continue
		}
		id = slug.Unique(base, func(s string) bool { return taken[s] })
		taken[id] = true
		set(i, id)
	}
}

// findCycles walks each parent chain and reports items that reach
// themselves.
func (c *Catalog) findCycles() []error {
	var errs []error
	for _, it := range c.items {
		if it.ID == "" {
			continue
		}
		seen := map[string]bool{it.ID: true}
		for p := it.ParentID; p != ""; {
			if seen[p] {
				if p == it.ID {
					errs = append(errs, fmt.Errorf("item %q: %w", it.ID, ErrCycle))
				}
				break
			}
			seen[p] = true
			j, ok := c.itemIdx[p]
			if !ok {
				break
			}
			p = c.items[j].ParentID
		}
	}
	return errs
}

// Units returns every unit in catalog order.
func (c *Catalog) Units() []models.Unit {
	out := make([]models.Unit, len(c.units))
	copy(out, c.units)
	return out
}

// Items returns every budget item in catalog order.
func (c *Catalog) Items() []models.BudgetItem {
	out := make([]models.BudgetItem, len(c.items))
	copy(out, c.items)
	return out
}

// Unit looks up a unit by id.
func (c *Catalog) Unit(id string) (models.Unit, bool) {
	i, ok := c.unitIdx[id]
	if !ok {
		return models.Unit{}, false
	}
	return c.units[i], true
}

// Item looks up a budget item by id.
func (c *Catalog) Item(id string) (models.BudgetItem, bool) {
	i, ok := c.itemIdx[id]
	if !ok {
		return models.BudgetItem{}, false
	}
	return c.items[i], true
}

// Children returns the direct children of the item with the given id.
func (c *Catalog) Children(id string) []models.BudgetItem {
	idx := c.children[id]
	out := make([]models.BudgetItem, 0, len(idx))
	for _, i := range idx {
		out = append(out, c.items[i])
	}
	return out
}

// UnitsIn returns the units whose category is one of cats. No categories
// means every unit.
func (c *Catalog) UnitsIn(cats []models.UnitCategory) []models.Unit {
	if len(cats) == 0 {
		return c.Units()
	}
	out := make([]models.Unit, 0, len(c.units))
	for _, u := range c.units {
		if u.InCategory(cats) {
			out = append(out, u)
		}
	}
	return out
}

// ItemsByTier returns the items of the given tier, or every item for "".
func (c *Catalog) ItemsByTier(tier models.Tier) []models.BudgetItem {
	if tier == "" {
		return c.Items()
	}
	out := make([]models.BudgetItem, 0, len(c.items))
	for _, it := range c.items {
		if it.Tier == tier {
			out = append(out, it)
		}
	}
	return out
}

// Categories builds the spending hierarchy from parent links. Roots are
// the items without a parent, in catalog order.
func (c *Catalog) Categories() []models.BudgetCategory {
	roots := make([]models.BudgetCategory, 0)
	for i, it := range c.items {
		if it.ParentID == "" {
			roots = append(roots, c.categoryNode(i))
		}
	}
	return roots
}

func (c *Catalog) categoryNode(i int) models.BudgetCategory {
	it := c.items[i]
	node := models.BudgetCategory{ID: it.ID, Name: it.Name, Allocated: it.Amount}
	if it.Spent != nil {
		node.Spent = *it.Spent
	}
	for _, child := range c.children[it.ID] {
		node.Subcategories = append(node.Subcategories, c.categoryNode(child))
	}
	return node
}
