// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package search ranks catalog entries against a free-text query.
package search

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"budgetscale/internal/models"
)

// MaxResults caps every ranked result list.
const MaxResults = 20

// Relevance ladder. Higher wins.
const (
	ScoreExactID      = 100
	ScoreExactName    = 90
	ScoreNamePrefix   = 70
	ScoreIDPrefix     = 60
	ScoreWordBoundary = 50
	ScoreNameContains = 30
	ScoreIDContains   = 20
)

// Result is one ranked match. Exactly one of Unit and Item is set,
// according to Type.
type Result struct {
	Type  string             `json:"type"`
	ID    string             `json:"id"`
	Name  string             `json:"name"`
	Score int                `json:"score"`
	Unit  *models.Unit       `json:"unit,omitempty"`
	Item  *models.BudgetItem `json:"budgetItem,omitempty"`
}

// Result types.
const (
	TypeUnit = "unit"
	TypeItem = "item"
)

// Page is a capped result list plus the number of matches before capping.
type Page struct {
	Query   string   `json:"query"`
	Results []Result `json:"results"`
	Total   int      `json:"total"`
}

// RelevanceScore rates how well query matches a record with the given id
// and name. Matching is case-insensitive on the trimmed query; an empty
// query matches nothing.
func RelevanceScore(query, id, name string) int {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return 0
	}
	id = strings.ToLower(id)
	name = strings.ToLower(name)

	switch {
	case id == q:
		return ScoreExactID
	case name == q:
		return ScoreExactName
	case strings.HasPrefix(name, q):
		return ScoreNamePrefix
	case strings.HasPrefix(id, q):
		return ScoreIDPrefix
	case wordPrefix(name, q):
		return ScoreWordBoundary
	case strings.Contains(name, q):
		return ScoreNameContains
	case strings.Contains(id, q):
		return ScoreIDContains
	}
	return 0
}

// wordPrefix reports whether q starts at a word boundary anywhere in s.
func wordPrefix(s, q string) bool {
	for i := 0; i < len(s); {
		j := strings.Index(s[i:], q)
		if j < 0 {
			return false
		}
		at := i + j
		if prev, _ := utf8.DecodeLastRuneInString(s[:at]); at == 0 || !isWordRune(prev) {
			return true
		}
		i = at + 1
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Rank scores every result, drops non-matches, orders best first (ties by
// id) and caps the list at MaxResults. Scores already set on results are
// overwritten.
func Rank(query string, candidates []Result) Page {
	page := Page{Query: strings.TrimSpace(query), Results: []Result{}}
	if page.Query == "" {
		return page
	}
	for _, r := range candidates {
		r.Score = RelevanceScore(page.Query, r.ID, r.Name)
		if r.Score > 0 {
			page.Results = append(page.Results, r)
		}
	}
	sort.SliceStable(page.Results, func(i, j int) bool {
		a, b := page.Results[i], page.Results[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.ID != b.ID {
			return a.ID < b.ID
		}
		return a.Type < b.Type
	})
	page.Total = len(page.Results)
	if len(page.Results) > MaxResults {
		page.Results = page.Results[:MaxResults]
	}
	return page
}

// SearchUnits ranks units, keeping only those in one of categories when
// categories is non-empty.
func SearchUnits(query string, units []models.Unit, categories []models.UnitCategory) Page {
	return Rank(query, unitResults(units, categories))
}

// SearchItems ranks budget items, keeping only those of one of tiers when
// tiers is non-empty.
func SearchItems(query string, items []models.BudgetItem, tiers []models.Tier) Page {
	return Rank(query, itemResults(items, tiers))
}

// SearchAll ranks units and items together.
func SearchAll(query string, units []models.Unit, items []models.BudgetItem, categories []models.UnitCategory, tiers []models.Tier) Page {
	return Rank(query, append(unitResults(units, categories), itemResults(items, tiers)...))
}

func unitResults(units []models.Unit, categories []models.UnitCategory) []Result {
	out := make([]Result, 0, len(units))
	for i := range units {
		u := units[i]
		if len(categories) > 0 && !u.InCategory(categories) {
			continue
		}
		out = append(out, Result{Type: TypeUnit, ID: u.ID, Name: u.Name, Unit: &u})
	}
	return out
}

func itemResults(items []models.BudgetItem, tiers []models.Tier) []Result {
	out := make([]Result, 0, len(items))
	for i := range items {
		it := items[i]
		if len(tiers) > 0 && !hasTier(tiers, it.Tier) {
			continue
		}
		out = append(out, Result{Type: TypeItem, ID: it.ID, Name: it.Name, Item: &it})
	}
	return out
}

func hasTier(tiers []models.Tier, t models.Tier) bool {
	for _, x := range tiers {
		if x == t {
			return true
		}
	}
	return false
}
