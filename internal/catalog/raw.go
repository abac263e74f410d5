// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package catalog

import (
	"strings"

	"budgetscale/internal/models"
)

// rawUnit is a unit as written in catalog YAML. Older catalogs spell the
// cost "cost" and the names "pluralName"/"singularName"; normalize folds
// every variant into models.Unit.
type rawUnit struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	PluralName   string   `yaml:"pluralName"`
	NameSingular string   `yaml:"nameSingular"`
	SingularName string   `yaml:"singularName"`
	CostPerUnit  *float64 `yaml:"costPerUnit"`
	Cost         *float64 `yaml:"cost"`
	Category     string   `yaml:"category"`
	Description  string   `yaml:"description"`
	Icon         string   `yaml:"icon"`
	Source       string   `yaml:"source"`
}

// rawItem is a budget item as written in catalog YAML.
type rawItem struct {
	ID                 string   `yaml:"id"`
	Name               string   `yaml:"name"`
	Amount             float64  `yaml:"amount"`
	ParentID           string   `yaml:"parentId"`
	FiscalYear         int      `yaml:"fiscalYear"`
	Tier               string   `yaml:"tier"`
	Description        string   `yaml:"description"`
	Source             string   `yaml:"source"`
	PercentOfParent    *float64 `yaml:"percentOfParent"`
	YearOverYearChange *float64 `yaml:"yearOverYearChange"`
	Spent              *float64 `yaml:"spent"`
	UnitID             string   `yaml:"unitId"`
	Affinity           []string `yaml:"affinity"`
}

// rawCatalog is the top-level YAML document.
type rawCatalog struct {
	FiscalYear int       `yaml:"fiscalYear"`
	Units      []rawUnit `yaml:"units"`
	Items      []rawItem `yaml:"items"`
}

// unit folds the name and cost variants into the canonical record. With
// pluralName present, name is the singular form. Category is copied as is
// and checked by validation. A missing cost becomes 0 and fails validation.
func (r rawUnit) unit() models.Unit {
	plural, singular := strings.TrimSpace(r.Name), strings.TrimSpace(r.NameSingular)
	if p := strings.TrimSpace(r.PluralName); p != "" {
		if singular == "" {
			singular = plural
		}
		plural = p
	}
	if singular == "" {
		singular = strings.TrimSpace(r.SingularName)
	}
	if singular == "" {
		singular = plural
	}

	var cost float64
	switch {
	case r.CostPerUnit != nil:
		cost = *r.CostPerUnit
	case r.Cost != nil:
		cost = *r.Cost
	}

	return models.Unit{
		ID:           strings.TrimSpace(r.ID),
		Name:         plural,
		NameSingular: singular,
		CostPerUnit:  cost,
		Category:     models.UnitCategory(strings.TrimSpace(r.Category)),
		Description:  strings.TrimSpace(r.Description),
		Icon:         r.Icon,
		Source:       r.Source,
	}
}

// item converts the record; tier and affinity are checked by validation.
func (r rawItem) item(defaultYear int) models.BudgetItem {
	year := r.FiscalYear
	if year == 0 {
		year = defaultYear
	}
	it := models.BudgetItem{
		ID:                 strings.TrimSpace(r.ID),
		Name:               strings.TrimSpace(r.Name),
		Amount:             r.Amount,
		ParentID:           strings.TrimSpace(r.ParentID),
		FiscalYear:         year,
		Tier:               models.Tier(strings.TrimSpace(r.Tier)),
		Description:        strings.TrimSpace(r.Description),
		Source:             r.Source,
		PercentOfParent:    r.PercentOfParent,
		YearOverYearChange: r.YearOverYearChange,
		Spent:              r.Spent,
		UnitID:             strings.TrimSpace(r.UnitID),
	}
	for _, a := range r.Affinity {
		it.Affinity = append(it.Affinity, models.UnitCategory(strings.TrimSpace(a)))
	}
	return it
}
