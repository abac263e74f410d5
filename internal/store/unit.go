// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"budgetscale/internal/models"
)

// UnitStore manages comparison units in the database.
type UnitStore struct {
	db *sql.DB
}

// NewUnitStore returns a new UnitStore.
func NewUnitStore(db *sql.DB) *UnitStore {
	return &UnitStore{db: db}
}

var unitColumns = []string{"id", "name", "name_singular", "cost_per_unit", "category", "description", "icon", "source"}

func scanUnit(scanner rowScanner) (*models.Unit, error) {
	var (
		u        models.Unit
		cost     decimal.Decimal
		category string
	)
	err := scanner.Scan(&u.ID, &u.Name, &u.NameSingular, &cost, &category, &u.Description, &u.Icon, &u.Source)
	if err != nil {
		return nil, err
	}
	u.CostPerUnit = cost.InexactFloat64()
	u.Category = models.UnitCategory(category)
	return &u, nil
}

// List returns units in catalog order, restricted to the given categories
// when any are passed.
func (s *UnitStore) List(ctx context.Context, categories ...models.UnitCategory) ([]models.Unit, error) {
	b := psql.Select(unitColumns...).From("units").OrderBy("sort_order", "id")
	if len(categories) > 0 {
		names := make([]string, len(categories))
		for i, c := range categories {
			names[i] = string(c)
		}
		b = b.Where(sq.Eq{"category": names})
	}
	q, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list units: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()

	var units []models.Unit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		units = append(units, *u)
	}
	return units, rows.Err()
}

// FindByID retrieves a unit. Returns nil if not found.
func (s *UnitStore) FindByID(ctx context.Context, id string) (*models.Unit, error) {
	q, args, err := psql.Select(unitColumns...).From("units").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find unit: %w", err)
	}
	u, err := scanUnit(s.db.QueryRowContext(ctx, q, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find unit by id: %w", err)
	}
	return u, nil
}

// Upsert inserts the unit or updates it in place.
func (s *UnitStore) Upsert(ctx context.Context, u models.Unit, sortOrder int) error {
	q, args, err := psql.Insert("units").
		Columns(append(unitColumns, "sort_order")...).
		Values(u.ID, u.Name, u.NameSingular, decimal.NewFromFloat(u.CostPerUnit), string(u.Category), u.Description, u.Icon, u.Source, sortOrder).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, name_singular = EXCLUDED.name_singular,
			cost_per_unit = EXCLUDED.cost_per_unit, category = EXCLUDED.category,
			description = EXCLUDED.description, icon = EXCLUDED.icon, source = EXCLUDED.source,
			sort_order = EXCLUDED.sort_order, updated_at = now()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert unit: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("upsert unit %s: %w", u.ID, err)
	}
	return nil
}

// Delete removes a unit. Items featuring it lose their featured unit.
func (s *UnitStore) Delete(ctx context.Context, id string) error {
	q, args, err := psql.Delete("units").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete unit: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("delete unit %s: %w", id, err)
	}
	return nil
}
