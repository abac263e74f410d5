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

	"budgetscale/internal/database"
	"budgetscale/internal/models"
)

// BudgetItemStore manages budget items in the database.
type BudgetItemStore struct {
	db *sql.DB
}

// NewBudgetItemStore returns a new BudgetItemStore.
func NewBudgetItemStore(db *sql.DB) *BudgetItemStore {
	return &BudgetItemStore{db: db}
}

// ItemFilter narrows List. Zero fields do not filter.
type ItemFilter struct {
	Tier       models.Tier
	ParentID   string
	FiscalYear int
	MinAmount  float64
}

var itemColumns = []string{
	"id", "name", "amount", "parent_id", "fiscal_year", "tier", "description", "source",
	"percent_of_parent", "year_over_year_change", "spent", "unit_id", "affinity",
}

func scanItem(scanner rowScanner) (*models.BudgetItem, error) {
	var (
		it               models.BudgetItem
		amount           decimal.Decimal
		parentID, unitID sql.NullString
		tier, affinity   string
		pct, yoy, spent  decimal.NullDecimal
	)
	err := scanner.Scan(&it.ID, &it.Name, &amount, &parentID, &it.FiscalYear, &tier,
		&it.Description, &it.Source, &pct, &yoy, &spent, &unitID, &affinity)
	if err != nil {
		return nil, err
	}
	it.Amount = amount.InexactFloat64()
	it.ParentID = parentID.String
	it.UnitID = unitID.String
	it.Tier = models.Tier(tier)
	it.PercentOfParent = floatPtr(pct)
	it.YearOverYearChange = floatPtr(yoy)
	it.Spent = floatPtr(spent)
	it.Affinity = database.SplitAffinity(affinity)
	return &it, nil
}

// List returns budget items in catalog order matching f.
func (s *BudgetItemStore) List(ctx context.Context, f ItemFilter) ([]models.BudgetItem, error) {
	b := psql.Select(itemColumns...).From("budget_items").OrderBy("sort_order", "id")
	if f.Tier != "" {
		b = b.Where(sq.Eq{"tier": string(f.Tier)})
	}
	if f.ParentID != "" {
		b = b.Where(sq.Eq{"parent_id": f.ParentID})
	}
	if f.FiscalYear != 0 {
		b = b.Where(sq.Eq{"fiscal_year": f.FiscalYear})
	}
	if f.MinAmount > 0 {
		b = b.Where(sq.GtOrEq{"amount": decimal.NewFromFloat(f.MinAmount)})
	}
	q, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list budget items: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list budget items: %w", err)
	}
	defer rows.Close()

	var items []models.BudgetItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan budget item: %w", err)
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

// FindByID retrieves a budget item. Returns nil if not found.
func (s *BudgetItemStore) FindByID(ctx context.Context, id string) (*models.BudgetItem, error) {
	q, args, err := psql.Select(itemColumns...).From("budget_items").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find budget item: %w", err)
	}
	it, err := scanItem(s.db.QueryRowContext(ctx, q, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find budget item by id: %w", err)
	}
	return it, nil
}

// Upsert inserts the item or updates it in place. The parent must already
// exist.
func (s *BudgetItemStore) Upsert(ctx context.Context, it models.BudgetItem, sortOrder int) error {
	var parent, unit any
	if it.ParentID != "" {
		parent = it.ParentID
	}
	if it.UnitID != "" {
		unit = it.UnitID
	}
	q, args, err := psql.Insert("budget_items").
		Columns(append(itemColumns, "sort_order")...).
		Values(it.ID, it.Name, decimal.NewFromFloat(it.Amount), parent, it.FiscalYear, string(it.Tier),
			it.Description, it.Source, nullDecimal(it.PercentOfParent), nullDecimal(it.YearOverYearChange),
			nullDecimal(it.Spent), unit, database.JoinAffinity(it.Affinity), sortOrder).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, amount = EXCLUDED.amount, parent_id = EXCLUDED.parent_id,
			fiscal_year = EXCLUDED.fiscal_year, tier = EXCLUDED.tier,
			description = EXCLUDED.description, source = EXCLUDED.source,
			percent_of_parent = EXCLUDED.percent_of_parent,
			year_over_year_change = EXCLUDED.year_over_year_change,
			spent = EXCLUDED.spent, unit_id = EXCLUDED.unit_id, affinity = EXCLUDED.affinity,
			sort_order = EXCLUDED.sort_order, updated_at = now()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert budget item: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("upsert budget item %s: %w", it.ID, err)
	}
	return nil
}

// Delete removes a budget item. Children become roots.
func (s *BudgetItemStore) Delete(ctx context.Context, id string) error {
	q, args, err := psql.Delete("budget_items").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete budget item: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("delete budget item %s: %w", id, err)
	}
	return nil
}
