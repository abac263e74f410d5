// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"budgetscale/internal/catalog"
	"budgetscale/internal/models"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Seed copies c into the units and budget_items tables when both are
// empty. Running it against a populated database is a no-op.
func Seed(ctx context.Context, db *sql.DB, c *catalog.Catalog) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT (SELECT COUNT(*) FROM units) + (SELECT COUNT(*) FROM budget_items)").Scan(&count); err != nil {
		return fmt.Errorf("seed check: %w", err)
	}
	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	units := c.Units()
	for i, u := range units {
		q, args, err := psql.Insert("units").
			Columns("id", "name", "name_singular", "cost_per_unit", "category", "description", "icon", "source", "sort_order").
			Values(u.ID, u.Name, u.NameSingular, decimal.NewFromFloat(u.CostPerUnit), string(u.Category), u.Description, u.Icon, u.Source, i).
			ToSql()
		if err != nil {
			return fmt.Errorf("seed build unit %s: %w", u.ID, err)
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("seed insert unit %s: %w", u.ID, err)
		}
	}

	// Items go in without parents first so insertion order does not matter
	// for the self-referencing foreign key.
	items := c.Items()
	for i, it := range items {
		q, args, err := psql.Insert("budget_items").
			Columns("id", "name", "amount", "fiscal_year", "tier", "description", "source",
				"percent_of_parent", "year_over_year_change", "spent", "unit_id", "affinity", "sort_order").
			Values(it.ID, it.Name, decimal.NewFromFloat(it.Amount), it.FiscalYear, string(it.Tier), it.Description, it.Source,
				nullDecimal(it.PercentOfParent), nullDecimal(it.YearOverYearChange), nullDecimal(it.Spent),
				nullString(it.UnitID), JoinAffinity(it.Affinity), i).
			ToSql()
		if err != nil {
			return fmt.Errorf("seed build item %s: %w", it.ID, err)
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("seed insert item %s: %w", it.ID, err)
		}
	}
	for _, it := range items {
		if it.ParentID == "" {
			continue
		}
		q, args, err := psql.Update("budget_items").Set("parent_id", it.ParentID).Where(sq.Eq{"id": it.ID}).ToSql()
		if err != nil {
			return fmt.Errorf("seed build parent %s: %w", it.ID, err)
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("seed link parent %s: %w", it.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}
	slog.Info("database seeded from catalog", "units", len(units), "items", len(items))
	return nil
}

// JoinAffinity encodes affinity hints for the affinity column.
func JoinAffinity(cats []models.UnitCategory) string {
	parts := make([]string, len(cats))
	for i, c := range cats {
		parts[i] = string(c)
	}
	return strings.Join(parts, ",")
}

// SplitAffinity decodes the affinity column.
func SplitAffinity(s string) []models.UnitCategory {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]models.UnitCategory, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, models.UnitCategory(p))
		}
	}
	return out
}

func nullDecimal(v *float64) decimal.NullDecimal {
	if v == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: decimal.NewFromFloat(*v), Valid: true}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
