// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"budgetscale/internal/catalog"
)

// CatalogLoader reads the full catalog from the database and validates it
// the same way a YAML catalog is validated.
func CatalogLoader(db *sql.DB) catalog.Loader {
	units := NewUnitStore(db)
	items := NewBudgetItemStore(db)
	return catalog.LoaderFunc(func(ctx context.Context) (*catalog.Catalog, error) {
		us, err := units.List(ctx)
		if err != nil {
			return nil, err
		}
		is, err := items.List(ctx, ItemFilter{})
		if err != nil {
			return nil, err
		}
		c, err := catalog.New(us, is)
		if err != nil {
			return nil, fmt.Errorf("database catalog: %w", err)
		}
		return c, nil
	})
}
