package store

import (
	"context"
	"reflect"
	"testing"

	"budgetscale/internal/models"
)

func TestBudgetItemUpsertAndFind(t *testing.T) {
	db := testDB(t)
	s := NewBudgetItemStore(db)
	ctx := context.Background()
	t.Cleanup(func() { cleanItems(t, db, "test-child", "test-parent") })

	pct := 25.0
	parent := models.BudgetItem{ID: "test-parent", Name: "Test Parent", Amount: 400, FiscalYear: 2024, Tier: models.TierDepartment}
	child := models.BudgetItem{
		ID: "test-child", Name: "Test Child", Amount: 100, ParentID: "test-parent",
		FiscalYear: 2024, Tier: models.TierProgram, PercentOfParent: &pct,
		Affinity: []models.UnitCategory{models.CategoryScience, models.CategoryEducation},
	}
	if err := s.Upsert(ctx, parent, 998); err != nil {
		t.Fatalf("Upsert parent: %v", err)
	}
	if err := s.Upsert(ctx, child, 999); err != nil {
		t.Fatalf("Upsert child: %v", err)
	}

	got, err := s.FindByID(ctx, "test-child")
	if err != nil || got == nil {
		t.Fatalf("FindByID = %v, %v", got, err)
	}
	if got.ParentID != "test-parent" || got.Amount != 100 {
		t.Errorf("got %+v", got)
	}
	if got.PercentOfParent == nil || *got.PercentOfParent != 25 {
		t.Errorf("percentOfParent = %v", got.PercentOfParent)
	}
	if got.Spent != nil || got.YearOverYearChange != nil {
		t.Error("NULL numerics should scan as nil")
	}
	if !reflect.DeepEqual(got.Affinity, child.Affinity) {
		t.Errorf("affinity = %v", got.Affinity)
	}

	kids, err := s.List(ctx, ItemFilter{ParentID: "test-parent"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(kids) != 1 || kids[0].ID != "test-child" {
		t.Errorf("children = %+v", kids)
	}
}

func TestBudgetItemListByTier(t *testing.T) {
	db := testDB(t)
	items, err := NewBudgetItemStore(db).List(context.Background(), ItemFilter{Tier: models.TierDepartment})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, it := range items {
		if it.Tier != models.TierDepartment {
			t.Errorf("%s has tier %q", it.ID, it.Tier)
		}
	}
}

func TestBudgetItemFindMissing(t *testing.T) {
	db := testDB(t)
	got, err := NewBudgetItemStore(db).FindByID(context.Background(), "no-such-item")
	if err != nil || got != nil {
		t.Errorf("FindByID = %v, %v; want nil, nil", got, err)
	}
}

func TestCatalogLoader(t *testing.T) {
	db := testDB(t)
	c, err := CatalogLoader(db).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.Units()) == 0 {
		t.Error("database catalog has no units")
	}
}
