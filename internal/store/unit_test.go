package store

import (
	"context"
	"testing"

	"budgetscale/internal/models"
)

func TestUnitUpsertAndFind(t *testing.T) {
	db := testDB(t)
	s := NewUnitStore(db)
	ctx := context.Background()
	t.Cleanup(func() { cleanUnits(t, db, "test-widget") })

	u := models.Unit{
		ID: "test-widget", Name: "test widgets", NameSingular: "test widget",
		CostPerUnit: 3.5, Category: models.CategoryMisc, Icon: "🔧",
	}
	if err := s.Upsert(ctx, u, 999); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	got, err := s.FindByID(ctx, "test-widget")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got == nil {
		t.Fatal("expected unit, got nil")
	}
	if *got != u {
		t.Errorf("round trip: got %+v, want %+v", *got, u)
	}

	u.CostPerUnit = 4
	if err := s.Upsert(ctx, u, 999); err != nil {
		t.Fatalf("second Upsert: %v", err)
	}
	got, _ = s.FindByID(ctx, "test-widget")
	if got.CostPerUnit != 4 {
		t.Errorf("cost after update = %v, want 4", got.CostPerUnit)
	}
}

func TestUnitFindMissing(t *testing.T) {
	db := testDB(t)
	got, err := NewUnitStore(db).FindByID(context.Background(), "no-such-unit")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestUnitListByCategory(t *testing.T) {
	db := testDB(t)
	units, err := NewUnitStore(db).List(context.Background(), models.CategoryEducation, models.CategoryFood)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, u := range units {
		if u.Category != models.CategoryEducation && u.Category != models.CategoryFood {
			t.Errorf("unexpected category %q for %s", u.Category, u.ID)
		}
	}
}
