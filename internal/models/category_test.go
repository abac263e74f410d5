package models

import "testing"

func sampleTree() []BudgetCategory {
	return []BudgetCategory{
		{
			ID: "defense", Name: "Defense", Allocated: 842e9, Spent: 800e9,
			Subcategories: []BudgetCategory{
				{
					ID: "procurement", Name: "Procurement", Allocated: 170e9,
					Subcategories: []BudgetCategory{
						{ID: "f35", Name: "F-35 Program", Allocated: 11e9},
					},
				},
				{ID: "personnel", Name: "Military Personnel", Allocated: 178e9},
			},
		},
		{ID: "education", Name: "Education", Allocated: 80e9},
	}
}

func TestLimitDepth(t *testing.T) {
	tree := sampleTree()

	tests := []struct {
		name     string
		maxDepth int
		want     int
	}{
		{name: "negative depth", maxDepth: -1, want: 0},
		{name: "zero depth", maxDepth: 0, want: 0},
		{name: "top level only", maxDepth: 1, want: 1},
		{name: "two levels", maxDepth: 2, want: 2},
		{name: "exact depth", maxDepth: 3, want: 3},
		{name: "deeper than tree", maxDepth: 10, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LimitDepth(tree, tt.maxDepth)
			if got == nil {
				t.Fatal("LimitDepth must return a non-nil slice")
			}
			if d := Depth(got); d != tt.want {
				t.Errorf("depth = %d, want %d", d, tt.want)
			}
			if d := Depth(got); d > tt.maxDepth && tt.maxDepth >= 0 {
				t.Errorf("depth %d exceeds maxDepth %d", d, tt.maxDepth)
			}
		})
	}
}

func TestLimitDepthTopLevelHasNoSubcategories(t *testing.T) {
	got := LimitDepth(sampleTree(), 1)
	if len(got) != 2 {
		t.Fatalf("top-level count = %d, want 2", len(got))
	}
	for _, n := range got {
		if n.Subcategories != nil {
			t.Errorf("%s: expected no subcategories at the last level", n.ID)
		}
	}
}

func TestLimitDepthReturnsCopy(t *testing.T) {
	tree := sampleTree()
	got := LimitDepth(tree, 3)

	got[0].Name = "changed"
	got[0].Subcategories[0].Allocated = 1

	if tree[0].Name != "Defense" {
		t.Error("mutating the copy changed the source root")
	}
	if tree[0].Subcategories[0].Allocated != 170e9 {
		t.Error("mutating the copy changed a source subcategory")
	}
}
