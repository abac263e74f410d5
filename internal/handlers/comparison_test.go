package handlers

import (
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"budgetscale/internal/catalog"
	"budgetscale/internal/format"
	"budgetscale/internal/models"
)

type comparisonBody struct {
	BudgetItem *struct {
		ID              string  `json:"id"`
		Amount          float64 `json:"amount"`
		DescriptionHTML string  `json:"descriptionHtml"`
	} `json:"budgetItem"`
	Unit *struct {
		ID string `json:"id"`
	} `json:"unit"`
	Comparison *struct {
		Count          float64 `json:"count"`
		Formatted      string  `json:"formatted"`
		FormattedCount string  `json:"formattedCount"`
		UnitName       string  `json:"unitName"`
		DisplayString  string  `json:"displayString"`
	} `json:"comparison"`
	Amount          float64          `json:"amount"`
	FormattedAmount string           `json:"formattedAmount"`
	SpendingTier    string           `json:"spendingTier"`
	PerCapita       format.Breakdown `json:"perCapita"`
}

func TestComparisonFeaturedUnit(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.get(t, "/api/comparison?item=defense")
	wantStatus(t, rec, http.StatusOK)

	var body comparisonBody
	decode(t, rec, &body)

	if body.BudgetItem == nil || body.BudgetItem.ID != "defense" {
		t.Fatalf("budgetItem: got %+v, want defense", body.BudgetItem)
	}
	if body.Unit == nil || body.Unit.ID != "f35" {
		t.Fatalf("unit: got %+v, want f35", body.Unit)
	}
	if body.Comparison.Count != 10525 {
		t.Errorf("count: got %v, want 10525", body.Comparison.Count)
	}
	if body.Comparison.DisplayString != "10,525 F-35 Fighter Jets" {
		t.Errorf("displayString: got %q", body.Comparison.DisplayString)
	}
	if body.FormattedAmount != "$842B" {
		t.Errorf("formattedAmount: got %q, want $842B", body.FormattedAmount)
	}
	if want := 842e9 / format.USPopulation; math.Abs(body.PerCapita.PerPerson-want) > 1e-6 {
		t.Errorf("perPerson: got %v, want %v", body.PerCapita.PerPerson, want)
	}
}

func TestComparisonExplicitUnitAndAmount(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.get(t, "/api/comparison?item=nasa&unit=jwst&amount=25000000000")
	wantStatus(t, rec, http.StatusOK)

	var body comparisonBody
	decode(t, rec, &body)

	if body.Amount != 25e9 {
		t.Errorf("amount: got %v, want custom 25e9", body.Amount)
	}
	if body.Comparison.Count != 2.5 {
		t.Errorf("count: got %v, want 2.5", body.Comparison.Count)
	}
	if body.Comparison.UnitName != "James Webb Space Telescopes" {
		t.Errorf("unitName: got %q, want plural form", body.Comparison.UnitName)
	}
}

func TestComparisonCustomAmountAutoSelects(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.get(t, "/api/comparison?amount=1000000")
	wantStatus(t, rec, http.StatusOK)

	var body comparisonBody
	decode(t, rec, &body)

	if body.BudgetItem != nil {
		t.Errorf("budgetItem: got %+v, want null", body.BudgetItem)
	}
	if body.Unit == nil || body.Comparison == nil {
		t.Fatal("expected an automatically selected unit")
	}
	if body.SpendingTier != string(models.SpendingTierFor(1e6)) {
		t.Errorf("spendingTier: got %q", body.SpendingTier)
	}

	// Selection is deterministic.
	again := env.get(t, "/api/comparison?amount=1000000")
	var second comparisonBody
	decode(t, again, &second)
	if second.Unit.ID != body.Unit.ID {
		t.Errorf("selection changed between calls: %s then %s", body.Unit.ID, second.Unit.ID)
	}
}

func TestComparisonErrors(t *testing.T) {
	env := newTestEnv(t, nil)

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"no item or amount", "/api/comparison", http.StatusBadRequest},
		{"unknown item", "/api/comparison?item=nope", http.StatusNotFound},
		{"unknown unit", "/api/comparison?item=defense&unit=nope", http.StatusNotFound},
		{"negative amount", "/api/comparison?amount=-5", http.StatusBadRequest},
		{"malformed amount", "/api/comparison?amount=lots", http.StatusBadRequest},
		{"infinite amount", "/api/comparison?amount=Inf", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.get(t, tt.target)
			wantStatus(t, rec, tt.want)
			if !strings.Contains(rec.Body.String(), `"error"`) {
				t.Errorf("body: got %q, want an error field", rec.Body.String())
			}
		})
	}
}

func TestComparisonWithoutUnits(t *testing.T) {
	c, err := catalog.New(nil, []models.BudgetItem{{ID: "x", Name: "X", Amount: 100}})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	env := newTestEnvWith(t, c, nil)

	rec := env.get(t, "/api/comparison?item=x")
	wantStatus(t, rec, http.StatusOK)

	var body comparisonBody
	decode(t, rec, &body)
	if body.Unit != nil || body.Comparison != nil {
		t.Errorf("got unit %+v comparison %+v, want both null", body.Unit, body.Comparison)
	}
}

func TestComparisonResponseCache(t *testing.T) {
	fc := newFakeCache()
	env := newTestEnv(t, fc)

	first := env.get(t, "/api/comparison?item=defense")
	wantStatus(t, first, http.StatusOK)
	if got := first.Header().Get("X-Cache"); got != "MISS" {
		t.Errorf("first X-Cache: got %q, want MISS", got)
	}

	second := env.get(t, "/api/comparison?item=defense")
	wantStatus(t, second, http.StatusOK)
	if got := second.Header().Get("X-Cache"); got != "HIT" {
		t.Errorf("second X-Cache: got %q, want HIT", got)
	}
	if first.Body.String() != second.Body.String() {
		t.Error("cached body differs from the original")
	}

	// Errors are never cached.
	env.get(t, "/api/comparison?item=nope")
	if fc.len() != 1 {
		t.Errorf("cache entries: got %d, want 1", fc.len())
	}
}

func TestResponseCacheIgnoresReplacedCatalog(t *testing.T) {
	fc := newFakeCache()
	env := newTestEnv(t, fc)
	old := env.Source.Current()

	items := old.Items()
	for i := range items {
		if items[i].ID == "defense" {
			items[i].Amount = 900_000_000_000
		}
	}
	next, err := catalog.New(old.Units(), items)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	if next.Version() == old.Version() {
		t.Fatal("changed catalog kept the same version")
	}

	// A request that read the old snapshot stores its body after the
	// catalog has already been replaced.
	env.Source.Replace(next)
	req := httptest.NewRequest(http.MethodGet, "/api/comparison?item=defense", nil)
	env.API.writeCached(httptest.NewRecorder(), req, old, "comparison", map[string]any{"stale": true})

	rec := env.get(t, "/api/comparison?item=defense")
	wantStatus(t, rec, http.StatusOK)
	if got := rec.Header().Get("X-Cache"); got != "MISS" {
		t.Errorf("X-Cache: got %q, want MISS", got)
	}
	var body comparisonBody
	decode(t, rec, &body)
	if body.BudgetItem == nil || body.BudgetItem.Amount != 900_000_000_000 {
		t.Errorf("budgetItem: got %+v, want the replaced amount", body.BudgetItem)
	}

	again := env.get(t, "/api/comparison?item=defense")
	if got := again.Header().Get("X-Cache"); got != "HIT" {
		t.Errorf("repeat X-Cache: got %q, want HIT", got)
	}
}

type alternativesBody struct {
	Spending []struct {
		Item struct {
			ID string `json:"id"`
		} `json:"item"`
	} `json:"spendingAlternatives"`
	Units []struct {
		Unit struct {
			ID string `json:"id"`
		} `json:"unit"`
	} `json:"unitAlternatives"`
	TotalSpending int `json:"totalSpending"`
	TotalUnits    int `json:"totalUnits"`
}

func TestAlternatives(t *testing.T) {
	env := newTestEnv(t, nil)
	cat := env.Source.Current()

	rec := env.get(t, "/api/alternatives?item=defense&unit=f35&limit=2")
	wantStatus(t, rec, http.StatusOK)

	var body alternativesBody
	decode(t, rec, &body)

	if len(body.Spending) != 2 || len(body.Units) != 2 {
		t.Fatalf("lengths: got %d/%d, want 2/2", len(body.Spending), len(body.Units))
	}
	if body.TotalSpending != len(cat.Items())-1 {
		t.Errorf("totalSpending: got %d, want %d", body.TotalSpending, len(cat.Items())-1)
	}
	if body.TotalUnits != len(cat.Units())-1 {
		t.Errorf("totalUnits: got %d, want %d", body.TotalUnits, len(cat.Units())-1)
	}

	all := env.get(t, "/api/alternatives?item=defense&unit=f35&limit=all")
	wantStatus(t, all, http.StatusOK)
	var full alternativesBody
	decode(t, all, &full)

	if len(full.Units) != full.TotalUnits {
		t.Errorf("limit=all: got %d units, want %d", len(full.Units), full.TotalUnits)
	}
	for _, u := range full.Units {
		if u.Unit.ID == "f35" {
			t.Error("current unit must not appear among the alternatives")
		}
	}
	for _, s := range full.Spending {
		if s.Item.ID == "defense" {
			t.Error("current item must not appear among spending alternatives")
		}
	}
}

func TestAlternativesDefaultLimit(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.get(t, "/api/alternatives?item=nasa")
	wantStatus(t, rec, http.StatusOK)

	var body alternativesBody
	decode(t, rec, &body)
	if len(body.Units) != 3 || len(body.Spending) != 3 {
		t.Errorf("default lengths: got %d/%d, want 3/3", len(body.Spending), len(body.Units))
	}
}

func TestAlternativesErrors(t *testing.T) {
	env := newTestEnv(t, nil)

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"missing item", "/api/alternatives", http.StatusBadRequest},
		{"unknown item", "/api/alternatives?item=nope", http.StatusNotFound},
		{"unknown unit", "/api/alternatives?item=defense&unit=nope", http.StatusNotFound},
		{"negative limit", "/api/alternatives?item=defense&limit=-1", http.StatusBadRequest},
		{"bad limit", "/api/alternatives?item=defense&limit=some", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantStatus(t, env.get(t, tt.target), tt.want)
		})
	}
}
