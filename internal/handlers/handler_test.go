// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for the API handler
// tests. Everything runs against the embedded catalog and the in-memory
// favorites backend, so no external services are needed.
package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"budgetscale/internal/catalog"
	"budgetscale/internal/comparison"
	"budgetscale/internal/favorites"
	"budgetscale/internal/middleware"
)

// fakeCache is an in-memory ResponseCache.
type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (f *fakeCache) Get(_ context.Context, key string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.entries[key]
	return b, ok
}

func (f *fakeCache) Set(_ context.Context, key string, body []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = append([]byte(nil), body...)
}

func (f *fakeCache) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

// testEnv bundles an API, its catalog source and a router serving it.
type testEnv struct {
	API     *API
	Source  *catalog.Source
	Router  http.Handler
	Visitor string
}

func newTestEnv(t *testing.T, responses ResponseCache) *testEnv {
	t.Helper()

	c, err := catalog.Embedded()
	if err != nil {
		t.Fatalf("embedded catalog: %v", err)
	}
	return newTestEnvWith(t, c, responses)
}

func newTestEnvWith(t *testing.T, c *catalog.Catalog, responses ResponseCache) *testEnv {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	favs, err := favorites.NewStore(ctx, favorites.NewMemoryBackend())
	if err != nil {
		t.Fatalf("favorites store: %v", err)
	}

	src := catalog.NewSource(c)
	api := NewAPI(src, comparison.NewScorer(1024), favs, responses)

	r := chi.NewRouter()
	r.Use(middleware.Visitor(false))
	r.Get("/api/comparison", api.Comparison)
	r.Get("/api/alternatives", api.Alternatives)
	r.Get("/api/units", api.Units)
	r.Get("/api/units/{id}", api.Unit)
	r.Get("/api/budget-items", api.BudgetItems)
	r.Get("/api/budget-items/{id}", api.BudgetItem)
	r.Get("/api/budget/categories", api.Categories)
	r.Get("/api/search", api.Search)
	r.Route("/api/favorites", func(r chi.Router) {
		r.Use(middleware.RequireJSON)
		r.Get("/", api.ListFavorites)
		r.Post("/", api.AddFavorite)
		r.Delete("/{id}", api.RemoveFavorite)
	})

	return &testEnv{API: api, Source: src, Router: r, Visitor: uuid.New().String()}
}

// do sends a request as the env's visitor and returns the recorder.
func (e *testEnv) do(t *testing.T, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	req.AddCookie(&http.Cookie{Name: middleware.VisitorCookieName, Value: e.Visitor})
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.Router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(t, http.MethodGet, target, nil)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode JSON: %v (body %q)", err, rec.Body.String())
	}
}

func wantStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status: got %d, want %d (body %q)", rec.Code, want, rec.Body.String())
	}
}
