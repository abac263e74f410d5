// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// budgetscale API. Catalog reads are public and cacheable; favorites are
// per-visitor and never cached.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"budgetscale/internal/handlers"
	"budgetscale/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. limiter may be nil to disable rate limiting.
func New(api *handlers.API, limiter *middleware.RateLimiter, secureCookies bool) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Health check, exempt from rate limiting.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter.Middleware)
		}

		// Catalog reads.
		r.Group(func(r chi.Router) {
			r.Use(middleware.CacheControl(middleware.CachePublic))

			r.Get("/comparison", api.Comparison)
			r.Get("/alternatives", api.Alternatives)
			r.Get("/search", api.Search)
			r.Get("/budget/categories", api.Categories)

			r.Route("/units", func(r chi.Router) {
				r.Get("/", api.Units)
				r.Get("/{id}", api.Unit)
			})

			r.Route("/budget-items", func(r chi.Router) {
				r.Get("/", api.BudgetItems)
				r.Get("/{id}", api.BudgetItem)
			})
		})

		// Favorites, keyed by the anonymous visitor cookie.
		r.Route("/favorites", func(r chi.Router) {
			r.Use(middleware.CacheControl(middleware.CachePrivate))
			r.Use(middleware.Visitor(secureCookies))
			r.Use(middleware.RequireJSON)

			r.Get("/", api.ListFavorites)
			r.Post("/", api.AddFavorite)
			r.Delete("/{id}", api.RemoveFavorite)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", middleware.CachePrivate)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":"` + msg + `"}` + "\n"))
}
