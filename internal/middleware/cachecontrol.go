// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import "net/http"

const (
	// CachePublic lets shared caches hold catalog reads for an hour and
	// serve them stale for a day while revalidating.
	CachePublic = "public, s-maxage=3600, stale-while-revalidate=86400"

	// CachePrivate keeps per-visitor responses out of every cache.
	CachePrivate = "private, no-store"
)

// CacheControl sets the Cache-Control header on every response unless the
// handler already chose one.
func CacheControl(value string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if w.Header().Get("Cache-Control") == "" {
				w.Header().Set("Cache-Control", value)
			}
			next.ServeHTTP(w, r)
		})
	}
}
