// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"mime"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// VisitorKey is the context key for the visitor id.
	VisitorKey contextKey = "visitor"

	// VisitorCookieName is the cookie that carries the anonymous visitor id.
	VisitorCookieName = "bs_visitor"

	visitorCookieMaxAge = 365 * 24 * time.Hour
)

// Visitor makes sure every request carries an anonymous visitor id. An
// existing, well-formed cookie is reused; otherwise a fresh uuid is issued.
// Favorites are keyed by this id.
func Visitor(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := visitorFromCookie(r)
			if !ok {
				id = uuid.New()
				http.SetCookie(w, &http.Cookie{
					Name:     VisitorCookieName,
					Value:    id.String(),
					Path:     "/",
					MaxAge:   int(visitorCookieMaxAge.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), VisitorKey, id.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func visitorFromCookie(r *http.Request) (uuid.UUID, bool) {
	c, err := r.Cookie(VisitorCookieName)
	if err != nil || c.Value == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(c.Value)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// VisitorFromCtx extracts the visitor id from the request context.
// Returns "" if the Visitor middleware did not run.
func VisitorFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(VisitorKey).(string)
	return id
}

// RequireJSON rejects state-changing requests whose body is not JSON.
// Browsers cannot send application/json cross-site without a preflight,
// so together with the SameSite visitor cookie this stands in for a
// CSRF token on the favorites endpoints.
func RequireJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			if !isJSON(r.Header.Get("Content-Type")) {
				writeError(w, http.StatusUnsupportedMediaType, "content type must be application/json")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func isJSON(ct string) bool {
	mt, _, err := mime.ParseMediaType(ct)
	return err == nil && mt == "application/json"
}
