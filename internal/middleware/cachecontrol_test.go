package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCacheControl(t *testing.T) {
	t.Run("sets header", func(t *testing.T) {
		handler := CacheControl(CachePublic)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/units", nil))

		if got := rr.Header().Get("Cache-Control"); got != CachePublic {
			t.Errorf("Cache-Control: got %q, want %q", got, CachePublic)
		}
	})

	t.Run("handler can override", func(t *testing.T) {
		handler := CacheControl(CachePublic)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", CachePrivate)
			w.WriteHeader(http.StatusOK)
		}))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/units", nil))

		if got := rr.Header().Get("Cache-Control"); got != CachePrivate {
			t.Errorf("Cache-Control: got %q, want %q", got, CachePrivate)
		}
	})

	t.Run("outer value wins when nested", func(t *testing.T) {
		inner := CacheControl(CachePublic)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		handler := CacheControl(CachePrivate)(inner)

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/favorites", nil))

		if got := rr.Header().Get("Cache-Control"); got != CachePrivate {
			t.Errorf("Cache-Control: got %q, want %q", got, CachePrivate)
		}
	})
}
