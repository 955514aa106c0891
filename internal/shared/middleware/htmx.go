// Package middleware holds the HTTP middleware shared by the dashboard routes.
package middleware

import (
	"context"
	"net/http"
)

type contextKey string

const htmxKey contextKey = "htmx"

// HTMX marks requests issued by htmx so handlers can answer with a fragment.
// Responses vary on the header since the same URL serves both forms.
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "HX-Request")
		isHTMX := r.Header.Get("HX-Request") == "true"
		ctx := context.WithValue(r.Context(), htmxKey, isHTMX)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func IsHTMX(r *http.Request) bool {
	if v, ok := r.Context().Value(htmxKey).(bool); ok {
		return v
	}
	return false
}
