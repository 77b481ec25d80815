// Package middleware provides HTTP middleware for request identification and authorization.
package middleware

import (
	"context"
	"net/http"

	"github.com/jonathan/resume-rewriter/internal/auth"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

const requestIDKey ContextKey = "requestID"

// DenyFunc writes the response for a request the authorizer did not affirm.
type DenyFunc func(w http.ResponseWriter, r *http.Request, err error)

// Authorize creates middleware that checks the Authorization header before the request body
// is read. The header is passed to the authorizer verbatim. A missing header is denied with
// auth.ErrUnauthorized without consulting the authorizer.
func Authorize(authorizer auth.Authorizer, deny DenyFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			credential := r.Header.Get("Authorization")
			if credential == "" {
				deny(w, r, auth.ErrUnauthorized)
				return
			}

			if err := authorizer.Authorize(r.Context(), credential); err != nil {
				deny(w, r, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// WithRequestID returns a context carrying id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the request ID stored in ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
