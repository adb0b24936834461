package jwt

import (
	"context"
	"net/http"
)

// contextKey keeps context values of this package apart from other packages.
type contextKey string

const (
	// ContextAuthPayloadKey stores the resolved *Payload in the request context.
	ContextAuthPayloadKey contextKey = "auth_payload"
)

// Resolver yields the claims of the current session, refreshing it when needed.
type Resolver interface {
	Resolve(ctx context.Context) (*Payload, error)
}

// SessionMiddleware resolves the local session before the request reaches next.
// On failure it hands the request to onFailure instead, which typically redirects to
// the login view or answers 401.
func SessionMiddleware(resolver Resolver, onFailure func(w http.ResponseWriter, r *http.Request, err error)) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			payload, err := resolver.Resolve(r.Context())
			if err != nil {
				onFailure(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPayload(r.Context(), payload)))
		})
	}
}

// WithPayload returns a copy of ctx carrying payload.
func WithPayload(ctx context.Context, payload *Payload) context.Context {
	return context.WithValue(ctx, ContextAuthPayloadKey, payload)
}

// GetPayloadFromContext extracts the session claims placed by SessionMiddleware.
// A nil return means the request did not pass through it.
func GetPayloadFromContext(r *http.Request) *Payload {
	payload, ok := r.Context().Value(ContextAuthPayloadKey).(*Payload)

	if !ok {
		return nil
	}

	return payload
}
