package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// requestIDHeader is the header used to propagate request IDs.
const requestIDHeader = "X-Request-Id"

type requestIDKey struct{}

// withRequestID assigns each request an ID, honoring one supplied by an
// upstream proxy, and echoes it on the response.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, id)

		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestIDFrom extracts the request ID from the context, or "" if unset.
func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
