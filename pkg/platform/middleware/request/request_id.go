// Package request provides middleware that tags each request with an ID.
package request

import (
	"net/http"

	"github.com/google/uuid"

	"idcheck/pkg/requestcontext"
)

// HeaderRequestID is read from incoming requests and echoed on responses.
const HeaderRequestID = "X-Request-ID"

// maxInboundIDLen bounds caller-supplied IDs so they cannot bloat logs.
const maxInboundIDLen = 64

// RequestID reuses a caller-supplied X-Request-ID or generates a UUID, stores
// it in the context and echoes it on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" || len(id) > maxInboundIDLen {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		ctx := requestcontext.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
