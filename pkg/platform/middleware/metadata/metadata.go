// Package metadata records who is calling so request logs can be correlated
// without ever logging the identity numbers being checked.
package metadata

import (
	"context"
	"net/http"
	"strings"

	"github.com/mssola/useragent"
)

type contextKeyClient struct{}

// Client describes the caller of a request.
type Client struct {
	IP       string
	Agent    string // browser or library name, "bot" for crawlers
	Platform string
}

// ClientMetadata extracts the client IP and a coarse user-agent summary and
// stores them in the request context.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := Client{IP: ClientIPFromRequest(r)}
		c.Agent, c.Platform = summarizeAgent(r.Header.Get("User-Agent"))
		next.ServeHTTP(w, r.WithContext(WithClient(r.Context(), c)))
	})
}

// WithClient injects client metadata into a context.
func WithClient(ctx context.Context, c Client) context.Context {
	return context.WithValue(ctx, contextKeyClient{}, c)
}

// ClientFrom returns the metadata stored by ClientMetadata, or the zero value.
func ClientFrom(ctx context.Context) Client {
	c, _ := ctx.Value(contextKeyClient{}).(Client)
	return c
}

func summarizeAgent(raw string) (agent, platform string) {
	if raw == "" {
		return "", ""
	}
	ua := useragent.New(raw)
	if ua.Bot() {
		return "bot", ua.OS()
	}
	name, _ := ua.Browser()
	return name, ua.OS()
}

// ClientIPFromRequest returns the originating client IP, preferring proxy
// headers over the socket address.
func ClientIPFromRequest(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if addr := r.RemoteAddr; addr != "" {
		if idx := strings.LastIndex(addr, ":"); idx != -1 {
			return addr[:idx]
		}
		return addr
	}
	return "unknown"
}
