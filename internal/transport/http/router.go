package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"idcheck/internal/platform/metrics"
	"idcheck/pkg/platform/httputil"
	"idcheck/pkg/platform/middleware/metadata"
	"idcheck/pkg/platform/middleware/request"
	"idcheck/pkg/platform/middleware/requesttime"
)

// Registrar mounts a module's endpoints.
type Registrar interface {
	Register(r chi.Router)
}

// NewRouter wires the shared middleware chain, health and metrics endpoints,
// and every module handler. A nil gatherer serves the default registry; nil
// httpMetrics disables request metrics.
func NewRouter(gatherer prometheus.Gatherer, httpMetrics *metrics.HTTP, modules ...Registrar) http.Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(request.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(httpMetrics.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	for _, m := range modules {
		m.Register(r)
	}
	return r
}
