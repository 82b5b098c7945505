package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"idcheck/internal/idcheck/models"
	"idcheck/pkg/platform/httputil"
	"idcheck/pkg/platform/middleware/metadata"
	"idcheck/pkg/requestcontext"
)

// Service defines the interface for identity number operations.
type Service interface {
	Parse(ctx context.Context, raw string) (*models.ParseResult, error)
	Check(ctx context.Context, raw string) (*models.CheckResult, error)
	Convert(ctx context.Context, raw string) (string, error)
	CheckBatch(ctx context.Context, raws []string) ([]models.CheckResult, error)
}

// Handler wires identity number endpoints to the service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an idcard handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts the idcard endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/v1/idcards", func(r chi.Router) {
		r.Post("/parse", h.HandleParse)
		r.Post("/check", h.HandleCheck)
		r.Post("/convert", h.HandleConvert)
		r.Post("/batch", h.HandleBatch)
	})
}

// HandleParse handles POST /v1/idcards/parse.
func (h *Handler) HandleParse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[NumberRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Parse(ctx, req.Number)
	if err != nil {
		h.logger.InfoContext(ctx, "idcard parse rejected",
			"request_id", requestID,
			"client_ip", metadata.ClientFrom(ctx).IP,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, fromParseResult(result))
}

// HandleCheck handles POST /v1/idcards/check. An invalid number is a 200 with
// valid=false.
func (h *Handler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[NumberRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Check(ctx, req.Number)
	if err != nil {
		h.logger.ErrorContext(ctx, "idcard check failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, fromCheckResult(*result))
}

// HandleConvert handles POST /v1/idcards/convert.
func (h *Handler) HandleConvert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[NumberRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	n18, err := h.service.Convert(ctx, req.Number)
	if err != nil {
		h.logger.InfoContext(ctx, "idcard convert rejected",
			"request_id", requestID,
			"client_ip", metadata.ClientFrom(ctx).IP,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, ConvertResponse{Number: n18})
}

// HandleBatch handles POST /v1/idcards/batch.
func (h *Handler) HandleBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[BatchRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	results, err := h.service.CheckBatch(ctx, req.Numbers)
	if err != nil {
		h.logger.ErrorContext(ctx, "idcard batch failed",
			"request_id", requestID,
			"size", len(req.Numbers),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	resp := fromBatch(results)
	client := metadata.ClientFrom(ctx)
	h.logger.InfoContext(ctx, "idcard batch checked",
		"request_id", requestID,
		"client_ip", client.IP,
		"client_agent", client.Agent,
		"size", resp.Total,
		"valid", resp.Valid,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, resp)
}
