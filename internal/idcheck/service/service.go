package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"idcheck/internal/idcheck/metrics"
	"idcheck/internal/idcheck/models"
	dErrors "idcheck/pkg/domain-errors"
	"idcheck/pkg/idcard"
	"idcheck/pkg/platform/privacy"
	"idcheck/pkg/requestcontext"
)

const tracerName = "idcheck/internal/idcheck/service"

const (
	defaultBatchMax         = 100
	defaultBatchConcurrency = 8
)

// Service checks identity numbers on behalf of the HTTP handlers. It owns the
// request-dependent inputs of the pure idcard package: the current date and
// the century window for legacy numbers.
type Service struct {
	logger           *slog.Logger
	metrics          *metrics.Metrics
	tracer           trace.Tracer
	fingerprinter    *privacy.Fingerprinter
	pivotYear        int
	batchMax         int
	batchConcurrency int
}

// Option configures a Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

func WithFingerprinter(f *privacy.Fingerprinter) Option {
	return func(s *Service) { s.fingerprinter = f }
}

// WithPivotYear fixes the century window for legacy numbers to
// [year, year+100). Zero keeps the clock rule.
func WithPivotYear(year int) Option {
	return func(s *Service) { s.pivotYear = year }
}

// WithBatchLimits bounds batch size and fan-out.
func WithBatchLimits(size, concurrency int) Option {
	return func(s *Service) {
		s.batchMax = size
		s.batchConcurrency = concurrency
	}
}

// New constructs a Service. Without options it logs nowhere, records no
// metrics and uses the global OpenTelemetry tracer.
func New(opts ...Option) (*Service, error) {
	s := &Service{
		logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
		batchMax:         defaultBatchMax,
		batchConcurrency: defaultBatchConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		return nil, errors.New("logger is required")
	}
	if s.batchMax < 1 || s.batchConcurrency < 1 {
		return nil, errors.New("batch limits must be positive")
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}
	return s, nil
}

// pivot returns the century window for a request: the configured fixed year,
// or the clock rule evaluated at the request time.
func (s *Service) pivot(ctx context.Context) idcard.Pivot {
	if s.pivotYear != 0 {
		return idcard.PivotFromYear(s.pivotYear)
	}
	return idcard.PivotAt(requestcontext.Now(ctx))
}

// Parse parses an 18-digit Mainland number and derives the holder's age at
// the request time.
func (s *Service) Parse(ctx context.Context, raw string) (*models.ParseResult, error) {
	ctx, span := s.tracer.Start(ctx, "idcheck.Parse")
	defer span.End()
	start := time.Now()
	defer func() { s.metrics.ObserveLatency("parse", time.Since(start)) }()

	id, err := idcard.Parse(raw)
	if err != nil {
		reason := parseReason(err)
		s.metrics.IncrementParseFailure(string(reason))
		span.SetStatus(codes.Error, string(reason))
		s.logger.DebugContext(ctx, "parse rejected",
			"request_id", requestcontext.RequestID(ctx),
			"number", idcard.Mask(strings.TrimSpace(raw)),
			"reason", reason,
		)
		return nil, translateParseError(err)
	}

	span.SetAttributes(attribute.String("idcard.province_code", id.ProvinceCode()))
	s.logger.DebugContext(ctx, "parsed identity number",
		"request_id", requestcontext.RequestID(ctx),
		"number", idcard.Mask(id.Number()),
		"fingerprint", s.fingerprinter.Fingerprint(id.Number()),
	)

	return &models.ParseResult{
		MaskedNumber: idcard.Mask(id.Number()),
		Birthdate:    id.Birthdate(),
		ProvinceCode: id.ProvinceCode(),
		Province:     id.Province(),
		Gender:       id.Gender().String(),
		Male:         id.IsMale(),
		Age:          id.AgeAt(requestcontext.Now(ctx)),
	}, nil
}

// Check detects the scheme of raw by its shape and reports whether it
// conforms. An invalid number is a result, not an error; only empty input
// fails.
func (s *Service) Check(ctx context.Context, raw string) (*models.CheckResult, error) {
	ctx, span := s.tracer.Start(ctx, "idcheck.Check")
	defer span.End()
	start := time.Now()
	defer func() { s.metrics.ObserveLatency("check", time.Since(start)) }()

	number := strings.TrimSpace(raw)
	if number == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "number is required")
	}

	result := s.evaluate(number, s.pivot(ctx))
	span.SetAttributes(
		attribute.String("idcard.scheme", string(result.Scheme)),
		attribute.Bool("idcard.valid", result.Valid),
	)
	s.logger.DebugContext(ctx, "checked identity number",
		"request_id", requestcontext.RequestID(ctx),
		"number", result.MaskedNumber,
		"fingerprint", s.fingerprinter.Fingerprint(number),
		"scheme", result.Scheme,
		"valid", result.Valid,
		"reason", result.Reason,
	)
	return &result, nil
}

// Convert upgrades a legacy 15-digit number to its 18-digit form.
func (s *Service) Convert(ctx context.Context, raw string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "idcheck.Convert")
	defer span.End()
	start := time.Now()
	defer func() { s.metrics.ObserveLatency("convert", time.Since(start)) }()

	n18, ok := idcard.ConvertMainland15To18(strings.TrimSpace(raw), s.pivot(ctx))
	if !ok {
		span.SetStatus(codes.Error, "not convertible")
		return "", dErrors.New(dErrors.CodeValidation, "not a convertible 15-digit idcard number")
	}
	return n18, nil
}

// CheckBatch checks every number concurrently and returns results in input
// order. Fan-out is bounded by the configured concurrency; cancellation of ctx
// aborts the batch.
func (s *Service) CheckBatch(ctx context.Context, raws []string) ([]models.CheckResult, error) {
	ctx, span := s.tracer.Start(ctx, "idcheck.CheckBatch")
	defer span.End()
	start := time.Now()
	defer func() { s.metrics.ObserveLatency("batch", time.Since(start)) }()

	if len(raws) == 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "numbers is required")
	}
	if len(raws) > s.batchMax {
		return nil, dErrors.New(dErrors.CodeBadRequest, "too many numbers in batch")
	}
	s.metrics.ObserveBatchSize(len(raws))
	span.SetAttributes(attribute.Int("idcard.batch_size", len(raws)))

	// one century window for the whole batch
	pivot := s.pivot(ctx)

	results := make([]models.CheckResult, len(raws))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchConcurrency)
	for i, raw := range raws {
		i, raw := i, raw
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.evaluate(strings.TrimSpace(raw), pivot)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "batch aborted")
		return nil, dErrors.Wrap(err, dErrors.CodeTimeout, "batch aborted")
	}

	valid := 0
	for _, r := range results {
		if r.Valid {
			valid++
		}
	}
	s.logger.InfoContext(ctx, "checked identity number batch",
		"request_id", requestcontext.RequestID(ctx),
		"size", len(raws),
		"valid", valid,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return results, nil
}

// evaluate dispatches on shape: 18 characters are Mainland, 15 digits are
// legacy Mainland, anything else is tried as a regional number.
func (s *Service) evaluate(number string, pivot idcard.Pivot) models.CheckResult {
	var result models.CheckResult
	switch {
	case len(number) == 18:
		result = checkMainland18(number)
	case len(number) == 15 && isDigits(number):
		result = checkMainland15(number, pivot)
	default:
		result = checkRegional(number)
	}
	result.MaskedNumber = idcard.Mask(number)
	s.metrics.IncrementOutcome(string(result.Scheme), outcome(result))
	return result
}

func checkMainland18(number string) models.CheckResult {
	result := models.CheckResult{
		Scheme:   models.SchemeMainland18,
		Checksum: idcard.ChecksumInvalid.String(),
		Gender:   idcard.GenderUnknown.String(),
	}
	if idcard.ValidateMainland18(number) {
		result.Checksum = idcard.ChecksumValid.String()
	} else if _, err := idcard.CheckDigit(number[:17]); err == nil {
		// well-formed digits, wrong check character
		result.Reason = models.ReasonChecksumMismatch
		return result
	}
	id, err := idcard.Parse(number)
	if err != nil {
		result.Reason = parseReason(err)
		return result
	}
	result.Valid = true
	result.Region = id.Province()
	result.Gender = id.Gender().String()
	return result
}

func checkMainland15(number string, pivot idcard.Pivot) models.CheckResult {
	result := models.CheckResult{
		Scheme:   models.SchemeMainland15,
		Checksum: models.ChecksumNone,
		Gender:   idcard.GenderUnknown.String(),
	}
	if !idcard.ValidateMainland15(number, pivot) {
		result.Reason = legacyReason(number)
		return result
	}
	n18, ok := idcard.ConvertMainland15To18(number, pivot)
	if !ok {
		result.Reason = models.ReasonInvalidDate
		return result
	}
	id, err := idcard.Parse(n18)
	if err != nil {
		result.Reason = parseReason(err)
		return result
	}
	result.Valid = true
	result.Converted = idcard.Mask(n18)
	result.Region = id.Province()
	result.Gender = id.Gender().String()
	return result
}

func checkRegional(number string) models.CheckResult {
	res, ok := idcard.ValidateRegional10(number)
	if !ok {
		return models.CheckResult{
			Scheme:   models.SchemeUnknown,
			Checksum: idcard.ChecksumInvalid.String(),
			Gender:   idcard.GenderUnknown.String(),
			Reason:   models.ReasonUnrecognized,
		}
	}
	result := models.CheckResult{
		Scheme:   regionScheme(res.Region),
		Valid:    res.Valid(),
		Checksum: res.Checksum.String(),
		Region:   res.Region.LocalName(),
		Gender:   res.Gender.String(),
	}
	if res.Region == idcard.RegionHongKong && uncommonHongKongPrefix(number) {
		result.Hint = models.HintUncommonPrefix
	}
	switch {
	case errors.Is(res.Err(), idcard.ErrUnsupportedRegion):
		result.Reason = models.ReasonUnsupportedRegion
	case res.Err() != nil:
		result.Reason = models.ReasonChecksumMismatch
	}
	return result
}

// uncommonHongKongPrefix reports a single-letter Hong Kong number whose letter
// is not among the prefixes in common circulation. Two-letter prefixes are
// not tabulated.
func uncommonHongKongPrefix(number string) bool {
	if len(number) < 2 || idcard.IsASCIILetter(number[1]) {
		return false
	}
	return !idcard.HongKongPrefixKnown(number[0])
}

func regionScheme(r idcard.Region) models.Scheme {
	switch r {
	case idcard.RegionTaiwan:
		return models.SchemeTaiwan
	case idcard.RegionHongKong:
		return models.SchemeHongKong
	case idcard.RegionMacau:
		return models.SchemeMacau
	default:
		return models.SchemeUnknown
	}
}

// legacyReason explains a failed 15-digit structural check. The idcard
// validator only answers yes or no.
func legacyReason(number string) models.Reason {
	if _, ok := idcard.Province(number[:2]); !ok {
		return models.ReasonInvalidProvince
	}
	return models.ReasonInvalidDate
}

func outcome(r models.CheckResult) string {
	switch {
	case r.Valid:
		return "valid"
	case r.Reason == models.ReasonUnsupportedRegion:
		return "unsupported"
	default:
		return "invalid"
	}
}

func parseReason(err error) models.Reason {
	switch {
	case errors.Is(err, idcard.ErrInvalidProvince):
		return models.ReasonInvalidProvince
	case errors.Is(err, idcard.ErrInvalidDate):
		return models.ReasonInvalidDate
	default:
		return models.ReasonInvalidFormat
	}
}

func translateParseError(err error) error {
	switch parseReason(err) {
	case models.ReasonInvalidProvince:
		return dErrors.Wrap(err, dErrors.CodeValidation, "unknown region code")
	case models.ReasonInvalidDate:
		return dErrors.Wrap(err, dErrors.CodeValidation, "invalid birthdate")
	default:
		return dErrors.Wrap(err, dErrors.CodeValidation, "illegal idcard number")
	}
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
