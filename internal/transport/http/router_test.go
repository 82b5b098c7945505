package httptransport

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"idcheck/internal/idcheck/handler"
	idmetrics "idcheck/internal/idcheck/metrics"
	"idcheck/internal/idcheck/service"
	"idcheck/internal/platform/metrics"
	"idcheck/pkg/platform/middleware/request"
	"idcheck/pkg/testutil"
)

type RouterSuite struct {
	suite.Suite
	router http.Handler
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	reg := prometheus.NewRegistry()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc, err := service.New(
		service.WithLogger(logger),
		service.WithMetrics(idmetrics.NewWithRegistry(reg)),
	)
	s.Require().NoError(err)
	s.router = NewRouter(reg, metrics.NewHTTP(reg), handler.New(svc, logger))
}

func (s *RouterSuite) TestHealthz() {
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/healthz", nil))

	s.Equal(http.StatusOK, rr.Code)
	s.NotEmpty(rr.Header().Get(request.HeaderRequestID))
}

func (s *RouterSuite) TestCheckIsCountedInMetrics() {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/v1/idcards/check",
		map[string]string{"number": "11010519491231002X"})
	rr := testutil.DoRequest(s.router, req)
	s.Require().Equal(http.StatusOK, rr.Code)

	resp := testutil.DecodeJSON[handler.CheckResponse](s.T(), rr)
	s.True(resp.Valid)
	s.Equal("mainland18", resp.Scheme)
	s.Equal("北京", resp.Region)
	s.Equal("1101**********002X", resp.Number)

	mr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/metrics", nil))
	require.Equal(s.T(), http.StatusOK, mr.Code)
	body := mr.Body.String()
	assert.Contains(s.T(), body, `idcheck_check_outcomes_total{outcome="valid",scheme="mainland18"} 1`)
	assert.Contains(s.T(), body, `idcheck_http_requests_total{method="POST",route="/v1/idcards/check",status="200"} 1`)
}

func (s *RouterSuite) TestParseUnknownProvince() {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/v1/idcards/parse",
		map[string]string{"number": "100105194912310028"})
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertError(s.T(), rr, http.StatusBadRequest, "validation_error")
}

func (s *RouterSuite) TestMethodNotAllowed() {
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/v1/idcards/check", nil))
	s.Equal(http.StatusMethodNotAllowed, rr.Code)
}
