package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stockquotes-service/internal/application"
	"stockquotes-service/internal/domain"
	"stockquotes-service/internal/infrastructure/metrics"
	"stockquotes-service/internal/infrastructure/provider"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func setup(t *testing.T, opts ...RouterOption) http.Handler {
	t.Helper()
	// Sunday, so time series falls back to Friday.
	clock := fixedClock{t: time.Date(2024, 1, 7, 12, 0, 0, 0, time.UTC)}
	svc := application.NewStockQuotesService(provider.NewFake(187.5),
		application.WithClock(clock),
		application.WithLocation(time.UTC),
	)
	srv := NewServer(svc, func() string { return "test-key" })
	return NewRouter(srv, opts...)
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := get(t, setup(t), "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "OK", rec.Body.String())
}

func TestReadyz(t *testing.T) {
	svc := application.NewStockQuotesService(provider.NewFake(1))
	srv := NewServer(svc, nil)
	h := NewRouter(srv)

	rec := get(t, h, "/readyz")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "READY", rec.Body.String())

	srv.SetReadyCheck(func(context.Context) error { return errors.New("no key") })
	rec = get(t, h, "/readyz")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, http.StatusServiceUnavailable, body.Code)
}

func TestGetQuote(t *testing.T) {
	rec := get(t, setup(t), "/api/quote?symbol=AAPL")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var env domain.QuoteEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.False(t, env.IsError)
	require.Equal(t, "AAPL", env.Payload.Symbol)
	require.InDelta(t, 187.5, env.Payload.Price, 1e-9)
}

func TestGetQuote_Realtime(t *testing.T) {
	rec := get(t, setup(t), "/api/quote?symbol=MSFT&realtime=true")
	require.Equal(t, http.StatusOK, rec.Code)

	var env domain.QuoteEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.False(t, env.IsError)
	require.Equal(t, "", env.Payload.Symbol)
	require.InDelta(t, 187.5, env.Payload.Price, 1e-9)
}

func TestGetQuote_MissingSymbolIsEnvelope(t *testing.T) {
	rec := get(t, setup(t), "/api/quote")
	require.Equal(t, http.StatusOK, rec.Code)

	var env domain.QuoteEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.True(t, env.IsError)
	require.Equal(t, application.MsgMissingSymbol, env.Error.Message)
	require.Equal(t, int64(0), env.Error.Code)
}

func TestGetQuote_ProviderErrorIsEnvelope(t *testing.T) {
	rec := get(t, setup(t), "/api/quote?symbol=INVALID1")
	require.Equal(t, http.StatusOK, rec.Code)

	var env domain.QuoteEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.True(t, env.IsError)
	require.Equal(t, int64(404), env.Error.Code)
	require.Equal(t, domain.StatusError, env.Error.Status)
}

func TestGetTimeSeries_FallsBackOverWeekend(t *testing.T) {
	rec := get(t, setup(t), "/api/timeseries?symbol=AAPL")
	require.Equal(t, http.StatusOK, rec.Code)

	var env domain.TimeSeriesEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.False(t, env.IsError)
	require.Len(t, env.Payload, 2)
	require.Equal(t, "2024-01-05 09:30:00", env.Payload[0].Label)
	require.Equal(t, "2024-01-05 09:35:00", env.Payload[1].Label)
}

func TestRequestIDIsPropagated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "rid-1")
	rec := httptest.NewRecorder()
	setup(t).ServeHTTP(rec, req)
	require.Equal(t, "rid-1", rec.Header().Get("X-Request-ID"))
	require.NotEmpty(t, rec.Header().Get("X-Trace-Id"))
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := metrics.New(reg)
	svc := application.NewStockQuotesService(provider.NewFake(10), application.WithMetrics(rec))
	h := NewRouter(NewServer(svc, nil), WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	_ = get(t, h, "/api/quote")
	out := get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, out.Code)
	require.Contains(t, out.Body.String(), `stockquotes_lookups_total{endpoint="quote",outcome="input_error"} 1`)
}

func TestMetricsEndpoint_DisabledByDefault(t *testing.T) {
	rec := get(t, setup(t), "/metrics")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	h := setup(t, WithCORS([]string{"https://example.com"}))
	req := httptest.NewRequest(http.MethodOptions, "/api/quote?symbol=AAPL", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, "https://example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestOpenAPISpecServed(t *testing.T) {
	rec := get(t, setup(t), "/openapi.yaml")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "/api/quote")
}

func TestTruthy(t *testing.T) {
	for _, v := range []string{"1", "true", "TRUE", " yes "} {
		require.True(t, truthy(v), v)
	}
	for _, v := range []string{"", "0", "false", "no", "maybe", "y", "on"} {
		require.False(t, truthy(v), v)
	}
}

func TestErrorEnvelopeLoggedOnce(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	svc := application.NewStockQuotesService(provider.NewFake(1), application.WithLogger(zap.New(core)))
	h := NewRouter(NewServer(svc, nil))

	rec := get(t, h, "/api/quote?symbol=INVALID9")
	require.Equal(t, http.StatusOK, rec.Code)

	entries := logs.FilterMessageSnippet("lookup").All()
	require.Len(t, entries, 1)
	require.Equal(t, "lookup.failed", entries[0].Message)
	require.Equal(t, zap.WarnLevel, entries[0].Level)
}
