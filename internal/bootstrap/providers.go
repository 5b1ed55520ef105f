package bootstrap

import (
	"context"
	"net/http"
	"time"

	"stockquotes-service/internal/application"
	"stockquotes-service/internal/config"
	httpserver "stockquotes-service/internal/infrastructure/http"
	"stockquotes-service/internal/infrastructure/httpx"
	"stockquotes-service/internal/infrastructure/logx"
	"stockquotes-service/internal/infrastructure/metrics"
	"stockquotes-service/internal/infrastructure/provider"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// fakePrice is what the fake provider quotes for every symbol.
const fakePrice = 123.45

// API is everything cmd/api needs to serve.
type API struct {
	Config  config.Config
	Handler http.Handler
	Log     *zap.Logger
}

func ProvideConfig() (config.Config, error) { return config.Load() }

func ProvideLogger(cfg config.Config) (*zap.Logger, error) {
	if err := logx.SetLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	return logx.L(), nil
}

func ProvideLocation(cfg config.Config) (*time.Location, error) { return cfg.Location() }

func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func ProvideMetrics(reg *prometheus.Registry) *metrics.Recorder { return metrics.New(reg) }

func ProvideHTTPClient(cfg config.Config) (*httpx.Client, func()) {
	c := httpx.New(cfg.RequestTimeout, cfg.UpstreamTransportRetries)
	cleanup := func() {
		if hc, ok := c.HTTP.(*http.Client); ok {
			hc.CloseIdleConnections()
		}
	}
	return c, cleanup
}

func ProvideUpstream(cfg config.Config, client *httpx.Client, rec *metrics.Recorder, log *zap.Logger) application.Upstream {
	switch cfg.Provider {
	case config.ProviderFake:
		log.Warn("using fake provider", zap.Float64("price", fakePrice))
		return provider.NewFake(fakePrice)
	default:
		return &provider.TwelveDataProvider{
			BaseURL: cfg.TwelveDataAPIBase,
			Client:  client,
			Calls:   rec,
			Log:     log,
		}
	}
}

func ProvideStockQuotesService(up application.Upstream, loc *time.Location, log *zap.Logger, rec *metrics.Recorder) *application.StockQuotesService {
	return application.NewStockQuotesService(up,
		application.WithLocation(loc),
		application.WithLogger(log),
		application.WithMetrics(rec),
	)
}

// ProvideServer wires the per-request key source. The fake provider needs no
// key, so readiness is only checked against Twelve Data.
func ProvideServer(cfg config.Config, svc *application.StockQuotesService) *httpserver.Server {
	srv := httpserver.NewServer(svc, config.APIKey)
	if cfg.Provider == config.ProviderTwelveData {
		srv.SetReadyCheck(func(context.Context) error { return config.CheckAPIKey() })
	}
	return srv
}

func ProvideHandler(cfg config.Config, srv *httpserver.Server, reg *prometheus.Registry) http.Handler {
	var opts []httpserver.RouterOption
	if len(cfg.CORSAllowedOrigins) > 0 {
		opts = append(opts, httpserver.WithCORS(cfg.CORSAllowedOrigins))
	}
	if cfg.MetricsEnabled {
		opts = append(opts, httpserver.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}
	return httpserver.NewRouter(srv, opts...)
}

func ProvideAPI(cfg config.Config, h http.Handler, log *zap.Logger) *API {
	return &API{Config: cfg, Handler: h, Log: log}
}
