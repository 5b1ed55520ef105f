package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"stockquotes-service/internal/application"
	"stockquotes-service/internal/domain"
	"stockquotes-service/internal/infrastructure/http/openapi"
	"stockquotes-service/internal/infrastructure/logx"

	"go.uber.org/zap"
)

var _ openapi.ServerInterface = (*Server)(nil)

// APIKeySource returns the provider key; it is called once per request.
type APIKeySource func() string

type Server struct {
	svc    *application.StockQuotesService
	apiKey APIKeySource
	ping   func(ctx context.Context) error
}

func NewServer(svc *application.StockQuotesService, apiKey APIKeySource) *Server {
	if apiKey == nil {
		apiKey = func() string { return "" }
	}
	return &Server{svc: svc, apiKey: apiKey}
}

// SetReadyCheck installs the /readyz probe.
func (s *Server) SetReadyCheck(fn func(ctx context.Context) error) { s.ping = fn }

func (s *Server) GetQuote(w http.ResponseWriter, r *http.Request, params openapi.GetQuoteParams) {
	q := application.QuoteQuery{
		Symbol:   deref(params.Symbol),
		Realtime: truthy(deref(params.Realtime)),
		APIKey:   s.apiKey(),
	}
	env := s.svc.Quote(r.Context(), q)
	writeJSON(w, http.StatusOK, env)
}

func (s *Server) GetTimeSeries(w http.ResponseWriter, r *http.Request, params openapi.GetTimeSeriesParams) {
	q := application.TimeSeriesQuery{
		Symbol: deref(params.Symbol),
		APIKey: s.apiKey(),
	}
	env := s.svc.TimeSeries(r.Context(), q)
	writeJSON(w, http.StatusOK, env)
}

// bindError answers a malformed query with an error envelope; lookups never
// fail at the HTTP level.
func bindError(w http.ResponseWriter, r *http.Request, err error) {
	logx.WithFields(r.Context()).Warn("http.bind_error", zap.Error(err))
	writeJSON(w, http.StatusOK, domain.Fail[any](domain.LocalError(err.Error())))
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Code: status, Message: msg})
}
