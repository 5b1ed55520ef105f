package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"stockquotes-service/internal/application"
	"stockquotes-service/internal/domain"
	"stockquotes-service/internal/infrastructure/httpx"

	"go.uber.org/zap"
)

//go:generate mockgen -package=provider_test -destination=mock_http_client_test.go stockquotes-service/internal/infrastructure/httpx HTTPClient

const (
	quotePath      = "/quote"
	pricePath      = "/price"
	timeSeriesPath = "/time_series"

	timeSeriesInterval = "5min"
	timeSeriesOrder    = "ASC"
)

// CallRecorder observes every upstream call.
type CallRecorder interface {
	UpstreamCall(kind domain.EndpointKind, schema string, took time.Duration)
}

// TwelveDataProvider is the Upstream client for the Twelve Data REST API.
type TwelveDataProvider struct {
	BaseURL string
	Client  *httpx.Client
	Calls   CallRecorder
	Log     *zap.Logger
}

var _ application.Upstream = (*TwelveDataProvider)(nil)

func (p *TwelveDataProvider) Fetch(ctx context.Context, req domain.FetchRequest) (domain.RawResponse, error) {
	u, err := p.URL(req)
	if err != nil {
		return domain.RawResponse{}, err
	}
	client := p.Client
	if client == nil {
		client = &httpx.Client{}
	}

	start := time.Now()
	resp, err := client.Get(ctx, u)
	if err != nil {
		return domain.RawResponse{}, fmt.Errorf("twelvedata: %s: %w", req.Kind, err)
	}
	raw := Decode(req.Kind, resp.StatusCode, resp.Reason, resp.Body)
	took := time.Since(start)

	if p.Calls != nil {
		p.Calls.UpstreamCall(req.Kind, raw.Schema(), took)
	}
	if p.Log != nil {
		p.Log.Debug("twelvedata.fetch",
			zap.String("endpoint", string(req.Kind)),
			zap.String("symbol", req.Symbol),
			zap.Int("status", resp.StatusCode),
			zap.String("schema", raw.Schema()),
			zap.Duration("took", took),
		)
	}
	return raw, nil
}

// URL builds the request URL. The API key and symbol are query-escaped; time
// series requests carry the date of req.Date.
func (p *TwelveDataProvider) URL(req domain.FetchRequest) (string, error) {
	var path string
	switch req.Kind {
	case domain.EndpointQuote:
		path = quotePath
	case domain.EndpointRealtimePrice:
		path = pricePath
	case domain.EndpointTimeSeries:
		path = timeSeriesPath
	default:
		return "", fmt.Errorf("twelvedata: %w: %q", domain.ErrUnsupportedEndpoint, req.Kind)
	}
	if p.BaseURL == "" {
		return "", errors.New("twelvedata: missing base url")
	}
	u, err := url.Parse(p.BaseURL)
	if err != nil {
		return "", fmt.Errorf("twelvedata: invalid base url: %w", err)
	}
	u.Path = strings.TrimRight(u.Path, "/") + path

	q := url.Values{}
	q.Set("apikey", req.APIKey)
	q.Set("symbol", req.Symbol)
	if req.Kind == domain.EndpointTimeSeries {
		q.Set("interval", timeSeriesInterval)
		q.Set("order", timeSeriesOrder)
		q.Set("date", req.Date.Format(time.DateOnly))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Decode reads body against the schema for kind and against the error
// schema. It never fails: a body that does not decode leaves that schema nil.
func Decode(kind domain.EndpointKind, status int, reason string, body []byte) domain.RawResponse {
	raw := domain.RawResponse{Kind: kind, StatusCode: status, Reason: reason}
	if raw.TransportFailure() {
		return raw
	}
	switch kind {
	case domain.EndpointQuote:
		var b domain.QuoteBody
		if json.Unmarshal(body, &b) == nil {
			raw.Quote = &b
		}
	case domain.EndpointRealtimePrice:
		var b domain.PriceBody
		if json.Unmarshal(body, &b) == nil {
			raw.Price = &b
		}
	case domain.EndpointTimeSeries:
		var b domain.TimeSeriesBody
		if json.Unmarshal(body, &b) == nil {
			raw.Series = &b
		}
	}
	var e domain.ErrorBody
	if json.Unmarshal(body, &e) == nil {
		raw.Error = &e
	}
	return raw
}
