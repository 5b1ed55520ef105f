package application

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"stockquotes-service/internal/domain"
)

var errUnexpectedCall = errors.New("unexpected upstream call")

type reply struct {
	resp domain.RawResponse
	err  error
}

// fakeUpstream serves replies in order, or delegates to fn when set.
type fakeUpstream struct {
	mu      sync.Mutex
	replies []reply
	fn      func(req domain.FetchRequest) (domain.RawResponse, error)
	calls   []domain.FetchRequest
}

func (f *fakeUpstream) Fetch(_ context.Context, req domain.FetchRequest) (domain.RawResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	if f.fn != nil {
		return f.fn(req)
	}
	if len(f.replies) == 0 {
		return domain.RawResponse{}, errUnexpectedCall
	}
	r := f.replies[0]
	f.replies = f.replies[1:]
	return r.resp, r.err
}

func (f *fakeUpstream) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeUpstream) datesRequested() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.calls {
		d := c.Date.Format(time.DateOnly)
		if len(out) == 0 || out[len(out)-1] != d {
			out = append(out, d)
		}
	}
	return out
}

type fakeClock struct{ t time.Time }

func (c fakeClock) Now() time.Time { return c.t }

type recordingMetrics struct {
	mu       sync.Mutex
	outcomes []string
	attempts []int
}

func (m *recordingMetrics) Outcome(_ domain.EndpointKind, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, outcome)
}

func (m *recordingMetrics) FallbackAttempts(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts = append(m.attempts, n)
}

func ok(resp domain.RawResponse) reply { return reply{resp: resp} }

func quoteResp(symbol, name, closePrice string, ts int64) domain.RawResponse {
	return domain.RawResponse{
		Kind:       domain.EndpointQuote,
		StatusCode: http.StatusOK,
		Quote:      &domain.QuoteBody{Symbol: symbol, Name: name, Close: closePrice, Timestamp: ts},
		Error:      &domain.ErrorBody{},
	}
}

func priceResp(price string) domain.RawResponse {
	return domain.RawResponse{
		Kind:       domain.EndpointRealtimePrice,
		StatusCode: http.StatusOK,
		Price:      &domain.PriceBody{Price: price},
		Error:      &domain.ErrorBody{},
	}
}

func seriesResp(closes ...[2]string) domain.RawResponse {
	body := &domain.TimeSeriesBody{
		Meta:   &domain.TimeSeriesMeta{Symbol: "AAPL", Interval: "5min"},
		Status: "ok",
	}
	for _, c := range closes {
		body.Values = append(body.Values, domain.TimeSeriesValue{Datetime: c[0], Close: c[1]})
	}
	return domain.RawResponse{
		Kind:       domain.EndpointTimeSeries,
		StatusCode: http.StatusOK,
		Series:     body,
		Error:      &domain.ErrorBody{Status: "ok"},
	}
}

// errorResp is what the provider sends for an explicit error: every success
// schema decodes empty and the error schema carries the status.
func errorResp(kind domain.EndpointKind, code int64, msg string) domain.RawResponse {
	return domain.RawResponse{
		Kind:       kind,
		StatusCode: http.StatusOK,
		Quote:      &domain.QuoteBody{},
		Price:      &domain.PriceBody{},
		Series:     &domain.TimeSeriesBody{Status: domain.StatusError},
		Error:      &domain.ErrorBody{Code: code, Message: msg, Status: domain.StatusError},
	}
}

// emptyResp parses as neither a success nor an error shape.
func emptyResp(kind domain.EndpointKind) domain.RawResponse {
	return domain.RawResponse{
		Kind:       kind,
		StatusCode: http.StatusOK,
		Quote:      &domain.QuoteBody{},
		Price:      &domain.PriceBody{},
		Series:     &domain.TimeSeriesBody{},
		Error:      &domain.ErrorBody{},
	}
}

func httpFailure(kind domain.EndpointKind, code int) domain.RawResponse {
	return domain.RawResponse{Kind: kind, StatusCode: code, Reason: http.StatusText(code)}
}
