package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"stockquotes-service/internal/domain"

	"go.uber.org/zap"
)

type QuoteQuery struct {
	Symbol   string
	Realtime bool
	APIKey   string
}

type TimeSeriesQuery struct {
	Symbol string
	APIKey string
}

// StockQuotesService answers quote and time-series lookups with an envelope.
// It never returns an error: every failure is reported inside the envelope.
type StockQuotesService struct {
	upstream   Upstream
	classifier *Classifier
	fallback   *DateFallback
	clock      Clock
	loc        *time.Location
	log        *zap.Logger
	metrics    Metrics
}

type Option func(*StockQuotesService)

func WithClock(c Clock) Option { return func(s *StockQuotesService) { s.clock = c } }
func WithLocation(loc *time.Location) Option { return func(s *StockQuotesService) { s.loc = loc } }
func WithLogger(log *zap.Logger) Option { return func(s *StockQuotesService) { s.log = log } }
func WithMetrics(m Metrics) Option { return func(s *StockQuotesService) { s.metrics = m } }

func NewStockQuotesService(upstream Upstream, opts ...Option) *StockQuotesService {
	s := &StockQuotesService{upstream: upstream}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = realClock{}
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.metrics == nil {
		s.metrics = noopMetrics{}
	}
	s.classifier = NewClassifier(upstream)
	s.fallback = NewDateFallback(upstream, s.classifier, s.log)
	return s
}

// Quote looks up the latest quote, or only the real-time price when
// q.Realtime is set.
func (s *StockQuotesService) Quote(ctx context.Context, q QuoteQuery) domain.QuoteEnvelope {
	kind := domain.EndpointQuote
	if q.Realtime {
		kind = domain.EndpointRealtimePrice
	}
	symbol := strings.TrimSpace(q.Symbol)
	if symbol == "" {
		return fail[domain.QuoteResult](s, kind, outcomeInputError, domain.LocalError(MsgMissingSymbol), ErrMissingSymbol.Error())
	}
	log := s.log.With(zap.String("symbol", symbol), zap.String("endpoint", string(kind)))

	req := domain.FetchRequest{Kind: kind, Symbol: symbol, APIKey: q.APIKey}
	out, err := s.fetchClassified(ctx, req)
	if err != nil {
		return unexpected[domain.QuoteResult](ctx, s, kind, err)
	}
	if out.Kind != OutcomeSuccess {
		return failOutcome[domain.QuoteResult](s, kind, out)
	}

	var res domain.QuoteResult
	if kind == domain.EndpointRealtimePrice {
		res, err = NormalizeRealtime(*out.Response.Price)
	} else {
		res, err = NormalizeQuote(*out.Response.Quote, s.loc)
	}
	if err != nil {
		return fail[domain.QuoteResult](s, kind, outcomeParseError, domain.LocalError(MsgUnparsablePrice), err.Error())
	}
	log.Debug("quote.success", zap.Float64("price", res.Price))
	s.metrics.Outcome(kind, outcomeSuccess)
	return domain.Ok(res)
}

// TimeSeries returns today's 5-minute closing prices, falling back to earlier
// days while the market was closed.
func (s *StockQuotesService) TimeSeries(ctx context.Context, q TimeSeriesQuery) domain.TimeSeriesEnvelope {
	kind := domain.EndpointTimeSeries
	symbol := strings.TrimSpace(q.Symbol)
	if symbol == "" {
		return fail[[]domain.TimeSeriesPoint](s, kind, outcomeInputError, domain.LocalError(MsgMissingSymbol), ErrMissingSymbol.Error())
	}
	log := s.log.With(zap.String("symbol", symbol), zap.String("endpoint", string(kind)))

	today := s.clock.Now().In(s.loc)
	res, err := s.fallback.Run(ctx, symbol, q.APIKey, today)
	s.metrics.FallbackAttempts(len(res.Attempts))
	if err != nil {
		return unexpected[[]domain.TimeSeriesPoint](ctx, s, kind, err)
	}

	switch res.State {
	case StateFound:
		points, err := NormalizeSeries(res.Series)
		if err != nil {
			return fail[[]domain.TimeSeriesPoint](s, kind, outcomeParseError, domain.LocalError(MsgUnparsablePrice), err.Error())
		}
		last := res.Attempts[len(res.Attempts)-1]
		log.Debug("time_series.found",
			zap.String("date", last.Date.Format(time.DateOnly)),
			zap.Int("attempts", len(res.Attempts)),
			zap.Int("points", len(points)),
		)
		s.metrics.Outcome(kind, outcomeSuccess)
		return domain.Ok(points)
	case StateClosedMarketExhausted:
		return fail[[]domain.TimeSeriesPoint](s, kind, outcomeMarketClosed, res.Err, res.Detail)
	default:
		outcome := outcomeProviderError
		switch {
		case res.Err.Message == MsgCanceled:
			outcome = outcomeCanceled
		case res.Err.Code == 0:
			outcome = outcomeUnrecognized
		}
		return fail[[]domain.TimeSeriesPoint](s, kind, outcome, res.Err, res.Detail)
	}
}

func (s *StockQuotesService) fetchClassified(ctx context.Context, req domain.FetchRequest) (Outcome, error) {
	first, err := s.upstream.Fetch(ctx, req)
	if err != nil {
		return Outcome{}, err
	}
	return s.classifier.Classify(ctx, req, first)
}

func failOutcome[T any](s *StockQuotesService, kind domain.EndpointKind, out Outcome) domain.Envelope[T] {
	outcome := outcomeUnrecognized
	if out.Kind == OutcomeProviderError {
		outcome = outcomeProviderError
	}
	return fail[T](s, kind, outcome, out.Err, out.Detail)
}

func unexpected[T any](ctx context.Context, s *StockQuotesService, kind domain.EndpointKind, err error) domain.Envelope[T] {
	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fail[T](s, kind, outcomeCanceled, domain.LocalError(MsgCanceled), err.Error())
	}
	return fail[T](s, kind, outcomeUnexpected, domain.LocalError(MsgUnexpected), err.Error())
}

// fail logs logMessage, or the caller-facing message when logMessage is
// empty, and returns an error envelope.
func fail[T any](s *StockQuotesService, kind domain.EndpointKind, outcome string, perr domain.ProviderError, logMessage string) domain.Envelope[T] {
	if logMessage == "" {
		logMessage = perr.Message
	}
	s.log.Warn("lookup.failed",
		zap.String("endpoint", string(kind)),
		zap.String("outcome", outcome),
		zap.Int64("code", perr.Code),
		zap.String("message", perr.Message),
		zap.String("detail", logMessage),
	)
	s.metrics.Outcome(kind, outcome)
	return domain.Fail[T](perr)
}
