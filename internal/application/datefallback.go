package application

import (
	"context"
	"fmt"
	"time"

	"stockquotes-service/internal/domain"

	"go.uber.org/zap"
)

// MaxRetrogressions is how many earlier days are tried after the first date.
// Markets are assumed never to be closed longer than this.
const MaxRetrogressions = 4

type FallbackState int

const (
	StateTrying FallbackState = iota
	StateFound
	StateClosedMarketExhausted
	StateFailed
)

func (s FallbackState) String() string {
	switch s {
	case StateTrying:
		return "trying"
	case StateFound:
		return "found"
	case StateClosedMarketExhausted:
		return "closed_market_exhausted"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type FallbackResult struct {
	State    FallbackState
	Series   domain.TimeSeriesBody
	Err      domain.ProviderError
	Detail   string
	Attempts []domain.FetchAttempt
}

// DateFallback walks backwards one day at a time while the provider reports
// that no data exists for the requested date.
type DateFallback struct {
	upstream   Upstream
	classifier *Classifier
	log        *zap.Logger
}

func NewDateFallback(upstream Upstream, classifier *Classifier, log *zap.Logger) *DateFallback {
	if log == nil {
		log = zap.NewNop()
	}
	return &DateFallback{upstream: upstream, classifier: classifier, log: log}
}

// Run returns an error only for faults that produced no classifiable reply.
// Cancellation ends the walk in StateFailed.
func (d *DateFallback) Run(ctx context.Context, symbol, apiKey string, today time.Time) (FallbackResult, error) {
	var res FallbackResult
	attempt := domain.FetchAttempt{Date: today, Ordinal: 1}
	for {
		if err := ctx.Err(); err != nil {
			return canceled(res, err), nil
		}
		res.Attempts = append(res.Attempts, attempt)
		req := domain.FetchRequest{
			Kind:   domain.EndpointTimeSeries,
			Symbol: symbol,
			APIKey: apiKey,
			Date:   attempt.Date,
		}

		out, err := d.fetch(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				return canceled(res, err), nil
			}
			return res, fmt.Errorf("time series attempt %d: %w", attempt.Ordinal, err)
		}

		switch out.Kind {
		case OutcomeSuccess:
			res.State = StateFound
			res.Series = *out.Response.Series
			return res, nil
		case OutcomeProviderError:
			if out.Err.Message != NoDataMessage {
				res.State, res.Err, res.Detail = StateFailed, out.Err, out.Detail
				return res, nil
			}
			if attempt.Ordinal > MaxRetrogressions {
				res.State, res.Err = StateClosedMarketExhausted, out.Err
				res.Detail = fmt.Sprintf("no data for %d consecutive days ending %s", attempt.Ordinal, today.Format(time.DateOnly))
				return res, nil
			}
			d.log.Debug("time_series.no_data",
				zap.String("symbol", symbol),
				zap.String("date", attempt.Date.Format(time.DateOnly)),
				zap.Int("attempt", attempt.Ordinal),
			)
			attempt = domain.FetchAttempt{Date: attempt.Date.AddDate(0, 0, -1), Ordinal: attempt.Ordinal + 1}
		default:
			res.State, res.Err, res.Detail = StateFailed, out.Err, out.Detail
			return res, nil
		}
	}
}

func (d *DateFallback) fetch(ctx context.Context, req domain.FetchRequest) (Outcome, error) {
	first, err := d.upstream.Fetch(ctx, req)
	if err != nil {
		return Outcome{}, err
	}
	return d.classifier.Classify(ctx, req, first)
}

func canceled(res FallbackResult, err error) FallbackResult {
	res.State = StateFailed
	res.Err = domain.LocalError(MsgCanceled)
	res.Detail = err.Error()
	return res
}
