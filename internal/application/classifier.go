package application

import (
	"context"
	"fmt"
	"net/http"

	"stockquotes-service/internal/domain"
)

type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota + 1
	OutcomeProviderError
	OutcomeUnrecognized
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeProviderError:
		return "provider_error"
	case OutcomeUnrecognized:
		return "unrecognized"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result of classifying an upstream reply. Response is
// set for OutcomeSuccess, Err for the other kinds. Detail is internal only.
type Outcome struct {
	Kind     OutcomeKind
	Response domain.RawResponse
	Err      domain.ProviderError
	Detail   string
}

// Classifier turns a raw reply into an Outcome.
type Classifier struct {
	upstream Upstream
}

func NewClassifier(upstream Upstream) *Classifier {
	return &Classifier{upstream: upstream}
}

// Classify decides what first represents. When the success fields are missing
// the same request is issued exactly once more and only the second reply is
// read as the provider's error schema: the provider does not reliably return a
// typed error on the first call.
func (c *Classifier) Classify(ctx context.Context, req domain.FetchRequest, first domain.RawResponse) (Outcome, error) {
	if first.TransportFailure() {
		return transportOutcome(first), nil
	}
	if succeeded(first) {
		return Outcome{Kind: OutcomeSuccess, Response: first}, nil
	}

	second, err := c.upstream.Fetch(ctx, req)
	if err != nil {
		return Outcome{}, fmt.Errorf("disambiguation fetch: %w", err)
	}
	if second.TransportFailure() {
		return transportOutcome(second), nil
	}
	if second.Error != nil && second.Error.Status != "" {
		return Outcome{
			Kind:   OutcomeProviderError,
			Err:    second.Error.ProviderError(),
			Detail: fmt.Sprintf("first=%s second=error", first.Schema()),
		}, nil
	}
	return Outcome{
		Kind:   OutcomeUnrecognized,
		Err:    domain.LocalError(MsgUnrecognized),
		Detail: fmt.Sprintf("first=%s second=%s", first.Schema(), second.Schema()),
	}, nil
}

func succeeded(r domain.RawResponse) bool {
	switch r.Kind {
	case domain.EndpointQuote:
		return r.Quote != nil && r.Quote.Symbol != ""
	case domain.EndpointRealtimePrice:
		return r.Price != nil && r.Price.Price != ""
	case domain.EndpointTimeSeries:
		return r.Series != nil && r.Series.Meta != nil && r.Series.Status != domain.StatusError
	default:
		return false
	}
}

func transportOutcome(r domain.RawResponse) Outcome {
	reason := r.Reason
	if reason == "" {
		reason = http.StatusText(r.StatusCode)
	}
	return Outcome{
		Kind:   OutcomeUnrecognized,
		Err:    domain.LocalError(fmt.Sprintf(MsgTransportFailure, r.StatusCode, reason)),
		Detail: fmt.Sprintf("http status %d %s", r.StatusCode, reason),
	}
}
