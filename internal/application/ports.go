package application

import (
	"context"
	"time"

	"stockquotes-service/internal/domain"
)

// Upstream performs one GET against the data provider. A non-success HTTP
// status is reported through RawResponse; the error return is reserved for
// faults where no response was obtained at all.
type Upstream interface {
	Fetch(ctx context.Context, req domain.FetchRequest) (domain.RawResponse, error)
}

type Metrics interface {
	Outcome(kind domain.EndpointKind, outcome string)
	FallbackAttempts(n int)
}

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type noopMetrics struct{}

func (noopMetrics) Outcome(domain.EndpointKind, string) {}
func (noopMetrics) FallbackAttempts(int) {}
