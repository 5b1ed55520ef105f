package domain

// Envelope is the uniform result returned to callers. Exactly one of Payload
// and Error carries data; IsError reports which.
type Envelope[T any] struct {
	Payload T             `json:"payload"`
	Error   ProviderError `json:"error"`
	IsError bool          `json:"isError"`
}

func Ok[T any](payload T) Envelope[T] {
	return Envelope[T]{Payload: payload}
}

func Fail[T any](err ProviderError) Envelope[T] {
	var zero T
	return Envelope[T]{Payload: zero, Error: err, IsError: true}
}

type (
	QuoteEnvelope      = Envelope[QuoteResult]
	TimeSeriesEnvelope = Envelope[[]TimeSeriesPoint]
)
