package domain

import "time"

type EndpointKind string

const (
	EndpointQuote         EndpointKind = "quote"
	EndpointRealtimePrice EndpointKind = "price"
	EndpointTimeSeries    EndpointKind = "time_series"
)

func (k EndpointKind) Valid() bool {
	switch k {
	case EndpointQuote, EndpointRealtimePrice, EndpointTimeSeries:
		return true
	default:
		return false
	}
}

// FetchRequest is everything the upstream client needs for one GET.
// Date is only used for EndpointTimeSeries.
type FetchRequest struct {
	Kind   EndpointKind
	Symbol string
	APIKey string
	Date   time.Time
}

// FetchAttempt is one iteration of the time-series date walk.
type FetchAttempt struct {
	Date    time.Time
	Ordinal int
}
