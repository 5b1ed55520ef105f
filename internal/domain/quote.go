package domain

import "time"

// QuoteResult is the normalized single-quote payload. Real-time lookups only
// populate Price.
type QuoteResult struct {
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// TimeSeriesPoint is one sampled interval of a time series.
type TimeSeriesPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}
