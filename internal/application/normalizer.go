package application

import (
	"fmt"
	"math"
	"strings"
	"time"

	"stockquotes-service/internal/domain"

	"github.com/shopspring/decimal"
)

// NormalizeQuote maps a quote body. The provider's epoch seconds are shown in loc.
func NormalizeQuote(b domain.QuoteBody, loc *time.Location) (domain.QuoteResult, error) {
	price, err := parsePrice(b.Close)
	if err != nil {
		return domain.QuoteResult{}, err
	}
	out := domain.QuoteResult{
		Symbol: b.Symbol,
		Name:   b.Name,
		Price:  price,
	}
	if b.Timestamp != 0 {
		out.Timestamp = time.Unix(b.Timestamp, 0).In(locationOrLocal(loc))
	}
	return out, nil
}

// NormalizeRealtime only fills Price.
func NormalizeRealtime(b domain.PriceBody) (domain.QuoteResult, error) {
	price, err := parsePrice(b.Price)
	if err != nil {
		return domain.QuoteResult{}, err
	}
	return domain.QuoteResult{Price: price}, nil
}

// NormalizeSeries keeps the provider's order.
func NormalizeSeries(b domain.TimeSeriesBody) ([]domain.TimeSeriesPoint, error) {
	points := make([]domain.TimeSeriesPoint, 0, len(b.Values))
	for i, v := range b.Values {
		price, err := parsePrice(v.Close)
		if err != nil {
			return nil, fmt.Errorf("value %d (%s): %w", i, v.Datetime, err)
		}
		points = append(points, domain.TimeSeriesPoint{Label: v.Datetime, Value: price})
	}
	return points, nil
}

func parsePrice(s string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w %q", ErrUnparsablePrice, s)
	}
	f, _ := d.Float64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("%w %q: out of range", ErrUnparsablePrice, s)
	}
	return f, nil
}

func locationOrLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
