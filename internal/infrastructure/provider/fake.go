package provider

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"stockquotes-service/internal/application"
	"stockquotes-service/internal/domain"
)

// Ensure Fake implements application.Upstream.
var _ application.Upstream = (*Fake)(nil)

// Fake answers every symbol with a fixed price and treats weekends as closed
// market days. Symbols starting with "INVALID" get the provider's unknown
// symbol error. Used for local runs without an API key.
type Fake struct {
	price string
	now   func() time.Time
}

func NewFake(price float64) *Fake {
	return &Fake{price: fmt.Sprintf("%.4f", price), now: time.Now}
}

func (f *Fake) Fetch(_ context.Context, req domain.FetchRequest) (domain.RawResponse, error) {
	if strings.HasPrefix(strings.ToUpper(req.Symbol), "INVALID") {
		return Decode(req.Kind, http.StatusOK, "OK",
			[]byte(fmt.Sprintf(`{"code":404,"message":"**symbol** not found: %s","status":"error"}`, req.Symbol))), nil
	}
	switch req.Kind {
	case domain.EndpointQuote:
		body := fmt.Sprintf(`{"symbol":%q,"name":%q,"close":%q,"timestamp":%d}`,
			req.Symbol, req.Symbol, f.price, f.now().Unix())
		return Decode(req.Kind, http.StatusOK, "OK", []byte(body)), nil
	case domain.EndpointRealtimePrice:
		return Decode(req.Kind, http.StatusOK, "OK", []byte(fmt.Sprintf(`{"price":%q}`, f.price))), nil
	default:
		if wd := req.Date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			return Decode(req.Kind, http.StatusOK, "OK",
				[]byte(`{"code":400,"message":"`+application.NoDataMessage+`","status":"error"}`)), nil
		}
		day := req.Date.Format(time.DateOnly)
		body := fmt.Sprintf(`{"meta":{"symbol":%q,"interval":"5min"},"values":[`+
			`{"datetime":"%s 09:30:00","close":%q},{"datetime":"%s 09:35:00","close":%q}],"status":"ok"}`,
			req.Symbol, day, f.price, day, f.price)
		return Decode(req.Kind, http.StatusOK, "OK", []byte(body)), nil
	}
}
