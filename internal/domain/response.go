package domain

// RawResponse is a single upstream reply. Body schemas that failed to decode
// are left nil; a missing field is a signal for the classifier, not a fault.
type RawResponse struct {
	Kind       EndpointKind
	StatusCode int
	Reason     string

	Quote  *QuoteBody
	Price  *PriceBody
	Series *TimeSeriesBody
	Error  *ErrorBody
}

// TransportFailure reports a non-success HTTP status.
func (r RawResponse) TransportFailure() bool {
	return r.StatusCode < 200 || r.StatusCode > 299
}

// Schema names the body shape that decoded with its identifying field set.
func (r RawResponse) Schema() string {
	switch {
	case r.TransportFailure():
		return "transport_failure"
	case r.Quote != nil && r.Quote.Symbol != "":
		return "quote"
	case r.Price != nil && r.Price.Price != "":
		return "price"
	case r.Series != nil && r.Series.Meta != nil:
		return "time_series"
	case r.Error != nil && r.Error.Status != "":
		return "error"
	default:
		return "unknown"
	}
}

type QuoteBody struct {
	Symbol    string `json:"symbol"`
	Name      string `json:"name"`
	Exchange  string `json:"exchange"`
	Currency  string `json:"currency"`
	Datetime  string `json:"datetime"`
	Timestamp int64  `json:"timestamp"`
	Open      string `json:"open"`
	High      string `json:"high"`
	Low       string `json:"low"`
	Close     string `json:"close"`
	Volume    string `json:"volume"`
}

type PriceBody struct {
	Price string `json:"price"`
}

type TimeSeriesMeta struct {
	Symbol           string `json:"symbol"`
	Interval         string `json:"interval"`
	Currency         string `json:"currency"`
	ExchangeTimezone string `json:"exchange_timezone"`
	Exchange         string `json:"exchange"`
	Type             string `json:"type"`
}

type TimeSeriesValue struct {
	Datetime string `json:"datetime"`
	Open     string `json:"open"`
	High     string `json:"high"`
	Low      string `json:"low"`
	Close    string `json:"close"`
	Volume   string `json:"volume"`
}

type TimeSeriesBody struct {
	Meta   *TimeSeriesMeta   `json:"meta"`
	Values []TimeSeriesValue `json:"values"`
	Status string            `json:"status"`
}

// ErrorBody is the provider's explicit error payload.
type ErrorBody struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

func (b ErrorBody) ProviderError() ProviderError {
	return ProviderError{Code: b.Code, Message: b.Message, Status: b.Status}
}
