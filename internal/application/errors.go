package application

import "errors"

var (
	ErrMissingSymbol   = errors.New("symbol is required")
	ErrUnparsablePrice = errors.New("unparsable price")
)

// Caller-facing messages.
const (
	MsgMissingSymbol    = "Please provide a value for 'symbol' parameter."
	MsgUnrecognized     = "The response from the data provider was neither the expected data nor a recognized error."
	MsgTransportFailure = "The data provider returned HTTP %d (%s)."
	MsgUnexpected       = "An unexpected error occurred while retrieving data from the data provider."
	MsgUnparsablePrice  = "The data provider returned a price that could not be parsed."
	MsgCanceled         = "The request was canceled before the data provider responded."
)

// NoDataMessage is the provider's reply for a time-series date with no
// trading data.
const NoDataMessage = "No data is available on the specified dates. Try setting different start/end dates."

// Outcome labels used for logging and metrics.
const (
	outcomeSuccess       = "success"
	outcomeInputError    = "input_error"
	outcomeProviderError = "provider_error"
	outcomeUnrecognized  = "unrecognized"
	outcomeMarketClosed  = "market_closed"
	outcomeParseError    = "parse_error"
	outcomeUnexpected    = "unexpected"
	outcomeCanceled      = "canceled"
)
