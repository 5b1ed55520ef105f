package domain

import "fmt"

// ProviderError describes a failed lookup. Code is zero for locally
// synthesized messages.
type ProviderError struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

const StatusError = "error"

func (e ProviderError) IsZero() bool {
	return e.Code == 0 && e.Message == "" && e.Status == ""
}

func (e ProviderError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%d %s", e.Code, e.Message)
	}
	return e.Message
}

// LocalError builds a ProviderError for a message produced by this service.
func LocalError(msg string) ProviderError {
	return ProviderError{Code: 0, Message: msg, Status: StatusError}
}
