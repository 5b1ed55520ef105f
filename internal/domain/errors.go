package domain

import "errors"

var (
	ErrUnsupportedEndpoint = errors.New("unsupported endpoint")
)
