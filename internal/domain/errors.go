package domain

import "errors"

var (
	// ErrNetworkFailure is returned when an Open Beauty Facts request fails at
	// the transport level (DNS, timeout, connection reset)
	ErrNetworkFailure = errors.New("network request failed")

	// ErrInvalidResponse is returned on an unexpected HTTP status or a
	// response body that cannot be decoded
	ErrInvalidResponse = errors.New("invalid response from Open Beauty Facts")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheUnavailable is returned when the product store cannot be read
	ErrCacheUnavailable = errors.New("product cache unavailable")
)
