package gateway

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested transaction does not exist
	// on this gateway.
	ErrNotFound = errors.New("transaction not found")

	// ErrPendingConfirmation indicates the transaction has been
	// accepted by the network but is not yet confirmed in a block.
	ErrPendingConfirmation = errors.New("transaction pending confirmation")
)

// GatewayError represents an HTTP error response from a gateway.
type GatewayError struct {
	Host       string
	StatusCode int
	Message    string
}

func (e *GatewayError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("gateway %s: %d: %s", e.Host, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("gateway %s: %d", e.Host, e.StatusCode)
}

// Is implements errors.Is for sentinel error matching.
func (e *GatewayError) Is(target error) bool {
	switch e.StatusCode {
	case 404, 410:
		return target == ErrNotFound
	}
	return false
}

// NetworkError represents a network-level failure reaching a gateway.
type NetworkError struct {
	Err     error
	URL     string
	Attempt int
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
