package cmr

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig indicates invalid client configuration
var ErrInvalidConfig = errors.New("invalid cmr client configuration")

var errNotObject = errors.New("response is not a JSON object")

// TransportError indicates the request never produced a response
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("cmr request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RequestError represents a CMR response with a client or server error status
type RequestError struct {
	URL        string
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *RequestError) Error() string {
	return fmt.Sprintf("cmr API error: status %d: %s", e.StatusCode, e.Body)
}

// IsNotFound checks if the error indicates a not found response
func (e *RequestError) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsClientError checks if CMR rejected the request itself, usually a bad parameter
func (e *RequestError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// IsServerError checks if CMR failed to serve a valid request
func (e *RequestError) IsServerError() bool {
	return e.StatusCode >= 500
}

// DecodeError indicates a successful response whose body is not a JSON object
type DecodeError struct {
	URL  string
	Body string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode cmr response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
