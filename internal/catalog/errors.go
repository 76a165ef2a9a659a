package catalog

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned before any request is made when the
// caller passes an unusable limit, skip or query.
var ErrInvalidArgument = errors.New("invalid argument")

// NetworkError reports that the transport call itself failed: DNS, connect,
// TLS, timeout, cancellation or a broken body read.
type NetworkError struct {
	Op  string
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPStatusError reports a response whose status was not 2xx.
type HTTPStatusError struct {
	Op     string
	Status int
	Body   string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("%s: HTTP error! status: %d", e.Op, e.Status)
}

// DecodeError reports a 2xx response whose body was not a page result.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decode response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ErrorKind classifies err for logging.
func ErrorKind(err error) string {
	var (
		netErr    *NetworkError
		statusErr *HTTPStatusError
		decodeErr *DecodeError
	)
	switch {
	case err == nil:
		return ""

	case errors.Is(err, context.Canceled):
		return "canceled"

	case errors.As(err, &netErr):
		return "network"

	case errors.As(err, &statusErr):
		return "http_status"

	case errors.As(err, &decodeErr):
		return "decode"

	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"

	default:
		return "internal"
	}
}
