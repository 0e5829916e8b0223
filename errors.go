package nsapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrRateLimited is matched by every error caused by a server-declared
	// cool-down, whether the gate refused locally or the API answered 429.
	ErrRateLimited = errors.New("nsapi: rate limited")

	// ErrTransport is matched by errors from the underlying HTTP transport.
	ErrTransport = errors.New("nsapi: transport failure")

	// ErrMalformedHeaders is matched by responses that break the rate limit
	// header contract.
	ErrMalformedHeaders = errors.New("nsapi: malformed rate limit headers")

	// ErrNotFound is matched by a 404 from the API (unknown nation or region).
	ErrNotFound = errors.New("nsapi: not found")

	// ErrNoUserAgent is returned by NewGate when no identification string is given.
	ErrNoUserAgent = errors.New("nsapi: a user agent identifying the caller is required")
)

// MissingHeaderError reports a required rate limit header that was absent.
type MissingHeaderError struct {
	Header Header
}

func (e *MissingHeaderError) Error() string {
	return fmt.Sprintf("nsapi: missing header %s", e.Header.Name())
}

func (e *MissingHeaderError) Unwrap() error {
	return ErrMalformedHeaders
}

// NotAnIntegerError reports a rate limit header whose value is not an
// integer in the range 0-255.
type NotAnIntegerError struct {
	Header Header
	Value  string
}

func (e *NotAnIntegerError) Error() string {
	return fmt.Sprintf("nsapi: header %s: %q is not an integer", e.Header.Name(), e.Value)
}

func (e *NotAnIntegerError) Unwrap() error {
	return ErrMalformedHeaders
}

// RateLimitedError is returned by Gate.Send when a cool-down declared by an
// earlier response is still in effect. No request was sent.
type RateLimitedError struct {
	// Until is the instant before which the gate refuses to send.
	Until time.Time
	now   func() time.Time
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("nsapi: rate limited until %s", e.Until.Format(time.RFC3339))
}

func (e *RateLimitedError) Unwrap() error {
	return ErrRateLimited
}

// RetryAfter returns the time left until the cool-down ends.
func (e *RateLimitedError) RetryAfter() time.Duration {
	now := time.Now
	if e.now != nil {
		now = e.now
	}
	d := e.Until.Sub(now())
	if d < 0 {
		return 0
	}
	return d
}

// Wait blocks until the cool-down ends or the context is cancelled.
func (e *RateLimitedError) Wait(ctx context.Context) error {
	delay := e.RetryAfter()
	if delay <= 0 {
		return nil
	}
	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// TransportError wraps a failure of the underlying HTTP round trip,
// including a context cancelled while waiting for the transmission lock.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("nsapi: transport: %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// HeaderError is returned alongside a response whose rate limit headers were
// missing or unparseable. The gate state was not updated and the body should
// be treated as unreliable.
type HeaderError struct {
	StatusCode int
	Err        error
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("nsapi: response %d: %v", e.StatusCode, e.Err)
}

func (e *HeaderError) Unwrap() error {
	return e.Err
}

// StatusError is returned by Client when the API answers with a non-200 status.
type StatusError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("nsapi: %s: %s", e.URL, e.Status)
}

// Is lets 404 and 429 responses match ErrNotFound and ErrRateLimited.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	}
	return false
}
