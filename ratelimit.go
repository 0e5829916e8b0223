package nsapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Snapshot is the rate limit state reported by a single API response.
// It is never modified after parsing; each response supersedes the last.
type Snapshot struct {
	// Remaining is the number of requests still permitted in the current window.
	Remaining uint8
	// Reset is the number of seconds until the current window resets.
	Reset uint8
	// RetryAfter is the explicit wait the server demands, present only on
	// throttled responses.
	RetryAfter *uint8
}

// RetryAfterSeconds reports the Retry-After value and whether it was sent.
func (s Snapshot) RetryAfterSeconds() (uint8, bool) {
	if s.RetryAfter == nil {
		return 0, false
	}
	return *s.RetryAfter, true
}

// Wait returns how long the gate must refuse sends after the response that
// produced s. An exhausted window always waits for the reset, even when the
// server also sent Retry-After.
func (s Snapshot) Wait() (time.Duration, bool) {
	if s.Remaining == 0 {
		return time.Duration(s.Reset) * time.Second, true
	}
	if s.RetryAfter != nil {
		return time.Duration(*s.RetryAfter) * time.Second, true
	}
	return 0, false
}

// Header identifies one of the rate limit headers the API sends.
type Header int

const (
	// HeaderRemaining is the remaining request count for the window.
	HeaderRemaining Header = iota
	// HeaderReset is the number of seconds until the window resets.
	HeaderReset
	// HeaderRetryAfter is the explicit wait sent with throttled responses.
	HeaderRetryAfter
)

// Name returns the canonical HTTP header name.
func (h Header) Name() string {
	switch h {
	case HeaderRemaining:
		return "RateLimit-Remaining"
	case HeaderReset:
		return "RateLimit-Reset"
	case HeaderRetryAfter:
		return "Retry-After"
	default:
		return fmt.Sprintf("Header(%d)", int(h))
	}
}

func (h Header) String() string {
	return h.Name()
}

// ParseSnapshot reads the rate limit headers of one response.
//
// RateLimit-Remaining and RateLimit-Reset are required; Retry-After is
// optional. All three must be decimal integers between 0 and 255.
// The returned error is a *MissingHeaderError or a *NotAnIntegerError.
func ParseSnapshot(h http.Header) (Snapshot, error) {
	var s Snapshot

	remaining, err := requiredHeader(h, HeaderRemaining)
	if err != nil {
		return Snapshot{}, err
	}
	reset, err := requiredHeader(h, HeaderReset)
	if err != nil {
		return Snapshot{}, err
	}
	s.Remaining = remaining
	s.Reset = reset

	if raw, ok := lookupHeader(h, HeaderRetryAfter); ok {
		v, err := parseHeaderValue(HeaderRetryAfter, raw)
		if err != nil {
			return Snapshot{}, err
		}
		s.RetryAfter = &v
	}

	return s, nil
}

func requiredHeader(h http.Header, name Header) (uint8, error) {
	raw, ok := lookupHeader(h, name)
	if !ok {
		return 0, &MissingHeaderError{Header: name}
	}
	return parseHeaderValue(name, raw)
}

// lookupHeader distinguishes an absent header from an empty one, which
// http.Header.Get does not.
func lookupHeader(h http.Header, name Header) (string, bool) {
	vals := h.Values(name.Name())
	if len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

func parseHeaderValue(name Header, raw string) (uint8, error) {
	v, err := strconv.ParseUint(raw, 10, 8)
	if err != nil {
		return 0, &NotAnIntegerError{Header: name, Value: raw}
	}
	return uint8(v), nil
}
