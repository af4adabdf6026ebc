package triage

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DefaultBackoff applies when a provider throttles without a usable
// Retry-After header.
const DefaultBackoff = 30 * time.Second

// ErrThrottled matches any classifier call rejected by the provider's rate
// limiter, whatever the provider.
var ErrThrottled = errors.New("classifier throttled")

// ThrottleError is returned by providers on HTTP 429. Backoff is how long the
// provider asked callers to wait.
type ThrottleError struct {
	Provider string
	Backoff  time.Duration
	Err      error
}

func (e *ThrottleError) Error() string {
	return fmt.Sprintf("%s throttled, back off %s: %v", e.Provider, e.Backoff, e.Err)
}

func (e *ThrottleError) Unwrap() error { return e.Err }

func (e *ThrottleError) Is(target error) bool { return target == ErrThrottled }

// NewThrottleError builds a ThrottleError from the raw Retry-After header.
func NewThrottleError(provider string, err error, retryAfter string, now time.Time) *ThrottleError {
	return &ThrottleError{
		Provider: provider,
		Backoff:  ParseRetryAfter(retryAfter, now),
		Err:      err,
	}
}

// ParseRetryAfter reads a Retry-After value in either of its HTTP forms,
// delay-seconds or an HTTP-date. Missing, malformed or past values yield
// DefaultBackoff.
func ParseRetryAfter(val string, now time.Time) time.Duration {
	val = strings.TrimSpace(val)
	if val == "" {
		return DefaultBackoff
	}
	if secs, err := strconv.Atoi(val); err == nil {
		if secs <= 0 {
			return DefaultBackoff
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(val); err == nil {
		if d := at.Sub(now); d > 0 {
			return d.Round(time.Second)
		}
	}
	return DefaultBackoff
}

// BackoffFor reports the provider-requested backoff carried by err, if any.
func BackoffFor(err error) (time.Duration, bool) {
	var te *ThrottleError
	if !errors.As(err, &te) {
		return 0, false
	}
	return te.Backoff, true
}
