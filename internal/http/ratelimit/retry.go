package ratelimit

import (
	"math"
	"math/rand"
	"strconv"
	"time"
)

// RetryError represents an error after all retry attempts are exhausted
type RetryError struct {
	URL        string
	Attempts   int
	LastStatus int
	LastError  error
}

func (e *RetryError) Error() string {
	msg := "failed to fetch " + e.URL + " after " + strconv.Itoa(e.Attempts) + " attempts"
	if e.LastStatus != 0 {
		msg += " (HTTP " + strconv.Itoa(e.LastStatus) + ")"
	}
	if e.LastError != nil {
		msg += ": " + e.LastError.Error()
	}
	return msg
}

func (e *RetryError) Unwrap() error {
	return e.LastError
}

// IsRetryableStatus checks if an HTTP status code is retryable.
// Retryable: 429, 500-599
func IsRetryableStatus(status int) bool {
	return status == 429 || (status >= 500 && status < 600)
}

// Backoff calculates the exponential backoff delay for a given attempt,
// with 0-25% jitter to avoid thundering herds
func Backoff(attempt int, cfg Config) time.Duration {
	delay := float64(cfg.InitialBackoffMs) * math.Pow(2.0, float64(attempt))
	delay = math.Min(delay, float64(cfg.MaxBackoffMs))
	delay += rand.Float64() * 0.25 * delay
	return time.Duration(delay) * time.Millisecond
}

// RateLimitBackoff calculates the backoff for HTTP 429 responses.
// Respects a Retry-After header when present, otherwise backs off more
// aggressively than Backoff (3x multiplier)
func RateLimitBackoff(attempt int, cfg Config, retryAfter string) time.Duration {
	if retryAfter != "" {
		if seconds, err := strconv.Atoi(retryAfter); err == nil && seconds > 0 {
			return time.Duration(seconds)*time.Second + time.Duration(rand.Intn(1000))*time.Millisecond
		}
	}

	delay := float64(cfg.InitialBackoffMs) * math.Pow(3.0, float64(attempt))
	delay = math.Min(delay, float64(cfg.MaxBackoffMs))
	delay += rand.Float64() * 0.25 * delay
	return time.Duration(delay) * time.Millisecond
}
