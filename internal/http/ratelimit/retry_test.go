package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsRetryableStatus(t *testing.T) {
	tests := []struct {
		status    int
		retryable bool
	}{
		{200, false},
		{301, false},
		{404, false},
		{429, true},
		{500, true},
		{503, true},
		{599, true},
		{600, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.retryable, IsRetryableStatus(tt.status), "status %d", tt.status)
	}
}

func TestBackoffGrowsExponentially(t *testing.T) {
	cfg := Config{InitialBackoffMs: 100, MaxBackoffMs: 30000}

	for attempt, baseMs := range []int{100, 200, 400, 800} {
		d := Backoff(attempt, cfg)
		min := time.Duration(baseMs) * time.Millisecond
		max := min + min/4 // up to 25% jitter
		assert.GreaterOrEqual(t, d, min, "attempt %d", attempt)
		assert.LessOrEqual(t, d, max, "attempt %d", attempt)
	}
}

func TestBackoffIsCapped(t *testing.T) {
	cfg := Config{InitialBackoffMs: 100, MaxBackoffMs: 500}

	d := Backoff(10, cfg)
	assert.LessOrEqual(t, d, 625*time.Millisecond) // cap plus jitter
}

func TestRateLimitBackoffHonorsRetryAfter(t *testing.T) {
	cfg := Config{InitialBackoffMs: 100, MaxBackoffMs: 30000}

	d := RateLimitBackoff(0, cfg, "2")
	assert.GreaterOrEqual(t, d, 2*time.Second)
	assert.Less(t, d, 3*time.Second)
}

func TestRateLimitBackoffIgnoresBadRetryAfter(t *testing.T) {
	cfg := Config{InitialBackoffMs: 100, MaxBackoffMs: 30000}

	d := RateLimitBackoff(0, cfg, "soon")
	assert.Less(t, d, time.Second)
}

func TestRetryErrorMessage(t *testing.T) {
	err := &RetryError{URL: "https://store.example/us/en", Attempts: 4, LastStatus: 503}
	assert.Contains(t, err.Error(), "after 4 attempts")
	assert.Contains(t, err.Error(), "HTTP 503")
}
