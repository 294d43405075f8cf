package middleware

import (
	"errors"
	"testing"

	apperrors "linkdrop-bot/internal/errors"
)

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(3, 60)

	for i := 0; i < 3; i++ {
		if err := limiter.Check(1); err != nil {
			t.Fatalf("request %d rejected: %v", i+1, err)
		}
	}

	if err := limiter.Check(1); !errors.Is(err, apperrors.ErrRateLimitExceeded) {
		t.Fatalf("over-limit error = %v, want ErrRateLimitExceeded", err)
	}

	// Other users have their own budget
	if err := limiter.Check(2); err != nil {
		t.Fatalf("unrelated user rejected: %v", err)
	}
}

func TestRateLimiterDefaults(t *testing.T) {
	limiter := NewRateLimiter(0, 0)
	if limiter.maxRequests != 10 || limiter.window.Seconds() != 60 {
		t.Fatalf("defaults = (%d, %v), want (10, 60s)", limiter.maxRequests, limiter.window)
	}
}
