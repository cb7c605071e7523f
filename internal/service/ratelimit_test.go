package service

import (
	"testing"
	"time"
)

func TestRateLimiterEvaluate(t *testing.T) {
	limiter := RateLimiter{Window: 5 * time.Minute, Limit: 3}

	tests := []struct {
		prior         int
		wantAllowed   bool
		wantRemaining int
	}{
		{0, true, 2},
		{1, true, 1},
		{2, true, 0},
		{3, false, 0},
		{10, false, 0},
	}

	for _, tt := range tests {
		quota, allowed := limiter.Evaluate(tt.prior)
		if allowed != tt.wantAllowed {
			t.Errorf("Evaluate(%d) allowed = %v, want %v", tt.prior, allowed, tt.wantAllowed)
		}
		if quota.Remaining != tt.wantRemaining {
			t.Errorf("Evaluate(%d) remaining = %d, want %d", tt.prior, quota.Remaining, tt.wantRemaining)
		}
		if quota.Limit != 3 {
			t.Errorf("Evaluate(%d) limit = %d, want 3", tt.prior, quota.Limit)
		}
		if !allowed && quota.RetryAfter != 5*time.Minute {
			t.Errorf("Evaluate(%d) retry after = %v, want window length", tt.prior, quota.RetryAfter)
		}
	}
}

func TestRateLimiterWindowStart(t *testing.T) {
	limiter := RateLimiter{Window: 5 * time.Minute, Limit: 3}
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	start := limiter.WindowStart(now)
	if !start.Equal(now.Add(-5 * time.Minute)) {
		t.Errorf("WindowStart = %v, want %v", start, now.Add(-5*time.Minute))
	}
}
