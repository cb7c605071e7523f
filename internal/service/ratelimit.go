package service

import (
	"time"

	"github.com/newsdesk-api/internal/models"
)

// RateLimiter bounds comment submissions inside a trailing window. The
// decision is recomputed from stored submission rows each call; there is
// no separate counter store. Two submissions racing inside the same
// instant can both pass the check, which is accepted.
type RateLimiter struct {
	Window time.Duration
	Limit  int
}

// WindowStart returns the earliest instant still inside the window
func (rl RateLimiter) WindowStart(now time.Time) time.Time {
	return now.Add(-rl.Window)
}

// Evaluate decides whether a submission with the given number of prior
// submissions in the window may proceed.
func (rl RateLimiter) Evaluate(priorCount int) (models.RateQuota, bool) {
	if priorCount >= rl.Limit {
		return models.RateQuota{
			Limit:      rl.Limit,
			Remaining:  0,
			RetryAfter: rl.Window,
		}, false
	}

	return models.RateQuota{
		Limit:     rl.Limit,
		Remaining: rl.Limit - priorCount - 1,
	}, true
}
