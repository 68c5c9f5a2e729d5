// ABOUTME: Retry helpers shared by the completion client and lookup pollers
// ABOUTME: Exponential backoff with jitter and a context-aware sleep
package util

import (
	"context"
	"math/rand/v2"
	"time"
)

// MaxBackoff caps any single backoff delay
const MaxBackoff = 30 * time.Second

// CalculateBackoff doubles baseDelay per attempt, caps at MaxBackoff and adds
// up to ±25% jitter. Attempt 0 (the first try) never waits.
func CalculateBackoff(baseDelay time.Duration, attempt int) time.Duration {
	if attempt <= 0 || baseDelay <= 0 {
		return 0
	}
	if attempt > 30 {
		attempt = 30
	}
	backoff := baseDelay * time.Duration(1<<uint(attempt))
	if backoff > MaxBackoff || backoff <= 0 {
		backoff = MaxBackoff
	}
	if backoff < 4 {
		return backoff
	}
	jitter := time.Duration(rand.Int64N(int64(backoff)/2)) - backoff/4
	return backoff + jitter
}

// Sleep waits for d or until ctx is done, returning ctx.Err() in the latter case
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
