// Package ratelimit coordinates the extraction API's shared rate-limit
// clock. The upstream service meters one API key, so every worker process
// must observe the same next-allowed-call timestamp, not a process-local
// one.
package ratelimit

import (
	"context"
	"time"
)

// ClockStore holds the shared next-allowed-call timestamp.
//
// ReserveSlot atomically claims the next call slot and advances the clock
// by spacing, returning the time at which the caller may issue its call.
// Penalize pushes the clock to now+cooldown after an upstream 429.
type ClockStore interface {
	ReserveSlot(ctx context.Context, spacing time.Duration) (time.Time, error)
	Penalize(ctx context.Context, cooldown time.Duration) error
}
