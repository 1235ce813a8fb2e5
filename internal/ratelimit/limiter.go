package ratelimit

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"time"
)

const (
	defaultCallSpacing = 13 * time.Second
	defaultCooldown    = 60 * time.Second
)

// Limiter spaces calls against the one upstream extraction key. Wait is a
// blocking sleep: the worker is parked, not yielded, while waiting. At the
// pipeline's request volume that is an acceptable simplification over a
// scheduled-retry design.
type Limiter struct {
	store    ClockStore
	spacing  time.Duration
	cooldown time.Duration
}

func NewLimiter(store ClockStore) *Limiter {
	return &Limiter{
		store:    store,
		spacing:  durationFromEnv("EXTRACTOR_CALL_SPACING_SECONDS", defaultCallSpacing),
		cooldown: durationFromEnv("EXTRACTOR_RATE_LIMIT_COOLDOWN_SECONDS", defaultCooldown),
	}
}

// Wait blocks until the caller owns the next call slot.
func (l *Limiter) Wait(ctx context.Context) error {
	slot, err := l.store.ReserveSlot(ctx, l.spacing)
	if err != nil {
		return err
	}

	d := time.Until(slot)
	if d <= 0 {
		return nil
	}

	slog.Debug("[RateLimit] Waiting for next call slot",
		slog.Duration("wait", d))

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Penalize extends the shared clock after an upstream 429.
func (l *Limiter) Penalize(ctx context.Context) error {
	return l.store.Penalize(ctx, l.cooldown)
}

func durationFromEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		slog.Warn("[RateLimit] Invalid duration override, using default",
			slog.String("key", key),
			slog.String("value", v))
		return fallback
	}
	return time.Duration(secs) * time.Second
}
