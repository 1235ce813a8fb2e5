package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/crediscope/crediscope/internal/clients"
)

const clockKey = "extractor:next_allowed_at_ms"

// reserveScript claims the next call slot in one round trip. It returns the
// slot start in unix milliseconds and advances the shared clock by the
// requested spacing so concurrent workers cannot claim the same slot.
var reserveScript = valkey.NewLuaScript(`
local now = tonumber(ARGV[1])
local spacing = tonumber(ARGV[2])
local next = tonumber(redis.call('GET', KEYS[1]) or '0')
if next < now then
  next = now
end
redis.call('SET', KEYS[1], next + spacing)
return next
`)

// ValkeyClockStore implements ClockStore on top of the shared Valkey
// instance, coordinating workers across processes.
type ValkeyClockStore struct {
	vc *clients.ValkeyClient
}

func NewValkeyClockStore(vc *clients.ValkeyClient) *ValkeyClockStore {
	return &ValkeyClockStore{vc: vc}
}

func (s *ValkeyClockStore) ReserveSlot(ctx context.Context, spacing time.Duration) (time.Time, error) {
	nowMs := time.Now().UnixMilli()
	res := reserveScript.Exec(ctx, s.vc.Client, []string{clockKey}, []string{
		strconv.FormatInt(nowMs, 10),
		strconv.FormatInt(spacing.Milliseconds(), 10),
	})
	if err := res.Error(); err != nil {
		return time.Time{}, fmt.Errorf("[RateLimit] failed to reserve slot: %w", err)
	}

	slotMs, err := res.AsInt64()
	if err != nil {
		return time.Time{}, fmt.Errorf("[RateLimit] unexpected reserve reply: %w", err)
	}
	return time.UnixMilli(slotMs), nil
}

func (s *ValkeyClockStore) Penalize(ctx context.Context, cooldown time.Duration) error {
	target := time.Now().Add(cooldown).UnixMilli()
	res := s.vc.DoWithRetry(ctx,
		s.vc.Client.B().Set().Key(clockKey).Value(strconv.FormatInt(target, 10)).Build(), 3)
	if err := res.Error(); err != nil {
		return fmt.Errorf("[RateLimit] failed to set cooldown: %w", err)
	}
	return nil
}
