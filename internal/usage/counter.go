// Package usage tracks per-day simplification counts for cap enforcement.
package usage

import (
	"context"
	"time"

	"babysimple/internal/model"
)

const dayFormat = "2006-01-02"

// Store persists one UsageRecord per session key. Implementations need no
// locking beyond their own consistency; there is exactly one writer per key
// at a time.
type Store interface {
	Load(ctx context.Context, key string) (*model.UsageRecord, error)
	Save(ctx context.Context, key string, rec model.UsageRecord) error
}

// Counter is the day-scoped usage counter. Reads roll the counter over to 0
// when the stored day differs from today, before any cap comparison.
type Counter struct {
	store Store
	now   func() time.Time
}

// NewCounter creates a counter over the given store.
func NewCounter(store Store) *Counter {
	return &Counter{store: store, now: time.Now}
}

// NewCounterAt creates a counter with an explicit clock.
func NewCounterAt(store Store, now func() time.Time) *Counter {
	return &Counter{store: store, now: now}
}

// CurrentCount returns today's count for the key, resetting and persisting a
// stale record first.
func (c *Counter) CurrentCount(ctx context.Context, key string) (int, error) {
	today := c.now().Format(dayFormat)

	rec, err := c.store.Load(ctx, key)
	if err != nil {
		return 0, err
	}
	if rec == nil || rec.Day != today {
		reset := model.UsageRecord{Count: 0, Day: today}
		if err := c.store.Save(ctx, key, reset); err != nil {
			return 0, err
		}
		return 0, nil
	}
	return rec.Count, nil
}

// RecordUse increments today's count for the key, returning the new count.
func (c *Counter) RecordUse(ctx context.Context, key string) (int, error) {
	count, err := c.CurrentCount(ctx, key)
	if err != nil {
		return 0, err
	}
	count++
	today := c.now().Format(dayFormat)
	if err := c.store.Save(ctx, key, model.UsageRecord{Count: count, Day: today}); err != nil {
		return 0, err
	}
	return count, nil
}

// Clear removes the key's record, used on sign-out.
func (c *Counter) Clear(ctx context.Context, key string) error {
	return c.store.Save(ctx, key, model.UsageRecord{Day: c.now().Format(dayFormat)})
}
