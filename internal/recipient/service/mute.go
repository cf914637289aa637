package service

import (
	"context"
	"time"

	"prefsync/internal/platform/otel"
	"prefsync/internal/recipient/models"
)

// MuteUntil mutes addr until the given time. A time at or before now is the
// unmute sentinel and stores 0.
func (c *Coordinator) MuteUntil(ctx context.Context, addr models.Address, until time.Time) (err error) {
	ctx, span := c.startSpan(ctx, "mute", addr)
	defer func() {
		otel.RecordError(span, err)
		span.End()
	}()

	e, err := c.begin(ctx, addr, true)
	if err != nil {
		return err
	}

	var ms int64
	if until.After(c.now()) {
		ms = until.UnixMilli()
	}
	c.commit(e, models.FieldMute, ms)

	return c.submit(ctx, c.pooled, addr, string(models.FieldMute), func(ctx context.Context) error {
		return c.store.SetMuted(ctx, addr, ms)
	})
}

// Unmute clears any mute deadline on addr.
func (c *Coordinator) Unmute(ctx context.Context, addr models.Address) error {
	return c.MuteUntil(ctx, addr, time.Time{})
}
