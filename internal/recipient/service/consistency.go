package service

import (
	"context"
	"fmt"
	"sort"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"prefsync/internal/platform/otel"
	"prefsync/internal/recipient/models"
	dErrors "prefsync/pkg/domain-errors"
)

// Repair kinds reported in metrics and logs.
const (
	repairDeleted = "deleted"
	repairCreated = "created"
	repairAdopted = "adopted"
)

// EnsureConsistency compares every stored channel id with the adapter's
// channels and schedules a serial-lane repair for each recipient where they
// disagree. It returns the number of repairs scheduled.
func (c *Coordinator) EnsureConsistency(ctx context.Context) (n int, err error) {
	ctx, span := otel.StartSpan(ctx, c.tracer, "recipient.ensure_consistency")
	defer func() {
		span.SetAttributes(otel.AttrRepairCount.Int(n))
		otel.RecordError(span, err)
		span.End()
	}()

	if c.closed.Load() {
		return 0, dErrors.New(dErrors.CodeUnavailable, "coordinator is closed")
	}

	var (
		stored  map[models.Address]string
		adapter []models.Channel
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stored, err = c.store.ListNotificationChannels(gctx)
		if err != nil {
			return fmt.Errorf("list stored channels: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		adapter, err = c.channels.Channels(gctx)
		if err != nil {
			return fmt.Errorf("list adapter channels: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to compare channels")
	}

	for _, addr := range mismatched(stored, adapter) {
		if err := c.submit(ctx, c.serial, addr, "repair", func(ctx context.Context) error {
			return c.repairChannel(ctx, addr)
		}); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func mismatched(stored map[models.Address]string, adapter []models.Channel) []models.Address {
	live := make(map[models.Address]string, len(adapter))
	for _, ch := range adapter {
		live[ch.Recipient] = ch.ID
	}

	seen := make(map[models.Address]struct{})
	var out []models.Address
	check := func(addr models.Address) {
		if _, ok := seen[addr]; ok {
			return
		}
		seen[addr] = struct{}{}
		if stored[addr] != live[addr] {
			out = append(out, addr)
		}
	}
	for addr := range stored {
		check(addr)
	}
	for addr := range live {
		check(addr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// repairChannel re-reads both sides on the serial lane, so it sees every
// earlier write for addr, and makes them agree. A stored id is treated as the
// user's intent.
func (c *Coordinator) repairChannel(ctx context.Context, addr models.Address) error {
	e, err := c.registry.Get(ctx, addr)
	if err != nil {
		return err
	}
	stored, err := c.storedChannel(ctx, addr)
	if err != nil {
		return err
	}
	ch, err := c.adapterChannel(ctx, addr)
	if err != nil {
		return err
	}

	var kind string
	switch {
	case stored == "" && ch == nil:
		if e.Get().HasChannel() {
			c.commitChannel(ctx, e, "", models.NoChannel)
		}
		return nil
	case stored == "":
		if err := c.channels.DeleteChannelFor(ctx, addr); err != nil {
			return err
		}
		if e.Get().HasChannel() {
			c.commitChannel(ctx, e, "", models.NoChannel)
		}
		kind = repairDeleted
	case ch != nil && ch.ID == stored:
		if e.Get().NotificationChannel == stored {
			return nil
		}
		c.commitChannel(ctx, e, stored, models.Active)
		kind = repairAdopted
	default:
		if ch != nil {
			if err := c.channels.DeleteChannelFor(ctx, addr); err != nil {
				return err
			}
		}
		if e.Get().ChannelState != models.NoChannel {
			c.commitChannel(ctx, e, "", models.NoChannel)
		}
		if err := c.createChannel(ctx, e); err != nil {
			return err
		}
		kind = repairCreated
	}

	c.metrics.IncrementRepair(kind)
	trace.SpanFromContext(ctx).AddEvent("channel repaired")
	c.logger.InfoContext(ctx, "repaired notification channel",
		"recipient", addr.String(),
		"kind", kind,
		"stored_channel", stored,
	)
	return nil
}
