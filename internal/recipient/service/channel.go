package service

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/trace"

	"prefsync/internal/platform/otel"
	"prefsync/internal/recipient/entity"
	"prefsync/internal/recipient/lane"
	"prefsync/internal/recipient/models"
	"prefsync/pkg/platform/sentinel"
)

// SetCustomNotifications turns the custom notification channel of addr on or
// off. The intent is visible on the entity immediately; the channel follows
// on the serial lane.
func (c *Coordinator) SetCustomNotifications(ctx context.Context, addr models.Address, enabled bool) (err error) {
	ctx, span := c.startSpan(ctx, "custom_channel", addr)
	defer func() {
		otel.RecordError(span, err)
		span.End()
	}()

	e, err := c.begin(ctx, addr, true)
	if err != nil {
		return err
	}
	c.commit(e, models.FieldCustomChannel, enabled)

	return c.submit(ctx, c.serial, addr, string(models.FieldCustomChannel), func(ctx context.Context) error {
		if enabled {
			_, err := c.enableChannel(ctx, e)
			return err
		}
		return c.deleteChannel(ctx, e)
	})
}

// enableChannel leaves a channel the adapter confirms alone and (re)creates
// it otherwise. It reports whether a new channel was created.
func (c *Coordinator) enableChannel(ctx context.Context, e *entity.Entity) (bool, error) {
	snap := e.Get()
	addr := snap.Address

	ch, err := c.adapterChannel(ctx, addr)
	if err != nil {
		return false, err
	}

	if snap.HasChannel() && ch != nil && ch.ID == snap.NotificationChannel {
		stored, err := c.storedChannel(ctx, addr)
		if err != nil {
			return false, err
		}
		if stored != ch.ID {
			if err := c.store.SetNotificationChannel(ctx, addr, ch.ID); err != nil {
				return false, err
			}
		}
		return false, nil
	}

	if ch != nil {
		if err := c.channels.DeleteChannelFor(ctx, addr); err != nil {
			return false, err
		}
	}
	if snap.HasChannel() {
		if err := c.store.SetNotificationChannel(ctx, addr, ""); err != nil {
			return false, err
		}
		c.commitChannel(ctx, e, "", models.NoChannel)
	}
	if err := c.createChannel(ctx, e); err != nil {
		return false, err
	}
	return true, nil
}

// createChannel walks NoChannel -> Creating -> Active. The store is written
// only after the adapter confirmed the channel.
func (c *Coordinator) createChannel(ctx context.Context, e *entity.Entity) error {
	snap := e.Get()
	if _, err := snap.ChannelState.Transition(models.Creating); err != nil {
		return lane.Permanent(err)
	}
	c.commitChannel(ctx, e, "", models.Creating)

	id, err := c.channels.CreateChannelFor(ctx, e.Get())
	if err != nil {
		c.commitChannel(ctx, e, "", models.NoChannel)
		return err
	}
	if err := c.store.SetNotificationChannel(ctx, snap.Address, id); err != nil {
		// The channel exists; a retry finds it and only repeats the store write.
		c.commitChannel(ctx, e, id, models.Active)
		return err
	}
	c.commitChannel(ctx, e, id, models.Active)
	return nil
}

// deleteChannel walks Active -> Deleting -> NoChannel. Without a channel it
// still clears both sides so a retried delete converges.
func (c *Coordinator) deleteChannel(ctx context.Context, e *entity.Entity) error {
	snap := e.Get()
	addr := snap.Address

	if !snap.HasChannel() {
		if err := c.channels.DeleteChannelFor(ctx, addr); err != nil {
			return err
		}
		return c.store.SetNotificationChannel(ctx, addr, "")
	}

	if _, err := snap.ChannelState.Transition(models.Deleting); err != nil {
		return lane.Permanent(err)
	}
	c.commitChannel(ctx, e, snap.NotificationChannel, models.Deleting)

	if err := c.channels.DeleteChannelFor(ctx, addr); err != nil {
		c.commitChannel(ctx, e, snap.NotificationChannel, models.Active)
		return err
	}
	if err := c.store.SetNotificationChannel(ctx, addr, ""); err != nil {
		c.commitChannel(ctx, e, "", models.NoChannel)
		return err
	}
	c.commitChannel(ctx, e, "", models.NoChannel)
	return nil
}

func (c *Coordinator) commitChannel(ctx context.Context, e *entity.Entity, id string, state models.ChannelState) {
	m := c.commit(e, models.FieldChannelID, models.ChannelCommit{ChannelID: id, State: state})
	trace.SpanFromContext(ctx).AddEvent("channel state",
		trace.WithAttributes(
			otel.AttrChannelState.String(state.String()),
			otel.AttrSeq.Int64(int64(m.Seq)),
		),
	)
}

// adapterChannel returns nil when the adapter has no channel for addr.
func (c *Coordinator) adapterChannel(ctx context.Context, addr models.Address) (*models.Channel, error) {
	ch, err := c.channels.Channel(ctx, addr)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ch, nil
}

// storedChannel returns "" when addr has no stored record or channel id.
func (c *Coordinator) storedChannel(ctx context.Context, addr models.Address) (string, error) {
	r, err := c.store.Get(ctx, addr)
	if errors.Is(err, sentinel.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return r.NotificationChannel, nil
}
