package service

import (
	"context"

	"prefsync/internal/platform/otel"
	"prefsync/internal/recipient/entity"
	"prefsync/internal/recipient/models"
)

// SetMessageRingtone sets the message tone of addr. A nil uri is explicit
// silence; a uri equal to the process default is stored as unset.
func (c *Coordinator) SetMessageRingtone(ctx context.Context, addr models.Address, uri *string) (err error) {
	ctx, span := c.startSpan(ctx, "ringtone", addr)
	defer func() {
		otel.RecordError(span, err)
		span.End()
	}()

	ringtone := models.RingtoneSilent
	if uri != nil {
		ringtone, err = models.ParseRingtoneURI(*uri)
		if err != nil {
			return c.invalid(err.Error())
		}
		if c.defaults.Ringtone != "" && *uri == c.defaults.Ringtone {
			ringtone = models.RingtoneUnset
		}
	}
	return c.setRingtone(ctx, addr, ringtone)
}

// ResetMessageRingtone makes addr inherit the process default tone.
func (c *Coordinator) ResetMessageRingtone(ctx context.Context, addr models.Address) (err error) {
	ctx, span := c.startSpan(ctx, "ringtone", addr)
	defer func() {
		otel.RecordError(span, err)
		span.End()
	}()
	return c.setRingtone(ctx, addr, models.RingtoneUnset)
}

func (c *Coordinator) setRingtone(ctx context.Context, addr models.Address, ringtone models.Ringtone) error {
	e, err := c.begin(ctx, addr, true)
	if err != nil {
		return err
	}
	c.commit(e, models.FieldRingtone, ringtone)

	return c.submit(ctx, c.serial, addr, string(models.FieldRingtone), func(ctx context.Context) error {
		if err := c.store.SetMessageRingtone(ctx, addr, ringtone); err != nil {
			return err
		}
		return c.updateChannel(ctx, e, func(ctx context.Context) error {
			return c.channels.UpdateRingtone(ctx, addr, ringtone)
		})
	})
}

// SetMessageVibrate sets the vibration policy of addr.
func (c *Coordinator) SetMessageVibrate(ctx context.Context, addr models.Address, vibrate models.VibrateState) (err error) {
	ctx, span := c.startSpan(ctx, "vibrate", addr)
	defer func() {
		otel.RecordError(span, err)
		span.End()
	}()

	if _, err := models.VibrateFromID(vibrate.ID()); err != nil {
		return c.invalid(err.Error())
	}
	e, err := c.begin(ctx, addr, true)
	if err != nil {
		return err
	}
	c.commit(e, models.FieldVibrate, vibrate)

	enabled := vibrate.Resolve(c.defaults.Vibrate)
	return c.submit(ctx, c.serial, addr, string(models.FieldVibrate), func(ctx context.Context) error {
		if err := c.store.SetMessageVibrate(ctx, addr, vibrate); err != nil {
			return err
		}
		return c.updateChannel(ctx, e, func(ctx context.Context) error {
			return c.channels.UpdateVibrate(ctx, addr, enabled)
		})
	})
}

// updateChannel makes sure a channel exists before pushing a setting to it.
// A freshly created channel already carries the entity's settings.
func (c *Coordinator) updateChannel(ctx context.Context, e *entity.Entity, update func(context.Context) error) error {
	created, err := c.enableChannel(ctx, e)
	if err != nil {
		return err
	}
	if created {
		return nil
	}
	return update(ctx)
}
