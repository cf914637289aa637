package service

import (
	"context"

	"prefsync/internal/platform/otel"
	"prefsync/internal/recipient/models"
	"prefsync/internal/recipient/ports"
)

// SetColor changes the accent color of addr. Setting the current color again
// does nothing.
func (c *Coordinator) SetColor(ctx context.Context, addr models.Address, color models.MaterialColor) (err error) {
	ctx, span := c.startSpan(ctx, "color", addr)
	defer func() {
		otel.RecordError(span, err)
		span.End()
	}()

	if _, err := models.ParseColor(color.String()); err != nil {
		return c.invalid(err.Error())
	}
	e, err := c.begin(ctx, addr, false)
	if err != nil {
		return err
	}
	changed := c.commitIf(e, models.FieldColor, color, func(r models.Recipient) bool {
		return r.Color != color
	})
	if !changed {
		return nil
	}

	propagate := e.Get().PropagatesSettings()
	return c.submit(ctx, c.pooled, addr, string(models.FieldColor), func(ctx context.Context) error {
		if err := c.store.SetColor(ctx, addr, color); err != nil {
			return err
		}
		if propagate {
			c.propagate(ctx, addr, models.PropagationColorChange)
		}
		return nil
	})
}

// propagate hands a job to the queue. Failures are logged and dropped.
func (c *Coordinator) propagate(ctx context.Context, addr models.Address, kind models.PropagationKind) {
	if c.queue == nil {
		return
	}
	job := ports.PropagationJob{
		ID:        c.newJobID(),
		Recipient: addr,
		Kind:      kind,
		CreatedAt: c.now().UnixMilli(),
	}
	if err := c.queue.Enqueue(ctx, job); err != nil {
		c.logger.WarnContext(ctx, "failed to enqueue propagation job",
			"recipient", addr.String(),
			"kind", string(kind),
			"error", err,
		)
	}
}
