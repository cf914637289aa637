package service

import (
	"context"

	"prefsync/internal/platform/otel"
	"prefsync/internal/recipient/models"
)

// Affordance tells the caller whether to offer identity verification.
type Affordance struct {
	Visible bool
	Record  *models.IdentityRecord
}

// IdentityAffordance fetches the remote identity of addr. Local and group
// recipients are hidden without a fetch; a missing record and a failed fetch
// both hide the affordance. Concurrent calls for one address share a fetch.
func (c *Coordinator) IdentityAffordance(ctx context.Context, addr models.Address) (Affordance, error) {
	ctx, span := c.startSpan(ctx, "identity", addr)
	defer span.End()

	e, err := c.entityFor(ctx, addr)
	if err != nil {
		return Affordance{}, err
	}
	r := e.Get()
	if c.identity == nil || r.IsLocal || r.IsGroup {
		return Affordance{}, nil
	}

	// The fetch is shared, so one caller going away must not fail the others.
	fetchCtx := context.WithoutCancel(ctx)
	v, err, _ := c.identities.Do(addr.String(), func() (any, error) {
		return c.identity.FetchRemoteIdentity(fetchCtx, addr)
	})
	if err != nil {
		otel.RecordError(span, err)
		c.logger.WarnContext(ctx, "identity lookup failed",
			"recipient", addr.String(),
			"error", err,
		)
		return Affordance{}, nil
	}
	rec, _ := v.(*models.IdentityRecord)
	if rec == nil {
		return Affordance{}, nil
	}
	return Affordance{Visible: true, Record: rec}, nil
}

// FetchRemoteIdentity resolves the affordance off the caller's goroutine and
// delivers it to cb on the dispatcher. The entity is never modified.
func (c *Coordinator) FetchRemoteIdentity(ctx context.Context, addr models.Address, cb func(Affordance)) {
	ctx = context.WithoutCancel(ctx)
	go func() {
		a, err := c.IdentityAffordance(ctx, addr)
		if err != nil {
			c.logger.WarnContext(ctx, "identity fetch rejected",
				"recipient", addr.String(),
				"error", err,
			)
		}
		c.registry.Dispatcher().Post(func() { cb(a) })
	}()
}
