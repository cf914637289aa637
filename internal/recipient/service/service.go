// Package service holds the mutation coordinator: the only writer of
// recipient entities. Every intent is validated, applied to the entity
// synchronously and then persisted on a lane.
package service

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"prefsync/internal/platform/otel"
	"prefsync/internal/recipient/entity"
	"prefsync/internal/recipient/lane"
	"prefsync/internal/recipient/metrics"
	"prefsync/internal/recipient/models"
	"prefsync/internal/recipient/ports"
	dErrors "prefsync/pkg/domain-errors"
)

// Defaults are the process-wide notification settings a recipient inherits.
type Defaults struct {
	Ringtone string
	Vibrate  bool
}

// Coordinator orchestrates recipient preference mutations across the entity,
// the store, the channel adapter and the propagation queue.
type Coordinator struct {
	registry *entity.Registry
	store    ports.PreferenceStore
	channels ports.ChannelAdapter
	queue    ports.PropagationQueue
	identity ports.IdentityLookup
	serial   *lane.Serial
	pooled   *lane.Pooled

	defaults     Defaults
	ringtoneName func(uri string) (string, error)
	now          func() time.Time
	newJobID     func() string

	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer

	identities singleflight.Group
	closed     atomic.Bool
}

type Option func(c *Coordinator)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Coordinator) {
		c.metrics = m
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(c *Coordinator) {
		c.tracer = tracer
	}
}

// WithPropagationQueue enables multi-device propagation of color changes.
func WithPropagationQueue(q ports.PropagationQueue) Option {
	return func(c *Coordinator) {
		c.queue = q
	}
}

// WithIdentityLookup enables the identity affordance.
func WithIdentityLookup(l ports.IdentityLookup) Option {
	return func(c *Coordinator) {
		c.identity = l
	}
}

func WithDefaults(d Defaults) Option {
	return func(c *Coordinator) {
		c.defaults = d
	}
}

// WithRingtoneNamer resolves a ringtone URI to a display title for the
// settings view.
func WithRingtoneNamer(fn func(uri string) (string, error)) Option {
	return func(c *Coordinator) {
		if fn != nil {
			c.ringtoneName = fn
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) {
		if now != nil {
			c.now = now
		}
	}
}

func WithJobIDGenerator(fn func() string) Option {
	return func(c *Coordinator) {
		if fn != nil {
			c.newJobID = fn
		}
	}
}

// New constructs a Coordinator. The lanes are owned by the coordinator from
// here on and closed by Close.
func New(
	registry *entity.Registry,
	store ports.PreferenceStore,
	channels ports.ChannelAdapter,
	serial *lane.Serial,
	pooled *lane.Pooled,
	opts ...Option,
) *Coordinator {
	c := &Coordinator{
		registry:     registry,
		store:        store,
		channels:     channels,
		serial:       serial,
		pooled:       pooled,
		defaults:     Defaults{Vibrate: true},
		ringtoneName: defaultRingtoneName,
		now:          time.Now,
		newJobID:     uuid.NewString,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Entity returns the observable entity for addr, loading it if needed.
// Callers may register listeners on it; only the coordinator mutates it.
func (c *Coordinator) Entity(ctx context.Context, addr models.Address) (*entity.Entity, error) {
	return c.entityFor(ctx, addr)
}

// Recipient returns the current snapshot for addr.
func (c *Coordinator) Recipient(ctx context.Context, addr models.Address) (models.Recipient, error) {
	e, err := c.entityFor(ctx, addr)
	if err != nil {
		return models.Recipient{}, err
	}
	return e.Get(), nil
}

// Flush waits until every submitted write has finished and every resulting
// listener notification has been delivered.
func (c *Coordinator) Flush(ctx context.Context) error {
	if err := c.serial.Flush(ctx); err != nil {
		return err
	}
	if err := c.pooled.Flush(ctx); err != nil {
		return err
	}
	return c.registry.Dispatcher().Flush(ctx)
}

// Close rejects new intents and drains both lanes. The dispatcher belongs to
// the registry and is left running.
func (c *Coordinator) Close(ctx context.Context) error {
	c.closed.Store(true)
	if err := c.serial.Close(ctx); err != nil {
		return err
	}
	if err := c.pooled.Close(ctx); err != nil {
		return err
	}
	return c.registry.Dispatcher().Flush(ctx)
}

func (c *Coordinator) entityFor(ctx context.Context, addr models.Address) (*entity.Entity, error) {
	if addr.IsNil() {
		return nil, c.invalid("recipient address is required")
	}
	e, err := c.registry.Get(ctx, addr)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load recipient")
	}
	return e, nil
}

// begin resolves the entity an intent targets. notification marks intents
// that the local recipient does not support.
func (c *Coordinator) begin(ctx context.Context, addr models.Address, notification bool) (*entity.Entity, error) {
	if c.closed.Load() {
		return nil, dErrors.New(dErrors.CodeUnavailable, "coordinator is closed")
	}
	e, err := c.entityFor(ctx, addr)
	if err != nil {
		return nil, err
	}
	if notification && e.Get().IsLocal {
		return nil, c.invalid("notification settings are not available for the local recipient")
	}
	return e, nil
}

func (c *Coordinator) invalid(msg string) error {
	c.metrics.IncrementValidationFailure()
	return dErrors.New(dErrors.CodeValidation, msg)
}

func (c *Coordinator) commit(e *entity.Entity, field models.Field, value any) models.Mutation {
	m := e.ApplyLocal(models.Mutation{Field: field, Value: value, Timestamp: c.now()})
	c.metrics.IncrementMutation(string(field))
	return m
}

// commitIf commits field=value only when cond holds for the entity's current
// snapshot, checked atomically with the commit.
func (c *Coordinator) commitIf(e *entity.Entity, field models.Field, value any, cond func(models.Recipient) bool) bool {
	_, ok := e.ApplyLocalIf(models.Mutation{Field: field, Value: value, Timestamp: c.now()}, cond)
	if ok {
		c.metrics.IncrementMutation(string(field))
	}
	return ok
}

// submitter is implemented by both lanes.
type submitter interface {
	Submit(ctx context.Context, job lane.Job) error
}

func (c *Coordinator) submit(ctx context.Context, l submitter, addr models.Address, name string, run lane.Task) error {
	err := l.Submit(ctx, lane.Job{Key: addr.String(), Name: name, Run: run})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "failed to schedule write")
	}
	return nil
}

func (c *Coordinator) startSpan(ctx context.Context, name string, addr models.Address) (context.Context, trace.Span) {
	return otel.StartSpan(ctx, c.tracer, "recipient."+name,
		trace.WithAttributes(otel.AttrRecipient.String(addr.String())),
	)
}
