// Package lane runs durable writes off the caller's goroutine. The serial lane
// executes one task at a time per key in submission order; the pooled lane
// shares a fixed worker pool and coalesces pending tasks per key.
package lane

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel/trace"

	"prefsync/internal/platform/otel"
	"prefsync/internal/recipient/metrics"
)

// Task is one durable write. A returned error is retried unless it is
// wrapped with Permanent.
type Task func(ctx context.Context) error

// Job is a task addressed to a key. Key is the recipient address; Name is the
// field or operation and shows up in logs and spans.
type Job struct {
	Key  string
	Name string
	Run  Task
}

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// RetryPolicy bounds the exponential backoff applied to failing tasks.
type RetryPolicy struct {
	MaxAttempts     uint
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetryPolicy is used when no policy is configured.
var DefaultRetryPolicy = RetryPolicy{
	MaxAttempts:     5,
	InitialInterval: 50 * time.Millisecond,
	MaxInterval:     2 * time.Second,
}

func (p RetryPolicy) backOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		b.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		b.MaxInterval = p.MaxInterval
	}
	return b
}

// Option configures a lane.
type Option func(*runner)

// WithLogger sets the lane logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics records persist failures and durations.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *runner) {
		r.metrics = m
	}
}

// WithTracer opens a span per job.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *runner) {
		r.tracer = tracer
	}
}

// WithRetry overrides DefaultRetryPolicy.
func WithRetry(p RetryPolicy) Option {
	return func(r *runner) {
		if p.MaxAttempts == 0 {
			p.MaxAttempts = 1
		}
		r.retry = p
	}
}

type runner struct {
	lane    string
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
	retry   RetryPolicy
}

func newRunner(lane string, opts []Option) runner {
	r := runner{
		lane:   lane,
		logger: slog.Default(),
		retry:  DefaultRetryPolicy,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// run executes job with retries. Failures after the last attempt are logged;
// there is no caller left to return them to.
func (r *runner) run(ctx context.Context, job Job) {
	start := time.Now()
	defer r.metrics.ObservePersist(r.lane, start)

	ctx, span := otel.StartSpan(ctx, r.tracer, "lane."+r.lane,
		trace.WithAttributes(
			otel.AttrLane.String(r.lane),
			otel.AttrRecipient.String(job.Key),
			otel.AttrField.String(job.Name),
		),
	)
	defer span.End()

	attempts := 0
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attempts++
		err := job.Run(ctx)
		if err != nil {
			r.metrics.IncrementPersistFailure(r.lane)
		}
		return struct{}{}, err
	},
		backoff.WithBackOff(r.retry.backOff()),
		backoff.WithMaxTries(r.retry.MaxAttempts),
		backoff.WithNotify(func(err error, next time.Duration) {
			r.logger.WarnContext(ctx, "durable write failed, retrying",
				"lane", r.lane,
				"recipient", job.Key,
				"field", job.Name,
				"retry_in", next,
				"error", err,
			)
		}),
	)
	span.SetAttributes(otel.AttrAttempt.Int(attempts))
	if err != nil {
		otel.RecordError(span, err)
		r.logger.ErrorContext(ctx, "durable write abandoned",
			"lane", r.lane,
			"recipient", job.Key,
			"field", job.Name,
			"attempts", attempts,
			"error", err,
		)
	}
}

// tracker counts outstanding jobs so Flush can wait for zero.
type tracker struct {
	pending int
	idle    chan struct{}
}

func newTracker() tracker {
	idle := make(chan struct{})
	close(idle)
	return tracker{idle: idle}
}

// add must be called with the owner's lock held.
func (t *tracker) add() {
	if t.pending == 0 {
		t.idle = make(chan struct{})
	}
	t.pending++
}

// done must be called with the owner's lock held.
func (t *tracker) done() {
	t.pending--
	if t.pending == 0 {
		close(t.idle)
	}
}

func waitIdle(ctx context.Context, idle <-chan struct{}) error {
	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
