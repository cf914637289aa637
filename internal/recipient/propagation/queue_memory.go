package propagation

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"

	"prefsync/internal/recipient/metrics"
	"prefsync/internal/recipient/ports"
)

// Handler delivers a batch of jobs to linked devices.
type Handler interface {
	Deliver(ctx context.Context, jobs []ports.PropagationJob) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, jobs []ports.PropagationJob) error

func (f HandlerFunc) Deliver(ctx context.Context, jobs []ports.PropagationJob) error {
	return f(ctx, jobs)
}

// MemoryQueue buffers jobs in process and hands them to a Handler from a
// single worker goroutine started with Run.
type MemoryQueue struct {
	buffer    *RingBuffer
	handler   Handler
	batchSize int
	attempts  uint
	wake      chan struct{}
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// MemoryOption configures a MemoryQueue.
type MemoryOption func(*MemoryQueue)

func WithLogger(logger *slog.Logger) MemoryOption {
	return func(q *MemoryQueue) {
		if logger != nil {
			q.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) MemoryOption {
	return func(q *MemoryQueue) {
		q.metrics = m
	}
}

// WithBatchSize bounds how many jobs one Deliver call receives.
func WithBatchSize(n int) MemoryOption {
	return func(q *MemoryQueue) {
		if n > 0 {
			q.batchSize = n
		}
	}
}

// WithDeliveryAttempts bounds retries of a failing batch.
func WithDeliveryAttempts(n uint) MemoryOption {
	return func(q *MemoryQueue) {
		if n > 0 {
			q.attempts = n
		}
	}
}

// NewMemoryQueue builds a queue holding at most capacity undelivered jobs.
func NewMemoryQueue(capacity int, handler Handler, opts ...MemoryOption) *MemoryQueue {
	q := &MemoryQueue{
		buffer:    NewRingBuffer(capacity),
		handler:   handler,
		batchSize: 64,
		attempts:  5,
		wake:      make(chan struct{}, 1),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Enqueue buffers job and never blocks. When the buffer is full the oldest
// job is dropped.
func (q *MemoryQueue) Enqueue(_ context.Context, job ports.PropagationJob) error {
	if q.buffer.Push(job) {
		q.metrics.IncrementPropagationDropped()
	}
	q.metrics.IncrementPropagationEnqueued()
	select {
	case q.wake <- struct{}{}:
	default:
	}
	return nil
}

// Len reports the number of undelivered jobs.
func (q *MemoryQueue) Len() int {
	return q.buffer.Len()
}

// Run delivers buffered jobs until ctx is cancelled, then makes one final
// attempt to drain what is left.
func (q *MemoryQueue) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			q.drain(context.WithoutCancel(ctx))
			return ctx.Err()
		case <-q.wake:
			if ctx.Err() == nil {
				q.drain(ctx)
			}
		}
	}
}

func (q *MemoryQueue) drain(ctx context.Context) {
	for {
		batch := q.buffer.PopBatch(q.batchSize)
		if len(batch) == 0 {
			return
		}
		q.deliver(ctx, batch)
	}
}

func (q *MemoryQueue) deliver(ctx context.Context, batch []ports.PropagationJob) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = 5 * time.Second

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, q.handler.Deliver(ctx, batch)
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(q.attempts),
	)
	if err != nil {
		for range batch {
			q.metrics.IncrementPropagationDropped()
		}
		q.logger.WarnContext(ctx, "propagation batch dropped",
			"jobs", len(batch),
			"error", err,
		)
	}
}

// LogHandler logs each delivered job. It stands in for linked-device
// delivery when no broker is configured.
type LogHandler struct {
	Logger *slog.Logger
}

func (h LogHandler) Deliver(ctx context.Context, jobs []ports.PropagationJob) error {
	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}
	for _, job := range jobs {
		logger.InfoContext(ctx, "propagating recipient change",
			"job_id", job.ID,
			"recipient", job.Recipient.String(),
			"kind", string(job.Kind),
		)
	}
	return nil
}
