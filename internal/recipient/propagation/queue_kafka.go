package propagation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	"prefsync/internal/recipient/metrics"
	"prefsync/internal/recipient/ports"
	"prefsync/pkg/platform/circuit"
	"prefsync/pkg/platform/sentinel"
)

// Message is the wire form of a propagation job.
type Message struct {
	ID        string `json:"id"`
	Recipient string `json:"recipient"`
	Kind      string `json:"kind"`
	CreatedAt int64  `json:"created_at"`
}

func toMessage(job ports.PropagationJob) Message {
	return Message{
		ID:        job.ID,
		Recipient: job.Recipient.String(),
		Kind:      string(job.Kind),
		CreatedAt: job.CreatedAt,
	}
}

// producer is the subset of *kgo.Client the queue uses.
type producer interface {
	Produce(ctx context.Context, r *kgo.Record, promise func(*kgo.Record, error))
}

// KafkaQueue produces jobs asynchronously, keyed by recipient so jobs for
// one recipient stay in one partition. While the breaker is open jobs are
// dropped instead of piling up in the client buffer.
type KafkaQueue struct {
	client  producer
	topic   string
	breaker *circuit.Breaker
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// KafkaOption configures a KafkaQueue.
type KafkaOption func(*KafkaQueue)

func WithKafkaLogger(logger *slog.Logger) KafkaOption {
	return func(q *KafkaQueue) {
		if logger != nil {
			q.logger = logger
		}
	}
}

func WithKafkaMetrics(m *metrics.Metrics) KafkaOption {
	return func(q *KafkaQueue) {
		q.metrics = m
	}
}

func WithBreaker(b *circuit.Breaker) KafkaOption {
	return func(q *KafkaQueue) {
		if b != nil {
			q.breaker = b
		}
	}
}

// NewKafkaQueue builds a queue producing to topic.
func NewKafkaQueue(client producer, topic string, opts ...KafkaOption) *KafkaQueue {
	q := &KafkaQueue{
		client:  client,
		topic:   topic,
		breaker: circuit.New("kafka"),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Enqueue hands job to the producer and returns without waiting for the
// broker. It fails only when the job cannot be encoded or the breaker is
// open.
func (q *KafkaQueue) Enqueue(ctx context.Context, job ports.PropagationJob) error {
	if !q.breaker.Allow() {
		q.metrics.IncrementPropagationDropped()
		return fmt.Errorf("propagation queue: %w", sentinel.ErrUnavailable)
	}
	value, err := json.Marshal(toMessage(job))
	if err != nil {
		return fmt.Errorf("encode propagation job: %w", err)
	}

	record := &kgo.Record{
		Topic: q.topic,
		Key:   []byte(job.Recipient.String()),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "kind", Value: []byte(job.Kind)},
		},
	}
	q.client.Produce(context.WithoutCancel(ctx), record, func(r *kgo.Record, err error) {
		q.onDelivered(ctx, job, err)
	})
	q.metrics.IncrementPropagationEnqueued()
	return nil
}

func (q *KafkaQueue) onDelivered(ctx context.Context, job ports.PropagationJob, err error) {
	if err == nil {
		if _, change := q.breaker.RecordSuccess(); change.Closed {
			q.logger.InfoContext(ctx, "propagation breaker closed", "breaker", q.breaker.Name())
		}
		return
	}
	q.metrics.IncrementPropagationDropped()
	_, change := q.breaker.RecordFailure()
	if change.Opened {
		q.logger.WarnContext(ctx, "propagation breaker opened", "breaker", q.breaker.Name())
	}
	q.logger.WarnContext(ctx, "propagation job not delivered",
		"job_id", job.ID,
		"recipient", job.Recipient.String(),
		"error", err,
	)
}
