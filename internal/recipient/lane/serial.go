package lane

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"prefsync/pkg/platform/sentinel"
)

// Serial runs jobs with the same key one at a time, in submission order.
// Each active key has one drain goroutine; at most `concurrency` jobs run at
// once across all keys.
type Serial struct {
	runner runner
	sem    *semaphore.Weighted

	mu     sync.Mutex
	queues map[string][]queued
	closed bool
	track  tracker
	drains sync.WaitGroup
}

type queued struct {
	ctx context.Context
	job Job
}

// NewSerial builds a serial lane. concurrency below 1 is treated as 1.
func NewSerial(concurrency int, opts ...Option) *Serial {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Serial{
		runner: newRunner("serial", opts),
		sem:    semaphore.NewWeighted(int64(concurrency)),
		queues: make(map[string][]queued),
		track:  newTracker(),
	}
}

// Submit queues job behind every earlier job with the same key. The job runs
// on a context detached from ctx's cancellation.
func (s *Serial) Submit(ctx context.Context, job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return sentinel.ErrClosed
	}

	q, active := s.queues[job.Key]
	s.queues[job.Key] = append(q, queued{ctx: context.WithoutCancel(ctx), job: job})
	s.track.add()
	if !active {
		s.drains.Add(1)
		go s.drain(job.Key)
	}
	return nil
}

func (s *Serial) drain(key string) {
	defer s.drains.Done()
	for {
		s.mu.Lock()
		q := s.queues[key]
		if len(q) == 0 {
			delete(s.queues, key)
			s.mu.Unlock()
			return
		}
		next := q[0]
		s.mu.Unlock()

		// Acquire only fails on a cancelled context; the background one never is.
		_ = s.sem.Acquire(context.Background(), 1)
		s.runner.run(next.ctx, next.job)
		s.sem.Release(1)

		s.mu.Lock()
		// The head stays queued while it runs so Submit sees the key as active.
		s.queues[key] = s.queues[key][1:]
		s.track.done()
		s.mu.Unlock()
	}
}

// Pending reports the number of queued or running jobs.
func (s *Serial) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.track.pending
}

// Flush waits until every job submitted so far has finished.
func (s *Serial) Flush(ctx context.Context) error {
	s.mu.Lock()
	idle := s.track.idle
	s.mu.Unlock()
	return waitIdle(ctx, idle)
}

// Close rejects new jobs and waits for queued ones to finish.
func (s *Serial) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.drains.Wait()
		close(done)
	}()
	return waitIdle(ctx, done)
}
