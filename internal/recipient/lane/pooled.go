package lane

import (
	"context"
	"sync"

	"prefsync/pkg/platform/sentinel"
)

type poolKey struct {
	key  string
	name string
}

// Pooled runs jobs on a fixed set of workers. Jobs for the same (Key, Name)
// never run concurrently; a job submitted while an earlier one for the same
// pair is still pending replaces it. Only idempotent writes belong here.
type Pooled struct {
	runner runner

	mu      sync.Mutex
	cond    *sync.Cond
	ready   []poolKey
	pending map[poolKey]queued
	running map[poolKey]bool
	closed  bool
	track   tracker
	workers sync.WaitGroup
}

// NewPooled starts size workers. size below 1 is treated as 1.
func NewPooled(size int, opts ...Option) *Pooled {
	if size < 1 {
		size = 1
	}
	p := &Pooled{
		runner:  newRunner("pooled", opts),
		pending: make(map[poolKey]queued),
		running: make(map[poolKey]bool),
		track:   newTracker(),
	}
	p.cond = sync.NewCond(&p.mu)
	p.workers.Add(size)
	for i := 0; i < size; i++ {
		go p.work()
	}
	return p
}

// Submit schedules job. A pending job with the same key and name is
// superseded and never runs.
func (p *Pooled) Submit(ctx context.Context, job Job) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return sentinel.ErrClosed
	}

	k := poolKey{key: job.Key, name: job.Name}
	next := queued{ctx: context.WithoutCancel(ctx), job: job}
	if _, ok := p.pending[k]; ok {
		p.pending[k] = next
		p.runner.metrics.IncrementCoalesced()
		return nil
	}

	p.pending[k] = next
	p.track.add()
	if !p.running[k] {
		p.ready = append(p.ready, k)
		p.cond.Signal()
	}
	return nil
}

func (p *Pooled) work() {
	defer p.workers.Done()
	for {
		p.mu.Lock()
		for len(p.ready) == 0 && !p.closed {
			p.cond.Wait()
		}
		if len(p.ready) == 0 {
			p.mu.Unlock()
			return
		}
		k := p.ready[0]
		p.ready = p.ready[1:]
		next := p.pending[k]
		delete(p.pending, k)
		p.running[k] = true
		p.mu.Unlock()

		p.runner.run(next.ctx, next.job)

		p.mu.Lock()
		delete(p.running, k)
		if _, ok := p.pending[k]; ok {
			p.ready = append(p.ready, k)
			p.cond.Signal()
		}
		p.track.done()
		p.mu.Unlock()
	}
}

// Pending reports the number of queued or running jobs.
func (p *Pooled) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.track.pending
}

// Flush waits until every job submitted so far has finished or been
// superseded.
func (p *Pooled) Flush(ctx context.Context) error {
	p.mu.Lock()
	idle := p.track.idle
	p.mu.Unlock()
	return waitIdle(ctx, idle)
}

// Close rejects new jobs, lets the workers finish what is queued and waits
// for them to exit.
func (p *Pooled) Close(ctx context.Context) error {
	p.mu.Lock()
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.workers.Wait()
		close(done)
	}()
	return waitIdle(ctx, done)
}
