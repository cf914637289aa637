package propagation

import (
	"sync"

	"prefsync/internal/recipient/ports"
)

// RingBuffer is a bounded job buffer. When full, the oldest job is dropped
// to make room for the new one.
type RingBuffer struct {
	mu       sync.Mutex
	jobs     []ports.PropagationJob
	head     int // next write position
	tail     int // next read position
	count    int
	capacity int
	dropped  int64
}

// NewRingBuffer creates a ring buffer with the given capacity.
func NewRingBuffer(capacity int) *RingBuffer {
	if capacity <= 0 {
		capacity = 1024
	}
	return &RingBuffer{
		jobs:     make([]ports.PropagationJob, capacity),
		capacity: capacity,
	}
}

// Push adds job and reports whether an older job was dropped for it.
func (b *RingBuffer) Push(job ports.PropagationJob) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	dropped := false
	if b.count >= b.capacity {
		b.tail = (b.tail + 1) % b.capacity
		b.count--
		b.dropped++
		dropped = true
	}

	b.jobs[b.head] = job
	b.head = (b.head + 1) % b.capacity
	b.count++
	return dropped
}

// PopBatch removes up to n jobs, oldest first.
func (b *RingBuffer) PopBatch(n int) []ports.PropagationJob {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.count == 0 {
		return nil
	}
	if n > b.count {
		n = b.count
	}

	out := make([]ports.PropagationJob, n)
	for i := 0; i < n; i++ {
		out[i] = b.jobs[b.tail]
		b.jobs[b.tail] = ports.PropagationJob{}
		b.tail = (b.tail + 1) % b.capacity
	}
	b.count -= n
	return out
}

func (b *RingBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

// Dropped returns the total number of jobs dropped for lack of room.
func (b *RingBuffer) Dropped() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}
