package state

import (
	"sync"
	"time"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusLoaded  Status = "loaded"
	StatusError   Status = "error"
)

// Ticket identifies one load. Only the latest ticket may settle the resource.
type Ticket uint64

type Snapshot[T any] struct {
	Status    Status
	Value     T
	Err       error
	UpdatedAt time.Time
}

// Resource is the load state of one remotely backed value. A result is applied
// only if no newer load started and the resource was not closed in between.
type Resource[T any] struct {
	mu     sync.Mutex
	gen    uint64
	closed bool
	snap   Snapshot[T]
}

func NewResource[T any](initial T) *Resource[T] {
	return &Resource[T]{
		snap: Snapshot[T]{Status: StatusIdle, Value: initial},
	}
}

// Begin moves the resource into loading. The previous value stays visible.
func (r *Resource[T]) Begin() Ticket {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.gen++
	if !r.closed {
		r.snap.Status = StatusLoading
		r.snap.Err = nil
	}
	return Ticket(r.gen)
}

func (r *Resource[T]) Resolve(t Ticket, v T) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.currentLocked(t) {
		return false
	}
	r.snap = Snapshot[T]{Status: StatusLoaded, Value: v, UpdatedAt: time.Now()}
	return true
}

// Fail records err and keeps the last good value.
func (r *Resource[T]) Fail(t Ticket, err error) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.currentLocked(t) {
		return false
	}
	r.snap.Status = StatusError
	r.snap.Err = err
	r.snap.UpdatedAt = time.Now()
	return true
}

// Reset puts the resource back to idle with v and invalidates in-flight loads.
func (r *Resource[T]) Reset(v T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.gen++
	if r.closed {
		return
	}
	r.snap = Snapshot[T]{Status: StatusIdle, Value: v, UpdatedAt: time.Now()}
}

// Mutate applies fn to the current value without touching the status or the
// generation. Used for optimistic updates.
func (r *Resource[T]) Mutate(fn func(T) T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.snap.Value = fn(r.snap.Value)
}

func (r *Resource[T]) Snapshot() Snapshot[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snap
}

func (r *Resource[T]) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.gen++
}

func (r *Resource[T]) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

func (r *Resource[T]) currentLocked(t Ticket) bool {
	return !r.closed && uint64(t) == r.gen
}
