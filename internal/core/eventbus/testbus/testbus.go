// Package testbus provides test utilities for event bus topics.
// It records every value published on a topic and offers assertion helpers.
package testbus

import (
	"sync"
	"testing"
	"time"

	"github.com/hay-kot/podium/internal/core/eventbus"
)

// Recorder captures values published on a topic.
type Recorder[T any] struct {
	mu     sync.Mutex
	values []T
	sub    *eventbus.Subscription
}

// Record subscribes to topic and records every value it publishes. With
// replay set the topic's current value is recorded first. The subscription
// is closed when the test completes.
func Record[T any](t *testing.T, topic *eventbus.Topic[T], replay bool) *Recorder[T] {
	t.Helper()

	r := &Recorder[T]{}
	r.sub = topic.Subscribe(replay, r.record)
	t.Cleanup(r.sub.Close)

	return r
}

func (r *Recorder[T]) record(v T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
}

// Values returns a copy of all recorded values.
func (r *Recorder[T]) Values() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]T, len(r.values))
	copy(out, r.values)
	return out
}

// Len returns the number of recorded values.
func (r *Recorder[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.values)
}

// Last returns the most recent value.
func (r *Recorder[T]) Last() (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var zero T
	if len(r.values) == 0 {
		return zero, false
	}
	return r.values[len(r.values)-1], true
}

// Reset clears all recorded values.
func (r *Recorder[T]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = nil
}

// WaitFor blocks until at least n values are recorded or the timeout
// expires. Returns true if the count was reached.
func (r *Recorder[T]) WaitFor(n int, timeout time.Duration) bool {
	deadline := time.After(timeout)
	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()

	for {
		if r.Len() >= n {
			return true
		}
		select {
		case <-deadline:
			return false
		case <-ticker.C:
		}
	}
}

// AssertCount asserts that exactly n values were recorded.
func (r *Recorder[T]) AssertCount(t *testing.T, n int) {
	t.Helper()
	if got := r.Len(); got != n {
		t.Errorf("expected %d published values, got %d", n, got)
	}
}

// WaitUntil blocks until a recorded value satisfies match or the timeout
// expires. Returns true if a match was seen.
func (r *Recorder[T]) WaitUntil(timeout time.Duration, match func(T) bool) bool {
	deadline := time.After(timeout)
	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()

	for {
		for _, v := range r.Values() {
			if match(v) {
				return true
			}
		}
		select {
		case <-deadline:
			return false
		case <-ticker.C:
		}
	}
}
