package eventbus

import (
	"sync"
)

// Topic is a typed feed of values. It remembers the latest value so that a
// subscriber can ask for a replay of the current value before future ones.
type Topic[T any] struct {
	event Event
	hooks hooks

	mu     sync.RWMutex
	subs   map[uint64]func(T)
	order  []uint64
	nextID uint64
	latest T
	has    bool
}

// NewTopic creates an empty topic.
func NewTopic[T any](event Event) *Topic[T] {
	return &Topic[T]{
		event: event,
		subs:  make(map[uint64]func(T)),
	}
}

// Event returns the topic name.
func (t *Topic[T]) Event() Event {
	return t.event
}

// Latest returns the most recently published value.
func (t *Topic[T]) Latest() (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.latest, t.has
}

// Publish records v as the latest value and delivers it to every subscriber
// in subscription order. A panicking subscriber is reported to the OnPanic
// hooks and does not stop delivery to the others.
func (t *Topic[T]) Publish(v T) {
	t.mu.Lock()
	t.latest = v
	t.has = true
	fns := make([]func(T), 0, len(t.order))
	for _, id := range t.order {
		fns = append(fns, t.subs[id])
	}
	t.mu.Unlock()

	t.hooks.runOnPublish(t.event, v)

	for _, fn := range fns {
		t.deliver(fn, v)
	}
}

func (t *Topic[T]) deliver(fn func(T), v T) {
	defer func() {
		if r := recover(); r != nil {
			t.hooks.runOnPanic(t.event, v, r)
		}
	}()
	fn(v)
}

// Subscribe registers fn for future values. With replay set and a value
// already published, fn is first called with the latest value.
//
// The caller owns the returned Subscription and must Close it once it is no
// longer interested.
func (t *Topic[T]) Subscribe(replay bool, fn func(T)) *Subscription {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.subs[id] = fn
	t.order = append(t.order, id)
	latest, has := t.latest, t.has
	t.mu.Unlock()

	t.hooks.runOnSubscribe(t.event)

	if replay && has {
		t.deliver(fn, latest)
	}

	return &Subscription{cancel: func() { t.unsubscribe(id) }}
}

// Subscribers returns the number of live subscriptions.
func (t *Topic[T]) Subscribers() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.subs)
}

func (t *Topic[T]) unsubscribe(id uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.subs, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// Subscription is a handle on a registered subscriber.
type Subscription struct {
	once   sync.Once
	cancel func()
}

// Close removes the subscriber. It is safe to call more than once and on a
// nil Subscription.
func (s *Subscription) Close() {
	if s == nil {
		return
	}
	s.once.Do(s.cancel)
}

// Group closes several subscriptions together.
type Group []*Subscription

// Close closes every subscription in the group.
func (g Group) Close() {
	for _, s := range g {
		s.Close()
	}
}
