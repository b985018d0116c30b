package eventbus

import "sync"

// Hookable is implemented by every Topic; it lets lifecycle hooks be attached
// without knowing the payload type.
type Hookable interface {
	Event() Event
	OnPublish(fn func(Event, any))
	OnSubscribe(fn func(Event))
	OnPanic(fn func(Event, any, any))
}

// hooks holds the lifecycle hook state for a Topic.
type hooks struct {
	mu          sync.RWMutex
	onPublish   []func(Event, any)
	onSubscribe []func(Event)
	onPanic     []func(Event, any, any)
}

// OnPublish registers a hook that fires before a value is delivered.
func (t *Topic[T]) OnPublish(fn func(Event, any)) {
	t.hooks.mu.Lock()
	t.hooks.onPublish = append(t.hooks.onPublish, fn)
	t.hooks.mu.Unlock()
}

// OnSubscribe registers a hook that fires after a subscriber is registered.
func (t *Topic[T]) OnSubscribe(fn func(Event)) {
	t.hooks.mu.Lock()
	t.hooks.onSubscribe = append(t.hooks.onSubscribe, fn)
	t.hooks.mu.Unlock()
}

// OnPanic registers a hook that fires when a subscriber panics.
func (t *Topic[T]) OnPanic(fn func(Event, any, any)) {
	t.hooks.mu.Lock()
	t.hooks.onPanic = append(t.hooks.onPanic, fn)
	t.hooks.mu.Unlock()
}

func (h *hooks) runOnPublish(event Event, payload any) {
	h.mu.RLock()
	fns := make([]func(Event, any), len(h.onPublish))
	copy(fns, h.onPublish)
	h.mu.RUnlock()
	for _, fn := range fns {
		fn(event, payload)
	}
}

func (h *hooks) runOnSubscribe(event Event) {
	h.mu.RLock()
	fns := make([]func(Event), len(h.onSubscribe))
	copy(fns, h.onSubscribe)
	h.mu.RUnlock()
	for _, fn := range fns {
		fn(event)
	}
}

func (h *hooks) runOnPanic(event Event, payload any, recovered any) {
	h.mu.RLock()
	fns := make([]func(Event, any, any), len(h.onPanic))
	copy(fns, h.onPanic)
	h.mu.RUnlock()
	for _, fn := range fns {
		func() {
			defer func() { recover() }() //nolint:errcheck
			fn(event, payload, recovered)
		}()
	}
}
