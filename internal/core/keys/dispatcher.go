package keys

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/hay-kot/podium/internal/core/eventbus"
)

// Dispatcher publishes key events to the enabled policies.
type Dispatcher struct {
	logger zerolog.Logger
	feed   *eventbus.Topic[Event]
	subs   eventbus.Group

	// dispatchMu serializes Dispatch so fired belongs to one event.
	dispatchMu sync.Mutex
	firedMu    sync.Mutex
	fired      []string
}

// NewDispatcher subscribes every policy whose group is enabled. A nil
// enabled map enables all groups.
func NewDispatcher(navigator Navigator, policies []Policy, enabled map[Group]bool, logger zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		feed:   eventbus.NewTopic[Event](eventbus.EventKeyPressed),
	}

	for _, p := range policies {
		if enabled != nil && !enabled[p.Group] {
			continue
		}

		d.subs = append(d.subs, d.feed.Subscribe(false, func(e Event) {
			if !p.Applies(e) {
				return
			}
			d.logger.Debug().Str("policy", p.Name).Int("key", e.KeyCode).Msg("key policy fired")
			d.markFired(p.Name)
			p.Action(navigator)
		}))
	}

	return d
}

// Feed exposes the key feed so other consumers can observe key events.
func (d *Dispatcher) Feed() *eventbus.Topic[Event] {
	return d.feed
}

// Dispatch delivers e to every policy and returns the names of the policies
// that fired.
func (d *Dispatcher) Dispatch(e Event) []string {
	d.dispatchMu.Lock()
	defer d.dispatchMu.Unlock()

	d.firedMu.Lock()
	d.fired = nil
	d.firedMu.Unlock()

	d.feed.Publish(e)

	d.firedMu.Lock()
	defer d.firedMu.Unlock()
	return d.fired
}

func (d *Dispatcher) markFired(name string) {
	d.firedMu.Lock()
	d.fired = append(d.fired, name)
	d.firedMu.Unlock()
}

// Close unsubscribes every policy.
func (d *Dispatcher) Close() {
	d.subs.Close()
	d.subs = nil
}
