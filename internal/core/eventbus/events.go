// Package eventbus provides typed publish/subscribe topics used as the
// change feeds between the navigation store, its controllers and the view.
//
// Delivery is synchronous: Publish returns after every subscriber ran, so a
// single event is processed to completion before the next one is handled.
package eventbus

// Event names a topic.
type Event string

// Topic names used by podium. Keep list sorted A-Z.
const (
	EventDeckLoaded   Event = "deck.loaded"
	EventKeyPressed   Event = "key.pressed"
	EventStateChanged Event = "state.changed"
)
