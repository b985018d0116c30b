// Package presenter owns the navigation state of a running presentation:
// the flattened deck, the navigation cursor, and the controller that turns
// navigation intents into router requests.
package presenter

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hay-kot/podium/internal/core/coords"
	"github.com/hay-kot/podium/internal/core/deck"
	"github.com/hay-kot/podium/internal/core/eventbus"
	"github.com/hay-kot/podium/internal/core/nav"
	"github.com/hay-kot/podium/internal/core/router"
)

var (
	// ErrCursorOrphaned is returned by SetSlides when the new deck no longer
	// contains the current slide's coordinate. The cursor is cleared.
	ErrCursorOrphaned = errors.New("current slide is not part of the new deck")

	// ErrMalformedRoute is returned by ResolveRoute when the route does not
	// name a mode and a coordinate. The cursor is cleared.
	ErrMalformedRoute = errors.New("malformed route")
)

// State is the navigation record. Slides and SlideMap are shared with the
// store and must be treated as read-only.
type State struct {
	CoordinatesMaxDepth int
	Slides              []*deck.Slide
	SlideMap            map[string]*deck.Slide
	CurrentSlide        *deck.Slide
	CurrentMode         nav.Mode
}

// StoreOptions configures a Store.
type StoreOptions struct {
	// TocDepth is the coordinate length that counts as a section entry.
	TocDepth int
}

// Store holds the navigation State. Only SetSlides writes the flattened
// deck and only ResolveRoute writes the cursor; every other access is a
// read-only projection.
type Store struct {
	logger   zerolog.Logger
	tocDepth int

	mu    sync.RWMutex
	state State

	changes *eventbus.Topic[State]

	// Snapshots wait in pending, in mutation order, until one drainer
	// publishes them with no lock held, so subscribers may call back in.
	pubMu    sync.Mutex
	pending  []State
	draining bool
}

// NewStore creates an empty store.
func NewStore(logger zerolog.Logger, opts StoreOptions) *Store {
	s := &Store{
		logger:   logger,
		tocDepth: opts.TocDepth,
		state:    State{SlideMap: map[string]*deck.Slide{}},
		changes:  eventbus.NewTopic[State](eventbus.EventStateChanged),
	}
	// seed the feed so replay subscriptions made before any mutation still
	// receive the empty state
	s.changes.Publish(s.state)
	return s
}

// Changes exposes the raw state feed, mostly for hooking debug logging.
func (s *Store) Changes() *eventbus.Topic[State] {
	return s.changes
}

// SetSlides replaces the deck. Depth, flattened slides and map are computed
// before the state is swapped, so readers see either the old deck or the new
// one. The cursor is carried over by coordinate.
func (s *Store) SetSlides(tree deck.Slides) error {
	depth := deck.MaxDepth(tree)
	flat := deck.Flatten(tree)
	slideMap := deck.SlideMap(flat)

	var err error

	s.mu.Lock()
	current := s.state.CurrentSlide
	if current != nil {
		next, ok := slideMap[current.Coordinates.Key()]
		if !ok {
			err = fmt.Errorf("%w: %s", ErrCursorOrphaned, current.Coordinates.Key())
		}
		current = next
	}
	s.state = State{
		CoordinatesMaxDepth: depth,
		Slides:              flat,
		SlideMap:            slideMap,
		CurrentSlide:        current,
		CurrentMode:         s.state.CurrentMode,
	}
	s.enqueue(s.state)
	s.mu.Unlock()

	s.logger.Debug().
		Int("slides", len(flat)).
		Int("depth", depth).
		Msg("deck updated")

	s.drain()
	return err
}

// ResolveRoute moves the cursor to the slide and mode named by route. A
// route whose mode is unknown or whose params are not a coordinate clears
// the cursor. A well-formed coordinate that is not in the deck sets the mode
// and leaves no current slide.
func (s *Store) ResolveRoute(route router.Route) error {
	var (
		slide *deck.Slide
		mode  nav.Mode
		err   error
	)

	c, parseErr := coords.FromParams(route.Params)
	m, ok := nav.ParseMode(route.Mode())
	switch {
	case parseErr != nil:
		err = fmt.Errorf("%w: %s: %w", ErrMalformedRoute, route.Path(), parseErr)
	case !ok:
		err = fmt.Errorf("%w: %s: unknown mode %q", ErrMalformedRoute, route.Path(), route.Mode())
	default:
		mode = m
	}

	s.mu.Lock()
	if err == nil {
		slide = s.state.SlideMap[c.Key()]
	}
	s.state.CurrentSlide = slide
	s.state.CurrentMode = mode
	s.enqueue(s.state)
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn().Err(err).Msg("route not resolved")
	} else {
		s.logger.Debug().
			Str("path", route.Path()).
			Bool("found", slide != nil).
			Msg("route resolved")
	}

	s.drain()
	return err
}

// enqueue queues a snapshot for publication. Callers hold mu so the queue
// order matches the order of mutations.
func (s *Store) enqueue(st State) {
	s.pubMu.Lock()
	s.pending = append(s.pending, st)
	s.pubMu.Unlock()
}

// drain publishes queued snapshots. A mutation made by a subscriber, or by
// another goroutine while a drain is running, is queued and delivered by the
// running drainer after the current delivery returns.
func (s *Store) drain() {
	s.pubMu.Lock()
	if s.draining {
		s.pubMu.Unlock()
		return
	}
	s.draining = true

	for len(s.pending) > 0 {
		next := s.pending[0]
		s.pending = s.pending[1:]
		s.pubMu.Unlock()

		s.changes.Publish(next)

		s.pubMu.Lock()
	}

	s.draining = false
	s.pubMu.Unlock()
}

// State returns a snapshot of the navigation record.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}
