package presenter

import (
	"github.com/hay-kot/podium/internal/core/coords"
	"github.com/hay-kot/podium/internal/core/deck"
	"github.com/hay-kot/podium/internal/core/eventbus"
	"github.com/hay-kot/podium/internal/core/nav"
)

// CurrentSlide returns the slide under the cursor, or nil.
func (s *Store) CurrentSlide() *deck.Slide {
	return s.State().CurrentSlide
}

// CurrentMode returns the cursor mode, or "" before the first route.
func (s *Store) CurrentMode() nav.Mode {
	return s.State().CurrentMode
}

// Slides returns the flattened deck.
func (s *Store) Slides() []*deck.Slide {
	return s.State().Slides
}

// IsValidCoordinate reports whether c addresses a slide of the current deck.
func (s *Store) IsValidCoordinate(c coords.Coordinate) bool {
	return deck.IsValid(s.State().Slides, c)
}

// TocSlides returns the section entries of the current deck.
func (s *Store) TocSlides() []*deck.Slide {
	return deck.TocSlides(s.State().Slides, s.tocDepth)
}

// Position returns the 1-based index of the current slide and the deck size.
// The index is 0 when there is no current slide.
func (s *Store) Position() (int, int) {
	return position(s.State())
}

func position(st State) (int, int) {
	if st.CurrentSlide == nil {
		return 0, len(st.Slides)
	}
	return deck.IndexOf(st.Slides, st.CurrentSlide.Coordinates) + 1, len(st.Slides)
}

// Subscribe delivers every state change. With replay set the current state
// is delivered first.
func (s *Store) Subscribe(replay bool, fn func(State)) *eventbus.Subscription {
	return s.changes.Subscribe(replay, fn)
}

// WatchCurrentSlide delivers the current slide whenever it changes. A deck
// reload that replaces the slide at the cursor counts as a change.
func (s *Store) WatchCurrentSlide(replay bool, fn func(*deck.Slide)) *eventbus.Subscription {
	return eventbus.SelectComparable(s.changes, replay, func(st State) *deck.Slide {
		return st.CurrentSlide
	}, fn)
}

// WatchCurrentMode delivers the cursor mode whenever it changes.
func (s *Store) WatchCurrentMode(replay bool, fn func(nav.Mode)) *eventbus.Subscription {
	return eventbus.SelectComparable(s.changes, replay, func(st State) nav.Mode {
		return st.CurrentMode
	}, fn)
}

// WatchValid delivers whether c is part of the deck whenever that changes.
func (s *Store) WatchValid(c coords.Coordinate, replay bool, fn func(bool)) *eventbus.Subscription {
	return eventbus.SelectComparable(s.changes, replay, func(st State) bool {
		return deck.IsValid(st.Slides, c)
	}, fn)
}

// WatchToc delivers the section entries whenever the deck changes them.
func (s *Store) WatchToc(replay bool, fn func([]*deck.Slide)) *eventbus.Subscription {
	return eventbus.Select(s.changes, replay, func(st State) []*deck.Slide {
		return deck.TocSlides(st.Slides, s.tocDepth)
	}, sameSlides, fn)
}

func sameSlides(a, b []*deck.Slide) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
