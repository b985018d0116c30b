package nav

import (
	"github.com/hay-kot/podium/internal/core/coords"
	"github.com/hay-kot/podium/internal/core/deck"
)

// TargetKind tags the variant held by a Target.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetCoordinate
	TargetSlide
)

// Target is what an absolute navigation points at: a coordinate to look up
// or a slide already taken from the flattened deck.
type Target struct {
	Kind       TargetKind
	Coordinate coords.Coordinate
	Slide      *deck.Slide
}

// AtCoordinate targets the slide with coordinate c.
func AtCoordinate(c coords.Coordinate) Target {
	return Target{Kind: TargetCoordinate, Coordinate: c}
}

// AtSlide targets s. A nil slide is the empty target.
func AtSlide(s *deck.Slide) Target {
	if s == nil {
		return Target{}
	}
	return Target{Kind: TargetSlide, Slide: s}
}

// Resolve turns a target into a slide of the flattened deck. Coordinates are
// matched by equality; a coordinate that is not in the deck resolves to nil.
func Resolve(slides []*deck.Slide, t Target) *deck.Slide {
	switch t.Kind {
	case TargetSlide:
		return t.Slide
	case TargetCoordinate:
		if i := deck.IndexOf(slides, t.Coordinate); i >= 0 {
			return slides[i]
		}
		return nil
	default:
		return nil
	}
}
