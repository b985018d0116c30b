// Package nav computes navigation targets over a flattened deck.
//
// Every function here is pure. "No target" (deck start or end, unknown
// coordinate, empty deck) is reported as a nil slide, never as an error:
// pressing next on the last slide is an ordinary thing to do.
package nav

import (
	"github.com/hay-kot/podium/internal/core/coords"
	"github.com/hay-kot/podium/internal/core/deck"
)

// Mode is the navigation context a slide is shown in.
type Mode string

const (
	ModeSlide     Mode = "slide"
	ModePresenter Mode = "presenter"
)

// ParseMode returns the mode for a route segment. Unknown tokens are not a
// mode.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeSlide, ModePresenter:
		return Mode(s), true
	default:
		return "", false
	}
}

// Toggle flips between slide and presenter. An undefined mode toggles to
// presenter.
func (m Mode) Toggle() Mode {
	if m == ModePresenter {
		return ModeSlide
	}
	return ModePresenter
}

// EffectiveMode picks the mode for a navigation: an explicit mode wins, then
// the current one, then ModeSlide.
func EffectiveMode(explicit, current Mode) Mode {
	switch {
	case explicit != "":
		return explicit
	case current != "":
		return current
	default:
		return ModeSlide
	}
}

// Direction selects which way NextToc scans.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// KeepNone disables depth retention in Relative: the move is a plain index
// offset. The arrow keys use it.
const KeepNone = -1

// Relative returns the slide move steps away from current.
//
// With keep < 0 the result is slides[index+move]. With keep >= 0 the first
// keep coordinate components form the current group: steps inside the group
// go to the adjacent slide, and a step that crosses into another group lands
// on the first entry of that group. Moving forward that is the adjacent
// slide; moving backward it is the previous group's head rather than its
// last entry. keep == 0 and keep >= maxDepth put every slide in one group
// or in its own group, so both behave like keep < 0.
func Relative(slides []*deck.Slide, current *deck.Slide, move, keep, maxDepth int) *deck.Slide {
	if current == nil || len(slides) == 0 {
		return nil
	}

	index := deck.IndexOf(slides, current.Coordinates)
	if index < 0 {
		return nil
	}

	if keep < 0 || keep == 0 || keep >= maxDepth {
		target := index + move
		if target < 0 || target >= len(slides) {
			return nil
		}
		return slides[target]
	}

	step := 1
	if move < 0 {
		step = -1
		move = -move
	}

	for range move {
		next := index + step
		if next < 0 || next >= len(slides) {
			return nil
		}

		group := slides[index].Coordinates.Prefix(keep)
		nextGroup := slides[next].Coordinates.Prefix(keep)
		if step < 0 && !coords.Equal(group, nextGroup) {
			next = groupHead(slides, next, keep)
		}
		index = next
	}

	return slides[index]
}

// groupHead walks back from i to the first slide sharing its keep-prefix.
// Groups are contiguous in pre-order.
func groupHead(slides []*deck.Slide, i, keep int) int {
	group := slides[i].Coordinates.Prefix(keep)
	for i > 0 && coords.Equal(slides[i-1].Coordinates.Prefix(keep), group) {
		i--
	}
	return i
}

// NextToc returns the next section entry after current (Forward) or the
// closest one before it (Backward).
func NextToc(direction Direction, current *deck.Slide, toc []*deck.Slide) *deck.Slide {
	if current == nil {
		return nil
	}

	if direction == Forward {
		for _, s := range toc {
			if coords.Compare(s.Coordinates, current.Coordinates) == 1 {
				return s
			}
		}
		return nil
	}

	for i := len(toc) - 1; i >= 0; i-- {
		if coords.Compare(toc[i].Coordinates, current.Coordinates) == -1 {
			return toc[i]
		}
	}
	return nil
}

// First returns the first slide of a flattened deck.
func First(slides []*deck.Slide) *deck.Slide {
	if len(slides) == 0 {
		return nil
	}
	return slides[0]
}

// Last returns the final slide of a flattened deck.
func Last(slides []*deck.Slide) *deck.Slide {
	if len(slides) == 0 {
		return nil
	}
	return slides[len(slides)-1]
}
