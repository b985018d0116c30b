// Package deck holds the slide tree and its flattened, indexed form.
package deck

import (
	"fmt"

	"github.com/hay-kot/podium/internal/core/coords"
)

// Slide is a node in the presentation tree.
type Slide struct {
	// ID is the author-supplied reference used to address a slide from
	// configuration (for example the overview slide). Optional.
	ID    string
	Title string
	// Content is markdown. The navigation engine never looks at it.
	Content string
	Notes   string
	// Toc marks the slide as a section entry regardless of its depth.
	Toc      bool
	Children []*Slide

	// Coordinates is assigned by Flatten and never read from the author tree.
	Coordinates coords.Coordinate
}

// Slides is the author-supplied tree: the list of root slides.
type Slides []*Slide

// Label returns the title, falling back to the id and then the coordinate.
func (s *Slide) Label() string {
	switch {
	case s.Title != "":
		return s.Title
	case s.ID != "":
		return s.ID
	default:
		return s.Coordinates.Key()
	}
}

// Flatten walks tree depth-first in pre-order and returns a copy of every
// node with its coordinates set. Child order is preserved and is the
// navigation order. The input tree is not modified.
func Flatten(tree Slides) []*Slide {
	var out []*Slide
	var walk func(nodes []*Slide, parent coords.Coordinate)

	walk = func(nodes []*Slide, parent coords.Coordinate) {
		for i, node := range nodes {
			c := make(coords.Coordinate, len(parent)+1)
			copy(c, parent)
			c[len(parent)] = i

			flat := *node
			flat.Coordinates = c
			out = append(out, &flat)

			walk(node.Children, c)
		}
	}

	walk(tree, nil)
	return out
}

// SlideMap indexes flattened slides by coordinate key. Two slides with the
// same coordinate cannot come out of Flatten; if they do the input was not a
// tree and SlideMap panics.
func SlideMap(flat []*Slide) map[string]*Slide {
	m := make(map[string]*Slide, len(flat))
	for _, s := range flat {
		key := s.Coordinates.Key()
		if prev, exists := m[key]; exists {
			panic(fmt.Sprintf("deck: coordinate %s assigned to both %q and %q", s.Coordinates, prev.Label(), s.Label()))
		}
		m[key] = s
	}
	return m
}

// MaxDepth returns the longest coordinate length in tree: the node count on
// the longest root-to-leaf path. An empty tree has depth 0.
func MaxDepth(tree Slides) int {
	depth := 0
	for _, node := range tree {
		depth = max(depth, 1+MaxDepth(node.Children))
	}
	return depth
}

// IndexOf returns the position of the slide with coordinate c, or -1.
func IndexOf(flat []*Slide, c coords.Coordinate) int {
	for i, s := range flat {
		if coords.Equal(s.Coordinates, c) {
			return i
		}
	}
	return -1
}

// IsValid reports whether some flattened slide has exactly coordinate c.
func IsValid(flat []*Slide, c coords.Coordinate) bool {
	return IndexOf(flat, c) >= 0
}

// FindByID returns the first flattened slide with the given id. An empty id
// never matches.
func FindByID(flat []*Slide, id string) *Slide {
	if id == "" {
		return nil
	}
	for _, s := range flat {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// TocSlides selects the table-of-contents entries: slides flagged Toc and
// slides whose coordinate is no longer than depth. A depth of zero or less
// selects only flagged slides.
func TocSlides(flat []*Slide, depth int) []*Slide {
	var out []*Slide
	for _, s := range flat {
		if s.Toc || (depth > 0 && len(s.Coordinates) <= depth) {
			out = append(out, s)
		}
	}
	return out
}

// Section returns the table-of-contents entry that contains c: the last toc
// slide at or before c in document order.
func Section(toc []*Slide, c coords.Coordinate) *Slide {
	var found *Slide
	for _, s := range toc {
		if coords.Compare(s.Coordinates, c) > 0 {
			break
		}
		found = s
	}
	return found
}

// Count returns the number of nodes in tree.
func Count(tree Slides) int {
	n := 0
	for _, node := range tree {
		n += 1 + Count(node.Children)
	}
	return n
}
