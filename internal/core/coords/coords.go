// Package coords defines slide coordinates: the path of child indices that
// addresses a slide from the root of a deck.
package coords

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformed is returned when text or route params cannot be read as a
// coordinate.
var ErrMalformed = errors.New("malformed coordinate")

// KeySeparator joins coordinate components in map keys.
const KeySeparator = "."

// Coordinate is the ordered path of child indices from the deck root.
// Root slides are 0, 1, 2, ... and children are numbered the same way.
type Coordinate []int

// Compare orders coordinates lexicographically. A coordinate that is a strict
// prefix of another sorts before it, so an ancestor precedes its first
// descendant, matching depth-first pre-order.
func Compare(a, b Coordinate) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}

	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// Equal reports whether a and b have the same length and components.
func Equal(a, b Coordinate) bool {
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

// Key returns the map key for c ("0.1"). The empty coordinate keys to "".
func (c Coordinate) Key() string {
	return c.Join(KeySeparator)
}

// Join renders c with the given separator.
func (c Coordinate) Join(sep string) string {
	parts := make([]string, len(c))
	for i, v := range c {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, sep)
}

// String implements fmt.Stringer.
func (c Coordinate) String() string {
	return "[" + c.Join(" ") + "]"
}

// Prefix returns the first n components of c, or c itself when it is shorter.
func (c Coordinate) Prefix(n int) Coordinate {
	if n < 0 {
		n = 0
	}
	if n >= len(c) {
		return c
	}
	return c[:n]
}

// Clone returns a copy of c that does not share its backing array.
func (c Coordinate) Clone() Coordinate {
	if c == nil {
		return nil
	}
	out := make(Coordinate, len(c))
	copy(out, c)
	return out
}

// Parse reads a coordinate written with "." or "/" separators ("1.2", "1/2").
// Surrounding whitespace and separators are ignored; "" is the empty
// coordinate.
func Parse(s string) (Coordinate, error) {
	s = strings.Trim(strings.TrimSpace(s), "./")
	if s == "" {
		return Coordinate{}, nil
	}

	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '.' || r == '/'
	})

	c := make(Coordinate, 0, len(fields))
	for _, f := range fields {
		v, err := component(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrMalformed, s)
		}
		c = append(c, v)
	}
	return c, nil
}

// ParamName is the route param name of the i-th (0-based) component.
func ParamName(i int) string {
	return "c" + strconv.Itoa(i+1)
}

// FromParams reads route params named c1..cN positionally. A gap in the
// sequence, a non-integer or a negative value makes the params malformed.
func FromParams(params map[string]string) (Coordinate, error) {
	c := make(Coordinate, 0, len(params))
	for i := 0; i < len(params); i++ {
		raw, ok := params[ParamName(i)]
		if !ok {
			return nil, fmt.Errorf("%w: missing param %s", ErrMalformed, ParamName(i))
		}
		v, err := component(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: param %s=%q", ErrMalformed, ParamName(i), raw)
		}
		c = append(c, v)
	}
	return c, nil
}

// Params is the inverse of FromParams.
func (c Coordinate) Params() map[string]string {
	params := make(map[string]string, len(c))
	for i, v := range c {
		params[ParamName(i)] = strconv.Itoa(v)
	}
	return params
}

func component(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("negative component %d", v)
	}
	return v, nil
}
