// Package keys maps keyboard events to navigation operations.
//
// Each Policy filters the shared key feed on its own: a guard, a key match,
// and an action. Policies are independent subscribers, so any combination can
// be active at once; the default set is built so that at most one fires for
// a given event.
package keys

// Key codes, as reported by browsers' KeyboardEvent.keyCode.
const (
	CodePageUp    = 33
	CodePageDown  = 34
	CodeHome      = 36
	CodeLeft      = 37
	CodeUp        = 38
	CodeRight     = 39
	CodeDown      = 40
	CodeO         = 79
	CodeP         = 80
	CodeEnter     = 13
	CodeEscape    = 27
	CodeBackspace = 8
)

// Target describes the element a key event was aimed at.
type Target struct {
	// Editable is set while a text field has focus.
	Editable bool
	// Navigation is set for elements that handle plain keys themselves
	// (lists, links, buttons).
	Navigation bool
}

// Event is one key press.
type Event struct {
	KeyCode int
	Alt     bool
	Ctrl    bool
	Meta    bool
	Shift   bool
	Target  Target
}

// IsNotEditable passes events whose target is not a text field.
func IsNotEditable(e Event) bool {
	return !e.Target.Editable
}

// NonNavigation passes plain key presses aimed at the presentation itself:
// not a text field, not an element that handles keys, and no Alt, Ctrl or
// Meta modifier.
func NonNavigation(e Event) bool {
	return !e.Target.Editable && !e.Target.Navigation && !e.Alt && !e.Ctrl && !e.Meta
}

// codeIn reports whether e carries one of codes.
func codeIn(e Event, codes ...int) bool {
	for _, c := range codes {
		if e.KeyCode == c {
			return true
		}
	}
	return false
}
