package keys

import (
	"github.com/hay-kot/podium/internal/core/nav"
)

// Navigator is the set of navigation operations policies can trigger.
// *presenter.Controller implements it.
type Navigator interface {
	NavigateToNext(keep int, mode nav.Mode) bool
	NavigateToPrevious(keep int, mode nav.Mode) bool
	NavigateToNextToc(mode nav.Mode) bool
	NavigateToPreviousToc(mode nav.Mode) bool
	NavigateToFirst(mode nav.Mode) bool
	NavigateToOverview() bool
	TogglePresenter()
}

// Group names a set of policies that are switched on and off together.
type Group string

const (
	GroupArrows   Group = "arrows"
	GroupSections Group = "sections"
	GroupToggles  Group = "toggles"
)

// Policy binds a guarded key match to one navigation operation.
type Policy struct {
	Name   string
	Group  Group
	Guard  func(Event) bool
	Match  func(Event) bool
	Action func(Navigator)
}

// Applies reports whether the policy fires for e.
func (p Policy) Applies(e Event) bool {
	return p.Guard(e) && p.Match(e)
}

// Policy names.
const (
	PolicySlideForward    = "slide-forward"
	PolicySlideBackward   = "slide-backward"
	PolicySectionForward  = "section-forward"
	PolicySectionBackward = "section-backward"
	PolicyFirstSlide      = "first-slide"
	PolicyOverview        = "overview"
	PolicyTogglePresenter = "toggle-presenter"
)

// DefaultPolicies returns the built-in key policies. keep is the
// coordinates-to-keep value handed to the slide forward/backward moves;
// nav.KeepNone gives plain linear stepping.
func DefaultPolicies(keep int) []Policy {
	return []Policy{
		{
			Name:  PolicySlideForward,
			Group: GroupArrows,
			Guard: NonNavigation,
			// arrow down, arrow right, or page down
			Match: func(e Event) bool { return codeIn(e, CodeDown, CodeRight, CodePageDown) },
			Action: func(n Navigator) {
				n.NavigateToNext(keep, "")
			},
		},
		{
			Name:  PolicySlideBackward,
			Group: GroupArrows,
			Guard: NonNavigation,
			// arrow up, arrow left, or page up
			Match: func(e Event) bool { return codeIn(e, CodeUp, CodeLeft, CodePageUp) },
			Action: func(n Navigator) {
				n.NavigateToPrevious(keep, "")
			},
		},
		{
			Name:   PolicySectionForward,
			Group:  GroupSections,
			Guard:  IsNotEditable,
			Match:  func(e Event) bool { return e.Alt && codeIn(e, CodeDown, CodeRight) },
			Action: func(n Navigator) { n.NavigateToNextToc("") },
		},
		{
			Name:   PolicySectionBackward,
			Group:  GroupSections,
			Guard:  IsNotEditable,
			Match:  func(e Event) bool { return e.Alt && codeIn(e, CodeUp, CodeLeft) },
			Action: func(n Navigator) { n.NavigateToPreviousToc("") },
		},
		{
			Name:   PolicyFirstSlide,
			Group:  GroupArrows,
			Guard:  NonNavigation,
			Match:  func(e Event) bool { return e.KeyCode == CodeHome },
			Action: func(n Navigator) { n.NavigateToFirst("") },
		},
		{
			Name:   PolicyOverview,
			Group:  GroupToggles,
			Guard:  NonNavigation,
			Match:  func(e Event) bool { return e.KeyCode == CodeO },
			Action: func(n Navigator) { n.NavigateToOverview() },
		},
		{
			Name:   PolicyTogglePresenter,
			Group:  GroupToggles,
			Guard:  IsNotEditable,
			Match:  func(e Event) bool { return e.Alt && e.KeyCode == CodeP },
			Action: func(n Navigator) { n.TogglePresenter() },
		},
	}
}
