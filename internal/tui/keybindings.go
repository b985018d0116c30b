package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hay-kot/podium/internal/core/keys"
)

// Key constants for event handling.
const (
	keyEnter = "enter"
	keyEsc   = "esc"
	keyCtrlC = "ctrl+c"
)

// translateKey turns a terminal key press into the key event the navigation
// policies understand. Keys without a navigation meaning report false.
func translateKey(msg tea.KeyMsg, target keys.Target) (keys.Event, bool) {
	e := keys.Event{Alt: msg.Alt, Target: target}

	switch msg.Type {
	case tea.KeyDown:
		e.KeyCode = keys.CodeDown
	case tea.KeyUp:
		e.KeyCode = keys.CodeUp
	case tea.KeyLeft:
		e.KeyCode = keys.CodeLeft
	case tea.KeyRight:
		e.KeyCode = keys.CodeRight
	case tea.KeyPgDown:
		e.KeyCode = keys.CodePageDown
	case tea.KeyPgUp:
		e.KeyCode = keys.CodePageUp
	case tea.KeyHome:
		e.KeyCode = keys.CodeHome
	case tea.KeyShiftDown:
		e.KeyCode, e.Shift = keys.CodeDown, true
	case tea.KeyShiftUp:
		e.KeyCode, e.Shift = keys.CodeUp, true
	case tea.KeyShiftLeft:
		e.KeyCode, e.Shift = keys.CodeLeft, true
	case tea.KeyShiftRight:
		e.KeyCode, e.Shift = keys.CodeRight, true
	case tea.KeyCtrlDown:
		e.KeyCode, e.Ctrl = keys.CodeDown, true
	case tea.KeyCtrlUp:
		e.KeyCode, e.Ctrl = keys.CodeUp, true
	case tea.KeyCtrlLeft:
		e.KeyCode, e.Ctrl = keys.CodeLeft, true
	case tea.KeyCtrlRight:
		e.KeyCode, e.Ctrl = keys.CodeRight, true
	case tea.KeyCtrlHome:
		e.KeyCode, e.Ctrl = keys.CodeHome, true
	case tea.KeyEnter:
		e.KeyCode = keys.CodeEnter
	case tea.KeyEsc:
		e.KeyCode = keys.CodeEscape
	case tea.KeyBackspace:
		e.KeyCode = keys.CodeBackspace
	case tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return keys.Event{}, false
		}
		switch msg.Runes[0] {
		case 'o':
			e.KeyCode = keys.CodeO
		case 'O':
			e.KeyCode, e.Shift = keys.CodeO, true
		case 'p':
			e.KeyCode = keys.CodeP
		case 'P':
			e.KeyCode, e.Shift = keys.CodeP, true
		default:
			return keys.Event{}, false
		}
	default:
		return keys.Event{}, false
	}

	return e, true
}

// keyMap describes the bindings shown in the help footer. Navigation keys are
// matched by the key policies; these bindings only document them.
type keyMap struct {
	Next      key.Binding
	Previous  key.Binding
	Section   key.Binding
	First     key.Binding
	Overview  key.Binding
	Presenter key.Binding
	Goto      key.Binding
	Notes     key.Binding
	Copy      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func newKeyMap(groups map[keys.Group]bool) keyMap {
	enabled := func(g keys.Group) bool {
		return groups == nil || groups[g]
	}

	km := keyMap{
		Next: key.NewBinding(
			key.WithKeys("right", "down", "pgdown"),
			key.WithHelp("→/↓", "next"),
		),
		Previous: key.NewBinding(
			key.WithKeys("left", "up", "pgup"),
			key.WithHelp("←/↑", "previous"),
		),
		Section: key.NewBinding(
			key.WithKeys("alt+right", "alt+left", "alt+down", "alt+up"),
			key.WithHelp("alt+←/→", "section"),
		),
		First: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "first"),
		),
		Overview: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "overview"),
		),
		Presenter: key.NewBinding(
			key.WithKeys("alt+p"),
			key.WithHelp("alt+p", "presenter"),
		),
		Goto: key.NewBinding(
			key.WithKeys(":", "g"),
			key.WithHelp("g", "go to"),
		),
		Notes: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "notes"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy link"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", keyCtrlC),
			key.WithHelp("q", "quit"),
		),
	}

	km.Next.SetEnabled(enabled(keys.GroupArrows))
	km.Previous.SetEnabled(enabled(keys.GroupArrows))
	km.First.SetEnabled(enabled(keys.GroupArrows))
	km.Section.SetEnabled(enabled(keys.GroupSections))
	km.Overview.SetEnabled(enabled(keys.GroupToggles))
	km.Presenter.SetEnabled(enabled(keys.GroupToggles))

	return km
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Previous, k.Goto, k.Presenter, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Previous, k.First},
		{k.Section, k.Overview, k.Presenter},
		{k.Goto, k.Notes, k.Copy, k.Help, k.Quit},
	}
}
