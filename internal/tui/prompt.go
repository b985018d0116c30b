package tui

import (
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hay-kot/podium/internal/core/coords"
	"github.com/hay-kot/podium/internal/core/eventbus"
	"github.com/hay-kot/podium/internal/core/styles"
)

// validityFeed reports whether a coordinate is part of the deck, now and
// after every change.
type validityFeed func(c coords.Coordinate, replay bool, fn func(bool)) *eventbus.Subscription

// gotoPrompt is the ":" input that jumps to a typed coordinate. While it is
// open, key events are reported with an editable target, so the navigation
// policies ignore them.
type gotoPrompt struct {
	input     textinput.Model
	active    bool
	separator string

	watch   validityFeed
	watched coords.Coordinate
	sub     *eventbus.Subscription
	// valid is shared by copies of the model and written by the feed.
	valid *atomic.Bool
}

func newGotoPrompt(separator string, watch validityFeed) gotoPrompt {
	ti := textinput.New()
	ti.Prompt = "go to: "
	ti.Placeholder = "1" + separator + "0"
	ti.CharLimit = 32
	ti.PromptStyle = styles.PromptStyle
	return gotoPrompt{input: ti, separator: separator, watch: watch, valid: &atomic.Bool{}}
}

func (p *gotoPrompt) open() tea.Cmd {
	p.active = true
	p.input.SetValue("")
	p.follow()
	return p.input.Focus()
}

func (p *gotoPrompt) close() {
	p.active = false
	p.input.Blur()
	p.unwatch()
}

// parse reads the typed value as a coordinate.
func (p *gotoPrompt) parse() (coords.Coordinate, bool) {
	value := p.input.Value()
	if p.separator != "" {
		value = strings.ReplaceAll(value, p.separator, coords.KeySeparator)
	}

	c, err := coords.Parse(value)
	if err != nil || len(c) == 0 {
		return nil, false
	}
	return c, true
}

// follow points the validity subscription at the typed coordinate.
func (p *gotoPrompt) follow() {
	c, ok := p.parse()
	if !ok {
		p.unwatch()
		return
	}
	if p.sub != nil && coords.Equal(c, p.watched) {
		return
	}

	p.unwatch()
	p.watched = c
	p.sub = p.watch(c, true, p.valid.Store)
}

func (p *gotoPrompt) unwatch() {
	p.sub.Close()
	p.sub = nil
	p.watched = nil
	p.valid.Store(false)
}

// target returns the typed coordinate. ok is false when it does not parse or
// does not name a slide of the current deck.
func (p *gotoPrompt) target() (coords.Coordinate, bool) {
	c, ok := p.parse()
	if !ok || p.sub == nil || !coords.Equal(c, p.watched) {
		return nil, false
	}
	return c, p.valid.Load()
}

func (p *gotoPrompt) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	p.follow()
	return cmd
}

func (p *gotoPrompt) view() string {
	if !p.active {
		return ""
	}

	view := p.input.View()
	if p.input.Value() == "" {
		return view
	}
	if _, ok := p.target(); !ok {
		return view + " " + styles.PromptErrorStyle.Render("no such slide")
	}
	return view
}
