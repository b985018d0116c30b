package tui

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hay-kot/podium/internal/core/coords"
	"github.com/hay-kot/podium/internal/core/deck"
	"github.com/hay-kot/podium/internal/core/keys"
	"github.com/hay-kot/podium/internal/core/logging"
	"github.com/hay-kot/podium/internal/core/nav"
	"github.com/hay-kot/podium/internal/core/router"
	"github.com/hay-kot/podium/internal/deckfile"
	"github.com/hay-kot/podium/internal/presenter"
)

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case routeMsg:
		return m, tea.Batch(m.handleRoute(msg.route), waitForRoute(m.router))

	case routerClosedMsg:
		m.quitting = true
		return m, tea.Quit

	case DeckReloadedMsg:
		cmd := m.handleDeckReload(msg.Update)
		return m, cmd

	case toastTickMsg:
		return m, m.toasts.tick(toastTickInterval)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.prompt.active {
		return m, m.prompt.update(msg)
	}
	return m, nil
}

// handleRoute moves the cursor to route. A bare mode route ("/slide") is
// redirected to the first slide.
func (m Model) handleRoute(route router.Route) tea.Cmd {
	ctx := logging.WithRoute(m.ctx, route.Path())

	if err := m.store.ResolveRoute(route); err != nil {
		m.logger.Warn().Err(err).Ctx(ctx).Msg("resolve route")
		return m.toasts.push(toastError, "invalid location "+route.Path())
	}

	slide := m.store.CurrentSlide()
	if slide == nil {
		if len(route.Params) == 0 {
			m.controller.NavigateToFirst("")
			return nil
		}
		m.logger.Debug().Ctx(ctx).Msg("route names no slide")
		return nil
	}

	m.logger.Debug().Ctx(logging.WithSlide(ctx, slide.ID)).Msg("route resolved")
	return nil
}

func (m *Model) handleDeckReload(u deckfile.Update) tea.Cmd {
	if u.Err != nil {
		return m.toasts.push(toastError, "reload failed: "+u.Err.Error())
	}

	err := m.store.SetSlides(u.Deck.Slides)
	m.markdown.reset()
	if u.Deck.Title != "" {
		m.title = u.Deck.Title
	}

	if errors.Is(err, presenter.ErrCursorOrphaned) {
		m.logger.Error().Err(err).Ctx(m.ctx).Msg("current slide removed by reload")
		m.controller.NavigateToFirst("")
	}

	return m.toasts.push(toastInfo, fmt.Sprintf("reloaded %d slides", deck.Count(u.Deck.Slides)))
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompt.active {
		return m.handlePromptKey(msg)
	}

	switch msg.String() {
	case "q", keyCtrlC:
		return m.quit()
	case "?":
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil
	case ":", "g":
		return m, m.prompt.open()
	case "n":
		m.toggleNotes()
		return m, nil
	case "y":
		return m, m.copyLocation()
	}

	m.dispatch(msg, keys.Target{})
	return m, nil
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.dispatch(msg, keys.Target{Editable: true})

	switch msg.String() {
	case keyCtrlC:
		return m.quit()
	case keyEsc:
		m.prompt.close()
		return m, nil
	case keyEnter:
		value := m.prompt.input.Value()
		target, ok := m.prompt.target()
		m.prompt.close()
		if !ok {
			return m, m.toasts.push(toastError, fmt.Sprintf("no slide at %q", value))
		}
		m.controller.NavigateAbsolute(nav.AtCoordinate(target), "")
		return m, nil
	}

	return m, m.prompt.update(msg)
}

// dispatch hands the key to the navigation policies.
func (m Model) dispatch(msg tea.KeyMsg, target keys.Target) {
	e, ok := translateKey(msg, target)
	if !ok {
		return
	}
	if fired := m.dispatcher.Dispatch(e); len(fired) > 0 {
		m.logger.Debug().Strs("policies", fired).Str("key", msg.String()).Msg("key handled")
	}
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.prompt.close()
	m.router.Close()
	return m, tea.Quit
}

// toggleNotes flips the notes query param on the current location. The
// param survives later navigations because the controller merges queries.
func (m Model) toggleNotes() {
	value := notesOff
	if !m.notesVisible() {
		value = notesOn
	}

	var path coords.Coordinate
	if s := m.store.CurrentSlide(); s != nil {
		path = s.Coordinates.Clone()
	}

	m.router.Navigate(router.Request{
		ModeSegment:        string(nav.EffectiveMode("", m.store.CurrentMode())),
		CoordinatePath:     path,
		QueryParamHandling: router.QueryMerge,
		Query:              map[string]string{queryNotes: value},
	})
}

var clipboardWrite = clipboard.WriteAll

// copyLocation puts the path of the current location on the clipboard.
func (m Model) copyLocation() tea.Cmd {
	path := m.router.Current().Path()
	if err := clipboardWrite(path); err != nil {
		m.logger.Warn().Err(err).Ctx(m.ctx).Msg("copy location")
		return m.toasts.push(toastError, "clipboard: "+err.Error())
	}
	return m.toasts.push(toastInfo, "copied "+path)
}

func (m Model) notesVisible() bool {
	return m.router.Current().Query[queryNotes] != notesOff
}
