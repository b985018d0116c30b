// Package tui is the terminal front-end of a running presentation. It
// renders the store's state, turns key presses into key events for the
// navigation policies, and feeds routes and deck reloads back into the store.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/hay-kot/podium/internal/core/config"
	"github.com/hay-kot/podium/internal/core/keys"
	"github.com/hay-kot/podium/internal/core/logging"
	"github.com/hay-kot/podium/internal/core/router"
	"github.com/hay-kot/podium/internal/core/styles"
	"github.com/hay-kot/podium/internal/deckfile"
	"github.com/hay-kot/podium/internal/presenter"
)

// Query parameter carrying the speaker-notes toggle across navigations.
const (
	queryNotes = "notes"
	notesOff   = "off"
	notesOn    = "on"
)

// Deps are the collaborators the model drives. All are required.
type Deps struct {
	Store      *presenter.Store
	Controller *presenter.Controller
	Router     *router.Router
	Dispatcher *keys.Dispatcher
	Config     *config.Config
	Logger     zerolog.Logger
}

// Options configures the TUI behavior.
type Options struct {
	Title    string // deck title shown in the status bar
	DeckPath string
}

// Model is the main Bubble Tea model for the presentation.
type Model struct {
	store      *presenter.Store
	controller *presenter.Controller
	router     *router.Router
	dispatcher *keys.Dispatcher
	cfg        *config.Config
	logger     zerolog.Logger
	ctx        context.Context

	title    string
	width    int
	height   int
	quitting bool

	prompt   gotoPrompt
	help     help.Model
	keys     keyMap
	showHelp bool
	toasts   *toastController
	markdown *markdownCache
}

// routeMsg carries the next route handed out by the router.
type routeMsg struct {
	route router.Route
}

// routerClosedMsg is sent once the router stops handing out routes.
type routerClosedMsg struct{}

// DeckReloadedMsg carries a deck watcher update into the Update loop.
type DeckReloadedMsg struct {
	Update deckfile.Update
}

// New creates a new TUI model.
func New(deps Deps, opts Options) Model {
	cfg := deps.Config

	h := help.New()
	h.Styles.ShortKey = styles.HeaderStyle
	h.Styles.ShortDesc = styles.CoordinateStyle
	h.Styles.ShortSeparator = styles.DividerStyle
	h.Styles.FullKey = styles.HeaderStyle
	h.Styles.FullDesc = styles.CoordinateStyle
	h.Styles.FullSeparator = styles.DividerStyle

	ctx := context.Background()
	if opts.DeckPath != "" {
		ctx = logging.WithDeck(ctx, opts.DeckPath)
	}

	return Model{
		store:      deps.Store,
		controller: deps.Controller,
		router:     deps.Router,
		dispatcher: deps.Dispatcher,
		cfg:        cfg,
		logger:     deps.Logger,
		ctx:        ctx,
		title:      opts.Title,
		prompt:     newGotoPrompt(cfg.TUI.Separator, deps.Store.WatchValid),
		help:       h,
		keys:       newKeyMap(cfg.Keybindings.Groups()),
		toasts:     &toastController{},
		markdown:   newMarkdownCache(cfg.TUI.MarkdownStyle),
	}
}

// Init starts listening for routes.
func (m Model) Init() tea.Cmd {
	return waitForRoute(m.router)
}

// waitForRoute blocks until the router hands out the next route.
func waitForRoute(r *router.Router) tea.Cmd {
	return func() tea.Msg {
		route, err := r.Next(context.Background())
		if err != nil {
			return routerClosedMsg{}
		}
		return routeMsg{route: route}
	}
}
