package commands

import (
	"fmt"

	"github.com/hay-kot/podium/internal/core/config"
	"github.com/hay-kot/podium/internal/core/coords"
	"github.com/hay-kot/podium/internal/core/eventbus"
	"github.com/hay-kot/podium/internal/core/keys"
	"github.com/hay-kot/podium/internal/core/logging"
	"github.com/hay-kot/podium/internal/core/nav"
	"github.com/hay-kot/podium/internal/core/router"
	"github.com/hay-kot/podium/internal/deckfile"
	"github.com/hay-kot/podium/internal/presenter"
	"github.com/hay-kot/podium/internal/tui"
)

// presentation holds the navigation engine for one loaded deck.
type presentation struct {
	cfg        *config.Config
	store      *presenter.Store
	router     *router.Router
	controller *presenter.Controller
	dispatcher *keys.Dispatcher
}

func newPresentation(cfg *config.Config, loaded *deckfile.Deck) (*presentation, error) {
	store := presenter.NewStore(logging.Component("store"), presenter.StoreOptions{
		TocDepth: cfg.Navigation.TocDepth,
	})
	if err := store.SetSlides(loaded.Slides); err != nil {
		return nil, fmt.Errorf("set slides: %w", err)
	}

	r := router.New(logging.Component("router"))
	ctrl := presenter.NewController(store, r, logging.Component("controller"), presenter.ControllerOptions{
		OverviewID: cfg.Navigation.Overview,
	})
	d := keys.NewDispatcher(
		ctrl,
		keys.DefaultPolicies(cfg.Navigation.KeepValue()),
		cfg.Keybindings.Groups(),
		logging.Component("keys"),
	)

	eventbus.RegisterDebugLogger(logging.Component("eventbus"), store.Changes(), d.Feed())

	return &presentation{
		cfg:        cfg,
		store:      store,
		router:     r,
		controller: ctrl,
		dispatcher: d,
	}, nil
}

// start checks the initial route and queues it.
func (p *presentation) start(raw string) error {
	route, err := router.ParsePath(raw)
	if err == nil {
		if _, ok := nav.ParseMode(route.Mode()); !ok {
			err = fmt.Errorf("unknown mode %q", route.Mode())
		} else {
			_, err = coords.FromParams(route.Params)
		}
	}
	if err != nil {
		return fmt.Errorf("%w: start route %q: %w", presenter.ErrMalformedRoute, raw, err)
	}

	_, err = p.router.NavigateURL(raw)
	return err
}

func (p *presentation) deps() tui.Deps {
	return tui.Deps{
		Store:      p.store,
		Controller: p.controller,
		Router:     p.router,
		Dispatcher: p.dispatcher,
		Config:     p.cfg,
		Logger:     logging.Component("tui"),
	}
}

func (p *presentation) Close() {
	p.dispatcher.Close()
	p.router.Close()
}
