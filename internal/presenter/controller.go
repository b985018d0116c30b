package presenter

import (
	"github.com/rs/zerolog"

	"github.com/hay-kot/podium/internal/core/coords"
	"github.com/hay-kot/podium/internal/core/deck"
	"github.com/hay-kot/podium/internal/core/nav"
	"github.com/hay-kot/podium/internal/core/router"
)

// Navigator receives navigation requests. *router.Router implements it.
type Navigator interface {
	Navigate(req router.Request) router.Route
}

// ControllerOptions configures a Controller.
type ControllerOptions struct {
	// OverviewID is the id of the slide the overview key jumps to.
	OverviewID string
}

// Controller exposes the named navigation operations. It reads the store
// and issues router requests; it never writes the cursor. The cursor moves
// when the router's route comes back through Store.ResolveRoute.
type Controller struct {
	store      *Store
	navigator  Navigator
	logger     zerolog.Logger
	overviewID string
}

// NewController wires a controller to its store and navigator.
func NewController(store *Store, navigator Navigator, logger zerolog.Logger, opts ControllerOptions) *Controller {
	return &Controller{
		store:      store,
		navigator:  navigator,
		logger:     logger,
		overviewID: opts.OverviewID,
	}
}

// NextSlide returns the slide after the current one, honoring keep.
func (c *Controller) NextSlide(keep int) *deck.Slide {
	return c.relative(1, keep)
}

// PreviousSlide returns the slide before the current one, honoring keep.
func (c *Controller) PreviousSlide(keep int) *deck.Slide {
	return c.relative(-1, keep)
}

func (c *Controller) relative(move, keep int) *deck.Slide {
	st := c.store.State()
	return nav.Relative(st.Slides, st.CurrentSlide, move, keep, st.CoordinatesMaxDepth)
}

// NextToc returns the section entry after (Forward) or before (Backward) the
// current slide.
func (c *Controller) NextToc(direction nav.Direction) *deck.Slide {
	return nav.NextToc(direction, c.store.CurrentSlide(), c.store.TocSlides())
}

// FirstSlide returns the first slide of the deck.
func (c *Controller) FirstSlide() *deck.Slide {
	return nav.First(c.store.Slides())
}

// NavigateToNext requests the next slide. Returns false at the end of the
// deck.
func (c *Controller) NavigateToNext(keep int, mode nav.Mode) bool {
	return c.NavigateAbsolute(nav.AtSlide(c.NextSlide(keep)), mode)
}

// NavigateToPrevious requests the previous slide. Returns false at the start
// of the deck.
func (c *Controller) NavigateToPrevious(keep int, mode nav.Mode) bool {
	return c.NavigateAbsolute(nav.AtSlide(c.PreviousSlide(keep)), mode)
}

// NavigateToNextToc requests the next section entry.
func (c *Controller) NavigateToNextToc(mode nav.Mode) bool {
	return c.NavigateAbsolute(nav.AtSlide(c.NextToc(nav.Forward)), mode)
}

// NavigateToPreviousToc requests the previous section entry.
func (c *Controller) NavigateToPreviousToc(mode nav.Mode) bool {
	return c.NavigateAbsolute(nav.AtSlide(c.NextToc(nav.Backward)), mode)
}

// NavigateToFirst requests the first slide.
func (c *Controller) NavigateToFirst(mode nav.Mode) bool {
	return c.NavigateAbsolute(nav.AtSlide(c.FirstSlide()), mode)
}

// NavigateToOverview requests the configured overview slide. Nothing happens
// when no overview is configured or the deck does not contain it.
func (c *Controller) NavigateToOverview() bool {
	slide := deck.FindByID(c.store.Slides(), c.overviewID)
	if slide == nil {
		c.logger.Debug().Str("overview", c.overviewID).Msg("overview slide not found")
		return false
	}
	return c.NavigateAbsolute(nav.AtSlide(slide), "")
}

// NavigateAbsolute requests target under mode. The mode falls back to the
// current mode and then to slide. Returns false, without issuing a request,
// when the target does not resolve to a slide.
func (c *Controller) NavigateAbsolute(target nav.Target, mode nav.Mode) bool {
	st := c.store.State()

	slide := nav.Resolve(st.Slides, target)
	if slide == nil {
		c.logger.Debug().Msg("no navigation target")
		return false
	}

	c.navigator.Navigate(router.Request{
		ModeSegment:        string(nav.EffectiveMode(mode, st.CurrentMode)),
		CoordinatePath:     slide.Coordinates.Clone(),
		QueryParamHandling: router.QueryMerge,
	})
	return true
}

// TogglePresenter switches between slide and presenter mode and re-requests
// the current coordinate. Without a current slide it requests the bare mode
// route.
func (c *Controller) TogglePresenter() {
	st := c.store.State()

	var path coords.Coordinate
	if st.CurrentSlide != nil {
		path = st.CurrentSlide.Coordinates.Clone()
	}

	c.navigator.Navigate(router.Request{
		ModeSegment:        string(st.CurrentMode.Toggle()),
		CoordinatePath:     path,
		QueryParamHandling: router.QueryMerge,
	})
}
