package presenter

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/hay-kot/podium/internal/core/coords"
	"github.com/hay-kot/podium/internal/core/deck"
	"github.com/hay-kot/podium/internal/core/nav"
	"github.com/hay-kot/podium/internal/core/router"
)

type harness struct {
	store  *Store
	router *router.Router
	ctrl   *Controller
}

func newHarness(t *testing.T, tree deck.Slides, overview string) *harness {
	t.Helper()

	store := NewStore(zerolog.Nop(), StoreOptions{TocDepth: 1})
	require.NoError(t, store.SetSlides(tree))

	r := router.New(zerolog.Nop())
	t.Cleanup(r.Close)

	return &harness{
		store:  store,
		router: r,
		ctrl:   NewController(store, r, zerolog.Nop(), ControllerOptions{OverviewID: overview}),
	}
}

// settle resolves every queued route, the way the view loop does on later
// turns.
func (h *harness) settle(t *testing.T) {
	t.Helper()
	for {
		r, ok := h.router.TryNext()
		if !ok {
			return
		}
		_ = h.store.ResolveRoute(r)
	}
}

func (h *harness) goTo(t *testing.T, path string) {
	t.Helper()
	_, err := h.router.NavigateURL(path)
	require.NoError(t, err)
	h.settle(t)
}

func (h *harness) current() string {
	if s := h.store.CurrentSlide(); s != nil {
		return s.ID
	}
	return "<nil>"
}

func TestController_NavigateToNext(t *testing.T) {
	h := newHarness(t, sampleDeck(), "")
	h.goTo(t, "/slide/0/0")

	assert.True(t, h.ctrl.NavigateToNext(nav.KeepNone, ""))
	assert.Equal(t, "a1", h.current(), "cursor moves only after the route is resolved")

	h.settle(t)
	assert.Equal(t, "a2", h.current())
	assert.Equal(t, "/slide/0/1", h.router.Current().Path())
}

func TestController_BoundariesAreNoOps(t *testing.T) {
	h := newHarness(t, sampleDeck(), "")

	h.goTo(t, "/slide/0")
	assert.False(t, h.ctrl.NavigateToPrevious(nav.KeepNone, ""))
	assert.Equal(t, 0, h.router.Pending())

	h.goTo(t, "/slide/1")
	assert.False(t, h.ctrl.NavigateToNext(nav.KeepNone, ""))
	assert.Equal(t, 0, h.router.Pending())
	assert.Equal(t, "b", h.current())
}

func TestController_NoCurrentSlide(t *testing.T) {
	h := newHarness(t, sampleDeck(), "")

	assert.False(t, h.ctrl.NavigateToNext(nav.KeepNone, ""))
	assert.False(t, h.ctrl.NavigateToNextToc(""))
	assert.True(t, h.ctrl.NavigateToFirst(""))

	h.settle(t)
	assert.Equal(t, "a", h.current())
	assert.Equal(t, nav.ModeSlide, h.store.CurrentMode())
}

func TestController_Toc(t *testing.T) {
	h := newHarness(t, sampleDeck(), "")
	h.goTo(t, "/slide/0/0")

	assert.True(t, h.ctrl.NavigateToNextToc(""))
	h.settle(t)
	assert.Equal(t, "b", h.current())

	assert.True(t, h.ctrl.NavigateToPreviousToc(""))
	h.settle(t)
	assert.Equal(t, "a", h.current())

	assert.False(t, h.ctrl.NavigateToPreviousToc(""))
}

func TestController_ModeFallback(t *testing.T) {
	h := newHarness(t, sampleDeck(), "")
	h.goTo(t, "/presenter/0")

	h.ctrl.NavigateToNext(nav.KeepNone, "")
	h.settle(t)
	assert.Equal(t, nav.ModePresenter, h.store.CurrentMode())

	h.ctrl.NavigateToNext(nav.KeepNone, nav.ModeSlide)
	h.settle(t)
	assert.Equal(t, nav.ModeSlide, h.store.CurrentMode())
	assert.Equal(t, "a2", h.current())
}

func TestController_NavigateAbsolute(t *testing.T) {
	h := newHarness(t, sampleDeck(), "")

	assert.False(t, h.ctrl.NavigateAbsolute(nav.AtCoordinate(coords.Coordinate{4}), ""))
	assert.False(t, h.ctrl.NavigateAbsolute(nav.Target{}, ""))
	assert.Equal(t, 0, h.router.Pending())

	assert.True(t, h.ctrl.NavigateAbsolute(nav.AtCoordinate(coords.Coordinate{0, 1}), nav.ModePresenter))
	h.settle(t)
	assert.Equal(t, "a2", h.current())
	assert.Equal(t, nav.ModePresenter, h.store.CurrentMode())
}

func TestController_NavigateAbsolute_RoundTrip(t *testing.T) {
	tree := deck.Slides{
		{ID: "a", Children: []*deck.Slide{{ID: "a1"}, {ID: "a2", Children: []*deck.Slide{{ID: "a2x"}}}}},
		{ID: "b"},
		{ID: "c", Children: []*deck.Slide{{ID: "c1"}}},
	}
	h := newHarness(t, tree, "")
	slides := h.store.Slides()

	rapid.Check(t, func(rt *rapid.T) {
		target := rapid.SampledFrom(slides).Draw(rt, "target")
		mode := rapid.SampledFrom([]nav.Mode{"", nav.ModeSlide, nav.ModePresenter}).Draw(rt, "mode")

		if !h.ctrl.NavigateAbsolute(nav.AtCoordinate(target.Coordinates), mode) {
			rt.Fatalf("navigation to %v was not issued", target.Coordinates)
		}
		h.settle(t)

		got := h.store.CurrentSlide()
		if got == nil || !coords.Equal(got.Coordinates, target.Coordinates) {
			rt.Fatalf("cursor at %v, want %v", got, target.Coordinates)
		}
	})
}

func TestController_QueryParamsMerged(t *testing.T) {
	h := newHarness(t, sampleDeck(), "")
	h.goTo(t, "/slide/0?notes=off")

	h.ctrl.NavigateToNext(nav.KeepNone, "")
	h.settle(t)

	assert.Equal(t, "/slide/0/0?notes=off", h.router.Current().Path())
}

func TestController_Overview(t *testing.T) {
	h := newHarness(t, sampleDeck(), "a2")
	h.goTo(t, "/presenter/1")

	assert.True(t, h.ctrl.NavigateToOverview())
	h.settle(t)
	assert.Equal(t, "a2", h.current())
	assert.Equal(t, nav.ModePresenter, h.store.CurrentMode())
}

func TestController_OverviewMissing(t *testing.T) {
	for _, id := range []string{"", "nope"} {
		h := newHarness(t, sampleDeck(), id)
		h.goTo(t, "/slide/1")

		assert.False(t, h.ctrl.NavigateToOverview())
		assert.Equal(t, 0, h.router.Pending())
	}
}

func TestController_TogglePresenter(t *testing.T) {
	h := newHarness(t, sampleDeck(), "")
	h.goTo(t, "/slide/0/1")

	h.ctrl.TogglePresenter()
	h.settle(t)
	assert.Equal(t, nav.ModePresenter, h.store.CurrentMode())
	assert.Equal(t, "a2", h.current())

	h.ctrl.TogglePresenter()
	h.settle(t)
	assert.Equal(t, nav.ModeSlide, h.store.CurrentMode())
	assert.Equal(t, "a2", h.current())
}

func TestController_TogglePresenter_NoCurrentSlide(t *testing.T) {
	h := newHarness(t, sampleDeck(), "")

	h.ctrl.TogglePresenter()
	assert.Equal(t, "/presenter", h.router.Current().Path())

	h.settle(t)
	assert.Nil(t, h.store.CurrentSlide())
	assert.Equal(t, nav.ModePresenter, h.store.CurrentMode())
}
