package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/hay-kot/podium/internal/core/coords"
	"github.com/hay-kot/podium/internal/core/deck"
)

// scenario is root[A[A1, A2], B].
func scenario() []*deck.Slide {
	return deck.Flatten(deck.Slides{
		{ID: "a", Children: []*deck.Slide{{ID: "a1"}, {ID: "a2"}}},
		{ID: "b"},
	})
}

// sections is root[A[A1, A2], B[B1, B2[B2a]], C].
func sections() deck.Slides {
	return deck.Slides{
		{ID: "a", Children: []*deck.Slide{{ID: "a1"}, {ID: "a2"}}},
		{ID: "b", Children: []*deck.Slide{
			{ID: "b1"},
			{ID: "b2", Children: []*deck.Slide{{ID: "b2a"}}},
		}},
		{ID: "c"},
	}
}

func id(s *deck.Slide) string {
	if s == nil {
		return "<nil>"
	}
	return s.ID
}

func TestRelative_Scenario(t *testing.T) {
	slides := scenario()
	a1 := deck.FindByID(slides, "a1")

	assert.Equal(t, "a2", id(Relative(slides, a1, 1, KeepNone, 2)))
	assert.Equal(t, "a", id(Relative(slides, a1, -1, KeepNone, 2)))
	assert.Equal(t, "b", id(Relative(slides, a1, 2, KeepNone, 2)))
}

func TestRelative_Boundaries(t *testing.T) {
	slides := scenario()

	assert.Nil(t, Relative(slides, First(slides), -1, KeepNone, 2))
	assert.Nil(t, Relative(slides, Last(slides), 1, KeepNone, 2))
	assert.Nil(t, Relative(slides, First(slides), -1, 1, 2))
	assert.Nil(t, Relative(slides, Last(slides), 1, 1, 2))
}

func TestRelative_NoCurrent(t *testing.T) {
	slides := scenario()

	assert.Nil(t, Relative(slides, nil, 1, KeepNone, 2))
	assert.Nil(t, Relative(nil, slides[0], 1, KeepNone, 2))

	stranger := &deck.Slide{Coordinates: coords.Coordinate{9}}
	assert.Nil(t, Relative(slides, stranger, 1, KeepNone, 2))
}

func TestRelative_KeepSection(t *testing.T) {
	tree := sections()
	slides := deck.Flatten(tree)
	depth := deck.MaxDepth(tree)
	at := func(name string) *deck.Slide { return deck.FindByID(slides, name) }

	tests := []struct {
		name string
		from string
		move int
		want string
	}{
		{name: "forward inside group", from: "a1", move: 1, want: "a2"},
		{name: "forward across group lands on next head", from: "a2", move: 1, want: "b"},
		{name: "backward inside group", from: "b2a", move: -1, want: "b2"},
		{name: "backward to own head", from: "b1", move: -1, want: "b"},
		{name: "backward across group lands on previous head", from: "b", move: -1, want: "a"},
		{name: "backward from singleton group", from: "c", move: -1, want: "b"},
		{name: "two steps back across two groups", from: "c", move: -2, want: "a"},
		{name: "two steps forward", from: "a2", move: 2, want: "b1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, id(Relative(slides, at(tt.from), tt.move, 1, depth)))
		})
	}
}

func TestRelative_KeepDegeneratesToLinear(t *testing.T) {
	tree := sections()
	slides := deck.Flatten(tree)
	depth := deck.MaxDepth(tree)

	for _, keep := range []int{0, depth, depth + 3} {
		for i, s := range slides {
			got := Relative(slides, s, -1, keep, depth)
			if i == 0 {
				assert.Nil(t, got)
				continue
			}
			assert.Same(t, slides[i-1], got, "keep=%d from %s", keep, s.ID)
		}
	}
}

func TestRelative_LinearMatchesIndex(t *testing.T) {
	slides := deck.Flatten(sections())

	rapid.Check(t, func(t *rapid.T) {
		i := rapid.IntRange(0, len(slides)-1).Draw(t, "i")
		move := rapid.IntRange(-len(slides), len(slides)).Draw(t, "move")

		got := Relative(slides, slides[i], move, KeepNone, 3)
		j := i + move
		if j < 0 || j >= len(slides) {
			if got != nil {
				t.Fatalf("expected nil for out of range move %d from %d", move, i)
			}
			return
		}
		if got != slides[j] {
			t.Fatalf("move %d from %d: got %v", move, i, got)
		}
	})
}

func TestRelative_ForwardWithKeepIsLinear(t *testing.T) {
	tree := sections()
	slides := deck.Flatten(tree)

	for i := 0; i < len(slides)-1; i++ {
		assert.Same(t, slides[i+1], Relative(slides, slides[i], 1, 1, deck.MaxDepth(tree)))
	}
}

func TestNextToc(t *testing.T) {
	slides := scenario()
	toc := deck.TocSlides(slides, 1)
	a1 := deck.FindByID(slides, "a1")

	assert.Equal(t, "b", id(NextToc(Forward, a1, toc)))
	assert.Equal(t, "a", id(NextToc(Backward, a1, toc)))

	b := deck.FindByID(slides, "b")
	assert.Nil(t, NextToc(Forward, b, toc))
	assert.Equal(t, "a", id(NextToc(Backward, b, toc)))

	a := deck.FindByID(slides, "a")
	assert.Nil(t, NextToc(Backward, a, toc))
	assert.Nil(t, NextToc(Forward, nil, toc))
}

func TestFirstLast(t *testing.T) {
	slides := scenario()

	assert.Equal(t, "a", id(First(slides)))
	assert.Equal(t, "b", id(Last(slides)))
	assert.Nil(t, First(nil))
	assert.Nil(t, Last(nil))
}

func TestResolve(t *testing.T) {
	slides := scenario()

	got := Resolve(slides, AtCoordinate(coords.Coordinate{0, 1}))
	require.NotNil(t, got)
	assert.Equal(t, "a2", got.ID)

	assert.Nil(t, Resolve(slides, AtCoordinate(coords.Coordinate{5})))
	assert.Same(t, slides[3], Resolve(slides, AtSlide(slides[3])))
	assert.Nil(t, Resolve(slides, AtSlide(nil)))
	assert.Nil(t, Resolve(slides, Target{}))
}

func TestMode(t *testing.T) {
	m, ok := ParseMode("presenter")
	assert.True(t, ok)
	assert.Equal(t, ModePresenter, m)

	_, ok = ParseMode("speaker")
	assert.False(t, ok)

	assert.Equal(t, ModeSlide, ModePresenter.Toggle())
	assert.Equal(t, ModePresenter, ModeSlide.Toggle())
	assert.Equal(t, ModePresenter, Mode("").Toggle())

	assert.Equal(t, ModePresenter, EffectiveMode(ModePresenter, ModeSlide))
	assert.Equal(t, ModePresenter, EffectiveMode("", ModePresenter))
	assert.Equal(t, ModeSlide, EffectiveMode("", ""))
}
