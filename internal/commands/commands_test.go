package commands

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/podium/internal/core/config"
	"github.com/hay-kot/podium/internal/deckfile"
	"github.com/hay-kot/podium/internal/presenter"
)

const sampleDeck = `title: Sample
slides:
  - id: intro
    title: Intro
    notes: smile
  - id: body
    title: Body
    toc: true
    children:
      - title: Detail
  - id: outro
    title: Outro
`

func loadSample(t *testing.T) *deckfile.Deck {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleDeck), 0o644))

	loaded, err := deckfile.Load(path)
	require.NoError(t, err)
	return loaded
}

func TestBuildOutline(t *testing.T) {
	out := buildOutline(loadSample(t), 0)

	require.Len(t, out.Slides, 4)
	assert.Equal(t, "Sample", out.Title)

	assert.Equal(t, []int{0}, out.Slides[0].Coordinates)
	assert.True(t, out.Slides[0].Notes)
	assert.False(t, out.Slides[0].Toc)

	assert.Equal(t, []int{1}, out.Slides[1].Coordinates)
	assert.True(t, out.Slides[1].Toc)

	assert.Equal(t, []int{1, 0}, out.Slides[2].Coordinates)
	assert.Equal(t, "Detail", out.Slides[2].Title)
	assert.Empty(t, out.Slides[2].ID)
}

func TestBuildOutline_TocDepth(t *testing.T) {
	out := buildOutline(loadSample(t), 1)

	var toc []string
	for _, e := range out.Slides {
		if e.Toc {
			toc = append(toc, e.Title)
		}
	}
	assert.Equal(t, []string{"Intro", "Body", "Outro"}, toc)
}

func TestWriteOutline(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeOutline(&buf, buildOutline(loadSample(t), 0), "/"))

	out := buf.String()
	assert.Contains(t, out, "Sample")
	assert.Contains(t, out, "COORD")
	assert.Contains(t, out, "1/0")
	assert.Contains(t, out, "  Detail")
	assert.Contains(t, out, "§")
}

func TestOutline_JSON(t *testing.T) {
	bits, err := json.Marshal(buildOutline(loadSample(t), 0))
	require.NoError(t, err)

	var decoded struct {
		Slides []struct {
			Coordinates []int `json:"coordinates"`
			Title       string
		} `json:"slides"`
	}
	require.NoError(t, json.Unmarshal(bits, &decoded))
	require.Len(t, decoded.Slides, 4)
	assert.Equal(t, []int{1, 0}, decoded.Slides[2].Coordinates)
}

func TestValidationIssues(t *testing.T) {
	assert.Nil(t, validationIssues(nil))

	plain := validationIssues(errors.New("boom"))
	require.Len(t, plain, 1)
	assert.Equal(t, "boom", plain[0].Message)
	assert.Empty(t, plain[0].Field)

	cfg := config.DefaultConfig()
	cfg.TUI.Theme = "neon"
	issues := validationIssues(cfg.ValidateDeep(""))
	require.Len(t, issues, 1)
	assert.Equal(t, "tui.theme", issues[0].Field)
	assert.Contains(t, issues[0].Message, "unknown theme")
}

func TestValidationIssues_FieldErrors(t *testing.T) {
	err := criterio.NewFieldErrors("navigation.keep", errors.New("must be -1 or greater"))

	issues := validationIssues(err)
	require.Len(t, issues, 1)
	assert.Equal(t, validationIssue{Field: "navigation.keep", Message: "must be -1 or greater"}, issues[0])
}

func TestWriteDeckCandidates(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"talk.yaml", "notes.md", "other.yml", filepath.Join("conf", "deck.yaml")} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}

	var buf bytes.Buffer
	writeDeckCandidates(&buf, dir)

	out := buf.String()
	assert.Contains(t, out, "talk.yaml")
	assert.Contains(t, out, "other.yml")
	assert.Contains(t, out, "conf/deck.yaml")
	assert.NotContains(t, out, "notes.md")
}

func TestPresentation_Start(t *testing.T) {
	cfg := config.DefaultConfig()

	pres, err := newPresentation(&cfg, loadSample(t))
	require.NoError(t, err)
	t.Cleanup(pres.Close)

	require.NoError(t, pres.start("/presenter/1/0"))

	route, ok := pres.router.TryNext()
	require.True(t, ok)
	require.NoError(t, pres.store.ResolveRoute(route))

	require.NotNil(t, pres.store.CurrentSlide())
	assert.Equal(t, "Detail", pres.store.CurrentSlide().Title)
	assert.Equal(t, "presenter", string(pres.store.CurrentMode()))

	deps := pres.deps()
	assert.Same(t, pres.store, deps.Store)
	assert.Same(t, &cfg, deps.Config)
}

func TestPresentation_StartInvalidRoute(t *testing.T) {
	cfg := config.DefaultConfig()

	pres, err := newPresentation(&cfg, loadSample(t))
	require.NoError(t, err)
	t.Cleanup(pres.Close)

	tests := []string{"/slide/one", "/deck/0", "/presenter/-1"}
	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			err := pres.start(raw)
			require.ErrorIs(t, err, presenter.ErrMalformedRoute)
		})
	}
	assert.Equal(t, 0, pres.router.Pending())
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "podium", "config.yaml"), DefaultConfigPath())
}
