package initcmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/podium/internal/printer"
)

func TestWizard_YesWritesDefaults(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	ctx := printer.NewContext(context.Background(), printer.New(&out))

	w := NewWizard(WizardOptions{Dir: dir, Yes: true, Deck: DefaultDeckOptions(dir)})
	require.NoError(t, w.Run(ctx))

	assert.FileExists(t, filepath.Join(dir, DeckFileName))
	assert.FileExists(t, filepath.Join(dir, SectionsDir, "01-section-1.md"))
	assert.Contains(t, out.String(), "podium present")
}

func TestWizard_YesRefusesExistingDeck(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DeckFileName)
	require.NoError(t, os.WriteFile(path, []byte("title: keep me"), 0o644))

	w := NewWizard(WizardOptions{Dir: dir, Yes: true, Deck: DefaultDeckOptions(dir)})
	err := w.Run(context.Background())
	require.ErrorContains(t, err, "--force")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "title: keep me", string(data))
}

func TestWizard_ForceBacksUp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DeckFileName)
	require.NoError(t, os.WriteFile(path, []byte("title: old"), 0o644))

	var out bytes.Buffer
	ctx := printer.NewContext(context.Background(), printer.New(&out))

	w := NewWizard(WizardOptions{Dir: dir, Yes: true, Force: true, Deck: DeckOptions{Title: "New", Sections: 1}})
	require.NoError(t, w.Run(ctx))

	assert.FileExists(t, path+".bak")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "title: New")
}

func TestDefaultDeckOptions_TitleFromDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "gophercon")
	opts := DefaultDeckOptions(dir)
	assert.Equal(t, "gophercon", opts.Title)
	assert.Equal(t, 3, opts.Sections)
}
