package deckfile

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/podium/internal/core/eventbus/testbus"
)

func startWatcher(t *testing.T, path string) (*Watcher, *testbus.Recorder[Update]) {
	t.Helper()

	loaded, err := Load(path)
	require.NoError(t, err)

	w, err := NewWatcher(context.Background(), path, loaded, WatcherOptions{
		Debounce: 20 * time.Millisecond,
		Logger:   zerolog.Nop(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	return w, testbus.Record(t, w.Feed(), false)
}

func TestWatcher_ReloadsOnDeckChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.yaml")
	writeFile(t, path, "slides:\n  - title: One\n")

	_, rec := startWatcher(t, path)

	writeFile(t, path, "slides:\n  - title: One\n  - title: Two\n")

	require.True(t, rec.WaitUntil(5*time.Second, func(u Update) bool {
		return u.Deck != nil && len(u.Deck.Slides) == 2
	}))
}

func TestWatcher_ReloadsOnGlobMatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.yaml")
	writeFile(t, path, "slides:\n  - glob: \"parts/*.md\"\n")
	writeFile(t, filepath.Join(dir, "parts", "a.md"), "# A")

	_, rec := startWatcher(t, path)

	writeFile(t, filepath.Join(dir, "parts", "b.md"), "# B")

	require.True(t, rec.WaitUntil(5*time.Second, func(u Update) bool {
		return u.Deck != nil && len(u.Deck.Slides) == 2
	}))
}

func TestWatcher_ReloadsOnNewSubdirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.yaml")
	writeFile(t, path, "slides:\n  - glob: \"parts/**/*.md\"\n")
	writeFile(t, filepath.Join(dir, "parts", "one", "a.md"), "# A")

	w, rec := startWatcher(t, path)
	w.mu.Lock()
	watched := w.dirs[filepath.Join(dir, "parts", "one")]
	w.mu.Unlock()
	assert.True(t, watched, "existing subdirectories are watched")

	writeFile(t, filepath.Join(dir, "parts", "two", "deep", "b.md"), "# B")

	require.True(t, rec.WaitUntil(5*time.Second, func(u Update) bool {
		return u.Deck != nil && len(u.Deck.Slides) == 2
	}))

	writeFile(t, filepath.Join(dir, "parts", "two", "deep", "c.md"), "# C")

	require.True(t, rec.WaitUntil(5*time.Second, func(u Update) bool {
		return u.Deck != nil && len(u.Deck.Slides) == 3
	}))
}

func TestWatcher_PublishesLoadErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.yaml")
	writeFile(t, path, "slides:\n  - title: One\n")

	_, rec := startWatcher(t, path)

	writeFile(t, path, "title: nothing left\n")

	require.True(t, rec.WaitUntil(5*time.Second, func(u Update) bool {
		return u.Err != nil
	}))
	last, ok := rec.Last()
	require.True(t, ok)
	assert.ErrorIs(t, last.Err, ErrNoSlides)
}

func TestWatcher_IgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.yaml")
	writeFile(t, path, "slides:\n  - title: One\n")

	w, rec := startWatcher(t, path)

	assert.False(t, w.relevant(filepath.Join(dir, "notes.txt")))
	assert.False(t, w.relevant(filepath.Join(dir, ".deck.yaml.swp")))
	assert.True(t, w.relevant(path))

	writeFile(t, filepath.Join(dir, "notes.txt"), "scratch")
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 0, rec.Len())
}
