package deckfile

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/hay-kot/podium/internal/core/eventbus"
)

// DefaultDebounce is used when WatcherOptions.Debounce is zero.
const DefaultDebounce = 100 * time.Millisecond

// Update is published after every reload triggered by a file change. Deck is
// nil when the reload failed.
type Update struct {
	Deck *Deck
	Err  error
}

// WatcherOptions configures a Watcher.
type WatcherOptions struct {
	Debounce time.Duration
	Logger   zerolog.Logger
}

// Watcher reloads a deck file whenever it or one of the markdown files it
// pulls in changes, and publishes the result on Feed.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   zerolog.Logger
	watcher  *fsnotify.Watcher
	feed     *eventbus.Topic[Update]

	mu       sync.Mutex
	files    map[string]bool
	patterns []string
	// trees are the base directories of "**" patterns; every directory
	// below them is watched since fsnotify is not recursive.
	trees []string
	dirs  map[string]bool
	timer *time.Timer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWatcher starts watching the files of a loaded deck. The watcher stops
// when ctx is cancelled or Close is called.
func NewWatcher(ctx context.Context, path string, loaded *Deck, opts WatcherOptions) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		_ = fsw.Close()
		return nil, err
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	ctx, cancel := context.WithCancel(ctx)
	w := &Watcher{
		path:     abs,
		debounce: debounce,
		logger:   opts.Logger,
		watcher:  fsw,
		feed:     eventbus.NewTopic[Update](eventbus.EventDeckLoaded),
		dirs:     make(map[string]bool),
		ctx:      ctx,
		cancel:   cancel,
	}

	if err := w.track(loaded); err != nil {
		cancel()
		_ = fsw.Close()
		return nil, err
	}

	w.wg.Add(1)
	go w.run()

	return w, nil
}

// Feed publishes one Update per reload.
func (w *Watcher) Feed() *eventbus.Topic[Update] {
	return w.feed
}

// Close stops watching. Pending reloads are dropped.
func (w *Watcher) Close() error {
	w.cancel()

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

// track replaces the set of files that trigger a reload and adds any new
// directories to the fsnotify watch list. Directories are watched rather than
// files so that editors that save by rename keep triggering events.
func (w *Watcher) track(d *Deck) error {
	files := make(map[string]bool, len(d.Files)+1)
	files[w.path] = true
	dirs := []string{filepath.Dir(w.path)}

	for _, f := range d.Files {
		files[f] = true
		dirs = append(dirs, filepath.Dir(f))
	}
	var trees []string
	for _, p := range d.Patterns {
		base, rest := doublestar.SplitPattern(filepath.ToSlash(p))
		base = filepath.FromSlash(base)
		if strings.Contains(rest, "**") {
			trees = append(trees, base)
			dirs = append(dirs, subdirs(base)...)
			continue
		}
		dirs = append(dirs, base)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.files = files
	w.patterns = d.Patterns
	w.trees = trees

	for _, dir := range dirs {
		if w.dirs[dir] {
			continue
		}
		if err := w.watcher.Add(dir); err != nil {
			return err
		}
		w.dirs[dir] = true
	}

	return nil
}

// subdirs returns root and every directory below it. Unreadable entries are
// skipped.
func subdirs(root string) []string {
	out := []string{root}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() || path == root {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		out = append(out, path)
		return nil
	})
	return out
}

// watchNewDir starts watching a directory created below a "**" base. It
// reports whether the directory was taken on.
func (w *Watcher) watchNewDir(name string) bool {
	info, err := os.Stat(name)
	if err != nil || !info.IsDir() {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	inTree := false
	for _, base := range w.trees {
		if rel, err := filepath.Rel(base, name); err == nil && !strings.HasPrefix(rel, "..") {
			inTree = true
			break
		}
	}
	if !inTree {
		return false
	}

	for _, dir := range subdirs(name) {
		if w.dirs[dir] {
			continue
		}
		if err := w.watcher.Add(dir); err != nil {
			w.logger.Warn().Err(err).Ctx(w.ctx).Str("dir", dir).Msg("watch new directory")
			continue
		}
		w.dirs[dir] = true
	}
	return true
}

func (w *Watcher) run() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn().Err(err).Ctx(w.ctx).Msg("watch error")
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return
	}

	// files may land in a new directory before it is watched, so a new
	// directory triggers a reload that globs it
	newDir := event.Has(fsnotify.Create) && w.watchNewDir(event.Name)
	if !newDir && !w.relevant(event.Name) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

// relevant reports whether a change to name can alter the deck.
func (w *Watcher) relevant(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	for _, ext := range []string{".tmp", ".swp", ".swx", "~"} {
		if strings.HasSuffix(base, ext) {
			return false
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.files[name] {
		return true
	}
	for _, p := range w.patterns {
		if ok, _ := doublestar.PathMatch(p, name); ok {
			return true
		}
	}
	return false
}

func (w *Watcher) reload() {
	if w.ctx.Err() != nil {
		return
	}

	loaded, err := Load(w.path)
	if err != nil {
		w.logger.Warn().Err(err).Ctx(w.ctx).Msg("reload failed")
		w.feed.Publish(Update{Err: err})
		return
	}

	if err := w.track(loaded); err != nil {
		w.logger.Warn().Err(err).Ctx(w.ctx).Msg("watch new directories")
	}

	w.logger.Debug().
		Ctx(w.ctx).
		Int("files", len(loaded.Files)).
		Int("slides", len(loaded.Slides)).
		Msg("deck reloaded")

	w.feed.Publish(Update{Deck: loaded})
}
