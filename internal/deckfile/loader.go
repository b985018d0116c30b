// Package deckfile reads presentation decks from YAML files and watches them
// for changes.
package deckfile

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/hay-kot/podium/internal/core/coords"
	"github.com/hay-kot/podium/internal/core/deck"
	"github.com/hay-kot/podium/internal/core/validate"
)

// ErrNoSlides is returned when a deck file yields no slides.
var ErrNoSlides = errors.New("deck has no slides")

// readConcurrency bounds how many markdown files of one glob are read at once.
const readConcurrency = 8

// NotesMarker separates slide content from speaker notes in markdown files.
const NotesMarker = "<!-- notes -->"

// Deck is a loaded deck file.
type Deck struct {
	Title  string
	Slides deck.Slides
	// Files lists every file read while loading, starting with the deck
	// file itself.
	Files []string
	// Patterns lists the absolute glob patterns of `glob:` entries.
	Patterns []string
}

type document struct {
	Title  string       `yaml:"title"`
	Slides []slideEntry `yaml:"slides"`
}

type slideEntry struct {
	ID       string       `yaml:"id"`
	Title    string       `yaml:"title"`
	Content  string       `yaml:"content"`
	Notes    string       `yaml:"notes"`
	Toc      bool         `yaml:"toc"`
	File     string       `yaml:"file"`
	Glob     string       `yaml:"glob"`
	Children []slideEntry `yaml:"children"`
}

type loader struct {
	dir      string
	files    []string
	patterns []string
}

// Load reads the deck at path. Relative `file:` and `glob:` entries resolve
// against the directory of the deck file.
func Load(path string) (*Deck, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve deck path: %w", err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("read deck file: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse deck file: %w", err)
	}

	l := &loader{dir: filepath.Dir(abs), files: []string{abs}}

	slides, err := l.build(doc.Slides)
	if err != nil {
		return nil, err
	}
	if len(slides) == 0 {
		return nil, ErrNoSlides
	}
	if err := validateIDs(slides); err != nil {
		return nil, fmt.Errorf("invalid deck: %w", err)
	}

	return &Deck{
		Title:    doc.Title,
		Slides:   slides,
		Files:    l.files,
		Patterns: l.patterns,
	}, nil
}

func (l *loader) build(entries []slideEntry) (deck.Slides, error) {
	var out deck.Slides

	for _, entry := range entries {
		if entry.Glob != "" {
			expanded, err := l.expandGlob(entry)
			if err != nil {
				return nil, err
			}
			out = append(out, expanded...)
			continue
		}

		s := &deck.Slide{
			ID:      entry.ID,
			Title:   entry.Title,
			Content: entry.Content,
			Notes:   entry.Notes,
			Toc:     entry.Toc,
		}

		if entry.File != "" {
			md, err := l.readMarkdown(l.resolve(entry.File))
			if err != nil {
				return nil, err
			}
			s.Content = md.content
			if s.Notes == "" {
				s.Notes = md.notes
			}
			if s.Title == "" {
				s.Title = md.title
			}
		}

		children, err := l.build(entry.Children)
		if err != nil {
			return nil, err
		}
		s.Children = children

		out = append(out, s)
	}

	return out, nil
}

// expandGlob turns a glob entry into one slide per matching file, sorted by
// path. The entry's toc flag applies to every generated slide; children of a
// glob entry are ignored.
func (l *loader) expandGlob(entry slideEntry) (deck.Slides, error) {
	pattern := l.resolve(entry.Glob)
	if !doublestar.ValidatePathPattern(pattern) {
		return nil, fmt.Errorf("invalid glob %q", entry.Glob)
	}
	l.patterns = append(l.patterns, pattern)

	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("expand glob %q: %w", entry.Glob, err)
	}
	slices.Sort(matches)

	parsed := make([]markdown, len(matches))
	g := new(errgroup.Group)
	g.SetLimit(readConcurrency)
	for i, match := range matches {
		g.Go(func() error {
			md, err := parseMarkdown(match)
			if err != nil {
				return err
			}
			parsed[i] = md
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
	base = filepath.FromSlash(base)

	out := make(deck.Slides, 0, len(matches))
	for i, match := range matches {
		l.files = append(l.files, match)
		md := parsed[i]
		out = append(out, &deck.Slide{
			ID:      globID(base, match),
			Title:   md.title,
			Content: md.content,
			Notes:   md.notes,
			Toc:     entry.Toc,
		})
	}

	return out, nil
}

// globID derives a slide id from a glob match: its path below the glob's
// static base without the extension, with directory separators and runs of
// whitespace turned into dashes. "sections/part1/intro.md" under
// "sections/**/*.md" becomes "part1-intro".
func globID(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(path)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))

	parts := strings.FieldsFunc(filepath.ToSlash(rel), func(r rune) bool {
		return r == '/' || unicode.IsSpace(r)
	})
	return strings.Join(parts, "-")
}

func (l *loader) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(l.dir, p)
}

type markdown struct {
	title   string
	content string
	notes   string
}

func (l *loader) readMarkdown(path string) (markdown, error) {
	md, err := parseMarkdown(path)
	if err != nil {
		return markdown{}, err
	}
	l.files = append(l.files, path)
	return md, nil
}

func parseMarkdown(path string) (markdown, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return markdown{}, fmt.Errorf("read slide file: %w", err)
	}

	content, notes, _ := strings.Cut(string(data), NotesMarker)
	return markdown{
		title:   firstHeading(content),
		content: strings.TrimSpace(content),
		notes:   strings.TrimSpace(notes),
	}, nil
}

// firstHeading returns the text of the first ATX heading in md.
func firstHeading(md string) string {
	scanner := bufio.NewScanner(strings.NewReader(md))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "#") {
			continue
		}
		title := strings.TrimLeft(line, "#")
		if title == "" || title[0] != ' ' {
			continue
		}
		return strings.TrimSpace(title)
	}
	return ""
}

// validateIDs reports every slide id that is used more than once.
func validateIDs(tree deck.Slides) error {
	var errs criterio.FieldErrorsBuilder
	seen := make(map[string]coords.Coordinate)

	for _, s := range deck.Flatten(tree) {
		if s.ID == "" {
			continue
		}
		field := fmt.Sprintf("slides[%s].id", s.Coordinates.Key())
		if err := validate.SlideID(s.ID); err != nil {
			errs = errs.Append(field, err)
			continue
		}
		if first, ok := seen[s.ID]; ok {
			errs = errs.Append(field, fmt.Errorf("duplicate id %q (first used at %s)", s.ID, first.Key()))
			continue
		}
		seen[s.ID] = s.Coordinates
	}

	return errs.ToError()
}
