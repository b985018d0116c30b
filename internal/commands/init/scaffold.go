package initcmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hay-kot/podium/internal/deckfile"
)

// DeckFileName is the name of the generated deck file.
const DeckFileName = "deck.yaml"

// SectionsDir holds the markdown files of a markdown-backed deck.
const SectionsDir = "sections"

// DeckOptions describes the deck to scaffold.
type DeckOptions struct {
	Title    string
	Sections int
	// Markdown writes one markdown file per section and pulls them in with a
	// glob entry instead of inlining their content.
	Markdown bool
	Notes    bool
}

type deckDoc struct {
	Title  string      `yaml:"title"`
	Slides []slideNode `yaml:"slides"`
}

type slideNode struct {
	ID       string      `yaml:"id,omitempty"`
	Title    string      `yaml:"title,omitempty"`
	Content  string      `yaml:"content,omitempty"`
	Notes    string      `yaml:"notes,omitempty"`
	Toc      bool        `yaml:"toc,omitempty"`
	Glob     string      `yaml:"glob,omitempty"`
	Children []slideNode `yaml:"children,omitempty"`
}

// GeneratedFile is a file produced by Scaffold, relative to the deck
// directory.
type GeneratedFile struct {
	Path    string
	Content []byte
}

// Scaffold renders the deck file and, for markdown decks, the section files.
func Scaffold(opts DeckOptions) ([]GeneratedFile, error) {
	if opts.Sections < 1 {
		return nil, fmt.Errorf("sections must be at least 1, got %d", opts.Sections)
	}
	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = "Untitled Talk"
	}

	doc := deckDoc{
		Title: title,
		Slides: []slideNode{
			{ID: "title", Title: title, Content: "# " + title, Notes: opts.notes("Introduce yourself.")},
			{ID: "agenda", Title: "Agenda", Content: agenda(opts.Sections)},
		},
	}

	var files []GeneratedFile

	if opts.Markdown {
		doc.Slides = append(doc.Slides, slideNode{Glob: SectionsDir + "/*.md", Toc: true})
		for i := 1; i <= opts.Sections; i++ {
			files = append(files, GeneratedFile{
				Path:    filepath.Join(SectionsDir, fmt.Sprintf("%02d-section-%d.md", i, i)),
				Content: []byte(sectionMarkdown(i, opts.Notes)),
			})
		}
	} else {
		for i := 1; i <= opts.Sections; i++ {
			doc.Slides = append(doc.Slides, slideNode{
				ID:      fmt.Sprintf("section-%d", i),
				Title:   fmt.Sprintf("Section %d", i),
				Content: fmt.Sprintf("# Section %d", i),
				Toc:     true,
				Children: []slideNode{{
					Title:   fmt.Sprintf("Section %d detail", i),
					Content: "- first point\n- second point",
					Notes:   opts.notes("Expand on the points."),
				}},
			})
		}
	}

	doc.Slides = append(doc.Slides, slideNode{ID: "questions", Title: "Questions?", Content: "# Questions?"})

	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal deck: %w", err)
	}

	return append([]GeneratedFile{{Path: DeckFileName, Content: data}}, files...), nil
}

// WriteFiles writes generated files below dir, creating directories as
// needed. It returns the absolute paths written.
func WriteFiles(dir string, files []GeneratedFile) ([]string, error) {
	written := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(dir, f.Path)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return written, fmt.Errorf("create directory: %w", err)
		}
		if err := os.WriteFile(path, f.Content, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", f.Path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func (o DeckOptions) notes(s string) string {
	if !o.Notes {
		return ""
	}
	return s
}

func agenda(sections int) string {
	var b strings.Builder
	b.WriteString("# Agenda\n")
	for i := 1; i <= sections; i++ {
		fmt.Fprintf(&b, "\n%d. Section %d", i, i)
	}
	return b.String()
}

func sectionMarkdown(i int, notes bool) string {
	md := fmt.Sprintf("# Section %d\n\n- first point\n- second point\n", i)
	if notes {
		md += "\n" + deckfile.NotesMarker + "\nExpand on the points.\n"
	}
	return md
}
