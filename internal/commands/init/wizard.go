// Package initcmd implements the interactive deck scaffolding behind
// `podium init`.
package initcmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/hay-kot/podium/internal/core/styles"
	"github.com/hay-kot/podium/internal/core/validate"
	"github.com/hay-kot/podium/internal/printer"
)

// WizardOptions configures the wizard behavior.
type WizardOptions struct {
	Dir   string
	Yes   bool // skip prompts, use defaults
	Force bool // overwrite an existing deck
	Deck  DeckOptions
}

// Wizard orchestrates the init process.
type Wizard struct {
	opts WizardOptions
}

// NewWizard creates a new init wizard.
func NewWizard(opts WizardOptions) *Wizard {
	return &Wizard{opts: opts}
}

// DefaultDeckOptions are used with --yes and prefill the form otherwise.
func DefaultDeckOptions(dir string) DeckOptions {
	title := "Untitled Talk"
	if abs, err := filepath.Abs(dir); err == nil {
		if base := filepath.Base(abs); base != "" && base != string(filepath.Separator) && base != "." {
			title = base
		}
	}
	return DeckOptions{Title: title, Sections: 3, Markdown: true, Notes: true}
}

// Run executes the wizard.
func (w *Wizard) Run(ctx context.Context) error {
	p := printer.Ctx(ctx)

	dir := expandHome(w.opts.Dir)
	deckPath := filepath.Join(dir, DeckFileName)

	if FileExists(deckPath) && !w.opts.Force {
		if w.opts.Yes {
			return fmt.Errorf("deck exists at %s; use --force to overwrite", deckPath)
		}

		var overwrite bool
		err := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title("Deck file already exists").
				Description(deckPath + "\nOverwrite? (a backup will be created)").
				Value(&overwrite),
		)).WithTheme(styles.FormTheme()).Run()
		if err != nil {
			return err
		}
		if !overwrite {
			p.Infof("Init cancelled")
			return nil
		}
	}

	opts := w.opts.Deck
	if !w.opts.Yes {
		var err error
		opts, err = w.promptUser(opts)
		if err != nil {
			return err
		}
	}

	files, err := Scaffold(opts)
	if err != nil {
		return err
	}

	for _, f := range files {
		path := filepath.Join(dir, f.Path)
		backupPath, err := BackupFile(path, f.Content)
		if err != nil {
			return fmt.Errorf("backup %s: %w", f.Path, err)
		}
		if backupPath != "" {
			p.Warnf("Backed up %s to %s", f.Path, backupPath)
		}
	}

	written, err := WriteFiles(dir, files)
	if err != nil {
		return err
	}
	for _, path := range written {
		p.Successf("Created %s", path)
	}

	w.printNextSteps(p, deckPath)
	return nil
}

func (w *Wizard) promptUser(defaults DeckOptions) (DeckOptions, error) {
	opts := defaults
	sections := strconv.Itoa(defaults.Sections)

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Talk title").
			Validate(validate.Title).
			Value(&opts.Title),
		huh.NewInput().
			Title("Number of sections").
			Description("Each section becomes a table of contents entry").
			Validate(validateSections).
			Value(&sections),
		huh.NewConfirm().
			Title("Write sections as markdown files?").
			Description("Slides are pulled in from " + SectionsDir + "/*.md and reloaded on save").
			Value(&opts.Markdown),
		huh.NewConfirm().
			Title("Add speaker notes placeholders?").
			Value(&opts.Notes),
	)).WithTheme(styles.FormTheme())

	if err := form.Run(); err != nil {
		return opts, err
	}

	n, err := parseSections(sections)
	if err != nil {
		return opts, err
	}
	opts.Sections = n
	return opts, nil
}

func (w *Wizard) printNextSteps(p *printer.Printer, deckPath string) {
	p.Printf("")
	p.Section("Next Steps")
	p.Printf("  1. Edit %s", deckPath)
	p.Printf("  2. Run 'podium present %s'", deckPath)
	p.Printf("  3. Press alt+p for the presenter view")
}

func validateSections(s string) error {
	_, err := parseSections(s)
	return err
}

func parseSections(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("enter a number")
	}
	if n < 1 || n > 50 {
		return 0, fmt.Errorf("must be between 1 and 50")
	}
	return n, nil
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}
