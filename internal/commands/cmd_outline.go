package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/podium/internal/core/coords"
	"github.com/hay-kot/podium/internal/core/deck"
	"github.com/hay-kot/podium/internal/core/styles"
	"github.com/hay-kot/podium/internal/deckfile"
	"github.com/hay-kot/podium/pkg/iojson"
)

type OutlineCmd struct {
	flags *Flags
	json  bool
}

// NewOutlineCmd creates a new outline command.
func NewOutlineCmd(flags *Flags) *OutlineCmd {
	return &OutlineCmd{flags: flags}
}

// Register adds the outline command to the application.
func (cmd *OutlineCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "outline",
		Usage:     "Print the slides of a deck in navigation order",
		UsageText: "podium outline [options] <deck.yaml>",
		Description: `Loads the deck and prints every slide with its coordinate, depth and
title. Slides that appear in the table of contents are marked with '§'.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.json,
			},
		},
		ShellComplete: DeckFileCompleter(),
		Action:        cmd.run,
	})
	return app
}

// outlineEntry is one slide of the outline.
type outlineEntry struct {
	Coordinates []int  `json:"coordinates"`
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Toc         bool   `json:"toc"`
	Notes       bool   `json:"has_notes"`
}

type outline struct {
	Title  string         `json:"title,omitempty"`
	Slides []outlineEntry `json:"slides"`
}

func buildOutline(loaded *deckfile.Deck, tocDepth int) outline {
	flat := deck.Flatten(loaded.Slides)

	toc := make(map[string]bool)
	for _, s := range deck.TocSlides(flat, tocDepth) {
		toc[s.Coordinates.Key()] = true
	}

	out := outline{Title: loaded.Title, Slides: make([]outlineEntry, 0, len(flat))}
	for _, s := range flat {
		out.Slides = append(out.Slides, outlineEntry{
			Coordinates: s.Coordinates,
			ID:          s.ID,
			Title:       s.Label(),
			Toc:         toc[s.Coordinates.Key()],
			Notes:       strings.TrimSpace(s.Notes) != "",
		})
	}
	return out
}

func (cmd *OutlineCmd) run(ctx context.Context, c *cli.Command) error {
	path, err := deckArg(c, "outline")
	if err != nil {
		return err
	}

	loaded, err := deckfile.Load(path)
	if err != nil {
		return fmt.Errorf("load deck: %w", err)
	}

	out := buildOutline(loaded, cmd.flags.Config.Navigation.TocDepth)

	if cmd.json {
		return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, out)
	}

	return writeOutline(c.Root().Writer, out, cmd.flags.Config.TUI.Separator)
}

func writeOutline(w io.Writer, out outline, sep string) error {
	if out.Title != "" {
		_, _ = fmt.Fprintln(w, styles.HeaderStyle.Render(out.Title))
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "COORD\tTOC\tNOTES\tTITLE")
	for _, e := range out.Slides {
		mark := ""
		if e.Toc {
			mark = "§"
		}
		notes := ""
		if e.Notes {
			notes = "✎"
		}
		indent := strings.Repeat("  ", max(len(e.Coordinates)-1, 0))
		coord := coords.Coordinate(e.Coordinates).Join(sep)
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s%s\n", coord, mark, notes, indent, e.Title)
	}
	return tw.Flush()
}
