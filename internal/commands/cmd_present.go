package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/podium/internal/core/deck"
	"github.com/hay-kot/podium/internal/core/logging"
	"github.com/hay-kot/podium/internal/deckfile"
	"github.com/hay-kot/podium/internal/printer"
	"github.com/hay-kot/podium/internal/profiler"
	"github.com/hay-kot/podium/internal/tui"
)

type PresentCmd struct {
	flags *Flags

	start        string
	noWatch      bool
	profilerPort int
}

// NewPresentCmd creates a new present command.
func NewPresentCmd(flags *Flags) *PresentCmd {
	return &PresentCmd{flags: flags}
}

// Flags returns the present flags so they can be registered on the root
// command, which runs present by default.
func (cmd *PresentCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "start",
			Usage:       "initial route, e.g. /presenter/1/0 (defaults to navigation.start)",
			Destination: &cmd.start,
		},
		&cli.BoolFlag{
			Name:        "no-watch",
			Usage:       "do not reload the deck when its files change",
			Destination: &cmd.noWatch,
		},
		&cli.IntFlag{
			Name:        "profiler-port",
			Usage:       "enable pprof HTTP endpoint on specified port (e.g., 6060)",
			Sources:     cli.EnvVars("PODIUM_PROFILER_PORT"),
			Destination: &cmd.profilerPort,
		},
	}
}

// Register adds the present command to the application.
func (cmd *PresentCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "present",
		Usage:     "Present a deck in the terminal",
		UsageText: "podium present [options] <deck.yaml>",
		Description: `Opens the deck full screen. Arrow keys move between slides, alt+arrows
jump between sections, 'o' opens the overview slide and alt+p toggles the
presenter view with notes, the next slide and the table of contents.

The deck and every markdown file it includes are watched and reloaded on
change unless --no-watch is given or watch.enabled is false.`,
		Flags:         cmd.Flags(),
		ShellComplete: DeckFileCompleter(),
		Action:        cmd.Run,
	})
	return app
}

// Run presents the deck named by the first argument.
func (cmd *PresentCmd) Run(ctx context.Context, c *cli.Command) error {
	path, err := deckArg(c, "present")
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("present needs an interactive terminal; try 'podium outline %s'", path)
	}

	cfg := cmd.flags.Config
	ctx = logging.WithDeck(ctx, path)

	// The TUI owns the terminal; messages for the user are printed after it exits.
	out, deferred := printer.NewDeferred()
	defer func() { _ = deferred.Flush(c.Root().ErrWriter) }()

	loaded, err := deckfile.Load(path)
	if err != nil {
		return fmt.Errorf("load deck: %w", err)
	}

	pres, err := newPresentation(cfg, loaded)
	if err != nil {
		return err
	}
	defer pres.Close()

	start := cmd.start
	if start == "" {
		start = cfg.Navigation.Start
	}
	if err := pres.start(start); err != nil {
		return err
	}

	if cmd.profilerPort > 0 {
		profServer := profiler.New(cmd.profilerPort, logging.Component("profiler"))
		if err := profServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start profiler: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := profServer.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shutdown profiler server")
			}
		}()
		out.Infof("profiler was available at http://%s/debug/pprof/", profServer.Addr())
	}

	m := tui.New(pres.deps(), tui.Options{Title: loaded.Title, DeckPath: path})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	if cfg.Watch.IsEnabled() && !cmd.noWatch {
		w, err := deckfile.NewWatcher(ctx, path, loaded, deckfile.WatcherOptions{
			Debounce: cfg.Watch.Debounce,
			Logger:   logging.Component("watcher"),
		})
		if err != nil {
			log.Warn().Err(err).Ctx(ctx).Msg("deck watcher disabled")
			out.Warnf("deck was not watched for changes: %v", err)
		} else {
			defer func() { _ = w.Close() }()

			sub := w.Feed().Subscribe(false, func(u deckfile.Update) {
				if u.Err != nil {
					out.Warnf("reload failed: %v", u.Err)
				}
				p.Send(tui.DeckReloadedMsg{Update: u})
			})
			defer sub.Close()
		}
	}

	log.Info().
		Ctx(ctx).
		Int("slides", deck.Count(loaded.Slides)).
		Str("start", start).
		Msg("presenting")

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
