package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	initcmd "github.com/hay-kot/podium/internal/commands/init"
)

type InitCmd struct {
	flags    *Flags
	yes      bool
	force    bool
	title    string
	sections int
	inline   bool
}

func NewInitCmd(flags *Flags) *InitCmd {
	return &InitCmd{flags: flags}
}

func (cmd *InitCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "init",
		Usage:     "Scaffold a new deck with an interactive wizard",
		UsageText: "podium init [options] [dir]",
		Description: `Creates deck.yaml in dir (default: the current directory).

The wizard asks for:
  - the talk title
  - the number of sections (table of contents entries)
  - whether sections live in markdown files under sections/
  - whether to add speaker notes placeholders

Use --yes to accept all defaults without prompts.
Use --force to overwrite an existing deck (a .bak copy is kept).`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "accept defaults without prompting",
				Destination: &cmd.yes,
			},
			&cli.BoolFlag{
				Name:        "force",
				Aliases:     []string{"f"},
				Usage:       "overwrite an existing deck",
				Destination: &cmd.force,
			},
			&cli.StringFlag{
				Name:        "title",
				Usage:       "talk title (defaults to the directory name)",
				Destination: &cmd.title,
			},
			&cli.IntFlag{
				Name:        "sections",
				Usage:       "number of sections",
				Value:       3,
				Destination: &cmd.sections,
			},
			&cli.BoolFlag{
				Name:        "inline",
				Usage:       "keep slide content in deck.yaml instead of markdown files",
				Destination: &cmd.inline,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *InitCmd) run(ctx context.Context, c *cli.Command) error {
	dir := c.Args().First()
	if dir == "" {
		dir = "."
	}

	opts := initcmd.DefaultDeckOptions(dir)
	if cmd.title != "" {
		opts.Title = cmd.title
	}
	opts.Sections = cmd.sections
	opts.Markdown = !cmd.inline

	wizard := initcmd.NewWizard(initcmd.WizardOptions{
		Dir:   dir,
		Yes:   cmd.yes,
		Force: cmd.force,
		Deck:  opts,
	})
	return wizard.Run(ctx)
}
