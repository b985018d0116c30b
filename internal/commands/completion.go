package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/urfave/cli/v3"
)

// deckPatterns are the file names offered when completing a deck argument.
var deckPatterns = []string{"*.yaml", "*.yml", "*/deck.yaml", "*/deck.yml"}

// DeckFileCompleter returns a ShellCompleteFunc that suggests deck files in
// the working directory as positional completions.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func DeckFileCompleter() cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		writeDeckCandidates(cmd.Root().Writer, ".")
	}
}

func writeDeckCandidates(w io.Writer, dir string) {
	seen := make(map[string]bool)
	for _, pattern := range deckPatterns {
		matches, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly())
		if err != nil {
			continue
		}
		for _, m := range matches {
			if seen[m] {
				continue
			}
			seen[m] = true
			_, _ = fmt.Fprintln(w, m)
		}
	}
}
