package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/podium/internal/core/config"
)

// Flags are the root options shared by every subcommand.
type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/podium/config.yaml, falling back
// to ~/.config when XDG_CONFIG_HOME is unset.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "podium", "config.yaml")
}

// deckArg returns the deck file named by the first positional argument.
func deckArg(c *cli.Command, sub string) (string, error) {
	path := c.Args().First()
	if path == "" {
		return "", fmt.Errorf("missing deck file. Run 'podium %s --help' for usage", sub)
	}
	return path, nil
}
