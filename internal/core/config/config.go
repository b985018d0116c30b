// Package config handles configuration loading and validation for podium.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hay-kot/podium/internal/core/keys"
	"github.com/hay-kot/podium/internal/core/nav"
	"github.com/hay-kot/podium/internal/core/styles"
)

// Config holds the application configuration.
type Config struct {
	Navigation  NavigationConfig  `yaml:"navigation"`
	Keybindings KeybindingsConfig `yaml:"keybindings"`
	TUI         TUIConfig         `yaml:"tui"`
	Watch       WatchConfig       `yaml:"watch"`
}

// NavigationConfig controls how the deck is traversed.
type NavigationConfig struct {
	// Overview is the id of the slide the overview key jumps to.
	Overview string `yaml:"overview"`
	// TocDepth is the coordinate length that counts as a section entry.
	TocDepth int `yaml:"toc_depth"`
	// Keep is the coordinates-to-keep value used by the arrow keys.
	// nil means -1 (plain linear stepping).
	Keep *int `yaml:"keep"`
	// Start is the initial route, e.g. "/slide" or "/presenter/1/0".
	Start string `yaml:"start"`
}

// KeybindingsConfig toggles key policy groups. nil means enabled.
type KeybindingsConfig struct {
	Arrows   *bool `yaml:"arrows"`
	Sections *bool `yaml:"sections"`
	Toggles  *bool `yaml:"toggles"`
}

// TUIConfig holds terminal presentation settings.
type TUIConfig struct {
	Theme           string `yaml:"theme"`
	MarkdownStyle   string `yaml:"markdown_style"`
	ShowCoordinates *bool  `yaml:"show_coordinates"`
	Separator       string `yaml:"separator"`
}

// WatchConfig controls deck reloading.
type WatchConfig struct {
	Enabled  *bool         `yaml:"enabled"`
	Debounce time.Duration `yaml:"debounce"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Navigation: NavigationConfig{
			TocDepth: 1,
			Start:    "/" + string(nav.ModeSlide),
		},
		TUI: TUIConfig{
			Theme:         styles.DefaultTheme,
			MarkdownStyle: "dark",
			Separator:     ".",
		},
		Watch: WatchConfig{
			Debounce: 100 * time.Millisecond,
		},
	}
}

// Load reads configuration from the given path. If configPath is empty or
// doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	// Apply defaults for zero values
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Navigation.Start == "" {
		c.Navigation.Start = defaults.Navigation.Start
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.TUI.MarkdownStyle == "" {
		c.TUI.MarkdownStyle = defaults.TUI.MarkdownStyle
	}
	if c.TUI.Separator == "" {
		c.TUI.Separator = defaults.TUI.Separator
	}
	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = defaults.Watch.Debounce
	}
}

// KeepValue returns the configured coordinates-to-keep value.
func (n NavigationConfig) KeepValue() int {
	if n.Keep == nil {
		return nav.KeepNone
	}
	return *n.Keep
}

// Groups returns the enabled key policy groups.
func (k KeybindingsConfig) Groups() map[keys.Group]bool {
	return map[keys.Group]bool{
		keys.GroupArrows:   enabled(k.Arrows),
		keys.GroupSections: enabled(k.Sections),
		keys.GroupToggles:  enabled(k.Toggles),
	}
}

// CoordinatesVisible reports whether coordinates are shown next to titles.
func (t TUIConfig) CoordinatesVisible() bool {
	return enabled(t.ShowCoordinates)
}

// IsEnabled reports whether the deck file is watched for changes.
func (w WatchConfig) IsEnabled() bool {
	return enabled(w.Enabled)
}

func enabled(b *bool) bool {
	return b == nil || *b
}
