package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/podium/internal/core/nav"
	"github.com/hay-kot/podium/internal/core/router"
	"github.com/hay-kot/podium/internal/core/styles"
	"github.com/hay-kot/podium/internal/core/validate"
)

// markdownStyles are the glamour styles accepted for tui.markdown_style.
var markdownStyles = []string{"auto", "ascii", "dark", "dracula", "light", "notty", "pink", "tokyo-night"}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if c.Navigation.TocDepth < 0 {
		errs = errs.Append("navigation.toc_depth", fmt.Errorf("must be zero or greater"))
	}
	if c.Navigation.KeepValue() < nav.KeepNone {
		errs = errs.Append("navigation.keep", fmt.Errorf("must be -1 or greater"))
	}
	if c.Navigation.Overview != "" {
		if err := validate.SlideID(c.Navigation.Overview); err != nil {
			errs = errs.Append("navigation.overview", err)
		}
	}
	if err := validateStartRoute(c.Navigation.Start); err != nil {
		errs = errs.Append("navigation.start", err)
	}
	if c.TUI.Separator == "" {
		errs = errs.Append("tui.separator", fmt.Errorf("cannot be empty"))
	}
	if err := themeExists(c.TUI.Theme); err != nil {
		errs = errs.Append("tui.theme", err)
	}
	if err := markdownStyleExists(c.TUI.MarkdownStyle); err != nil {
		errs = errs.Append("tui.markdown_style", err)
	}
	if c.Watch.Debounce < 0 {
		errs = errs.Append("watch.debounce", fmt.Errorf("cannot be negative"))
	}

	return errs.ToError()
}

// ValidateDeep performs Validate plus checks that need the environment,
// currently the config file itself.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func validateStartRoute(start string) error {
	route, err := router.ParsePath(start)
	if err != nil {
		return fmt.Errorf("invalid route %q: %w", start, err)
	}
	if _, ok := nav.ParseMode(route.Mode()); !ok {
		return fmt.Errorf("route %q must start with /%s or /%s", start, nav.ModeSlide, nav.ModePresenter)
	}
	return nil
}

func themeExists(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %v)", name, styles.ThemeNames())
	}
	return nil
}

func markdownStyleExists(name string) error {
	if !slices.Contains(markdownStyles, name) {
		return fmt.Errorf("unknown markdown style %q (available: %v)", name, markdownStyles)
	}
	return nil
}
