package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/podium/internal/core/keys"
	"github.com/hay-kot/podium/internal/core/nav"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Navigation.TocDepth)
	assert.Equal(t, nav.KeepNone, cfg.Navigation.KeepValue())
	assert.Equal(t, "/slide", cfg.Navigation.Start)
	assert.Equal(t, ".", cfg.TUI.Separator)
	assert.True(t, cfg.TUI.CoordinatesVisible())
	assert.True(t, cfg.Watch.IsEnabled())
	assert.Equal(t, 100*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, map[keys.Group]bool{
		keys.GroupArrows:   true,
		keys.GroupSections: true,
		keys.GroupToggles:  true,
	}, cfg.Keybindings.Groups())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Navigation.Start, cfg.Navigation.Start)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
navigation:
  overview: agenda
  toc_depth: 2
  keep: 1
  start: /presenter/0
keybindings:
  toggles: false
tui:
  separator: "/"
  show_coordinates: false
watch:
  enabled: false
  debounce: 250ms
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "agenda", cfg.Navigation.Overview)
	assert.Equal(t, 2, cfg.Navigation.TocDepth)
	assert.Equal(t, 1, cfg.Navigation.KeepValue())
	assert.Equal(t, "/presenter/0", cfg.Navigation.Start)
	assert.False(t, cfg.Keybindings.Groups()[keys.GroupToggles])
	assert.True(t, cfg.Keybindings.Groups()[keys.GroupArrows])
	assert.Equal(t, "/", cfg.TUI.Separator)
	assert.False(t, cfg.TUI.CoordinatesVisible())
	assert.False(t, cfg.Watch.IsEnabled())
	assert.Equal(t, 250*time.Millisecond, cfg.Watch.Debounce)
}

func TestLoad_UnknownTheme(t *testing.T) {
	path := writeConfig(t, `
tui:
  theme: neon
`)

	_, err := Load(path)

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "tui.theme", fieldErrs[0].Field)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "navigation: [")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	path := writeConfig(t, `
navigation:
  toc_depth: -1
  start: /speaker
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}
