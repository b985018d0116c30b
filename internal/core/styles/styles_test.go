package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, DefaultTheme)
}

func TestGetPalette(t *testing.T) {
	p, ok := GetPalette("gruvbox")
	require.True(t, ok)
	assert.NotEmpty(t, p.Primary)

	_, ok = GetPalette("missing")
	assert.False(t, ok)
}

func TestGlamourStyle(t *testing.T) {
	p, _ := GetPalette("catppuccin")
	SetTheme(p)
	t.Cleanup(func() { SetTheme(themes[DefaultTheme]) })

	cfg := GlamourStyle("dark")
	require.NotNil(t, cfg.H2.Color)
	assert.Equal(t, string(p.Primary), *cfg.H2.Color)

	light := GlamourStyle("light")
	if light.H2.Color != nil {
		assert.NotEqual(t, string(p.Primary), *light.H2.Color)
	}
}

func TestFormTheme(t *testing.T) {
	assert.NotNil(t, FormTheme())
}
