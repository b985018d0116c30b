package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/hay-kot/podium/internal/core/styles"
)

// markdownCache renders slide markdown with glamour. Renderers are built per
// wrap width and output is memoized per content; a width change drops both.
type markdownCache struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
	rendered map[string]string
}

func newMarkdownCache(style string) *markdownCache {
	return &markdownCache{style: style, rendered: make(map[string]string)}
}

func (c *markdownCache) render(content string, width int) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}
	width = max(width, 20)

	if c.renderer == nil || width != c.width {
		r, err := newRenderer(c.style, width)
		if err != nil {
			return content
		}
		c.renderer = r
		c.width = width
		clear(c.rendered)
	}

	if out, ok := c.rendered[content]; ok {
		return out
	}

	out, err := c.renderer.Render(content)
	if err != nil {
		return content
	}
	out = strings.Trim(out, "\n")
	c.rendered[content] = out
	return out
}

// reset drops memoized output, used after a theme or deck change.
func (c *markdownCache) reset() {
	clear(c.rendered)
}

func newRenderer(style string, width int) (*glamour.TermRenderer, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStyles(styles.GlamourStyle(style)))
	}
	return glamour.NewTermRenderer(opts...)
}
