package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/hay-kot/podium/internal/core/coords"
	"github.com/hay-kot/podium/internal/core/deck"
	"github.com/hay-kot/podium/internal/core/nav"
	"github.com/hay-kot/podium/internal/core/styles"
	"github.com/hay-kot/podium/internal/presenter"
)

const presenterSplit = 0.6

// View renders the current state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "loading…"
	}

	footer := m.renderFooter()
	bodyHeight := max(m.height-lipgloss.Height(footer), 1)

	st := m.store.State()

	var body string
	switch {
	case len(st.Slides) == 0:
		body = styles.EmptyMessageStyle.Render("This deck has no slides.")
	case st.CurrentSlide == nil:
		body = styles.EmptyMessageStyle.Render("Nothing at this location. Press home for the first slide.")
	case st.CurrentMode == nav.ModePresenter:
		body = m.renderPresenter(st, bodyHeight)
	default:
		body = m.renderSlide(st.CurrentSlide, m.width)
	}

	body = lipgloss.NewStyle().
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}

// renderSlide draws a slide's title and rendered markdown. The title is left
// out when the markdown opens with its own heading.
func (m Model) renderSlide(slide *deck.Slide, width int) string {
	frame := styles.SlideFrameStyle.Width(width)
	inner := width - frame.GetHorizontalFrameSize()

	var parts []string
	if !strings.HasPrefix(strings.TrimSpace(slide.Content), "#") {
		parts = append(parts, styles.SlideTitleStyle.Render(slide.Label()))
	}
	if content := m.markdown.render(slide.Content, inner); content != "" {
		parts = append(parts, content)
	}

	return frame.Render(strings.Join(parts, "\n"))
}

// renderPresenter shows the current slide next to the speaker panels: the
// upcoming slide, the notes and the table of contents.
func (m Model) renderPresenter(st presenter.State, height int) string {
	leftWidth := int(float64(m.width) * presenterSplit)
	rightWidth := m.width - leftWidth

	left := lipgloss.NewStyle().
		Width(leftWidth).
		MaxHeight(height).
		Render(m.renderSlide(st.CurrentSlide, leftWidth))

	panelWidth := max(rightWidth-styles.PanelStyle.GetHorizontalFrameSize(), 10)
	panel := func(title, content string) string {
		return styles.PanelStyle.Width(panelWidth).Render(
			styles.PanelTitleStyle.Render(title) + "\n" + content,
		)
	}

	next := nav.Relative(st.Slides, st.CurrentSlide, 1, nav.KeepNone, st.CoordinatesMaxDepth)
	nextText := styles.PreviewStyle.Render("End of deck")
	if next != nil {
		nextText = styles.PreviewStyle.Render(m.coordPrefix(next.Coordinates) + next.Label())
	}

	notesText := styles.EmptyMessageStyle.Render("Notes hidden (n to show)")
	if m.notesVisible() {
		notesText = styles.EmptyMessageStyle.Render("No notes")
		if notes := strings.TrimSpace(st.CurrentSlide.Notes); notes != "" {
			notesText = styles.NotesStyle.Width(panelWidth).Render(notes)
		}
	}

	right := lipgloss.JoinVertical(lipgloss.Left,
		panel("Next", nextText),
		panel("Notes", notesText),
		panel("Contents", m.renderToc(st, panelWidth)),
	)
	right = lipgloss.NewStyle().MaxHeight(height).Render(right)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m Model) renderToc(st presenter.State, width int) string {
	toc := m.store.TocSlides()
	if len(toc) == 0 {
		return styles.EmptyMessageStyle.Render("No sections")
	}

	var active *deck.Slide
	if st.CurrentSlide != nil {
		active = deck.Section(toc, st.CurrentSlide.Coordinates)
	}

	lines := make([]string, 0, len(toc))
	for _, s := range toc {
		indent := strings.Repeat("  ", max(len(s.Coordinates)-1, 0))
		prefix := indent + m.coordPrefix(s.Coordinates)
		line := prefix + truncate(s.Label(), width-2-lipgloss.Width(prefix), "…")
		if active != nil && coords.Equal(active.Coordinates, s.Coordinates) {
			lines = append(lines, styles.TocActiveStyle.Render("▸ "+line))
			continue
		}
		lines = append(lines, styles.TocItemStyle.Render("  "+line))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderFooter() string {
	var parts []string
	if t := m.toasts.view(); t != "" {
		parts = append(parts, t)
	}
	if p := m.prompt.view(); p != "" {
		parts = append(parts, p)
	}
	parts = append(parts, m.renderStatusBar(), m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderStatusBar() string {
	mode := m.store.CurrentMode()
	label := "SLIDE"
	if mode == nav.ModePresenter {
		label = "PRESENTER"
	}
	badge := styles.StatusModeStyle.Render(label)

	var info []string
	if s := m.store.CurrentSlide(); s != nil {
		info = append(info, s.Coordinates.Join(m.cfg.TUI.Separator))
	}
	if idx, total := m.store.Position(); total > 0 {
		info = append(info, fmt.Sprintf("%d/%d", idx, total))
	}
	if m.title != "" {
		info = append(info, truncate(m.title, max(m.width/3, 10), "…"))
	}

	rest := styles.StatusBarStyle.
		Width(max(m.width-lipgloss.Width(badge), 0)).
		Render(strings.Join(info, "  "))

	return lipgloss.JoinHorizontal(lipgloss.Top, badge, rest)
}

// coordPrefix renders c for lists, or nothing when coordinates are hidden.
func (m Model) coordPrefix(c coords.Coordinate) string {
	if !m.cfg.TUI.CoordinatesVisible() {
		return ""
	}
	return styles.CoordinateStyle.Render(c.Join(m.cfg.TUI.Separator)) + " "
}

// truncate shortens s to maxWidth terminal cells, ending with suffix when
// anything was cut.
func truncate(s string, maxWidth int, suffix string) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}

	suffixWidth := runewidth.StringWidth(suffix)
	if suffixWidth > maxWidth {
		return runewidth.Truncate(suffix, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth-suffixWidth, "") + suffix
}
