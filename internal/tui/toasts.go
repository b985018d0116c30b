package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hay-kot/podium/internal/core/styles"
)

const (
	defaultToastTTL   = 4 * time.Second
	defaultMaxToasts  = 3
	toastTickInterval = 250 * time.Millisecond
)

type toastLevel int

const (
	toastInfo toastLevel = iota
	toastError
)

type toast struct {
	level     toastLevel
	message   string
	remaining time.Duration
}

type toastTickMsg time.Time

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

// toastController keeps the short-lived messages shown above the status bar:
// deck reloads, reload failures, rejected goto targets.
type toastController struct {
	toasts  []toast
	ticking bool
}

// push adds a toast, evicting the oldest past defaultMaxToasts. The returned
// command starts the tick timer when it is not already running.
func (c *toastController) push(level toastLevel, message string) tea.Cmd {
	c.toasts = append(c.toasts, toast{
		level:     level,
		message:   message,
		remaining: defaultToastTTL,
	})
	if len(c.toasts) > defaultMaxToasts {
		c.toasts = c.toasts[len(c.toasts)-defaultMaxToasts:]
	}

	if c.ticking {
		return nil
	}
	c.ticking = true
	return scheduleToastTick()
}

// tick ages every toast by d and drops the expired ones. The returned command
// keeps the timer going while toasts remain.
func (c *toastController) tick(d time.Duration) tea.Cmd {
	alive := c.toasts[:0]
	for _, t := range c.toasts {
		t.remaining -= d
		if t.remaining > 0 {
			alive = append(alive, t)
		}
	}
	c.toasts = alive

	if len(c.toasts) == 0 {
		c.ticking = false
		return nil
	}
	return scheduleToastTick()
}

func (c *toastController) view() string {
	if len(c.toasts) == 0 {
		return ""
	}

	lines := make([]string, 0, len(c.toasts))
	for _, t := range c.toasts {
		switch t.level {
		case toastError:
			lines = append(lines, styles.ErrorStyle.Render("✗ "+t.message))
		default:
			lines = append(lines, styles.SuccessStyle.Render("✓ "+t.message))
		}
	}
	return strings.Join(lines, "\n")
}
