// Package printer writes styled, human readable command output. A Printer is
// carried on the context so commands and helpers share one destination.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hay-kot/podium/internal/core/styles"
)

type ctxKey struct{}

// Printer writes lines of command output.
type Printer struct {
	out io.Writer
}

// New returns a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{out: w}
}

// NewContext returns a copy of ctx carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the Printer stored in ctx, or one writing to stderr.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok && p != nil {
		return p
	}
	return New(os.Stderr)
}

func (p *Printer) line(s string) {
	_, _ = fmt.Fprintln(p.out, s)
}

// Printf writes an unstyled line.
func (p *Printer) Printf(format string, args ...any) {
	p.line(fmt.Sprintf(format, args...))
}

// Section writes a heading.
func (p *Printer) Section(title string) {
	p.line(styles.HeaderStyle.Render(title))
}

// Successf writes a line prefixed with a check mark.
func (p *Printer) Successf(format string, args ...any) {
	p.line(styles.SuccessStyle.Render("✓") + " " + fmt.Sprintf(format, args...))
}

// Infof writes a line prefixed with a bullet.
func (p *Printer) Infof(format string, args ...any) {
	p.line(styles.CoordinateStyle.Render("•") + " " + fmt.Sprintf(format, args...))
}

// Warnf writes a warning line.
func (p *Printer) Warnf(format string, args ...any) {
	p.line(styles.StatusWarnStyle.Render("!") + " " + fmt.Sprintf(format, args...))
}

// Errorf writes an error line.
func (p *Printer) Errorf(format string, args ...any) {
	p.line(styles.ErrorStyle.Render("✗") + " " + fmt.Sprintf(format, args...))
}
