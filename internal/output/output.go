// Package output provides context-aware output for git-sift.
// Stdout is used for the checkout report, the one line a user reads after
// the picker closes. Stderr (via log package) is used for diagnostics.
package output

import (
	"context"
	"fmt"
	"io"
	"os"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-isatty"

	"github.com/cpa750/git-sift/internal/ui/styles"
)

type ctxKey struct{}

// Printer writes primary output to stdout.
// Status lines are styled only when the writer is a terminal.
type Printer struct {
	w      io.Writer
	styled bool
}

// New creates a new Printer writing to the given writer.
func New(w io.Writer) *Printer {
	return &Printer{w: w, styled: isTerminal(w)}
}

// WithPrinter attaches a Printer to the context.
func WithPrinter(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, ctxKey{}, New(w))
}

// FromContext retrieves the Printer from context.
// Returns a Printer writing to os.Stdout if none is attached.
func FromContext(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stdout)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Print writes output without a newline.
func (p *Printer) Print(a ...any) {
	fmt.Fprint(p.w, a...)
}

// Printf writes formatted output.
func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.w, format, a...)
}

// Println writes a line of output.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

// Success writes a line in the success color.
func (p *Printer) Success(format string, a ...any) {
	p.line(styles.SuccessStyle, format, a...)
}

// Warning writes a line in the warning color.
func (p *Printer) Warning(format string, a ...any) {
	p.line(styles.WarningStyle, format, a...)
}

// Error writes a line in the error color.
func (p *Printer) Error(format string, a ...any) {
	p.line(styles.ErrorStyle, format, a...)
}

func (p *Printer) line(style lipgloss.Style, format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if p.styled {
		msg = style.Render(msg)
	}
	fmt.Fprintln(p.w, msg)
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}
