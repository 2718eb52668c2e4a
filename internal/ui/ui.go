// Package ui renders user-facing status lines. Colour is used only when the
// destination is a terminal and NO_COLOR is unset.
package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#C45A3C", Dark: "#DA7756"})
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"})
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"})
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"}).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"})
)

// Line prefixes.
const (
	stepMark    = "→"
	successMark = "✓"
	warnMark    = "!"
	errorMark   = "✗"
)

// Printer writes status lines to a single writer. It is safe for concurrent
// use.
type Printer struct {
	mu      sync.Mutex
	w       io.Writer
	noColor bool
}

// New returns a Printer for w, enabling colour when w is a terminal.
func New(w io.Writer) *Printer {
	return &Printer{w: w, noColor: !ColorEnabled(w)}
}

// Plain returns a Printer that never emits colour.
func Plain(w io.Writer) *Printer {
	return &Printer{w: w, noColor: true}
}

// ColorEnabled reports whether w is a terminal and NO_COLOR is unset.
func ColorEnabled(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Step prints a progress line.
func (p *Printer) Step(msg string) { p.line(stepStyle, stepMark, msg) }

// Success prints a completion line.
func (p *Printer) Success(msg string) { p.line(successStyle, successMark, msg) }

// Warn prints a warning line.
func (p *Printer) Warn(msg string) { p.line(warnStyle, warnMark, msg) }

// Error prints an error line.
func (p *Printer) Error(msg string) { p.line(errorStyle, errorMark, msg) }

// Muted prints secondary detail, indented under the previous line.
func (p *Printer) Muted(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.w, "  "+p.style(mutedStyle, msg))
}

func (p *Printer) line(style lipgloss.Style, mark, msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "%s %s\n", p.style(style, mark), msg)
}

func (p *Printer) style(s lipgloss.Style, text string) string {
	if p.noColor {
		return text
	}
	return s.Render(text)
}
