// Package ui renders the console report: phase headers, status lines,
// tables, coloured diffs, the confirmation prompt and the checker spinner.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/muesli/termenv"
)

// Level selects the prefix of a status line.
type Level uint8

const (
	LevelOK Level = iota
	LevelSkip
	LevelWarn
	LevelError
	LevelInfo
)

var levelPrefix = [...]string{
	LevelOK:    "✅",
	LevelSkip:  "↷ ",
	LevelWarn:  "⚠️ ",
	LevelError: "❌",
	LevelInfo:  "📊",
}

const ruleWidth = 70

// Printer writes report output. Informational output is dropped when quiet.
type Printer struct {
	out      io.Writer
	color    bool
	quiet    bool
	renderer *lipgloss.Renderer
}

// NewPrinter returns a printer writing to out.
func NewPrinter(out io.Writer, useColor, quiet bool) *Printer {
	r := lipgloss.NewRenderer(out)
	if useColor {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Printer{out: out, color: useColor, quiet: quiet, renderer: r}
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer { return p.out }

// Quiet reports whether informational output is suppressed.
func (p *Printer) Quiet() bool { return p.quiet }

func (p *Printer) paint(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if p.color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// Printf writes unconditionally.
func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// Infof writes unless quiet.
func (p *Printer) Infof(format string, args ...any) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, format, args...)
}

// Header prints a rule followed by a bold title.
func (p *Printer) Header(title string) {
	style := p.renderer.NewStyle().Bold(true)
	fmt.Fprintf(p.out, "\n%s\n%s\n\n", strings.Repeat("=", ruleWidth), style.Render(title))
}

// Status prints one prefixed status line.
func (p *Printer) Status(level Level, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	var c *color.Color
	switch level {
	case LevelOK:
		c = p.paint(color.FgGreen)
	case LevelWarn:
		c = p.paint(color.FgYellow)
	case LevelError:
		c = p.paint(color.FgRed)
	case LevelSkip:
		c = p.paint(color.Faint)
	default:
		c = p.paint()
	}
	fmt.Fprintf(p.out, "%s %s\n", levelPrefix[level], c.Sprint(msg))
}

// Detail prints an indented continuation line unless quiet.
func (p *Printer) Detail(format string, args ...any) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, "   %s\n", p.paint(color.Faint).Sprintf(format, args...))
}
