package ui

import (
	"strings"

	"github.com/fatih/color"
)

// Diff prints a unified diff, colouring added, removed and hunk lines.
func (p *Printer) Diff(diff string) {
	add := p.paint(color.FgGreen)
	del := p.paint(color.FgRed)
	hunk := p.paint(color.FgCyan)
	head := p.paint(color.Bold)

	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			head.Fprint(p.out, line)
		case strings.HasPrefix(line, "@@"):
			hunk.Fprint(p.out, line)
		case strings.HasPrefix(line, "+"):
			add.Fprint(p.out, line)
		case strings.HasPrefix(line, "-"):
			del.Fprint(p.out, line)
		default:
			p.Printf("%s", line)
		}
	}
}
