package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"
)

// maxCellWidth bounds a table cell; longer text is truncated with an ellipsis.
const maxCellWidth = 60

// Truncate shortens s to at most width terminal cells.
func Truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// Table renders rows under headers. Numeric alignment is left to the caller.
func (p *Printer) Table(headers []string, rows [][]string) {
	if p.quiet || len(rows) == 0 {
		return
	}
	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = make([]string, len(row))
		for j, c := range row {
			cells[i][j] = Truncate(c, maxCellWidth)
		}
	}

	headerStyle := p.renderer.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := p.renderer.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.renderer.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers(headers...).
		Rows(cells...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == 0 {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(p.out, t.Render())
}
