// Package report renders alphabet and history tables as plain text.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// textTable lays out cells in columns sized to their widest cell.
type textTable struct {
	headers []string
	right   map[int]bool
	rows    [][]string
}

func newTextTable(headers ...string) *textTable {
	return &textTable{headers: headers, right: map[int]bool{}}
}

// alignRight right-aligns the given columns, usually numbers.
func (t *textTable) alignRight(cols ...int) *textTable {
	for _, c := range cols {
		t.right[c] = true
	}
	return t
}

func (t *textTable) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *textTable) widths() []int {
	var widths []int
	measure := func(cells []string) {
		for i, cell := range cells {
			if i == len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], displayWidth(cell))
		}
	}
	measure(t.headers)
	for _, row := range t.rows {
		measure(row)
	}
	return widths
}

// lines renders the header followed by every row. Trailing padding is trimmed.
func (t *textTable) lines() []string {
	widths := t.widths()
	if len(widths) == 0 {
		return nil
	}
	out := make([]string, 0, len(t.rows)+1)
	render := func(cells []string) {
		parts := make([]string, len(widths))
		for i, w := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			gap := strings.Repeat(" ", w-displayWidth(cell))
			if t.right[i] {
				parts[i] = gap + cell
			} else {
				parts[i] = cell + gap
			}
		}
		out = append(out, strings.TrimRight(strings.Join(parts, " "), " "))
	}
	if len(t.headers) > 0 {
		render(t.headers)
	}
	for _, row := range t.rows {
		render(row)
	}
	return out
}

func (t *textTable) writeTo(w io.Writer) error {
	for _, line := range t.lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func displayWidth(value string) int {
	return runewidth.StringWidth(value)
}

// Truncate shortens s to width display cells, marking the cut with "...".
func Truncate(s string, width int) string {
	if width <= 0 || displayWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}

// OneLine collapses newlines and tabs so a value fits in a table cell.
func OneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
