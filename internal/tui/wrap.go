// Package tui provides the Bubble Tea live converter interface.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/dahdit/internal/morse"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// buildStyledTokens styles every rune of text by the validity of the token it
// belongs to. Runes of invalid tokens that are not format symbols get the
// stray style so the offending character stands out.
func buildStyledTokens(text string, f morse.Format, valid morse.CodeSet) []styledRune {
	runes := []rune(text)
	tokens := findTokens(runes)
	out := make([]styledRune, 0, len(runes))
	tokenIdx := 0
	for i, r := range runes {
		if isSeparator(r) {
			out = append(out, styledRune{s: " ", width: 1, isSpace: true})
			continue
		}
		for tokenIdx < len(tokens) && i >= tokens[tokenIdx].end {
			tokenIdx++
		}
		style := validStyle
		if tokenIdx < len(tokens) && !tokens[tokenIdx].valid(runes, valid) {
			style = invalidStyle
			if !f.IsSymbol(r) {
				style = strayStyle
			}
		}
		out = append(out, styledRune{
			s:     style.Render(string(r)),
			width: runewidth.RuneWidth(r),
		})
	}
	return out
}

// buildStyledText styles plain text with one style, keeping spaces breakable.
func buildStyledText(text string, style lipgloss.Style) []styledRune {
	out := make([]styledRune, 0, len(text))
	for _, r := range text {
		if isSeparator(r) {
			out = append(out, styledRune{s: " ", width: 1, isSpace: true})
			continue
		}
		out = append(out, styledRune{s: style.Render(string(r)), width: runewidth.RuneWidth(r)})
	}
	return out
}

func isSeparator(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

type tokenRange struct {
	start int
	end   int
}

func (t tokenRange) valid(runes []rune, valid morse.CodeSet) bool {
	return valid.Contains(string(runes[t.start:t.end]))
}

func findTokens(runes []rune) []tokenRange {
	tokens := []tokenRange{}
	start := -1
	for i, r := range runes {
		if isSeparator(r) {
			if start != -1 {
				tokens = append(tokens, tokenRange{start: start, end: i})
				start = -1
			}
			continue
		}
		if start == -1 {
			start = i
		}
	}
	if start != -1 {
		tokens = append(tokens, tokenRange{start: start, end: len(runes)})
	}
	return tokens
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
