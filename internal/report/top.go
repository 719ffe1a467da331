package report

import (
	"sort"
	"unicode"

	"github.com/verte-zerg/dahdit/internal/model"
)

// CharCount is the number of times a character appeared in plain text.
type CharCount struct {
	Char  rune
	Count int
}

// TopChars counts plain-text characters across encode inputs and decode
// outputs and returns the n most frequent.
func TopChars(conversions []model.Conversion, n int) []CharCount {
	if n <= 0 || len(conversions) == 0 {
		return nil
	}
	counts := map[rune]int{}
	for _, c := range conversions {
		var text string
		switch c.Op {
		case model.OpEncode:
			text = c.Input
		case model.OpDecode:
			text = c.Output
		default:
			continue
		}
		for _, r := range text {
			if unicode.IsSpace(r) && r != ' ' {
				continue
			}
			counts[unicode.ToLower(r)]++
		}
	}
	items := make([]CharCount, 0, len(counts))
	for ch, count := range counts {
		items = append(items, CharCount{Char: ch, Count: count})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count == items[j].Count {
			return items[i].Char < items[j].Char
		}
		return items[i].Count > items[j].Count
	})
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}
