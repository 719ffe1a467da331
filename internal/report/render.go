package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/verte-zerg/dahdit/internal/model"
	"github.com/verte-zerg/dahdit/internal/morse"
)

const minTextColumn = 12

// CharLabel makes whitespace characters visible in tables.
func CharLabel(ch rune) string {
	if ch == ' ' {
		return "<space>"
	}
	return string(ch)
}

// RenderAlphabet prints every character of the table with its code.
func RenderAlphabet(w io.Writer, table *morse.KeyTable) error {
	if _, err := fmt.Fprintf(w, "Alphabet (format %s)\n", table.Format()); err != nil {
		return err
	}
	tbl := newTextTable("Char", "Code")
	for _, e := range table.Entries() {
		tbl.add(CharLabel(e.Char), e.Code)
	}
	return tbl.writeTo(w)
}

// RenderHistory prints conversions as a table fitted to width.
func RenderHistory(w io.Writer, conversions []model.Conversion, width int) error {
	if len(conversions) == 0 {
		_, err := fmt.Fprintln(w, "No conversions found.")
		return err
	}
	textWidth := historyTextWidth(conversions, width)
	tbl := newTextTable("ID", "When", "Op", "Format", "Input", "Output").alignRight(0)
	for _, c := range conversions {
		tbl.add(
			strconv.FormatInt(c.ID, 10),
			c.CreatedAt.Local().Format("2006-01-02 15:04"),
			OpLabel(c),
			FormatLabel(c),
			Truncate(OneLine(c.Input), textWidth),
			Truncate(OneLine(c.Output), textWidth),
		)
	}
	if err := tbl.writeTo(w); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// OpLabel is the operation with its repair mode, if any.
func OpLabel(c model.Conversion) string {
	if c.Mode == "" {
		return c.Op
	}
	return c.Op + ":" + c.Mode
}

// FormatLabel shows the source format and, for switches, the target format.
func FormatLabel(c model.Conversion) string {
	if c.Target == "" {
		return c.Format
	}
	return c.Format + ">" + c.Target
}

func historyTextWidth(conversions []model.Conversion, width int) int {
	idW, opW, fmtW := displayWidth("ID"), displayWidth("Op"), displayWidth("Format")
	for _, c := range conversions {
		idW = max(idW, displayWidth(strconv.FormatInt(c.ID, 10)))
		opW = max(opW, displayWidth(OpLabel(c)))
		fmtW = max(fmtW, displayWidth(FormatLabel(c)))
	}
	// "2006-01-02 15:04" plus five column separators.
	fixed := idW + 16 + opW + fmtW + 5
	available := (width - fixed) / 2
	if available < minTextColumn {
		return minTextColumn
	}
	return available
}

// RenderSummary prints per-operation totals.
func RenderSummary(w io.Writer, aggs []model.OpAggregate) error {
	if len(aggs) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	tbl := newTextTable("Op", "Runs", "Tokens", "Repaired", "Dropped", "Drop rate").alignRight(1, 2, 3, 4, 5)
	var total model.OpAggregate
	for _, agg := range aggs {
		tbl.add(summaryRow(agg.Op, agg)...)
		total.Count += agg.Count
		total.Tokens += agg.Tokens
		total.Repaired += agg.Repaired
		total.Dropped += agg.Dropped
	}
	if len(aggs) > 1 {
		tbl.add(summaryRow("total", total)...)
	}
	if err := tbl.writeTo(w); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func summaryRow(label string, agg model.OpAggregate) []string {
	return []string{
		label,
		strconv.Itoa(agg.Count),
		strconv.Itoa(agg.Tokens),
		strconv.Itoa(agg.Repaired),
		strconv.Itoa(agg.Dropped),
		fmt.Sprintf("%.2f%%", DropRate(agg)*100),
	}
}

// DropRate is the share of tokens that were dropped.
func DropRate(agg model.OpAggregate) float64 {
	if agg.Tokens == 0 {
		return 0
	}
	return float64(agg.Dropped) / float64(agg.Tokens)
}

// RenderTopChars prints the most frequent plain-text characters.
func RenderTopChars(w io.Writer, counts []CharCount) error {
	if len(counts) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Top characters"); err != nil {
		return err
	}
	tbl := newTextTable("Char", "Count").alignRight(1)
	for _, c := range counts {
		tbl.add(CharLabel(c.Char), strconv.Itoa(c.Count))
	}
	if err := tbl.writeTo(w); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
