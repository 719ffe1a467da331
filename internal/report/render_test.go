package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/dahdit/internal/model"
	"github.com/verte-zerg/dahdit/internal/morse"
)

func TestRenderAlphabet(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderAlphabet(&buf, morse.BuildKeyTable(morse.DefaultFormat)); err != nil {
		t.Fatalf("RenderAlphabet failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Alphabet (format -./)", "a       .-", "<space> /", "$       ...-..-"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRenderHistory(t *testing.T) {
	var buf bytes.Buffer
	conversions := []model.Conversion{
		{ID: 1, CreatedAt: time.Now(), Op: model.OpEncode, Format: "-./", Input: "hello\nworld", Output: ".... . .-.. .-.. --- / .-- --- .-. .-.. -.."},
		{ID: 12, CreatedAt: time.Now(), Op: model.OpSwitch, Format: "-./", Target: "NY_", Input: ".-", Output: "YN"},
		{ID: 13, CreatedAt: time.Now(), Op: model.OpRepair, Format: "-./", Mode: "ordered", Input: ".-X", Output: ".-"},
	}
	if err := RenderHistory(&buf, conversions, 80); err != nil {
		t.Fatalf("RenderHistory failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"ID", "hello world", "-./>NY_", "repair:ordered"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		if displayWidth(line) > 80 {
			t.Fatalf("line wider than 80 cells: %q", line)
		}
	}
}

func TestRenderHistoryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderHistory(&buf, nil, 80); err != nil {
		t.Fatalf("RenderHistory failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No conversions found.") {
		t.Fatalf("expected empty notice, got %q", buf.String())
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	aggs := []model.OpAggregate{
		{Op: model.OpEncode, Count: 2, Tokens: 10},
		{Op: model.OpRepair, Count: 1, Tokens: 4, Repaired: 1, Dropped: 1},
	}
	if err := RenderSummary(&buf, aggs); err != nil {
		t.Fatalf("RenderSummary failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Summary", "Drop rate", "25.00%", "total", "7.14%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestTopChars(t *testing.T) {
	conversions := []model.Conversion{
		{Op: model.OpEncode, Input: "Aab"},
		{Op: model.OpDecode, Output: "ba"},
		{Op: model.OpRepair, Input: "zzzz"},
	}
	top := TopChars(conversions, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 chars, got %d", len(top))
	}
	if top[0].Char != 'a' || top[0].Count != 3 || top[1].Char != 'b' {
		t.Fatalf("unexpected order: %+v", top)
	}
}
