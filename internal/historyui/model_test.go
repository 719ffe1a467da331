package historyui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/dahdit/internal/model"
	"github.com/verte-zerg/dahdit/internal/store"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "dahdit.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	records := []model.Conversion{
		{Op: model.OpEncode, Format: "-./", Input: "sos", Output: "... --- ...", Tokens: 3},
		{Op: model.OpRepair, Format: "-./", Mode: "ordered", Input: ".-X", Output: ".-", Tokens: 1, Repaired: 1},
	}
	for i, rec := range records {
		rec.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if _, err := st.InsertConversion(ctx, rec); err != nil {
			t.Fatalf("insert conversion: %v", err)
		}
	}
	m := NewModel(st, model.HistoryFilter{})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 20})
	return m
}

func TestNewestConversionSelectedFirst(t *testing.T) {
	m := newTestModel(t)
	c, ok := m.selected()
	if !ok {
		t.Fatalf("expected a selected conversion")
	}
	if c.Op != model.OpRepair {
		t.Fatalf("expected newest conversion first, got %+v", c)
	}
	if !strings.Contains(m.detail.View(), "repair:ordered") {
		t.Fatalf("expected detail for selected conversion:\n%s", m.detail.View())
	}
}

func TestFilterByOp(t *testing.T) {
	m := newTestModel(t)
	m.startFilter()
	m.filterInputs[0].SetValue("encode")
	if err := m.applyFilter(); err != nil {
		t.Fatalf("applyFilter failed: %v", err)
	}
	if len(m.report.Conversions) != 1 || m.report.Conversions[0].Op != model.OpEncode {
		t.Fatalf("unexpected filtered conversions: %+v", m.report.Conversions)
	}
	if !strings.Contains(m.renderFilterSummary(), "op=encode") {
		t.Fatalf("unexpected summary: %s", m.renderFilterSummary())
	}
}

func TestParseFilter(t *testing.T) {
	f, err := parseFilter(" Decode ", "5", model.HistoryFilter{})
	if err != nil {
		t.Fatalf("parseFilter failed: %v", err)
	}
	if f.Op != model.OpDecode || f.Last != 5 {
		t.Fatalf("unexpected filter: %+v", f)
	}
	if _, err := parseFilter("teleport", "", model.HistoryFilter{}); err == nil {
		t.Fatalf("expected error for unknown op")
	}
	if _, err := parseFilter("", "-1", model.HistoryFilter{}); err == nil {
		t.Fatalf("expected error for negative last")
	}
	f, err = parseFilter("any", "", model.HistoryFilter{Op: model.OpEncode, Last: 3})
	if err != nil {
		t.Fatalf("parseFilter failed: %v", err)
	}
	if f.Op != "" || f.Last != 0 {
		t.Fatalf("expected cleared filter, got %+v", f)
	}
}

func TestTruncateLine(t *testing.T) {
	if got := truncateLine("abcdefgh", 6); got != "abc..." {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := truncateLine("abc", 10); got != "abc" {
		t.Fatalf("unexpected truncation: %q", got)
	}
}
