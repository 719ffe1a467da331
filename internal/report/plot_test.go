package report

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/verte-zerg/dahdit/internal/model"
)

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got := MovingAverage([]float64{1, 5}, 1); !reflect.DeepEqual(got, []float64{1, 5}) {
		t.Fatalf("window 1 should copy values, got %v", got)
	}
}

func TestRepairRates(t *testing.T) {
	conversions := []model.Conversion{
		{Op: model.OpEncode, Tokens: 4},
		{Op: model.OpRepair, Tokens: 4, Repaired: 1, Dropped: 2},
		{Op: model.OpDecode, Tokens: 0},
		{Op: model.OpDecode, Tokens: 2, Dropped: 1},
	}
	repaired, dropped := RepairRates(conversions)
	if !reflect.DeepEqual(repaired, []float64{25, 0}) {
		t.Fatalf("unexpected repaired rates: %v", repaired)
	}
	if !reflect.DeepEqual(dropped, []float64{50, 50}) {
		t.Fatalf("unexpected dropped rates: %v", dropped)
	}
}

func TestPlotPercentages(t *testing.T) {
	var buf bytes.Buffer
	err := PlotPercentages(&buf, "Test Plot", []Series{
		{Name: "A", Values: []float64{0, 50, 100, 50, 0}},
		{Name: "B", Values: []float64{100, 100, 0}},
	}, 12, 4)
	if err != nil {
		t.Fatalf("PlotPercentages failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// title, 4 rows, legend
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d:\n%s", len(lines), buf.String())
	}
	if lines[0] != "Test Plot" {
		t.Fatalf("unexpected title: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "100% │ ") || !strings.HasPrefix(lines[4], "  0% │ ") {
		t.Fatalf("unexpected axis labels:\n%s", buf.String())
	}
	if !strings.Contains(lines[5], "A (solid)") || !strings.Contains(lines[5], "B (dotted)") {
		t.Fatalf("unexpected legend: %q", lines[5])
	}
	for _, line := range lines[1:5] {
		row := strings.SplitN(line, "│ ", 2)[1]
		if n := len([]rune(row)); n != 12 {
			t.Fatalf("expected 12 cells, got %d in %q", n, line)
		}
	}
}

func TestRenderRepairCurveNeedsTwoRuns(t *testing.T) {
	var buf bytes.Buffer
	conversions := []model.Conversion{{Op: model.OpRepair, Tokens: 2, Dropped: 1}}
	if err := RenderRepairCurve(&buf, conversions, 5, 80); err != nil {
		t.Fatalf("RenderRepairCurve failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no plot for a single run, got:\n%s", buf.String())
	}
	conversions = append(conversions, model.Conversion{Op: model.OpDecode, Tokens: 4, Repaired: 2})
	if err := RenderRepairCurve(&buf, conversions, 5, 80); err != nil {
		t.Fatalf("RenderRepairCurve failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Token repair") {
		t.Fatalf("expected plot title:\n%s", buf.String())
	}
}
