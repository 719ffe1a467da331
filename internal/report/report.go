package report

import (
	"context"
	"io"

	"github.com/verte-zerg/dahdit/internal/model"
	"github.com/verte-zerg/dahdit/internal/store"
)

// curveWindow is the moving average window of the repair curve.
const curveWindow = 5

// Report contains precomputed data for history rendering.
type Report struct {
	Conversions []model.Conversion
	Ops         []model.OpAggregate
	TopChars    []CharCount
}

// BuildReport loads and prepares data for history rendering.
func BuildReport(ctx context.Context, st *store.Store, filter model.HistoryFilter) (Report, error) {
	conversions, err := st.ListConversions(ctx, filter)
	if err != nil {
		return Report{}, err
	}
	ops, err := st.ListOpAggregates(ctx, filter)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Conversions: conversions,
		Ops:         ops,
		TopChars:    TopChars(conversions, 8),
	}, nil
}

// Render prints the full plain-text report.
func Render(w io.Writer, r Report, width int) error {
	if err := RenderHistory(w, r.Conversions, width); err != nil {
		return err
	}
	if err := RenderSummary(w, r.Ops); err != nil {
		return err
	}
	if err := RenderRepairCurve(w, r.Conversions, curveWindow, width); err != nil {
		return err
	}
	return RenderTopChars(w, r.TopChars)
}
