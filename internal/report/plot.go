package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/verte-zerg/dahdit/internal/model"
)

// Series is a named list of percentages in [0, 100].
type Series struct {
	Name   string
	Values []float64
}

const (
	defaultPlotHeight = 8
	minPlotWidth      = 10
	axisTop           = "100%"
	axisMid           = "50%"
	axisBottom        = "0%"
	axisSeparator     = " │ "
)

// Dots of one braille cell, two columns by four rows.
var brailleDots = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// series markers, one per series, cycled
var seriesMarks = []string{"solid", "dotted"}

// MovingAverage computes a rolling mean over window values.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		out[i] = sum / float64(min(i+1, window))
	}
	return out
}

// RepairRates returns repaired and dropped token percentages per conversion
// for the operations that repair or drop tokens.
func RepairRates(conversions []model.Conversion) (repaired, dropped []float64) {
	for _, c := range conversions {
		if c.Op != model.OpDecode && c.Op != model.OpRepair {
			continue
		}
		if c.Tokens == 0 {
			continue
		}
		repaired = append(repaired, 100*float64(c.Repaired)/float64(c.Tokens))
		dropped = append(dropped, 100*float64(c.Dropped)/float64(c.Tokens))
	}
	return repaired, dropped
}

// RenderRepairCurve plots smoothed repair and drop rates of decode and repair runs.
func RenderRepairCurve(w io.Writer, conversions []model.Conversion, window, totalWidth int) error {
	repaired, dropped := RepairRates(conversions)
	if len(repaired) < 2 {
		return nil
	}
	return PlotPercentages(w, "Token repair", []Series{
		{Name: "Repaired", Values: MovingAverage(repaired, window)},
		{Name: "Dropped", Values: MovingAverage(dropped, window)},
	}, PlotWidthFor(totalWidth), defaultPlotHeight)
}

// PlotWidthFor computes the plot width that fits with the axis in totalWidth.
func PlotWidthFor(totalWidth int) int {
	axis := utf8.RuneCountInString(axisTop) + utf8.RuneCountInString(axisSeparator)
	return max(minPlotWidth, totalWidth-axis)
}

// PlotPercentages draws series on a shared 0-100% braille grid.
func PlotPercentages(w io.Writer, title string, series []Series, width, height int) error {
	if height <= 0 {
		height = defaultPlotHeight
	}
	width = max(width, minPlotWidth)

	grid := make([][]uint8, height)
	for y := range grid {
		grid[y] = make([]uint8, width)
	}
	dotRows := height * 4
	for si, s := range series {
		values := resample(s.Values, width)
		dotted := seriesMarks[si%len(seriesMarks)] == "dotted"
		prevX, prevY := -1, -1
		for x, v := range values {
			px, py := x*2, percentRow(v, dotRows)
			plot := func(dx, dy int) {
				if dotted && dx%4 != 0 {
					return
				}
				setDot(grid, dx, dy)
			}
			if prevX < 0 {
				plot(px, py)
			} else {
				drawLine(prevX, prevY, px, py, plot)
			}
			prevX, prevY = px, py
		}
	}

	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	labels := make([]string, height)
	labels[0] = axisTop
	if height > 2 {
		labels[height/2] = axisMid
	}
	labels[height-1] = axisBottom
	for y, row := range grid {
		var b strings.Builder
		b.WriteString(fmt.Sprintf("%*s%s", len(axisTop), labels[y], axisSeparator))
		for _, mask := range row {
			b.WriteRune(rune(0x2800 + int(mask)))
		}
		if _, err := fmt.Fprintln(w, b.String()); err != nil {
			return err
		}
	}
	legend := make([]string, 0, len(series))
	for i, s := range series {
		legend = append(legend, fmt.Sprintf("%s (%s)", s.Name, seriesMarks[i%len(seriesMarks)]))
	}
	_, err := fmt.Fprintf(w, "Legend: %s\n\n", strings.Join(legend, "  "))
	return err
}

func percentRow(v float64, rows int) int {
	v = math.Max(0, math.Min(100, v))
	return int(math.Round((1 - v/100) * float64(rows-1)))
}

// resample stretches or averages values to exactly width points.
func resample(values []float64, width int) []float64 {
	out := make([]float64, width)
	switch {
	case len(values) == 0:
		return nil
	case len(values) == 1:
		for i := range out {
			out[i] = values[0]
		}
	case len(values) > width:
		for i := range out {
			start := i * len(values) / width
			end := max((i+1)*len(values)/width, start+1)
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
	default:
		for i := range out {
			pos := float64(i) * float64(len(values)-1) / float64(width-1)
			idx := int(pos)
			if idx >= len(values)-1 {
				out[i] = values[len(values)-1]
				continue
			}
			frac := pos - float64(idx)
			out[i] = values[idx]*(1-frac) + values[idx+1]*frac
		}
	}
	return out
}

func setDot(grid [][]uint8, x, y int) {
	cx, cy := x/2, y/4
	if y < 0 || x < 0 || cy >= len(grid) || cx >= len(grid[cy]) {
		return
	}
	grid[cy][cx] |= brailleDots[x%2][y%4]
}

// drawLine walks a Bresenham line from (x0, y0) to (x1, y1).
func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
