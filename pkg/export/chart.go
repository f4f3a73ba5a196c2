package export

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/riskboard/riskboard/pkg/report"
)

// ContentTypeSVG is the media type written by RenderChartSVG.
const ContentTypeSVG = "image/svg+xml"

// ErrEmptyChart is returned for a chart with no data points.
var ErrEmptyChart = errors.New("export: chart has no data")

const (
	barWidth   = 48
	barSpacing = 24
	// labelRoom is the space below the axis for slanted bar labels.
	labelRoom = 140
)

// RenderChartSVG draws c as an SVG bar chart. Multi-series charts are drawn
// as one bar per (label, series) pair, colored by series. Reference lines
// are named in the title.
func RenderChartSVG(w io.Writer, c *report.ChartConfig) error {
	bars := chartBars(c)
	if len(bars) == 0 {
		return ErrEmptyChart
	}

	top := 0.0
	for _, b := range bars {
		top = math.Max(top, b.Value)
	}
	for _, l := range c.ReferenceLines {
		top = math.Max(top, l.Value)
	}

	title := c.Title
	for _, l := range c.ReferenceLines {
		title += " | " + l.Label
	}

	bc := chart.BarChart{
		Title:      title,
		Width:      max(1024, len(bars)*(barWidth+barSpacing)+160),
		Height:     520 + labelRoom,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: labelRoom}},
		// Labels are wider than a bar slot; wrapping would split them mid-name.
		XAxis: chart.Style{TextWrap: chart.TextWrapNone, TextRotationDegrees: 45},
		YAxis: chart.YAxis{
			Name:  c.YAxis,
			Range: &chart.ContinuousRange{Min: 0, Max: niceCeil(top)},
		},
		Bars: bars,
	}
	if err := bc.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("export: render %s: %w", c.Key, err)
	}
	return nil
}

func chartBars(c *report.ChartConfig) []chart.Value {
	multi := len(c.Series) > 1
	var bars []chart.Value
	if !multi {
		for _, s := range c.Series {
			for _, p := range s.Data {
				bars = append(bars, bar(p.Label, p.Value, firstColor(p.Color, s.Color, palette(c, 0))))
			}
		}
		return bars
	}
	// Regroup by label so a year's series sit next to each other.
	if len(c.Series[0].Data) == 0 {
		return nil
	}
	for i, p := range c.Series[0].Data {
		for si, s := range c.Series {
			if i >= len(s.Data) {
				continue
			}
			bars = append(bars, bar(p.Label+" "+s.Name, s.Data[i].Value, firstColor(s.Color, palette(c, si))))
		}
	}
	return bars
}

func bar(label string, v float64, hex string) chart.Value {
	col := drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
	return chart.Value{
		Label: label,
		Value: v,
		Style: chart.Style{FillColor: col, StrokeColor: col, StrokeWidth: 1},
	}
}

func palette(c *report.ChartConfig, i int) string {
	if i < len(c.Colors) {
		return c.Colors[i]
	}
	return "4F46E5"
}

func firstColor(colors ...string) string {
	for _, c := range colors {
		if c != "" {
			return c
		}
	}
	return "4F46E5"
}

// niceCeil rounds v up to one significant step so the axis ends on a
// readable value: 66.2 → 70, 1.17 → 1.2, 14.8 → 15.
func niceCeil(v float64) float64 {
	if v <= 0 {
		return 1
	}
	step := math.Pow(10, math.Floor(math.Log10(v)))
	if v/step < 2 {
		step /= 10
	}
	return math.Ceil(v/step) * step
}
