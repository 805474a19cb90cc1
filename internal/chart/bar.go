// Package chart renders the risk assessment bar chart as SVG.
package chart

import (
	"bytes"
	"fmt"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"riskly/risk-simulator/internal/model"
	"riskly/risk-simulator/internal/scanners"
)

type Options struct {
	Width     int
	Height    int
	FontColor string
	Colors    map[model.Status]string
}

func DefaultOptions() Options {
	return Options{
		Width:     720,
		Height:    350,
		FontColor: "#FAFAFA",
		Colors:    scanners.StatusColors,
	}
}

// LegendEntry pairs a status with its bar colour.
type LegendEntry struct {
	Status model.Status
	Color  string
}

// Legend lists each status in order of first appearance.
func Legend(rows []model.RiskRow, colors map[model.Status]string) []LegendEntry {
	seen := make(map[model.Status]bool, len(colors))
	var out []LegendEntry
	for _, r := range rows {
		if seen[r.Status] {
			continue
		}
		seen[r.Status] = true
		out = append(out, LegendEntry{Status: r.Status, Color: colorFor(colors, r.Status)})
	}
	return out
}

// RenderBarSVG draws one bar per row, x = category, y = score on a 0-100 axis.
func RenderBarSVG(rows []model.RiskRow, opts Options) ([]byte, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("chart: no rows to plot")
	}
	if opts.Width == 0 || opts.Height == 0 {
		d := DefaultOptions()
		opts.Width, opts.Height = d.Width, d.Height
	}
	font := drawing.ColorFromHex(opts.FontColor)
	axis := gochart.Style{
		FontColor:   font,
		FontSize:    10,
		StrokeColor: drawing.ColorFromHex("#555555"),
		StrokeWidth: 1,
	}

	bars := make([]gochart.Value, len(rows))
	for i, r := range rows {
		fill := drawing.ColorFromHex(colorFor(opts.Colors, r.Status))
		bars[i] = gochart.Value{
			Label: r.Category,
			Value: float64(r.Score),
			Style: gochart.Style{
				FillColor:   fill,
				StrokeColor: fill,
				StrokeWidth: 1,
			},
		}
	}

	bc := gochart.BarChart{
		Width:    opts.Width,
		Height:   opts.Height,
		BarWidth: opts.Width / (len(rows) * 2),
		Background: gochart.Style{
			FillColor: drawing.ColorTransparent,
			Padding:   gochart.Box{Top: 24, Left: 16, Right: 16, Bottom: 16},
		},
		Canvas: gochart.Style{FillColor: drawing.ColorTransparent},
		XAxis:  axis,
		YAxis: gochart.YAxis{
			Style:          axis,
			Range:          &gochart.ContinuousRange{Min: 0, Max: 100},
			ValueFormatter: scoreFormatter,
			Ticks:          scoreTicks(),
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := bc.Render(gochart.SVG, &buf); err != nil {
		return nil, fmt.Errorf("chart: render bar svg: %w", err)
	}
	return buf.Bytes(), nil
}

// scoreTicks places y-axis ticks every 20 points from 0 to 100.
func scoreTicks() []gochart.Tick {
	ticks := make([]gochart.Tick, 0, 6)
	for v := 0; v <= 100; v += 20 {
		ticks = append(ticks, gochart.Tick{Value: float64(v), Label: scoreFormatter(float64(v))})
	}
	return ticks
}

func scoreFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f", f)
	}
	return fmt.Sprint(v)
}

func colorFor(colors map[model.Status]string, s model.Status) string {
	if c, ok := colors[s]; ok {
		return c
	}
	return "#9E9E9E"
}
