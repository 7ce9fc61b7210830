package chart

import (
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	barColor   = drawing.Color{R: 106, G: 168, B: 214, A: 255}
	pointColor = drawing.Color{R: 255, G: 165, B: 0, A: 160}
	lineColor  = chart.ColorBlue
)

func renderHistogram(w io.Writer, s Spec) error {
	edges, counts := Histogram(s.X, s.Bins)
	if len(counts) == 0 {
		return ErrNoData
	}
	bars := make([]chart.Value, len(counts))
	heights := make([]float64, len(counts))
	for i, c := range counts {
		heights[i] = float64(c)
		bars[i] = chart.Value{
			Label: binLabel(edges[i]),
			Value: float64(c),
			Style: chart.Style{FillColor: barColor, StrokeColor: barColor},
		}
	}
	return drawBars(w, s, bars, heights)
}

func renderBar(w io.Writer, s Spec) error {
	if len(s.Y) == 0 {
		return ErrNoData
	}
	if len(s.Labels) != len(s.Y) {
		return ErrLengthMismatch
	}
	bars := make([]chart.Value, 0, len(s.Y))
	heights := make([]float64, 0, len(s.Y))
	for i, v := range s.Y {
		if math.IsNaN(v) {
			continue
		}
		heights = append(heights, v)
		bars = append(bars, chart.Value{
			Label: s.Labels[i],
			Value: v,
			Style: chart.Style{FillColor: barColor, StrokeColor: barColor},
		})
	}
	if len(bars) == 0 {
		return ErrNoData
	}
	return drawBars(w, s, bars, heights)
}

func drawBars(w io.Writer, s Spec, bars []chart.Value, heights []float64) error {
	width, height := s.size()
	barWidth := width / (2 * len(bars))
	if barWidth > 60 {
		barWidth = 60
	}
	bc := chart.BarChart{
		Title:      s.Title,
		Background: background(),
		Width:      width,
		Height:     height,
		BarWidth:   barWidth,
		XAxis:      chart.Style{FontSize: 8},
		YAxis: chart.YAxis{
			Name:  s.YLabel,
			Range: valueRange(heights),
		},
		Bars: bars,
	}
	return bc.Render(chart.PNG, w)
}

// completePoints drops every index where X or Y is NaN.
func completePoints(xs, ys []float64) ([]float64, []float64) {
	outX := make([]float64, 0, len(xs))
	outY := make([]float64, 0, len(ys))
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		outX = append(outX, xs[i])
		outY = append(outY, ys[i])
	}
	return outX, outY
}

func renderScatter(w io.Writer, s Spec) error {
	if len(s.X) != len(s.Y) {
		return ErrLengthMismatch
	}
	xs, ys := completePoints(s.X, s.Y)
	if len(xs) == 0 {
		return ErrNoData
	}
	width, height := s.size()
	ch := chart.Chart{
		Title:      s.Title,
		Background: background(),
		Width:      width,
		Height:     height,
		XAxis:      chart.XAxis{Name: s.XLabel, Range: spanRange(xs)},
		YAxis:      chart.YAxis{Name: s.YLabel, Range: spanRange(ys)},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    4,
					DotColor:    pointColor,
				},
			},
		},
	}
	return ch.Render(chart.PNG, w)
}

func renderLine(w io.Writer, s Spec) error {
	if len(s.Y) == 0 {
		return ErrNoData
	}
	if len(s.Labels) != len(s.Y) {
		return ErrLengthMismatch
	}
	xs := make([]float64, len(s.Y))
	ticks := make([]chart.Tick, len(s.Y))
	for i, label := range s.Labels {
		xs[i] = float64(i)
		ticks[i] = chart.Tick{Value: xs[i], Label: label}
	}
	px, py := completePoints(xs, s.Y)
	if len(px) == 0 {
		return ErrNoData
	}

	width, height := s.size()
	ch := chart.Chart{
		Title:      s.Title,
		Background: background(),
		Width:      width,
		Height:     height,
		XAxis: chart.XAxis{
			Name:  s.XLabel,
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(len(s.Y)) - 0.5},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{Name: s.YLabel, Range: spanRange(py)},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: px,
				YValues: py,
				Style: chart.Style{
					StrokeWidth: 2,
					StrokeColor: lineColor,
					DotWidth:    8,
					DotColor:    lineColor,
				},
			},
		},
	}
	return ch.Render(chart.PNG, w)
}
