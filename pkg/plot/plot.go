// Package plot renders training-run diagnostics (training curves, label
// frequency and value density charts) as PNG images.
package plot

import (
	"errors"
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNotEnoughData reports series too short to chart.
var ErrNotEnoughData = errors.New("not enough data")

var (
	trainColor = drawing.ColorFromHex("FF4F40")
	validColor = drawing.ColorFromHex("307EC7")
)

const (
	chartWidth  = 600
	chartHeight = 400
)

// CurveOptions controls TrainCurves rendering.
type CurveOptions struct {
	Title  string // default "Accuracy over time"
	YLabel string // default "accuracy"
}

func (o CurveOptions) title() string {
	if o.Title == "" {
		return "Accuracy over time"
	}
	return o.Title
}

func (o CurveOptions) ylabel() string {
	if o.YLabel == "" {
		return "accuracy"
	}
	return o.YLabel
}

// TrainCurves plots per-epoch train and validation metric series as two
// line charts in one figure. valid may be empty when no validation set was
// tracked.
func TrainCurves(w io.Writer, train, valid []float64, o CurveOptions) error {
	if len(train) < 2 {
		return fmt.Errorf("%w: need at least two epochs, got %d", ErrNotEnoughData, len(train))
	}

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    "train",
			XValues: epochs(len(train)),
			YValues: train,
			Style:   chart.Style{StrokeColor: trainColor, StrokeWidth: 2},
		},
	}
	if len(valid) >= 2 {
		series = append(series, chart.ContinuousSeries{
			Name:    "valid",
			XValues: epochs(len(valid)),
			YValues: valid,
			Style:   chart.Style{StrokeColor: validColor, StrokeWidth: 2},
		})
	}

	graph := chart.Chart{
		Title:  o.title(),
		Width:  chartWidth,
		Height: chartHeight,
		XAxis:  chart.XAxis{Name: "epoch"},
		YAxis:  chart.YAxis{Name: o.ylabel()},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return graph.Render(chart.PNG, w)
}

// epochs returns 0..n-1 as float x values.
func epochs(n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	return xs
}
