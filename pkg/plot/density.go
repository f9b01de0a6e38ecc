package plot

import (
	"fmt"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
)

// DensityOptions controls DensityDistribution rendering.
type DensityOptions struct {
	Dataset   string  // dataset name used in the title
	Bandwidth float64 // gaussian kernel bandwidth; <= 0 means 0.5
	LogScale  bool
}

const densityPoints = 200

// DensityDistribution draws a kernel density estimate of the sample
// values, for eyeballing how pixel or activation values are spread out.
func DensityDistribution(w io.Writer, values []float64, o DensityOptions) error {
	if len(values) < 2 {
		return fmt.Errorf("%w: need at least two values, got %d", ErrNotEnoughData, len(values))
	}
	bw := o.Bandwidth
	if bw <= 0 {
		bw = 0.5
	}

	xs, ys := kde(values, bw, densityPoints)

	graph := chart.Chart{
		Title:  fmt.Sprintf("Density distribution of %s dataset", o.Dataset),
		Width:  chartWidth,
		Height: chartHeight,
		XAxis:  chart.XAxis{Name: "Values"},
		YAxis:  chart.YAxis{Name: "Frequency"},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: validColor,
					StrokeWidth: 2,
					FillColor:   validColor.WithAlpha(64),
				},
			},
		},
	}
	if o.LogScale {
		graph.YAxis.Range = &chart.LogarithmicRange{}
	}

	return graph.Render(chart.PNG, w)
}

// kde evaluates a gaussian kernel density estimate on an even grid of
// points spanning the data plus three bandwidths of margin.
func kde(values []float64, bw float64, points int) (xs, ys []float64) {
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	lo -= 3 * bw
	hi += 3 * bw

	xs = make([]float64, points)
	ys = make([]float64, points)
	step := (hi - lo) / float64(points-1)
	norm := 1 / (float64(len(values)) * bw * math.Sqrt(2*math.Pi))
	for i := range xs {
		x := lo + float64(i)*step
		var sum float64
		for _, v := range values {
			z := (x - v) / bw
			sum += math.Exp(-0.5 * z * z)
		}
		xs[i] = x
		ys[i] = norm * sum
	}
	return xs, ys
}
