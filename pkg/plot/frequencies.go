package plot

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
)

// FreqOptions controls LabelFrequencies rendering.
type FreqOptions struct {
	Dataset  string // dataset name used in the title
	Ratio    bool   // plot fractions of the total instead of raw counts
	LogScale bool
}

// LabelFrequencies draws a bar chart of how often each label occurs.
// Bars are ordered by label value.
func LabelFrequencies(w io.Writer, labels []int, o FreqOptions) error {
	if len(labels) == 0 {
		return fmt.Errorf("%w: no labels", ErrNotEnoughData)
	}

	counts := map[int]int{}
	for _, l := range labels {
		counts[l]++
	}
	vals := make([]int, 0, len(counts))
	for v := range counts {
		vals = append(vals, v)
	}
	sort.Ints(vals)

	bars := make([]chart.Value, 0, len(vals))
	for _, v := range vals {
		f := float64(counts[v])
		if o.Ratio {
			f /= float64(len(labels))
		}
		bars = append(bars, chart.Value{Value: f, Label: strconv.Itoa(v)})
	}

	bc := chart.BarChart{
		Title:    fmt.Sprintf("Distribution of Labels in %s dataset", o.Dataset),
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: 24,
		YAxis:    chart.YAxis{Name: "Frequency"},
		Bars:     bars,
	}
	if o.LogScale {
		bc.YAxis.Range = &chart.LogarithmicRange{}
	}

	return bc.Render(chart.PNG, w)
}
