// Package export renders a completed search result as an SVG chart of the
// prime-counting function π(x) over the searched range.
package export

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/ajstarks/svgo"

	"github.com/primewatch/primewatch/pkg/metrics"
)

// ChartOptions controls the rendered chart.
type ChartOptions struct {
	Width   int // default 800
	Height  int // default 480
	Samples int // polyline resolution, default 200
	Title   string
}

func (o *ChartOptions) applyDefaults(limit int) {
	if o.Width <= 0 {
		o.Width = 800
	}
	if o.Height <= 0 {
		o.Height = 480
	}
	if o.Samples <= 0 {
		o.Samples = 200
	}
	if o.Samples > limit {
		o.Samples = limit
	}
	if o.Title == "" {
		o.Title = fmt.Sprintf("Primes up to %d", limit)
	}
}

// WriteGrowthChart writes an SVG plot of the cumulative prime count to w.
// primes must be ascending (the worker's CompleteMsg order).
func WriteGrowthChart(w io.Writer, limit int, primes []int, opts ChartOptions) error {
	defer metrics.Timer(metrics.ChartExport)()

	if limit < 1 {
		return fmt.Errorf("chart limit %d out of range", limit)
	}
	opts.applyDefaults(limit)

	const margin = 50
	plotW := opts.Width - 2*margin
	plotH := opts.Height - 2*margin

	maxCount := len(primes)
	if maxCount == 0 {
		maxCount = 1 // keep the y scale finite for an empty result
	}

	xs := make([]int, 0, opts.Samples)
	ys := make([]int, 0, opts.Samples)
	for i := 1; i <= opts.Samples; i++ {
		x := limit * i / opts.Samples
		// π(x): primes are sorted, so count = first index > x.
		count := sort.SearchInts(primes, x+1)
		px := margin + plotW*i/opts.Samples
		py := margin + plotH - plotH*count/maxCount
		xs = append(xs, px)
		ys = append(ys, py)
	}

	canvas := svg.New(w)
	canvas.Start(opts.Width, opts.Height)
	canvas.Rect(0, 0, opts.Width, opts.Height, "fill:#ffffff")
	canvas.Text(opts.Width/2, margin/2, opts.Title,
		"text-anchor:middle;font-size:16px;font-family:sans-serif;fill:#333333")

	// Axes.
	canvas.Line(margin, margin, margin, margin+plotH, "stroke:#888888;stroke-width:1")
	canvas.Line(margin, margin+plotH, margin+plotW, margin+plotH, "stroke:#888888;stroke-width:1")
	canvas.Text(margin+plotW, margin+plotH+24, fmt.Sprintf("%d", limit),
		"text-anchor:end;font-size:11px;font-family:sans-serif;fill:#666666")
	canvas.Text(margin-6, margin+4, fmt.Sprintf("%d", len(primes)),
		"text-anchor:end;font-size:11px;font-family:sans-serif;fill:#666666")

	canvas.Polyline(xs, ys, "fill:none;stroke:#6b47d9;stroke-width:2")
	canvas.End()
	return nil
}

// WriteGrowthChartFile renders the chart into path, creating the file.
func WriteGrowthChartFile(path string, limit int, primes []int, opts ChartOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart file: %w", err)
	}
	defer f.Close()

	if err := WriteGrowthChart(f, limit, primes, opts); err != nil {
		return err
	}
	return f.Close()
}
