package viz

import (
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/numlab/internal/analysis"
	"github.com/san-kum/numlab/internal/numeric"
)

const (
	plotHeight = 10
	plotWidth  = 70
)

// Plot draws data as an ascii line chart. Non-finite values are dropped.
func Plot(data []float64, caption string) string {
	clean := finiteOnly(data)
	if len(clean) == 0 {
		return Subtle.Render("(no data to plot)")
	}
	return asciigraph.Plot(clean,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
}

// PlotLogError draws log10 of the absolute error against sample index.
// Zero errors carry no slope information and are skipped.
func PlotLogError(samples []analysis.Sample, caption string) string {
	logs := make([]float64, 0, len(samples))
	for _, s := range samples {
		if s.AbsErr > 0 {
			logs = append(logs, math.Log10(s.AbsErr))
		}
	}
	if len(logs) == 0 {
		return Subtle.Render("(all errors are zero)")
	}
	return asciigraph.Plot(logs,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
}

// Sparkline renders values as one line of block characters, sampled to width.
// Larger values are drawn redder.
func Sparkline(values []float64, width int) string {
	values = finiteOnly(values)
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := min(int(norm*float64(len(chars)-1)), len(chars)-1)
		c := string(chars[idx])
		switch {
		case norm > 0.7:
			b.WriteString(SparkHigh.Render(c))
		case norm > 0.3:
			b.WriteString(SparkMid.Render(c))
		default:
			b.WriteString(SparkLow.Render(c))
		}
	}
	return b.String()
}

func finiteOnly(data []float64) []float64 {
	out := make([]float64, 0, len(data))
	for _, v := range data {
		if numeric.IsFinite(v) {
			out = append(out, v)
		}
	}
	return out
}
