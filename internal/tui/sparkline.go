package tui

import (
	"strings"

	"github.com/shopspring/decimal"
)

var sparkGlyphs = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders values as a single line of block glyphs, resampled to at
// most width glyphs. A flat series renders at the lowest level.
func Sparkline(values []string, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	points := make([]decimal.Decimal, 0, len(values))
	for _, v := range values {
		d, err := decimal.NewFromString(v)
		if err != nil {
			d = decimal.Zero
		}
		points = append(points, d)
	}

	if len(points) > width {
		points = resample(points, width)
	}

	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo = decimal.Min(lo, p)
		hi = decimal.Max(hi, p)
	}
	span := hi.Sub(lo)
	top := decimal.NewFromInt(int64(len(sparkGlyphs) - 1))

	var b strings.Builder
	for _, p := range points {
		level := 0
		if !span.IsZero() {
			level = int(p.Sub(lo).Mul(top).Div(span).Round(0).IntPart())
		}
		b.WriteRune(sparkGlyphs[level])
	}
	return b.String()
}

// resample keeps width points spread evenly across the series, always
// including the last one.
func resample(points []decimal.Decimal, width int) []decimal.Decimal {
	if width == 1 {
		return points[len(points)-1:]
	}
	out := make([]decimal.Decimal, width)
	last := len(points) - 1
	for i := range out {
		out[i] = points[i*last/(width-1)]
	}
	return out
}
