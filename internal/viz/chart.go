package viz

import (
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/slidercrank/internal/kinematics"
)

// ChartFields are the curve columns the chart panel can show, in cycle order.
var ChartFields = []string{"position", "velocity", "acceleration"}

var chartUnits = map[string]string{
	"position":     "mm",
	"velocity":     "mm/s",
	"acceleration": "mm/s²",
}

// ChartUnits returns the unit of a chart field.
func ChartUnits(field string) (string, bool) {
	u, ok := chartUnits[field]
	return u, ok
}

// ResampleCurve picks width evenly spaced degrees from the curve column.
func ResampleCurve(c kinematics.Curve, field string, width int) []float64 {
	if c.Empty() || width < 2 {
		return nil
	}
	col := c.Column(field)
	out := make([]float64, width)
	for i := range out {
		out[i] = col[chartDegree(i, width)]
	}
	return out
}

func chartDegree(i, width int) int {
	return int(math.Round(float64(i) * 360 / float64(width-1)))
}

func chartColumn(deg, width int) int {
	deg = ((deg % 360) + 360) % 360
	return int(math.Round(float64(deg) * float64(width-1) / 360))
}

// CurveChart plots one column of the curve against crank angle with a marker
// at deg. It returns "" for an empty curve.
func CurveChart(c kinematics.Curve, field string, deg, width, height int) string {
	series := ResampleCurve(c, field, width)
	if series == nil {
		return ""
	}

	marker := make([]float64, len(series))
	for i := range marker {
		marker[i] = math.NaN()
	}
	at := chartColumn(deg, width)
	marker[at] = series[at]

	return asciigraph.PlotMany([][]float64{series, marker},
		asciigraph.Height(height),
		asciigraph.Precision(1),
		asciigraph.SeriesColors(asciigraph.Default, asciigraph.Red),
		asciigraph.Caption(field+" ("+chartUnits[field]+") vs crank angle 0-360°"),
	)
}

// NextChartField cycles through ChartFields.
func NextChartField(field string) string {
	for i, f := range ChartFields {
		if f == field {
			return ChartFields[(i+1)%len(ChartFields)]
		}
	}
	return ChartFields[0]
}
