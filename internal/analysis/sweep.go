package analysis

import (
	"fmt"

	"github.com/san-kum/slidercrank/internal/kinematics"
)

// SweepPoint is the outcome for one value of the swept parameter.
type SweepPoint struct {
	Value    float64           `json:"value"`
	Params   kinematics.Params `json:"params"`
	Feasible bool              `json:"feasible"`
	Summary  Summary           `json:"summary"`
	Curve    kinematics.Curve  `json:"-"`
}

// Sweep varies one parameter of base linearly from min to max over steps
// values, inclusive at both ends. Infeasible values are kept with
// Feasible=false so the result lines up with the requested range.
func Sweep(base kinematics.Params, field string, min, max float64, steps int) ([]SweepPoint, error) {
	if _, err := base.With(field, min); err != nil {
		return nil, err
	}
	if steps < 1 {
		return nil, fmt.Errorf("analysis: sweep needs at least one step, got %d", steps)
	}

	step := 0.0
	if steps > 1 {
		step = (max - min) / float64(steps-1)
	}

	points := make([]SweepPoint, steps)
	ParallelFor(steps, 8, func(start, end int) {
		for i := start; i < end; i++ {
			v := min + float64(i)*step
			p, _ := base.With(field, v)
			c := kinematics.GenerateCurve(p)
			sum, ok := Summarize(c)
			points[i] = SweepPoint{
				Value:    v,
				Params:   p,
				Feasible: ok,
				Summary:  sum,
				Curve:    c,
			}
		}
	})

	return points, nil
}
