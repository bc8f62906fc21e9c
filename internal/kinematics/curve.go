package kinematics

import "math"

// CurvePoints is the length of a non-empty Curve: one point per degree from
// 0 to 360 inclusive, so the first and last points close the loop.
const CurvePoints = 361

// CurvePoint is one tabulated sample of a Curve.
type CurvePoint struct {
	AngleDegrees int     `json:"angle"`
	Position     float64 `json:"position"`
	Velocity     float64 `json:"velocity"`
	Acceleration float64 `json:"acceleration"`
}

// Curve is the motion over one revolution. It is either CurvePoints long or
// empty.
type Curve []CurvePoint

// Radians converts whole degrees to radians.
func Radians(deg int) float64 {
	return float64(deg) * math.Pi / 180
}

// GenerateCurve tabulates the motion for every integer degree in [0, 360].
// If any angle is infeasible the whole curve is discarded and nil is
// returned; points are never filled with Undefined.
func GenerateCurve(p Params) Curve {
	c := make(Curve, 0, CurvePoints)
	for deg := 0; deg < CurvePoints; deg++ {
		s, err := evaluate(Radians(deg), p)
		if err != nil {
			return nil
		}
		c = append(c, CurvePoint{
			AngleDegrees: deg,
			Position:     s.Position,
			Velocity:     s.Velocity,
			Acceleration: s.Acceleration,
		})
	}
	return c
}

// Empty reports whether the curve could not be generated.
func (c Curve) Empty() bool { return len(c) == 0 }

// At returns the point for a whole degree in [0, 360].
func (c Curve) At(deg int) (CurvePoint, bool) {
	if deg < 0 || deg >= len(c) {
		return CurvePoint{}, false
	}
	return c[deg], true
}

func (c Curve) Positions() []float64 {
	out := make([]float64, len(c))
	for i, p := range c {
		out[i] = p.Position
	}
	return out
}

func (c Curve) Velocities() []float64 {
	out := make([]float64, len(c))
	for i, p := range c {
		out[i] = p.Velocity
	}
	return out
}

func (c Curve) Accelerations() []float64 {
	out := make([]float64, len(c))
	for i, p := range c {
		out[i] = p.Acceleration
	}
	return out
}

// Column returns the series for "position", "velocity" or "acceleration".
func (c Curve) Column(name string) []float64 {
	switch name {
	case "velocity":
		return c.Velocities()
	case "acceleration":
		return c.Accelerations()
	default:
		return c.Positions()
	}
}
