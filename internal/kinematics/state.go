package kinematics

import "math"

// Undefined marks a motion quantity that could not be evaluated.
var Undefined = math.NaN()

// IsUndefined reports whether v is the Undefined sentinel.
func IsUndefined(v float64) bool { return math.IsNaN(v) }

// Sample is the instantaneous state of the mechanism at one crank angle.
type Sample struct {
	CrankAngle   float64 `json:"crank_angle"`
	Position     float64 `json:"position"`
	Velocity     float64 `json:"velocity"`
	Acceleration float64 `json:"acceleration"`
}

// Defined reports whether the motion fields hold real values.
func (s Sample) Defined() bool {
	return !IsUndefined(s.Position) && !IsUndefined(s.Velocity) && !IsUndefined(s.Acceleration)
}

// AngleDegrees returns the crank angle in degrees.
func (s Sample) AngleDegrees() float64 {
	return s.CrankAngle * 180 / math.Pi
}

// EvaluateState computes position, velocity and acceleration at angle. It
// never fails: if the geometry is infeasible the three motion fields are set
// to Undefined and CrankAngle is returned unchanged.
func EvaluateState(angle float64, p Params) Sample {
	s, err := evaluate(angle, p)
	if err != nil {
		return Sample{
			CrankAngle:   angle,
			Position:     Undefined,
			Velocity:     Undefined,
			Acceleration: Undefined,
		}
	}
	return s
}

func evaluate(angle float64, p Params) (Sample, error) {
	x, err := Position(angle, p.CrankRadius, p.RodLength)
	if err != nil {
		return Sample{}, err
	}
	v, err := Velocity(angle, p.CrankRadius, p.RodLength, p.CrankSpeed)
	if err != nil {
		return Sample{}, err
	}
	a, err := Acceleration(angle, p.CrankRadius, p.RodLength, p.CrankSpeed)
	if err != nil {
		return Sample{}, err
	}
	return Sample{CrankAngle: angle, Position: x, Velocity: v, Acceleration: a}, nil
}
