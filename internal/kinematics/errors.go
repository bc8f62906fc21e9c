package kinematics

import (
	"errors"
	"fmt"
)

// ErrInfeasibleGeometry indicates the connecting rod cannot reach the slider
// axis at the requested crank angle.
var ErrInfeasibleGeometry = errors.New("kinematics: infeasible geometry (connecting rod length must be greater than crank radius)")

// GeometryError wraps ErrInfeasibleGeometry with the offending evaluation.
type GeometryError struct {
	Angle       float64
	CrankRadius float64
	RodLength   float64
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("%v: r=%g l=%g θ=%.4f", ErrInfeasibleGeometry, e.CrankRadius, e.RodLength, e.Angle)
}

func (e *GeometryError) Unwrap() error {
	return ErrInfeasibleGeometry
}

func infeasible(angle, r, l float64) error {
	return &GeometryError{Angle: angle, CrankRadius: r, RodLength: l}
}
