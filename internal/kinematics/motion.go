package kinematics

import "math"

// rodTerm returns sinθ, cosθ and S = sqrt(l² − (r·sinθ)²), the horizontal
// projection of the connecting rod.
func rodTerm(angle, r, l float64) (sin, cos, s float64, err error) {
	sin, cos = math.Sincos(angle)
	rs := r * sin
	radicand := l*l - rs*rs
	if radicand < 0 || math.IsNaN(radicand) {
		return 0, 0, 0, infeasible(angle, r, l)
	}
	s = math.Sqrt(radicand)
	if math.IsInf(s, 0) {
		return 0, 0, 0, infeasible(angle, r, l)
	}
	return sin, cos, s, nil
}

// Position returns the slider displacement from the crank pivot:
//
//	x(θ) = r·cosθ + sqrt(l² − (r·sinθ)²)
//
// Only the positive root is physical for this orientation.
func Position(angle, crankRadius, rodLength float64) (float64, error) {
	_, cos, s, err := rodTerm(angle, crankRadius, rodLength)
	if err != nil {
		return 0, err
	}
	return crankRadius*cos + s, nil
}

// Velocity returns dx/dt for a crank turning at crankSpeedRpm:
//
//	v(θ) = [−r·sinθ − r²·sinθ·cosθ / S]·ω
func Velocity(angle, crankRadius, rodLength, crankSpeedRpm float64) (float64, error) {
	sin, cos, s, err := rodTerm(angle, crankRadius, rodLength)
	if err != nil {
		return 0, err
	}
	if s == 0 {
		return 0, infeasible(angle, crankRadius, rodLength)
	}
	r := crankRadius
	omega := AngularSpeed(crankSpeedRpm)
	dx := -r*sin - r*r*sin*cos/s
	return dx * omega, nil
}

// Acceleration returns d²x/dt² at constant crank speed:
//
//	a(θ) = [−r·cosθ − r²(cos²θ − sin²θ)/S − r⁴·sin²θ·cos²θ / S³]·ω²
//
// Magnitude peaks near the dead centres; the value is never clamped.
func Acceleration(angle, crankRadius, rodLength, crankSpeedRpm float64) (float64, error) {
	sin, cos, s, err := rodTerm(angle, crankRadius, rodLength)
	if err != nil {
		return 0, err
	}
	if s == 0 {
		return 0, infeasible(angle, crankRadius, rodLength)
	}
	r := crankRadius
	r2 := r * r
	sin2, cos2 := sin*sin, cos*cos
	omega := AngularSpeed(crankSpeedRpm)

	ddx := -r*cos - r2*(cos2-sin2)/s - r2*r2*sin2*cos2/(s*s*s)
	return ddx * omega * omega, nil
}
