package kinematics

import "math"

// RodAngle returns φ, the inclination of the connecting rod to the slider
// axis:
//
//	sinφ = r·sinθ / l    cosφ = (x − r·cosθ) / l
//
// φ is positive while the crank pin is above the axis. The rod standing
// perpendicular to the axis (only possible when l == r) is reported as
// infeasible, matching [Velocity].
func RodAngle(angle, crankRadius, rodLength float64) (float64, error) {
	sin, _, s, err := rodTerm(angle, crankRadius, rodLength)
	if err != nil {
		return 0, err
	}
	if s == 0 {
		return 0, infeasible(angle, crankRadius, rodLength)
	}
	return math.Atan2(crankRadius*sin, s), nil
}

// RodForce is a force carried along the connecting rod, resolved at the
// crank pin.
type RodForce struct {
	RodAngle float64 `json:"rod_angle"`
	// Fx acts along the line of stroke, Fy is the side thrust on the slider
	// guide.
	Fx float64 `json:"fx"`
	Fy float64 `json:"fy"`
	// Torque about the crank pivot, r·F·sin(θ+φ). Zero at both dead centres.
	Torque float64 `json:"torque"`
}

// ResolveRodForce splits a compressive rod force into components and the
// crank torque it produces at angle.
func ResolveRodForce(angle, crankRadius, rodLength, force float64) (RodForce, error) {
	phi, err := RodAngle(angle, crankRadius, rodLength)
	if err != nil {
		return RodForce{}, err
	}
	sinPhi, cosPhi := math.Sincos(phi)
	return RodForce{
		RodAngle: phi,
		Fx:       force * cosPhi,
		Fy:       force * sinPhi,
		Torque:   crankRadius * force * math.Sin(angle+phi),
	}, nil
}
