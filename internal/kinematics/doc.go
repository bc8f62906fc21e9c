// Package kinematics evaluates the closed-form motion of a slider-crank
// mechanism.
//
// A crank of radius r rotates about a fixed pivot and drives a slider along
// a straight line through a connecting rod of length l. For a crank angle θ
// the package computes:
//
//   - [Position]: slider displacement x(θ) = r·cosθ + sqrt(l² − r²sin²θ)
//   - [Velocity]: dx/dt at constant crank speed
//   - [Acceleration]: d²x/dt² at constant crank speed
//   - [EvaluateState]: all three at once, degrading to [Undefined]
//   - [GenerateCurve]: one sample per degree over a full revolution
//   - [RodAngle], [ResolveRodForce]: connecting-rod inclination and the
//     components and crank torque of a force carried by the rod
//
// # Feasibility
//
// Motion is only defined while l > |r·sinθ|. [Validate] checks the global
// condition l > r > 0 up front; the evaluators still guard every angle and
// return [ErrInfeasibleGeometry] when the radicand goes negative, so callers
// editing one parameter at a time never panic.
//
//	p := kinematics.Params{CrankRadius: 50, RodLength: 150, CrankSpeed: 150}
//	if v := kinematics.Validate(p); !v.Valid {
//	    return errors.New(v.Reason)
//	}
//	s := kinematics.EvaluateState(math.Pi/2, p)
//
// # Thread Safety
//
// Every function is pure. The package holds no mutable state and may be
// called from any goroutine.
package kinematics
