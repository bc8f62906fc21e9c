// Package analysis derives characteristic figures from tabulated motion.
//
//   - [Summarize]: stroke, dead centres and peak velocity/acceleration of a
//     single curve
//   - [Sweep]: the same summary across a range of one parameter
//
// Both operate on [kinematics.Curve] values, so an infeasible mechanism
// shows up as an empty curve rather than an error:
//
//	sum, ok := analysis.Summarize(kinematics.GenerateCurve(p))
//	if !ok {
//	    // geometry cannot complete a revolution
//	}
package analysis
