package analysis

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/slidercrank/internal/kinematics"
)

// Derivation is the slider-crank geometry worked through at one crank angle,
// with every intermediate quantity kept for display.
type Derivation struct {
	Params kinematics.Params
	Angle  float64
	Force  float64

	PinX, PinY    float64
	RodProjection float64 // x − r·cosθ
	Position      float64
	Rod           kinematics.RodForce

	Omega        float64
	DxDTheta     float64
	D2xDTheta2   float64
	Velocity     float64
	Acceleration float64
}

// Derive evaluates the derivation for a compressive rod force at angle
// (radians). The angle-derivatives use the expanded second-derivative form,
// independent of the engine's own expressions.
func Derive(p kinematics.Params, angle, force float64) (Derivation, error) {
	r, l := p.CrankRadius, p.RodLength
	x, err := kinematics.Position(angle, r, l)
	if err != nil {
		return Derivation{}, err
	}
	rod, err := kinematics.ResolveRodForce(angle, r, l, force)
	if err != nil {
		return Derivation{}, err
	}

	sin, cos := math.Sincos(angle)
	s := x - r*cos
	s2 := s * s
	r2 := r * r
	sin2, cos2 := sin*sin, cos*cos
	omega := kinematics.AngularSpeed(p.CrankSpeed)

	dx := -r*sin - r2*sin*cos/s
	ddx := -r*cos - (r2*(cos2-sin2)*s2+r2*r2*sin2*cos2)/(s2*s)

	return Derivation{
		Params:        p,
		Angle:         angle,
		Force:         force,
		PinX:          r * cos,
		PinY:          r * sin,
		RodProjection: s,
		Position:      x,
		Rod:           rod,
		Omega:         omega,
		DxDTheta:      dx,
		D2xDTheta2:    ddx,
		Velocity:      dx * omega,
		Acceleration:  ddx * omega * omega,
	}, nil
}

// Write prints the derivation as plain text.
func (d Derivation) Write(w io.Writer) error {
	p := d.Params
	deg := d.Angle * 180 / math.Pi
	phiDeg := d.Rod.RodAngle * 180 / math.Pi

	var b strings.Builder
	fmt.Fprintf(&b, "SLIDER-CRANK  %s  θ=%.2f°\n\n", p, deg)

	b.WriteString("Components\n")
	b.WriteString("  crank           arm of radius r rotating about the fixed pivot O\n")
	b.WriteString("  crank pin       joint P between crank and connecting rod\n")
	b.WriteString("  connecting rod  link of length l from P to the slider\n")
	b.WriteString("  slider          block S moving along the horizontal axis through O\n")
	b.WriteString("  frame           fixed structure carrying O and the slider guide\n")
	b.WriteString("  Rotation in, reciprocation out: engines, reciprocating pumps, compressors.\n\n")

	b.WriteString("Position\n")
	fmt.Fprintf(&b, "  P = (r·cosθ, r·sinθ) = (%.4f, %.4f)\n", d.PinX, d.PinY)
	b.WriteString("  S = (x, 0) and |PS| = l:\n")
	b.WriteString("    (x − r·cosθ)² + (r·sinθ)² = l²\n")
	b.WriteString("    x − r·cosθ = sqrt(l² − (r·sinθ)²)       positive root, slider right of P\n")
	fmt.Fprintf(&b, "    x = r·cosθ + sqrt(l² − (r·sinθ)²) = %.4f + %.4f = %.4f mm\n\n", d.PinX, d.RodProjection, d.Position)

	b.WriteString("Connecting rod angle\n")
	fmt.Fprintf(&b, "  tanφ = r·sinθ / (x − r·cosθ) = %.4f\n", d.PinY/d.RodProjection)
	fmt.Fprintf(&b, "  sinφ = r·sinθ / l = %.4f\n", d.PinY/p.RodLength)
	fmt.Fprintf(&b, "  cosφ = (x − r·cosθ) / l = %.4f\n", d.RodProjection/p.RodLength)
	fmt.Fprintf(&b, "  φ = %.4f°\n\n", phiDeg)

	fmt.Fprintf(&b, "Rod force  (F_c = %g N along the rod, slider toward crank pin)\n", d.Force)
	fmt.Fprintf(&b, "  F_x = F_c·cosφ = %.4f N\n", d.Rod.Fx)
	fmt.Fprintf(&b, "  F_y = F_c·sinφ = %.4f N\n", d.Rod.Fy)
	b.WriteString("  moment arm about O is r·sin(β), β the angle between crank and rod:\n")
	fmt.Fprintf(&b, "  T = r·F_c·sin(θ + φ) = %.4f N·mm\n\n", d.Rod.Torque)

	fmt.Fprintf(&b, "Velocity  (ω = %.4f rad/s)\n", d.Omega)
	fmt.Fprintf(&b, "  dx/dθ = −r·sinθ − r²·sinθ·cosθ / sqrt(l² − (r·sinθ)²) = %.4f mm/rad\n", d.DxDTheta)
	fmt.Fprintf(&b, "  v = dx/dθ · ω = %.4f mm/s\n\n", d.Velocity)

	b.WriteString("Acceleration  (constant ω)\n")
	b.WriteString("  d²x/dθ² = −r·cosθ − [r²(cos²θ − sin²θ)(l² − r²sin²θ) + r⁴·sin²θ·cos²θ] / (l² − r²sin²θ)^(3/2)\n")
	fmt.Fprintf(&b, "          = %.4f mm/rad²\n", d.D2xDTheta2)
	fmt.Fprintf(&b, "  a = d²x/dθ² · ω² = %.4f mm/s²\n", d.Acceleration)

	_, err := io.WriteString(w, b.String())
	return err
}
