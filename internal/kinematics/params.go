package kinematics

import (
	"fmt"
	"math"
)

// Parameter names accepted by GetParams and SetParam.
const (
	ParamCrankRadius = "crank_radius"
	ParamRodLength   = "rod_length"
	ParamCrankSpeed  = "crank_speed"
)

// Params describes a slider-crank mechanism. CrankSpeed is in revolutions per
// minute; its sign gives the direction of rotation.
type Params struct {
	CrankRadius float64 `yaml:"crank_radius" json:"crank_radius"`
	RodLength   float64 `yaml:"rod_length" json:"rod_length"`
	CrankSpeed  float64 `yaml:"crank_speed" json:"crank_speed"`
}

// Validation is the outcome of Validate. Reason is empty when Valid.
type Validation struct {
	Valid  bool
	Reason string
}

// Validate reports whether p describes a mechanism that can complete a full
// revolution. It never panics.
func Validate(p Params) Validation {
	if !(p.CrankRadius > 0) {
		return Validation{Reason: "crank radius must be greater than 0"}
	}
	if !(p.RodLength > 0) {
		return Validation{Reason: "connecting rod length must be greater than 0"}
	}
	if math.IsInf(p.CrankRadius, 0) || math.IsInf(p.RodLength, 0) {
		return Validation{Reason: "crank radius and connecting rod length must be finite"}
	}
	if math.IsNaN(p.CrankSpeed) || math.IsInf(p.CrankSpeed, 0) {
		return Validation{Reason: "crank speed must be finite"}
	}
	if !(p.RodLength > p.CrankRadius) {
		return Validation{Reason: fmt.Sprintf(
			"connecting rod length (%g) must be greater than crank radius (%g) for kinematically valid motion",
			p.RodLength, p.CrankRadius)}
	}
	return Validation{Valid: true}
}

// AngularSpeed converts revolutions per minute to radians per second.
func AngularSpeed(rpm float64) float64 {
	return rpm * 2 * math.Pi / 60
}

// RodRatio returns r/l, the usual measure of how far the motion departs from
// simple harmonic.
func (p Params) RodRatio() float64 {
	if p.RodLength == 0 {
		return math.Inf(1)
	}
	return p.CrankRadius / p.RodLength
}

func (p Params) GetParams() map[string]float64 {
	return map[string]float64{
		ParamCrankRadius: p.CrankRadius,
		ParamRodLength:   p.RodLength,
		ParamCrankSpeed:  p.CrankSpeed,
	}
}

// SetParam updates a single field by name. It does not validate.
func (p *Params) SetParam(name string, value float64) error {
	switch name {
	case ParamCrankRadius:
		p.CrankRadius = value
	case ParamRodLength:
		p.RodLength = value
	case ParamCrankSpeed:
		p.CrankSpeed = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}

// With returns a copy of p with one field replaced.
func (p Params) With(name string, value float64) (Params, error) {
	err := p.SetParam(name, value)
	return p, err
}

func (p Params) String() string {
	return fmt.Sprintf("r=%g l=%g rpm=%g", p.CrankRadius, p.RodLength, p.CrankSpeed)
}
