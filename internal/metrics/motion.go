package metrics

import (
	"math"

	"github.com/san-kum/slidercrank/internal/kinematics"
	"github.com/san-kum/slidercrank/internal/sim"
)

// Peak tracks the largest magnitude of one motion quantity.
type Peak struct {
	name  string
	field func(kinematics.Sample) float64
	peak  float64
}

func NewPeakVelocity() *Peak {
	return &Peak{name: "peak_velocity", field: func(s kinematics.Sample) float64 { return s.Velocity }}
}

func NewPeakAcceleration() *Peak {
	return &Peak{name: "peak_acceleration", field: func(s kinematics.Sample) float64 { return s.Acceleration }}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(s kinematics.Sample, t float64) {
	if !s.Defined() {
		return
	}
	p.peak = math.Max(p.peak, math.Abs(p.field(s)))
}

func (p *Peak) Value() float64 {
	return p.peak
}

func (p *Peak) Reset() {
	p.peak = 0
}

// Stroke is the distance between the extreme slider positions observed.
type Stroke struct {
	min, max float64
	seen     bool
}

func NewStroke() *Stroke { return &Stroke{} }

func (s *Stroke) Name() string { return "stroke" }

func (s *Stroke) Observe(x kinematics.Sample, t float64) {
	if !x.Defined() {
		return
	}
	if !s.seen {
		s.min, s.max, s.seen = x.Position, x.Position, true
		return
	}
	s.min = math.Min(s.min, x.Position)
	s.max = math.Max(s.max, x.Position)
}

func (s *Stroke) Value() float64 {
	if !s.seen {
		return 0
	}
	return s.max - s.min
}

func (s *Stroke) Reset() {
	s.min, s.max, s.seen = 0, 0, false
}

// Default returns the metrics recorded for every stored run.
func Default() []sim.Metric {
	return []sim.Metric{
		NewPeakVelocity(),
		NewPeakAcceleration(),
		NewStroke(),
		NewUndefinedFraction(),
	}
}
