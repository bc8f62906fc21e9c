package analysis

import (
	"math"

	"github.com/san-kum/slidercrank/internal/kinematics"
)

// Extremum is a value and the crank angle in whole degrees where it occurs.
type Extremum struct {
	Value   float64 `json:"value"`
	Degrees int     `json:"degrees"`
}

// Summary describes one revolution of the mechanism.
type Summary struct {
	Stroke           float64   `json:"stroke"`
	TopDeadCentre    Extremum  `json:"top_dead_centre"`
	BottomDeadCentre Extremum  `json:"bottom_dead_centre"`
	PeakVelocity     Extremum  `json:"peak_velocity"`
	PeakAcceleration Extremum  `json:"peak_acceleration"`
	MeanSpeed        float64   `json:"mean_speed"`
	Harmonics        Harmonics `json:"harmonics"`
}

// Summarize reports false for an empty curve. Peaks are by magnitude but keep
// their sign. The closing 360° point repeats 0° and is excluded from the mean.
func Summarize(c kinematics.Curve) (Summary, bool) {
	if c.Empty() {
		return Summary{}, false
	}

	first := c[0]
	s := Summary{
		TopDeadCentre:    Extremum{first.Position, first.AngleDegrees},
		BottomDeadCentre: Extremum{first.Position, first.AngleDegrees},
		PeakVelocity:     Extremum{first.Velocity, first.AngleDegrees},
		PeakAcceleration: Extremum{first.Acceleration, first.AngleDegrees},
	}

	n := len(c)
	if n > 1 {
		n--
	}
	var speed float64
	for i, pt := range c {
		if pt.Position > s.TopDeadCentre.Value {
			s.TopDeadCentre = Extremum{pt.Position, pt.AngleDegrees}
		}
		if pt.Position < s.BottomDeadCentre.Value {
			s.BottomDeadCentre = Extremum{pt.Position, pt.AngleDegrees}
		}
		if math.Abs(pt.Velocity) > math.Abs(s.PeakVelocity.Value) {
			s.PeakVelocity = Extremum{pt.Velocity, pt.AngleDegrees}
		}
		if math.Abs(pt.Acceleration) > math.Abs(s.PeakAcceleration.Value) {
			s.PeakAcceleration = Extremum{pt.Acceleration, pt.AngleDegrees}
		}
		if i < n {
			speed += math.Abs(pt.Velocity)
		}
	}

	s.Stroke = s.TopDeadCentre.Value - s.BottomDeadCentre.Value
	s.MeanSpeed = speed / float64(n)
	s.Harmonics = AccelerationHarmonics(c.Accelerations()[:n])
	return s, true
}
