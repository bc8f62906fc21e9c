package sim

import (
	"math"

	"github.com/san-kum/slidercrank/internal/kinematics"
)

// Clock is the animation state threaded through every tick: the crank angle,
// the simulated time and whether the crank is turning. It is a value; every
// method returns a new Clock.
type Clock struct {
	Angle   float64
	Time    float64
	Playing bool
}

// Advance integrates the crank angle over dt seconds at rpm and wraps it into
// [0, 2π). A paused clock is returned unchanged.
func (c Clock) Advance(dt, rpm float64) Clock {
	if !c.Playing || dt <= 0 {
		return c
	}
	c.Angle = WrapAngle(c.Angle + kinematics.AngularSpeed(rpm)*dt)
	c.Time += dt
	return c
}

func (c Clock) Toggle() Clock {
	c.Playing = !c.Playing
	return c
}

// Seek moves the crank to angle without advancing time.
func (c Clock) Seek(angle float64) Clock {
	c.Angle = WrapAngle(angle)
	return c
}

// Degrees returns the angle rounded to whole degrees.
func (c Clock) Degrees() int {
	return int(math.Round(c.Angle*180/math.Pi)) % 360
}

// WrapAngle maps any angle into [0, 2π).
func WrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}
