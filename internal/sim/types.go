package sim

import (
	"errors"

	"github.com/san-kum/slidercrank/internal/kinematics"
)

var ErrInvalidConfig = errors.New("sim: invalid config")

// Metric accumulates a scalar over the samples of a run.
type Metric interface {
	Name() string
	Observe(s kinematics.Sample, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnSample(s kinematics.Sample, t float64)
}

// Config controls a headless run. StartAngle is in radians.
type Config struct {
	Dt         float64
	Duration   float64
	StartAngle float64
}

func DefaultConfig() Config {
	return Config{Dt: 1.0 / 60, Duration: 4.0}
}

type Result struct {
	Samples   []kinematics.Sample
	Times     []float64
	Metrics   map[string]float64
	Undefined int
}
