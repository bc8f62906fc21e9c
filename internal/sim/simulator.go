package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/slidercrank/internal/kinematics"
)

// Simulator drives a Clock at fixed steps and samples the kinematics engine
// once per tick, the same way the live view does per frame.
type Simulator struct {
	params    kinematics.Params
	metrics   []Metric
	observers []Observer
}

func New(p kinematics.Params) *Simulator {
	return &Simulator{
		params:    p,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Params() kinematics.Params { return s.params }

// Run samples the mechanism from StartAngle for Duration seconds. Infeasible
// parameters do not fail the run; the samples come back undefined and are
// counted in Result.Undefined.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Samples: make([]kinematics.Sample, 0, steps+1),
		Times:   make([]float64, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	clock := Clock{Playing: true}.Seek(cfg.StartAngle)

	for i := 0; i <= steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		sample := s.observe(clock)
		if !sample.Defined() {
			result.Undefined++
		}
		result.Samples = append(result.Samples, sample)
		result.Times = append(result.Times, clock.Time)

		clock = clock.Advance(cfg.Dt, s.params.CrankSpeed)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback streams samples to callback until it returns false, the
// duration elapses or ctx is done.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, callback func(kinematics.Sample, Clock) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	clock := Clock{Playing: true}.Seek(cfg.StartAngle)
	for clock.Time <= cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(s.observe(clock), clock) {
			return nil
		}
		clock = clock.Advance(cfg.Dt, s.params.CrankSpeed)
	}
	return nil
}

func (s *Simulator) observe(c Clock) kinematics.Sample {
	sample := kinematics.EvaluateState(c.Angle, s.params)
	for _, m := range s.metrics {
		m.Observe(sample, c.Time)
	}
	for _, o := range s.observers {
		o.OnSample(sample, c.Time)
	}
	return sample
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrInvalidConfig, cfg.Duration)
	}
	return nil
}
