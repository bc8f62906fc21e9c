package automation

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/slidercrank/internal/config"
	"github.com/san-kum/slidercrank/internal/kinematics"
	"github.com/san-kum/slidercrank/internal/log"
	"github.com/san-kum/slidercrank/internal/metrics"
	"github.com/san-kum/slidercrank/internal/sim"
	"github.com/san-kum/slidercrank/internal/storage"
)

var ErrInvalidStep = errors.New("automation: invalid step")

// Scenario defines a scripted sequence of headless runs
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is one run. Params are applied over the preset, which defaults to the
// balanced mechanism. Zero dt and duration take the config defaults.
type Step struct {
	SaveAs     string             `yaml:"save_as"`
	Preset     string             `yaml:"preset"`
	Params     map[string]float64 `yaml:"params"`
	Dt         float64            `yaml:"dt"`
	Duration   float64            `yaml:"duration"`
	StartAngle float64            `yaml:"start_angle"`
}

// StepResult ties a step label to the stored run.
type StepResult struct {
	Label   string
	RunID   string
	Params  kinematics.Params
	Metrics map[string]float64
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("automation: scenario %q has no steps", sc.Name)
	}
	return &sc, nil
}

// Resolve returns the mechanism parameters and run config for the step.
func (s Step) Resolve() (kinematics.Params, sim.Config, error) {
	name := s.Preset
	if name == "" {
		name = config.DefaultPreset
	}
	p, err := config.GetPreset(name)
	if err != nil {
		return p, sim.Config{}, err
	}
	for k, v := range s.Params {
		if err := p.SetParam(k, v); err != nil {
			return p, sim.Config{}, err
		}
	}
	if v := kinematics.Validate(p); !v.Valid {
		return p, sim.Config{}, fmt.Errorf("%w: %s", ErrInvalidStep, v.Reason)
	}

	cfg := sim.Config{Dt: s.Dt, Duration: s.Duration, StartAngle: s.StartAngle}
	if cfg.Dt == 0 {
		cfg.Dt = config.DefaultDt
	}
	if cfg.Duration == 0 {
		cfg.Duration = config.DefaultDuration
	}
	return p, cfg, nil
}

// RunScenario executes and stores every step in order. It stops at the first
// failing step and returns the results gathered so far.
func RunScenario(ctx context.Context, sc *Scenario, st *storage.Store) ([]StepResult, error) {
	results := make([]StepResult, 0, len(sc.Steps))
	if err := st.Init(); err != nil {
		return results, err
	}

	for i, step := range sc.Steps {
		label := step.SaveAs
		if label == "" {
			label = fmt.Sprintf("step-%d", i+1)
		}
		log.Info("running scenario step", "scenario", sc.Name, "step", i+1, "of", len(sc.Steps), "label", label)

		p, cfg, err := step.Resolve()
		if err != nil {
			return results, fmt.Errorf("step %d (%s): %w", i+1, label, err)
		}

		s := sim.New(p)
		for _, m := range metrics.Default() {
			s.AddMetric(m)
		}

		result, err := s.Run(ctx, cfg)
		if err != nil {
			return results, fmt.Errorf("step %d (%s) run: %w", i+1, label, err)
		}

		runID, err := st.Save(p, cfg, result)
		if err != nil {
			return results, fmt.Errorf("step %d (%s) save: %w", i+1, label, err)
		}

		results = append(results, StepResult{
			Label:   label,
			RunID:   runID,
			Params:  p,
			Metrics: result.Metrics,
		})
	}

	return results, nil
}
