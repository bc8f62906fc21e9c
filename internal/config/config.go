package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/slidercrank/internal/kinematics"
	"gopkg.in/yaml.v3"
)

const (
	DefaultCrankRadius = 50.0
	DefaultRodLength   = 150.0
	DefaultCrankSpeed  = 150.0
	DefaultDt          = 1.0 / 60
	DefaultDuration    = 4.0
	DefaultFPS         = 30
	DefaultTheme       = "cyberpunk"
	DefaultPreset      = "balanced"
)

var (
	ErrUnknownPreset     = errors.New("config: unknown preset")
	ErrUnknownDifficulty = errors.New("config: unknown difficulty")
)

type Config struct {
	Preset     string            `yaml:"preset,omitempty"`
	Difficulty Difficulty        `yaml:"difficulty"`
	Params     kinematics.Params `yaml:"params"`
	StartAngle float64           `yaml:"start_angle"`
	Dt         float64           `yaml:"dt"`
	Duration   float64           `yaml:"duration"`
	FPS        int               `yaml:"fps"`
	Theme      string            `yaml:"theme"`
}

func DefaultConfig() *Config {
	return &Config{
		Difficulty: Beginner,
		Params: kinematics.Params{
			CrankRadius: DefaultCrankRadius,
			RodLength:   DefaultRodLength,
			CrankSpeed:  DefaultCrankSpeed,
		},
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		FPS:      DefaultFPS,
		Theme:    DefaultTheme,
	}
}

// Load reads a YAML config. A named preset seeds the mechanism params; any
// params written explicitly in the file win over the preset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	var head struct {
		Preset string `yaml:"preset"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if head.Preset != "" {
		p, err := GetPreset(head.Preset)
		if err != nil {
			return nil, err
		}
		cfg.Params = p
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	d, err := ParseDifficulty(string(cfg.Difficulty))
	if err != nil {
		return nil, err
	}
	cfg.Difficulty = d
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the mechanism and the run settings.
func (c *Config) Validate() error {
	if v := kinematics.Validate(c.Params); !v.Valid {
		return fmt.Errorf("invalid params: %s", v.Reason)
	}
	return c.ValidateSettings()
}

// ValidateSettings checks everything except the mechanism geometry, which the
// live view and the validate command are allowed to receive in an infeasible
// state.
func (c *Config) ValidateSettings() error {
	if _, ok := DifficultyRanges[c.Difficulty]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDifficulty, c.Difficulty)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", c.Duration)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	return nil
}
