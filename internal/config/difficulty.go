package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/slidercrank/internal/kinematics"
)

type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// Difficulties lists the levels from easiest to hardest.
var Difficulties = []Difficulty{Beginner, Intermediate, Advanced}

// Range bounds one editable parameter.
type Range struct {
	Min  float64 `yaml:"min" json:"min"`
	Max  float64 `yaml:"max" json:"max"`
	Step float64 `yaml:"step" json:"step"`
}

// Ranges holds the slider bounds for every parameter at one difficulty.
type Ranges struct {
	CrankRadius Range `yaml:"crank_radius" json:"crank_radius"`
	RodLength   Range `yaml:"rod_length" json:"rod_length"`
	CrankSpeed  Range `yaml:"crank_speed" json:"crank_speed"`
}

var DifficultyRanges = map[Difficulty]Ranges{
	Beginner: {
		CrankRadius: Range{Min: 20, Max: 80, Step: 5},
		RodLength:   Range{Min: 100, Max: 200, Step: 10},
		CrankSpeed:  Range{Min: 50, Max: 200, Step: 10},
	},
	Intermediate: {
		CrankRadius: Range{Min: 10, Max: 100, Step: 1},
		RodLength:   Range{Min: 50, Max: 300, Step: 5},
		CrankSpeed:  Range{Min: 10, Max: 500, Step: 5},
	},
	Advanced: {
		CrankRadius: Range{Min: 5, Max: 150, Step: 1},
		RodLength:   Range{Min: 25, Max: 500, Step: 1},
		CrankSpeed:  Range{Min: 1, Max: 1000, Step: 1},
	},
}

func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := DifficultyRanges[d]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
	}
	return d, nil
}

// RangesFor returns the ranges for d, falling back to Beginner.
func RangesFor(d Difficulty) Ranges {
	if r, ok := DifficultyRanges[d]; ok {
		return r
	}
	return DifficultyRanges[Beginner]
}

// Next cycles to the following difficulty.
func (d Difficulty) Next() Difficulty {
	for i, x := range Difficulties {
		if x == d {
			return Difficulties[(i+1)%len(Difficulties)]
		}
	}
	return Beginner
}

// Field returns the range for a kinematics parameter name.
func (r Ranges) Field(name string) (Range, bool) {
	switch name {
	case kinematics.ParamCrankRadius:
		return r.CrankRadius, true
	case kinematics.ParamRodLength:
		return r.RodLength, true
	case kinematics.ParamCrankSpeed:
		return r.CrankSpeed, true
	}
	return Range{}, false
}

func (r Range) Clamp(v float64) float64 {
	return math.Max(r.Min, math.Min(r.Max, v))
}

// Fraction returns where v sits in the range, clamped to [0, 1].
func (r Range) Fraction(v float64) float64 {
	if r.Max == r.Min {
		return 0
	}
	f := (v - r.Min) / (r.Max - r.Min)
	return math.Max(0, math.Min(1, f))
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}
