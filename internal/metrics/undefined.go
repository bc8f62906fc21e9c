package metrics

import "github.com/san-kum/slidercrank/internal/kinematics"

// UndefinedFraction is the share of samples whose motion could not be
// evaluated. A valid mechanism scores 0.
type UndefinedFraction struct {
	undefined int
	samples   int
}

func NewUndefinedFraction() *UndefinedFraction {
	return &UndefinedFraction{}
}

func (u *UndefinedFraction) Name() string {
	return "undefined_fraction"
}

func (u *UndefinedFraction) Observe(s kinematics.Sample, t float64) {
	u.samples++
	if !s.Defined() {
		u.undefined++
	}
}

func (u *UndefinedFraction) Value() float64 {
	if u.samples == 0 {
		return 0
	}
	return float64(u.undefined) / float64(u.samples)
}

func (u *UndefinedFraction) Reset() {
	u.undefined = 0
	u.samples = 0
}
