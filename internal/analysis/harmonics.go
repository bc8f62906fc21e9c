package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Harmonics are the amplitudes of the first two Fourier components of slider
// acceleration over one revolution. The primary force runs at crank speed and
// equals r·ω²; the secondary runs at twice crank speed and is close to
// (r/l)·r·ω². Balancing work targets these two.
type Harmonics struct {
	Primary   float64 `json:"primary"`
	Secondary float64 `json:"secondary"`
}

// Ratio returns Secondary/Primary, or 0 when there is no primary component.
func (h Harmonics) Ratio() float64 {
	if h.Primary == 0 {
		return 0
	}
	return h.Secondary / h.Primary
}

// AccelerationHarmonics expects one revolution of evenly spaced samples
// without the repeated closing point.
func AccelerationHarmonics(samples []float64) Harmonics {
	n := len(samples)
	if n < 5 {
		return Harmonics{}
	}

	spectrum := fft.FFTReal(samples)
	scale := 2 / float64(n)
	return Harmonics{
		Primary:   cmplx.Abs(spectrum[1]) * scale,
		Secondary: cmplx.Abs(spectrum[2]) * scale,
	}
}
