package viz

import (
	"image"
	"math"

	"github.com/san-kum/slidercrank/internal/kinematics"
)

// Scene is the mechanism laid out in pixel coordinates, y pointing down.
// The same layout feeds the braille canvas and the GIF renderer.
type Scene struct {
	Crank  image.Point
	Pin    image.Point
	Slider image.Point
	Radius int
	Block  image.Rectangle
	RailY  int
	RailX  [2]int
	// Linked is false when the sample is undefined; only the crank is drawn.
	Linked bool
}

const sceneMargin = 4

// Layout fits the mechanism for sample s into a w x h pixel frame. The
// horizontal scale covers the full slider travel so the frame does not jump
// as the crank turns.
func Layout(p kinematics.Params, s kinematics.Sample, w, h int) Scene {
	bw := w / 20
	if bw < 3 {
		bw = 3
	}
	bh := bw * 2 / 3
	if bh < 2 {
		bh = 2
	}

	r := math.Abs(p.CrankRadius)
	reach := math.Max(math.Abs(p.RodLength), r)

	scale := 1.0
	if span := 2*r + reach; span > 0 {
		scale = float64(w-2*sceneMargin-2*bw) / span
	}
	if r > 0 {
		scale = math.Min(scale, float64(h/2-sceneMargin-bh)/r)
	}
	if scale <= 0 || math.IsInf(scale, 0) || math.IsNaN(scale) {
		scale = 1
	}

	cx := sceneMargin + int(math.Round(r*scale))
	cy := h / 2
	sin, cos := math.Sincos(s.CrankAngle)
	if math.IsNaN(s.CrankAngle) {
		sin, cos = 0, 1
	}

	sc := Scene{
		Crank:  image.Pt(cx, cy),
		Pin:    image.Pt(cx+int(math.Round(r*cos*scale)), cy-int(math.Round(r*sin*scale))),
		Radius: int(math.Round(r * scale)),
		RailY:  cy + bh + 1,
		RailX:  [2]int{cx, w - sceneMargin},
		Linked: s.Defined(),
	}

	if sc.Linked {
		sc.Slider = image.Pt(cx+int(math.Round(s.Position*scale)), cy)
		sc.Block = image.Rect(sc.Slider.X-bw, cy-bh, sc.Slider.X+bw, cy+bh)
	}
	return sc
}

// DrawMechanism renders sc: rail, crank path, crank arm and, when linked,
// the connecting rod and slider block.
func DrawMechanism(p Plotter, sc Scene) {
	Line(p, sc.RailX[0], sc.RailY, sc.RailX[1], sc.RailY)
	Circle(p, sc.Crank.X, sc.Crank.Y, sc.Radius)
	Dot(p, sc.Crank.X, sc.Crank.Y, 1)
	Line(p, sc.Crank.X, sc.Crank.Y, sc.Pin.X, sc.Pin.Y)
	Dot(p, sc.Pin.X, sc.Pin.Y, 1)

	if !sc.Linked {
		return
	}
	Line(p, sc.Pin.X, sc.Pin.Y, sc.Slider.X, sc.Slider.Y)
	Rect(p, sc.Block.Min.X, sc.Block.Min.Y, sc.Block.Max.X, sc.Block.Max.Y)
	Dot(p, sc.Slider.X, sc.Slider.Y, 1)
}
