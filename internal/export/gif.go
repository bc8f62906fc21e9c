package export

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/san-kum/slidercrank/internal/kinematics"
	"github.com/san-kum/slidercrank/internal/viz"
)

const (
	MinGIFSize = 64
	// gifDelay is the frame delay in hundredths of a second.
	gifDelay = 4
	// labelBand is the strip under the mechanism reserved for the label.
	labelBand = 18
)

var ErrBadGIFOptions = errors.New("export: invalid gif options")

var gifPalette = color.Palette{
	color.RGBA{0x0a, 0x0a, 0x0a, 0xff},
	color.RGBA{0x00, 0xff, 0xff, 0xff},
	color.RGBA{0xff, 0xff, 0xff, 0xff},
	color.RGBA{0xff, 0x44, 0x44, 0xff},
}

const (
	bgIndex uint8 = iota
	lineIndex
	textIndex
	warnIndex
)

// paletted adapts a paletted image to viz.Plotter.
type paletted struct {
	img   *image.Paletted
	index uint8
}

func (p paletted) Set(x, y int) {
	if image.Pt(x, y).In(p.img.Rect) {
		p.img.SetColorIndex(x, y, p.index)
	}
}

// RevolutionGIF writes an animation of one full crank revolution in frames
// steps. Each frame is size pixels wide and carries an angle label. Angles
// where the mechanism cannot close show the crank alone and a warning label.
func RevolutionGIF(w io.Writer, p kinematics.Params, frames, size int) error {
	if frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", ErrBadGIFOptions, frames)
	}
	if size < MinGIFSize {
		return fmt.Errorf("%w: size must be at least %d, got %d", ErrBadGIFOptions, MinGIFSize, size)
	}

	height := size/2 + labelBand
	anim := gif.GIF{LoopCount: 0}
	for i := 0; i < frames; i++ {
		angle := 2 * math.Pi * float64(i) / float64(frames)
		anim.Image = append(anim.Image, renderFrame(p, kinematics.EvaluateState(angle, p), size, height))
		anim.Delay = append(anim.Delay, gifDelay)
	}

	return gif.EncodeAll(w, &anim)
}

func renderFrame(p kinematics.Params, s kinematics.Sample, width, height int) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, width, height), gifPalette)

	sc := viz.Layout(p, s, width, height-labelBand)
	viz.DrawMechanism(paletted{img: img, index: lineIndex}, sc)

	label := fmt.Sprintf("%3.0f deg  x=%.1f mm", s.AngleDegrees(), s.Position)
	idx := textIndex
	if !s.Defined() {
		label = fmt.Sprintf("%3.0f deg  undefined", s.AngleDegrees())
		idx = warnIndex
	}
	drawLabel(img, label, idx, 4, height-5)
	return img
}

func drawLabel(img *image.Paletted, text string, index uint8, x, y int) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(gifPalette[index]),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
