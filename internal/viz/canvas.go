package viz

import (
	"math"
	"strings"
)

// Braille cells pack a 2x4 dot matrix:
//
//	1 4
//	2 5
//	3 6
//	7 8
//
// starting at U+2800.
const brailleBase = 0x2800

var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a character grid addressed in braille sub-pixels. A canvas of
// Width x Height cells has (Width*2) x (Height*4) dots.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Dots returns the canvas size in sub-pixels.
func (c *Canvas) Dots() (int, int) {
	return c.Width * 2, c.Height * 4
}

func (c *Canvas) cell(x, y int) (row, col, bit int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, 0, false
	}
	return row, col, pixelMap[y%4][x%2], true
}

// Set lights the dot at (x, y). Out-of-range dots are ignored.
func (c *Canvas) Set(x, y int) {
	if row, col, bit, ok := c.cell(x, y); ok {
		c.Grid[row][col] |= rune(bit)
	}
}

func (c *Canvas) Unset(x, y int) {
	if row, col, bit, ok := c.cell(x, y); ok {
		c.Grid[row][col] &^= rune(bit)
	}
}

// IsSet reports whether the dot at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	row, col, bit, ok := c.cell(x, y)
	return ok && c.Grid[row][col]&rune(bit) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBase
		}
	}
}

// Plotter is anything dots can be lit on. The drawing helpers below work on
// the braille Canvas and on raster images alike.
type Plotter interface {
	Set(x, y int)
}

// Line draws a line using Bresenham's algorithm
func Line(p Plotter, x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		p.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Circle outlines a circle of radius r around (cx, cy).
func Circle(p Plotter, cx, cy, r int) {
	if r <= 0 {
		p.Set(cx, cy)
		return
	}
	// Enough segments that neighbouring vertices are about one dot apart.
	n := int(2*math.Pi*float64(r)) + 8
	px, py := cx+r, cy
	for i := 1; i <= n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		x := cx + int(math.Round(float64(r)*math.Cos(a)))
		y := cy + int(math.Round(float64(r)*math.Sin(a)))
		Line(p, px, py, x, y)
		px, py = x, y
	}
}

// Rect outlines the rectangle with corners (x0, y0) and (x1, y1).
func Rect(p Plotter, x0, y0, x1, y1 int) {
	Line(p, x0, y0, x1, y0)
	Line(p, x1, y0, x1, y1)
	Line(p, x1, y1, x0, y1)
	Line(p, x0, y1, x0, y0)
}

// Dot lights a square of side 2r+1 centred on (x, y).
func Dot(p Plotter, x, y, r int) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			p.Set(x+dx, y+dy)
		}
	}
}

func (c *Canvas) DrawLine(x0, y0, x1, y1 int) { Line(c, x0, y0, x1, y1) }

func (c *Canvas) DrawCircle(cx, cy, r int) { Circle(c, cx, cy, r) }

func (c *Canvas) DrawRect(x0, y0, x1, y1 int) { Rect(c, x0, y0, x1, y1) }

func (c *Canvas) FillDot(x, y, r int) { Dot(c, x, y, r) }

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
