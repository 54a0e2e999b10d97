// Package termchart draws scene commands on a terminal cell canvas using
// braille patterns for sub-cell resolution.
package termchart

import (
	"image/color"
	"math"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/canvas/graph"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/wandb/regviz/internal/scene"
	"github.com/wandb/regviz/internal/viewport"
)

// Braille patterns are 2 dots wide and 4 dots high.
const (
	dotsPerCellX = 2
	dotsPerCellY = 4
)

const swatchRune = '█'

// Canvas is a scene.Canvas that scales a pixel surface onto a terminal grid.
type Canvas struct {
	model   canvas.Model
	surface viewport.Surface
	cols    int
	rows    int
}

var _ scene.Canvas = (*Canvas)(nil)

// New returns a canvas of cols x rows cells showing the given pixel surface.
func New(cols, rows int, surface viewport.Surface) *Canvas {
	cols, rows = max(cols, 1), max(rows, 1)
	return &Canvas{
		model:   canvas.New(cols, rows),
		surface: surface,
		cols:    cols,
		rows:    rows,
	}
}

// Render draws a whole frame on a new canvas and returns its view.
func Render(cols, rows int, frame scene.Frame) string {
	c := New(cols, rows, frame.Surface)
	frame.Replay(c)
	return c.View()
}

// View returns the canvas contents.
func (c *Canvas) View() string {
	return c.model.View()
}

func styleFor(col color.RGBA) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(scene.Hex(col)))
}

// cell maps a pixel coordinate to the cell containing it.
func (c *Canvas) cell(p viewport.Point) canvas.Point {
	x := int(math.Floor(p.X / c.surface.Width * float64(c.cols)))
	y := int(math.Floor(p.Y / c.surface.Height * float64(c.rows)))
	return canvas.Point{
		X: min(max(x, 0), c.cols-1),
		Y: min(max(y, 0), c.rows-1),
	}
}

func (c *Canvas) newGrid() *graph.BrailleGrid {
	return graph.NewBrailleGrid(
		c.cols, c.rows,
		0, c.surface.Width,
		0, c.surface.Height,
	)
}

// gridPoint maps a pixel coordinate to a braille dot. The grid is Cartesian,
// so pixel y is flipped.
func (c *Canvas) gridPoint(g *graph.BrailleGrid, p viewport.Point) canvas.Point {
	return g.GridPoint(canvas.Float64Point{X: p.X, Y: c.surface.Height - p.Y})
}

// setDot sets a braille dot, ignoring dots outside the grid.
func (c *Canvas) setDot(g *graph.BrailleGrid, p canvas.Point) {
	if p.X < 0 || p.Y < 0 ||
		p.X >= c.cols*dotsPerCellX || p.Y >= c.rows*dotsPerCellY {
		return
	}
	g.Set(p)
}

func (c *Canvas) FillRect(r scene.Rect, fill color.RGBA) {
	if r.Width >= c.surface.Width && r.Height >= c.surface.Height {
		c.model.Clear()
		return
	}

	style := styleFor(fill)
	topLeft := c.cell(viewport.Point{X: r.X, Y: r.Y})
	bottomRight := c.cell(viewport.Point{
		X: r.X + math.Max(r.Width-1, 0),
		Y: r.Y + math.Max(r.Height-1, 0),
	})
	for y := topLeft.Y; y <= bottomRight.Y; y++ {
		for x := topLeft.X; x <= bottomRight.X; x++ {
			c.model.SetRuneWithStyle(canvas.Point{X: x, Y: y}, swatchRune, style)
		}
	}
}

func (c *Canvas) StrokePath(path []viewport.Point, stroke color.RGBA, _ float64) {
	if len(path) == 0 {
		return
	}

	g := c.newGrid()
	if len(path) == 1 {
		if p, _, ok := clipSegment(path[0], path[0], c.surface); ok {
			c.setDot(g, c.gridPoint(g, p))
		}
	}
	for i := 1; i < len(path); i++ {
		from, to, ok := clipSegment(path[i-1], path[i], c.surface)
		if !ok {
			continue
		}
		c.drawLine(g, c.gridPoint(g, from), c.gridPoint(g, to))
	}
	graph.DrawBraillePatterns(&c.model, canvas.Point{}, g.BraillePatterns(), styleFor(stroke))
}

func (c *Canvas) FillCircle(center viewport.Point, radius float64, fill color.RGBA) {
	g := c.newGrid()
	gc := c.gridPoint(g, center)

	// Radius in dots along each axis; cells are not square.
	rx := radius / c.surface.Width * float64(c.cols*dotsPerCellX)
	ry := radius / c.surface.Height * float64(c.rows*dotsPerCellY)

	c.setDot(g, gc)
	for dy := -int(ry); dy <= int(ry); dy++ {
		for dx := -int(rx); dx <= int(rx); dx++ {
			if ellipseContains(float64(dx), float64(dy), rx, ry) {
				c.setDot(g, canvas.Point{X: gc.X + dx, Y: gc.Y + dy})
			}
		}
	}
	graph.DrawBraillePatterns(&c.model, canvas.Point{}, g.BraillePatterns(), styleFor(fill))
}

func ellipseContains(dx, dy, rx, ry float64) bool {
	if rx <= 0 || ry <= 0 {
		return dx == 0 && dy == 0
	}
	return (dx*dx)/(rx*rx)+(dy*dy)/(ry*ry) <= 1
}

func (c *Canvas) FillText(label scene.Label) {
	style := styleFor(label.Color)
	text := []rune(label.Text)
	at := c.cell(label.At)

	// Quarter turns are written as a column reading bottom to top.
	if math.Abs(label.Rotation) > math.Pi/4 {
		start := at.Y + len(text)/2
		for i, r := range text {
			c.model.SetRuneWithStyle(canvas.Point{X: at.X, Y: start - i}, r, style)
		}
		return
	}

	x := at.X
	if label.Align == scene.AlignCenter {
		x -= runewidth.StringWidth(label.Text) / 2
	}
	for _, r := range text {
		c.model.SetRuneWithStyle(canvas.Point{X: x, Y: at.Y}, r, style)
		x += max(runewidth.RuneWidth(r), 1)
	}
}

// Outcode bits for clipSegment. Pixel y grows downward.
const (
	outLeft = 1 << iota
	outRight
	outAbove
	outBelow
)

func outcode(x, y, w, h float64) int {
	code := 0
	switch {
	case x < 0:
		code |= outLeft
	case x > w:
		code |= outRight
	}
	switch {
	case y < 0:
		code |= outAbove
	case y > h:
		code |= outBelow
	}
	return code
}

// clipSegment clips the segment a-b to the surface rectangle using the
// Cohen-Sutherland algorithm. It reports false if no part of the segment is
// visible or an endpoint is not finite.
//
// Bresenham visits every dot between its endpoints, so segments must be
// clipped before they reach drawLine.
func clipSegment(a, b viewport.Point, s viewport.Surface) (viewport.Point, viewport.Point, bool) {
	if !finite(a) || !finite(b) {
		return a, b, false
	}

	// Halved so that differences of finite coordinates cannot overflow.
	x0, y0, x1, y1 := a.X/2, a.Y/2, b.X/2, b.Y/2
	w, h := s.Width/2, s.Height/2

	// Each pass moves one endpoint onto an edge.
	for range 8 {
		c0, c1 := outcode(x0, y0, w, h), outcode(x1, y1, w, h)
		if c0|c1 == 0 {
			return viewport.Point{X: 2 * clamp(x0, 0, w), Y: 2 * clamp(y0, 0, h)},
				viewport.Point{X: 2 * clamp(x1, 0, w), Y: 2 * clamp(y1, 0, h)},
				true
		}
		if c0&c1 != 0 {
			return a, b, false
		}

		code := c0
		if code == 0 {
			code = c1
		}

		var x, y float64
		switch {
		case code&outAbove != 0:
			x, y = x0+(x1-x0)*((0-y0)/(y1-y0)), 0
		case code&outBelow != 0:
			x, y = x0+(x1-x0)*((h-y0)/(y1-y0)), h
		case code&outLeft != 0:
			x, y = 0, y0+(y1-y0)*((0-x0)/(x1-x0))
		default:
			x, y = w, y0+(y1-y0)*((w-x0)/(x1-x0))
		}

		if code == c0 {
			x0, y0 = x, y
		} else {
			x1, y1 = x, y
		}
	}

	return a, b, false
}

func finite(p viewport.Point) bool {
	return !math.IsInf(p.X, 0) && !math.IsNaN(p.X) &&
		!math.IsInf(p.Y, 0) && !math.IsNaN(p.Y)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// drawLine draws a line using Bresenham's algorithm.
//
// See https://en.wikipedia.org/wiki/Bresenham%27s_line_algorithm.
func (c *Canvas) drawLine(g *graph.BrailleGrid, p1, p2 canvas.Point) {
	dx := abs(p2.X - p1.X)
	dy := abs(p2.Y - p1.Y)

	sx := 1
	if p1.X > p2.X {
		sx = -1
	}
	sy := 1
	if p1.Y > p2.Y {
		sy = -1
	}

	err := dx - dy
	x, y := p1.X, p1.Y
	for {
		c.setDot(g, canvas.Point{X: x, Y: y})
		if x == p2.X && y == p2.Y {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
