// Package rastercanvas draws scene commands into an RGBA image.
package rastercanvas

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/wandb/regviz/internal/scene"
	"github.com/wandb/regviz/internal/viewport"
)

// Canvas is a scene.Canvas backed by a gg drawing context.
type Canvas struct {
	dc    *gg.Context
	font  *opentype.Font
	faces map[float64]font.Face
}

var _ scene.Canvas = (*Canvas)(nil)

// New returns a canvas with the surface's pixel dimensions.
func New(surface viewport.Surface) (*Canvas, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("rastercanvas: failed to parse font: %v", err)
	}

	dc := gg.NewContext(
		int(math.Ceil(surface.Width)),
		int(math.Ceil(surface.Height)),
	)
	dc.SetLineCapButt()

	return &Canvas{dc: dc, font: f, faces: make(map[float64]font.Face)}, nil
}

// Render draws a whole frame on a new canvas.
func Render(frame scene.Frame) (*Canvas, error) {
	c, err := New(frame.Surface)
	if err != nil {
		return nil, err
	}
	frame.Replay(c)
	return c, nil
}

func (c *Canvas) FillRect(r scene.Rect, fill color.RGBA) {
	c.dc.SetColor(fill)
	c.dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
	c.dc.Fill()
}

func (c *Canvas) StrokePath(path []viewport.Point, stroke color.RGBA, width float64) {
	if len(path) < 2 {
		return
	}

	c.dc.SetColor(stroke)
	c.dc.SetLineWidth(width)
	c.dc.NewSubPath()
	c.dc.MoveTo(path[0].X, path[0].Y)
	for _, p := range path[1:] {
		c.dc.LineTo(p.X, p.Y)
	}
	c.dc.Stroke()
}

func (c *Canvas) FillCircle(center viewport.Point, radius float64, fill color.RGBA) {
	c.dc.SetColor(fill)
	c.dc.DrawCircle(center.X, center.Y, radius)
	c.dc.Fill()
}

func (c *Canvas) FillText(label scene.Label) {
	// On error gg keeps its built-in face.
	if face, err := c.face(label.Size); err == nil {
		c.dc.SetFontFace(face)
	}

	ax := 0.0
	if label.Align == scene.AlignCenter {
		ax = 0.5
	}

	c.dc.Push()
	defer c.dc.Pop()

	c.dc.SetColor(label.Color)
	if label.Rotation != 0 {
		c.dc.RotateAbout(label.Rotation, label.At.X, label.At.Y)
	}
	c.dc.DrawStringAnchored(label.Text, label.At.X, label.At.Y, ax, 0)
}

// face returns a cached font face for the pixel size.
func (c *Canvas) face(size float64) (font.Face, error) {
	if face, ok := c.faces[size]; ok {
		return face, nil
	}

	face, err := opentype.NewFace(c.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	c.faces[size] = face
	return face, nil
}

// Image returns the drawn image.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// EncodePNG writes the image to w as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return c.dc.EncodePNG(w)
}

// SavePNG writes the image to a PNG file.
func (c *Canvas) SavePNG(path string) error {
	return c.dc.SavePNG(path)
}
