package scene

import (
	"image/color"
	"slices"

	"github.com/wandb/regviz/internal/viewport"
)

// Rect is an axis-aligned rectangle in pixels.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Align is the horizontal anchor of a text label.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

// Label is a piece of text anchored at its baseline.
type Label struct {
	Text  string
	At    viewport.Point
	Size  float64
	Color color.RGBA
	Align Align

	// Rotation in radians, clockwise in pixel space, about At.
	Rotation float64
}

// Canvas is a raster surface the renderer draws on.
type Canvas interface {
	FillRect(r Rect, fill color.RGBA)
	StrokePath(path []viewport.Point, stroke color.RGBA, width float64)
	FillCircle(center viewport.Point, radius float64, fill color.RGBA)
	FillText(label Label)
}

// Op identifies a drawing primitive.
type Op int

const (
	OpFillRect Op = iota
	OpStrokePath
	OpFillCircle
	OpFillText
)

func (op Op) String() string {
	switch op {
	case OpFillRect:
		return "fill-rect"
	case OpStrokePath:
		return "stroke-path"
	case OpFillCircle:
		return "fill-circle"
	case OpFillText:
		return "fill-text"
	default:
		return "unknown"
	}
}

// Command is one recorded drawing primitive.
type Command struct {
	Op    Op
	Color color.RGBA

	Rect Rect // OpFillRect

	Path  []viewport.Point // OpStrokePath
	Width float64          // OpStrokePath

	Center viewport.Point // OpFillCircle
	Radius float64        // OpFillCircle

	Label Label // OpFillText
}

// Frame is the ordered output of a single render.
type Frame struct {
	Surface  viewport.Surface
	Commands []Command
}

// Replay issues the frame's commands on c in order.
func (f Frame) Replay(c Canvas) {
	for _, cmd := range f.Commands {
		switch cmd.Op {
		case OpFillRect:
			c.FillRect(cmd.Rect, cmd.Color)
		case OpStrokePath:
			c.StrokePath(cmd.Path, cmd.Color, cmd.Width)
		case OpFillCircle:
			c.FillCircle(cmd.Center, cmd.Radius, cmd.Color)
		case OpFillText:
			c.FillText(cmd.Label)
		}
	}
}

// Texts returns the content of every text command in order.
func (f Frame) Texts() []string {
	var texts []string
	for _, cmd := range f.Commands {
		if cmd.Op == OpFillText {
			texts = append(texts, cmd.Label.Text)
		}
	}
	return texts
}

// Filter returns the commands with the given op and color.
func (f Frame) Filter(op Op, c color.RGBA) []Command {
	var out []Command
	for _, cmd := range f.Commands {
		if cmd.Op == op && cmd.Color == c {
			out = append(out, cmd)
		}
	}
	return out
}

// Recorder is a Canvas that records commands instead of drawing them.
type Recorder struct {
	commands []Command
}

var _ Canvas = (*Recorder)(nil)

func (r *Recorder) FillRect(rect Rect, fill color.RGBA) {
	r.commands = append(r.commands, Command{Op: OpFillRect, Color: fill, Rect: rect})
}

func (r *Recorder) StrokePath(path []viewport.Point, stroke color.RGBA, width float64) {
	r.commands = append(r.commands, Command{
		Op:    OpStrokePath,
		Color: stroke,
		Path:  slices.Clone(path),
		Width: width,
	})
}

func (r *Recorder) FillCircle(center viewport.Point, radius float64, fill color.RGBA) {
	r.commands = append(r.commands, Command{
		Op:     OpFillCircle,
		Color:  fill,
		Center: center,
		Radius: radius,
	})
}

func (r *Recorder) FillText(label Label) {
	r.commands = append(r.commands, Command{Op: OpFillText, Color: label.Color, Label: label})
}

// Commands returns a copy of everything recorded so far.
func (r *Recorder) Commands() []Command {
	return slices.Clone(r.commands)
}
