// Package viewport computes the data-space window shared by all plotted series
// and maps data coordinates onto a fixed-size pixel surface.
package viewport

import (
	"fmt"
	"math"
)

// Margin is added to every side of the data extent.
const Margin = 1.0

// minSpan replaces a degenerate viewport span.
const minSpan = 2.0

// Point is a single (x, y) sample.
type Point struct {
	X float64
	Y float64
}

// Series is an ordered sequence of samples.
type Series []Point

// Zip pairs xs and ys positionally, truncating to the shorter slice.
func Zip(xs, ys []float64) Series {
	n := min(len(xs), len(ys))
	s := make(Series, n)
	for i := range n {
		s[i] = Point{X: xs[i], Y: ys[i]}
	}
	return s
}

// Xs returns the x coordinates of the series.
func (s Series) Xs() []float64 {
	xs := make([]float64, len(s))
	for i, p := range s {
		xs[i] = p.X
	}
	return xs
}

// Ys returns the y coordinates of the series.
func (s Series) Ys() []float64 {
	ys := make([]float64, len(s))
	for i, p := range s {
		ys[i] = p.Y
	}
	return ys
}

// EmptyInputError is returned by Compute when there are no points at all.
type EmptyInputError struct{}

func (*EmptyInputError) Error() string {
	return "viewport: no points to compute bounds from"
}

// RenderGuardError reports a degenerate viewport span that had to be replaced.
//
// The fixed margin makes this impossible for finite input, so seeing one
// indicates a bug upstream.
type RenderGuardError struct {
	Axis string
	Min  float64
	Max  float64
}

func (e *RenderGuardError) Error() string {
	return fmt.Sprintf(
		"viewport: degenerate %s span [%v, %v], substituted a span of %v",
		e.Axis, e.Min, e.Max, minSpan)
}

// Viewport is the visible data-space rectangle.
type Viewport struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// Compute returns the bounding box of the union of all series, expanded by
// Margin on each side.
func Compute(series ...Series) (Viewport, error) {
	vp := Viewport{
		MinX: math.Inf(1),
		MaxX: math.Inf(-1),
		MinY: math.Inf(1),
		MaxY: math.Inf(-1),
	}

	n := 0
	for _, s := range series {
		for _, p := range s {
			vp.MinX = math.Min(vp.MinX, p.X)
			vp.MaxX = math.Max(vp.MaxX, p.X)
			vp.MinY = math.Min(vp.MinY, p.Y)
			vp.MaxY = math.Max(vp.MaxY, p.Y)
			n++
		}
	}
	if n == 0 {
		return Viewport{}, &EmptyInputError{}
	}

	vp.MinX -= Margin
	vp.MaxX += Margin
	vp.MinY -= Margin
	vp.MaxY += Margin
	return vp, nil
}

// Check reports whether either span needs the degenerate-span guard.
func (v Viewport) Check() error {
	if !validSpan(v.MinX, v.MaxX) {
		return &RenderGuardError{Axis: "x", Min: v.MinX, Max: v.MaxX}
	}
	if !validSpan(v.MinY, v.MaxY) {
		return &RenderGuardError{Axis: "y", Min: v.MinY, Max: v.MaxY}
	}
	return nil
}

// Guarded returns the viewport with every degenerate span replaced by a span
// of two units centered on its midpoint.
func (v Viewport) Guarded() Viewport {
	v.MinX, v.MaxX = guardSpan(v.MinX, v.MaxX)
	v.MinY, v.MaxY = guardSpan(v.MinY, v.MaxY)
	return v
}

// validSpan accepts finite bounds with hi > lo, including spans whose width
// overflows float64. Mapper scales those without computing hi-lo.
func validSpan(lo, hi float64) bool {
	return isFinite(lo) && isFinite(hi) && hi > lo
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

func guardSpan(lo, hi float64) (float64, float64) {
	if validSpan(lo, hi) {
		return lo, hi
	}
	center := lo/2 + hi/2
	if !isFinite(center) {
		center = 0
	}
	return center - minSpan/2, center + minSpan/2
}
