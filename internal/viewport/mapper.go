package viewport

// Surface is a fixed-size pixel area. Padding insets the plotting region on
// every side.
type Surface struct {
	Width   float64
	Height  float64
	Padding float64
}

// DefaultSurface matches the chart canvas of the demo page.
var DefaultSurface = Surface{Width: 800, Height: 400, Padding: 50}

// PlotWidth is the width of the plotting region.
func (s Surface) PlotWidth() float64 {
	return s.Width - 2*s.Padding
}

// PlotHeight is the height of the plotting region.
func (s Surface) PlotHeight() float64 {
	return s.Height - 2*s.Padding
}

// Left is the pixel x of the plotting region's left edge.
func (s Surface) Left() float64 { return s.Padding }

// Right is the pixel x of the plotting region's right edge.
func (s Surface) Right() float64 { return s.Width - s.Padding }

// Top is the pixel y of the plotting region's top edge.
func (s Surface) Top() float64 { return s.Padding }

// Bottom is the pixel y of the plotting region's bottom edge.
func (s Surface) Bottom() float64 { return s.Height - s.Padding }

// Mapper converts data coordinates to pixel coordinates.
//
// Pixel origin is the top-left corner of the surface, so increasing data y
// maps to decreasing pixel y.
type Mapper struct {
	vp      Viewport
	surface Surface
}

// NewMapper returns a Mapper for the viewport and surface. Degenerate spans
// are replaced as described by Viewport.Guarded.
func NewMapper(vp Viewport, surface Surface) Mapper {
	return Mapper{vp: vp.Guarded(), surface: surface}
}

// Viewport returns the (guarded) viewport the mapper uses.
func (m Mapper) Viewport() Viewport { return m.vp }

// Surface returns the surface the mapper targets.
func (m Mapper) Surface() Surface { return m.surface }

// X maps a data x coordinate to a pixel x coordinate.
func (m Mapper) X(x float64) float64 {
	return m.surface.Padding +
		fraction(x, m.vp.MinX, m.vp.MaxX)*m.surface.PlotWidth()
}

// Y maps a data y coordinate to a pixel y coordinate.
func (m Mapper) Y(y float64) float64 {
	return m.surface.Height - m.surface.Padding -
		fraction(y, m.vp.MinY, m.vp.MaxY)*m.surface.PlotHeight()
}

// fraction returns (v-lo)/(hi-lo). Operands are halved first so that the
// differences of finite values cannot overflow.
func fraction(v, lo, hi float64) float64 {
	return (v/2 - lo/2) / (hi/2 - lo/2)
}

// Point maps a data point to pixel space.
func (m Mapper) Point(p Point) Point {
	return Point{X: m.X(p.X), Y: m.Y(p.Y)}
}
