package scene

import (
	"math"

	"github.com/wandb/regviz/internal/observability"
	"github.com/wandb/regviz/internal/viewport"
)

// Renderer draws scenes onto canvases.
//
// A Renderer holds no drawing state, so rendering the same scene twice issues
// the same commands. The zero value is ready to use.
type Renderer struct {
	// Logger receives degenerate-viewport reports. Optional.
	Logger *observability.CoreLogger
}

func NewRenderer(logger *observability.CoreLogger) *Renderer {
	return &Renderer{Logger: logger}
}

// Frame renders sc into a fresh Recorder and returns the recorded commands.
func (r *Renderer) Frame(surface viewport.Surface, sc Scene) Frame {
	rec := &Recorder{}
	r.Render(rec, surface, sc)
	return Frame{Surface: surface, Commands: rec.Commands()}
}

// Render draws sc onto c, beginning with a full clear.
func (r *Renderer) Render(c Canvas, surface viewport.Surface, sc Scene) {
	labels := sc.Labels.withDefaults()

	c.FillRect(
		Rect{Width: surface.Width, Height: surface.Height},
		BackgroundColor,
	)

	if sc.Empty() {
		c.FillText(Label{
			Text:  labels.Placeholder,
			At:    viewport.Point{X: surface.Width / 2, Y: surface.Height / 2},
			Size:  PlaceholderSize,
			Color: PlaceholderColor,
			Align: AlignCenter,
		})
		return
	}

	// Cannot fail: the scene has at least one point.
	vp, _ := viewport.Compute(sc.Training, sc.Predictions)
	if err := vp.Check(); err != nil && r.Logger != nil {
		r.Logger.CaptureError(err, "training", len(sc.Training),
			"predictions", len(sc.Predictions))
	}
	m := viewport.NewMapper(vp, surface)

	drawAxes(c, surface)

	if sc.Line != nil {
		drawLine(c, m, *sc.Line)
	}

	for _, p := range sc.Training {
		c.FillCircle(m.Point(p), PointRadius, TrainingColor)
	}
	for _, p := range sc.Predictions {
		c.FillCircle(m.Point(p), PointRadius, PredictionColor)
	}

	drawTitles(c, surface, labels)
	drawLegend(c, surface, labels, len(sc.Predictions) > 0)
}

// drawAxes strokes the left and bottom borders of the plotting region.
func drawAxes(c Canvas, s viewport.Surface) {
	c.StrokePath(
		[]viewport.Point{
			{X: s.Left(), Y: s.Top()},
			{X: s.Left(), Y: s.Bottom()},
			{X: s.Right(), Y: s.Bottom()},
		},
		AxisColor,
		AxisWidth,
	)
}

// drawLine strokes the fitted line across the full viewport width.
func drawLine(c Canvas, m viewport.Mapper, line FittedLine) {
	vp := m.Viewport()
	c.StrokePath(
		[]viewport.Point{
			m.Point(viewport.Point{X: vp.MinX, Y: line.At(vp.MinX)}),
			m.Point(viewport.Point{X: vp.MaxX, Y: line.At(vp.MaxX)}),
		},
		LineColor,
		LineWidth,
	)
}

func drawTitles(c Canvas, s viewport.Surface, labels Labels) {
	c.FillText(Label{
		Text:  labels.XAxis,
		At:    viewport.Point{X: s.Width / 2, Y: s.Height - 10},
		Size:  TitleSize,
		Color: TextColor,
		Align: AlignCenter,
	})
	c.FillText(Label{
		Text:     labels.YAxis,
		At:       viewport.Point{X: 15, Y: s.Height / 2},
		Size:     TitleSize,
		Color:    TextColor,
		Align:    AlignCenter,
		Rotation: -math.Pi / 2,
	})
}

// drawLegend draws the legend anchored to the top-right corner. Entry rows
// are fixed; the predictions row is left blank when there are none.
func drawLegend(c Canvas, s viewport.Surface, labels Labels, withPredictions bool) {
	left := s.Width - legendOffsetX
	textX := left + legendTextDX

	entry := func(text string, y float64) {
		c.FillText(Label{
			Text:  text,
			At:    viewport.Point{X: textX, Y: y},
			Size:  LegendSize,
			Color: TextColor,
			Align: AlignLeft,
		})
	}

	c.FillRect(Rect{X: left, Y: 20, Width: swatchSize, Height: swatchSize}, TrainingColor)
	entry(labels.Training, 32)

	if withPredictions {
		c.FillRect(Rect{X: left, Y: 40, Width: swatchSize, Height: swatchSize}, PredictionColor)
		entry(labels.Predictions, 52)
	}

	c.StrokePath(
		[]viewport.Point{{X: left, Y: 67}, {X: left + swatchSize, Y: 67}},
		LineColor,
		LineWidth,
	)
	entry(labels.Line, 72)
}
