// Package scene draws the regression chart: training points, prediction
// points and the fitted line, with axes, titles and a legend.
package scene

import (
	"fmt"
	"image/color"

	"github.com/wandb/regviz/internal/viewport"
)

// FittedLine is the result of training: y = Slope*x + Intercept.
type FittedLine struct {
	Slope     float64
	Intercept float64
}

// At evaluates the line at x.
func (l FittedLine) At(x float64) float64 {
	return l.Slope*x + l.Intercept
}

// Labels holds the human-readable text drawn on the chart.
type Labels struct {
	XAxis       string
	YAxis       string
	Placeholder string
	Training    string
	Predictions string
	Line        string
}

// DefaultLabels are the labels of the advertising demo.
var DefaultLabels = Labels{
	XAxis:       "Advertising Spend (₹k)",
	YAxis:       "Sales Revenue (₹L)",
	Placeholder: "Train the model to see visualization",
	Training:    "Training Data",
	Predictions: "Predictions",
	Line:        "Regression Line",
}

// withDefaults fills empty labels from DefaultLabels.
func (l Labels) withDefaults() Labels {
	fill := func(s *string, def string) {
		if *s == "" {
			*s = def
		}
	}
	fill(&l.XAxis, DefaultLabels.XAxis)
	fill(&l.YAxis, DefaultLabels.YAxis)
	fill(&l.Placeholder, DefaultLabels.Placeholder)
	fill(&l.Training, DefaultLabels.Training)
	fill(&l.Predictions, DefaultLabels.Predictions)
	fill(&l.Line, DefaultLabels.Line)
	return l
}

// Scene is everything the renderer draws.
type Scene struct {
	Training    viewport.Series
	Predictions viewport.Series

	// Line is nil until a model has been trained.
	Line *FittedLine

	Labels Labels
}

// Empty reports whether there are no points to draw.
func (s Scene) Empty() bool {
	return len(s.Training) == 0 && len(s.Predictions) == 0
}

// Palette.
var (
	BackgroundColor  = mustHex("#f8f9fa")
	PlaceholderColor = mustHex("#666666")
	AxisColor        = mustHex("#333333")
	TextColor        = mustHex("#333333")
	LineColor        = mustHex("#667eea")
	TrainingColor    = mustHex("#11998e")
	PredictionColor  = mustHex("#e74c3c")
)

// Geometry in pixels.
const (
	PointRadius     = 6.0
	AxisWidth       = 2.0
	LineWidth       = 3.0
	PlaceholderSize = 16.0
	TitleSize       = 14.0
	LegendSize      = 12.0

	legendOffsetX = 180.0 // legend left edge, from the right edge of the surface
	legendTextDX  = 20.0
	swatchSize    = 15.0
)

// Hex formats a color as #rrggbb.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func mustHex(s string) color.RGBA {
	var c color.RGBA
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		panic(fmt.Sprintf("scene: bad color %q: %v", s, err))
	}
	c.A = 0xff
	return c
}
