package rastercanvas_test

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/regviz/internal/rastercanvas"
	"github.com/wandb/regviz/internal/scene"
	"github.com/wandb/regviz/internal/viewport"
)

func rgba(c color.Color) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}

func TestRender_PixelColors(t *testing.T) {
	surface := viewport.DefaultSurface
	sc := scene.Scene{
		Training:    viewport.Zip([]float64{1, 2, 3}, []float64{2, 4, 6}),
		Predictions: viewport.Series{{X: 5, Y: 10}},
		Line:        &scene.FittedLine{Slope: 2},
	}
	frame := scene.NewRenderer(nil).Frame(surface, sc)

	c, err := rastercanvas.Render(frame)
	require.NoError(t, err)
	img := c.Image()

	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 400, img.Bounds().Dy())
	assert.Equal(t, scene.BackgroundColor, rgba(img.At(5, 5)))

	vp, err := viewport.Compute(sc.Training, sc.Predictions)
	require.NoError(t, err)
	m := viewport.NewMapper(vp, surface)

	p := m.Point(sc.Training[0])
	assert.Equal(t, scene.TrainingColor, rgba(img.At(int(p.X), int(p.Y))))

	p = m.Point(sc.Predictions[0])
	assert.Equal(t, scene.PredictionColor, rgba(img.At(int(p.X), int(p.Y))))
}

func TestEncodePNG(t *testing.T) {
	frame := scene.NewRenderer(nil).Frame(
		viewport.Surface{Width: 120, Height: 80, Padding: 10},
		scene.Scene{},
	)
	c, err := rastercanvas.Render(frame)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, c.EncodePNG(&buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 80, img.Bounds().Dy())
	assert.Equal(t, scene.BackgroundColor, rgba(img.At(0, 79)))
}
