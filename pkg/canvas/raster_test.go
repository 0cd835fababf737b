package canvas

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRasterScale(t *testing.T) {
	for _, scale := range []float64{0, -1, 9} {
		_, err := NewRaster(scale)
		assert.Error(t, err, "scale %v", scale)
	}
}

func TestRasterPNG(t *testing.T) {
	r, err := NewRaster(0.5)
	require.NoError(t, err)
	drawSample(r)

	out, err := r.Finalize()
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 306, img.Bounds().Dx())
	assert.Equal(t, 396, img.Bounds().Dy())

	_, err = r.Finalize()
	assert.ErrorIs(t, err, ErrFinalized)
}

func TestRasterFillRect(t *testing.T) {
	r, err := NewRaster(1)
	require.NoError(t, err)

	r.FillRect(Rect{10, 10, 20, 20}, Color{255, 0, 0})
	img := r.Image()

	inside := img.RGBAAt(20, 20)
	assert.Equal(t, uint8(255), inside.R)
	assert.Equal(t, uint8(0), inside.G)

	outside := img.RGBAAt(100, 100)
	assert.Equal(t, uint8(255), outside.G, "page starts white")
}

func TestRasterGradient(t *testing.T) {
	r, err := NewRaster(1)
	require.NoError(t, err)

	r.FillLinearGradient(Rect{0, 0, 100, 10},
		[]ColorStop{{0, Black}, {1, White}}, Point{0, 0.5}, Point{1, 0.5})
	img := r.Image()

	left, right := img.RGBAAt(1, 5), img.RGBAAt(98, 5)
	assert.Less(t, left.R, uint8(20))
	assert.Greater(t, right.R, uint8(235))
}

func TestRasterMeasureText(t *testing.T) {
	r, err := NewRaster(2)
	require.NoError(t, err)

	w1, _ := r.MeasureText("abc", Font{Size: 10})
	w2, _ := r.MeasureText("abc", Font{Size: 20})
	assert.Greater(t, w1, 0.0)
	assert.InDelta(t, 2*w1, w2, 1.5)
}
