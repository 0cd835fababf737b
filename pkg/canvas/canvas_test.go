package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLerp(t *testing.T) {
	a, b := Color{0, 0, 0}, Color{200, 100, 50}

	assert.Equal(t, a, Lerp(a, b, 0))
	assert.Equal(t, b, Lerp(a, b, 1))
	assert.Equal(t, Color{100, 50, 25}, Lerp(a, b, 0.5))
	assert.Equal(t, a, Lerp(a, b, -3))
	assert.Equal(t, b, Lerp(a, b, 7))
}

func TestColorAt(t *testing.T) {
	red, green, blue := Color{255, 0, 0}, Color{0, 255, 0}, Color{0, 0, 255}
	stops := []ColorStop{{0, red}, {0.5, green}, {1, blue}}

	assert.Equal(t, red, colorAt(stops, -1))
	assert.Equal(t, red, colorAt(stops, 0))
	assert.Equal(t, green, colorAt(stops, 0.5))
	assert.Equal(t, blue, colorAt(stops, 1))
	assert.Equal(t, blue, colorAt(stops, 2))
	assert.Equal(t, Color{128, 128, 0}, colorAt(stops, 0.25))
}

func TestNormalizeStops(t *testing.T) {
	got := normalizeStops([]ColorStop{{1.5, White}, {-1, Black}, {0.5, Color{1, 2, 3}}})
	assert.Equal(t, []ColorStop{{0, Black}, {0.5, Color{1, 2, 3}}, {1, White}}, got)

	assert.Equal(t, []ColorStop{{0, Black}}, normalizeStops(nil))
}

func TestRoundedRectPathClampsRadius(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 40, H: 20}

	square := roundedRectPath(r, 0)
	assert.Equal(t, rectPath(r), square)

	p := roundedRectPath(r, 100)
	// Start point sits one clamped radius (H/2) in from the left edge.
	assert.Equal(t, segMove, p[0].kind)
	assert.Equal(t, Point{20, 10}, p[0].pts[0])
	assert.Equal(t, segClose, p[len(p)-1].kind)
}

func TestEllipsePathBounds(t *testing.T) {
	p := ellipsePath(Rect{X: 0, Y: 0, W: 20, H: 10})
	for _, s := range p {
		n := 0
		switch s.kind {
		case segMove, segLine:
			n = 1
		case segCube:
			n = 3
		}
		for _, pt := range s.pts[:n] {
			assert.GreaterOrEqual(t, pt.X, 0.0)
			assert.LessOrEqual(t, pt.X, 20.0)
			assert.GreaterOrEqual(t, pt.Y, 0.0)
			assert.LessOrEqual(t, pt.Y, 10.0)
		}
	}
}

func TestLinePathDegenerate(t *testing.T) {
	assert.Nil(t, linePath(Point{1, 1}, Point{1, 1}, 2))
	assert.Nil(t, linePath(Point{0, 0}, Point{10, 0}, 0))

	p := linePath(Point{0, 0}, Point{10, 0}, 2)
	assert.Len(t, p, 5)
	assert.Equal(t, Point{0, 1}, p[0].pts[0])
}

func TestStrokeRectPaths(t *testing.T) {
	sides := strokeRectPaths(Rect{X: 0, Y: 0, W: 10, H: 10}, 2)
	assert.Len(t, sides, 4)
	// Top side spans the full outer width.
	assert.Equal(t, rectPath(Rect{-1, -1, 12, 2}), sides[0])
}
