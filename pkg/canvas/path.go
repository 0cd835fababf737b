package canvas

import (
	"cmp"
	"math"
	"slices"
)

// kappa is the control point distance for approximating a quarter circle
// with a cubic Bézier curve.
const kappa = 0.5522847498

type segKind int

const (
	segMove segKind = iota
	segLine
	segCube
	segClose
)

// segment is one path command. Line uses pts[0]; cube uses pts[0..2].
type segment struct {
	kind segKind
	pts  [3]Point
}

type path []segment

func (p *path) moveTo(x, y float64) {
	*p = append(*p, segment{kind: segMove, pts: [3]Point{{x, y}}})
}

func (p *path) lineTo(x, y float64) {
	*p = append(*p, segment{kind: segLine, pts: [3]Point{{x, y}}})
}

func (p *path) cubeTo(x1, y1, x2, y2, x, y float64) {
	*p = append(*p, segment{kind: segCube, pts: [3]Point{{x1, y1}, {x2, y2}, {x, y}}})
}

func (p *path) close() {
	*p = append(*p, segment{kind: segClose})
}

func rectPath(r Rect) path {
	var p path
	p.moveTo(r.X, r.Y)
	p.lineTo(r.X+r.W, r.Y)
	p.lineTo(r.X+r.W, r.Y+r.H)
	p.lineTo(r.X, r.Y+r.H)
	p.close()
	return p
}

// roundedRectPath traces r clockwise (in page coordinates) with all four
// corners rounded. The radius is clamped to half the shorter side.
func roundedRectPath(r Rect, radius float64) path {
	radius = max(0, min(radius, r.W/2, r.H/2))
	if radius == 0 {
		return rectPath(r)
	}
	k := radius * kappa
	x0, y0 := r.X, r.Y
	x1, y1 := r.X+r.W, r.Y+r.H

	var p path
	p.moveTo(x0+radius, y0)
	p.lineTo(x1-radius, y0)
	p.cubeTo(x1-radius+k, y0, x1, y0+radius-k, x1, y0+radius)
	p.lineTo(x1, y1-radius)
	p.cubeTo(x1, y1-radius+k, x1-radius+k, y1, x1-radius, y1)
	p.lineTo(x0+radius, y1)
	p.cubeTo(x0+radius-k, y1, x0, y1-radius+k, x0, y1-radius)
	p.lineTo(x0, y0+radius)
	p.cubeTo(x0, y0+radius-k, x0+radius-k, y0, x0+radius, y0)
	p.close()
	return p
}

// ellipsePath traces the ellipse inscribed in r with four cubic arcs.
func ellipsePath(r Rect) path {
	rx, ry := r.W/2, r.H/2
	cx, cy := r.X+rx, r.Y+ry
	kx, ky := rx*kappa, ry*kappa

	var p path
	p.moveTo(cx+rx, cy)
	p.cubeTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
	p.cubeTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
	p.cubeTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
	p.cubeTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
	p.close()
	return p
}

// linePath outlines a butt-capped stroke of the given width along from→to.
func linePath(from, to Point, width float64) path {
	dx, dy := to.X-from.X, to.Y-from.Y
	l := math.Hypot(dx, dy)
	if l == 0 || width <= 0 {
		return nil
	}
	nx, ny := -dy/l*width/2, dx/l*width/2

	var p path
	p.moveTo(from.X+nx, from.Y+ny)
	p.lineTo(to.X+nx, to.Y+ny)
	p.lineTo(to.X-nx, to.Y-ny)
	p.lineTo(from.X-nx, from.Y-ny)
	p.close()
	return p
}

// strokeRectPaths returns the four sides of r as filled outlines centered on
// the rectangle's edges.
func strokeRectPaths(r Rect, width float64) []path {
	h := width / 2
	return []path{
		rectPath(Rect{r.X - h, r.Y - h, r.W + width, width}),
		rectPath(Rect{r.X - h, r.Y + r.H - h, r.W + width, width}),
		rectPath(Rect{r.X - h, r.Y + h, width, r.H - width}),
		rectPath(Rect{r.X + r.W - h, r.Y + h, width, r.H - width}),
	}
}

// normalizeStops sorts stops by offset and clamps offsets to [0, 1].
// An empty list yields a single black stop.
func normalizeStops(stops []ColorStop) []ColorStop {
	if len(stops) == 0 {
		return []ColorStop{{0, Black}}
	}
	out := make([]ColorStop, len(stops))
	for i, s := range stops {
		s.Offset = max(0, min(1, s.Offset))
		out[i] = s
	}
	slices.SortStableFunc(out, func(a, b ColorStop) int {
		return cmp.Compare(a.Offset, b.Offset)
	})
	return out
}
