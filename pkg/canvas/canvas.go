// Package canvas abstracts a single fixed-size page that can be drawn on with
// a handful of primitives and then serialized.
//
// All coordinates are in points, with the origin at the top-left corner of the
// page and y increasing downward. Backends whose native coordinate system
// differs translate on emission.
package canvas

import "errors"

// US Letter in points.
const (
	PageWidth  = 612.0
	PageHeight = 792.0
)

// ascent is the distance from the top of a text line to its baseline, as a
// fraction of the font size. Text origins passed to DrawText are top-left.
const ascent = 0.8

// lineHeight is the height of one line of text as a fraction of the font size.
const lineHeight = 1.2

// ErrFinalized is returned by Finalize when called more than once.
var ErrFinalized = errors.New("canvas: already finalized")

// Point is a position on the page.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle; X, Y is its top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Color is an 8-bit RGB color.
type Color struct {
	R, G, B uint8
}

// Common colors.
var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
)

// Family selects a typeface.
type Family int

const (
	Sans Family = iota
	Serif
	Mono
)

// Style selects a face within a family.
type Style int

const (
	Regular Style = iota
	Bold
	Italic
	BoldItalic
)

// Font describes the face and size used to draw text.
type Font struct {
	Family Family
	Style  Style
	Size   float64
}

// ColorStop is one color of a gradient. Offset runs from 0 at the start point
// to 1 at the end point.
type ColorStop struct {
	Offset float64
	Color  Color
}

// Canvas is a drawing surface for one page.
//
// Gradient start and end points are given in unit coordinates relative to the
// filled rectangle: (0,0) is its top-left and (1,1) its bottom-right corner.
type Canvas interface {
	DrawText(text string, origin Point, font Font, color Color)
	DrawLine(from, to Point, width float64, color Color)
	FillRect(r Rect, color Color)
	StrokeRect(r Rect, color Color, width float64)
	FillRoundedRect(r Rect, radius float64, color Color)
	FillEllipse(r Rect, color Color)
	FillLinearGradient(r Rect, stops []ColorStop, start, end Point)

	// MeasureText returns the advance width and line height of text.
	MeasureText(text string, font Font) (width, height float64)

	// Finalize ends the page and serializes it. It must be called exactly
	// once, after all drawing.
	Finalize() ([]byte, error)
}

// Lerp interpolates between a and b; t is clamped to [0, 1].
func Lerp(a, b Color, t float64) Color {
	t = max(0, min(1, t))
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return Color{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B)}
}

// colorAt evaluates a gradient with sorted stops at offset t.
func colorAt(stops []ColorStop, t float64) Color {
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if t <= b.Offset {
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Color
			}
			return Lerp(a.Color, b.Color, (t-a.Offset)/span)
		}
	}
	return stops[len(stops)-1].Color
}
