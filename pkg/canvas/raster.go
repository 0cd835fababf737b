package canvas

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// maxRasterScale bounds the preview resolution (scale 8 is 576 dpi).
const maxRasterScale = 8

type faceKey struct {
	family Family
	style  Style
	size   float64
}

// Raster draws onto an in-memory RGBA image and encodes it as PNG. It is
// used for page previews; one point maps to Scale pixels.
type Raster struct {
	Scale float64

	img   *image.RGBA
	ras   *vector.Rasterizer
	fonts map[faceKey]*opentype.Font
	faces map[faceKey]font.Face
	done  bool
}

// NewRaster allocates a white page image at the given scale.
func NewRaster(scale float64) (*Raster, error) {
	if !(scale > 0) || scale > maxRasterScale {
		return nil, fmt.Errorf("raster scale %v out of range (0, %d]", scale, maxRasterScale)
	}
	w := int(math.Ceil(PageWidth * scale))
	h := int(math.Ceil(PageHeight * scale))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	r := &Raster{
		Scale: scale,
		img:   img,
		ras:   vector.NewRasterizer(w, h),
		fonts: make(map[faceKey]*opentype.Font),
		faces: make(map[faceKey]font.Face),
	}
	if err := r.loadFonts(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Raster) loadFonts() error {
	ttfs := map[faceKey][]byte{
		{Sans, Regular, 0}:    goregular.TTF,
		{Sans, Bold, 0}:       gobold.TTF,
		{Sans, Italic, 0}:     goitalic.TTF,
		{Sans, BoldItalic, 0}: gobolditalic.TTF,
		{Mono, Regular, 0}:    gomono.TTF,
		{Mono, Bold, 0}:       gomonobold.TTF,
		{Mono, Italic, 0}:     gomonoitalic.TTF,
		{Mono, BoldItalic, 0}: gomonobolditalic.TTF,
	}
	for k, ttf := range ttfs {
		f, err := opentype.Parse(ttf)
		if err != nil {
			return fmt.Errorf("parse font: %w", err)
		}
		r.fonts[k] = f
	}
	return nil
}

// Image exposes the page being drawn.
func (r *Raster) Image() *image.RGBA {
	return r.img
}

func (r *Raster) face(f Font) font.Face {
	family := f.Family
	if family == Serif {
		// The Go fonts ship no serif face.
		family = Sans
	}
	key := faceKey{family, f.Style, f.Size}
	if face, ok := r.faces[key]; ok {
		return face
	}
	face, err := opentype.NewFace(r.fonts[faceKey{family, f.Style, 0}], &opentype.FaceOptions{
		Size:    f.Size * r.Scale,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		face = nil
	}
	r.faces[key] = face
	return face
}

func rgba(c Color) color.RGBA {
	return color.RGBA{c.R, c.G, c.B, 0xff}
}

func (r *Raster) fill(p path, src image.Image) {
	if len(p) == 0 {
		return
	}
	b := r.img.Bounds()
	r.ras.Reset(b.Dx(), b.Dy())
	s := float32(r.Scale)
	for _, seg := range p {
		switch seg.kind {
		case segMove:
			r.ras.MoveTo(float32(seg.pts[0].X)*s, float32(seg.pts[0].Y)*s)
		case segLine:
			r.ras.LineTo(float32(seg.pts[0].X)*s, float32(seg.pts[0].Y)*s)
		case segCube:
			r.ras.CubeTo(
				float32(seg.pts[0].X)*s, float32(seg.pts[0].Y)*s,
				float32(seg.pts[1].X)*s, float32(seg.pts[1].Y)*s,
				float32(seg.pts[2].X)*s, float32(seg.pts[2].Y)*s)
		case segClose:
			r.ras.ClosePath()
		}
	}
	r.ras.Draw(r.img, b, src, image.Point{})
}

func (r *Raster) DrawText(text string, origin Point, f Font, c Color) {
	face := r.face(f)
	if text == "" || face == nil {
		return
	}
	d := font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(rgba(c)),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(origin.X * r.Scale * 64),
			Y: fixed.Int26_6((origin.Y + f.Size*ascent) * r.Scale * 64),
		},
	}
	d.DrawString(text)
}

func (r *Raster) DrawLine(from, to Point, width float64, c Color) {
	// Hairlines still cover at least one device pixel.
	width = max(width, 1/r.Scale)
	r.fill(linePath(from, to, width), image.NewUniform(rgba(c)))
}

func (r *Raster) FillRect(rect Rect, c Color) {
	r.fill(rectPath(rect), image.NewUniform(rgba(c)))
}

func (r *Raster) StrokeRect(rect Rect, c Color, width float64) {
	width = max(width, 1/r.Scale)
	src := image.NewUniform(rgba(c))
	for _, p := range strokeRectPaths(rect, width) {
		r.fill(p, src)
	}
}

func (r *Raster) FillRoundedRect(rect Rect, radius float64, c Color) {
	r.fill(roundedRectPath(rect, radius), image.NewUniform(rgba(c)))
}

func (r *Raster) FillEllipse(rect Rect, c Color) {
	r.fill(ellipsePath(rect), image.NewUniform(rgba(c)))
}

func (r *Raster) FillLinearGradient(rect Rect, stops []ColorStop, start, end Point) {
	r.fill(rectPath(rect), &gradientImage{
		rect:  rect,
		scale: r.Scale,
		stops: normalizeStops(stops),
		start: start,
		end:   end,
	})
}

func (r *Raster) MeasureText(text string, f Font) (float64, float64) {
	face := r.face(f)
	if face == nil {
		return 0, f.Size * lineHeight
	}
	adv := font.MeasureString(face, text)
	return float64(adv) / 64 / r.Scale, f.Size * lineHeight
}

// Finalize encodes the page as PNG.
func (r *Raster) Finalize() ([]byte, error) {
	if r.done {
		return nil, ErrFinalized
	}
	r.done = true
	for _, face := range r.faces {
		if face != nil {
			face.Close()
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, r.img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// gradientImage is an unbounded source image whose color at a device pixel is
// the gradient evaluated at that pixel's projection onto the gradient vector.
type gradientImage struct {
	rect       Rect
	scale      float64
	stops      []ColorStop
	start, end Point
}

func (g *gradientImage) ColorModel() color.Model { return color.RGBAModel }

func (g *gradientImage) Bounds() image.Rectangle {
	return image.Rect(-1e9, -1e9, 1e9, 1e9)
}

func (g *gradientImage) At(x, y int) color.Color {
	// Pixel center in unit coordinates of the filled rectangle.
	u, v := 0.0, 0.0
	if g.rect.W > 0 {
		u = ((float64(x)+0.5)/g.scale - g.rect.X) / g.rect.W
	}
	if g.rect.H > 0 {
		v = ((float64(y)+0.5)/g.scale - g.rect.Y) / g.rect.H
	}
	dx, dy := g.end.X-g.start.X, g.end.Y-g.start.Y
	t := 0.0
	if l2 := dx*dx + dy*dy; l2 > 0 {
		t = ((u-g.start.X)*dx + (v-g.start.Y)*dy) / l2
	}
	return rgba(colorAt(g.stops, t))
}
