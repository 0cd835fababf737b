package render

import (
	"math/rand/v2"
	"strings"

	"github.com/invoicing-renderer/pkg/canvas"
)

type (
	classicHeader    struct{}
	minimalistHeader struct{}
	corporateHeader  struct{}
	creativeHeader   struct{}
	executiveHeader  struct{}
	financeHeader    struct{}
	consultingHeader struct{}
	technologyHeader struct{}
	legalHeader      struct{}
)

const centerX = canvas.PageWidth / 2

func hline(c canvas.Canvas, y, width float64, col canvas.Color) {
	c.DrawLine(canvas.Point{X: marginX, Y: y}, canvas.Point{X: rightX, Y: y}, width, col)
}

func horizontal(a, b canvas.Color) ([]canvas.ColorStop, canvas.Point, canvas.Point) {
	return []canvas.ColorStop{{Offset: 0, Color: a}, {Offset: 1, Color: b}},
		canvas.Point{X: 0, Y: 0.5}, canvas.Point{X: 1, Y: 0.5}
}

// Classic: centered name between accent rules.
func (classicHeader) RenderHeader(c canvas.Canvas, h HeaderData, y float64) float64 {
	drawCentered(c, h.CompanyName(), centerX, y, sans(canvas.Bold, 24), h.primary())
	drawCentered(c, h.Style.Tagline, centerX, y+32, sans(canvas.Regular, 9), textMuted)
	hline(c, y+50, 2, h.accent())
	drawCentered(c, h.Mark, centerX, y+60, sans(canvas.Bold, 16), h.accent())
	hline(c, y+84, 0.5, borderGray)
	return y + 84 + sectionGap
}

// Minimalist: name left, mark right, one hairline.
func (minimalistHeader) RenderHeader(c canvas.Canvas, h HeaderData, y float64) float64 {
	c.DrawText(h.CompanyName(), canvas.Point{X: marginX, Y: y}, sans(canvas.Bold, 20), h.primary())
	c.DrawText(h.Style.Tagline, canvas.Point{X: marginX, Y: y + 26}, sans(canvas.Regular, 8), textMuted)
	drawRight(c, h.Mark, rightX, y, sans(canvas.Regular, 22), h.accent())
	hline(c, y+48, 0.5, h.primary())
	return y + 48 + sectionGap
}

// Corporate: full-bleed band with an accent strip along its bottom edge.
func (corporateHeader) RenderHeader(c canvas.Canvas, h HeaderData, y float64) float64 {
	const band, strip = 100.0, 6.0
	c.FillRect(canvas.Rect{W: canvas.PageWidth, H: band}, h.primary())
	c.FillRect(canvas.Rect{Y: band, W: canvas.PageWidth, H: strip}, h.accent())
	c.DrawText(h.CompanyName(), canvas.Point{X: marginX, Y: 30}, sans(canvas.Bold, 22), canvas.White)
	c.DrawText(h.Style.Tagline, canvas.Point{X: marginX, Y: 60}, sans(canvas.Regular, 9), tint(h.accent(), 0.6))
	drawRight(c, h.Mark, rightX, 34, sans(canvas.Bold, 26), canvas.White)
	return max(y, band+strip) + 24
}

// Creative: overlapping circles in the corner and a gradient underline.
func (creativeHeader) RenderHeader(c canvas.Canvas, h HeaderData, y float64) float64 {
	c.FillEllipse(canvas.Rect{X: 470, Y: -50, W: 180, H: 180}, tint(h.accent(), 0.7))
	c.FillEllipse(canvas.Rect{X: 530, Y: 30, W: 60, H: 60}, tint(h.primary(), 0.5))
	c.FillEllipse(canvas.Rect{X: marginX, Y: y + 8, W: 12, H: 12}, h.accent())

	c.DrawText(h.CompanyName(), canvas.Point{X: marginX + 20, Y: y}, sans(canvas.Bold, 26), h.primary())
	c.DrawText(h.Style.Tagline, canvas.Point{X: marginX + 20, Y: y + 32}, sans(canvas.Italic, 9), textMuted)

	stops, start, end := horizontal(h.primary(), h.accent())
	c.FillLinearGradient(canvas.Rect{X: marginX, Y: y + 52, W: 220, H: 5}, stops, start, end)
	c.DrawText(h.Mark, canvas.Point{X: marginX, Y: y + 68}, sans(canvas.Bold, 20), h.primary())
	return y + 92 + sectionGap
}

// Executive: capitalised name framed by double rules.
func (executiveHeader) RenderHeader(c canvas.Canvas, h HeaderData, y float64) float64 {
	hline(c, y, 2, h.primary())
	hline(c, y+4, 0.5, h.accent())
	drawCentered(c, strings.ToUpper(h.CompanyName()), centerX, y+16, sans(canvas.Bold, 22), h.primary())
	drawCentered(c, h.Style.Tagline, centerX, y+44, sans(canvas.Regular, 9), h.accent())
	hline(c, y+62, 0.5, h.accent())
	hline(c, y+66, 2, h.primary())
	drawCentered(c, h.Mark, centerX, y+76, sans(canvas.Bold, 14), h.accent())
	return y + 96 + sectionGap
}

// Finance: gradient icon block, tick-mark code under the mark and a
// gradient rule.
func (financeHeader) RenderHeader(c canvas.Canvas, h HeaderData, y float64) float64 {
	icon := canvas.Rect{X: marginX, Y: y, W: 48, H: 48}
	c.FillLinearGradient(icon,
		[]canvas.ColorStop{{Offset: 0, Color: h.primary()}, {Offset: 1, Color: h.accent()}},
		canvas.Point{X: 0, Y: 0}, canvas.Point{X: 1, Y: 1})
	drawCentered(c, "$", icon.X+icon.W/2, y+10, sans(canvas.Bold, 26), canvas.White)

	c.DrawText(h.CompanyName(), canvas.Point{X: marginX + 62, Y: y + 4}, sans(canvas.Bold, 20), h.primary())
	c.DrawText(h.Style.Tagline, canvas.Point{X: marginX + 62, Y: y + 30}, sans(canvas.Bold, 8), h.accent())
	drawRight(c, h.Mark, rightX, y+2, sans(canvas.Bold, 24), h.primary())

	const ticks, pitch = 24, 4.0
	x := rightX - ticks*pitch
	for i := range ticks {
		w, th := 1.0, 12.0
		if i%3 == 0 {
			w = 2
		}
		if i%4 == 0 {
			th = 16
		}
		c.FillRect(canvas.Rect{X: x, Y: y + 34, W: w, H: th}, textDark)
		x += pitch
	}

	stops, start, end := horizontal(h.primary(), h.accent())
	c.FillLinearGradient(canvas.Rect{X: marginX, Y: y + 62, W: contentW, H: 3}, stops, start, end)
	return y + 65 + sectionGap
}

// Consulting: accent sidebar beside the name and a pill label.
func (consultingHeader) RenderHeader(c canvas.Canvas, h HeaderData, y float64) float64 {
	c.FillRect(canvas.Rect{X: marginX, Y: y, W: 6, H: 60}, h.accent())
	c.DrawText(h.CompanyName(), canvas.Point{X: marginX + 18, Y: y + 2}, sans(canvas.Bold, 22), h.primary())
	c.DrawText(h.Style.Tagline, canvas.Point{X: marginX + 18, Y: y + 32}, sans(canvas.Regular, 9), textMuted)
	drawRight(c, h.Mark, rightX, y+2, sans(canvas.Bold, 22), h.accent())

	pill := canvas.Rect{X: rightX - 110, Y: y + 34, W: 110, H: 18}
	c.FillRoundedRect(pill, pill.H/2, tint(h.accent(), 0.85))
	drawCentered(c, "CONSULTING", pill.X+pill.W/2, pill.Y+5, sans(canvas.Bold, 8), h.accent())

	hline(c, y+72, 0.5, borderGray)
	return y + 72 + sectionGap
}

// Technology: dark band with equalizer bars. Bar heights are random on every
// render.
func (technologyHeader) RenderHeader(c canvas.Canvas, h HeaderData, y float64) float64 {
	const band, underline = 110.0, 4.0
	c.FillRect(canvas.Rect{W: canvas.PageWidth, H: band}, h.primary())

	x := 400.0
	for i := range 16 {
		bh := 8 + h.float()*36
		shade := canvas.Lerp(h.accent(), h.primary(), 0.25*float64(i%3))
		c.FillRect(canvas.Rect{X: x, Y: band - 16 - bh, W: 6, H: bh}, shade)
		x += 10
	}

	c.DrawText(h.CompanyName(), canvas.Point{X: marginX, Y: 26}, sans(canvas.Bold, 22), canvas.White)
	c.DrawText(h.Style.Tagline, canvas.Point{X: marginX, Y: 56}, mono(canvas.Regular, 9), h.accent())
	c.DrawText(h.Mark, canvas.Point{X: marginX, Y: 74}, mono(canvas.Bold, 14), h.accent())

	stops, start, end := horizontal(h.accent(), h.primary())
	c.FillLinearGradient(canvas.Rect{Y: band, W: canvas.PageWidth, H: underline}, stops, start, end)
	return max(y, band+underline) + 24
}

func (h HeaderData) float() float64 {
	if h.Rand == nil {
		return rand.Float64()
	}
	return h.Rand.Float64()
}

// Legal: serif type between dotted separators.
func (legalHeader) RenderHeader(c canvas.Canvas, h HeaderData, y float64) float64 {
	drawCentered(c, h.CompanyName(), centerX, y, serif(canvas.Bold, 22), h.primary())
	drawCentered(c, h.Style.Tagline, centerX, y+30, serif(canvas.Italic, 10), h.accent())
	dottedRule(c, y+50, h.accent())
	drawCentered(c, h.Mark, centerX, y+60, serif(canvas.Bold, 16), h.accent())
	dottedRule(c, y+86, h.accent())
	return y + 88 + sectionGap
}

func dottedRule(c canvas.Canvas, y float64, col canvas.Color) {
	for x := marginX; x <= rightX; x += 6 {
		c.FillEllipse(canvas.Rect{X: x - 1, Y: y - 1, W: 2, H: 2}, col)
	}
}
