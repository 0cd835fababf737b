package canvas

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// PDFOptions configures document metadata and output encoding.
type PDFOptions struct {
	Title   string
	Author  string
	Subject string
	Creator string
	// CreationDate is written to the info dictionary as both the creation
	// and the modification date. A zero value means the Unix epoch, never the
	// wall clock, so identical drawing always yields identical bytes.
	CreationDate time.Time
	// Compress enables deflate compression of the page content stream.
	Compress bool
}

// PDF draws onto a single US Letter page of a gofpdf document.
type PDF struct {
	pdf  *gofpdf.Fpdf
	tr   func(string) string
	done bool
}

// NewPDF allocates a document with one empty page.
func NewPDF(opts PDFOptions) (*PDF, error) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		SizeStr:        "Letter",
	})
	pdf.SetCompression(opts.Compress)
	pdf.SetCatalogSort(true)
	stamp := opts.CreationDate
	if stamp.IsZero() {
		stamp = time.Unix(0, 0).UTC()
	}
	pdf.SetCreationDate(stamp)
	pdf.SetModificationDate(stamp)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	if opts.Title != "" {
		pdf.SetTitle(opts.Title, true)
	}
	if opts.Author != "" {
		pdf.SetAuthor(opts.Author, true)
	}
	if opts.Subject != "" {
		pdf.SetSubject(opts.Subject, true)
	}
	if opts.Creator != "" {
		pdf.SetCreator(opts.Creator, true)
	}
	pdf.AddPage()
	if pdf.Err() {
		return nil, fmt.Errorf("allocate pdf page: %w", pdf.Error())
	}

	return &PDF{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
	}, nil
}

func (p *PDF) setFont(f Font) {
	family := "Helvetica"
	switch f.Family {
	case Serif:
		family = "Times"
	case Mono:
		family = "Courier"
	}
	style := ""
	switch f.Style {
	case Bold:
		style = "B"
	case Italic:
		style = "I"
	case BoldItalic:
		style = "BI"
	}
	p.pdf.SetFont(family, style, f.Size)
}

func (p *PDF) DrawText(text string, origin Point, font Font, color Color) {
	if text == "" {
		return
	}
	p.setFont(font)
	p.pdf.SetTextColor(int(color.R), int(color.G), int(color.B))
	p.pdf.Text(origin.X, origin.Y+font.Size*ascent, p.tr(text))
}

func (p *PDF) DrawLine(from, to Point, width float64, color Color) {
	p.pdf.SetDrawColor(int(color.R), int(color.G), int(color.B))
	p.pdf.SetLineWidth(width)
	p.pdf.Line(from.X, from.Y, to.X, to.Y)
}

func (p *PDF) FillRect(r Rect, color Color) {
	p.pdf.SetFillColor(int(color.R), int(color.G), int(color.B))
	p.pdf.Rect(r.X, r.Y, r.W, r.H, "F")
}

func (p *PDF) StrokeRect(r Rect, color Color, width float64) {
	p.pdf.SetDrawColor(int(color.R), int(color.G), int(color.B))
	p.pdf.SetLineWidth(width)
	p.pdf.Rect(r.X, r.Y, r.W, r.H, "D")
}

func (p *PDF) FillRoundedRect(r Rect, radius float64, color Color) {
	p.pdf.SetFillColor(int(color.R), int(color.G), int(color.B))
	p.fillPath(roundedRectPath(r, radius))
}

func (p *PDF) FillEllipse(r Rect, color Color) {
	p.pdf.SetFillColor(int(color.R), int(color.G), int(color.B))
	p.pdf.Ellipse(r.X+r.W/2, r.Y+r.H/2, r.W/2, r.H/2, 0, "F")
}

// FillLinearGradient emits one axial shading per pair of adjacent stops.
// Diagonal gradients with more than two stops use only the outer stops.
func (p *PDF) FillLinearGradient(r Rect, stops []ColorStop, start, end Point) {
	stops = normalizeStops(stops)
	if len(stops) == 1 {
		p.FillRect(r, stops[0].Color)
		return
	}
	dx, dy := end.X-start.X, end.Y-start.Y
	if len(stops) == 2 || (dx != 0 && dy != 0) {
		a, b := stops[0].Color, stops[len(stops)-1].Color
		p.gradient(r, a, b, start, end)
		return
	}

	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if b.Offset <= a.Offset {
			continue
		}
		sub := r
		if dx != 0 {
			x0 := start.X + a.Offset*dx
			x1 := start.X + b.Offset*dx
			lo, hi := math.Min(x0, x1), math.Max(x0, x1)
			sub.X, sub.W = r.X+lo*r.W, (hi-lo)*r.W
		} else {
			y0 := start.Y + a.Offset*dy
			y1 := start.Y + b.Offset*dy
			lo, hi := math.Min(y0, y1), math.Max(y0, y1)
			sub.Y, sub.H = r.Y+lo*r.H, (hi-lo)*r.H
		}
		// Keep the direction of the original vector inside each slice.
		s, e := Point{0, 0}, Point{1, 0}
		if dx == 0 {
			e = Point{0, 1}
		}
		if dx < 0 || dy < 0 {
			s, e = e, s
		}
		p.gradient(sub, a.Color, b.Color, s, e)
	}
}

// gradient takes start and end in top-left unit coordinates; gofpdf expects
// the vector with a lower-left origin.
func (p *PDF) gradient(r Rect, a, b Color, start, end Point) {
	p.pdf.LinearGradient(r.X, r.Y, r.W, r.H,
		int(a.R), int(a.G), int(a.B),
		int(b.R), int(b.G), int(b.B),
		start.X, 1-start.Y, end.X, 1-end.Y)
}

func (p *PDF) fillPath(segs path) {
	for _, s := range segs {
		switch s.kind {
		case segMove:
			p.pdf.MoveTo(s.pts[0].X, s.pts[0].Y)
		case segLine:
			p.pdf.LineTo(s.pts[0].X, s.pts[0].Y)
		case segCube:
			p.pdf.CurveBezierCubicTo(s.pts[0].X, s.pts[0].Y, s.pts[1].X, s.pts[1].Y, s.pts[2].X, s.pts[2].Y)
		case segClose:
			p.pdf.ClosePath()
		}
	}
	p.pdf.DrawPath("F")
}

func (p *PDF) MeasureText(text string, font Font) (float64, float64) {
	p.setFont(font)
	return p.pdf.GetStringWidth(p.tr(text)), font.Size * lineHeight
}

// Finalize closes the document and returns its bytes. Nothing is returned
// if serialization fails.
func (p *PDF) Finalize() ([]byte, error) {
	if p.done {
		return nil, ErrFinalized
	}
	p.done = true

	var buf bytes.Buffer
	if err := p.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("serialize pdf: %w", err)
	}
	return buf.Bytes(), nil
}
