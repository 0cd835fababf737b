// Package render lays out an invoice or estimate on a single US Letter page.
//
// A render is one linear pass over a fresh canvas: header, parties, metadata,
// line-item table, totals, notes and footer. Each section receives the
// vertical cursor, draws below it and returns the cursor for the next section.
// Nothing is shared between calls, so a Generator may be used from many
// goroutines at once.
//
// Example usage:
//
//	gen := render.NewGenerator(render.WithCreator("Invoicing"))
//	pdf, err := gen.Generate(inv, business, invoice.TemplateFinance)
//	if errors.Is(err, render.ErrSurfaceAllocation) {
//	    // report "Failed to generate PDF"
//	}
package render

import (
	"errors"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/invoicing-renderer/pkg/canvas"
	"github.com/invoicing-renderer/pkg/invoice"
)

// ErrSurfaceAllocation is the only rendering failure: the drawing surface
// could not be created or serialized. No partial output accompanies it.
var ErrSurfaceAllocation = errors.New("render: drawing surface unavailable")

// SurfaceError carries the backend cause of an ErrSurfaceAllocation.
type SurfaceError struct {
	Backend string
	Err     error
}

func (e *SurfaceError) Error() string {
	return "render: " + e.Backend + " surface unavailable: " + e.Err.Error()
}

func (e *SurfaceError) Unwrap() error { return e.Err }

func (e *SurfaceError) Is(target error) bool { return target == ErrSurfaceAllocation }

type options struct {
	locale       language.Tag
	symbol       string
	seed         *uint64
	subline      string
	compress     bool
	creator      string
	creationDate time.Time
	newPDF       func(canvas.PDFOptions) (canvas.Canvas, error)
}

// Option configures a Generator.
type Option func(*options)

// WithLocale sets the locale used for numbers and dates.
func WithLocale(tag language.Tag) Option {
	return func(o *options) { o.locale = tag }
}

// WithCurrencySymbol sets the prefix of every amount.
func WithCurrencySymbol(symbol string) Option {
	return func(o *options) { o.symbol = symbol }
}

// WithDecorSeed makes the random decoration of the technology header
// reproducible. Without it the bars differ on every render.
func WithDecorSeed(seed uint64) Option {
	return func(o *options) { o.seed = &seed }
}

// WithProfessionalSubline turns the fixed sub-line under descriptions in the
// professional table on or off. It is on by default.
func WithProfessionalSubline(on bool) Option {
	return func(o *options) {
		o.subline = ""
		if on {
			o.subline = ProfessionalSubline
		}
	}
}

// WithCompression enables content stream compression in PDF output.
func WithCompression(on bool) Option {
	return func(o *options) { o.compress = on }
}

// WithCreator names the producing application in the footer credit and the
// document metadata.
func WithCreator(name string) Option {
	return func(o *options) { o.creator = name }
}

// WithCreationDate pins the PDF creation date. By default the issue date is
// used, which keeps output reproducible.
func WithCreationDate(t time.Time) Option {
	return func(o *options) { o.creationDate = t }
}

// Generator renders documents. The zero value is not usable; use NewGenerator.
type Generator struct {
	opts options
}

// NewGenerator returns a Generator with US English formatting, dollar amounts
// and compressed PDF output.
func NewGenerator(opts ...Option) *Generator {
	o := options{
		locale:   language.AmericanEnglish,
		symbol:   "$",
		subline:  ProfessionalSubline,
		compress: true,
		newPDF: func(po canvas.PDFOptions) (canvas.Canvas, error) {
			return canvas.NewPDF(po)
		},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Generator{opts: o}
}

// Deterministic reports whether two renders of the same input with t produce
// identical bytes.
func (g *Generator) Deterministic(t invoice.Template) bool {
	return t != invoice.TemplateTechnology || g.opts.seed != nil
}

// Generate renders the document as a single-page PDF. The template argument
// wins over inv.Template; if both are empty the classic template is used.
func (g *Generator) Generate(inv invoice.Invoice, biz invoice.BusinessInfo, tmpl invoice.Template) ([]byte, error) {
	c, err := g.opts.newPDF(g.pdfOptions(inv, biz))
	if err != nil {
		return nil, &SurfaceError{Backend: "pdf", Err: err}
	}
	return g.Render(c, inv, biz, tmpl)
}

// GeneratePreview renders the same page as a PNG image with scale pixels per
// point.
func (g *Generator) GeneratePreview(inv invoice.Invoice, biz invoice.BusinessInfo, tmpl invoice.Template, scale float64) ([]byte, error) {
	c, err := canvas.NewRaster(scale)
	if err != nil {
		return nil, &SurfaceError{Backend: "raster", Err: err}
	}
	return g.Render(c, inv, biz, tmpl)
}

// Render draws the document onto c and finalizes it.
func (g *Generator) Render(c canvas.Canvas, inv invoice.Invoice, biz invoice.BusinessInfo, tmpl invoice.Template) ([]byte, error) {
	g.Draw(c, inv, biz, tmpl)
	out, err := c.Finalize()
	if err != nil {
		return nil, &SurfaceError{Backend: "finalize", Err: err}
	}
	return out, nil
}

// Draw runs every section against c without finalizing it and returns the
// final cursor.
func (g *Generator) Draw(c canvas.Canvas, inv invoice.Invoice, biz invoice.BusinessInfo, tmpl invoice.Template) float64 {
	d := g.newDocument(inv, biz, tmpl)

	y := topMargin
	y = HeaderFor(d.template).RenderHeader(c, d.header(), y)
	y = renderParties(c, d, y)
	y = renderMetadata(c, d, y)
	if d.professional() {
		y = renderProfessionalTable(c, d, y)
	} else {
		y = renderStandardTable(c, d, y)
		y = renderTotals(c, d, y)
	}
	y = renderNotes(c, d, y)
	return renderFooter(c, d, y)
}

func (g *Generator) pdfOptions(inv invoice.Invoice, biz invoice.BusinessInfo) canvas.PDFOptions {
	kind := inv.DocumentKind()
	created := g.opts.creationDate
	if created.IsZero() {
		created = inv.IssueDate
	}
	if created.IsZero() {
		created = time.Unix(0, 0).UTC()
	}
	title := strings.TrimSpace(kind.Title() + " " + inv.Number)
	return canvas.PDFOptions{
		Title:        title,
		Author:       strings.TrimSpace(biz.Name),
		Subject:      inv.Client.Name,
		Creator:      g.opts.creator,
		CreationDate: created,
		Compress:     g.opts.compress,
	}
}

// document is the immutable input of one render plus per-render state.
type document struct {
	inv      invoice.Invoice
	biz      invoice.BusinessInfo
	template invoice.Template
	style    invoice.Style
	fmt      formatter
	rand     *rand.Rand
	subline  string
	creator  string

	subtotal decimal.Decimal
	tax      decimal.Decimal
	total    decimal.Decimal
}

func (g *Generator) newDocument(inv invoice.Invoice, biz invoice.BusinessInfo, tmpl invoice.Template) *document {
	t := ResolveTemplate(inv, tmpl)
	d := &document{
		inv:      inv,
		biz:      biz,
		template: t,
		style:    t.Style(),
		fmt:      newFormatter(g.opts.locale, g.opts.symbol),
		subline:  g.opts.subline,
		creator:  g.opts.creator,
		subtotal: inv.Subtotal(),
		tax:      inv.TaxAmount(),
		total:    inv.Total(),
	}
	if g.opts.seed != nil {
		s := *g.opts.seed
		d.rand = rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
	}
	return d
}

func (d *document) header() HeaderData {
	return HeaderData{
		Business: d.biz,
		Style:    d.style,
		Mark:     d.inv.DocumentKind().Mark(),
		Rand:     d.rand,
	}
}

// professional reports whether the line items use the card table, which
// carries its own totals footer.
func (d *document) professional() bool {
	return d.template == invoice.TemplateFinance
}

// ResolveTemplate picks the template a render will use: tmpl if valid, else
// inv.Template if valid, else classic.
func ResolveTemplate(inv invoice.Invoice, tmpl invoice.Template) invoice.Template {
	if tmpl.Valid() {
		return tmpl
	}
	if inv.Template.Valid() {
		return inv.Template
	}
	return invoice.TemplateClassic
}
