package render

import (
	"math/rand/v2"
	"strings"

	"github.com/invoicing-renderer/pkg/canvas"
	"github.com/invoicing-renderer/pkg/invoice"
)

// HeaderData is everything a header band may draw.
type HeaderData struct {
	Business invoice.BusinessInfo
	Style    invoice.Style
	// Mark is the document word, "INVOICE" or "ESTIMATE".
	Mark string
	// Rand feeds decorative elements that vary between renders. Only the
	// technology header reads it.
	Rand *rand.Rand
}

// CompanyName is the business name, or the template placeholder if blank.
func (h HeaderData) CompanyName() string {
	if name := strings.TrimSpace(h.Business.Name); name != "" {
		return name
	}
	return h.Style.Placeholder
}

func (h HeaderData) primary() canvas.Color { return rgb(h.Style.Primary) }
func (h HeaderData) accent() canvas.Color  { return rgb(h.Style.Accent) }

// HeaderRenderer draws a template's header band starting at cursor y and
// returns the cursor below it.
type HeaderRenderer interface {
	RenderHeader(c canvas.Canvas, h HeaderData, y float64) float64
}

var headers = map[invoice.Template]HeaderRenderer{
	invoice.TemplateClassic:    classicHeader{},
	invoice.TemplateMinimalist: minimalistHeader{},
	invoice.TemplateCorporate:  corporateHeader{},
	invoice.TemplateCreative:   creativeHeader{},
	invoice.TemplateExecutive:  executiveHeader{},
	invoice.TemplateFinance:    financeHeader{},
	invoice.TemplateConsulting: consultingHeader{},
	invoice.TemplateTechnology: technologyHeader{},
	invoice.TemplateLegal:      legalHeader{},
}

// HeaderFor returns the header strategy registered for t, falling back to
// the classic header.
func HeaderFor(t invoice.Template) HeaderRenderer {
	if h, ok := headers[t]; ok {
		return h
	}
	return headers[invoice.TemplateClassic]
}
