package invoice

import (
	"fmt"
	"strings"
)

// Template selects one of the nine visual presentations.
type Template string

const (
	TemplateClassic    Template = "classic"
	TemplateMinimalist Template = "minimalist"
	TemplateCorporate  Template = "corporate"
	TemplateCreative   Template = "creative"
	TemplateExecutive  Template = "executive"
	TemplateFinance    Template = "finance"
	TemplateConsulting Template = "consulting"
	TemplateTechnology Template = "technology"
	TemplateLegal      Template = "legal"
)

// Color is an 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

// Hex formats the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// MarshalText encodes the color as its hex form.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// HeaderLayout names the header drawing strategy of a template.
type HeaderLayout string

const (
	LayoutCentered     HeaderLayout = "centered"
	LayoutHairline     HeaderLayout = "hairline"
	LayoutBand         HeaderLayout = "band"
	LayoutCircles      HeaderLayout = "circles"
	LayoutDoubleRule   HeaderLayout = "double-rule"
	LayoutGradientIcon HeaderLayout = "gradient-icon"
	LayoutSidebar      HeaderLayout = "sidebar"
	LayoutBars         HeaderLayout = "bars"
	LayoutDotted       HeaderLayout = "dotted"
)

// Style is the presentation metadata owned by a template.
type Style struct {
	Template    Template     `json:"template"`
	DisplayName string       `json:"display_name"`
	Primary     Color        `json:"primary"`
	Accent      Color        `json:"accent"`
	Layout      HeaderLayout `json:"layout"`
	// Placeholder replaces a blank business name in the header.
	Placeholder string `json:"placeholder"`
	// Tagline is the category label under the company name.
	Tagline string `json:"tagline"`
}

var styles = []Style{
	{TemplateClassic, "Classic", Color{44, 62, 80}, Color{52, 152, 219}, LayoutCentered, "Your Business Name", "PROFESSIONAL SERVICES"},
	{TemplateMinimalist, "Minimalist", Color{33, 33, 33}, Color{117, 117, 117}, LayoutHairline, "Your Business Name", "STUDIO"},
	{TemplateCorporate, "Corporate", Color{0, 51, 102}, Color{0, 102, 204}, LayoutBand, "CORPORATE SOLUTIONS", "BUSINESS SOLUTIONS"},
	{TemplateCreative, "Creative", Color{142, 68, 173}, Color{241, 196, 15}, LayoutCircles, "Creative Studio", "DESIGN & CREATIVE STUDIO"},
	{TemplateExecutive, "Executive", Color{26, 26, 26}, Color{184, 134, 11}, LayoutDoubleRule, "EXECUTIVE COMPANY", "EXECUTIVE SERVICES"},
	{TemplateFinance, "Finance", Color{27, 94, 32}, Color{67, 160, 71}, LayoutGradientIcon, "FINANCIAL SERVICES", "CERTIFIED ACCOUNTING"},
	{TemplateConsulting, "Consulting", Color{55, 71, 79}, Color{0, 150, 136}, LayoutSidebar, "Consulting Group", "STRATEGY & ADVISORY"},
	{TemplateTechnology, "Technology", Color{13, 17, 23}, Color{0, 188, 212}, LayoutBars, "TECH SOLUTIONS", "TECHNOLOGY SERVICES"},
	{TemplateLegal, "Legal", Color{62, 39, 35}, Color{128, 0, 32}, LayoutDotted, "LAW FIRM", "ATTORNEYS AT LAW"},
}

// Templates lists every template in catalogue order.
func Templates() []Style {
	out := make([]Style, len(styles))
	copy(out, styles)
	return out
}

// Style returns the presentation metadata of t. Unknown templates get the
// classic style.
func (t Template) Style() Style {
	for _, s := range styles {
		if s.Template == t {
			return s
		}
	}
	return styles[0]
}

// Valid reports whether t is one of the nine templates.
func (t Template) Valid() bool {
	for _, s := range styles {
		if s.Template == t {
			return true
		}
	}
	return false
}

// ParseTemplate resolves a template name case-insensitively.
func ParseTemplate(s string) (Template, error) {
	t := Template(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", &ValidationError{Field: "template", Message: fmt.Sprintf("unknown template %q", s)}
	}
	return t, nil
}
