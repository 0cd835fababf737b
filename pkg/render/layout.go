package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/invoicing-renderer/pkg/canvas"
	"github.com/invoicing-renderer/pkg/invoice"
)

// Page geometry shared by every section.
const (
	marginX    = 50.0
	topMargin  = 40.0
	rightX     = canvas.PageWidth - marginX
	contentW   = rightX - marginX
	sectionGap = 20.0
)

var (
	textDark   = canvas.Color{R: 33, G: 33, B: 33}
	textMuted  = canvas.Color{R: 117, G: 117, B: 117}
	textFaint  = canvas.Color{R: 170, G: 170, B: 170}
	borderGray = canvas.Color{R: 204, G: 204, B: 204}
	headerGray = canvas.Color{R: 240, G: 240, B: 240}
	rowTint    = canvas.Color{R: 249, G: 249, B: 249}
)

func sans(style canvas.Style, size float64) canvas.Font {
	return canvas.Font{Family: canvas.Sans, Style: style, Size: size}
}

func serif(style canvas.Style, size float64) canvas.Font {
	return canvas.Font{Family: canvas.Serif, Style: style, Size: size}
}

func mono(style canvas.Style, size float64) canvas.Font {
	return canvas.Font{Family: canvas.Mono, Style: style, Size: size}
}

func rgb(c invoice.Color) canvas.Color {
	return canvas.Color(c)
}

// tint mixes c toward white; f=1 is white.
func tint(c canvas.Color, f float64) canvas.Color {
	return canvas.Lerp(c, canvas.White, f)
}

func drawRight(c canvas.Canvas, text string, right, y float64, f canvas.Font, col canvas.Color) {
	w, _ := c.MeasureText(text, f)
	c.DrawText(text, canvas.Point{X: right - w, Y: y}, f, col)
}

func drawCentered(c canvas.Canvas, text string, cx, y float64, f canvas.Font, col canvas.Color) {
	w, _ := c.MeasureText(text, f)
	c.DrawText(text, canvas.Point{X: cx - w/2, Y: y}, f, col)
}

// wrapText breaks text into lines no wider than width. Explicit newlines are
// kept; a single word wider than width gets a line of its own.
func wrapText(c canvas.Canvas, text string, f canvas.Font, width float64) []string {
	var lines []string
	for _, para := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if tw, _ := c.MeasureText(line+" "+w, f); tw <= width {
				line += " " + w
				continue
			}
			lines = append(lines, line)
			line = w
		}
		lines = append(lines, line)
	}
	return lines
}

// formatter renders numbers and dates for one locale.
type formatter struct {
	tag    language.Tag
	p      *message.Printer
	symbol string
}

func newFormatter(tag language.Tag, symbol string) formatter {
	return formatter{tag: tag, p: message.NewPrinter(tag), symbol: symbol}
}

// money formats a currency amount with two decimals, e.g. "$1,234.50".
func (f formatter) money(d decimal.Decimal) string {
	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	return sign + f.symbol + f.p.Sprintf("%.2f", d.InexactFloat64())
}

// quantity prints whole quantities without decimals and fractional ones with
// as many as they carry, up to four.
func (f formatter) quantity(d decimal.Decimal) string {
	places := int32(0)
	if !d.IsInteger() {
		places = min(max(-d.Exponent(), 1), 4)
		d = d.Round(places)
		for places > 1 && d.Shift(places-1).IsInteger() {
			places--
		}
	}
	return f.p.Sprintf(fmt.Sprintf("%%.%df", places), d.InexactFloat64())
}

// percent renders a fractional rate as a percentage number, 0.08 -> "8".
func (f formatter) percent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String()
}

// monthAbbrev holds medium-style month names for the languages that have
// their own; any other language falls back to English.
var monthAbbrev = map[string][12]string{
	"fr": {"janv.", "févr.", "mars", "avr.", "mai", "juin", "juil.", "août", "sept.", "oct.", "nov.", "déc."},
	"es": {"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"},
	"it": {"gen", "feb", "mar", "apr", "mag", "giu", "lug", "ago", "set", "ott", "nov", "dic"},
	"nl": {"jan", "feb", "mrt", "apr", "mei", "jun", "jul", "aug", "sep", "okt", "nov", "dec"},
	"pt": {"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"},
}

// date renders a medium-style date: "Jan 2, 2006" for US English, numeric
// "02.01.2006" for German, and day-month-year with localized month names for
// French, Spanish, Italian, Dutch and Portuguese. Other locales get
// "2 Jan 2006" with English month names. Zero dates print as a dash.
func (f formatter) date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	base, _ := f.tag.Base()
	switch lang := base.String(); lang {
	case "en":
		if region, _ := f.tag.Region(); region.String() == "US" {
			return t.Format("Jan 2, 2006")
		}
	case "de":
		return t.Format("02.01.2006")
	default:
		if months, ok := monthAbbrev[lang]; ok {
			return fmt.Sprintf("%d %s %d", t.Day(), months[t.Month()-1], t.Year())
		}
	}
	return t.Format("2 Jan 2006")
}
