package render

import (
	"github.com/invoicing-renderer/pkg/canvas"
	"github.com/invoicing-renderer/pkg/invoice"
)

// Column anchors. Description is left aligned; the numeric columns are right
// aligned on their x.
const (
	colDesc      = marginX + 8
	colDescWidth = 250.0
	colQty       = marginX + 330
	colRate      = marginX + 420
	colAmount    = rightX - 8
)

// Standard table.
const (
	stdHeaderHeight = 25.0
	stdRowHeight    = 25.0
)

// Professional table.
const (
	proHeaderHeight = 30.0
	proRowHeight    = 40.0
	proBandHeight   = 25.0
	proFooterHeight = 2 * proBandHeight
	proRadius       = 8.0
)

// ProfessionalSubline is the fixed line printed under every description in
// the professional table. It does not depend on the line item.
const ProfessionalSubline = "Professional services rendered as agreed"

var (
	proCardFill  = canvas.Color{R: 248, G: 249, B: 250}
	proBandFill  = canvas.Color{R: 236, G: 239, B: 241}
	proSeparator = canvas.Color{R: 230, G: 230, B: 230}
)

func tableHeadings(c canvas.Canvas, y float64, col canvas.Color) {
	f := sans(canvas.Bold, 10)
	c.DrawText("Description", canvas.Point{X: colDesc, Y: y}, f, col)
	drawRight(c, "Qty", colQty, y, f, col)
	drawRight(c, "Rate", colRate, y, f, col)
	drawRight(c, "Amount", colAmount, y, f, col)
}

func tableValues(c canvas.Canvas, d *document, item invoice.LineItem, y float64) {
	f := sans(canvas.Regular, 10)
	drawRight(c, d.fmt.quantity(item.Quantity), colQty, y, f, textDark)
	drawRight(c, d.fmt.money(item.UnitPrice), colRate, y, f, textDark)
	drawRight(c, d.fmt.money(item.Total), colAmount, y, f, textDark)
}

// fitText shortens text with a trailing ellipsis until it fits width.
func fitText(c canvas.Canvas, text string, f canvas.Font, width float64) string {
	if w, _ := c.MeasureText(text, f); w <= width {
		return text
	}
	runes := []rune(text)
	for n := len(runes) - 1; n > 0; n-- {
		s := string(runes[:n]) + "..."
		if w, _ := c.MeasureText(s, f); w <= width {
			return s
		}
	}
	return string(runes[:1])
}

// renderStandardTable draws a bordered grid: a shaded heading row and one
// fixed-height row per line item with every other row tinted.
func renderStandardTable(c canvas.Canvas, d *document, y float64) float64 {
	head := canvas.Rect{X: marginX, Y: y, W: contentW, H: stdHeaderHeight}
	c.FillRect(head, headerGray)
	c.StrokeRect(head, borderGray, 0.5)
	tableHeadings(c, y+8, textDark)
	y += stdHeaderHeight

	f := sans(canvas.Regular, 10)
	for i, item := range d.inv.Items {
		row := canvas.Rect{X: marginX, Y: y, W: contentW, H: stdRowHeight}
		if i%2 == 1 {
			c.FillRect(row, rowTint)
		}
		c.StrokeRect(row, borderGray, 0.5)
		c.DrawText(fitText(c, item.Description, f, colDescWidth), canvas.Point{X: colDesc, Y: y + 8}, f, textDark)
		tableValues(c, d, item, y+8)
		y += stdRowHeight
	}
	return y + sectionGap
}

// professionalTableHeight is the height of the card for n line items.
func professionalTableHeight(n int) float64 {
	return proHeaderHeight + float64(n)*proRowHeight + proFooterHeight
}

// renderProfessionalTable draws heading, rows and a subtotal/total footer
// inside one rounded card. It replaces the separate totals section.
func renderProfessionalTable(c canvas.Canvas, d *document, y float64) float64 {
	primary, accent := rgb(d.style.Primary), rgb(d.style.Accent)
	height := professionalTableHeight(len(d.inv.Items))
	c.FillRoundedRect(canvas.Rect{X: marginX, Y: y, W: contentW, H: height}, proRadius, proCardFill)

	// Heading band: rounded on top, square where it meets the rows.
	c.FillRoundedRect(canvas.Rect{X: marginX, Y: y, W: contentW, H: proHeaderHeight}, proRadius, primary)
	c.FillRect(canvas.Rect{X: marginX, Y: y + proHeaderHeight/2, W: contentW, H: proHeaderHeight / 2}, primary)
	tableHeadings(c, y+10, canvas.White)

	ry := y + proHeaderHeight
	bold := sans(canvas.Bold, 10)
	for i, item := range d.inv.Items {
		if i%2 == 1 {
			c.FillRect(canvas.Rect{X: marginX, Y: ry, W: contentW, H: proRowHeight}, tint(accent, 0.92))
		}
		c.DrawText(fitText(c, item.Description, bold, colDescWidth), canvas.Point{X: colDesc, Y: ry + 9}, bold, textDark)
		if d.subline != "" {
			c.DrawText(d.subline, canvas.Point{X: colDesc, Y: ry + 24}, sans(canvas.Italic, 8), textMuted)
		}
		tableValues(c, d, item, ry+15)
		if i < len(d.inv.Items)-1 {
			c.DrawLine(canvas.Point{X: marginX + 8, Y: ry + proRowHeight}, canvas.Point{X: rightX - 8, Y: ry + proRowHeight}, 0.5, proSeparator)
		}
		ry += proRowHeight
	}

	c.FillRect(canvas.Rect{X: marginX, Y: ry, W: contentW, H: proBandHeight}, proBandFill)
	c.DrawText("Subtotal", canvas.Point{X: colDesc, Y: ry + 8}, bold, textDark)
	drawRight(c, "Tax ("+d.fmt.percent(d.inv.TaxRate)+"%): "+d.fmt.money(d.tax), colRate, ry+8, sans(canvas.Regular, 9), textMuted)
	drawRight(c, d.fmt.money(d.subtotal), colAmount, ry+8, bold, textDark)
	ry += proBandHeight

	c.FillRoundedRect(canvas.Rect{X: marginX, Y: ry, W: contentW, H: proBandHeight}, proRadius, primary)
	c.FillRect(canvas.Rect{X: marginX, Y: ry, W: contentW, H: proBandHeight / 2}, primary)
	total := sans(canvas.Bold, 11)
	c.DrawText("TOTAL", canvas.Point{X: colDesc, Y: ry + 7}, total, canvas.White)
	drawRight(c, d.fmt.money(d.total), colAmount, ry+7, total, canvas.White)

	return y + height + sectionGap
}
