package render

import (
	"strings"

	"github.com/invoicing-renderer/pkg/canvas"
)

const (
	notesBlockHeight = 60.0
	notesLineHeight  = 12.0
	footerOffset     = 70.0
)

// renderTotals draws subtotal, tax, a rule and the bold total against the
// right margin. The amounts are the invoice's own derived values.
func renderTotals(c canvas.Canvas, d *document, y float64) float64 {
	const labelX = rightX - 100
	label := sans(canvas.Regular, 10)
	value := sans(canvas.Regular, 10)

	drawRight(c, "Subtotal:", labelX, y, label, textMuted)
	drawRight(c, d.fmt.money(d.subtotal), rightX, y, value, textDark)

	drawRight(c, "Tax ("+d.fmt.percent(d.inv.TaxRate)+"%):", labelX, y+18, label, textMuted)
	drawRight(c, d.fmt.money(d.tax), rightX, y+18, value, textDark)

	c.DrawLine(canvas.Point{X: rightX - 200, Y: y + 36}, canvas.Point{X: rightX, Y: y + 36}, 1, borderGray)

	bold := sans(canvas.Bold, 12)
	drawRight(c, "TOTAL:", labelX, y+44, bold, rgb(d.style.Primary))
	drawRight(c, d.fmt.money(d.total), rightX, y+44, bold, rgb(d.style.Primary))
	return y + 70
}

// renderNotes draws the notes inside a fixed-height block. Lines that do not
// fit are dropped; the page never grows.
func renderNotes(c canvas.Canvas, d *document, y float64) float64 {
	if strings.TrimSpace(d.inv.Notes) == "" {
		return y
	}
	c.DrawText("Notes:", canvas.Point{X: marginX, Y: y}, sans(canvas.Bold, 10), rgb(d.style.Primary))
	y += 16

	f := sans(canvas.Regular, 9)
	lines := wrapText(c, strings.TrimSpace(d.inv.Notes), f, contentW)
	if limit := int(notesBlockHeight / notesLineHeight); len(lines) > limit {
		lines = lines[:limit]
	}
	for i, line := range lines {
		c.DrawText(line, canvas.Point{X: marginX, Y: y + float64(i)*notesLineHeight}, f, textDark)
	}
	return y + notesBlockHeight
}

// renderFooter draws the closing band at a fixed distance from the bottom of
// the page, regardless of the cursor. Long content may run into it.
func renderFooter(c canvas.Canvas, d *document, y float64) float64 {
	top := canvas.PageHeight - footerOffset
	hline(c, top, 0.5, borderGray)
	drawCentered(c, "Thank you for your business!", centerX, top+12, sans(canvas.Italic, 10), rgb(d.style.Primary))
	if site := strings.TrimSpace(d.biz.Website); site != "" {
		drawCentered(c, site, centerX, top+28, sans(canvas.Regular, 9), textMuted)
	}
	if d.creator != "" {
		drawCentered(c, "Generated by "+d.creator, centerX, top+44, sans(canvas.Regular, 7), textFaint)
	}
	return max(y, canvas.PageHeight)
}
