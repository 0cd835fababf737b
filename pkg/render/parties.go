package render

import (
	"github.com/invoicing-renderer/pkg/canvas"
)

const (
	partyLabelHeight = 16.0
	partyLineHeight  = 14.0
	partyGutter      = 20.0
)

// renderParties draws the "FROM:" and "BILL TO:" blocks side by side from the
// same y. The cursor moves below the taller block.
func renderParties(c canvas.Canvas, d *document, y float64) float64 {
	left := partyBlock(c, "FROM:", d.biz.AddressLines(), marginX, y, d)
	right := partyBlock(c, "BILL TO:", d.inv.Client.AddressLines(), canvas.PageWidth/2+partyGutter, y, d)
	return max(left, right) + sectionGap
}

// partyBlock draws a label and one line per non-blank field. The first line
// is the party name and is set in bold.
func partyBlock(c canvas.Canvas, label string, lines []string, x, y float64, d *document) float64 {
	c.DrawText(label, canvas.Point{X: x, Y: y}, sans(canvas.Bold, 10), rgb(d.style.Primary))
	y += partyLabelHeight
	for i, line := range lines {
		f := sans(canvas.Regular, 10)
		if i == 0 {
			f.Style = canvas.Bold
		}
		c.DrawText(line, canvas.Point{X: x, Y: y}, f, textDark)
		y += partyLineHeight
	}
	return y
}

// renderMetadata draws the number, dates and status as four label/value
// pairs on a tinted strip.
func renderMetadata(c canvas.Canvas, d *document, y float64) float64 {
	const height, column = 36.0, 130.0
	c.FillRect(canvas.Rect{X: marginX, Y: y, W: contentW, H: height}, tint(rgb(d.style.Primary), 0.93))

	pairs := [4][2]string{
		{d.inv.DocumentKind().NumberLabel(), d.inv.Number},
		{"Issue Date", d.fmt.date(d.inv.IssueDate)},
		{"Due Date", d.fmt.date(d.inv.DueDate)},
		{"Status", d.inv.Status.Label()},
	}
	for i, p := range pairs {
		x := marginX + 10 + float64(i)*column
		c.DrawText(p[0], canvas.Point{X: x, Y: y + 6}, sans(canvas.Regular, 8), textMuted)
		c.DrawText(p[1], canvas.Point{X: x, Y: y + 18}, sans(canvas.Bold, 10), textDark)
	}
	return y + height + sectionGap
}
