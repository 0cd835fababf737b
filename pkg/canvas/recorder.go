package canvas

import (
	"bytes"
	"fmt"
	"unicode/utf8"
)

// OpKind identifies a recorded primitive.
type OpKind string

const (
	OpText           OpKind = "text"
	OpLine           OpKind = "line"
	OpFillRect       OpKind = "fill-rect"
	OpStrokeRect     OpKind = "stroke-rect"
	OpRoundedRect    OpKind = "rounded-rect"
	OpEllipse        OpKind = "ellipse"
	OpLinearGradient OpKind = "linear-gradient"
)

// Op is one recorded drawing call. Only the fields relevant to Kind are set.
type Op struct {
	Kind   OpKind
	Text   string
	Font   Font
	Color  Color
	Rect   Rect
	From   Point
	To     Point
	Width  float64
	Radius float64
	Stops  []ColorStop
}

// Recorder is a Canvas that keeps every call in order instead of drawing.
// Text is measured with fixed metrics: each rune advances half the font
// size.
type Recorder struct {
	Ops []Op

	finalized int
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) DrawText(text string, origin Point, font Font, color Color) {
	if text == "" {
		return
	}
	r.Ops = append(r.Ops, Op{Kind: OpText, Text: text, From: origin, Font: font, Color: color})
}

func (r *Recorder) DrawLine(from, to Point, width float64, color Color) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, From: from, To: to, Width: width, Color: color})
}

func (r *Recorder) FillRect(rect Rect, color Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFillRect, Rect: rect, Color: color})
}

func (r *Recorder) StrokeRect(rect Rect, color Color, width float64) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokeRect, Rect: rect, Color: color, Width: width})
}

func (r *Recorder) FillRoundedRect(rect Rect, radius float64, color Color) {
	r.Ops = append(r.Ops, Op{Kind: OpRoundedRect, Rect: rect, Radius: radius, Color: color})
}

func (r *Recorder) FillEllipse(rect Rect, color Color) {
	r.Ops = append(r.Ops, Op{Kind: OpEllipse, Rect: rect, Color: color})
}

func (r *Recorder) FillLinearGradient(rect Rect, stops []ColorStop, start, end Point) {
	r.Ops = append(r.Ops, Op{
		Kind:  OpLinearGradient,
		Rect:  rect,
		Stops: append([]ColorStop(nil), stops...),
		From:  start,
		To:    end,
	})
}

func (r *Recorder) MeasureText(text string, font Font) (float64, float64) {
	return float64(utf8.RuneCountInString(text)) * font.Size / 2, font.Size * lineHeight
}

// Finalize returns a line-per-op listing of the recording.
func (r *Recorder) Finalize() ([]byte, error) {
	r.finalized++
	if r.finalized > 1 {
		return nil, ErrFinalized
	}
	var buf bytes.Buffer
	for _, op := range r.Ops {
		fmt.Fprintf(&buf, "%+v\n", op)
	}
	return buf.Bytes(), nil
}

// Finalized reports how many times Finalize was called.
func (r *Recorder) Finalized() int {
	return r.finalized
}

// Texts returns the text of every text op in drawing order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == OpText {
			out = append(out, op.Text)
		}
	}
	return out
}

// Find returns the first text op with exactly the given text.
func (r *Recorder) Find(text string) (Op, bool) {
	for _, op := range r.Ops {
		if op.Kind == OpText && op.Text == text {
			return op, true
		}
	}
	return Op{}, false
}

// Count returns the number of text ops with exactly the given text.
func (r *Recorder) Count(text string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == OpText && op.Text == text {
			n++
		}
	}
	return n
}

// CountKind returns the number of ops of the given kind.
func (r *Recorder) CountKind(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}
