package plotter

import (
	"fmt"
	"unicode/utf8"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	OP_RECT     = "rect"
	OP_LINE     = "line"
	OP_TEXT     = "text"
	OP_POLYLINE = "polyline"
)

// glyphAdvance approximates the width of one glyph as a fraction of the
// font size.
const glyphAdvance = 0.55

// Op is one recorded drawing call.
type Op struct {
	Kind     string  `json:"kind"`
	Rect     *Rect   `json:"rect,omitempty"`
	Points   []Point `json:"points,omitempty"`
	Text     string  `json:"text,omitempty"`
	Color    string  `json:"color"`
	Width    float64 `json:"width,omitempty"`
	Cap      string  `json:"cap,omitempty"`
	FontSize float64 `json:"font_size,omitempty"`
}

// Recorder is a Canvas that keeps every call in order instead of drawing.
type Recorder struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Ops    []Op    `json:"ops"`
}

func NewRecorder(width, height float64) *Recorder {
	return &Recorder{Width: width, Height: height}
}

func (r *Recorder) Size() (float64, float64) { return r.Width, r.Height }

func (r *Recorder) FillRect(rect Rect, c drawing.Color) {
	r.Ops = append(r.Ops, Op{Kind: OP_RECT, Rect: &rect, Color: hexColor(c)})
}

func (r *Recorder) Line(from, to Point, s Stroke) {
	r.Ops = append(r.Ops, Op{
		Kind:   OP_LINE,
		Points: []Point{from, to},
		Color:  hexColor(s.Color),
		Width:  s.Width,
		Cap:    s.Cap.String(),
	})
}

func (r *Recorder) Text(body string, at Point, f Font) {
	r.Ops = append(r.Ops, Op{
		Kind:     OP_TEXT,
		Points:   []Point{at},
		Text:     body,
		Color:    hexColor(f.Color),
		FontSize: f.Size,
	})
}

func (r *Recorder) MeasureText(body string, f Font) float64 {
	return float64(utf8.RuneCountInString(body)) * f.Size * glyphAdvance
}

func (r *Recorder) Polyline(pts []Point, s Stroke) {
	cp := make([]Point, len(pts))
	copy(cp, pts)
	r.Ops = append(r.Ops, Op{
		Kind:   OP_POLYLINE,
		Points: cp,
		Color:  hexColor(s.Color),
		Width:  s.Width,
		Cap:    s.Cap.String(),
	})
}

// OfKind filters the recorded operations.
func (r *Recorder) OfKind(kind string) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

func hexColor(c drawing.Color) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
