package plotter

import (
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Point is a position on the drawing surface in device-independent units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

func (r Rect) Width() float64  { return r.Right - r.Left }
func (r Rect) Height() float64 { return r.Bottom - r.Top }

type Cap int

const (
	CapButt Cap = iota
	CapRound
)

func (c Cap) String() string {
	if c == CapRound {
		return "round"
	}
	return "butt"
}

type Stroke struct {
	Color drawing.Color
	Width float64
	Cap   Cap
}

type Font struct {
	Color drawing.Color
	Size  float64
}

// Canvas is the host drawing surface. Text is positioned by its left
// baseline point.
type Canvas interface {
	Size() (width, height float64)
	FillRect(r Rect, c drawing.Color)
	Line(from, to Point, s Stroke)
	Text(body string, at Point, f Font)
	MeasureText(body string, f Font) float64
	// Polyline strokes an open, unfilled path through pts.
	Polyline(pts []Point, s Stroke)
}
