package plotter

import (
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

type Format string

const (
	FORMAT_PNG Format = "png"
	FORMAT_SVG Format = "svg"
)

func (f Format) ContentType() string {
	if f == FORMAT_SVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// ParseFormat accepts "png" or "svg".
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FORMAT_PNG, FORMAT_SVG:
		return Format(s), nil
	}
	return "", fmt.Errorf("unsupported image format %q", s)
}

// GoChartCanvas draws onto a go-chart renderer. go-chart works in whole
// pixels, so every coordinate is rounded. Line caps are left to the
// renderer's default.
type GoChartCanvas struct {
	r      chart.Renderer
	width  int
	height int
}

// NewGoChartCanvas creates a PNG or SVG surface with go-chart's default font.
func NewGoChartCanvas(format Format, width, height int) (*GoChartCanvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", width, height)
	}

	var (
		r   chart.Renderer
		err error
	)
	switch format {
	case FORMAT_SVG:
		r, err = chart.SVG(width, height)
	case FORMAT_PNG:
		r, err = chart.PNG(width, height)
	default:
		return nil, fmt.Errorf("unsupported image format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s renderer: %w", format, err)
	}

	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("failed to load default font: %w", err)
	}
	r.SetFont(font)

	return &GoChartCanvas{r: r, width: width, height: height}, nil
}

func (g *GoChartCanvas) Size() (float64, float64) {
	return float64(g.width), float64(g.height)
}

func (g *GoChartCanvas) FillRect(rect Rect, c drawing.Color) {
	g.r.SetFillColor(c)
	g.r.MoveTo(px(rect.Left), px(rect.Top))
	g.r.LineTo(px(rect.Right), px(rect.Top))
	g.r.LineTo(px(rect.Right), px(rect.Bottom))
	g.r.LineTo(px(rect.Left), px(rect.Bottom))
	g.r.Close()
	g.r.Fill()
}

func (g *GoChartCanvas) Line(from, to Point, s Stroke) {
	g.r.SetStrokeColor(s.Color)
	g.r.SetStrokeWidth(s.Width)
	g.r.MoveTo(px(from.X), px(from.Y))
	g.r.LineTo(px(to.X), px(to.Y))
	g.r.Stroke()
}

func (g *GoChartCanvas) Text(body string, at Point, f Font) {
	g.r.SetFontColor(f.Color)
	g.r.SetFontSize(f.Size)
	g.r.Text(body, px(at.X), px(at.Y))
}

func (g *GoChartCanvas) MeasureText(body string, f Font) float64 {
	g.r.SetFontSize(f.Size)
	return float64(g.r.MeasureText(body).Width())
}

func (g *GoChartCanvas) Polyline(pts []Point, s Stroke) {
	if len(pts) == 0 {
		return
	}
	g.r.SetStrokeColor(s.Color)
	g.r.SetStrokeWidth(s.Width)
	g.r.MoveTo(px(pts[0].X), px(pts[0].Y))
	for _, p := range pts[1:] {
		g.r.LineTo(px(p.X), px(p.Y))
	}
	g.r.Stroke()
}

// Save encodes the drawn image to w.
func (g *GoChartCanvas) Save(w io.Writer) error {
	return g.r.Save(w)
}

// RenderImage renders f with r into a new image of the given format and size
// and writes it to w.
func RenderImage(w io.Writer, format Format, width, height int, r *Renderer, f Frame) error {
	canvas, err := NewGoChartCanvas(format, width, height)
	if err != nil {
		return err
	}
	r.Render(canvas, f)
	if err := canvas.Save(w); err != nil {
		return fmt.Errorf("failed to encode %s chart: %w", format, err)
	}
	return nil
}

func px(v float64) int {
	return int(math.Round(v))
}
