package plotter

import (
	"biorhythms-server/biorhythm"
)

// GRID_VALUES are the horizontal grid levels.
var GRID_VALUES = []float64{-1, -0.5, 0, 0.5, 1}

// Frame is everything one render pass needs besides the surface.
type Frame struct {
	Series    biorhythm.Series
	LeftDays  int
	RightDays int
	Center    biorhythm.Date
}

// Renderer projects a series onto a Canvas. It holds no per-render state and
// may be shared between goroutines.
type Renderer struct {
	Theme Theme
}

func NewRenderer(theme Theme) *Renderer {
	return &Renderer{Theme: theme}
}

// Render issues the drawing operations for f in a fixed order: background,
// horizontal grid, day lines, date labels, cycle curves.
func (r *Renderer) Render(c Canvas, f Frame) {
	w, h := c.Size()
	l := NewLayout(w, h)
	total := len(f.Series) - 1

	c.FillRect(l.Plot, r.Theme.Background)

	for _, v := range GRID_VALUES {
		y := l.MapY(v)
		c.Line(Point{X: l.Plot.Left, Y: y}, Point{X: l.Plot.Right, Y: y}, r.Theme.gridStroke(v))
	}

	for i := 0; i <= total; i++ {
		x := l.MapX(i, total)
		c.Line(Point{X: x, Y: l.Plot.Top}, Point{X: x, Y: l.Plot.Bottom}, r.Theme.dayStroke(i == f.LeftDays))
	}

	r.drawLabels(c, l, f, total)

	if len(f.Series) == 0 {
		return
	}
	for _, cy := range biorhythm.Cycles() {
		c.Polyline(curve(l, f.Series, total, cy), Stroke{Color: cy.Color, Width: CURVE_WIDTH, Cap: CapRound})
	}
}

func (r *Renderer) drawLabels(c Canvas, l Layout, f Frame, total int) {
	font := r.Theme.Label
	y := l.LabelBaseline()

	left := f.Center.AddDays(-f.LeftDays).Label()
	c.Text(left, Point{X: l.Plot.Left, Y: y}, font)

	center := f.Center.Label()
	cx := l.MapX(f.LeftDays, total)
	c.Text(center, Point{X: cx - c.MeasureText(center, font)/2, Y: y}, font)

	right := f.Center.AddDays(f.RightDays).Label()
	c.Text(right, Point{X: l.Plot.Right - c.MeasureText(right, font), Y: y}, font)
}

func curve(l Layout, s biorhythm.Series, total int, cy biorhythm.Cycle) []Point {
	pts := make([]Point, len(s))
	for i, p := range s {
		pts[i] = Point{X: l.MapX(i, total), Y: l.MapY(cy.Pick(p))}
	}
	return pts
}
