package plotter

// Margins reserved around the plot area. Left, top and bottom leave room
// for axis labels.
const (
	MARGIN_LEFT   = 16.0
	MARGIN_RIGHT  = 8.0
	MARGIN_TOP    = 8.0
	MARGIN_BOTTOM = 28.0

	// LABEL_OFFSET is the distance from the plot bottom to the label baseline.
	LABEL_OFFSET = 24.0
)

// Layout maps sample indices and cycle values into the plot rectangle.
type Layout struct {
	Plot Rect
}

func NewLayout(width, height float64) Layout {
	return Layout{Plot: Rect{
		Left:   MARGIN_LEFT,
		Top:    MARGIN_TOP,
		Right:  width - MARGIN_RIGHT,
		Bottom: height - MARGIN_BOTTOM,
	}}
}

// MapX maps index in [0, total] onto the plot width. A total below one is
// treated as one.
func (l Layout) MapX(index, total int) float64 {
	t := float64(index) / float64(max(total, 1))
	return l.Plot.Left + t*l.Plot.Width()
}

// MapY maps v in [-1, 1] onto the plot height, +1 at the top.
func (l Layout) MapY(v float64) float64 {
	t := (v + 1) / 2
	return l.Plot.Bottom - t*l.Plot.Height()
}

func (l Layout) LabelBaseline() float64 {
	return l.Plot.Bottom + LABEL_OFFSET
}
