package plotter

import (
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	CURVE_WIDTH     = 4.0
	ZERO_LINE_WIDTH = 2.0
	TODAY_WIDTH     = 2.0
	GRID_WIDTH      = 1.0
)

// Theme is the chart palette.
type Theme struct {
	Background drawing.Color
	GridDay    drawing.Color
	GridHalf   drawing.Color
	ZeroLine   drawing.Color
	Today      drawing.Color
	Label      Font
}

func DefaultTheme() Theme {
	var (
		surfaceVariant   = drawing.Color{R: 0xE7, G: 0xE0, B: 0xEC, A: 0xFF}
		onSurface        = drawing.Color{R: 0x1C, G: 0x1B, B: 0x1F, A: 0xFF}
		onSurfaceVariant = drawing.Color{R: 0x49, G: 0x45, B: 0x4F, A: 0xFF}
	)
	return Theme{
		Background: withAlpha(surfaceVariant, 0.7),
		GridDay:    withAlpha(onSurface, 0.10),
		GridHalf:   withAlpha(onSurface, 0.25),
		ZeroLine:   withAlpha(onSurface, 0.9),
		Today:      onSurfaceVariant,
		Label: Font{
			Color: drawing.Color{R: 0x44, G: 0x44, B: 0x44, A: 0xFF},
			Size:  14,
		},
	}
}

func withAlpha(c drawing.Color, a float64) drawing.Color {
	c.A = uint8(a*255 + 0.5)
	return c
}

// gridStroke picks the horizontal grid style for value v: zero heaviest,
// ±0.5 medium, ±1 lightest.
func (t Theme) gridStroke(v float64) Stroke {
	switch v {
	case 0:
		return Stroke{Color: t.ZeroLine, Width: ZERO_LINE_WIDTH}
	case -0.5, 0.5:
		return Stroke{Color: t.GridHalf, Width: GRID_WIDTH}
	default:
		return Stroke{Color: t.GridDay, Width: GRID_WIDTH}
	}
}

func (t Theme) dayStroke(today bool) Stroke {
	if today {
		return Stroke{Color: t.Today, Width: TODAY_WIDTH}
	}
	return Stroke{Color: t.GridDay, Width: GRID_WIDTH}
}
