package biorhythm

import (
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Cycle pairs a period with its display color and selectors that pick the
// cycle's entry out of a sample point and out of a readout.
type Cycle struct {
	Name        string
	Period      int
	Color       drawing.Color
	Pick        func(SamplePoint) float64
	PickPercent func(Readout) int
}

var (
	Physical = Cycle{
		Name:        "physical",
		Period:      23,
		Color:       drawing.ColorFromHex("EF5350"),
		Pick:        func(p SamplePoint) float64 { return p.Physical },
		PickPercent: func(r Readout) int { return r.Physical },
	}
	Emotional = Cycle{
		Name:        "emotional",
		Period:      28,
		Color:       drawing.ColorFromHex("42A5F5"),
		Pick:        func(p SamplePoint) float64 { return p.Emotional },
		PickPercent: func(r Readout) int { return r.Emotional },
	}
	Intellectual = Cycle{
		Name:        "intellectual",
		Period:      33,
		Color:       drawing.ColorFromHex("66BB6A"),
		Pick:        func(p SamplePoint) float64 { return p.Intellectual },
		PickPercent: func(r Readout) int { return r.Intellectual },
	}
)

var cycles = [...]Cycle{Physical, Emotional, Intellectual}

// Cycles returns the three cycles in drawing order.
func Cycles() []Cycle {
	out := cycles
	return out[:]
}
