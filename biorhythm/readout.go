package biorhythm

import "strconv"

// Readout is the percentage summary shown under the chart.
type Readout struct {
	Date         Date `json:"date"`
	Physical     int  `json:"physical"`
	Emotional    int  `json:"emotional"`
	Intellectual int  `json:"intellectual"`
}

// Percent converts a wave value to a whole percentage, truncating toward zero.
func Percent(v float64) int {
	return int(v * 100)
}

// FormatPercent prefixes positive values with "+".
func FormatPercent(p int) string {
	if p > 0 {
		return "+" + strconv.Itoa(p)
	}
	return strconv.Itoa(p)
}

func ReadoutOf(p SamplePoint) Readout {
	return Readout{
		Date:         p.Date,
		Physical:     Percent(p.Physical),
		Emotional:    Percent(p.Emotional),
		Intellectual: Percent(p.Intellectual),
	}
}

// Value returns the readout entry for c.
func (r Readout) Value(c Cycle) int {
	return c.PickPercent(r)
}
