package biorhythm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPercent_TruncatesTowardZero(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{1, 100},
		{-1, -100},
		{0.739, 73},
		{-0.739, -73},
		{0.0049, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Percent(tt.in), "Percent(%v)", tt.in)
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "+42", FormatPercent(42))
	assert.Equal(t, "0", FormatPercent(0))
	assert.Equal(t, "-7", FormatPercent(-7))
}

func TestReadoutOf(t *testing.T) {
	birth := NewDate(2000, time.January, 1)
	day := NewDate(2000, time.January, 8)
	p := SampleAt(birth, day)

	r := ReadoutOf(p)

	assert.Equal(t, day, r.Date)
	assert.Equal(t, Percent(p.Physical), r.Physical)
	assert.Equal(t, Percent(p.Emotional), r.Emotional)
	assert.Equal(t, Percent(p.Intellectual), r.Intellectual)
	for _, c := range Cycles() {
		assert.Equal(t, Percent(c.Pick(p)), r.Value(c))
	}
}

func TestReadout_ValueUsesCycleSelector(t *testing.T) {
	r := Readout{Physical: 10, Emotional: -20, Intellectual: 30}

	assert.Equal(t, 10, r.Value(Physical))
	assert.Equal(t, -20, r.Value(Emotional))
	assert.Equal(t, 30, r.Value(Intellectual))

	mirrored := Physical
	mirrored.PickPercent = Intellectual.PickPercent
	assert.Equal(t, 30, r.Value(mirrored), "entry follows the selector, not the period")
}
