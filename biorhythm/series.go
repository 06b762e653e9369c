package biorhythm

import "math"

// DefaultSpan is the number of days shown on each side of the centre date.
const DefaultSpan = 15

// SamplePoint is one day's cycle values. Each value lies in [-1, 1].
type SamplePoint struct {
	Date         Date    `json:"date"`
	Physical     float64 `json:"physical"`
	Emotional    float64 `json:"emotional"`
	Intellectual float64 `json:"intellectual"`
}

// Series is a chronological run of sample points, one per calendar day.
type Series []SamplePoint

// Wave returns sin(2π·(elapsed mod period)/period). The modulo is the
// mathematical one, so negative elapsed values land in [0, period).
func Wave(elapsed, period int) float64 {
	m := elapsed % period
	if m < 0 {
		m += period
	}
	return math.Sin(2 * math.Pi * float64(m) / float64(period))
}

// SampleAt computes the sample point for day given a birth date.
func SampleAt(birth, day Date) SamplePoint {
	elapsed := day.DaysSince(birth)
	return SamplePoint{
		Date:         day,
		Physical:     Wave(elapsed, Physical.Period),
		Emotional:    Wave(elapsed, Emotional.Period),
		Intellectual: Wave(elapsed, Intellectual.Period),
	}
}

// GenerateSeries returns one sample per day in [center-daysBefore,
// center+daysAfter]. Negative spans are treated as zero.
func GenerateSeries(birth, center Date, daysBefore, daysAfter int) Series {
	daysBefore = max(daysBefore, 0)
	daysAfter = max(daysAfter, 0)

	start := center.AddDays(-daysBefore)
	out := make(Series, 0, daysBefore+daysAfter+1)
	for i := 0; i <= daysBefore+daysAfter; i++ {
		out = append(out, SampleAt(birth, start.AddDays(i)))
	}
	return out
}

// At looks up the sample for a given date.
func (s Series) At(d Date) (SamplePoint, bool) {
	if len(s) == 0 {
		return SamplePoint{}, false
	}
	i := d.DaysSince(s[0].Date)
	if i < 0 || i >= len(s) {
		return SamplePoint{}, false
	}
	return s[i], true
}

func (s Series) Start() (Date, bool) {
	if len(s) == 0 {
		return 0, false
	}
	return s[0].Date, true
}

func (s Series) End() (Date, bool) {
	if len(s) == 0 {
		return 0, false
	}
	return s[len(s)-1].Date, true
}
