package biorhythm

import (
	"fmt"
	"time"
)

const DATE_LAYOUT = "2006-01-02"

// LABEL_LAYOUT is the "day abbreviated-month" form used on the chart axis.
const LABEL_LAYOUT = "2 Jan"

const secondsPerDay = 24 * 60 * 60

// Date is a calendar date with no time of day and no zone, stored as the
// number of days since 1970-01-01. This is also the persisted form.
type Date int64

// NewDate builds a Date from its calendar parts. Out-of-range parts are
// normalized the way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay)
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DATE_LAYOUT, s)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// EpochDay returns the persisted day count.
func (d Date) EpochDay() int64 { return int64(d) }

func (d Date) AddDays(n int) Date { return d + Date(n) }

// DaysSince returns the signed number of whole days from other to d.
func (d Date) DaysSince(other Date) int { return int(d - other) }

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Unix(int64(d)*secondsPerDay, 0).UTC()
}

func (d Date) Before(other Date) bool { return d < other }

func (d Date) After(other Date) bool { return d > other }

func (d Date) String() string { return d.Time().Format(DATE_LAYOUT) }

func (d Date) Label() string { return d.Time().Format(LABEL_LAYOUT) }

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
