package models

import (
	"fmt"

	"biorhythms-server/biorhythm"
)

// CycleValue is one cycle's entry in the numeric summary.
type CycleValue struct {
	Name      string  `json:"name"`
	Period    int     `json:"period"`
	Color     string  `json:"color"`
	Value     float64 `json:"value"`
	Percent   int     `json:"percent"`
	Formatted string  `json:"formatted"`
}

// ReadoutResponse is returned by GET /v1/readout.
type ReadoutResponse struct {
	BirthDate biorhythm.Date `json:"birth_date"`
	Date      biorhythm.Date `json:"date"`
	Cycles    []CycleValue   `json:"cycles"`
}

// NewReadoutResponse summarizes p, the sample for one day, in drawing order.
func NewReadoutResponse(birth biorhythm.Date, p biorhythm.SamplePoint) ReadoutResponse {
	readout := biorhythm.ReadoutOf(p)
	resp := ReadoutResponse{
		BirthDate: birth,
		Date:      p.Date,
	}
	for _, c := range biorhythm.Cycles() {
		pct := readout.Value(c)
		resp.Cycles = append(resp.Cycles, CycleValue{
			Name:      c.Name,
			Period:    c.Period,
			Color:     fmt.Sprintf("#%02x%02x%02x", c.Color.R, c.Color.G, c.Color.B),
			Value:     c.Pick(p),
			Percent:   pct,
			Formatted: biorhythm.FormatPercent(pct),
		})
	}
	return resp
}
