package services

import (
	"errors"
	"fmt"
	"time"

	"biorhythms-server/biorhythm"
	"biorhythms-server/dao/redis"
)

// ErrBirthDateNotSet is returned when no birth date was given or stored.
var ErrBirthDateNotSet = errors.New("birth date not set")

// Snapshot is everything the shell shows for one birth date and centre date.
type Snapshot struct {
	BirthDate biorhythm.Date        `json:"birth_date"`
	Center    biorhythm.Date        `json:"center"`
	LeftDays  int                   `json:"left_days"`
	RightDays int                   `json:"right_days"`
	Series    biorhythm.Series      `json:"series"`
	Today     biorhythm.SamplePoint `json:"today"`
	Readout   biorhythm.Readout     `json:"readout"`
}

type BiorhythmService struct {
	settings *redis.SettingsDAO
	cache    *SeriesCache
	now      func() time.Time
}

// NewBiorhythmService constructs the service. now defaults to time.Now.
func NewBiorhythmService(
	settings *redis.SettingsDAO,
	cache *SeriesCache,
	now func() time.Time) *BiorhythmService {

	if now == nil {
		now = time.Now
	}
	return &BiorhythmService{
		settings: settings,
		cache:    cache,
		now:      now,
	}
}

// Today is the current local calendar date.
func (s *BiorhythmService) Today() biorhythm.Date {
	return biorhythm.DateOf(s.now())
}

func (s *BiorhythmService) BirthDate() (biorhythm.Date, bool, error) {
	return s.settings.GetBirthDate()
}

func (s *BiorhythmService) SetBirthDate(d biorhythm.Date) error {
	return s.settings.SetBirthDate(d)
}

func (s *BiorhythmService) ClearBirthDate() error {
	return s.settings.ClearBirthDate()
}

// ResolveBirthDate prefers override and falls back to the stored value.
func (s *BiorhythmService) ResolveBirthDate(override *biorhythm.Date) (biorhythm.Date, error) {
	if override != nil {
		return *override, nil
	}
	d, ok, err := s.settings.GetBirthDate()
	if err != nil {
		return 0, fmt.Errorf("failed to load birth date: %w", err)
	}
	if !ok {
		return 0, ErrBirthDateNotSet
	}
	return d, nil
}

// Series returns the (possibly cached) series around center.
func (s *BiorhythmService) Series(birth, center biorhythm.Date, before, after int) biorhythm.Series {
	return s.cache.Get(birth, center, before, after)
}

// Snapshot builds the series for a symmetric window of span days plus the
// centre day's values and readout.
func (s *BiorhythmService) Snapshot(birth, center biorhythm.Date, span int) Snapshot {
	span = max(span, 0)
	series := s.Series(birth, center, span, span)
	today := series[span]
	return Snapshot{
		BirthDate: birth,
		Center:    center,
		LeftDays:  span,
		RightDays: span,
		Series:    series,
		Today:     today,
		Readout:   biorhythm.ReadoutOf(today),
	}
}
