package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"biorhythms-server/biorhythm"
	"biorhythms-server/dao/redis"
	"biorhythms-server/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.March, 15, 9, 30, 0, 0, time.UTC)

func newTestService(t *testing.T) (*BiorhythmService, *SeriesCache) {
	t.Helper()
	cache := NewSeriesCache(16)
	dao := redis.NewSettingsDAO(db.NewMockKVClient())
	return NewBiorhythmService(dao, cache, func() time.Time { return fixedNow }), cache
}

func TestBiorhythmService_Today(t *testing.T) {
	svc, _ := newTestService(t)

	assert.Equal(t, biorhythm.NewDate(2024, time.March, 15), svc.Today())
}

func TestBiorhythmService_ResolveBirthDate(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ResolveBirthDate(nil)
	assert.True(t, errors.Is(err, ErrBirthDateNotSet))

	stored := biorhythm.NewDate(1990, time.July, 4)
	require.NoError(t, svc.SetBirthDate(stored))

	got, err := svc.ResolveBirthDate(nil)
	require.NoError(t, err)
	assert.Equal(t, stored, got)

	override := biorhythm.NewDate(1975, time.January, 30)
	got, err = svc.ResolveBirthDate(&override)
	require.NoError(t, err)
	assert.Equal(t, override, got)

	require.NoError(t, svc.ClearBirthDate())
	_, ok, err := svc.BirthDate()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBiorhythmService_Snapshot(t *testing.T) {
	svc, _ := newTestService(t)
	birth := biorhythm.NewDate(2000, time.January, 1)
	center := biorhythm.NewDate(2000, time.January, 24)

	snap := svc.Snapshot(birth, center, biorhythm.DefaultSpan)

	require.Len(t, snap.Series, 2*biorhythm.DefaultSpan+1)
	assert.Equal(t, center, snap.Today.Date)
	assert.Equal(t, biorhythm.DefaultSpan, snap.LeftDays)
	assert.Equal(t, biorhythm.DefaultSpan, snap.RightDays)
	assert.Equal(t, biorhythm.ReadoutOf(snap.Today), snap.Readout)
	assert.Equal(t, 0, snap.Readout.Physical)
}

func TestBiorhythmService_SnapshotNegativeSpan(t *testing.T) {
	svc, _ := newTestService(t)
	center := biorhythm.NewDate(2010, time.June, 1)

	snap := svc.Snapshot(biorhythm.NewDate(1980, time.June, 1), center, -3)

	require.Len(t, snap.Series, 1)
	assert.Equal(t, center, snap.Today.Date)
}

func TestSeriesCache_Memoizes(t *testing.T) {
	cache := NewSeriesCache(4)
	birth := biorhythm.NewDate(1990, time.July, 4)
	center := biorhythm.NewDate(2024, time.March, 15)

	a := cache.Get(birth, center, 15, 15)
	b := cache.Get(birth, center, 15, 15)

	assert.Equal(t, a, b)
	assert.Same(t, &a[0], &b[0])
	hits, misses := cache.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
	assert.Equal(t, biorhythm.GenerateSeries(birth, center, 15, 15), a)
}

func TestSeriesCache_ResetsWhenFull(t *testing.T) {
	cache := NewSeriesCache(2)
	birth := biorhythm.NewDate(1990, time.July, 4)
	center := biorhythm.NewDate(2024, time.March, 15)

	cache.Get(birth, center, 1, 1)
	cache.Get(birth, center.AddDays(1), 1, 1)
	require.Equal(t, 2, cache.Len())

	cache.Get(birth, center.AddDays(2), 1, 1)
	assert.Equal(t, 1, cache.Len())
}

func TestSeriesCache_Disabled(t *testing.T) {
	cache := NewSeriesCache(0)

	s := cache.Get(biorhythm.NewDate(1990, time.July, 4), biorhythm.NewDate(2024, time.March, 15), 2, 2)

	assert.Len(t, s, 5)
	assert.Zero(t, cache.Len())
}

func TestSeriesCacheJanitor_PurgeStale(t *testing.T) {
	svc, cache := newTestService(t)
	birth := biorhythm.NewDate(1990, time.July, 4)
	today := svc.Today()

	svc.Series(birth, today.AddDays(-2), 1, 1)
	svc.Series(birth, today.AddDays(-1), 1, 1)
	svc.Series(birth, today, 1, 1)
	svc.Series(birth, today.AddDays(1), 1, 1)

	janitor := NewSeriesCacheJanitor(cache, svc)

	assert.Equal(t, 2, janitor.PurgeStale())
	assert.Equal(t, 2, cache.Len())
	assert.Equal(t, 0, janitor.PurgeStale())
}

func TestSeriesCacheJanitor_StopsOnCancel(t *testing.T) {
	svc, cache := newTestService(t)
	svc.Series(biorhythm.NewDate(1990, time.July, 4), svc.Today().AddDays(-5), 1, 1)

	ctx, cancel := context.WithCancel(context.Background())
	NewSeriesCacheJanitor(cache, svc).StartPeriodicJob(ctx, 5*time.Millisecond)

	assert.Eventually(t, func() bool { return cache.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
}
