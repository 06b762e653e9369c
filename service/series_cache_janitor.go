package services

import (
	"context"
	"log/slog"
	"time"
)

// SeriesCacheJanitor periodically drops cached series centred on past days.
type SeriesCacheJanitor struct {
	cache   *SeriesCache
	service *BiorhythmService
}

// NewSeriesCacheJanitor constructs a new janitor with dependencies.
func NewSeriesCacheJanitor(cache *SeriesCache, service *BiorhythmService) *SeriesCacheJanitor {
	return &SeriesCacheJanitor{
		cache:   cache,
		service: service,
	}
}

// StartPeriodicJob launches the background loop at the given interval. It
// stops when ctx is done.
func (j *SeriesCacheJanitor) StartPeriodicJob(ctx context.Context, interval time.Duration) {
	go j.startPeriodicJob(ctx, interval)
}

func (j *SeriesCacheJanitor) startPeriodicJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Series cache janitor stopped", slog.String("component", "SeriesCacheJanitor"))
			return
		case <-ticker.C:
			j.PurgeStale()
		}
	}
}

// PurgeStale evicts entries centred before today and returns the count.
func (j *SeriesCacheJanitor) PurgeStale() int {
	today := j.service.Today()
	n := j.cache.EvictCenteredBefore(today)
	slog.Debug("Purged stale series",
		slog.String("component", "SeriesCacheJanitor"),
		slog.Int("evicted", n),
		slog.Int("remaining", j.cache.Len()),
		slog.String("today", today.String()))
	return n
}
