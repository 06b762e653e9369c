package di

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"biorhythms-server/config"
	"biorhythms-server/dao/redis"
	"biorhythms-server/db"
	"biorhythms-server/plotter"
	"biorhythms-server/server"
	"biorhythms-server/server/handlers"
	services "biorhythms-server/service"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
)

// Container holds all application dependencies.
type Container struct {
	Config              *config.Config
	KVClient            db.KVClient
	SettingsDao         *redis.SettingsDAO
	SeriesCache         *services.SeriesCache
	BiorhythmService    *services.BiorhythmService
	SeriesCacheJanitor  *services.SeriesCacheJanitor
	Renderer            *plotter.Renderer
	Metrics             *server.Metrics
	BiorhythmHandler    *handlers.BiorhythmHandler
	MuxRouter           *mux.Router
	Router              *server.Router
	BiorhythmHttpServer *server.BiorhythmHttpServer
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	slog.Info("Initializing container",
		slog.String("component", "Container"),
		slog.String("store", cfg.Store.Backend))

	kv, err := newKVClient(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	settingsDao := redis.NewSettingsDAO(kv)
	seriesCache := services.NewSeriesCache(cfg.Cache.MaxEntries)
	biorhythmService := services.NewBiorhythmService(settingsDao, seriesCache, time.Now)
	janitor := services.NewSeriesCacheJanitor(seriesCache, biorhythmService)

	theme := plotter.DefaultTheme()
	if cfg.Chart.LabelFontPts > 0 {
		theme.Label.Size = cfg.Chart.LabelFontPts
	}
	renderer := plotter.NewRenderer(theme)

	metrics := server.NewMetrics()
	biorhythmHandler := handlers.NewBiorhythmHandler(biorhythmService, renderer, cfg.Chart, metrics)

	muxRouter := mux.NewRouter()
	router := server.NewRouter(biorhythmHandler, metrics, muxRouter)
	httpServer := server.NewBiorhythmHttpServer(router, muxRouter, cfg.Server.Addr,
		time.Duration(cfg.Server.ShutdownTimeoutSec)*time.Second)

	return &Container{
		Config:              cfg,
		KVClient:            kv,
		SettingsDao:         settingsDao,
		SeriesCache:         seriesCache,
		BiorhythmService:    biorhythmService,
		SeriesCacheJanitor:  janitor,
		Renderer:            renderer,
		Metrics:             metrics,
		BiorhythmHandler:    biorhythmHandler,
		MuxRouter:           muxRouter,
		Router:              router,
		BiorhythmHttpServer: httpServer,
	}, nil
}

// Close releases the store.
func (c *Container) Close() error {
	return c.KVClient.Close()
}

func newKVClient(ctx context.Context, cfg config.StoreConfig) (db.KVClient, error) {
	switch cfg.Backend {
	case config.STORE_REDIS:
		internal := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		client, err := db.NewGoRedisClient(ctx, internal)
		if err != nil {
			internal.Close()
			return nil, err
		}
		return client, nil
	case config.STORE_BADGER:
		client, err := db.NewBadgerClient(cfg.Badger.Path)
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.STORE_MEMORY:
		return db.NewMockKVClient(), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
}
