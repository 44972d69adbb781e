package jobs

import (
	"context"
	"errors"
	"fmt"
	"os"

	"lolbrowser/fetcher/assets"
	"lolbrowser/fetcher/requests"
	"lolbrowser/pkg/config"
	"lolbrowser/pkg/logger"
	"lolbrowser/pkg/redis"
)

// ErrNoStore is returned when the revalidation runs without a Redis configured.
var ErrNoStore = errors.New("revalidation needs REDIS_HOST")

// RevalidateCache refreshes every detail document of the shared Redis store.
func RevalidateCache(ctx context.Context, cfg *config.Config) error {
	if !cfg.RedisEnabled() {
		return ErrNoStore
	}

	l := logger.NewConsoleLogger(os.Stderr)
	l.Infof("Starting cache revalidation")

	client := requests.NewClient(cfg.DDragon.Timeout, cfg.DDragon.RequestsPerSecond)

	store := redis.NewClient(cfg.Redis)
	defer store.Close()

	if err := store.Ping(ctx); err != nil {
		return fmt.Errorf("couldn't get redis connection: %w", err)
	}

	return Revalidate(ctx, cfg, client, store, l)
}

// Revalidate runs the revalidation over the given fetcher and store.
func Revalidate(ctx context.Context, cfg *config.Config, fetcher requests.Fetcher, store assets.KeyValueStore, l *logger.NewLogger) error {
	version, err := assets.ResolveVersion(ctx, fetcher, cfg.DDragon.BaseURL, cfg.DDragon.Version)
	if err != nil {
		return err
	}

	dm := assets.NewDataManager(&assets.DataManagerDeps{
		Fetcher:  fetcher,
		Logger:   l,
		Store:    store,
		StoreTTL: cfg.Redis.TTL,
		BaseURL:  cfg.DDragon.BaseURL,
		Version:  version,
		Language: cfg.DDragon.Language,
	})

	result, err := dm.Revalidate(ctx, cfg.Revalidation.Workers)
	if err != nil {
		return err
	}

	l.Infof("Cache revalidation completed: %d champions, %d items, %d failures",
		result.Champions, result.Items, result.Failed)
	return nil
}
