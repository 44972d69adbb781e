package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"lolbrowser/browser/viewmodel"
	"lolbrowser/fetcher/assets"
	"lolbrowser/fetcher/requests"
	"lolbrowser/fetcher/textures"
	"lolbrowser/pkg/config"
	"lolbrowser/pkg/logger"
	"lolbrowser/pkg/redis"
)

// Width in pixels of the stored thumbnails.
const thumbnailWidth = 96

// Everything a command needs, created once at startup.
type session struct {
	cfg        *config.Config
	logger     *logger.NewLogger
	data       *assets.DataManager
	textures   *textures.TextureCache
	uploader   *textures.TerminalUploader
	randomizer *viewmodel.Randomizer
	store      *redis.RedisClient
}

type overrides struct {
	version  string
	language string
}

// Create the session and load both catalogs.
// The TUI logs to a file so the screen is not corrupted, the other commands log to stderr.
func setup(ctx context.Context, opts overrides, toFile bool) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("couldn't initialize the configuration: %w", err)
	}
	if opts.version != "" {
		cfg.DDragon.Version = opts.version
	}
	if opts.language != "" {
		cfg.DDragon.Language = opts.language
	}

	rt := &session{cfg: cfg, randomizer: viewmodel.NewRandomizer()}
	if toFile {
		if rt.logger, err = logger.CreateLogger(); err != nil {
			return nil, fmt.Errorf("couldn't create the log file: %w", err)
		}
	} else {
		rt.logger = logger.NewConsoleLogger(os.Stderr)
	}

	client := requests.NewClient(cfg.DDragon.Timeout, cfg.DDragon.RequestsPerSecond)

	version, err := assets.ResolveVersion(ctx, client, cfg.DDragon.BaseURL, cfg.DDragon.Version)
	if err != nil {
		rt.shutdown(ctx)
		return nil, err
	}

	// The store is optional, a unreachable Redis only costs the shared cache.
	var store assets.KeyValueStore
	if cfg.RedisEnabled() {
		rt.store = redis.NewClient(cfg.Redis)
		if err := rt.store.Ping(ctx); err != nil {
			rt.logger.Warnf("Redis at %s:%s is unreachable, running without it: %v", cfg.Redis.Host, cfg.Redis.Port, err)
			rt.store.Close()
			rt.store = nil
		} else {
			store = rt.store
		}
	}

	rt.data = assets.NewDataManager(&assets.DataManagerDeps{
		Fetcher:  client,
		Logger:   rt.logger,
		Store:    store,
		StoreTTL: cfg.Redis.TTL,
		BaseURL:  cfg.DDragon.BaseURL,
		Version:  version,
		Language: cfg.DDragon.Language,
	})

	if !rt.data.FetchChampionData(ctx) {
		rt.shutdown(ctx)
		return nil, errors.New("couldn't load the champion data")
	}
	if !rt.data.FetchItemData(ctx) {
		rt.shutdown(ctx)
		return nil, errors.New("couldn't load the item data")
	}

	rt.uploader = textures.NewTerminalUploader(thumbnailWidth)
	rt.textures = textures.NewTextureCache(&textures.TextureCacheDeps{
		Fetcher:         client,
		Uploader:        rt.uploader,
		Logger:          rt.logger,
		Capacity:        cfg.Textures.Capacity,
		TTL:             cfg.Textures.TTL,
		PrefetchWorkers: cfg.Textures.PrefetchWorkers,
	})

	return rt, nil
}

// Release the textures and the connections, then ship the log file when a bucket is set.
func (rt *session) shutdown(ctx context.Context) {
	if rt.textures != nil {
		rt.textures.Close()
	}
	if rt.store != nil {
		rt.store.Close()
	}

	if rt.cfg.LogUploadEnabled() && rt.logger.FilePath() != "" {
		key := fmt.Sprintf("logs/%s.log", time.Now().UTC().Format("20060102-150405"))
		if err := rt.logger.UploadToS3Bucket(ctx, rt.cfg.Bucket, key); err != nil {
			fmt.Fprintf(os.Stderr, "Couldn't upload the log file: %v\n", err)
		}
	}
	rt.logger.Close()
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
