package textures

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sync"
	"time"

	"lolbrowser/fetcher/requests"
	"lolbrowser/pkg/logger"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// ErrNoFetcher is returned when a url is requested from a cache built without a fetcher.
var ErrNoFetcher = errors.New("texture cache has no fetcher")

// Handle is a opaque reference to a uploaded texture.
type Handle = uint32

// NoTexture is returned whenever a texture couldn't be loaded.
const NoTexture Handle = 0

// Uploader turns decoded images into renderable handles.
type Uploader interface {
	Upload(key string, img image.Image) (Handle, error)
	Release(handle Handle)
}

// Request is a single texture to be loaded.
type Request struct {
	Key string
	URL string
}

// TextureCache loads remote images once and keeps the handles in a bounded LRU.
// Entries expire after the TTL and evicted handles are released on the uploader.
// Failures are never cached, the next call tries again.
type TextureCache struct {
	fetcher  requests.Fetcher
	uploader Uploader
	logger   *logger.NewLogger
	workers  int

	lru   *expirable.LRU[string, Handle]
	group singleflight.Group

	// Serializes the upload/replace of a key with the purge on Close.
	mu sync.Mutex
}

// TextureCacheDeps is the dependency list for the texture cache.
type TextureCacheDeps struct {
	Fetcher  requests.Fetcher
	Uploader Uploader
	Logger   *logger.NewLogger

	// Zero capacity means unbounded, zero TTL means no expiration.
	Capacity        int
	TTL             time.Duration
	PrefetchWorkers int
}

// NewTextureCache creates the texture cache.
func NewTextureCache(deps *TextureCacheDeps) *TextureCache {
	workers := deps.PrefetchWorkers
	if workers <= 0 {
		workers = 1
	}

	c := &TextureCache{
		fetcher:  deps.Fetcher,
		uploader: deps.Uploader,
		logger:   deps.Logger,
		workers:  workers,
	}
	c.lru = expirable.NewLRU[string, Handle](deps.Capacity, c.onEvict, deps.TTL)
	return c
}

func (c *TextureCache) onEvict(key string, handle Handle) {
	c.uploader.Release(handle)
}

// Get returns the handle of a key, loading it from the url on a miss.
// Concurrent misses on the same key share a single fetch.
func (c *TextureCache) Get(ctx context.Context, key string, url string) (Handle, error) {
	if handle, ok := c.lru.Get(key); ok {
		return handle, nil
	}

	if err := ctx.Err(); err != nil {
		return NoTexture, err
	}

	// The flight outlives a caller that gives up, the others may still be waiting on it.
	flight := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		// Someone may have loaded it while we were waiting.
		if handle, ok := c.lru.Get(key); ok {
			return handle, nil
		}

		img, err := c.download(flight, url)
		if err != nil {
			return NoTexture, err
		}
		return c.upload(key, img)
	})

	select {
	case <-ctx.Done():
		return NoTexture, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			c.logger.Errorf("Failed to load texture %s (%s): %v", key, url, res.Err)
			return NoTexture, res.Err
		}
		return res.Val.(Handle), nil
	}
}

// GetFile returns the handle of a local image, loading it on a miss.
func (c *TextureCache) GetFile(key string, path string) (Handle, error) {
	if handle, ok := c.lru.Get(key); ok {
		return handle, nil
	}

	result, err, _ := c.group.Do(key, func() (any, error) {
		img, err := LoadFile(path)
		if err != nil {
			return NoTexture, err
		}
		return c.upload(key, img)
	})
	if err != nil {
		c.logger.Warnf("Failed to load texture file %s: %v", path, err)
		return NoTexture, err
	}
	return result.(Handle), nil
}

// Peek returns the handle of a key without loading anything.
// Used by the render pass, which must never block.
func (c *TextureCache) Peek(key string) (Handle, bool) {
	return c.lru.Peek(key)
}

// Prefetch loads every request using a limited number of workers.
// A failed request doesn't stop the others, all failures are returned joined.
func (c *TextureCache) Prefetch(ctx context.Context, reqs []Request) error {
	var g errgroup.Group
	g.SetLimit(c.workers)

	var mu sync.Mutex
	var errs []error

	for _, req := range reqs {
		g.Go(func() error {
			if _, err := c.Get(ctx, req.Key, req.URL); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", req.Key, err))
				mu.Unlock()
			}
			return nil
		})
	}
	g.Wait()

	return errors.Join(errs...)
}

// Len returns the number of cached textures.
func (c *TextureCache) Len() int {
	return c.lru.Len()
}

// Close releases every cached handle. The cache can still be used after it.
func (c *TextureCache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Purge()
}

func (c *TextureCache) download(ctx context.Context, url string) (image.Image, error) {
	if c.fetcher == nil {
		return nil, ErrNoFetcher
	}
	if url == "" {
		return nil, errors.New("empty url")
	}

	body, err := c.fetcher.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to download: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to decode: %w", err)
	}
	return img, nil
}

func (c *TextureCache) upload(key string, img image.Image) (Handle, error) {
	handle, err := c.uploader.Upload(key, img)
	if err != nil {
		return NoTexture, fmt.Errorf("failed to upload: %w", err)
	}
	if handle == NoTexture {
		return NoTexture, errors.New("uploader returned no texture")
	}

	c.mu.Lock()
	// An expired entry may still be there, removing it releases the old handle.
	c.lru.Remove(key)
	c.lru.Add(key, handle)
	c.mu.Unlock()

	return handle, nil
}

// LoadFile decodes a local image file.
func LoadFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}
