package textures

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"
	"time"

	"lolbrowser/internal/testutil"
	"lolbrowser/pkg/logger"

	"github.com/stretchr/testify/require"
)

// Encode a solid w x h png.
func pngBytes(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func setupTestCache(capacity int, ttl time.Duration, uploader Uploader) (*TextureCache, *testutil.FakeFetcher) {
	fetcher := testutil.NewFakeFetcher()
	cache := NewTextureCache(&TextureCacheDeps{
		Fetcher:         fetcher,
		Uploader:        uploader,
		Logger:          logger.NewConsoleLogger(io.Discard),
		Capacity:        capacity,
		TTL:             ttl,
		PrefetchWorkers: 2,
	})
	return cache, fetcher
}

func setupLogger() *logger.NewLogger {
	return logger.NewConsoleLogger(io.Discard)
}
