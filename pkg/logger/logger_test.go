package logger

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"lolbrowser/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLogger(&buf)

	l.Infof("loaded %d champions", 3)
	l.Errorf("failed to fetch %s", "item.json")

	out := buf.String()
	assert.Contains(t, out, "loaded 3 champions")
	assert.Contains(t, out, "failed to fetch item.json")
	assert.Empty(t, l.FilePath())
	assert.ErrorIs(t, l.CleanFile(), ErrNoLogFile)
	assert.ErrorIs(t, l.UploadToS3Bucket(context.Background(), config.BucketConfiguration{}, "key"), ErrNoLogFile)
}

func TestFileLogger(t *testing.T) {
	l, err := CreateLogger()
	require.NoError(t, err)
	t.Cleanup(func() {
		l.Close()
		os.Remove(l.FilePath())
	})

	l.Warnf("texture %s evicted", "Aatrox_0")

	content, err := os.ReadFile(l.FilePath())
	require.NoError(t, err)
	assert.Contains(t, string(content), "texture Aatrox_0 evicted")

	require.NoError(t, l.CleanFile())
	content, err = os.ReadFile(l.FilePath())
	require.NoError(t, err)
	assert.Empty(t, content)
}

func TestUploadToS3Bucket(t *testing.T) {
	l, err := CreateLogger()
	require.NoError(t, err)
	t.Cleanup(func() {
		l.Close()
		os.Remove(l.FilePath())
	})

	var mu sync.Mutex
	var uploaded string
	logged := make(chan struct{})
	var once sync.Once
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		uploaded = string(body)
		mu.Unlock()
		assert.Equal(t, http.MethodPut, r.Method)
		assert.True(t, strings.HasPrefix(r.URL.Path, "/logs-bucket/logs/"), r.URL.Path)

		// Logged while the upload is in flight.
		once.Do(func() {
			go func() {
				defer close(logged)
				l.Infof("logged during upload")
			}()
		})
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	l.Infof("before upload")
	bucket := config.BucketConfiguration{
		Region:       "us-east-1",
		Endpoint:     server.URL,
		AccessKey:    "key",
		AccessSecret: "secret",
		LogBucket:    "logs-bucket",
	}
	require.NoError(t, l.UploadToS3Bucket(context.Background(), bucket, "logs/1.log"))
	<-logged

	mu.Lock()
	assert.Contains(t, uploaded, "before upload")
	mu.Unlock()

	content, err := os.ReadFile(l.FilePath())
	require.NoError(t, err)
	assert.NotContains(t, string(content), "before upload")
	assert.Contains(t, string(content), "logged during upload")
}
