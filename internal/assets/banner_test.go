package assets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mrlokans/library/internal/config"
)

const animation = `{"v":"5.5.7","fr":30,"layers":[]}`

func TestFetcher_Disabled(t *testing.T) {
	f := NewFetcher(config.Banner{}, nil)

	assert.False(t, f.Enabled())
	_, err := f.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrDisabled)

	data, ok := f.Banner(context.Background())
	assert.False(t, ok)
	assert.Nil(t, data)
}

func TestFetcher_FetchAndCache(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(animation))
	}))
	defer server.Close()

	cacheDir := filepath.Join(t.TempDir(), "cache")
	f := NewFetcher(config.Banner{URL: server.URL + "/banner.json", CacheDir: cacheDir}, nil)

	data, ok := f.Banner(context.Background())
	require.True(t, ok)
	assert.JSONEq(t, animation, string(data))

	data, ok = f.Banner(context.Background())
	require.True(t, ok)
	assert.JSONEq(t, animation, string(data))
	assert.Equal(t, int32(1), hits.Load(), "second call should be served from cache")

	entries, err := os.ReadDir(cacheDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Regexp(t, `^banner_[0-9a-f]{16}\.json$`, entries[0].Name())
}

func TestFetcher_WithoutCacheDir(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(animation))
	}))
	defer server.Close()

	f := NewFetcher(config.Banner{URL: server.URL}, nil)
	_, ok := f.Banner(context.Background())
	require.True(t, ok)
	_, ok = f.Banner(context.Background())
	require.True(t, ok)
	assert.Equal(t, int32(1), hits.Load(), "second call should be served from memory")
}

func TestFetcher_SlowRemoteDoesNotSerializeCallers(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		_, _ = w.Write([]byte(animation))
	}))
	defer server.Close()

	f := NewFetcher(config.Banner{URL: server.URL, Timeout: 5 * time.Second}, nil)

	var wg sync.WaitGroup
	results := make(chan bool, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok := f.Banner(context.Background())
			results <- ok
		}()
	}

	require.Eventually(t, func() bool { return hits.Load() == 2 }, 2*time.Second, 10*time.Millisecond,
		"both callers should reach the remote while the first is still waiting")
	close(release)
	wg.Wait()
	close(results)

	for ok := range results {
		assert.True(t, ok)
	}
	_, ok := f.Banner(context.Background())
	assert.True(t, ok)
	assert.Equal(t, int32(2), hits.Load())
}

func TestFetcher_Unavailable(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"not found", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}},
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"invalid json", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>not json</html>"))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			core, logs := observer.New(zapcore.WarnLevel)
			cacheDir := t.TempDir()
			f := NewFetcher(config.Banner{URL: server.URL, CacheDir: cacheDir}, zap.New(core))

			data, ok := f.Banner(context.Background())
			assert.False(t, ok)
			assert.Nil(t, data)
			assert.Equal(t, 1, logs.FilterMessage("Banner unavailable").Len())

			entries, _ := os.ReadDir(cacheDir)
			assert.Empty(t, entries, "failed fetches must not be cached")
		})
	}
}

func TestFetcher_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	f := NewFetcher(config.Banner{URL: server.URL, Timeout: 50 * time.Millisecond}, nil)
	_, ok := f.Banner(context.Background())
	assert.False(t, ok)
}

func TestFetcher_UnreachableHost(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	f := NewFetcher(config.Banner{URL: url, Timeout: time.Second}, nil)
	_, ok := f.Banner(context.Background())
	assert.False(t, ok)
}
