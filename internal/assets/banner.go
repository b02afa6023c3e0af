// Package assets fetches and caches the decorative banner animation shown on
// the library pages.
package assets

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mrlokans/library/internal/config"
)

// maxBannerSize caps the downloaded document.
const maxBannerSize = 5 << 20

// ErrDisabled is returned when no banner URL is configured.
var ErrDisabled = errors.New("banner disabled")

// Fetcher downloads the banner once and serves it from memory and a local
// cache. Every failure degrades to "unavailable".
type Fetcher struct {
	url        string
	cacheDir   string
	httpClient *http.Client
	logger     *zap.Logger

	mu     sync.Mutex
	cached json.RawMessage
}

// NewFetcher creates a fetcher. A nil logger disables logging.
func NewFetcher(cfg config.Banner, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Fetcher{
		url:      cfg.URL,
		cacheDir: cfg.CacheDir,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Enabled reports whether a banner URL is configured.
func (f *Fetcher) Enabled() bool {
	return f.url != ""
}

// Banner returns the banner document, or false when it is unavailable.
func (f *Fetcher) Banner(ctx context.Context) (json.RawMessage, bool) {
	data, err := f.Fetch(ctx)
	if err != nil {
		if !errors.Is(err, ErrDisabled) {
			f.logger.Warn("Banner unavailable", zap.String("url", f.url), zap.Error(err))
		}
		return nil, false
	}
	return data, true
}

// Fetch returns the cached banner or downloads it.
func (f *Fetcher) Fetch(ctx context.Context) (json.RawMessage, error) {
	if !f.Enabled() {
		return nil, ErrDisabled
	}

	if data := f.memory(); data != nil {
		return data, nil
	}

	cachePath := f.cachePath()
	if cachePath != "" {
		if data, err := os.ReadFile(cachePath); err == nil && json.Valid(data) {
			return f.remember(data), nil
		}
	}

	// Not under f.mu: a slow remote must not queue every request behind it.
	data, err := f.download(ctx)
	if err != nil {
		return nil, err
	}
	data = f.remember(data)

	if cachePath != "" {
		if err := writeAtomic(f.cacheDir, cachePath, data); err != nil {
			f.logger.Warn("Failed to cache banner", zap.String("path", cachePath), zap.Error(err))
		}
	}
	return data, nil
}

func (f *Fetcher) memory() json.RawMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cached
}

// remember keeps the first document stored and returns it.
func (f *Fetcher) remember(data json.RawMessage) json.RawMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cached == nil {
		f.cached = data
	}
	return f.cached
}

func (f *Fetcher) cachePath() string {
	if f.cacheDir == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(f.url))
	return filepath.Join(f.cacheDir, fmt.Sprintf("banner_%x.json", hash[:8]))
}

func (f *Fetcher) download(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Library/1.0")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch banner: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBannerSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxBannerSize {
		return nil, fmt.Errorf("banner exceeds %d bytes", maxBannerSize)
	}
	if !json.Valid(data) {
		return nil, errors.New("banner is not valid JSON")
	}
	return data, nil
}

func writeAtomic(dir, path string, data []byte) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, "banner_tmp_")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()
	defer func() {
		tmpFile.Close()
		os.Remove(tmpPath) // Clean up if we didn't rename
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return err
	}
	tmpFile.Close()

	return os.Rename(tmpPath, path)
}
