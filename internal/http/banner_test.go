package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/library/internal/assets"
	"github.com/mrlokans/library/internal/config"
)

func TestBannerController_Banner(t *testing.T) {
	t.Run("no fetcher", func(t *testing.T) {
		w := newClient(newTestRouter(t, RouterConfig{})).get("/api/banner")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"banner unavailable"}`, w.Body.String())
	})

	t.Run("disabled fetcher", func(t *testing.T) {
		fetcher := assets.NewFetcher(config.Banner{}, nil)
		w := newClient(newTestRouter(t, RouterConfig{Banner: fetcher})).get("/api/banner")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("serves the remote document", func(t *testing.T) {
		remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"v":"5.5.7","layers":[]}`))
		}))
		defer remote.Close()

		fetcher := assets.NewFetcher(config.Banner{URL: remote.URL, CacheDir: t.TempDir()}, nil)
		cl := newClient(newTestRouter(t, RouterConfig{Banner: fetcher}))

		w := cl.get("/api/banner")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"v":"5.5.7","layers":[]}`, w.Body.String())
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		t.Run("layout loads the banner player", func(t *testing.T) {
			body := cl.get("/").Body.String()
			assert.Contains(t, body, `id="banner"`)
			assert.Contains(t, body, "lottie")
		})
	})

	t.Run("remote failure", func(t *testing.T) {
		remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer remote.Close()

		fetcher := assets.NewFetcher(config.Banner{URL: remote.URL}, nil)
		w := newClient(newTestRouter(t, RouterConfig{Banner: fetcher})).get("/api/banner")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
