package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/scheduler"
)

type fakeChecker struct{ err error }

func (f fakeChecker) Check() error { return f.err }

func getHealth(t *testing.T, cfg RouterConfig) (int, HealthResponse) {
	t.Helper()
	cfg.Version = "1.0.0"
	w := newClient(newTestRouter(t, cfg)).get("/health")

	var response HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return w.Code, response
}

func TestHealthController_Status(t *testing.T) {
	t.Run("returns healthy when storage is usable", func(t *testing.T) {
		lib := newTestLibrary(t, &memoryAdapter{books: scenarioBooks})
		code, response := getHealth(t, RouterConfig{Library: lib, StorageChecker: fakeChecker{}})

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "1.0.0", response.Version)
		assert.Equal(t, 3, response.Books)
		assert.Equal(t, "ok", response.Checks["storage"])
		assert.Equal(t, "disabled", response.Checks["backup"])
		assert.NotEmpty(t, response.Time)
	})

	t.Run("storage not configured", func(t *testing.T) {
		code, response := getHealth(t, RouterConfig{})

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "not configured", response.Checks["storage"])
	})

	t.Run("returns unhealthy when storage check fails", func(t *testing.T) {
		code, response := getHealth(t, RouterConfig{StorageChecker: fakeChecker{err: errors.New("read-only file system")}})

		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "unhealthy", response.Status)
		assert.Contains(t, response.Checks["storage"], "read-only file system")
	})

	t.Run("load error degrades health", func(t *testing.T) {
		lib := newTestLibrary(t, &memoryAdapter{loadErr: errDiskFull})
		code, response := getHealth(t, RouterConfig{Library: lib, StorageChecker: fakeChecker{}})

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "degraded", response.Status)
		assert.Contains(t, response.Checks["library"], "disk full")
	})

	t.Run("reports the next backup", func(t *testing.T) {
		backups := scheduler.NewBackupScheduler(newTestLibrary(t, &memoryAdapter{}),
			config.Backup{Enabled: true, Schedule: "0 3 * * *", Dir: t.TempDir()}, nil)
		require.NoError(t, backups.Start(context.Background()))
		defer backups.Stop()

		_, response := getHealth(t, RouterConfig{Backups: backups})
		assert.Contains(t, response.Checks["backup"], "next run ")
	})
}

func TestHealthController_Ping(t *testing.T) {
	w := newClient(newTestRouter(t, RouterConfig{})).get("/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}
