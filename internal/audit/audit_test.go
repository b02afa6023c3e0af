package audit

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mrlokans/library/internal/entities"
)

func TestAuditor(t *testing.T) {
	tempDir := filepath.Join(t.TempDir(), "audit")
	auditor := NewAuditor(tempDir)

	t.Run("SaveJSON creates audit directory and saves file", func(t *testing.T) {
		filename, err := auditor.SaveJSON("", map[string]any{"number": 42})
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(filename, ".json"))

		content, err := os.ReadFile(filepath.Join(tempDir, filename))
		require.NoError(t, err)
		var saved map[string]any
		require.NoError(t, json.Unmarshal(content, &saved))
		assert.Equal(t, float64(42), saved["number"])
	})

	t.Run("SaveJSON uses the given id", func(t *testing.T) {
		filename, err := auditor.SaveJSON("event-1", map[string]string{"k": "v"})
		require.NoError(t, err)
		assert.Equal(t, "event-1.json", filename)
	})

	t.Run("SaveJSON generates unique filenames", func(t *testing.T) {
		f1, err := auditor.SaveJSON("", "a")
		require.NoError(t, err)
		f2, err := auditor.SaveJSON("", "b")
		require.NoError(t, err)
		assert.NotEqual(t, f1, f2)
	})
}

func readEvents(t *testing.T, dir string) []entities.AuditEvent {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	events := make([]entities.AuditEvent, 0, len(entries))
	for _, entry := range entries {
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		require.NoError(t, err)
		var event entities.AuditEvent
		require.NoError(t, json.Unmarshal(data, &event))
		assert.Equal(t, event.ID+".json", entry.Name())
		events = append(events, event)
	}
	return events
}

func TestService(t *testing.T) {
	book := entities.Book{Title: "Dune", Author: "Frank Herbert", PublicationYear: 1965, Genre: "Sci-Fi", ReadStatus: true, AddedDate: "2024-06-01 10:00:00"}

	t.Run("records a successful add", func(t *testing.T) {
		dir := t.TempDir()
		svc := NewService(dir, nil)
		svc.now = func() time.Time { return time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC) }

		svc.LogAdd(Entry{Origin: OriginAPI, RequestID: "req-1", Index: 0, Book: book})

		events := readEvents(t, dir)
		require.Len(t, events, 1)
		assert.Equal(t, entities.AuditActionAdd, events[0].Action)
		assert.Equal(t, entities.AuditStatusSuccess, events[0].Status)
		assert.Equal(t, OriginAPI, events[0].Origin)
		assert.Equal(t, "req-1", events[0].RequestID)
		assert.Equal(t, book, events[0].Book)
		assert.True(t, events[0].CreatedAt.Equal(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)))
	})

	t.Run("records a failed remove", func(t *testing.T) {
		dir := t.TempDir()
		svc := NewService(dir, nil)

		svc.LogRemove(Entry{Origin: OriginUI, Index: 2, Book: book, Err: errors.New(strings.Repeat("x", 600))})

		events := readEvents(t, dir)
		require.Len(t, events, 1)
		assert.Equal(t, entities.AuditActionRemove, events[0].Action)
		assert.Equal(t, entities.AuditStatusFailed, events[0].Status)
		assert.Equal(t, 2, events[0].Index)
		assert.Len(t, events[0].ErrorMsg, maxErrorLength)
		assert.True(t, strings.HasSuffix(events[0].ErrorMsg, "..."))
	})

	t.Run("disabled service is a no-op", func(t *testing.T) {
		svc := NewService("", nil)
		assert.Nil(t, svc)
		assert.NotPanics(t, func() { svc.LogAdd(Entry{Book: book}) })
	})

	t.Run("write failures are logged, not returned", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

		core, logs := observer.New(zapcore.WarnLevel)
		svc := NewService(filepath.Join(blocker, "audit"), zap.New(core))

		svc.LogAdd(Entry{Origin: OriginCLI, Book: book})
		assert.Equal(t, 1, logs.FilterMessage("Failed to write audit event").Len())
	})
}
