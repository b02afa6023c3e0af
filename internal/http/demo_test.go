package http

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/library/internal/demo"
)

func TestDemoMode(t *testing.T) {
	lib := newTestLibrary(t, &memoryAdapter{books: scenarioBooks})
	router := newTestRouter(t, RouterConfig{Library: lib, DemoMode: true})
	cl := newClient(router)

	t.Run("pages render with a notice and no remove buttons", func(t *testing.T) {
		w := cl.get("/")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Demo mode")
		assert.Contains(t, w.Body.String(), "Dune")
		assert.NotContains(t, w.Body.String(), "/books/0/remove")
	})

	t.Run("form add is rejected", func(t *testing.T) {
		form := url.Values{"title": {"New"}, "author": {"A"}, "publication_year": {"2000"}, "genre": {"Fiction"}}
		w := cl.postForm("/add", form)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, 3, lib.Len())
	})

	t.Run("api delete is rejected", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodDelete, "/api/books/0", nil)
		w := cl.do(req)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.True(t, strings.Contains(w.Body.String(), demo.BlockedMessage))
		assert.Equal(t, 3, lib.Len())
	})

	t.Run("api reads still work", func(t *testing.T) {
		w := cl.get("/api/books/stats")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
