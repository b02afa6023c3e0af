package http

import (
	"html"
	"net/http"
	"net/url"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var csrfMeta = regexp.MustCompile(`<meta name="csrf-token" content="([^"]+)">`)

func TestRouter_FullStack(t *testing.T) {
	lib := newTestLibrary(t, &memoryAdapter{})
	router := newTestRouter(t, RouterConfig{
		Library:    lib,
		Sessions:   newTestSessions(t),
		CSRFSecret: []byte("0123456789abcdef0123456789abcdef"),
		Version:    "test",
	})
	cl := newClient(router)

	w := cl.get("/add")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "default-src 'self'")
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	match := csrfMeta.FindStringSubmatch(w.Body.String())
	require.Len(t, match, 2)
	token := html.UnescapeString(match[1])

	form := url.Values{
		"gorilla.csrf.Token": {token},
		"title":              {"Emma"},
		"author":             {"Jane Austen"},
		"publication_year":   {"1815"},
		"genre":              {"Fiction"},
		"read_status":        {"false"},
	}

	t.Run("form post without token is rejected", func(t *testing.T) {
		noToken := url.Values{"title": {"Emma"}}
		w := cl.postForm("/add", noToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, 0, lib.Len())
	})

	t.Run("form post with token succeeds", func(t *testing.T) {
		w := cl.postForm("/add", form)
		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, 1, lib.Len())
		assert.Contains(t, cl.get("/add").Body.String(), "Book added successfully!")
	})

	t.Run("htmx remove with header token", func(t *testing.T) {
		w := cl.postForm("/books/0/remove", url.Values{}, "HX-Request", "true", "X-CSRF-Token", token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0, lib.Len())
	})

	t.Run("json api needs no token", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/books", `{"title":"Dune","author":"Herbert","publication_year":1965,"genre":"Sci-Fi","read_status":true}`)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, lib.Len())
	})

	t.Run("json api delete needs no token", func(t *testing.T) {
		before := lib.Len()
		require.Greater(t, before, 0)

		req, _ := http.NewRequest(http.MethodDelete, "/api/books/0", nil)
		req.Header.Set("Accept", "application/json")
		w := cl.do(req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "book removed")
		assert.Equal(t, before-1, lib.Len())

		req, _ = http.NewRequest(http.MethodDelete, "/api/books/7", nil)
		assert.Equal(t, http.StatusNotFound, cl.do(req).Code)

		req, _ = http.NewRequest(http.MethodDelete, "/api/books/first", nil)
		assert.Equal(t, http.StatusBadRequest, cl.do(req).Code)
	})

	t.Run("static assets are embedded", func(t *testing.T) {
		w := cl.get("/static/style.css")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), ".book-card")
	})
}
