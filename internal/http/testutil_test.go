package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/library"
	"github.com/mrlokans/library/internal/services"
	"github.com/mrlokans/library/internal/sessions"
	"github.com/mrlokans/library/internal/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.Local)

// memoryAdapter is an in-memory storage.Adapter.
type memoryAdapter struct {
	books   []entities.Book
	loadErr error
	saveErr error
}

func (m *memoryAdapter) Load() ([]entities.Book, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.books, nil
}

func (m *memoryAdapter) Save(books []entities.Book) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.books = append([]entities.Book(nil), books...)
	return nil
}

var scenarioBooks = []entities.Book{
	{Title: "Dune", Author: "Herbert", PublicationYear: 1965, Genre: "Sci-Fi", ReadStatus: true, AddedDate: "2024-05-01 09:00:00"},
	{Title: "Emma", Author: "Austen", PublicationYear: 1815, Genre: "Fiction", ReadStatus: false, AddedDate: "2024-05-02 09:00:00"},
	{Title: "Foundation", Author: "Asimov", PublicationYear: 1951, Genre: "Sci-Fi", ReadStatus: true, AddedDate: "2024-05-03 09:00:00"},
}

func newTestLibrary(t *testing.T, adapter *memoryAdapter) *services.LibraryService {
	t.Helper()
	now := func() time.Time { return testNow }
	store := library.NewStore(adapter, library.WithClock(now))
	return services.NewLibraryService(store, validation.NewWithClock(now), nil)
}

func newTestRouter(t *testing.T, cfg RouterConfig) *gin.Engine {
	t.Helper()
	if cfg.Library == nil {
		cfg.Library = newTestLibrary(t, &memoryAdapter{})
	}
	router, err := NewRouter(cfg)
	require.NoError(t, err)
	return router
}

func newTestSessions(t *testing.T) *sessions.Manager {
	t.Helper()
	sm, err := sessions.NewManager(config.Sessions{Lifetime: time.Hour})
	require.NoError(t, err)
	return sm
}

// client replays cookies between requests like a browser.
type client struct {
	router  *gin.Engine
	cookies map[string]*http.Cookie
}

func newClient(router *gin.Engine) *client {
	return &client{router: router, cookies: map[string]*http.Cookie{}}
}

func (cl *client) do(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range cl.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	cl.router.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		cl.cookies[c.Name] = c
	}
	return w
}

func (cl *client) get(path string, headers ...string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", path, nil)
	setHeaders(req, headers)
	return cl.do(req)
}

func (cl *client) postForm(path string, form url.Values, headers ...string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	setHeaders(req, headers)
	return cl.do(req)
}

func setHeaders(req *http.Request, kv []string) {
	for i := 0; i+1 < len(kv); i += 2 {
		req.Header.Set(kv[i], kv[i+1])
	}
}

var errDiskFull = errors.New("disk full")
