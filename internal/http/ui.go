package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/library/internal/assets"
	"github.com/mrlokans/library/internal/audit"
	"github.com/mrlokans/library/internal/demo"
	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/exporters"
	"github.com/mrlokans/library/internal/library"
	"github.com/mrlokans/library/internal/security"
	"github.com/mrlokans/library/internal/services"
	"github.com/mrlokans/library/internal/sessions"
	"github.com/mrlokans/library/internal/validation"
)

// DefaultFormYear pre-fills the publication year of the add form.
const DefaultFormYear = 2023

const (
	msgBookAdded    = "Book added successfully!"
	msgEmptyLibrary = "Your library is empty. Add some books!"
	msgNoResults    = "No books found matching your search."
)

type UIController struct {
	library  *services.LibraryService
	sessions *sessions.Manager
	banner   *assets.Fetcher
	logger   *zap.Logger
	version  string
	now      func() time.Time
}

func NewUIController(lib *services.LibraryService, sm *sessions.Manager, banner *assets.Fetcher, logger *zap.Logger, version string) *UIController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UIController{
		library:  lib,
		sessions: sm,
		banner:   banner,
		logger:   logger,
		version:  version,
		now:      time.Now,
	}
}

// bookItem pairs a record with its current collection index.
type bookItem struct {
	Index int
	Book  entities.Book
}

// bookList is the data of the "book-list" partial.
type bookList struct {
	Items        []bookItem
	Empty        string
	Removable    bool
	CSRFToken    string
	Message      string
	MessageLevel string
}

// chartSeries is one labelled Chart.js dataset.
type chartSeries struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

// chartData feeds the statistics page charts.
type chartData struct {
	Read    int         `json:"read"`
	Unread  int         `json:"unread"`
	Genres  chartSeries `json:"genres"`
	Decades chartSeries `json:"decades"`
}

// page builds the data shared by every full page render.
func (controller *UIController) page(c *gin.Context, title, active string) gin.H {
	var flash *sessions.Flash
	if controller.sessions != nil {
		flash = controller.sessions.PopFlash(c.Request.Context())
	}
	return gin.H{
		"Title":         title,
		"Active":        active,
		"CSRFToken":     security.GetCSRFToken(c),
		"Flash":         flash,
		"LoadError":     controller.library.LoadError(),
		"BannerEnabled": controller.banner != nil && controller.banner.Enabled(),
		"Version":       controller.version,
		"DemoMode":      demo.Enabled(c),
	}
}

func (controller *UIController) flash(c *gin.Context, level, message string) {
	if controller.sessions == nil {
		return
	}
	controller.sessions.SetFlash(c.Request.Context(), level, message)
}

func (controller *UIController) collectionList(c *gin.Context) bookList {
	books := controller.library.All()
	items := make([]bookItem, len(books))
	for i, book := range books {
		items[i] = bookItem{Index: i, Book: book}
	}
	return bookList{
		Items:     items,
		Empty:     msgEmptyLibrary,
		Removable: !demo.Enabled(c),
		CSRFToken: security.GetCSRFToken(c),
	}
}

func (controller *UIController) BooksPage(c *gin.Context) {
	data := controller.page(c, "View Library", "books")
	data["List"] = controller.collectionList(c)
	c.HTML(http.StatusOK, "books", data)
}

func (controller *UIController) AddPage(c *gin.Context) {
	controller.renderAddForm(c, http.StatusOK, entities.BookInput{
		PublicationYear: DefaultFormYear,
		Genre:           entities.GenreFiction,
	}, nil)
}

func (controller *UIController) renderAddForm(c *gin.Context, status int, input entities.BookInput, fieldErrors map[string]string) {
	data := controller.page(c, "Add Book", "add")
	data["Input"] = input
	data["Errors"] = fieldErrors
	data["Genres"] = genreOptions(input.Genre)
	data["MinYear"] = entities.MinPublicationYear
	data["MaxYear"] = controller.library.Validator().MaxYear()
	c.HTML(status, "add", data)
}

// genreOptions keeps a free-text genre selectable after a failed submit.
func genreOptions(current string) []string {
	for _, g := range entities.Genres {
		if g == current {
			return entities.Genres
		}
	}
	if current == "" {
		return entities.Genres
	}
	return append(append([]string(nil), entities.Genres...), current)
}

func (controller *UIController) AddBook(c *gin.Context) {
	var input entities.BookInput
	if err := c.ShouldBind(&input); err != nil {
		controller.renderAddForm(c, http.StatusBadRequest, input, map[string]string{
			"form": "could not be read: " + err.Error(),
		})
		return
	}

	_, err := controller.library.AddBook(input, uiOrigin(c))
	if err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			controller.renderAddForm(c, http.StatusBadRequest, input, verr.Fields)
			return
		}
		controller.logger.Error("Failed to save library after add", zap.Error(err))
		controller.flash(c, sessions.FlashError, "Book added, but the library could not be saved: "+err.Error())
		c.Redirect(http.StatusSeeOther, "/add")
		return
	}

	controller.flash(c, sessions.FlashSuccess, msgBookAdded)
	c.Redirect(http.StatusSeeOther, "/add")
}

func (controller *UIController) RemoveBook(c *gin.Context) {
	index, ok := parseIndexParam(c, "index")
	if !ok {
		return
	}

	book, removed, err := controller.library.RemoveBook(index, uiOrigin(c))

	level, message := sessions.FlashSuccess, fmt.Sprintf("Removed %q.", book.Title)
	switch {
	case !removed:
		level, message = sessions.FlashWarning, "That book is no longer in the library. The list has been refreshed."
	case err != nil:
		controller.logger.Error("Failed to save library after remove", zap.Error(err))
		level, message = sessions.FlashError, "Book removed, but the library could not be saved: "+err.Error()
	}

	if isHTMXRequest(c) {
		list := controller.collectionList(c)
		list.Message = message
		list.MessageLevel = level
		c.HTML(http.StatusOK, "book-list", list)
		return
	}

	controller.flash(c, level, message)
	c.Redirect(http.StatusSeeOther, "/")
}

func (controller *UIController) SearchPage(c *gin.Context) {
	ctx := c.Request.Context()
	_, searched := c.GetQuery("q")

	field, term := string(library.SearchByTitle), ""
	if controller.sessions != nil {
		if lastField, lastTerm := controller.sessions.LastSearch(ctx); lastField != "" {
			field, term = lastField, lastTerm
		}
	}
	if searched {
		field = c.DefaultQuery("field", string(library.SearchByTitle))
		term = c.Query("q")
		if controller.sessions != nil {
			controller.sessions.RememberSearch(ctx, field, term)
		}
	}

	list := bookList{Empty: msgNoResults, CSRFToken: security.GetCSRFToken(c)}
	if searched {
		for _, book := range controller.library.Search(term, field) {
			// Indices of a filtered view do not address the collection.
			list.Items = append(list.Items, bookItem{Index: -1, Book: book})
		}
	}

	if isHTMXRequest(c) && searched {
		c.HTML(http.StatusOK, "book-list", list)
		return
	}

	data := controller.page(c, "Search Books", "search")
	data["Fields"] = library.SearchFields
	data["Field"] = library.SearchField(field)
	data["Term"] = term
	data["Searched"] = searched
	data["List"] = list
	c.HTML(http.StatusOK, "search", data)
}

func (controller *UIController) StatsPage(c *gin.Context) {
	stats := controller.library.Statistics()

	data := controller.page(c, "Statistics", "stats")
	data["Stats"] = stats
	data["Charts"] = buildCharts(stats)
	c.HTML(http.StatusOK, "stats", data)
}

func buildCharts(stats entities.Statistics) chartData {
	charts := chartData{
		Read:    stats.ReadBooks,
		Unread:  stats.UnreadBooks,
		Genres:  chartSeries{Labels: make([]string, 0, len(stats.Genres)), Values: make([]int, 0, len(stats.Genres))},
		Decades: chartSeries{Labels: make([]string, 0, len(stats.Decades)), Values: make([]int, 0, len(stats.Decades))},
	}
	for _, g := range stats.Genres {
		charts.Genres.Labels = append(charts.Genres.Labels, g.Key)
		charts.Genres.Values = append(charts.Genres.Values, g.Count)
	}
	for _, d := range stats.Decades {
		charts.Decades.Labels = append(charts.Decades.Labels, fmt.Sprintf("%ds", d.Decade))
		charts.Decades.Values = append(charts.Decades.Values, d.Count)
	}
	return charts
}

func (controller *UIController) ExportMarkdown(c *gin.Context) {
	books := controller.library.All()
	markdown := exporters.GenerateMarkdown(books, library.ComputeStatistics(books), controller.now())

	c.Header("Content-Disposition", `attachment; filename="library.md"`)
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(markdown))
}

func uiOrigin(c *gin.Context) services.Origin {
	return services.Origin{Source: audit.OriginUI, RequestID: requestID(c)}
}
