package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/library/internal/audit"
	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/library"
	"github.com/mrlokans/library/internal/services"
	"github.com/mrlokans/library/internal/validation"
)

// BooksController serves the JSON API.
type BooksController struct {
	library *services.LibraryService
	logger  *zap.Logger
}

func NewBooksController(lib *services.LibraryService, logger *zap.Logger) *BooksController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BooksController{
		library: lib,
		logger:  logger,
	}
}

func (controller *BooksController) GetAllBooks(c *gin.Context) {
	books := controller.library.All()
	c.IndentedJSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}

func (controller *BooksController) CreateBook(c *gin.Context) {
	var input entities.BookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	book, err := controller.library.AddBook(input, apiOrigin(c))
	if err != nil {
		var verr *validation.Error
		switch {
		case errors.As(err, &verr):
			respondValidationError(c, verr)
		case errors.Is(err, library.ErrPersist):
			controller.logger.Error("Book added but library not saved",
				zap.String("request_id", requestID(c)),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "book added but the library could not be saved",
				Code:    "persist_failed",
				Details: book,
			})
		default:
			respondInternalError(c, controller.logger, err, "create book")
		}
		return
	}

	respondCreated(c, book)
}

func (controller *BooksController) DeleteBook(c *gin.Context) {
	index, ok := parseIndexParam(c, "index")
	if !ok {
		return
	}

	book, removed, err := controller.library.RemoveBook(index, apiOrigin(c))
	if !removed {
		respondNotFound(c, "book")
		return
	}
	if err != nil {
		controller.logger.Error("Book removed but library not saved",
			zap.String("request_id", requestID(c)),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "book removed but the library could not be saved",
			Code:    "persist_failed",
			Details: book,
		})
		return
	}

	respondSuccess(c, "book removed")
}

func (controller *BooksController) SearchBooks(c *gin.Context) {
	field := c.DefaultQuery("field", string(library.SearchByTitle))
	books := controller.library.Search(c.Query("q"), field)
	c.IndentedJSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}

func (controller *BooksController) GetStats(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, controller.library.Statistics())
}

func apiOrigin(c *gin.Context) services.Origin {
	return services.Origin{Source: audit.OriginAPI, RequestID: requestID(c)}
}
