package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/library/internal/logging"
	"github.com/mrlokans/library/internal/validation"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context (validation errors, etc.)
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondValidationError sends a 400 with the per-field messages.
func respondValidationError(c *gin.Context, err *validation.Error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "validation failed",
		Code:    "validation_failed",
		Details: err.Fields,
	})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, logger *zap.Logger, err error, context string) {
	logger.Error("Internal error",
		zap.String("context", context),
		zap.String("request_id", requestID(c)),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondError sends an error response with the given status code.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

// --- Success Response Helpers ---

// respondSuccess sends a 200 OK response with a message.
func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// --- Parameter Parsing ---

// parseIndexParam extracts a collection index from URL parameters.
// Negative values parse; range checks are the store's job.
// Returns the parsed index or responds with a 400 error and returns 0, false.
func parseIndexParam(c *gin.Context, paramName string) (int, bool) {
	index, err := strconv.Atoi(c.Param(paramName))
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return index, true
}

// requestID returns the ID assigned by RequestIDMiddleware.
func requestID(c *gin.Context) string {
	return c.GetString(logging.RequestIDKey)
}

// --- HTMX Support ---

// isHTMXRequest returns true if the request is an HTMX request.
func isHTMXRequest(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}
