// Package demo implements demo mode: a read-only showcase of the library,
// seeded with public domain classics when the collection is empty.
package demo

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// BlockedMessage is shown when a change is attempted in demo mode.
const BlockedMessage = "This action is disabled in demo mode"

// ContextKeyDemoMode holds the demo flag for template rendering.
const ContextKeyDemoMode = "demo_mode"

// Middleware blocks write operations in demo mode.
// Read-only methods are always allowed.
type Middleware struct {
	enabled bool
}

// NewMiddleware creates a demo mode middleware.
func NewMiddleware(enabled bool) *Middleware {
	return &Middleware{enabled: enabled}
}

// IsEnabled returns whether demo mode is active.
func (m *Middleware) IsEnabled() bool {
	return m != nil && m.enabled
}

// Handler returns a Gin middleware that blocks write operations and marks
// the request context for templates.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyDemoMode, m.IsEnabled())

		if !m.IsEnabled() || isReadOnly(c.Request.Method) {
			c.Next()
			return
		}

		m.respondBlocked(c)
	}
}

func isReadOnly(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}

// respondBlocked sends a 403 shaped for the caller: HTMX, JSON or plain.
func (m *Middleware) respondBlocked(c *gin.Context) {
	defer c.Abort()

	if c.GetHeader("HX-Request") == "true" {
		c.Header("HX-Reswap", "none")
		c.String(http.StatusForbidden, BlockedMessage)
		return
	}

	if strings.HasPrefix(c.Request.URL.Path, "/api/") ||
		strings.Contains(c.GetHeader("Accept"), "application/json") {
		c.JSON(http.StatusForbidden, gin.H{
			"error": BlockedMessage,
			"code":  "demo_mode",
		})
		return
	}

	c.String(http.StatusForbidden, BlockedMessage)
}

// Enabled reports whether the request passed through an enabled demo
// middleware.
func Enabled(c *gin.Context) bool {
	return c.GetBool(ContextKeyDemoMode)
}
