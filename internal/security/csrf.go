// Package security holds the HTTP hardening middleware: CSRF protection for
// the HTML forms and the response security headers.
package security

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
)

// CSRFTokenHeader is the header HTMX sends the token in.
const CSRFTokenHeader = "X-CSRF-Token"

// CSRFFieldName is the form field gorilla/csrf reads the token from.
const CSRFFieldName = "gorilla.csrf.Token"

const csrfContextKey = "csrf_token"

// CSRFMiddleware creates a Gin middleware for CSRF protection.
// API requests that need a CORS preflight are exempt: JSON bodies and
// non-simple methods under /api/. This server never grants a preflight.
func CSRFMiddleware(secret []byte, secure bool) gin.HandlerFunc {
	protect := csrf.Protect(
		secret,
		csrf.Secure(secure),
		csrf.HttpOnly(true),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.Path("/"),
		csrf.RequestHeader(CSRFTokenHeader),
		csrf.FieldName(CSRFFieldName),
		csrf.ErrorHandler(http.HandlerFunc(csrfErrorHandler)),
	)

	return func(c *gin.Context) {
		if isJSONAPIRequest(c) {
			c.Next()
			return
		}

		req := c.Request
		if !secure {
			// Without TLS the Referer is http://, which the HTTPS origin check rejects.
			req = csrf.PlaintextHTTPRequest(req)
		}

		passed := false
		handler := protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
			c.Set(csrfContextKey, csrf.Token(r))
			c.Request = r
			c.Next()
		}))
		handler.ServeHTTP(c.Writer, req)

		// The error handler already wrote the response.
		if !passed {
			c.Abort()
		}
	}
}

func csrfErrorHandler(w http.ResponseWriter, r *http.Request) {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"CSRF token invalid or missing"}`))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Form expired</title></head>
<body style="font-family: system-ui; max-width: 400px; margin: 100px auto; text-align: center;">
<h1>Form expired</h1>
<p>The form submission could not be verified.</p>
<p><a href="/">Back to the library</a></p>
</body>
</html>`))
}

func isJSONAPIRequest(c *gin.Context) bool {
	if !strings.HasPrefix(c.Request.URL.Path, "/api/") {
		return false
	}
	switch c.Request.Method {
	case http.MethodDelete, http.MethodPut, http.MethodPatch:
		return true
	}
	return strings.HasPrefix(c.ContentType(), "application/json")
}

// GetCSRFToken retrieves the CSRF token from the Gin context.
func GetCSRFToken(c *gin.Context) string {
	return c.GetString(csrfContextKey)
}
