package security

import (
	"github.com/gin-gonic/gin"
)

// Script and style CDNs used by the templates.
const (
	htmxOrigin    = "https://unpkg.com"
	chartJSOrigin = "https://cdn.jsdelivr.net"
)

// HeadersMiddleware adds security headers to all responses.
func HeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		// 'unsafe-eval' is needed for HTMX hx-on attributes
		scriptSrc := "'self' 'unsafe-inline' 'unsafe-eval' " + htmxOrigin + " " + chartJSOrigin

		formAction := "'self'"
		if host := c.Request.Host; host != "" {
			formAction = "'self' https://" + host
		}

		c.Header("Content-Security-Policy",
			"default-src 'self'; "+
				"script-src "+scriptSrc+"; "+
				"style-src 'self' 'unsafe-inline'; "+
				"img-src 'self' data: https:; "+
				"font-src 'self'; "+
				"connect-src 'self'; "+
				"frame-ancestors 'none'; "+
				"form-action "+formAction)

		c.Header("Permissions-Policy",
			"camera=(), geolocation=(), microphone=(), payment=(), usb=()")

		c.Next()
	}
}
