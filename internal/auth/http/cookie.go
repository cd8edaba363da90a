// Package http provides the operator login handlers and session middleware.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/paylink/terminal/internal/auth/domain"
)

// setSessionCookie writes the session cookie as HttpOnly, Secure and SameSite=Strict.
func setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(authDomain.SessionCookieName, value, maxAge, "/", "", true, true)
}

func clearSessionCookie(c *gin.Context) {
	setSessionCookie(c, "", -1)
}
