package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/paylink/terminal/internal/auth/domain"
	authUseCase "github.com/paylink/terminal/internal/auth/usecase"
	"github.com/paylink/terminal/internal/views"
)

// SessionMiddleware guards operator-only routes with the session cookie.
//
// Requests without a valid session get the login view instead of the
// protected page: 200 for GET so that opening the terminal shows the login
// form, 401 for every other method.
func SessionMiddleware(
	sessionUseCase authUseCase.SessionUseCase,
	branding views.Branding,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, _ := c.Cookie(authDomain.SessionCookieName)

		if err := sessionUseCase.Authenticate(c.Request.Context(), cookie); err != nil {
			if cookie != "" {
				logger.Debug("session rejected",
					slog.String("path", c.Request.URL.Path),
					slog.String("error", err.Error()))
				clearSessionCookie(c)
			}

			status := http.StatusUnauthorized
			if c.Request.Method == http.MethodGet {
				status = http.StatusOK
			}
			c.HTML(status, views.Login, views.LoginPage{Branding: branding})
			c.Abort()
			return
		}

		c.Next()
	}
}
