package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/paylink/terminal/internal/auth/http/dto"
	authUseCase "github.com/paylink/terminal/internal/auth/usecase"
	apperrors "github.com/paylink/terminal/internal/errors"
	"github.com/paylink/terminal/internal/httputil"
	"github.com/paylink/terminal/internal/views"
)

// SessionHandler handles operator login and logout.
type SessionHandler struct {
	sessionUseCase authUseCase.SessionUseCase
	branding       views.Branding
	logger         *slog.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(
	sessionUseCase authUseCase.SessionUseCase,
	branding views.Branding,
	logger *slog.Logger,
) *SessionHandler {
	return &SessionHandler{
		sessionUseCase: sessionUseCase,
		branding:       branding,
		logger:         logger,
	}
}

// LoginHandler checks the submitted password and sets the session cookie.
// POST /login
//
// Responses:
//   - 302 Found to "/" with the session cookie on success
//   - 401 Unauthorized with the login view on a wrong or missing password
func (h *SessionHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderLogin(c, http.StatusBadRequest, "Invalid request")
		return
	}

	if err := req.Validate(); err != nil {
		h.renderLogin(c, http.StatusUnauthorized, "Invalid password")
		return
	}

	session, err := h.sessionUseCase.Login(c.Request.Context(), req.Password)
	if err != nil {
		status := httputil.StatusCode(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("login failed", slog.Any("error", err))
		} else {
			h.logger.Info("login rejected", slog.String("client_ip", c.ClientIP()))
		}
		if apperrors.Is(err, apperrors.ErrUnauthorized) {
			h.renderLogin(c, http.StatusUnauthorized, "Invalid password")
			return
		}
		h.renderLogin(c, status, "Login is unavailable")
		return
	}

	setSessionCookie(c, session.Token, session.MaxAge())
	c.Redirect(http.StatusFound, "/")
}

// LogoutHandler clears the session cookie.
// GET /logout
func (h *SessionHandler) LogoutHandler(c *gin.Context) {
	clearSessionCookie(c)
	c.Redirect(http.StatusFound, "/")
}

func (h *SessionHandler) renderLogin(c *gin.Context, status int, message string) {
	c.HTML(status, views.Login, views.LoginPage{Branding: h.branding, Error: message})
}
