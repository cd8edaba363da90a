// Package http provides the HTTP servers of the terminal: the public API and
// screens, and the separate Prometheus metrics listener.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	authHTTP "github.com/paylink/terminal/internal/auth/http"
	authUseCase "github.com/paylink/terminal/internal/auth/usecase"
	"github.com/paylink/terminal/internal/config"
	"github.com/paylink/terminal/internal/metrics"
	terminalHTTP "github.com/paylink/terminal/internal/terminal/http"
	"github.com/paylink/terminal/internal/views"
)

// Server is the public HTTP server.
type Server struct {
	server       *http.Server
	router       *gin.Engine
	logger       *slog.Logger
	shuttingDown atomic.Bool
}

// NewServer creates a new HTTP server. SetupRouter must be called before Start.
func NewServer(
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		logger: logger,
		server: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:       15 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// SetupRouter builds the gin engine with every route of the terminal.
//
// Public routes: /login, /logout, /pay, /success, /webhook, /health, /ready.
// Operator routes behind the session cookie: / and /generate.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	checkoutHandler *terminalHTTP.CheckoutHandler,
	sessionHandler *authHTTP.SessionHandler,
	sessionUseCase authUseCase.SessionUseCase,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.SetHTMLTemplate(views.Must())

	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))
	router.Use(SecurityHeadersMiddleware())

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	branding := views.Branding{MerchantName: cfg.MerchantName}

	loginHandlers := []gin.HandlerFunc{}
	if cfg.RateLimitLoginEnabled {
		loginHandlers = append(loginHandlers, authHTTP.LoginRateLimitMiddleware(
			ctx,
			cfg.RateLimitLoginRequestsPerSec,
			cfg.RateLimitLoginBurst,
			branding,
			s.logger,
		))
	}
	loginHandlers = append(loginHandlers, sessionHandler.LoginHandler)
	router.POST("/login", loginHandlers...)
	router.GET("/logout", sessionHandler.LogoutHandler)

	router.GET("/pay", checkoutHandler.PayHandler)
	router.GET("/success", checkoutHandler.SuccessHandler)
	router.GET("/webhook", checkoutHandler.WebhookHandler)
	router.POST("/webhook", checkoutHandler.WebhookHandler)

	operator := router.Group("/", authHTTP.SessionMiddleware(sessionUseCase, branding, s.logger))
	{
		operator.GET("/", checkoutHandler.TerminalHandler)
		operator.POST("/generate", checkoutHandler.GenerateHandler)
	}

	router.NoRoute(checkoutHandler.NotFoundHandler)

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server. Incoming requests are traced with otelhttp;
// spans are dropped unless a tracer provider is installed.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router is not configured")
	}

	s.server.Handler = otelhttp.NewHandler(s.router, "paylink",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server. Readiness turns false first.
func (s *Server) Shutdown(ctx context.Context) error {
	s.shuttingDown.Store(true)
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports liveness.
// GET /health
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server accepts traffic.
// GET /ready
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{"router": "ok", "server": "ok"}
	ready := true

	if s.router == nil {
		components["router"] = "error"
		ready = false
	}
	if s.shuttingDown.Load() {
		components["server"] = "shutting_down"
		ready = false
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready", "components": components})
}
