// Package http exposes the checkout flow: the operator terminal, the customer
// facing /pay and /success links and the gateway /webhook callback.
package http

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/paylink/terminal/internal/errors"
	gatewayDomain "github.com/paylink/terminal/internal/gateway/domain"
	"github.com/paylink/terminal/internal/httputil"
	linksecDomain "github.com/paylink/terminal/internal/linksec/domain"
	"github.com/paylink/terminal/internal/terminal/http/dto"
	terminalUseCase "github.com/paylink/terminal/internal/terminal/usecase"
	"github.com/paylink/terminal/internal/views"
)

// maxWebhookBodyBytes bounds the gateway callback body.
const maxWebhookBodyBytes = 64 << 10

// PageConfig holds the static settings rendered into the checkout screens.
type PageConfig struct {
	Branding        views.Branding
	Currency        string
	DefaultTitle    string
	SupportEmail    string
	SupportWhatsApp string

	// Lifetimes are only quoted in expiry messages.
	PaymentLinkLifetime time.Duration
	ReceiptLifetime     time.Duration
}

// CheckoutHandler handles the checkout routes.
type CheckoutHandler struct {
	checkoutUseCase terminalUseCase.CheckoutUseCase
	pages           PageConfig
	logger          *slog.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(
	checkoutUseCase terminalUseCase.CheckoutUseCase,
	pages PageConfig,
	logger *slog.Logger,
) *CheckoutHandler {
	if pages.DefaultTitle == "" {
		pages.DefaultTitle = gatewayDomain.DefaultTitle
	}
	if pages.PaymentLinkLifetime <= 0 {
		pages.PaymentLinkLifetime = linksecDomain.DefaultPaymentLinkLifetime
	}
	if pages.ReceiptLifetime <= 0 {
		pages.ReceiptLifetime = linksecDomain.DefaultReceiptLifetime
	}
	return &CheckoutHandler{
		checkoutUseCase: checkoutUseCase,
		pages:           pages,
		logger:          logger,
	}
}

// TerminalHandler renders the payment request form.
// GET /
func (h *CheckoutHandler) TerminalHandler(c *gin.Context) {
	c.HTML(http.StatusOK, views.Terminal, views.TerminalPage{
		Branding:     h.pages.Branding,
		Currency:     h.pages.Currency,
		DefaultTitle: h.pages.DefaultTitle,
	})
}

// GenerateHandler issues a payment link and renders the share screen.
// POST /generate
func (h *CheckoutHandler) GenerateHandler(c *gin.Context) {
	var req dto.GenerateRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderError(c, http.StatusBadRequest, "Invalid Request", "The form could not be read.", nil)
		return
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		h.renderError(c, http.StatusUnprocessableEntity, "Invalid Request", err.Error(), nil)
		return
	}

	share, err := h.checkoutUseCase.GeneratePaymentLink(c.Request.Context(), req.ToDomain())
	if err != nil {
		h.handleError(c, err, "", false)
		return
	}

	c.HTML(http.StatusOK, views.Share, views.SharePage{
		Branding:  h.pages.Branding,
		Amount:    share.Amount,
		Currency:  share.Currency,
		Title:     share.Title,
		PayURL:    share.PayURL,
		QRCodeURL: share.QRCodeURL,
	})
}

// PayHandler verifies a payment link and redirects the customer to the gateway.
// GET /pay
func (h *CheckoutHandler) PayHandler(c *gin.Context) {
	redirectURL, err := h.checkoutUseCase.StartPayment(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		h.handleError(c, err, "", false)
		return
	}

	c.Redirect(http.StatusFound, redirectURL)
}

// SuccessHandler verifies a receipt link and renders the receipt.
// GET /success
func (h *CheckoutHandler) SuccessHandler(c *gin.Context) {
	paymentID := c.Query("payment_id")

	receipt, err := h.checkoutUseCase.ShowReceipt(c.Request.Context(), paymentID, c.Request.URL.Query())
	if err != nil {
		h.handleError(c, err, paymentID, true)
		return
	}

	c.HTML(http.StatusOK, views.Receipt, views.ReceiptPage{
		Branding:     h.pages.Branding,
		PaymentID:    receipt.PaymentID,
		OrderID:      receipt.OrderID,
		Amount:       receipt.Amount,
		Currency:     receipt.Currency,
		Status:       receipt.Status,
		Paid:         receipt.IsPaid(),
		CustomerName: receipt.CustomerName,
		Email:        receipt.CustomerEmail,
		SupportEmail: h.pages.SupportEmail,
	})
}

// WebhookHandler authenticates a gateway callback and relays it to the notifier.
// GET, POST /webhook
//
// Responses:
//   - 200 OK with body "OK"
//   - 403 Forbidden, 410 Gone or 422 Unprocessable Entity as JSON errors
func (h *CheckoutHandler) WebhookHandler(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.checkoutUseCase.HandleWebhook(c.Request.Context(), c.Request.URL.Query(), body); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.String(http.StatusOK, "OK")
}

// NotFoundHandler renders the error view for unknown routes.
func (h *CheckoutHandler) NotFoundHandler(c *gin.Context) {
	h.renderError(c, http.StatusNotFound, "Not Found", "This page does not exist.", nil)
}

// handleError renders the error view for a failed checkout step. The message
// depends on the error kind and on whether a receipt was requested; internal
// details are only logged.
func (h *CheckoutHandler) handleError(c *gin.Context, err error, paymentID string, receipt bool) {
	statusCode, response := httputil.Resolve(err)
	httputil.LogError(c.Request.Context(), h.logger, err, statusCode, response.Error)

	title, message := "System Error", "Something went wrong. Please try again."
	var contact *views.Contact

	var gatewayErr *gatewayDomain.GatewayError
	switch {
	case apperrors.Is(err, linksecDomain.ErrLinkExpired) && receipt:
		title = "Receipt Expired"
		message = fmt.Sprintf("This receipt is older than %s.", formatLifetime(h.pages.ReceiptLifetime))
		contact = h.contact("About Receipt " + paymentID)
	case apperrors.Is(err, linksecDomain.ErrLinkExpired):
		title = "Link Expired"
		message = fmt.Sprintf("This payment link is over %s old.", formatLifetime(h.pages.PaymentLinkLifetime))
		contact = h.contact("About Expired Payment Link")
	case apperrors.Is(err, apperrors.ErrForbidden) && receipt:
		title, message = "Security Warning", "Invalid receipt signature."
	case apperrors.Is(err, apperrors.ErrForbidden):
		title, message = "Security Check Failed", "Invalid or tampered link."
	case apperrors.Is(err, gatewayDomain.ErrPaymentNotFound):
		title, message = "Transaction Not Found", "Invalid Payment ID."
		contact = h.contact("About Receipt " + paymentID)
	case apperrors.Is(err, gatewayDomain.ErrGatewayBlocked):
		title, message = "Gateway Firewall Block", "Please wait 5 minutes."
	case apperrors.As(err, &gatewayErr):
		title, message = "Gateway Error", gatewayErr.Message
	case apperrors.Is(err, gatewayDomain.ErrGatewayInvalidResponse):
		title, message = "Gateway Invalid Response", "The payment gateway sent an unreadable answer."
	case apperrors.Is(err, gatewayDomain.ErrGatewayUnreachable):
		title, message = "Gateway Unavailable", "The payment gateway could not be reached."
	case apperrors.Is(err, apperrors.ErrInvalidInput) && receipt:
		title, message = "Invalid Session", "No payment ID was provided."
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		title, message = "Invalid Request", response.Message
	}

	h.renderError(c, statusCode, title, message, contact)
}

func (h *CheckoutHandler) contact(subject string) *views.Contact {
	if h.pages.SupportEmail == "" && h.pages.SupportWhatsApp == "" {
		return nil
	}
	return &views.Contact{
		Email:    h.pages.SupportEmail,
		Subject:  subject,
		WhatsApp: h.pages.SupportWhatsApp,
	}
}

func (h *CheckoutHandler) renderError(
	c *gin.Context,
	statusCode int,
	title, message string,
	contact *views.Contact,
) {
	c.HTML(statusCode, views.Error, views.ErrorPage{
		Branding: h.pages.Branding,
		Title:    title,
		Message:  message,
		Contact:  contact,
	})
}

// formatLifetime renders whole hours as "48 hours" and anything else in minutes.
func formatLifetime(d time.Duration) string {
	if d >= time.Hour && d%time.Hour == 0 {
		return pluralize(int(d/time.Hour), "hour")
	}
	return pluralize(int(d.Round(time.Minute)/time.Minute), "minute")
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
