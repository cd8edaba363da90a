// Package client talks to the hosted payment gateway over HTTPS.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	gatewayDomain "github.com/paylink/terminal/internal/gateway/domain"
	"github.com/paylink/terminal/internal/httputil"
)

const (
	paymentsPath = "/api/v1/payments/gateway/"

	// maxResponseBytes bounds how much of a gateway response is read.
	maxResponseBytes = 1 << 20

	// DefaultUserAgent identifies the terminal to the gateway.
	DefaultUserAgent = "PayLink-POS/Terminal"

	// DefaultTimeout bounds a single gateway call.
	DefaultTimeout = 15 * time.Second
)

// Config configures a Client.
type Config struct {
	BaseURL   string
	APIKey    string
	UserAgent string
	Timeout   time.Duration
}

// Client is the gateway API client. It is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a Client. A nil httpClient builds the default pooled,
// instrumented client of httputil.NewHTTPClient.
func New(config Config, httpClient *http.Client, logger *slog.Logger) *Client {
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if httpClient == nil {
		httpClient = httputil.NewHTTPClient(config.Timeout)
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		apiKey:     config.APIKey,
		userAgent:  config.UserAgent,
		httpClient: httpClient,
		logger:     logger,
	}
}

type createPaymentResponse struct {
	URL     string `json:"url"`
	Message string `json:"message"`
}

// CreatePayment registers a payment and returns the gateway checkout URL the
// customer must be redirected to.
//
// Errors:
//   - ErrGatewayUnreachable: transport failure or timeout
//   - ErrGatewayBlocked: the gateway answered with an HTML page
//   - ErrGatewayInvalidResponse: the body is not JSON or the checkout URL is not http(s)
//   - *GatewayError: JSON without a checkout URL
func (c *Client) CreatePayment(
	ctx context.Context,
	request *gatewayDomain.CreatePaymentRequest,
) (string, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payment request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+paymentsPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build payment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Referer", c.baseURL+"/")
	c.setHeaders(req)

	_, respBody, err := c.do(req)
	if err != nil {
		return "", err
	}

	if looksLikeHTML(respBody) {
		c.logger.Warn("gateway returned an html page", slog.String("operation", "create_payment"))
		return "", gatewayDomain.ErrGatewayBlocked
	}

	var resp createPaymentResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", gatewayDomain.ErrGatewayInvalidResponse
	}

	if resp.URL != "" {
		if !isHTTPURL(resp.URL) {
			return "", gatewayDomain.ErrGatewayInvalidResponse
		}
		return resp.URL, nil
	}

	message := resp.Message
	if message == "" {
		message = "Unknown error"
	}
	return "", &gatewayDomain.GatewayError{Message: message}
}

// GetPayment fetches the status of a payment. Missing status and amount take
// the defaults of Payment.Normalize.
//
// Errors:
//   - ErrGatewayUnreachable: transport failure or timeout
//   - ErrPaymentNotFound: any non-2xx answer
//   - ErrGatewayInvalidResponse: the body is not JSON
func (c *Client) GetPayment(ctx context.Context, paymentID string) (*gatewayDomain.Payment, error) {
	if paymentID == "" {
		return nil, gatewayDomain.ErrPaymentNotFound
	}

	endpoint := c.baseURL + paymentsPath + url.PathEscape(paymentID) + "/"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build payment status request: %w", err)
	}
	c.setHeaders(req)

	status, respBody, err := c.do(req)
	if err != nil {
		return nil, err
	}

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return nil, gatewayDomain.ErrPaymentNotFound
	}

	var payment gatewayDomain.Payment
	if err := json.Unmarshal(respBody, &payment); err != nil {
		return nil, gatewayDomain.ErrGatewayInvalidResponse
	}
	if payment.ID == "" {
		payment.ID = paymentID
	}
	payment.Normalize()

	return &payment, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
}

func (c *Client) do(req *http.Request) (int, []byte, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("gateway request failed",
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.Duration("duration", time.Since(start)),
			slog.Any("error", err))
		return 0, nil, fmt.Errorf("%w: %v", gatewayDomain.ErrGatewayUnreachable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", gatewayDomain.ErrGatewayUnreachable, err)
	}

	c.logger.Debug("gateway request completed",
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)))

	return resp.StatusCode, body, nil
}

func looksLikeHTML(body []byte) bool {
	lower := bytes.ToLower(body)
	return bytes.Contains(lower, []byte("<!doctype")) || bytes.Contains(lower, []byte("<html"))
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "https" || u.Scheme == "http") && u.Host != ""
}
