package client

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/paylink/terminal/internal/errors"
	gatewayDomain "github.com/paylink/terminal/internal/gateway/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return New(Config{
		BaseURL: server.URL + "/",
		APIKey:  "test-api-key",
		Timeout: 2 * time.Second,
	}, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testPaymentRequest() *gatewayDomain.CreatePaymentRequest {
	return &gatewayDomain.CreatePaymentRequest{
		Title:         gatewayDomain.DefaultTitle,
		OrderID:       "Ab12Cd34",
		TotalAmount:   "10000",
		Currency:      "IQD",
		CustomerName:  "Ali",
		CustomerEmail: "ali@example.com",
		CallbackURL:   "https://pos.example.com/success?oid=Ab12Cd34",
		WebhookURL:    "https://pos.example.com/webhook?c=v1.x",
	}
}

func TestClient_CreatePayment(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_Redirect", func(t *testing.T) {
		var got gatewayDomain.CreatePaymentRequest
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/v1/payments/gateway/", r.URL.Path)
			assert.Equal(t, "test-api-key", r.Header.Get("X-API-Key"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"url":"https://gateway.example.com/checkout/123"}`))
		})

		redirect, err := client.CreatePayment(ctx, testPaymentRequest())
		require.NoError(t, err)
		assert.Equal(t, "https://gateway.example.com/checkout/123", redirect)
		assert.Equal(t, *testPaymentRequest(), got)
	})

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		message string
	}{
		{
			name:    "html firewall page",
			status:  http.StatusForbidden,
			body:    "<!DOCTYPE html><html><body>Just a moment...</body></html>",
			wantErr: gatewayDomain.ErrGatewayBlocked,
		},
		{
			name:    "html without doctype",
			status:  http.StatusOK,
			body:    "<HTML><body>blocked</body></HTML>",
			wantErr: gatewayDomain.ErrGatewayBlocked,
		},
		{
			name:    "gateway message",
			status:  http.StatusBadRequest,
			body:    `{"message":"Invalid API key"}`,
			message: "Invalid API key",
		},
		{
			name:    "json without url or message",
			status:  http.StatusOK,
			body:    `{}`,
			message: "Unknown error",
		},
		{
			name:    "not json",
			status:  http.StatusOK,
			body:    "service unavailable",
			wantErr: gatewayDomain.ErrGatewayInvalidResponse,
		},
		{
			name:    "non http redirect",
			status:  http.StatusOK,
			body:    `{"url":"javascript:alert(1)"}`,
			wantErr: gatewayDomain.ErrGatewayInvalidResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			redirect, err := client.CreatePayment(ctx, testPaymentRequest())
			assert.Empty(t, redirect)
			assert.ErrorIs(t, err, apperrors.ErrBadGateway)

			if tt.message != "" {
				var gwErr *gatewayDomain.GatewayError
				require.ErrorAs(t, err, &gwErr)
				assert.Equal(t, tt.message, gwErr.Message)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("Error_Unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		baseURL := server.URL
		server.Close()

		client := New(Config{BaseURL: baseURL, Timeout: time.Second}, nil, slog.Default())
		_, err := client.CreatePayment(ctx, testPaymentRequest())
		assert.ErrorIs(t, err, gatewayDomain.ErrGatewayUnreachable)
	})

	t.Run("Error_ContextCancelled", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		})

		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := client.CreatePayment(cancelled, testPaymentRequest())
		assert.ErrorIs(t, err, gatewayDomain.ErrGatewayUnreachable)
	})
}

func TestClient_GetPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_StringAmount", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/api/v1/payments/gateway/pay_123/", r.URL.Path)
			assert.Equal(t, "test-api-key", r.Header.Get("X-API-Key"))
			_, _ = w.Write([]byte(`{"id":"pay_123","status":"PAID","total_amount":"10000","order_id":"Ab12Cd34"}`))
		})

		payment, err := client.GetPayment(ctx, "pay_123")
		require.NoError(t, err)
		assert.Equal(t, "pay_123", payment.ID)
		assert.True(t, payment.IsPaid())
		assert.Equal(t, gatewayDomain.Amount("10000"), payment.TotalAmount)
		assert.Equal(t, "Ab12Cd34", payment.OrderID)
	})

	t.Run("Success_NumericAmountAndDefaults", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"total_amount":2500}`))
		})

		payment, err := client.GetPayment(ctx, "pay_9")
		require.NoError(t, err)
		assert.Equal(t, "pay_9", payment.ID)
		assert.Equal(t, gatewayDomain.StatusFailed, payment.Status)
		assert.Equal(t, gatewayDomain.Amount("2500"), payment.TotalAmount)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"Not found."}`))
		})

		_, err := client.GetPayment(ctx, "nope")
		assert.ErrorIs(t, err, gatewayDomain.ErrPaymentNotFound)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("Error_EmptyID", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("gateway must not be called")
		})
		_, err := client.GetPayment(ctx, "")
		assert.ErrorIs(t, err, gatewayDomain.ErrPaymentNotFound)
	})

	t.Run("Error_PathTraversalIsEscaped", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/payments/gateway/..%2Fadmin/", r.URL.EscapedPath())
			w.WriteHeader(http.StatusNotFound)
		})
		_, err := client.GetPayment(ctx, "../admin")
		assert.ErrorIs(t, err, gatewayDomain.ErrPaymentNotFound)
	})

	t.Run("Error_InvalidJSON", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		})
		_, err := client.GetPayment(ctx, "pay_1")
		assert.ErrorIs(t, err, gatewayDomain.ErrGatewayInvalidResponse)
	})
}
