package service

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

	"github.com/paylink/terminal/internal/httputil"
	notifyDomain "github.com/paylink/terminal/internal/notify/domain"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDiscordNotifier_Notify(t *testing.T) {
	occurredAt := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)

	t.Run("paid event", func(t *testing.T) {
		var received discordPayload
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		notifier := NewDiscordNotifier(server.URL, "", httputil.NewHTTPClient(time.Second), newTestLogger())
		err := notifier.Notify(context.Background(), notifyDomain.TransactionEvent{
			Status:        "PAID",
			Amount:        "10000",
			Currency:      "IQD",
			ClientName:    "Ali",
			OrderID:       "Ab3dEf9h",
			TransactionID: "pay_1",
			OccurredAt:    occurredAt,
		})
		require.NoError(t, err)

		require.Len(t, received.Embeds, 1)
		embed := received.Embeds[0]
		assert.Equal(t, "✅ POS Transaction Update", embed.Title)
		assert.Equal(t, colorPaid, embed.Color)
		assert.Equal(t, DefaultFooter, embed.Footer.Text)
		assert.Equal(t, "2026-03-01T12:30:00Z", embed.Timestamp)

		values := make(map[string]string)
		for _, field := range embed.Fields {
			values[field.Name] = field.Value
		}
		assert.Equal(t, map[string]string{
			"Status":         "PAID",
			"Amount":         "10000 IQD",
			"Client":         "Ali",
			"Email":          notifyDomain.NoEmail,
			"Order ID":       "Ab3dEf9h",
			"Transaction ID": "pay_1",
		}, values)
	})

	t.Run("failed event", func(t *testing.T) {
		var received discordPayload
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		}))
		defer server.Close()

		notifier := NewDiscordNotifier(server.URL, "Corner Shop", httputil.NewHTTPClient(time.Second), newTestLogger())
		err := notifier.Notify(context.Background(), notifyDomain.TransactionEvent{Status: "FAILED", Amount: "5"})
		require.NoError(t, err)

		require.Len(t, received.Embeds, 1)
		assert.Equal(t, "❌ POS Transaction Update", received.Embeds[0].Title)
		assert.Equal(t, colorFailed, received.Embeds[0].Color)
		assert.Equal(t, "Corner Shop", received.Embeds[0].Footer.Text)
		assert.Equal(t, notifyDomain.GuestName, received.Embeds[0].Fields[2].Value)
		assert.Equal(t, notifyDomain.NotAvailable, received.Embeds[0].Fields[5].Value)
	})

	t.Run("rejected by webhook", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		notifier := NewDiscordNotifier(server.URL, "", httputil.NewHTTPClient(time.Second), newTestLogger())
		err := notifier.Notify(context.Background(), notifyDomain.TransactionEvent{Status: "PAID"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "400")
	})

	t.Run("unreachable webhook", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		serverURL := server.URL
		server.Close()

		notifier := NewDiscordNotifier(serverURL, "", httputil.NewHTTPClient(time.Second), newTestLogger())
		err := notifier.Notify(context.Background(), notifyDomain.TransactionEvent{Status: "PAID"})
		assert.Error(t, err)
	})
}

func TestNoopNotifier_Notify(t *testing.T) {
	assert.NoError(t, NewNoopNotifier().Notify(context.Background(), notifyDomain.TransactionEvent{}))
}
