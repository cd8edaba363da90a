package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	notifyDomain "github.com/paylink/terminal/internal/notify/domain"
)

const (
	colorPaid   = 5763719
	colorFailed = 15548997

	// DefaultFooter is the embed footer when no merchant name is configured.
	DefaultFooter = "POS System"
)

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type discordEmbedFooter struct {
	Text string `json:"text"`
}

type discordEmbed struct {
	Title     string              `json:"title"`
	Color     int                 `json:"color"`
	Fields    []discordEmbedField `json:"fields"`
	Footer    discordEmbedFooter  `json:"footer"`
	Timestamp string              `json:"timestamp"`
}

type discordPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

// DiscordNotifier posts events as Discord-compatible webhook embeds.
type DiscordNotifier struct {
	webhookURL string
	footer     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewDiscordNotifier creates a notifier posting to webhookURL. An empty footer
// uses DefaultFooter.
func NewDiscordNotifier(
	webhookURL string,
	footer string,
	httpClient *http.Client,
	logger *slog.Logger,
) *DiscordNotifier {
	if footer == "" {
		footer = DefaultFooter
	}
	return &DiscordNotifier{
		webhookURL: webhookURL,
		footer:     footer,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Notify posts the event embed. Any non-2xx answer is an error.
func (d *DiscordNotifier) Notify(ctx context.Context, event notifyDomain.TransactionEvent) error {
	body, err := json.Marshal(d.buildPayload(event))
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("notification rejected with status %d", resp.StatusCode)
	}

	d.logger.Debug("notification sent",
		slog.String("status", event.Status),
		slog.String("order_id", event.OrderID))

	return nil
}

func (d *DiscordNotifier) buildPayload(event notifyDomain.TransactionEvent) discordPayload {
	event = event.WithDefaults()

	icon, color := "❌", colorFailed
	if event.IsPaid() {
		icon, color = "✅", colorPaid
	}

	occurredAt := event.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	amount := event.Amount
	if event.Currency != "" {
		amount = amount + " " + event.Currency
	}

	return discordPayload{
		Embeds: []discordEmbed{{
			Title: icon + " POS Transaction Update",
			Color: color,
			Fields: []discordEmbedField{
				{Name: "Status", Value: event.Status, Inline: true},
				{Name: "Amount", Value: amount, Inline: true},
				{Name: "Client", Value: event.ClientName, Inline: true},
				{Name: "Email", Value: event.ClientEmail, Inline: true},
				{Name: "Order ID", Value: event.OrderID, Inline: true},
				{Name: "Transaction ID", Value: event.TransactionID},
			},
			Footer:    discordEmbedFooter{Text: d.footer},
			Timestamp: occurredAt.UTC().Format(time.RFC3339),
		}},
	}
}
