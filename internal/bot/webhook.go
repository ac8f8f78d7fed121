package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/omarshaarawi/trophybot/internal/models"
)

// WebhookNotifier posts cards as embeds to a Discord-compatible webhook.
type WebhookNotifier struct {
	httpClient *http.Client
	url        string
	username   string
}

type webhookPayload struct {
	Username string        `json:"username,omitempty"`
	Embeds   []models.Card `json:"embeds"`
}

func NewWebhookNotifier(url, username string, timeout time.Duration) *WebhookNotifier {
	return &WebhookNotifier{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
		username:   username,
	}
}

// Send posts the card once. Failures are not retried.
func (w *WebhookNotifier) Send(ctx context.Context, card models.Card) error {
	body, err := json.Marshal(webhookPayload{Username: w.username, Embeds: []models.Card{card}})
	if err != nil {
		return fmt.Errorf("error encoding webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("error creating webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error posting webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}

	slog.Info("Posted card to webhook", "title", card.Title, "fields", len(card.Fields))
	return nil
}
