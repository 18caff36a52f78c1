// Package webhook handles asynchronous notifications to registered webhook
// URLs when an analysis is flagged.
//
// Notifications are sent in a goroutine so they never block the HTTP
// response. Failed deliveries are logged but not retried (a production system
// would use a persistent queue with exponential backoff).
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"sentra/phishing-api/internal/domain"
	"sentra/phishing-api/internal/store"
)

// Event is the event name carried in every webhook payload.
const Event = "flagged_message"

// Notifier sends webhook payloads to all registered, active endpoints.
type Notifier struct {
	store  store.Store
	client *http.Client
}

// New creates a Notifier with the given delivery timeout.
// A zero timeout falls back to 5 seconds.
func New(s store.Store, timeout time.Duration) *Notifier {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Notifier{
		store:  s,
		client: &http.Client{Timeout: timeout},
	}
}

// NotifyAsync fires webhook calls in the background for the given analysis.
// A webhook triggers when the analysis status is at or above its configured
// trigger severity.
func (n *Notifier) NotifyAsync(a *domain.Analysis) {
	hooks, err := n.store.ListActiveWebhooks()
	if err != nil {
		slog.Error("webhook: failed to list endpoints", "error", err)
		return
	}
	for _, wh := range hooks {
		if domain.StatusRank(a.Status) >= domain.StatusRank(wh.Trigger) {
			go n.send(wh, a)
		}
	}
}

// send delivers a single webhook call and logs the outcome.
func (n *Notifier) send(wh *domain.WebhookConfig, a *domain.Analysis) {
	payload := domain.WebhookPayload{
		Event:       Event,
		TriggeredAt: time.Now().UTC(),
		Analysis:    *a,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		slog.Error("webhook: failed to marshal payload", "webhook_id", wh.ID, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), n.client.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, wh.URL, bytes.NewReader(body))
	if err != nil {
		slog.Error("webhook: failed to build request", "webhook_id", wh.ID, "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Sentra-Event", Event)

	resp, err := n.client.Do(req)
	if err != nil {
		slog.Warn("webhook: delivery failed", "webhook_id", wh.ID, "url", wh.URL, "error", err)
		return
	}
	defer resp.Body.Close()

	slog.Info("webhook: delivered",
		"webhook_id", wh.ID,
		"url", wh.URL,
		"status", resp.StatusCode,
		"analysis_id", a.ID,
		"analysis_status", a.Status,
		"risk_score", a.RiskScore,
	)
}
