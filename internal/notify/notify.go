package notify

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"gift-auction/internal/models"
	"gift-auction/utils"
)

// Event types emitted by the auction core.
const (
	EventRoundOpened     = "round_opened"
	EventRoundClosed     = "round_closed"
	EventAuctionFinished = "auction_finished"
)

// Event describes a lifecycle change an external dispatcher relays to
// users. The core does not depend on delivery succeeding.
type Event struct {
	Type         string             `json:"type"`
	AuctionID    string             `json:"auction_id"`
	CollectionID string             `json:"collection_id"`
	RoundID      string             `json:"round_id,omitempty"`
	RoundNumber  int                `json:"round_number,omitempty"`
	Winners      []models.Ownership `json:"winners,omitempty"`
	OccurredAt   time.Time          `json:"occurred_at"`
}

// Notifier receives auction lifecycle events. Implementations must not
// block the caller.
type Notifier interface {
	Notify(event Event)
}

// LogNotifier writes events to the structured log. It is the default sink
// when no webhook is configured.
type LogNotifier struct{}

func (LogNotifier) Notify(event Event) {
	utils.Info("auction event", map[string]any{
		"type":       event.Type,
		"auction_id": event.AuctionID,
		"round_id":   event.RoundID,
		"winners":    len(event.Winners),
	})
}

// WebhookNotifier POSTs events as JSON to a configured sink,
// fire-and-forget. Delivery failures are logged and dropped.
type WebhookNotifier struct {
	url    string
	client *http.Client
}

// NewWebhookNotifier creates a notifier posting to url.
func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

func (n *WebhookNotifier) Notify(event Event) {
	go n.deliver(event)
}

func (n *WebhookNotifier) deliver(event Event) {
	body, err := json.Marshal(event)
	if err != nil {
		utils.Error("webhook payload marshal failed", map[string]any{"type": event.Type, "error": err.Error()})
		return
	}

	resp, err := n.client.Post(n.url, "application/json", bytes.NewReader(body))
	if err != nil {
		utils.Warn("webhook delivery failed", map[string]any{"type": event.Type, "url": n.url, "error": err.Error()})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		utils.Warn("webhook sink rejected event", map[string]any{
			"type":   event.Type,
			"url":    n.url,
			"status": resp.StatusCode,
		})
	}
}
