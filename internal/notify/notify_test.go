package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookNotifier_DeliversEvent(t *testing.T) {
	received := make(chan Event, 1)
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var event Event
		require.NoError(t, json.NewDecoder(r.Body).Decode(&event))
		received <- event
	}))
	defer sink.Close()

	notifier := NewWebhookNotifier(sink.URL)
	notifier.Notify(Event{
		Type:         EventRoundClosed,
		AuctionID:    "auction1",
		CollectionID: "col1",
		RoundID:      "round1",
		RoundNumber:  2,
		OccurredAt:   time.Now().UTC(),
	})

	select {
	case event := <-received:
		assert.Equal(t, EventRoundClosed, event.Type)
		assert.Equal(t, "auction1", event.AuctionID)
		assert.Equal(t, 2, event.RoundNumber)
	case <-time.After(2 * time.Second):
		t.Fatal("webhook sink never received the event")
	}
}

func TestWebhookNotifier_NotifyDoesNotBlock(t *testing.T) {
	blocked := make(chan struct{})
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-blocked
	}))
	defer sink.Close()
	defer close(blocked)

	notifier := NewWebhookNotifier(sink.URL)

	done := make(chan struct{})
	go func() {
		notifier.Notify(Event{Type: EventRoundOpened, AuctionID: "auction1"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Notify blocked on a slow sink")
	}
}

func TestWebhookNotifier_UnreachableSinkIsDropped(t *testing.T) {
	notifier := NewWebhookNotifier("http://127.0.0.1:1/events")

	// Must not panic and must not block.
	notifier.Notify(Event{Type: EventAuctionFinished, AuctionID: "auction1"})
}
