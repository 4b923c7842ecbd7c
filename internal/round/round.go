package round

import (
	"sync"
	"time"

	"gift-auction/internal/models"
	"gift-auction/internal/wallet"
)

// Round lifecycle. A round is pending only while Open assembles it,
// accepts bids while active, rejects everything while closing, and is
// immutable once finished.
type state int

const (
	statePending state = iota
	stateActive
	stateClosing
	stateFinished
)

func (s state) String() string {
	switch s {
	case statePending:
		return "pending"
	case stateActive:
		return models.RoundActive
	case stateClosing:
		return "closing"
	default:
		return models.RoundFinished
	}
}

// standingBid is the current leading bid for one gift. Only the leader's
// reservation is held; an outbid leader has their funds released
// immediately.
type standingBid struct {
	bid         models.Bid
	reservation wallet.Reservation
}

// Round is the engine's runtime state for one bidding window. All bid
// state is guarded by mu; operations on different rounds proceed in
// parallel.
type Round struct {
	id        string
	auctionID string
	number    int
	giftIDs   []string
	duration  time.Duration
	startedAt time.Time

	mu         sync.Mutex
	state      state
	leaders    map[string]*standingBid
	bids       []models.Bid // accepted bids in submission order
	endedAt    time.Time
	settlement *Settlement // set exactly once, when the round finishes
}

// ID returns the round's identity.
func (r *Round) ID() string { return r.id }

// Deadline returns when the round's active window expires.
func (r *Round) Deadline() time.Time { return r.startedAt.Add(r.duration) }

// Snapshot returns the round as a client-facing record.
func (r *Round) Snapshot() models.Round {
	r.mu.Lock()
	defer r.mu.Unlock()

	status := models.RoundActive
	var endedAt *time.Time
	if r.state == stateFinished {
		status = models.RoundFinished
		t := r.endedAt
		endedAt = &t
	}

	return models.Round{
		RoundID:     r.id,
		AuctionID:   r.auctionID,
		RoundNumber: r.number,
		GiftIDs:     append([]string(nil), r.giftIDs...),
		Status:      status,
		StartedAt:   r.startedAt,
		EndedAt:     endedAt,
	}
}

// Leaders returns the current leading bid per gift. Gifts without bids are
// absent from the map.
func (r *Round) Leaders() map[string]models.Bid {
	r.mu.Lock()
	defer r.mu.Unlock()

	leaders := make(map[string]models.Bid, len(r.leaders))
	for giftID, sb := range r.leaders {
		leaders[giftID] = sb.bid
	}
	return leaders
}

// Bids returns all accepted bids in submission order.
func (r *Round) Bids() []models.Bid {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Bid(nil), r.bids...)
}
