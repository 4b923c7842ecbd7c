package round

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"gift-auction/internal/auctionerrors"
	"gift-auction/internal/models"
	"gift-auction/internal/wallet"
	"gift-auction/utils"
)

// Winner is one settled gift: the final leading bid and the reservation
// backing it, which the ownership recorder commits.
type Winner struct {
	GiftID      string
	UserID      string
	Amount      int64
	BidID       string
	Reservation wallet.Reservation
}

// Settlement is the outcome of a closed round: one winner per contested
// gift that received bids, and the unsold remainder.
type Settlement struct {
	RoundID     string
	AuctionID   string
	RoundNumber int
	Winners     []Winner
	Unsold      []string
	ClosedAt    time.Time
}

// Engine manages round lifecycles and in-round bid resolution. It owns
// all transient bid state; reservations are taken and released through
// the wallet ledger as leadership changes hands.
type Engine struct {
	ledger wallet.Ledger

	mu     sync.RWMutex
	rounds map[string]*Round
}

// NewEngine creates a new round engine backed by the given ledger.
func NewEngine(ledger wallet.Ledger) *Engine {
	return &Engine{
		ledger: ledger,
		rounds: make(map[string]*Round),
	}
}

// Open creates a round contesting giftIDs and immediately starts
// accepting bids. Rounds must contest at least one gift.
func (e *Engine) Open(auctionID string, number int, giftIDs []string, duration time.Duration) (*Round, error) {
	if len(giftIDs) == 0 {
		return nil, fmt.Errorf("engine: open round %d of auction %s: %w", number, auctionID, auctionerrors.ErrEmptyRound)
	}

	r := &Round{
		id:        utils.GenerateID(),
		auctionID: auctionID,
		number:    number,
		giftIDs:   append([]string(nil), giftIDs...),
		duration:  duration,
		startedAt: time.Now().UTC(),
		state:     statePending,
		leaders:   make(map[string]*standingBid),
	}
	r.state = stateActive

	e.mu.Lock()
	e.rounds[r.id] = r
	e.mu.Unlock()

	utils.Info("round opened", map[string]any{
		"round_id":   r.id,
		"auction_id": auctionID,
		"number":     number,
		"gifts":      len(giftIDs),
	})
	return r, nil
}

// Get returns a round by id.
func (e *Engine) Get(roundID string) (*Round, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	r, ok := e.rounds[roundID]
	if !ok {
		return nil, fmt.Errorf("engine: get round %s: %w", roundID, auctionerrors.ErrRoundNotFound)
	}
	return r, nil
}

// Evict drops rounds from the engine. The orchestrator evicts an
// auction's rounds once the auction finishes, so round state does not
// accumulate for the life of the process. Looking up an evicted round
// reports RoundNotFound.
func (e *Engine) Evict(roundIDs ...string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, id := range roundIDs {
		delete(e.rounds, id)
	}
}

// Submit places a bid for a gift in an active round. Bids are evaluated
// strictly in arrival order under the round lock: a bid must exceed the
// current leader for its gift, and its funds are reserved before it takes
// the lead. The outbid leader's reservation is released so those funds
// become available again without touching their other standing bids.
func (e *Engine) Submit(ctx context.Context, roundID, userID, giftID string, amount int64) (models.Bid, error) {
	if userID == "" || giftID == "" {
		return models.Bid{}, fmt.Errorf("engine: submit bid: %w - missing userID or giftID", auctionerrors.ErrInvalidBid)
	}
	if amount <= 0 {
		return models.Bid{}, fmt.Errorf("engine: submit bid: %w - non-positive amount", auctionerrors.ErrInvalidBid)
	}

	r, err := e.Get(roundID)
	if err != nil {
		return models.Bid{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != stateActive {
		return models.Bid{}, fmt.Errorf("engine: submit bid on round %s in state %s: %w",
			roundID, r.state, auctionerrors.ErrRoundNotActive)
	}
	if !slices.Contains(r.giftIDs, giftID) {
		return models.Bid{}, fmt.Errorf("engine: submit bid on gift %s in round %s: %w",
			giftID, roundID, auctionerrors.ErrInvalidGift)
	}

	prev := r.leaders[giftID]
	if prev != nil && amount <= prev.bid.Amount {
		return models.Bid{}, fmt.Errorf("engine: bid %d on gift %s does not beat leader %d: %w",
			amount, giftID, prev.bid.Amount, auctionerrors.ErrBelowCurrentLeader)
	}

	// Reserve before taking the lead so a rejected reservation leaves the
	// round untouched.
	res, err := e.ledger.Reserve(ctx, userID, amount)
	if err != nil {
		return models.Bid{}, err
	}

	bid := models.Bid{
		BidID:     utils.GenerateID(),
		RoundID:   roundID,
		GiftID:    giftID,
		UserID:    userID,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}
	r.leaders[giftID] = &standingBid{bid: bid, reservation: res}
	r.bids = append(r.bids, bid)

	if prev != nil {
		if err := e.ledger.Release(ctx, prev.reservation); err != nil {
			utils.Error("release of outbid reservation failed", map[string]any{
				"round_id":       roundID,
				"gift_id":        giftID,
				"reservation_id": prev.reservation.ReservationID,
				"error":          err.Error(),
			})
		}
	}

	return bid, nil
}

// Close ends the round and snapshots the final leaders as its settlement.
// It is idempotent: closing an already-finished round returns the
// settlement computed the first time, so racing timer and manual triggers
// cannot double-settle. Once the closing transition starts, Submit rejects
// with RoundNotActive.
func (e *Engine) Close(roundID string) (Settlement, error) {
	r, err := e.Get(roundID)
	if err != nil {
		return Settlement{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == stateFinished {
		return *r.settlement, nil
	}

	r.state = stateClosing

	settlement := Settlement{
		RoundID:     r.id,
		AuctionID:   r.auctionID,
		RoundNumber: r.number,
		ClosedAt:    time.Now().UTC(),
	}
	for _, giftID := range r.giftIDs {
		sb, ok := r.leaders[giftID]
		if !ok {
			settlement.Unsold = append(settlement.Unsold, giftID)
			continue
		}
		settlement.Winners = append(settlement.Winners, Winner{
			GiftID:      giftID,
			UserID:      sb.bid.UserID,
			Amount:      sb.bid.Amount,
			BidID:       sb.bid.BidID,
			Reservation: sb.reservation,
		})
	}

	r.endedAt = settlement.ClosedAt
	r.settlement = &settlement
	r.state = stateFinished

	utils.Info("round closed", map[string]any{
		"round_id":   r.id,
		"auction_id": r.auctionID,
		"number":     r.number,
		"winners":    len(settlement.Winners),
		"unsold":     len(settlement.Unsold),
	})
	return settlement, nil
}
