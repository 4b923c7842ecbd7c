package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gift-auction/internal/auctionerrors"
	"gift-auction/internal/catalog"
	"gift-auction/internal/models"
	"gift-auction/internal/notify"
	"gift-auction/internal/recorder"
	"gift-auction/internal/round"
	"gift-auction/internal/wallet"
	"gift-auction/utils"
)

// advanceRetryBackoff is the pause before the timer path retries an
// advance that lost the single-flight race.
const advanceRetryBackoff = 250 * time.Millisecond

// Archive durably records auction activity as it happens. The settlement
// is written before it is applied (log-then-apply), so a crash between the
// wallet commit and the ownership write can be replayed from the log.
type Archive interface {
	SaveBid(ctx context.Context, bid models.Bid) error
	SaveSettlement(ctx context.Context, s round.Settlement) error
}

// AdvanceResult is the outcome of advancing an auction: either the next
// round, or the terminal finished state.
type AdvanceResult struct {
	Finished bool               `json:"finished"`
	Auction  models.Auction     `json:"auction"`
	Round    *models.Round      `json:"round,omitempty"`
	Settled  []models.Ownership `json:"settled,omitempty"`
	Unsold   []string           `json:"unsold,omitempty"`
}

// Status is a read-side view of an auction for clients polling progress.
type Status struct {
	Auction   models.Auction        `json:"auction"`
	Round     *models.Round         `json:"round,omitempty"`
	Leaders   map[string]models.Bid `json:"leaders,omitempty"`
	Remaining int                   `json:"remaining"`
}

// auctionState is the orchestrator's bookkeeping for one auction. Its
// mutex is the single-flight guard: Advance must never run concurrently
// with itself for the same auction.
type auctionState struct {
	mu      sync.Mutex
	auction models.Auction
	current *round.Round
	number  int
	rounds  []string // every round opened for this auction, evicted on finish
	timer   *time.Timer
}

// Orchestrator owns the sequence of rounds for each auction. It opens
// rounds through the engine, settles them through the recorder, and
// decides when an auction is finished.
type Orchestrator struct {
	catalog  catalog.Store
	engine   *round.Engine
	recorder *recorder.Recorder
	ledger   wallet.Ledger
	notifier notify.Notifier
	archive  Archive // optional

	mu       sync.RWMutex
	auctions map[string]*auctionState
	byCol    map[string]string // collectionID -> active auctionID
}

// New creates an orchestrator. archive may be nil, in which case no
// durable journal is kept.
func New(cat catalog.Store, engine *round.Engine, rec *recorder.Recorder, ledger wallet.Ledger, notifier notify.Notifier, archive Archive) *Orchestrator {
	return &Orchestrator{
		catalog:  cat,
		engine:   engine,
		recorder: rec,
		ledger:   ledger,
		notifier: notifier,
		archive:  archive,
		auctions: make(map[string]*auctionState),
		byCol:    make(map[string]string),
	}
}

// StartAuction begins selling a collection's unowned gifts. It fails when
// the collection already has an active auction or has nothing left to
// sell. The first round contests every unowned gift.
func (o *Orchestrator) StartAuction(ctx context.Context, collectionID string, roundDuration time.Duration) (models.Auction, error) {
	if roundDuration <= 0 {
		return models.Auction{}, fmt.Errorf("orchestrator: start auction for collection %s: %w - non-positive round duration",
			collectionID, auctionerrors.ErrInvalidBid)
	}

	col, err := o.catalog.GetCollection(collectionID)
	if err != nil {
		return models.Auction{}, err
	}

	unowned, err := o.catalog.UnownedGifts(collectionID)
	if err != nil {
		return models.Auction{}, err
	}
	if len(unowned) == 0 {
		return models.Auction{}, fmt.Errorf("orchestrator: start auction for collection %s: %w",
			collectionID, auctionerrors.ErrNoInventoryRemaining)
	}

	o.mu.Lock()
	if activeID, ok := o.byCol[collectionID]; ok {
		o.mu.Unlock()
		return models.Auction{}, fmt.Errorf("orchestrator: collection %s has active auction %s: %w",
			collectionID, activeID, auctionerrors.ErrAuctionAlreadyActive)
	}

	auction := models.Auction{
		AuctionID:     utils.GenerateID(),
		CollectionID:  col.CollectionID,
		RoundDuration: roundDuration,
		Status:        models.AuctionActive,
		CreatedAt:     time.Now().UTC(),
	}
	state := &auctionState{auction: auction}
	o.auctions[auction.AuctionID] = state
	o.byCol[collectionID] = auction.AuctionID
	o.mu.Unlock()

	state.mu.Lock()
	defer state.mu.Unlock()
	if err := o.openNextRound(state, unowned); err != nil {
		// Roll back registration so the collection is not wedged.
		o.mu.Lock()
		delete(o.auctions, auction.AuctionID)
		delete(o.byCol, collectionID)
		o.mu.Unlock()
		return models.Auction{}, err
	}

	utils.Info("auction started", map[string]any{
		"auction_id":    auction.AuctionID,
		"collection_id": collectionID,
		"gifts":         len(unowned),
	})
	return auction, nil
}

// Advance closes the current round, settles it, and either opens the next
// round over the remaining unowned gifts or finishes the auction. It is
// single-flight per auction: a concurrent call observes
// ErrConcurrentAdvance. Advancing a finished auction is a no-op returning
// the terminal state.
func (o *Orchestrator) Advance(ctx context.Context, auctionID string) (AdvanceResult, error) {
	state, err := o.state(auctionID)
	if err != nil {
		return AdvanceResult{}, err
	}

	if !state.mu.TryLock() {
		return AdvanceResult{}, fmt.Errorf("orchestrator: advance auction %s: %w", auctionID, auctionerrors.ErrConcurrentAdvance)
	}
	defer state.mu.Unlock()

	return o.advanceLocked(ctx, state)
}

// advanceLocked is the body of Advance. Caller holds state.mu.
func (o *Orchestrator) advanceLocked(ctx context.Context, state *auctionState) (AdvanceResult, error) {
	if state.auction.Status == models.AuctionFinished {
		return AdvanceResult{Finished: true, Auction: state.auction}, nil
	}

	result := AdvanceResult{Auction: state.auction}

	if state.current != nil {
		settlement, err := o.engine.Close(state.current.ID())
		if err != nil {
			return AdvanceResult{}, err
		}
		if state.timer != nil {
			state.timer.Stop()
		}

		if o.archive != nil {
			if err := o.archive.SaveSettlement(ctx, settlement); err != nil {
				return AdvanceResult{}, fmt.Errorf("orchestrator: journal settlement of round %s: %w (%w)",
					settlement.RoundID, auctionerrors.ErrPersistenceFailure, err)
			}
		}

		ownerships, err := o.recorder.Settle(ctx, settlement)
		if err != nil {
			// The round stays closed; a later Advance retries the whole
			// settlement against the idempotent close output.
			return AdvanceResult{}, err
		}

		result.Settled = ownerships
		result.Unsold = settlement.Unsold
		o.notifier.Notify(notify.Event{
			Type:         notify.EventRoundClosed,
			AuctionID:    state.auction.AuctionID,
			CollectionID: state.auction.CollectionID,
			RoundID:      settlement.RoundID,
			RoundNumber:  settlement.RoundNumber,
			Winners:      ownerships,
			OccurredAt:   settlement.ClosedAt,
		})
		state.current = nil
	}

	unowned, err := o.catalog.UnownedGifts(state.auction.CollectionID)
	if err != nil {
		return AdvanceResult{}, err
	}

	if len(unowned) == 0 {
		state.auction.Status = models.AuctionFinished
		o.mu.Lock()
		delete(o.byCol, state.auction.CollectionID)
		o.mu.Unlock()

		// The auction's rounds are settled and journaled; drop them from
		// the engine so its map stays bounded by active auctions.
		o.engine.Evict(state.rounds...)
		state.rounds = nil

		result.Finished = true
		result.Auction = state.auction
		o.notifier.Notify(notify.Event{
			Type:         notify.EventAuctionFinished,
			AuctionID:    state.auction.AuctionID,
			CollectionID: state.auction.CollectionID,
			OccurredAt:   time.Now().UTC(),
		})
		utils.Info("auction finished", map[string]any{"auction_id": state.auction.AuctionID})
		return result, nil
	}

	if err := o.openNextRound(state, unowned); err != nil {
		return AdvanceResult{}, err
	}
	snap := state.current.Snapshot()
	result.Round = &snap
	return result, nil
}

// openNextRound opens the next numbered round over gifts and arms its
// expiry timer. Caller holds state.mu.
func (o *Orchestrator) openNextRound(state *auctionState, gifts []string) error {
	state.number++
	r, err := o.engine.Open(state.auction.AuctionID, state.number, gifts, state.auction.RoundDuration)
	if err != nil {
		state.number--
		return err
	}
	state.current = r
	state.rounds = append(state.rounds, r.ID())
	state.timer = time.AfterFunc(time.Until(r.Deadline()), func() {
		o.onRoundExpiry(state.auction.AuctionID, r.ID())
	})

	o.notifier.Notify(notify.Event{
		Type:         notify.EventRoundOpened,
		AuctionID:    state.auction.AuctionID,
		CollectionID: state.auction.CollectionID,
		RoundID:      r.ID(),
		RoundNumber:  state.number,
		OccurredAt:   time.Now().UTC(),
	})
	return nil
}

// onRoundExpiry drives the round-duration timeout. A lost single-flight
// race means someone else is already advancing; it retries once after a
// short backoff and otherwise trusts the idempotent close.
func (o *Orchestrator) onRoundExpiry(auctionID, roundID string) {
	ctx := context.Background()
	err := o.expireRound(ctx, auctionID, roundID)
	if err == nil {
		return
	}
	if errors.Is(err, auctionerrors.ErrConcurrentAdvance) {
		time.Sleep(advanceRetryBackoff)
		if err = o.expireRound(ctx, auctionID, roundID); err == nil || errors.Is(err, auctionerrors.ErrConcurrentAdvance) {
			// The competing advance owns the transition.
			return
		}
	}
	utils.Error("round expiry advance failed", map[string]any{
		"auction_id": auctionID,
		"round_id":   roundID,
		"error":      err.Error(),
	})
}

// expireRound advances the auction only if roundID is still the current
// round. A manual Advance that raced the timer has already closed this
// round and opened the next one; the stale callback must not close it.
func (o *Orchestrator) expireRound(ctx context.Context, auctionID, roundID string) error {
	state, err := o.state(auctionID)
	if err != nil {
		return err
	}

	if !state.mu.TryLock() {
		return fmt.Errorf("orchestrator: expire round %s: %w", roundID, auctionerrors.ErrConcurrentAdvance)
	}
	defer state.mu.Unlock()

	if state.current == nil || state.current.ID() != roundID {
		return nil
	}
	_, err = o.advanceLocked(ctx, state)
	return err
}

func (o *Orchestrator) state(auctionID string) (*auctionState, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	state, ok := o.auctions[auctionID]
	if !ok {
		return nil, fmt.Errorf("orchestrator: auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return state, nil
}
