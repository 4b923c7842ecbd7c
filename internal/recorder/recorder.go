package recorder

import (
	"context"
	"errors"
	"fmt"

	"gift-auction/internal/auctionerrors"
	"gift-auction/internal/catalog"
	"gift-auction/internal/models"
	"gift-auction/internal/round"
	"gift-auction/internal/wallet"
	"gift-auction/utils"
)

// Recorder turns a round settlement into permanent state: committed wallet
// debits and live ownership records. It is the only path by which bidding
// mutates ownership or wallet state.
type Recorder struct {
	ledger  wallet.Ledger
	catalog catalog.Store
}

// NewRecorder creates a new ownership recorder instance
func NewRecorder(ledger wallet.Ledger, cat catalog.Store) *Recorder {
	return &Recorder{ledger: ledger, catalog: cat}
}

// Settle applies a settlement. Each gift is all-or-nothing: the winner's
// reservation is committed and the ownership recorded, or neither happens.
// A failure on one gift does not block the others; the joined error covers
// every failed gift so the caller can retry the batch.
//
// Retries are idempotent: the ownership id is the winning bid id, so a
// gift that already carries its ownership record is skipped, and a
// missing reservation means a previous attempt already committed the
// debit, leaving only the ownership write to redo.
func (r *Recorder) Settle(ctx context.Context, s round.Settlement) ([]models.Ownership, error) {
	ownerships := make([]models.Ownership, 0, len(s.Winners))
	var errs []error

	for _, w := range s.Winners {
		o, err := r.settleGift(ctx, s, w)
		if err != nil {
			utils.Error("gift settlement failed", map[string]any{
				"round_id": s.RoundID,
				"gift_id":  w.GiftID,
				"user_id":  w.UserID,
				"error":    err.Error(),
			})
			errs = append(errs, err)
			continue
		}
		ownerships = append(ownerships, o)
	}

	return ownerships, errors.Join(errs...)
}

// Replay re-applies journaled settlements after a restart. Settlement
// application is idempotent: gifts whose ownership survived are skipped,
// and gifts whose wallet debit was committed but whose ownership record
// was lost with process state get it rewritten from the journal. Returns
// the joined errors of every settlement that could not be applied.
func (r *Recorder) Replay(ctx context.Context, settlements []round.Settlement) error {
	var errs []error
	for _, s := range settlements {
		if _, err := r.Settle(ctx, s); err != nil {
			errs = append(errs, fmt.Errorf("recorder: replay settlement of round %s: %w", s.RoundID, err))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	if len(settlements) > 0 {
		utils.Info("settlement journal replayed", map[string]any{"settlements": len(settlements)})
	}
	return nil
}

func (r *Recorder) settleGift(ctx context.Context, s round.Settlement, w round.Winner) (models.Ownership, error) {
	if existing, err := r.catalog.OwnershipOf(w.GiftID); err == nil {
		if existing.OwnershipID == w.BidID {
			// Previous settlement attempt already applied this gift.
			return existing, nil
		}
		return models.Ownership{}, fmt.Errorf("recorder: settle gift %s: %w", w.GiftID, auctionerrors.ErrGiftAlreadyOwned)
	}

	err := r.ledger.Commit(ctx, w.Reservation)
	if errors.Is(err, auctionerrors.ErrReservationNotFound) {
		// A winner's reservation is only ever consumed by its commit, so a
		// missing reservation means a previous attempt committed the debit
		// and stopped before recording ownership. Finish the apply.
		utils.Warn("winning reservation already committed", map[string]any{
			"round_id": s.RoundID,
			"gift_id":  w.GiftID,
			"bid_id":   w.BidID,
		})
	} else if err != nil {
		return models.Ownership{}, fmt.Errorf("recorder: commit winning reservation for gift %s: %w", w.GiftID, err)
	}

	o := models.Ownership{
		OwnershipID:   w.BidID,
		GiftID:        w.GiftID,
		OwnerID:       w.UserID,
		AcquiredPrice: w.Amount,
		AcquiredAt:    s.ClosedAt,
	}
	if err := r.catalog.RecordOwnership(o); err != nil {
		return models.Ownership{}, fmt.Errorf("recorder: record ownership of gift %s: %w", w.GiftID, err)
	}

	return o, nil
}
