package orchestrator

import (
	"context"

	"gift-auction/internal/models"
	"gift-auction/utils"
)

// Read/write facade consumed by the HTTP layer. Everything here delegates
// to the core components; no auction state lives in the handlers.

// PlaceBid submits a bid into the round's bid book and journals it when
// an archive is configured.
func (o *Orchestrator) PlaceBid(ctx context.Context, roundID, userID, giftID string, amount int64) (models.Bid, error) {
	bid, err := o.engine.Submit(ctx, roundID, userID, giftID, amount)
	if err != nil {
		return models.Bid{}, err
	}

	if o.archive != nil {
		// The bid is already accepted; journal failures must not unwind it.
		if err := o.archive.SaveBid(ctx, bid); err != nil {
			utils.Error("bid journal write failed", map[string]any{
				"bid_id": bid.BidID,
				"error":  err.Error(),
			})
		}
	}
	return bid, nil
}

// AuctionStatus returns the auction with its current round and per-gift
// leaders.
func (o *Orchestrator) AuctionStatus(ctx context.Context, auctionID string) (Status, error) {
	state, err := o.state(auctionID)
	if err != nil {
		return Status{}, err
	}

	state.mu.Lock()
	auction := state.auction
	current := state.current
	state.mu.Unlock()

	status := Status{Auction: auction}
	if current != nil {
		snap := current.Snapshot()
		status.Round = &snap
		status.Leaders = current.Leaders()
	}

	remaining, err := o.catalog.TotalRemaining(auction.CollectionID)
	if err != nil {
		return Status{}, err
	}
	status.Remaining = remaining
	return status, nil
}

// RoundStatus returns a round snapshot with its current leaders.
func (o *Orchestrator) RoundStatus(ctx context.Context, roundID string) (models.Round, map[string]models.Bid, error) {
	r, err := o.engine.Get(roundID)
	if err != nil {
		return models.Round{}, nil, err
	}
	return r.Snapshot(), r.Leaders(), nil
}

// BidsForRound returns the round's accepted bids in submission order.
func (o *Orchestrator) BidsForRound(ctx context.Context, roundID string) ([]models.Bid, error) {
	r, err := o.engine.Get(roundID)
	if err != nil {
		return nil, err
	}
	return r.Bids(), nil
}

// WalletBalance returns a user's balance snapshot.
func (o *Orchestrator) WalletBalance(ctx context.Context, userID string) (models.Wallet, error) {
	return o.ledger.Balance(ctx, userID)
}

// Deposit credits a user's custodial balance.
func (o *Orchestrator) Deposit(ctx context.Context, userID string, amount int64) (models.Wallet, error) {
	return o.ledger.Deposit(ctx, userID, amount)
}

// CollectionGifts lists a collection's gifts in mint order.
func (o *Orchestrator) CollectionGifts(ctx context.Context, collectionID string) ([]models.Gift, error) {
	return o.catalog.GiftsOf(collectionID)
}

// GiftsByOwner lists the gifts a user has won.
func (o *Orchestrator) GiftsByOwner(ctx context.Context, ownerID string) ([]models.Gift, error) {
	return o.catalog.GiftsByOwner(ownerID)
}
