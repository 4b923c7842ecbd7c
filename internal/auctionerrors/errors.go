package auctionerrors

import "errors"

// Lookup errors
var (
	ErrCollectionNotFound = errors.New("collection not found")
	ErrAuctionNotFound    = errors.New("auction not found")
	ErrRoundNotFound      = errors.New("round not found")
	ErrGiftNotFound       = errors.New("gift not found")
	ErrWalletNotFound     = errors.New("wallet not found")
)

// Bid rejection errors. These are returned synchronously to the submitter
// and never retried automatically.
var (
	ErrInvalidBid         = errors.New("invalid bid")
	ErrInvalidGift        = errors.New("gift is not contested in this round")
	ErrBelowCurrentLeader = errors.New("bid does not exceed the current leading bid")
	ErrRoundNotActive     = errors.New("round is not accepting bids")
	ErrInsufficientFunds  = errors.New("insufficient funds")
)

// Lifecycle errors
var (
	ErrAuctionAlreadyActive  = errors.New("collection already has an active auction")
	ErrNoInventoryRemaining  = errors.New("no unowned gifts remain in collection")
	ErrConcurrentAdvance     = errors.New("auction advance already in progress")
	ErrEmptyRound            = errors.New("round must contest at least one gift")
	ErrReservationNotFound   = errors.New("reservation not found")
	ErrGiftAlreadyOwned      = errors.New("gift already has a live ownership record")
	ErrCollectionSupplyLimit = errors.New("collection minted amount would exceed total supply")
)

// ErrPersistenceFailure wraps storage-layer failures. Settlement treats it
// as fatal for the attempt and retries the batch as a whole.
var ErrPersistenceFailure = errors.New("persistence failure")
