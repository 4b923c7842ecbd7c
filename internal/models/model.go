package models

import "time"

// Collection is a themed set of gifts sold together through one auction.
type Collection struct {
	CollectionID string `json:"collection_id"`
	Title        string `json:"title"`
	TotalAmount  int    `json:"total_amount"`
	MintedAmount int    `json:"minted_amount"`
}

// Gift represents a single auctionable item. Its collection membership is
// fixed at mint time and never changes.
type Gift struct {
	GiftID       string `json:"gift_id"`
	Emoji        string `json:"emoji"`
	Label        string `json:"label"`
	CollectionID string `json:"collection_id"`
}

// Auction statuses
const (
	AuctionActive   = "active"
	AuctionFinished = "finished"
)

// Auction is the sell-through process for one collection's gifts.
type Auction struct {
	AuctionID     string        `json:"auction_id"`
	CollectionID  string        `json:"collection_id"`
	RoundDuration time.Duration `json:"round_duration"`
	Status        string        `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
}

// Round statuses as exposed to clients. The engine tracks a finer-grained
// state machine internally.
const (
	RoundActive   = "active"
	RoundFinished = "finished"
)

// Round is a timed bidding window contesting a subset of a collection's
// remaining gifts.
type Round struct {
	RoundID     string     `json:"round_id"`
	AuctionID   string     `json:"auction_id"`
	RoundNumber int        `json:"round_number"`
	GiftIDs     []string   `json:"gift_ids"`
	Status      string     `json:"status"`
	StartedAt   time.Time  `json:"started_at"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`
}

// Bid represents a user's accepted offer for a gift within a round.
// Amounts are integer currency units (no floats in the money path).
type Bid struct {
	BidID     string    `json:"bid_id"`
	RoundID   string    `json:"round_id"`
	GiftID    string    `json:"gift_id"`
	UserID    string    `json:"user_id"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// Ownership is the permanent record that a gift was won at a given price.
// A gift has at most one live ownership record.
type Ownership struct {
	OwnershipID   string    `json:"ownership_id"`
	GiftID        string    `json:"gift_id"`
	OwnerID       string    `json:"owner_id"`
	AcquiredPrice int64     `json:"acquired_price"`
	AcquiredAt    time.Time `json:"acquired_at"`
}

// Wallet is a user's custodial balance snapshot. Reserved funds back
// standing bids; Available is what further bids may draw on.
type Wallet struct {
	UserID    string `json:"user_id"`
	Balance   int64  `json:"balance"`
	Reserved  int64  `json:"reserved"`
	Available int64  `json:"available"`
}
