package helpers

import "time"

// Request/Response DTOs
type PlaceBidRequest struct {
	RoundID string `json:"round_id" binding:"required"`
	UserID  string `json:"user_id" binding:"required"`
	GiftID  string `json:"gift_id" binding:"required"`
	Amount  int64  `json:"amount" binding:"required,gt=0"`
}

type BidResponse struct {
	BidID     string `json:"bid_id"`
	RoundID   string `json:"round_id"`
	GiftID    string `json:"gift_id"`
	UserID    string `json:"user_id"`
	Amount    int64  `json:"amount"`
	CreatedAt string `json:"created_at"`
}

type StartAuctionRequest struct {
	CollectionID string `json:"collection_id" binding:"required"`
	// RoundDurationSeconds falls back to the configured default when zero.
	RoundDurationSeconds int `json:"round_duration_seconds" binding:"omitempty,gt=0"`
}

func (r StartAuctionRequest) RoundDuration(fallback time.Duration) time.Duration {
	if r.RoundDurationSeconds > 0 {
		return time.Duration(r.RoundDurationSeconds) * time.Second
	}
	return fallback
}

type DepositRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}
