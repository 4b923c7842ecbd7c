package wallet

import (
	"context"

	"gift-auction/internal/models"
)

// Reservation holds funds against a user's balance without debiting them.
// It is the only token the rest of the system may use to spend a user's
// money: Commit converts it into a permanent debit, Release returns the
// funds to availability.
type Reservation struct {
	ReservationID string `json:"reservation_id"`
	UserID        string `json:"user_id"`
	Amount        int64  `json:"amount"`
}

// Ledger is the single authority over wallet balances. All mutations are
// atomic per user; the sum of a user's outstanding reservations plus
// committed debits never exceeds what was credited to them.
type Ledger interface {
	Deposit(ctx context.Context, userID string, amount int64) (models.Wallet, error)
	Balance(ctx context.Context, userID string) (models.Wallet, error)
	Reserve(ctx context.Context, userID string, amount int64) (Reservation, error)
	Commit(ctx context.Context, res Reservation) error
	Release(ctx context.Context, res Reservation) error
}
