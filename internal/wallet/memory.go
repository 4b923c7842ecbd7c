package wallet

import (
	"context"
	"fmt"
	"sync"

	"gift-auction/internal/auctionerrors"
	"gift-auction/internal/models"
	"gift-auction/utils"
)

// account is the per-user ledger state. Its mutex serializes all mutations
// for one user while operations on different users proceed in parallel.
type account struct {
	mu           sync.Mutex
	balance      int64
	reserved     int64
	reservations map[string]int64 // reservationID -> amount
}

func (a *account) available() int64 {
	return a.balance - a.reserved
}

// MemoryLedger is a concurrency-safe in-memory implementation of Ledger.
type MemoryLedger struct {
	mu       sync.RWMutex
	accounts map[string]*account
}

// NewMemoryLedger creates a new in-memory ledger instance
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		accounts: make(map[string]*account),
	}
}

// acct returns the account for userID, creating it on first use when
// create is set.
func (l *MemoryLedger) acct(userID string, create bool) (*account, bool) {
	l.mu.RLock()
	a, ok := l.accounts[userID]
	l.mu.RUnlock()
	if ok || !create {
		return a, ok
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if a, ok = l.accounts[userID]; ok {
		return a, true
	}
	a = &account{reservations: make(map[string]int64)}
	l.accounts[userID] = a
	return a, true
}

// Deposit credits a user's balance, creating the wallet on first deposit.
func (l *MemoryLedger) Deposit(_ context.Context, userID string, amount int64) (models.Wallet, error) {
	if userID == "" || amount <= 0 {
		return models.Wallet{}, fmt.Errorf("ledger: deposit for user %q: %w", userID, auctionerrors.ErrInvalidBid)
	}

	a, _ := l.acct(userID, true)
	a.mu.Lock()
	defer a.mu.Unlock()

	a.balance += amount
	return snapshot(userID, a), nil
}

// Balance returns the user's current balance snapshot.
func (l *MemoryLedger) Balance(_ context.Context, userID string) (models.Wallet, error) {
	a, ok := l.acct(userID, false)
	if !ok {
		return models.Wallet{}, fmt.Errorf("ledger: balance of user %s: %w", userID, auctionerrors.ErrWalletNotFound)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return snapshot(userID, a), nil
}

// Reserve earmarks amount against the user's available balance. The check
// and the mutation happen inside the account critical section, so
// concurrent reservations can never overspend the balance.
func (l *MemoryLedger) Reserve(_ context.Context, userID string, amount int64) (Reservation, error) {
	if amount <= 0 {
		return Reservation{}, fmt.Errorf("ledger: reserve %d for user %s: %w", amount, userID, auctionerrors.ErrInvalidBid)
	}

	a, ok := l.acct(userID, false)
	if !ok {
		return Reservation{}, fmt.Errorf("ledger: reserve for user %s: %w", userID, auctionerrors.ErrWalletNotFound)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if amount > a.available() {
		return Reservation{}, fmt.Errorf("ledger: reserve %d for user %s with available %d: %w",
			amount, userID, a.available(), auctionerrors.ErrInsufficientFunds)
	}

	res := Reservation{
		ReservationID: utils.GenerateID(),
		UserID:        userID,
		Amount:        amount,
	}
	a.reserved += amount
	a.reservations[res.ReservationID] = amount
	return res, nil
}

// Commit converts a reservation into a permanent debit. Committing a
// reservation that no longer exists returns ErrReservationNotFound, which
// lets settlement retries detect already-applied charges.
func (l *MemoryLedger) Commit(_ context.Context, res Reservation) error {
	a, ok := l.acct(res.UserID, false)
	if !ok {
		return fmt.Errorf("ledger: commit reservation %s: %w", res.ReservationID, auctionerrors.ErrWalletNotFound)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	amount, ok := a.reservations[res.ReservationID]
	if !ok {
		return fmt.Errorf("ledger: commit reservation %s: %w", res.ReservationID, auctionerrors.ErrReservationNotFound)
	}

	delete(a.reservations, res.ReservationID)
	a.reserved -= amount
	a.balance -= amount
	return nil
}

// Release returns reserved funds to availability. Releasing an unknown
// reservation is an error so double-releases surface in logs.
func (l *MemoryLedger) Release(_ context.Context, res Reservation) error {
	a, ok := l.acct(res.UserID, false)
	if !ok {
		return fmt.Errorf("ledger: release reservation %s: %w", res.ReservationID, auctionerrors.ErrWalletNotFound)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	amount, ok := a.reservations[res.ReservationID]
	if !ok {
		return fmt.Errorf("ledger: release reservation %s: %w", res.ReservationID, auctionerrors.ErrReservationNotFound)
	}

	delete(a.reservations, res.ReservationID)
	a.reserved -= amount
	return nil
}

func snapshot(userID string, a *account) models.Wallet {
	return models.Wallet{
		UserID:    userID,
		Balance:   a.balance,
		Reserved:  a.reserved,
		Available: a.available(),
	}
}
