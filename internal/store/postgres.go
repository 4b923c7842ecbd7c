package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"gift-auction/internal/auctionerrors"
	"gift-auction/internal/models"
	"gift-auction/internal/round"
	"gift-auction/internal/wallet"
	"gift-auction/utils"
)

// DB is the pgx surface the store needs. *pgxpool.Pool satisfies it, as
// does pgxmock's pool in tests.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// Store is the postgres persistence adapter. It implements wallet.Ledger
// with per-row locking so reservations can never overspend a balance, and
// the orchestrator's Archive for the bid/settlement journal.
type Store struct {
	db DB
}

// NewStore opens a pooled connection to connString.
func NewStore(connString string) (*Store, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("store: parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("store: create connection pool: %w", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("store: ping database: %w", err)
	}

	return &Store{db: pool}, nil
}

// NewStoreWithDB wraps an existing connection, used by tests.
func NewStoreWithDB(db DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() {
	s.db.Close()
}

// InitSchema creates the tables the adapter needs.
func (s *Store) InitSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS wallets (
			user_id  TEXT PRIMARY KEY,
			balance  BIGINT NOT NULL DEFAULT 0 CHECK (balance >= 0),
			reserved BIGINT NOT NULL DEFAULT 0 CHECK (reserved >= 0)
		);
		CREATE TABLE IF NOT EXISTS reservations (
			id      TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES wallets(user_id),
			amount  BIGINT NOT NULL CHECK (amount > 0)
		);
		CREATE TABLE IF NOT EXISTS bids (
			id         TEXT PRIMARY KEY,
			round_id   TEXT NOT NULL,
			gift_id    TEXT NOT NULL,
			user_id    TEXT NOT NULL,
			amount     BIGINT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS settlements (
			round_id  TEXT PRIMARY KEY,
			payload   JSONB NOT NULL,
			closed_at TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("store: init schema: %w", err)
	}
	return nil
}

// Deposit credits a user's balance, creating the wallet row on first use.
func (s *Store) Deposit(ctx context.Context, userID string, amount int64) (models.Wallet, error) {
	if userID == "" || amount <= 0 {
		return models.Wallet{}, fmt.Errorf("store: deposit for user %q: %w", userID, auctionerrors.ErrInvalidBid)
	}

	var balance, reserved int64
	err := s.db.QueryRow(ctx,
		`INSERT INTO wallets (user_id, balance) VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET balance = wallets.balance + $2
		 RETURNING balance, reserved`,
		userID, amount).Scan(&balance, &reserved)
	if err != nil {
		return models.Wallet{}, fmt.Errorf("store: deposit for user %s: %w", userID, err)
	}

	return walletSnapshot(userID, balance, reserved), nil
}

// Balance returns the user's current balance snapshot.
func (s *Store) Balance(ctx context.Context, userID string) (models.Wallet, error) {
	var balance, reserved int64
	err := s.db.QueryRow(ctx,
		"SELECT balance, reserved FROM wallets WHERE user_id = $1", userID).Scan(&balance, &reserved)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Wallet{}, fmt.Errorf("store: balance of user %s: %w", userID, auctionerrors.ErrWalletNotFound)
	}
	if err != nil {
		return models.Wallet{}, fmt.Errorf("store: balance of user %s: %w", userID, err)
	}

	return walletSnapshot(userID, balance, reserved), nil
}

// Reserve earmarks amount against the user's balance. The row lock makes
// the availability check and the reserved increment atomic per user.
func (s *Store) Reserve(ctx context.Context, userID string, amount int64) (wallet.Reservation, error) {
	if amount <= 0 {
		return wallet.Reservation{}, fmt.Errorf("store: reserve %d for user %s: %w", amount, userID, auctionerrors.ErrInvalidBid)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return wallet.Reservation{}, fmt.Errorf("store: tx begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var balance, reserved int64
	err = tx.QueryRow(ctx,
		"SELECT balance, reserved FROM wallets WHERE user_id = $1 FOR UPDATE", userID).Scan(&balance, &reserved)
	if errors.Is(err, pgx.ErrNoRows) {
		return wallet.Reservation{}, fmt.Errorf("store: reserve for user %s: %w", userID, auctionerrors.ErrWalletNotFound)
	}
	if err != nil {
		return wallet.Reservation{}, fmt.Errorf("store: lock wallet of user %s: %w", userID, err)
	}

	if amount > balance-reserved {
		return wallet.Reservation{}, fmt.Errorf("store: reserve %d for user %s with available %d: %w",
			amount, userID, balance-reserved, auctionerrors.ErrInsufficientFunds)
	}

	res := wallet.Reservation{
		ReservationID: utils.GenerateID(),
		UserID:        userID,
		Amount:        amount,
	}
	if _, err := tx.Exec(ctx,
		"INSERT INTO reservations (id, user_id, amount) VALUES ($1, $2, $3)",
		res.ReservationID, userID, amount); err != nil {
		return wallet.Reservation{}, fmt.Errorf("store: insert reservation: %w", err)
	}
	if _, err := tx.Exec(ctx,
		"UPDATE wallets SET reserved = reserved + $1 WHERE user_id = $2", amount, userID); err != nil {
		return wallet.Reservation{}, fmt.Errorf("store: update reserved: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return wallet.Reservation{}, fmt.Errorf("store: tx commit: %w", err)
	}
	return res, nil
}

// Commit converts a reservation into a permanent debit.
func (s *Store) Commit(ctx context.Context, res wallet.Reservation) error {
	return s.consumeReservation(ctx, res, true)
}

// Release returns reserved funds to availability.
func (s *Store) Release(ctx context.Context, res wallet.Reservation) error {
	return s.consumeReservation(ctx, res, false)
}

// consumeReservation removes a reservation row and adjusts the wallet:
// the reserved amount always drops, and the balance drops too when the
// reservation is being committed rather than released.
func (s *Store) consumeReservation(ctx context.Context, res wallet.Reservation, debit bool) error {
	op := "release"
	if debit {
		op = "commit"
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("store: tx begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var userID string
	var amount int64
	err = tx.QueryRow(ctx,
		"DELETE FROM reservations WHERE id = $1 RETURNING user_id, amount",
		res.ReservationID).Scan(&userID, &amount)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("store: %s reservation %s: %w", op, res.ReservationID, auctionerrors.ErrReservationNotFound)
	}
	if err != nil {
		return fmt.Errorf("store: %s reservation %s: %w", op, res.ReservationID, err)
	}

	query := "UPDATE wallets SET reserved = reserved - $1 WHERE user_id = $2"
	if debit {
		query = "UPDATE wallets SET balance = balance - $1, reserved = reserved - $1 WHERE user_id = $2"
	}
	if _, err := tx.Exec(ctx, query, amount, userID); err != nil {
		return fmt.Errorf("store: %s reservation %s: %w", op, res.ReservationID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("store: tx commit: %w", err)
	}
	return nil
}

// SaveBid journals an accepted bid.
func (s *Store) SaveBid(ctx context.Context, bid models.Bid) error {
	_, err := s.db.Exec(ctx,
		"INSERT INTO bids (id, round_id, gift_id, user_id, amount, created_at) VALUES ($1, $2, $3, $4, $5, $6)",
		bid.BidID, bid.RoundID, bid.GiftID, bid.UserID, bid.Amount, bid.CreatedAt)
	if err != nil {
		return fmt.Errorf("store: save bid %s: %w", bid.BidID, err)
	}
	return nil
}

// SaveSettlement journals a round settlement before it is applied.
// Writing the same round twice is a no-op, keeping settlement retries
// idempotent.
func (s *Store) SaveSettlement(ctx context.Context, settlement round.Settlement) error {
	payload, err := json.Marshal(settlement)
	if err != nil {
		return fmt.Errorf("store: marshal settlement of round %s: %w", settlement.RoundID, err)
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO settlements (round_id, payload, closed_at) VALUES ($1, $2, $3)
		 ON CONFLICT (round_id) DO NOTHING`,
		settlement.RoundID, payload, settlement.ClosedAt)
	if err != nil {
		return fmt.Errorf("store: save settlement of round %s: %w", settlement.RoundID, err)
	}
	return nil
}

// LoadSettlements returns every journaled settlement, oldest first. The
// orchestrator replays them through the recorder on startup so ownership
// lost with process state is rebuilt from the journal.
func (s *Store) LoadSettlements(ctx context.Context) ([]round.Settlement, error) {
	rows, err := s.db.Query(ctx, "SELECT payload FROM settlements ORDER BY closed_at")
	if err != nil {
		return nil, fmt.Errorf("store: load settlements: %w", err)
	}
	defer rows.Close()

	var settlements []round.Settlement
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("store: scan settlement: %w", err)
		}
		var settlement round.Settlement
		if err := json.Unmarshal(payload, &settlement); err != nil {
			return nil, fmt.Errorf("store: unmarshal settlement: %w", err)
		}
		settlements = append(settlements, settlement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: load settlements: %w", err)
	}
	return settlements, nil
}

func walletSnapshot(userID string, balance, reserved int64) models.Wallet {
	return models.Wallet{
		UserID:    userID,
		Balance:   balance,
		Reserved:  reserved,
		Available: balance - reserved,
	}
}
