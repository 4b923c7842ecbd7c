package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"gift-auction/internal/auctionerrors"
	"gift-auction/internal/models"
	"gift-auction/internal/round"
	"gift-auction/internal/wallet"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) (*Store, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	return NewStoreWithDB(mock), mock
}

func TestStore_Deposit(t *testing.T) {
	s, mock := setupStore(t)
	ctx := context.Background()

	rows := pgxmock.NewRows([]string{"balance", "reserved"}).AddRow(int64(150), int64(20))
	mock.ExpectQuery(`INSERT INTO wallets`).
		WithArgs("user1", int64(50)).
		WillReturnRows(rows)

	w, err := s.Deposit(ctx, "user1", 50)

	require.NoError(t, err)
	assert.Equal(t, int64(150), w.Balance)
	assert.Equal(t, int64(20), w.Reserved)
	assert.Equal(t, int64(130), w.Available)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Deposit_InvalidAmount(t *testing.T) {
	s, _ := setupStore(t)

	_, err := s.Deposit(context.Background(), "user1", 0)
	require.ErrorIs(t, err, auctionerrors.ErrInvalidBid)
}

func TestStore_Balance_NotFound(t *testing.T) {
	s, mock := setupStore(t)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT balance, reserved FROM wallets`).
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.Balance(ctx, "ghost")
	require.ErrorIs(t, err, auctionerrors.ErrWalletNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Reserve(t *testing.T) {
	s, mock := setupStore(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT balance, reserved FROM wallets`).
		WithArgs("user1").
		WillReturnRows(pgxmock.NewRows([]string{"balance", "reserved"}).AddRow(int64(100), int64(30)))
	mock.ExpectExec(`INSERT INTO reservations`).
		WithArgs(pgxmock.AnyArg(), "user1", int64(60)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`UPDATE wallets SET reserved = reserved \+`).
		WithArgs(int64(60), "user1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	res, err := s.Reserve(ctx, "user1", 60)

	require.NoError(t, err)
	assert.NotEmpty(t, res.ReservationID)
	assert.Equal(t, "user1", res.UserID)
	assert.Equal(t, int64(60), res.Amount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Reserve_InsufficientFunds(t *testing.T) {
	s, mock := setupStore(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT balance, reserved FROM wallets`).
		WithArgs("user1").
		WillReturnRows(pgxmock.NewRows([]string{"balance", "reserved"}).AddRow(int64(100), int64(60)))
	mock.ExpectRollback()

	_, err := s.Reserve(ctx, "user1", 50)

	require.ErrorIs(t, err, auctionerrors.ErrInsufficientFunds)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Commit(t *testing.T) {
	s, mock := setupStore(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(`DELETE FROM reservations`).
		WithArgs("res1").
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "amount"}).AddRow("user1", int64(60)))
	mock.ExpectExec(`UPDATE wallets SET balance = balance -`).
		WithArgs(int64(60), "user1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err := s.Commit(ctx, wallet.Reservation{ReservationID: "res1", UserID: "user1", Amount: 60})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Commit_ReservationGone(t *testing.T) {
	s, mock := setupStore(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(`DELETE FROM reservations`).
		WithArgs("res1").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	err := s.Commit(ctx, wallet.Reservation{ReservationID: "res1", UserID: "user1", Amount: 60})

	require.ErrorIs(t, err, auctionerrors.ErrReservationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Release(t *testing.T) {
	s, mock := setupStore(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(`DELETE FROM reservations`).
		WithArgs("res1").
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "amount"}).AddRow("user1", int64(60)))
	mock.ExpectExec(`UPDATE wallets SET reserved = reserved -`).
		WithArgs(int64(60), "user1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err := s.Release(ctx, wallet.Reservation{ReservationID: "res1", UserID: "user1", Amount: 60})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_SaveBid(t *testing.T) {
	s, mock := setupStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	bid := models.Bid{BidID: "bid1", RoundID: "round1", GiftID: "gift1", UserID: "user1", Amount: 70, CreatedAt: now}

	mock.ExpectExec(`INSERT INTO bids`).
		WithArgs("bid1", "round1", "gift1", "user1", int64(70), now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, s.SaveBid(ctx, bid))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_SaveSettlement(t *testing.T) {
	s, mock := setupStore(t)
	ctx := context.Background()

	settlement := round.Settlement{
		RoundID:     "round1",
		AuctionID:   "auction1",
		RoundNumber: 1,
		ClosedAt:    time.Now().UTC(),
		Winners: []round.Winner{
			{GiftID: "gift1", UserID: "user1", Amount: 70, BidID: "bid1"},
		},
	}

	mock.ExpectExec(`INSERT INTO settlements`).
		WithArgs("round1", pgxmock.AnyArg(), settlement.ClosedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, s.SaveSettlement(ctx, settlement))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_LoadSettlements(t *testing.T) {
	s, mock := setupStore(t)
	ctx := context.Background()

	first := round.Settlement{
		RoundID:     "round1",
		AuctionID:   "auction1",
		RoundNumber: 1,
		ClosedAt:    time.Now().UTC().Add(-time.Minute),
		Winners: []round.Winner{
			{GiftID: "gift1", UserID: "user1", Amount: 70, BidID: "bid1",
				Reservation: wallet.Reservation{ReservationID: "res1", UserID: "user1", Amount: 70}},
		},
		Unsold: []string{"gift2"},
	}
	second := round.Settlement{RoundID: "round2", AuctionID: "auction1", RoundNumber: 2, ClosedAt: time.Now().UTC()}

	payload1, err := json.Marshal(first)
	require.NoError(t, err)
	payload2, err := json.Marshal(second)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT payload FROM settlements`).
		WillReturnRows(pgxmock.NewRows([]string{"payload"}).AddRow(payload1).AddRow(payload2))

	settlements, err := s.LoadSettlements(ctx)

	require.NoError(t, err)
	require.Len(t, settlements, 2)
	assert.Equal(t, "round1", settlements[0].RoundID)
	assert.Equal(t, []string{"gift2"}, settlements[0].Unsold)
	require.Len(t, settlements[0].Winners, 1)
	assert.Equal(t, "res1", settlements[0].Winners[0].Reservation.ReservationID)
	assert.Equal(t, "round2", settlements[1].RoundID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_LoadSettlements_Empty(t *testing.T) {
	s, mock := setupStore(t)

	mock.ExpectQuery(`SELECT payload FROM settlements`).
		WillReturnRows(pgxmock.NewRows([]string{"payload"}))

	settlements, err := s.LoadSettlements(context.Background())

	require.NoError(t, err)
	assert.Empty(t, settlements)
	assert.NoError(t, mock.ExpectationsWereMet())
}
