package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"gift-auction/internal/models"
	"gift-auction/internal/orchestrator"
	"gift-auction/services/auction/helpers"
	"gift-auction/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics
var (
	bidsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auction_bids_total",
		Help: "Bid submissions by outcome",
	}, []string{"result"})

	advanceLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "auction_advance_duration_seconds",
		Help:    "Latency of round close and settlement",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"outcome"})
)

type AuctionServiceInterface interface {
	PlaceBid(ctx context.Context, roundID, userID, giftID string, amount int64) (models.Bid, error)
	StartAuction(ctx context.Context, collectionID string, roundDuration time.Duration) (models.Auction, error)
	Advance(ctx context.Context, auctionID string) (orchestrator.AdvanceResult, error)
	AuctionStatus(ctx context.Context, auctionID string) (orchestrator.Status, error)
	RoundStatus(ctx context.Context, roundID string) (models.Round, map[string]models.Bid, error)
	BidsForRound(ctx context.Context, roundID string) ([]models.Bid, error)
	WalletBalance(ctx context.Context, userID string) (models.Wallet, error)
	Deposit(ctx context.Context, userID string, amount int64) (models.Wallet, error)
	CollectionGifts(ctx context.Context, collectionID string) ([]models.Gift, error)
	GiftsByOwner(ctx context.Context, ownerID string) ([]models.Gift, error)
}

type AuctionHandler struct {
	service              AuctionServiceInterface
	defaultRoundDuration time.Duration
}

func NewAuctionHandler(service AuctionServiceInterface, defaultRoundDuration time.Duration) *AuctionHandler {
	return &AuctionHandler{service: service, defaultRoundDuration: defaultRoundDuration}
}

// PlaceBidHandler handles POST /bids
func (h *AuctionHandler) PlaceBidHandler(c *gin.Context) {
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	bid, err := h.service.PlaceBid(c.Request.Context(), req.RoundID, req.UserID, req.GiftID, req.Amount)
	if err != nil {
		bidsTotal.WithLabelValues(helpers.RejectionReason(err)).Inc()
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("PlaceBidHandler: bid rejected", map[string]any{
			"round_id": req.RoundID,
			"gift_id":  req.GiftID,
			"user_id":  req.UserID,
			"error":    err.Error(),
		})
		return
	}

	bidsTotal.WithLabelValues("accepted").Inc()
	utils.JSONResponse(c, http.StatusCreated, bidResponse(bid), "bid accepted")
	helpers.LogSuccess("PlaceBidHandler", "bid accepted", map[string]any{
		"bid_id":  bid.BidID,
		"gift_id": bid.GiftID,
		"user_id": bid.UserID,
		"amount":  bid.Amount,
	})
}

// StartAuctionHandler handles POST /auctions
func (h *AuctionHandler) StartAuctionHandler(c *gin.Context) {
	var req helpers.StartAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "StartAuctionHandler", err)
		return
	}

	auction, err := h.service.StartAuction(c.Request.Context(), req.CollectionID, req.RoundDuration(h.defaultRoundDuration))
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("StartAuctionHandler: failed to start auction", map[string]any{
			"collection_id": req.CollectionID,
			"error":         err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, auction, "auction started")
	helpers.LogSuccess("StartAuctionHandler", "auction started", map[string]any{
		"auction_id":    auction.AuctionID,
		"collection_id": auction.CollectionID,
	})
}

// AdvanceAuctionHandler handles POST /auctions/:auction_id/advance.
// The round timer drives advancement normally; this is the manual-close
// trigger, safe to race with the timer.
func (h *AuctionHandler) AdvanceAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	timer := prometheus.NewTimer(advanceLatency.WithLabelValues("manual"))
	result, err := h.service.Advance(c.Request.Context(), auctionID)
	timer.ObserveDuration()

	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("AdvanceAuctionHandler: advance failed", map[string]any{
			"auction_id": auctionID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, result, "auction advanced")
	helpers.LogSuccess("AdvanceAuctionHandler", "auction advanced", map[string]any{
		"auction_id": auctionID,
		"finished":   result.Finished,
		"settled":    len(result.Settled),
	})
}

// AuctionStatusHandler handles GET /auctions/:auction_id
func (h *AuctionHandler) AuctionStatusHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	status, err := h.service.AuctionStatus(c.Request.Context(), auctionID)
	if err != nil {
		code, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, code, fmt.Errorf("%s: %w", message, err), message)
		return
	}

	utils.JSONResponse(c, http.StatusOK, status, "auction status retrieved")
}

// RoundStatusHandler handles GET /rounds/:round_id
func (h *AuctionHandler) RoundStatusHandler(c *gin.Context) {
	roundID := c.Param("round_id")

	round, leaders, err := h.service.RoundStatus(c.Request.Context(), roundID)
	if err != nil {
		code, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, code, fmt.Errorf("%s: %w", message, err), message)
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"round": round, "leaders": leaders}, "round status retrieved")
}

// RoundBidsHandler handles GET /rounds/:round_id/bids
func (h *AuctionHandler) RoundBidsHandler(c *gin.Context) {
	roundID := c.Param("round_id")

	bids, err := h.service.BidsForRound(c.Request.Context(), roundID)
	if err != nil {
		code, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, code, fmt.Errorf("%s: %w", message, err), message)
		return
	}

	if bids == nil {
		bids = []models.Bid{}
	}
	utils.JSONResponse(c, http.StatusOK, bids, "bids retrieved")
}

// WalletBalanceHandler handles GET /wallets/:user_id
func (h *AuctionHandler) WalletBalanceHandler(c *gin.Context) {
	userID := c.Param("user_id")

	w, err := h.service.WalletBalance(c.Request.Context(), userID)
	if err != nil {
		code, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, code, fmt.Errorf("%s: %w", message, err), message)
		return
	}

	utils.JSONResponse(c, http.StatusOK, w, "wallet retrieved")
}

// DepositHandler handles POST /wallets/:user_id/deposits
func (h *AuctionHandler) DepositHandler(c *gin.Context) {
	userID := c.Param("user_id")

	var req helpers.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "DepositHandler", err)
		return
	}

	w, err := h.service.Deposit(c.Request.Context(), userID, req.Amount)
	if err != nil {
		code, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, code, fmt.Errorf("%s: %w", message, err), message)
		return
	}

	utils.JSONResponse(c, http.StatusOK, w, "deposit applied")
	helpers.LogSuccess("DepositHandler", "deposit applied", map[string]any{
		"user_id": userID,
		"amount":  req.Amount,
	})
}

// CollectionGiftsHandler handles GET /collections/:collection_id/gifts
func (h *AuctionHandler) CollectionGiftsHandler(c *gin.Context) {
	collectionID := c.Param("collection_id")

	gifts, err := h.service.CollectionGifts(c.Request.Context(), collectionID)
	if err != nil {
		code, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, code, fmt.Errorf("%s: %w", message, err), message)
		return
	}

	if gifts == nil {
		gifts = []models.Gift{}
	}
	utils.JSONResponse(c, http.StatusOK, gifts, "gifts retrieved")
}

// UserGiftsHandler handles GET /users/:user_id/gifts
func (h *AuctionHandler) UserGiftsHandler(c *gin.Context) {
	userID := c.Param("user_id")

	gifts, err := h.service.GiftsByOwner(c.Request.Context(), userID)
	if err != nil {
		code, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, code, fmt.Errorf("%s: %w", message, err), message)
		return
	}

	if gifts == nil {
		gifts = []models.Gift{}
	}
	utils.JSONResponse(c, http.StatusOK, gifts, "gifts retrieved")
}

func bidResponse(bid models.Bid) helpers.BidResponse {
	return helpers.BidResponse{
		BidID:     bid.BidID,
		RoundID:   bid.RoundID,
		GiftID:    bid.GiftID,
		UserID:    bid.UserID,
		Amount:    bid.Amount,
		CreatedAt: bid.CreatedAt.UTC().Format(time.RFC3339),
	}
}
