package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"gift-auction/internal/auctionerrors"
	"gift-auction/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain errors to HTTP status code and message.
// Rejections keep their specific kind so clients can distinguish "you were
// outbid" from "you can't afford this" from "the round already ended".
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrCollectionNotFound),
		errors.Is(err, auctionerrors.ErrAuctionNotFound),
		errors.Is(err, auctionerrors.ErrRoundNotFound),
		errors.Is(err, auctionerrors.ErrGiftNotFound),
		errors.Is(err, auctionerrors.ErrWalletNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, auctionerrors.ErrInvalidBid):
		return http.StatusBadRequest, "invalid request"
	case errors.Is(err, auctionerrors.ErrInvalidGift):
		return http.StatusUnprocessableEntity, "gift is not contested in this round"
	case errors.Is(err, auctionerrors.ErrBelowCurrentLeader):
		return http.StatusConflict, "bid does not exceed the current leader"
	case errors.Is(err, auctionerrors.ErrRoundNotActive):
		return http.StatusConflict, "round is not accepting bids"
	case errors.Is(err, auctionerrors.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity, "insufficient funds"
	case errors.Is(err, auctionerrors.ErrAuctionAlreadyActive):
		return http.StatusConflict, "collection already has an active auction"
	case errors.Is(err, auctionerrors.ErrNoInventoryRemaining):
		return http.StatusUnprocessableEntity, "no unowned gifts remain"
	case errors.Is(err, auctionerrors.ErrConcurrentAdvance):
		return http.StatusConflict, "auction advance already in progress"
	case errors.Is(err, auctionerrors.ErrPersistenceFailure):
		return http.StatusInternalServerError, "settlement could not be persisted"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// RejectionReason labels a bid error for metrics.
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, auctionerrors.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, auctionerrors.ErrBelowCurrentLeader):
		return "below_leader"
	case errors.Is(err, auctionerrors.ErrRoundNotActive):
		return "round_not_active"
	case errors.Is(err, auctionerrors.ErrInvalidGift):
		return "invalid_gift"
	case errors.Is(err, auctionerrors.ErrRoundNotFound):
		return "round_not_found"
	default:
		return "invalid"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
