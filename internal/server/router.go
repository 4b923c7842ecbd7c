package server

import (
	"time"

	"gift-auction/internal/orchestrator"
	handler "gift-auction/services/auction/handler"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(orch *orchestrator.Orchestrator, defaultRoundDuration time.Duration) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	auctionHandler := handler.NewAuctionHandler(orch, defaultRoundDuration)

	bids := router.Group("/bids")
	{
		bids.POST("", auctionHandler.PlaceBidHandler)
	}

	auctions := router.Group("/auctions")
	{
		auctions.POST("", auctionHandler.StartAuctionHandler)
		auctions.GET("/:auction_id", auctionHandler.AuctionStatusHandler)
		auctions.POST("/:auction_id/advance", auctionHandler.AdvanceAuctionHandler)
	}

	rounds := router.Group("/rounds")
	{
		rounds.GET("/:round_id", auctionHandler.RoundStatusHandler)
		rounds.GET("/:round_id/bids", auctionHandler.RoundBidsHandler)
	}

	wallets := router.Group("/wallets")
	{
		wallets.GET("/:user_id", auctionHandler.WalletBalanceHandler)
		wallets.POST("/:user_id/deposits", auctionHandler.DepositHandler)
	}

	collections := router.Group("/collections")
	{
		collections.GET("/:collection_id/gifts", auctionHandler.CollectionGiftsHandler)
	}

	users := router.Group("/users")
	{
		users.GET("/:user_id/gifts", auctionHandler.UserGiftsHandler)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
