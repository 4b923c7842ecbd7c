package main

import (
	"context"
	"fmt"
	"os"

	"gift-auction/internal/catalog"
	"gift-auction/internal/config"
	"gift-auction/internal/models"
	"gift-auction/internal/notify"
	"gift-auction/internal/orchestrator"
	"gift-auction/internal/recorder"
	"gift-auction/internal/round"
	"gift-auction/internal/server"
	"gift-auction/internal/store"
	"gift-auction/internal/wallet"
	"gift-auction/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	var ledger wallet.Ledger
	var archive orchestrator.Archive
	var pg *store.Store

	if cfg.DatabaseURL != "" {
		pg, err = store.NewStore(cfg.DatabaseURL)
		if err != nil {
			utils.Fatal("failed to connect to database", map[string]any{"error": err.Error()})
		}
		defer pg.Close()
		if err := pg.InitSchema(context.Background()); err != nil {
			utils.Fatal("failed to init schema", map[string]any{"error": err.Error()})
		}
		ledger = pg
		archive = pg
	} else {
		ledger = wallet.NewMemoryLedger()
	}

	cat := catalog.NewMemoryCatalog()
	engine := round.NewEngine(ledger)
	rec := recorder.NewRecorder(ledger, cat)

	var notifier notify.Notifier = notify.LogNotifier{}
	if cfg.WebhookURL != "" {
		notifier = notify.NewWebhookNotifier(cfg.WebhookURL)
	}

	orch := orchestrator.New(cat, engine, rec, ledger, notifier, archive)

	if !cfg.IsProduction() {
		seedDemoCollection(cat)
	}

	if pg != nil {
		// Ownership records live in process memory; rebuild them from the
		// settlement journal so already-paid-for gifts are not resold.
		settlements, err := pg.LoadSettlements(context.Background())
		if err != nil {
			utils.Fatal("failed to load settlement journal", map[string]any{"error": err.Error()})
		}
		if err := rec.Replay(context.Background(), settlements); err != nil {
			// Gifts the catalog no longer carries cannot be re-owned; the
			// wallet side is already durable, so start anyway.
			utils.Warn("settlement journal replay incomplete", map[string]any{"error": err.Error()})
		}
	}

	router := server.SetupRouter(orch, cfg.RoundDuration)

	addr := ":" + cfg.Port
	fmt.Printf("Starting gift auction server on %s...\n", addr)
	if err := router.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// seedDemoCollection mints a small collection so the API is usable out of
// the box in development.
func seedDemoCollection(cat *catalog.MemoryCatalog) {
	cat.AddCollection(models.Collection{
		CollectionID: "col-demo",
		Title:        "Demo Collection",
		TotalAmount:  3,
	})

	gifts := []models.Gift{
		{GiftID: "gift1", Emoji: "🎁", Label: "Gift Box", CollectionID: "col-demo"},
		{GiftID: "gift2", Emoji: "🧸", Label: "Teddy Bear", CollectionID: "col-demo"},
		{GiftID: "gift3", Emoji: "💎", Label: "Diamond", CollectionID: "col-demo"},
	}

	for _, gift := range gifts {
		if err := cat.MintGift(gift); err != nil {
			utils.Warn("failed to seed gift", map[string]any{"gift_id": gift.GiftID, "error": err.Error()})
		}
	}
}
