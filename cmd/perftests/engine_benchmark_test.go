package perftests

import (
	"context"
	"fmt"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	"gift-auction/internal/round"
	"gift-auction/internal/wallet"
)

// Benchmark 1: Submit - Isolated Gifts (Low Contention - Micro Benchmark)
func Benchmark_Submit_Isolated(b *testing.B) {
	ctx := context.Background()
	ledger := wallet.NewMemoryLedger()
	engine := round.NewEngine(ledger)

	gifts := make([]string, b.N)
	for i := 0; i < b.N; i++ {
		gifts[i] = fmt.Sprintf("gift_%d", i)
	}
	r, err := engine.Open("auction_bench", 1, gifts, time.Hour)
	if err != nil {
		b.Fatalf("failed to open round: %v", err)
	}

	for i := 0; i < b.N; i++ {
		if _, err := ledger.Deposit(ctx, fmt.Sprintf("user_%d", i), 1_000_000); err != nil {
			b.Fatalf("failed to fund user: %v", err)
		}
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		userID := fmt.Sprintf("user_%d", i)
		giftID := fmt.Sprintf("gift_%d", i)
		amount := int64(50 + rand.Intn(100))
		if _, err := engine.Submit(ctx, r.ID(), userID, giftID, amount); err != nil {
			b.Fatalf("failed to submit bid: %v", err)
		}
	}
}

// Benchmark 2: Submit - Shared Gift (High Contention - Concurrency Benchmark)
func Benchmark_Submit_ConcurrentSharedGift(b *testing.B) {
	ctx := context.Background()
	ledger := wallet.NewMemoryLedger()
	engine := round.NewEngine(ledger)

	r, err := engine.Open("auction_bench", 1, []string{"shared_gift_1"}, time.Hour)
	if err != nil {
		b.Fatalf("failed to open round: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()

	var lastBid int64 = 50

	b.RunParallel(func(pb *testing.PB) {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		userID := fmt.Sprintf("user_parallel_%d", rnd.Int())
		if _, err := ledger.Deposit(ctx, userID, 1<<50); err != nil {
			b.Fatalf("failed to fund user: %v", err)
		}
		for pb.Next() {
			nextBid := atomic.AddInt64(&lastBid, int64(rnd.Intn(5)+1))
			// Losing the race to a higher leader is expected here.
			_, _ = engine.Submit(ctx, r.ID(), userID, "shared_gift_1", nextBid)
		}
	})
}

// Benchmark 3: Leaders - Single-Threaded (Low Contention)
func Benchmark_Leaders_SingleThreaded(b *testing.B) {
	ctx := context.Background()
	ledger := wallet.NewMemoryLedger()
	engine := round.NewEngine(ledger)

	r, err := engine.Open("auction_bench", 1, []string{"gift_1", "gift_2", "gift_3"}, time.Hour)
	if err != nil {
		b.Fatalf("failed to open round: %v", err)
	}

	for j := 0; j < 10; j++ {
		userID := fmt.Sprintf("user_%d", j)
		if _, err := ledger.Deposit(ctx, userID, 1_000_000); err != nil {
			b.Fatalf("failed to fund user: %v", err)
		}
		_, _ = engine.Submit(ctx, r.ID(), userID, "gift_1", int64(50+j*10))
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if leaders := r.Leaders(); len(leaders) == 0 {
			b.Fatal("expected a standing leader")
		}
	}
}

// Benchmark 4: Mixed Workload (Readers + Writers concurrently)
func Benchmark_MixedWorkload_SharedGift(b *testing.B) {
	ctx := context.Background()
	ledger := wallet.NewMemoryLedger()
	engine := round.NewEngine(ledger)

	r, err := engine.Open("auction_bench", 1, []string{"shared_gift_1"}, time.Hour)
	if err != nil {
		b.Fatalf("failed to open round: %v", err)
	}

	for j := 0; j < 50; j++ {
		userID := fmt.Sprintf("user_seed_%d", j)
		if _, err := ledger.Deposit(ctx, userID, 1_000_000); err != nil {
			b.Fatalf("failed to fund user: %v", err)
		}
		_, _ = engine.Submit(ctx, r.ID(), userID, "shared_gift_1", int64(50+j*2))
	}

	b.ReportAllocs()
	b.ResetTimer()

	var lastBid int64 = 150

	// Ratio: 70% readers, 30% writers
	b.RunParallel(func(pb *testing.PB) {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		userID := fmt.Sprintf("user_writer_%d", rnd.Int())
		if _, err := ledger.Deposit(ctx, userID, 1<<50); err != nil {
			b.Fatalf("failed to fund user: %v", err)
		}
		for pb.Next() {
			opType := rnd.Intn(10)
			switch {
			case opType < 3:
				nextBid := atomic.AddInt64(&lastBid, int64(rnd.Intn(5)+1))
				_, _ = engine.Submit(ctx, r.ID(), userID, "shared_gift_1", nextBid)
			default:
				_ = r.Leaders()
			}
		}
	})
}
