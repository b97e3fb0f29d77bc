package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"telecom-kpi/backend/internal/config"
	"telecom-kpi/backend/internal/domain"
	"telecom-kpi/backend/internal/store"
)

func main() {
	cfg := config.Load()
	if len(os.Args) > 1 {
		cfg.FixturePath = os.Args[1]
	}

	ctx := context.Background()

	fmt.Println("Connecting to Redis...")
	rs, err := store.NewRedisStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Connection failed: %v\n\nMake sure Redis is running:\n  docker-compose up -d redis", err)
	}
	defer rs.Close()
	fmt.Println("✓ Connected")

	snap := step1_fixture(ctx, cfg.FixturePath)
	step2_seed(ctx, rs, snap)
	step3_verify(ctx, rs, snap)

	fmt.Println("\n✅ Redis seeded successfully")
	fmt.Println("   Run the API with: FIXTURE_SOURCE=redis go run ./cmd/kpi-api")
}

func step1_fixture(ctx context.Context, path string) domain.Snapshot {
	fmt.Println("\n── Step 1: Fixture ─────────────────────────────")

	snap, err := store.NewFileLoader(path).Load(ctx)
	if err != nil {
		log.Fatalf("Cannot read fixture %s: %v", path, err)
	}
	fmt.Printf("  ✓ %s\n", path)
	return snap
}

func step2_seed(ctx context.Context, rs *store.RedisStore, snap domain.Snapshot) {
	fmt.Println("\n── Step 2: Seeding snapshot ────────────────────")

	// No TTL: the base snapshot is reference data
	if err := rs.SaveSnapshot(ctx, snap); err != nil {
		log.Fatalf("Failed to set key %s: %v", rs.Key(), err)
	}
	fmt.Printf("  ✓ %s\n", rs.Key())
}

func step3_verify(ctx context.Context, rs *store.RedisStore, snap domain.Snapshot) {
	fmt.Println("\n── Step 3: Verification ────────────────────────")

	got, err := rs.Load(ctx)
	if err != nil {
		log.Fatalf("Verification failed: %v", err)
	}
	if len(got.NetworkKPIs) != len(snap.NetworkKPIs) || len(got.BaseStations) != len(snap.BaseStations) {
		log.Fatalf("Round trip mismatch: %d/%d KPIs, %d/%d stations",
			len(got.NetworkKPIs), len(snap.NetworkKPIs), len(got.BaseStations), len(snap.BaseStations))
	}
	fmt.Printf("  ✓ spot check: %d KPIs, %d stations, available: %v\n",
		len(got.NetworkKPIs), len(got.BaseStations), got.KPINames())
}
