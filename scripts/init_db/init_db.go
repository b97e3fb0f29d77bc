package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"

	"telecom-kpi/backend/internal/config"
	"telecom-kpi/backend/internal/domain"
	"telecom-kpi/backend/internal/store"
)

func main() {
	// config.Load merges .env when present
	cfg := config.Load()
	if len(os.Args) > 1 {
		cfg.FixturePath = os.Args[1]
	}

	ctx := context.Background()

	fmt.Println("Connecting to PostgreSQL...")
	pg, err := store.NewPostgresStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Connection failed: %v\n\nMake sure PostgreSQL is running:\n  docker-compose up -d postgres", err)
	}
	defer pg.Close()
	fmt.Println("✓ Connected")

	snap := step1_read_fixture(ctx, cfg.FixturePath)
	step2_schema(ctx, pg)
	step3_load(ctx, pg, snap)
	step4_verify(ctx, cfg, snap)

	fmt.Println("\n✅ Database initialised successfully")
	fmt.Println("   Run the API with: FIXTURE_SOURCE=postgres go run ./cmd/kpi-api")
}

// ─────────────────────────────────────────────────────────────
// Step 1: Read the fixture file
// ─────────────────────────────────────────────────────────────
func step1_read_fixture(ctx context.Context, path string) domain.Snapshot {
	fmt.Println("\n── Step 1: Fixture ─────────────────────────────")

	snap, err := store.NewFileLoader(path).Load(ctx)
	if err != nil {
		log.Fatalf("Cannot read fixture %s: %v", path, err)
	}
	fmt.Printf("  ✓ %s: %d KPIs, %d regions, %d stations, %d alerts\n",
		path, len(snap.NetworkKPIs), len(snap.RegionalPerformance), len(snap.BaseStations), len(snap.Alerts))
	return snap
}

// ─────────────────────────────────────────────────────────────
// Step 2: Reference tables
// ─────────────────────────────────────────────────────────────
func step2_schema(ctx context.Context, pg *store.PostgresStore) {
	fmt.Println("\n── Step 2: Reference tables ────────────────────")

	if err := pg.EnsureSchema(ctx); err != nil {
		log.Fatalf("FAILED: schema\nError: %v", err)
	}
	for _, table := range store.ReferenceTables {
		fmt.Printf("  ✓ table: %s\n", table)
	}
}

// ─────────────────────────────────────────────────────────────
// Step 3: Replace table contents with the fixture
// ─────────────────────────────────────────────────────────────
func step3_load(ctx context.Context, pg *store.PostgresStore, snap domain.Snapshot) {
	fmt.Println("\n── Step 3: Load snapshot ───────────────────────")

	if err := pg.ReplaceSnapshot(ctx, snap); err != nil {
		log.Fatalf("FAILED: load\nError: %v", err)
	}
	fmt.Println("  ✓ snapshot written")
}

// ─────────────────────────────────────────────────────────────
// Step 4: Verify row counts match the fixture
// ─────────────────────────────────────────────────────────────
func step4_verify(ctx context.Context, cfg *config.Config, snap domain.Snapshot) {
	fmt.Println("\n── Step 4: Verification ────────────────────────")

	conn, err := pgx.Connect(ctx, store.ConnString(cfg))
	if err != nil {
		log.Fatalf("Verification connect failed: %v", err)
	}
	defer conn.Close(ctx)

	want := map[string]int{
		"network_kpis":         len(snap.NetworkKPIs),
		"regional_performance": len(snap.RegionalPerformance),
		"base_stations":        len(snap.BaseStations),
		"alerts":               len(snap.Alerts),
	}
	for _, table := range store.ReferenceTables {
		var n int
		if err := conn.QueryRow(ctx, "SELECT COUNT(*) FROM "+pgx.Identifier{table}.Sanitize()).Scan(&n); err != nil {
			log.Fatalf("Count %s failed: %v", table, err)
		}
		if n != want[table] {
			log.Fatalf("Table %s has %d rows, expected %d", table, n, want[table])
		}
		fmt.Printf("  ✓ %-22s %d rows\n", table, n)
	}
}
