package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"telecom-kpi/backend/internal/config"
	"telecom-kpi/backend/internal/domain"
)

// SchemaStatements create the reference tables PostgresStore reads from.
// Positions keep fixture order for the ordered sections.
var SchemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS network_kpis (
		name       TEXT             PRIMARY KEY,
		current    DOUBLE PRECISION NOT NULL,
		unit       TEXT             NOT NULL DEFAULT '',
		threshold  DOUBLE PRECISION NOT NULL,
		trend      DOUBLE PRECISION[] NOT NULL DEFAULT '{}',
		status     TEXT             NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS regional_performance (
		position        INTEGER          PRIMARY KEY,
		region          TEXT             NOT NULL,
		call_drop_rate  DOUBLE PRECISION NOT NULL,
		availability    DOUBLE PRECISION NOT NULL,
		throughput      DOUBLE PRECISION NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS base_stations (
		id               TEXT             PRIMARY KEY,
		position         INTEGER          NOT NULL,
		name             TEXT             NOT NULL,
		city             TEXT             NOT NULL,
		region           TEXT             NOT NULL,
		latitude         DOUBLE PRECISION NOT NULL,
		longitude        DOUBLE PRECISION NOT NULL,
		coverage_radius  DOUBLE PRECISION NOT NULL,
		status           TEXT             NOT NULL,
		CONSTRAINT chk_station_status CHECK (
			status IN ('operational', 'warning', 'maintenance', 'unknown')
		)
	)`,
	`CREATE TABLE IF NOT EXISTS alerts (
		position   INTEGER PRIMARY KEY,
		severity   TEXT    NOT NULL,
		message    TEXT    NOT NULL,
		timestamp  TEXT    NOT NULL
	)`,
}

var ReferenceTables = []string{"network_kpis", "regional_performance", "base_stations", "alerts"}

type PostgresStore struct {
	pool *pgxpool.Pool
}

func ConnString(cfg *config.Config) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?pool_max_conns=%d",
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
		cfg.DBMaxConns,
	)
}

func NewPostgresStore(ctx context.Context, cfg *config.Config) (*PostgresStore, error) {
	return NewPostgresStoreFromURL(ctx, ConnString(cfg))
}

func NewPostgresStoreFromURL(ctx context.Context, connStr string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to create db pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Source() string { return "postgres" }

func (s *PostgresStore) Load(ctx context.Context) (domain.Snapshot, error) {
	snap := domain.Snapshot{
		NetworkKPIs:         make(map[string]domain.KPI),
		RegionalPerformance: []domain.RegionPerformance{},
		BaseStations:        []domain.BaseStation{},
		Alerts:              []domain.Alert{},
	}

	rows, err := s.pool.Query(ctx, `SELECT name, current, unit, threshold, trend, status FROM network_kpis`)
	if err != nil {
		return domain.Snapshot{}, domain.BadFixture("postgres network_kpis", err)
	}
	for rows.Next() {
		var name string
		var k domain.KPI
		if err := rows.Scan(&name, &k.Current, &k.Unit, &k.Threshold, &k.Trend, &k.Status); err != nil {
			rows.Close()
			return domain.Snapshot{}, domain.BadFixture("postgres network_kpis", err)
		}
		snap.NetworkKPIs[name] = k
	}
	if err := rows.Err(); err != nil {
		return domain.Snapshot{}, domain.BadFixture("postgres network_kpis", err)
	}

	rows, err = s.pool.Query(ctx, `
		SELECT region, call_drop_rate, availability, throughput
		FROM regional_performance
		ORDER BY position
	`)
	if err != nil {
		return domain.Snapshot{}, domain.BadFixture("postgres regional_performance", err)
	}
	snap.RegionalPerformance, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.RegionPerformance, error) {
		var r domain.RegionPerformance
		err := row.Scan(&r.Region, &r.CallDropRate, &r.Availability, &r.Throughput)
		return r, err
	})
	if err != nil {
		return domain.Snapshot{}, domain.BadFixture("postgres regional_performance", err)
	}

	rows, err = s.pool.Query(ctx, `
		SELECT id, name, city, region, latitude, longitude, coverage_radius, status
		FROM base_stations
		ORDER BY position
	`)
	if err != nil {
		return domain.Snapshot{}, domain.BadFixture("postgres base_stations", err)
	}
	snap.BaseStations, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.BaseStation, error) {
		var b domain.BaseStation
		err := row.Scan(&b.ID, &b.Name, &b.City, &b.Region, &b.Latitude, &b.Longitude, &b.CoverageRadius, &b.Status)
		return b, err
	})
	if err != nil {
		return domain.Snapshot{}, domain.BadFixture("postgres base_stations", err)
	}

	rows, err = s.pool.Query(ctx, `SELECT severity, message, timestamp FROM alerts ORDER BY position`)
	if err != nil {
		return domain.Snapshot{}, domain.BadFixture("postgres alerts", err)
	}
	snap.Alerts, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Alert, error) {
		var a domain.Alert
		err := row.Scan(&a.Severity, &a.Message, &a.Timestamp)
		return a, err
	})
	if err != nil {
		return domain.Snapshot{}, domain.BadFixture("postgres alerts", err)
	}

	if err := snap.Validate(); err != nil {
		return domain.Snapshot{}, domain.BadFixture("postgres", err)
	}
	return snap, nil
}

// EnsureSchema creates the reference tables if they do not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	for _, stmt := range SchemaStatements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// ReplaceSnapshot overwrites all reference tables with snap in one
// transaction. Only seeding tools call it; the API never writes.
func (s *PostgresStore) ReplaceSnapshot(ctx context.Context, snap domain.Snapshot) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, table := range ReferenceTables {
		if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	copies := []struct {
		table   string
		columns []string
		rows    [][]interface{}
	}{
		{"network_kpis", []string{"name", "current", "unit", "threshold", "trend", "status"}, kpiRows(snap)},
		{"regional_performance", []string{"position", "region", "call_drop_rate", "availability", "throughput"}, regionRows(snap)},
		{"base_stations", []string{"id", "position", "name", "city", "region", "latitude", "longitude", "coverage_radius", "status"}, stationRows(snap)},
		{"alerts", []string{"position", "severity", "message", "timestamp"}, alertRows(snap)},
	}

	for _, c := range copies {
		if len(c.rows) == 0 {
			continue
		}
		_, err := tx.CopyFrom(ctx, pgx.Identifier{c.table}, c.columns, pgx.CopyFromRows(c.rows))
		if err != nil {
			return fmt.Errorf("CopyFrom failed for %s (%d rows): %w", c.table, len(c.rows), err)
		}
	}

	return tx.Commit(ctx)
}

func kpiRows(snap domain.Snapshot) [][]interface{} {
	rows := make([][]interface{}, 0, len(snap.NetworkKPIs))
	for _, name := range snap.KPINames() {
		k := snap.NetworkKPIs[name]
		trend := k.Trend
		if trend == nil {
			trend = []float64{}
		}
		rows = append(rows, []interface{}{name, k.Current, k.Unit, k.Threshold, trend, string(k.Status)})
	}
	return rows
}

func regionRows(snap domain.Snapshot) [][]interface{} {
	rows := make([][]interface{}, len(snap.RegionalPerformance))
	for i, r := range snap.RegionalPerformance {
		rows[i] = []interface{}{i, r.Region, r.CallDropRate, r.Availability, r.Throughput}
	}
	return rows
}

func stationRows(snap domain.Snapshot) [][]interface{} {
	rows := make([][]interface{}, len(snap.BaseStations))
	for i, b := range snap.BaseStations {
		rows[i] = []interface{}{b.ID, i, b.Name, b.City, b.Region, b.Latitude, b.Longitude, b.CoverageRadius, string(b.Status)}
	}
	return rows
}

func alertRows(snap domain.Snapshot) [][]interface{} {
	rows := make([][]interface{}, len(snap.Alerts))
	for i, a := range snap.Alerts {
		rows[i] = []interface{}{i, string(a.Severity), a.Message, a.Timestamp}
	}
	return rows
}
