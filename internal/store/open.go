package store

import (
	"context"
	"fmt"

	"telecom-kpi/backend/internal/config"
)

// Open builds the loader selected by cfg.FixtureSource. The returned close
// func releases any connection pool and is never nil.
func Open(ctx context.Context, cfg *config.Config) (BaseLoader, func(), error) {
	switch cfg.FixtureSource {
	case config.SourceFile, "":
		return NewFileLoader(cfg.FixturePath), func() {}, nil

	case config.SourcePostgres:
		pg, err := NewPostgresStore(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return pg, pg.Close, nil

	case config.SourceRedis:
		rs, err := NewRedisStore(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return rs, func() { rs.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown fixture source %q", cfg.FixtureSource)
	}
}
