package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CreatePoolAndPing opens a pgx pool for the observation history database
// and verifies connectivity before handing it out.
func CreatePoolAndPing(ctx context.Context, url string) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
