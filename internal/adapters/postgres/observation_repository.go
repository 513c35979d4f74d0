package postgres

import (
	"context"
	"fmt"
	"time"

	"ratewatch/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ObservationRepository appends each cycle's parsed observations to the
// rate_observations history table. The recorder is optional plumbing: a
// failed insert is logged by the cycle and never blocks evaluation.
type ObservationRepository struct {
	pool *pgxpool.Pool
}

func NewObservationRepository(pool *pgxpool.Pool) *ObservationRepository {
	return &ObservationRepository{pool: pool}
}

func (r *ObservationRepository) Record(ctx context.Context, fetchedAt time.Time, observations map[string]domain.Observation) error {
	const q = `
        insert into rate_observations (currency_name, rate_type, value, published_at, fetched_at)
        values ($1, $2, $3, $4, $5);
    `

	batch := &pgx.Batch{}
	for name, obs := range observations {
		for _, rt := range domain.RateTypes() {
			value := obs.Rates[rt]
			if value == nil {
				continue
			}
			batch.Queue(q, name, string(rt), *value, obs.Time, fetchedAt)
		}
	}
	if batch.Len() == 0 {
		return nil
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to record observation batch: %w", err)
		}
	}
	return nil
}
