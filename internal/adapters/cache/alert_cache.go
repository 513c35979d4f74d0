package cache

import (
	"fmt"
	"time"

	"ratewatch/internal/domain"

	"github.com/dgraph-io/ristretto"
)

// RistrettoAlertCache remembers recently notified violations so interval
// mode does not mail the same breach every tick. One-shot runs never
// construct one.
type RistrettoAlertCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

func NewAlertCache(maxItems int64, ttl time.Duration) (*RistrettoAlertCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create alert cache failed: %w", err)
	}
	return &RistrettoAlertCache{cache: c, ttl: ttl}, nil
}

func (c *RistrettoAlertCache) Suppressed(v domain.Violation) bool {
	_, ok := c.cache.Get(toKey(v))
	return ok
}

func (c *RistrettoAlertCache) MarkNotified(v domain.Violation) {
	c.cache.SetWithTTL(toKey(v), struct{}{}, 1, c.ttl)
	c.cache.Wait()
}

func (c *RistrettoAlertCache) Close() { c.cache.Close() }

func toKey(v domain.Violation) string {
	return v.CurrencyName + ":" + string(v.RateType) + ":" + string(v.Kind)
}
