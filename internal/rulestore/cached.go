package rulestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/lendcore/underwrite/internal/domain"
)

// DefaultCacheTTL bounds rule set staleness; rules change rarely.
const DefaultCacheTTL = 10 * time.Minute

// CachedStore is a Redis read-through wrapper around another Store. Cache
// failures degrade to the source store; they never fail a request.
type CachedStore struct {
	source Store
	client redis.UniversalClient
	ttl    time.Duration
	log    zerolog.Logger
}

// NewCachedStore wraps a source store with a Redis read-through cache.
func NewCachedStore(source Store, client redis.UniversalClient, ttl time.Duration, log zerolog.Logger) *CachedStore {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedStore{source: source, client: client, ttl: ttl, log: log}
}

func cacheKey(id domain.ProgramID) string {
	return fmt.Sprintf("rulestore:program:%s", id)
}

// GetProgramRuleSet serves from Redis when possible, loading the source and
// populating the cache on a miss.
func (c *CachedStore) GetProgramRuleSet(ctx context.Context, id domain.ProgramID) (*domain.ProgramRuleSet, error) {
	key := cacheKey(id)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var rs domain.ProgramRuleSet
		if uerr := json.Unmarshal(raw, &rs); uerr == nil {
			return &rs, nil
		}
		c.log.Warn().Str("key", key).Msg("corrupt cache entry, reloading from source")
	case !errors.Is(err, redis.Nil):
		c.log.Warn().Err(err).Str("key", key).Msg("rule cache read failed, falling back to source")
	}

	rs, err := c.source.GetProgramRuleSet(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, merr := json.Marshal(rs); merr == nil {
		if serr := c.client.Set(ctx, key, data, c.ttl).Err(); serr != nil {
			c.log.Warn().Err(serr).Str("key", key).Msg("rule cache write failed")
		}
	}
	return rs, nil
}

// ListPrograms always hits the source; the id list is cheap and must not lag
// behind program additions.
func (c *CachedStore) ListPrograms(ctx context.Context) ([]domain.ProgramID, error) {
	return c.source.ListPrograms(ctx)
}

// Invalidate drops a program's cache entry, used after rule updates.
func (c *CachedStore) Invalidate(ctx context.Context, id domain.ProgramID) error {
	return c.client.Del(ctx, cacheKey(id)).Err()
}
