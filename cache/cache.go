// Package cache is a redis-backed read cache with tag-level invalidation.
// Every cached payload belongs to one resource tag; bumping the tag's version
// makes all of its keys unreachable at once, so readers after a mutation are
// guaranteed a refetch. Redis being down degrades every read to a miss.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Tag names one invalidation region.
type Tag string

const (
	TagImportBatches   Tag = "import_batches"
	TagAISuggestions   Tag = "ai_suggestions"
	TagSupplierItems   Tag = "supplier_items"
	TagOfferCandidates Tag = "offer_candidates"
	TagOrders          Tag = "orders"
	TagProfile         Tag = "profile"
)

const keyPrefix = "dash:cache"

// DefaultTTL bounds how long a cached payload may outlive its last write.
const DefaultTTL = 10 * time.Minute

// Store handles all redis caching operations.
type Store struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		redis: client,
		ttl:   ttl,
	}
}

// Get retrieves a cached payload into out. Any redis or decode problem is a
// miss, never an error for the caller.
func (s *Store) Get(ctx context.Context, tag Tag, key string, out interface{}) bool {
	version, err := s.version(ctx, tag)
	if err != nil || version == 0 {
		return false
	}

	cached, err := s.redis.Get(ctx, s.dataKey(tag, version, key)).Result()
	if err != nil {
		return false
	}

	if err := json.Unmarshal([]byte(cached), out); err != nil {
		zap.L().Warn("Failed to unmarshal cached payload",
			zap.String("tag", string(tag)), zap.Error(err))
		return false
	}
	return true
}

// SetAsync caches a payload in the background so a response is never held up
// by redis.
func (s *Store) SetAsync(tag Tag, key string, value interface{}) {
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		version, err := s.version(bgCtx, tag)
		if err != nil || version == 0 {
			return
		}

		jsonBytes, err := json.Marshal(value)
		if err != nil {
			zap.L().Warn("Failed to marshal payload for cache",
				zap.String("tag", string(tag)), zap.Error(err))
			return
		}

		if err := s.redis.Set(bgCtx, s.dataKey(tag, version, key), jsonBytes, s.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache payload",
				zap.String("tag", string(tag)), zap.Error(err))
		}
	}()
}

// Invalidate bumps the version of each tag. Readers that come after observe
// fresh data; a bump failure is logged loudly because stale reads follow.
func (s *Store) Invalidate(ctx context.Context, tags ...Tag) {
	for _, tag := range tags {
		newVersion, err := s.redis.Incr(ctx, s.versionKey(tag)).Result()
		if err != nil {
			zap.L().Error("CRITICAL: Failed to invalidate cache tag",
				zap.String("tag", string(tag)), zap.Error(err))
			continue
		}
		zap.L().Info("Cache tag invalidated",
			zap.String("tag", string(tag)), zap.Int64("new_version", newVersion))
	}
}

// version retrieves the current version of a tag with retry logic,
// initializing the key on first use.
func (s *Store) version(ctx context.Context, tag Tag) (int64, error) {
	const maxRetries = 3

	for i := 0; i < maxRetries; i++ {
		ver, err := s.redis.Get(ctx, s.versionKey(tag)).Int64()
		if err == nil && ver > 0 {
			return ver, nil
		}

		if err == redis.Nil {
			if err := s.redis.Set(ctx, s.versionKey(tag), 1, 0).Err(); err == nil {
				return 1, nil
			}
		}

		if i < maxRetries-1 {
			time.Sleep(time.Millisecond * 50)
		}
	}

	return 0, fmt.Errorf("failed to get cache version for tag %s after %d retries", tag, maxRetries)
}

func (s *Store) versionKey(tag Tag) string {
	return fmt.Sprintf("%s:v:%s", keyPrefix, tag)
}

func (s *Store) dataKey(tag Tag, version int64, key string) string {
	return fmt.Sprintf("%s:%s:v%d:%s", keyPrefix, tag, version, key)
}
