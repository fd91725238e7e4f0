package cache_test

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/Klimov-IS/Flowers-marketplace-sub001/cache"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newTestRedisClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: "localhost:0",
		Dialer: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return nil, errors.New("redis disabled in tests")
		},
	})
}

func TestGetDegradesToMissWithoutRedis(t *testing.T) {
	store := cache.NewStore(newTestRedisClient(), time.Minute)

	var out map[string]interface{}
	found := store.Get(context.Background(), cache.TagImportBatches, "p1", &out)
	assert.False(t, found)
	assert.Nil(t, out)
}

func TestSetAsyncNeverBlocksCaller(t *testing.T) {
	store := cache.NewStore(newTestRedisClient(), time.Minute)

	done := make(chan struct{})
	go func() {
		store.SetAsync(cache.TagOrders, "p1", map[string]string{"k": "v"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("SetAsync blocked the caller")
	}
}

func TestInvalidateSurvivesRedisOutage(t *testing.T) {
	store := cache.NewStore(newTestRedisClient(), time.Minute)

	assert.NotPanics(t, func() {
		store.Invalidate(context.Background(), cache.TagAISuggestions, cache.TagSupplierItems)
	})
}
