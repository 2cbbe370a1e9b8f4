package idempotency

import (
	"context"
	"time"

	"encore.dev/storage/cache"

	"trm.app/billing/model"
)

var IdempotencyCluster = cache.NewCluster("billing-idempotency", cache.ClusterConfig{
	EvictionPolicy: cache.AllKeysLRU,
})

// IdempotencyCache holds one entry per endpoint and client key for a day.
var IdempotencyCache = cache.NewStructKeyspace[model.IdempotencyKey, model.IdempotencyCacheEntry](
	IdempotencyCluster,
	cache.KeyspaceConfig{
		KeyPattern:    "idempotency/:Resource/:Key",
		DefaultExpiry: cache.ExpireIn(24 * time.Hour),
	},
)

// entryStore is the part of the keyspace the middleware uses.
type entryStore interface {
	Get(ctx context.Context, key model.IdempotencyKey) (model.IdempotencyCacheEntry, error)
	Set(ctx context.Context, key model.IdempotencyKey, val model.IdempotencyCacheEntry) error
	SetIfNotExists(ctx context.Context, key model.IdempotencyKey, val model.IdempotencyCacheEntry) error
	Delete(ctx context.Context, keys ...model.IdempotencyKey) (int, error)
}

var entries entryStore = IdempotencyCache
