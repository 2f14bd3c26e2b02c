package plan

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultCacheTTL bounds plan staleness. A plan change becomes visible
// to quota enforcement within this window at the latest; plan-change
// flows that need it sooner call Invalidate.
const DefaultCacheTTL = 5 * time.Minute

// CachedResolver decorates a Resolver with a Redis read-through cache
// keyed by business ID.
//
// The cache is fail-open: a Redis error degrades to a direct resolver
// call and a debug log line, never to a failed request. Cached entries
// are JSON-encoded normalized packages.
type CachedResolver struct {
	inner  Resolver
	client *redis.Client
	ttl    time.Duration
	prefix string
	log    *slog.Logger
}

// CachedResolverOption customizes a CachedResolver.
type CachedResolverOption func(*CachedResolver)

// WithCacheTTL overrides the entry TTL.
func WithCacheTTL(ttl time.Duration) CachedResolverOption {
	return func(r *CachedResolver) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// WithCacheKeyPrefix overrides the Redis key prefix.
func WithCacheKeyPrefix(prefix string) CachedResolverOption {
	return func(r *CachedResolver) {
		if prefix != "" {
			r.prefix = prefix
		}
	}
}

// WithCacheLogger sets the logger for cache-miss diagnostics.
func WithCacheLogger(log *slog.Logger) CachedResolverOption {
	return func(r *CachedResolver) {
		if log != nil {
			r.log = log
		}
	}
}

// NewCachedResolver wraps inner with a Redis cache.
func NewCachedResolver(inner Resolver, client *redis.Client, opts ...CachedResolverOption) *CachedResolver {
	r := &CachedResolver{
		inner:  inner,
		client: client,
		ttl:    DefaultCacheTTL,
		prefix: "plan:active:",
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ActivePackage implements Resolver.
func (r *CachedResolver) ActivePackage(ctx context.Context, businessID string) (Package, error) {
	key := r.prefix + businessID

	if raw, err := r.client.Get(ctx, key).Bytes(); err == nil {
		var pkg Package
		if err := json.Unmarshal(raw, &pkg); err == nil {
			return pkg, nil
		}
		// Corrupt entry: drop it and fall through to the source of truth.
		_ = r.client.Del(ctx, key).Err()
	} else if !errors.Is(err, redis.Nil) {
		r.log.DebugContext(ctx, "plan cache read failed", "business_id", businessID, "error", err)
	}

	pkg, err := r.inner.ActivePackage(ctx, businessID)
	if err != nil {
		return Package{}, err
	}

	if raw, err := json.Marshal(pkg); err == nil {
		if err := r.client.Set(ctx, key, raw, r.ttl).Err(); err != nil {
			r.log.DebugContext(ctx, "plan cache write failed", "business_id", businessID, "error", err)
		}
	}

	return pkg, nil
}

// Invalidate evicts the cached package for a business, forcing the
// next resolution to hit the underlying store. Called by plan-change
// flows after a subscription switch.
func (r *CachedResolver) Invalidate(ctx context.Context, businessID string) error {
	return r.client.Del(ctx, r.prefix+businessID).Err()
}
