// Package redis manages the Redis connection used by the plan cache.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		// ...
//	}
//	resolver := plan.NewCachedResolver(mongoResolver, client)
//
// The cache is optional: CachedResolver fails open, and deployments
// without Redis simply use the underlying resolver directly.
package redis
