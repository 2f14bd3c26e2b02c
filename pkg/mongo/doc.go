// Package mongo manages the MongoDB connection backing the usage
// ledger and the subscription-based plan resolver.
//
// Configuration is entirely environment-driven (see Config field tags)
// and connection establishment retries with verification pings, so a
// deployment that races its database on startup converges instead of
// crash-looping.
//
//	var cfg mongo.Config
//	config.MustLoad(&cfg)
//
//	db, err := mongo.NewDatabase(ctx, cfg, "posdb")
//	if err != nil {
//		// ...
//	}
//	ledger := mongoledger.New(db)
//	resolver := plan.NewMongoResolver(db)
package mongo
