// Package pg manages the PostgreSQL pool and schema migrations for
// deployments running the relational usage ledger.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		// ...
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, slog.Default()); err != nil {
//		// ...
//	}
//	ledger := pgledger.New(pool)
//
// Migrations are applied with goose; PG_MIGRATIONS_PATH defaults to
// the ledger's migrations directory.
package pg
