// Package pgledger stores usage records in PostgreSQL.
//
// One row per (business_id, period, period_key), enforced by the
// primary key, with counters in a JSONB column. The conditional
// increment is expressed as a single statement
//
//	UPDATE business_usage
//	SET counters = jsonb_set(...)
//	WHERE ... AND COALESCE((counters->>$c)::bigint, 0) <= $limit - $qty
//
// and admission is decided by the statement's row count: PostgreSQL
// evaluates the predicate and applies the write under the same row
// lock, so two racing reservations for the last unit of capacity
// serialize and exactly one matches.
//
// The schema lives in migrations/ as a goose migration; run it with
// pg.Migrate pointing PG_MIGRATIONS_PATH at that directory.
package pgledger
