package pgledger

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/storelane/plankit/pkg/quota"
)

// DB is the subset of pgxpool.Pool the ledger needs, split out so
// callers can pass a transaction or a test double.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ DB = (*pgxpool.Pool)(nil)

// Ledger implements quota.Ledger on a PostgreSQL table with counters
// in a JSONB column. The conditional increment is a single UPDATE
// whose WHERE clause carries the capacity predicate; row-level
// atomicity of the statement is the admission-control guarantee, no
// application lock involved.
type Ledger struct {
	db DB
}

// New returns a Ledger writing to the business_usage table via db.
func New(db DB) *Ledger {
	return &Ledger{db: db}
}

// Ensure implements quota.Ledger. The insert seeds an empty counters
// object; the conflict branch only bumps updated_at and never touches
// counters.
func (l *Ledger) Ensure(ctx context.Context, key quota.RecordKey, now time.Time) error {
	_, err := l.db.Exec(ctx, `
		INSERT INTO business_usage (business_id, period, period_key, counters, created_at, updated_at)
		VALUES ($1, $2, $3, '{}'::jsonb, $4, $4)
		ON CONFLICT (business_id, period, period_key)
		DO UPDATE SET updated_at = EXCLUDED.updated_at`,
		key.BusinessID, string(key.Period), key.PeriodKey, now,
	)
	return translateErr(err)
}

// IncrementUnchecked implements quota.Ledger.
func (l *Ledger) IncrementUnchecked(ctx context.Context, key quota.RecordKey, counter string, qty int64, now time.Time) error {
	_, err := l.db.Exec(ctx, `
		UPDATE business_usage
		SET counters = jsonb_set(counters, ARRAY[$4], to_jsonb(COALESCE((counters->>$4)::bigint, 0) + $5), true),
		    updated_at = $6
		WHERE business_id = $1 AND period = $2 AND period_key = $3`,
		key.BusinessID, string(key.Period), key.PeriodKey, counter, qty, now,
	)
	return translateErr(err)
}

// IncrementIfBelow implements quota.Ledger. An absent counter reads as
// zero, which passes the predicate whenever qty <= limit; a counter at
// capacity fails it and the UPDATE matches no row, leaving storage
// untouched.
func (l *Ledger) IncrementIfBelow(ctx context.Context, key quota.RecordKey, counter string, qty, limit int64, now time.Time) (bool, error) {
	tag, err := l.db.Exec(ctx, `
		UPDATE business_usage
		SET counters = jsonb_set(counters, ARRAY[$4], to_jsonb(COALESCE((counters->>$4)::bigint, 0) + $5), true),
		    updated_at = $6
		WHERE business_id = $1 AND period = $2 AND period_key = $3
		  AND COALESCE((counters->>$4)::bigint, 0) <= $7 - $5`,
		key.BusinessID, string(key.Period), key.PeriodKey, counter, qty, now, limit,
	)
	if err != nil {
		return false, translateErr(err)
	}
	return tag.RowsAffected() == 1, nil
}

// Decrement implements quota.Ledger. No matching row means nothing to
// give back, which is a no-op by contract.
func (l *Ledger) Decrement(ctx context.Context, key quota.RecordKey, counter string, qty int64, now time.Time) error {
	_, err := l.db.Exec(ctx, `
		UPDATE business_usage
		SET counters = jsonb_set(counters, ARRAY[$4], to_jsonb(COALESCE((counters->>$4)::bigint, 0) - $5), true),
		    updated_at = $6
		WHERE business_id = $1 AND period = $2 AND period_key = $3`,
		key.BusinessID, string(key.Period), key.PeriodKey, counter, qty, now,
	)
	return translateErr(err)
}

// Current implements quota.Ledger.
func (l *Ledger) Current(ctx context.Context, key quota.RecordKey, counter string) (int64, error) {
	var current int64
	err := l.db.QueryRow(ctx, `
		SELECT COALESCE((counters->>$4)::bigint, 0)
		FROM business_usage
		WHERE business_id = $1 AND period = $2 AND period_key = $3`,
		key.BusinessID, string(key.Period), key.PeriodKey, counter,
	).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return current, nil
}

// translateErr maps unique-constraint violations (SQLSTATE 23505) to
// the sentinel the enforcer's race retry keys on.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return errors.Join(quota.ErrDuplicateRecord, err)
	}
	return err
}
