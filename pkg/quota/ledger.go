package quota

import (
	"context"
	"errors"
	"time"

	"github.com/storelane/plankit/pkg/period"
)

// ErrDuplicateRecord is returned by Ledger implementations when a
// write collides with a concurrent insert of the same usage record.
// The enforcer retries the conditional increment exactly once on it;
// implementations translate their store's unique-key violation into
// this sentinel.
var ErrDuplicateRecord = errors.New("quota: duplicate usage record")

// RecordKey uniquely identifies one usage record: at most one record
// exists per (business, period granularity, period bucket).
type RecordKey struct {
	BusinessID string
	Period     period.Period
	PeriodKey  string
}

// Ledger is the durable usage store the enforcer mutates. One record
// per RecordKey holds a map of counter name to committed usage.
//
// The whole concurrency contract of quota enforcement rests on
// IncrementIfBelow being atomic in the backing store: predicate check
// and increment must happen with no intervening read-modify-write gap.
// There is no application-level locking anywhere above this interface.
type Ledger interface {
	// Ensure upserts a bare record for key if absent, stamping
	// created_at on insert and updated_at always. It must not touch the
	// counters map: pre-populating a counter would conflict with a
	// concurrent conditional increment on the same field.
	Ensure(ctx context.Context, key RecordKey, now time.Time) error

	// IncrementUnchecked adds qty to the named counter with no cap.
	// The record is assumed to exist (Ensure ran first).
	IncrementUnchecked(ctx context.Context, key RecordKey, counter string, qty int64, now time.Time) error

	// IncrementIfBelow adds qty to the named counter only if the
	// counter is currently absent or <= limit-qty, atomically. It never
	// creates a record: a failed predicate leaves storage untouched and
	// reports ok=false with a nil error.
	IncrementIfBelow(ctx context.Context, key RecordKey, counter string, qty, limit int64, now time.Time) (ok bool, err error)

	// Decrement subtracts qty from the named counter if the record
	// exists, and is a no-op otherwise. No floor at zero.
	Decrement(ctx context.Context, key RecordKey, counter string, qty int64, now time.Time) error

	// Current returns the committed value of the named counter, zero
	// when the record or counter is absent.
	Current(ctx context.Context, key RecordKey, counter string) (int64, error)
}
