package quota

import (
	"context"
	"maps"
	"sync"
	"time"
)

// MemoryLedger is an in-process Ledger for tests and single-node
// development. A single mutex stands in for the storage engine's
// atomic conditional update, preserving the same admission semantics
// the durable ledgers provide.
type MemoryLedger struct {
	mu      sync.Mutex
	records map[RecordKey]*memoryRecord
}

type memoryRecord struct {
	counters  map[string]int64
	createdAt time.Time
	updatedAt time.Time
}

// NewMemoryLedger returns an empty MemoryLedger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{records: make(map[RecordKey]*memoryRecord)}
}

// Ensure implements Ledger.
func (l *MemoryLedger) Ensure(_ context.Context, key RecordKey, now time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if rec, ok := l.records[key]; ok {
		rec.updatedAt = now
		return nil
	}
	l.records[key] = &memoryRecord{
		counters:  make(map[string]int64),
		createdAt: now,
		updatedAt: now,
	}
	return nil
}

// IncrementUnchecked implements Ledger.
func (l *MemoryLedger) IncrementUnchecked(_ context.Context, key RecordKey, counter string, qty int64, now time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records[key]
	if !ok {
		return nil
	}
	rec.counters[counter] += qty
	rec.updatedAt = now
	return nil
}

// IncrementIfBelow implements Ledger.
func (l *MemoryLedger) IncrementIfBelow(_ context.Context, key RecordKey, counter string, qty, limit int64, now time.Time) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records[key]
	if !ok {
		// Never create a record on the conditional path.
		return false, nil
	}

	current, exists := rec.counters[counter]
	if exists && current > limit-qty {
		return false, nil
	}
	rec.counters[counter] = current + qty
	rec.updatedAt = now
	return true, nil
}

// Decrement implements Ledger.
func (l *MemoryLedger) Decrement(_ context.Context, key RecordKey, counter string, qty int64, now time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records[key]
	if !ok {
		return nil
	}
	rec.counters[counter] -= qty
	rec.updatedAt = now
	return nil
}

// Current implements Ledger.
func (l *MemoryLedger) Current(_ context.Context, key RecordKey, counter string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records[key]
	if !ok {
		return 0, nil
	}
	return rec.counters[counter], nil
}

// Record returns a snapshot of the counters for key and whether a
// record exists at all. Test helper.
func (l *MemoryLedger) Record(key RecordKey) (map[string]int64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records[key]
	if !ok {
		return nil, false
	}
	return maps.Clone(rec.counters), true
}
