// Package quota is the atomic capacity gate for plan enforcement:
// reserve capacity under a cap across concurrent requests, scoped by
// billing period, with a compensating release.
//
// An Enforcer is built per logical request, bound to one business, and
// snapshots the business's package once. Reserve claims capacity on a
// named counter if and only if the increment would not exceed the
// configured limit; Release gives capacity back after a failed
// downstream write or a confirmed deletion.
//
// Correctness under concurrency is delegated entirely to the Ledger's
// conditional increment: the store applies "increment if counter is
// absent or <= limit-qty" atomically, so no application-level locking
// exists and two requests racing for the last unit of capacity resolve
// to exactly one success. Ledger implementations live in the
// mongoledger and pgledger subpackages; MemoryLedger serves tests.
//
// Every enforcement failure is a *Error with one of three stable
// codes: FEATURE_NOT_AVAILABLE, PACKAGE_LIMIT_INVALID,
// PACKAGE_LIMIT_REACHED. Nothing is retried automatically except a
// single retry of the conditional increment when record creation
// races; all other failures propagate to the caller.
//
// Callers pairing Reserve with a later write must Release on write
// failure or the ledger overcounts permanently. The rules package
// wraps that contract in a scoped guard.
package quota
