// Package rules maps business concepts to their plan-enforcement
// wiring and wraps the reserve/commit/release contract in a scoped
// guard.
//
// A Ruleset is pure configuration: for each component name the feature
// that gates it, the package limit key that caps it, the ledger
// counter that tallies it, and optionally a forced reset period.
// DefaultRules carries the POS domain table; deployments can swap in
// their own.
//
// Handler usage:
//
//	hold, err := guard.Acquire(ctx, businessID, "outlets", 1)
//	if err != nil {
//		// quota.AsError(err) for the denial code and meta
//	}
//	defer hold.Release(ctx)
//
//	if err := createOutlet(ctx, ...); err != nil {
//		return err // deferred Release compensates
//	}
//	hold.Commit()
//
// On deletion, ReleaseComponent returns the capacity.
package rules
