// Package plan resolves the subscription package a business is
// currently on and normalizes heterogeneous plan documents into one
// flat shape.
//
// A Package is a read-only snapshot: a tier identifier, a billing
// cadence, opt-in feature flags, and a sparse map of numeric limits.
// The absence semantics are asymmetric and deliberate: a missing
// feature is disabled (features are sold per plan), a missing limit is
// unlimited (caps only exist where a plan names them). Consumers must
// preserve that asymmetry rather than normalize it away.
//
// Resolvers:
//
//   - StaticResolver: in-memory assignments, for tests and dev.
//   - NewCatalogResolver: YAML catalog + tier lookup.
//   - MongoResolver: subscriptions/packages collections, the
//     production store.
//   - CachedResolver: Redis read-through decorator over any of the
//     above, fail-open on cache errors.
//
// A business with no active subscription always resolves to
// DefaultFreePlan, never to an error.
package plan
