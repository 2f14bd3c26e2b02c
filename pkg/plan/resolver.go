package plan

import (
	"context"
	"sync"
)

// Resolver returns the active subscription package for a business.
//
// Implementations own caching and staleness policy; the quota engine
// calls ActivePackage exactly once per enforcer instance. A business
// with no active subscription resolves to the default free plan, never
// to an error, so quota enforcement degrades to free-tier behavior
// instead of blocking requests.
type Resolver interface {
	ActivePackage(ctx context.Context, businessID string) (Package, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, businessID string) (Package, error)

func (f ResolverFunc) ActivePackage(ctx context.Context, businessID string) (Package, error) {
	return f(ctx, businessID)
}

// StaticResolver serves packages from an in-memory assignment of
// business IDs to packages. Businesses without an assignment get
// fallback, which defaults to the free plan.
//
// Intended for tests and single-tenant deployments; production setups
// use MongoResolver, usually wrapped in CachedResolver.
type StaticResolver struct {
	mu       sync.RWMutex
	packages map[string]Package
	fallback Package
}

// NewStaticResolver returns a StaticResolver with a deep copy of the
// given assignments and DefaultFreePlan as the fallback.
func NewStaticResolver(packages map[string]Package) *StaticResolver {
	copied := make(map[string]Package, len(packages))
	for id, pkg := range packages {
		copied[id] = pkg.Clone()
	}
	return &StaticResolver{
		packages: copied,
		fallback: DefaultFreePlan(),
	}
}

// SetFallback replaces the package served for unassigned businesses.
func (r *StaticResolver) SetFallback(pkg Package) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = pkg.Clone()
}

// Assign sets or replaces the package for one business.
func (r *StaticResolver) Assign(businessID string, pkg Package) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.packages == nil {
		r.packages = make(map[string]Package)
	}
	r.packages[businessID] = pkg.Clone()
}

// ActivePackage implements Resolver.
func (r *StaticResolver) ActivePackage(_ context.Context, businessID string) (Package, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if pkg, ok := r.packages[businessID]; ok {
		return pkg.Clone(), nil
	}
	return r.fallback.Clone(), nil
}
