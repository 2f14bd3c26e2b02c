package plan

import (
	"context"
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog maps tier identifiers to normalized packages. It is the
// static "what we sell" table, as opposed to the per-business "what
// they bought" lookup a Resolver performs.
type Catalog map[string]Package

// LoadCatalog decodes a YAML plan catalog. Each top-level key is a
// tier identifier mapped to a raw plan document in either the flat
// max_* shape or the legacy nested-limits shape; documents are
// normalized on load. A document without an explicit tier field
// inherits its catalog key.
func LoadCatalog(r io.Reader) (Catalog, error) {
	var raw map[string]map[string]any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Join(ErrFailedToLoadCatalog, err)
	}

	catalog := make(Catalog, len(raw))
	for tier, doc := range raw {
		pkg := Normalize(doc)
		if pkg.Tier == "" {
			pkg.Tier = tier
		}
		catalog[tier] = pkg
	}
	return catalog, nil
}

// LoadCatalogFile reads a YAML plan catalog from disk.
func LoadCatalogFile(path string) (Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadCatalog, err)
	}
	defer f.Close()
	return LoadCatalog(f)
}

// TierResolver resolves the tier a business is subscribed to.
// Implementations typically consult a subscriptions table or a claim
// on the authenticated session.
type TierResolver func(ctx context.Context, businessID string) (string, error)

// catalogResolver joins a static catalog with a per-business tier
// lookup to implement Resolver.
type catalogResolver struct {
	catalog Catalog
	tiers   TierResolver
}

// NewCatalogResolver returns a Resolver that resolves a business's
// tier via tiers and serves the matching catalog entry. A tier missing
// from the catalog is an error: it indicates catalog/subscription
// drift, not an unsubscribed business.
func NewCatalogResolver(catalog Catalog, tiers TierResolver) (Resolver, error) {
	if tiers == nil {
		return nil, ErrTierResolverRequired
	}
	return &catalogResolver{catalog: catalog, tiers: tiers}, nil
}

func (r *catalogResolver) ActivePackage(ctx context.Context, businessID string) (Package, error) {
	tier, err := r.tiers(ctx, businessID)
	if err != nil {
		return Package{}, errors.Join(ErrFailedToResolvePlan, err)
	}
	if tier == "" {
		return DefaultFreePlan(), nil
	}

	pkg, ok := r.catalog[tier]
	if !ok {
		return Package{}, ErrTierNotInCatalog
	}
	return pkg.Clone(), nil
}
