package plan

import (
	"maps"
	"strings"
)

// Package is a read-only snapshot of the subscription configuration a
// business is currently on. The quota engine never mutates it; a fresh
// snapshot is taken per logical request.
type Package struct {
	Tier          string           `json:"tier" yaml:"tier"`
	Name          string           `json:"name" yaml:"name"`
	BillingPeriod string           `json:"billing_period" yaml:"billing_period"`
	TrialDays     int              `json:"trial_days" yaml:"trial_days"`
	Features      map[string]bool  `json:"features" yaml:"features"`
	Limits        map[string]int64 `json:"limits" yaml:"limits"`
}

// HasFeature reports whether the feature is present and enabled.
// Missing feature maps and missing keys are both disabled: features
// are opt-in per plan.
func (p Package) HasFeature(key string) bool {
	return p.Features[key]
}

// Limit returns the cap for the given limit key. The second return is
// false when the key is absent, which means the resource is unlimited:
// limits only exist where a plan explicitly caps them.
func (p Package) Limit(key string) (int64, bool) {
	v, ok := p.Limits[key]
	return v, ok
}

// Clone returns a deep copy so callers can hold a snapshot without
// aliasing the resolver's maps.
func (p Package) Clone() Package {
	p.Features = maps.Clone(p.Features)
	p.Limits = maps.Clone(p.Limits)
	return p
}

// Normalize converts a raw plan document into a Package.
//
// Two document shapes exist in the wild: newer documents carry flat
// top-level limit fields (max_products, storage_limit_gb, ...), older
// ones nest them under a "limits" map. Normalize merges both into one
// flat Limits map, with the nested map winning on conflict so legacy
// overrides keep working. A limit value that is present but not a
// number is recorded as InvalidLimit rather than dropped: dropping it
// would silently grant unlimited capacity, while InvalidLimit makes the
// enforcer reject reservations against that key as a plan
// misconfiguration.
func Normalize(doc map[string]any) Package {
	pkg := Package{
		Tier:          str(doc["tier"]),
		Name:          str(doc["name"]),
		BillingPeriod: str(doc["billing_period"]),
		Features:      map[string]bool{},
		Limits:        map[string]int64{},
	}
	if pkg.BillingPeriod == "" {
		pkg.BillingPeriod = "monthly"
	}
	if n, ok := asInt64(doc["trial_days"]); ok {
		pkg.TrialDays = int(n)
	}

	for k, v := range doc {
		if strings.HasPrefix(k, "max_") || k == "storage_limit_gb" {
			pkg.Limits[k] = limitValue(v)
		}
	}
	if nested, ok := doc["limits"].(map[string]any); ok {
		for k, v := range nested {
			pkg.Limits[k] = limitValue(v)
		}
	}

	if features, ok := doc["features"].(map[string]any); ok {
		for k, v := range features {
			b, _ := v.(bool)
			pkg.Features[k] = b
		}
	}

	return pkg
}

// InvalidLimit marks a limit whose configured value could not be read
// as an integer. Any negative limit is treated as misconfigured by the
// enforcer, so the exact value only matters for debugging.
const InvalidLimit int64 = -1

func limitValue(v any) int64 {
	n, ok := asInt64(v)
	if !ok {
		return InvalidLimit
	}
	return n
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	}
	return 0, false
}
