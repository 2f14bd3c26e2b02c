package plan

// LimitChange records a limit moving from one value to another.
// Unlimited is represented by ok=false on the corresponding side.
type LimitChange struct {
	Key         string
	From, To    int64
	FromLimited bool
	ToLimited   bool
}

// Comparison is the difference between two packages, used by
// plan-change flows to warn about lost capacity before a switch.
type Comparison struct {
	GainedFeatures  []string
	LostFeatures    []string
	TightenedLimits []LimitChange
	LoosenedLimits  []LimitChange
}

// HasRegressions reports whether the target package loses features or
// tightens limits relative to the current one.
func (c Comparison) HasRegressions() bool {
	return len(c.LostFeatures) > 0 || len(c.TightenedLimits) > 0
}

// Compare diffs current against target. Only enabled features count;
// a feature that is present-but-false on both sides is not a change.
func Compare(current, target Package) Comparison {
	var c Comparison

	for key, enabled := range target.Features {
		if enabled && !current.HasFeature(key) {
			c.GainedFeatures = append(c.GainedFeatures, key)
		}
	}
	for key, enabled := range current.Features {
		if enabled && !target.HasFeature(key) {
			c.LostFeatures = append(c.LostFeatures, key)
		}
	}

	seen := make(map[string]struct{}, len(current.Limits)+len(target.Limits))
	for key := range current.Limits {
		seen[key] = struct{}{}
	}
	for key := range target.Limits {
		seen[key] = struct{}{}
	}

	for key := range seen {
		from, fromLimited := current.Limit(key)
		to, toLimited := target.Limit(key)
		change := LimitChange{Key: key, From: from, To: to, FromLimited: fromLimited, ToLimited: toLimited}

		switch {
		case !fromLimited && !toLimited:
			// unlimited on both sides, not a change
		case !fromLimited && toLimited:
			c.TightenedLimits = append(c.TightenedLimits, change)
		case fromLimited && !toLimited:
			c.LoosenedLimits = append(c.LoosenedLimits, change)
		case to < from:
			c.TightenedLimits = append(c.TightenedLimits, change)
		case to > from:
			c.LoosenedLimits = append(c.LoosenedLimits, change)
		}
	}

	return c
}

// IsDowngrade reports whether moving from current to target loses
// capacity: any enabled feature dropped or any limit tightened counts.
func IsDowngrade(current, target Package) bool {
	return Compare(current, target).HasRegressions()
}
