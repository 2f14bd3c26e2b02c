package plan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/storelane/plankit/pkg/plan"
)

func growthPackage() plan.Package {
	return plan.Package{
		Tier: "Growth",
		Features: map[string]bool{
			"pos":          true,
			"multi_outlet": true,
		},
		Limits: map[string]int64{
			"max_products": 5000,
			"max_outlets":  10,
		},
	}
}

func freePackage() plan.Package {
	return plan.Package{
		Tier: "Free",
		Features: map[string]bool{
			"pos":          true,
			"multi_outlet": false,
		},
		Limits: map[string]int64{
			"max_products": 100,
			"max_outlets":  1,
		},
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()

	t.Run("upgrade gains features and loosens limits", func(t *testing.T) {
		t.Parallel()

		c := plan.Compare(freePackage(), growthPackage())

		assert.Equal(t, []string{"multi_outlet"}, c.GainedFeatures)
		assert.Empty(t, c.LostFeatures)
		assert.Len(t, c.LoosenedLimits, 2)
		assert.Empty(t, c.TightenedLimits)
		assert.False(t, c.HasRegressions())
	})

	t.Run("downgrade loses features and tightens limits", func(t *testing.T) {
		t.Parallel()

		c := plan.Compare(growthPackage(), freePackage())

		assert.Equal(t, []string{"multi_outlet"}, c.LostFeatures)
		assert.Len(t, c.TightenedLimits, 2)
		assert.True(t, c.HasRegressions())
	})

	t.Run("newly capped resource is tightened", func(t *testing.T) {
		t.Parallel()

		current := growthPackage() // max_customers absent: unlimited
		target := growthPackage()
		target.Limits["max_customers"] = 500

		c := plan.Compare(current, target)
		assert.Len(t, c.TightenedLimits, 1)
		assert.Equal(t, "max_customers", c.TightenedLimits[0].Key)
		assert.False(t, c.TightenedLimits[0].FromLimited)
	})

	t.Run("uncapping a resource is loosened", func(t *testing.T) {
		t.Parallel()

		current := growthPackage()
		target := growthPackage()
		delete(target.Limits, "max_outlets")

		c := plan.Compare(current, target)
		assert.Len(t, c.LoosenedLimits, 1)
		assert.Equal(t, "max_outlets", c.LoosenedLimits[0].Key)
		assert.False(t, c.LoosenedLimits[0].ToLimited)
	})

	t.Run("disabled feature on both sides is not a change", func(t *testing.T) {
		t.Parallel()

		c := plan.Compare(freePackage(), plan.Package{
			Tier:     "Other",
			Features: map[string]bool{"pos": true, "multi_outlet": false},
			Limits:   freePackage().Limits,
		})
		assert.Empty(t, c.GainedFeatures)
		assert.Empty(t, c.LostFeatures)
	})
}

func TestIsDowngrade(t *testing.T) {
	t.Parallel()

	assert.True(t, plan.IsDowngrade(growthPackage(), freePackage()))
	assert.False(t, plan.IsDowngrade(freePackage(), growthPackage()))
	assert.False(t, plan.IsDowngrade(freePackage(), freePackage()))
}
