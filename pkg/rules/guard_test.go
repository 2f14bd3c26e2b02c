package rules_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storelane/plankit/pkg/period"
	"github.com/storelane/plankit/pkg/plan"
	"github.com/storelane/plankit/pkg/quota"
	"github.com/storelane/plankit/pkg/rules"
)

var guardNow = time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)

type guardFixture struct {
	guard      *rules.Guard
	ledger     *quota.MemoryLedger
	businessID string
}

func newGuardFixture(t *testing.T, pkg plan.Package) guardFixture {
	t.Helper()

	businessID := uuid.NewString()
	ledger := quota.NewMemoryLedger()
	resolver := plan.NewStaticResolver(map[string]plan.Package{businessID: pkg})

	guard := rules.NewGuard(resolver, ledger, rules.DefaultRules(),
		quota.WithClock(func() time.Time { return guardNow }),
		quota.WithDisableLimits(func() bool { return false }),
	)
	return guardFixture{guard: guard, ledger: ledger, businessID: businessID}
}

func starterPackage() plan.Package {
	return plan.Package{
		Tier:          "Starter",
		BillingPeriod: "monthly",
		Features: map[string]bool{
			"multi_outlet": true,
			"pos":          true,
		},
		Limits: map[string]int64{
			"max_outlets": 2,
		},
	}
}

func (f guardFixture) counter(t *testing.T, name string) int64 {
	t.Helper()

	counters, _ := f.ledger.Record(quota.RecordKey{
		BusinessID: f.businessID,
		Period:     period.Month,
		PeriodKey:  "2025-06",
	})
	return counters[name]
}

func TestGuard_Acquire(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("commit keeps the reservation", func(t *testing.T) {
		t.Parallel()

		f := newGuardFixture(t, starterPackage())

		hold, err := f.guard.Acquire(ctx, f.businessID, "outlets", 1)
		require.NoError(t, err)

		hold.Commit()
		require.NoError(t, hold.Release(ctx), "release after commit is inert")

		assert.Equal(t, int64(1), f.counter(t, "outlets"))
	})

	t.Run("release compensates a failed write", func(t *testing.T) {
		t.Parallel()

		f := newGuardFixture(t, starterPackage())

		hold, err := f.guard.Acquire(ctx, f.businessID, "outlets", 1)
		require.NoError(t, err)

		require.NoError(t, hold.Release(ctx))
		assert.Zero(t, f.counter(t, "outlets"))
	})

	t.Run("release is exactly-once", func(t *testing.T) {
		t.Parallel()

		f := newGuardFixture(t, starterPackage())

		hold, err := f.guard.Acquire(ctx, f.businessID, "outlets", 1)
		require.NoError(t, err)

		require.NoError(t, hold.Release(ctx))
		require.NoError(t, hold.Release(ctx))
		assert.Zero(t, f.counter(t, "outlets"), "double release must not drive the counter negative")
	})

	t.Run("feature gate denies before reserving", func(t *testing.T) {
		t.Parallel()

		pkg := starterPackage()
		pkg.Features["multi_outlet"] = false
		f := newGuardFixture(t, pkg)

		_, err := f.guard.Acquire(ctx, f.businessID, "outlets", 1)
		require.Error(t, err)
		assert.True(t, quota.IsFeatureNotAvailable(err))
		assert.Zero(t, f.counter(t, "outlets"))
	})

	t.Run("limit denial carries the component as reason", func(t *testing.T) {
		t.Parallel()

		f := newGuardFixture(t, starterPackage())

		for range 2 {
			hold, err := f.guard.Acquire(ctx, f.businessID, "outlets", 1)
			require.NoError(t, err)
			hold.Commit()
		}

		_, err := f.guard.Acquire(ctx, f.businessID, "outlets", 1)
		require.Error(t, err)
		assert.True(t, quota.IsLimitReached(err))

		qerr, ok := quota.AsError(err)
		require.True(t, ok)
		assert.Equal(t, "outlets", qerr.Meta["reason"])
	})

	t.Run("unrestricted component yields an inert hold", func(t *testing.T) {
		t.Parallel()

		f := newGuardFixture(t, starterPackage())

		hold, err := f.guard.Acquire(ctx, f.businessID, "stores", 1)
		require.NoError(t, err)
		require.NoError(t, hold.Release(ctx))

		_, exists := f.ledger.Record(quota.RecordKey{
			BusinessID: f.businessID,
			Period:     period.Month,
			PeriodKey:  "2025-06",
		})
		assert.False(t, exists)
	})

	t.Run("resolver failure propagates", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("plan store down")
		resolver := plan.ResolverFunc(func(ctx context.Context, businessID string) (plan.Package, error) {
			return plan.Package{}, boom
		})
		guard := rules.NewGuard(resolver, quota.NewMemoryLedger(), rules.DefaultRules())

		_, err := guard.Acquire(ctx, "b-1", "outlets", 1)
		assert.ErrorIs(t, err, boom)
	})
}

func TestGuard_ReleaseComponent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("returns capacity on deletion", func(t *testing.T) {
		t.Parallel()

		f := newGuardFixture(t, starterPackage())

		hold, err := f.guard.Acquire(ctx, f.businessID, "outlets", 1)
		require.NoError(t, err)
		hold.Commit()

		require.NoError(t, f.guard.ReleaseComponent(ctx, f.businessID, "outlets", 1))
		assert.Zero(t, f.counter(t, "outlets"))
	})

	t.Run("unrestricted component is a no-op", func(t *testing.T) {
		t.Parallel()

		f := newGuardFixture(t, starterPackage())
		assert.NoError(t, f.guard.ReleaseComponent(ctx, f.businessID, "stores", 1))
	})
}
