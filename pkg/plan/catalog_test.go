package plan_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storelane/plankit/pkg/plan"
)

const testCatalogYAML = `
Free:
  billing_period: monthly
  max_products: 100
  max_outlets: 1
  features:
    pos: true
    multi_outlet: false
Growth:
  tier: Growth
  billing_period: yearly
  max_products: 5000
  max_outlets: 10
  features:
    pos: true
    multi_outlet: true
Legacy:
  limits:
    max_products: 250
  features:
    pos: true
`

func TestLoadCatalog(t *testing.T) {
	t.Parallel()

	catalog, err := plan.LoadCatalog(strings.NewReader(testCatalogYAML))
	require.NoError(t, err)
	require.Len(t, catalog, 3)

	t.Run("flat document", func(t *testing.T) {
		t.Parallel()

		free := catalog["Free"]
		assert.Equal(t, "Free", free.Tier, "tier inherited from catalog key")
		limit, ok := free.Limit("max_products")
		assert.True(t, ok)
		assert.Equal(t, int64(100), limit)
		assert.True(t, free.HasFeature("pos"))
		assert.False(t, free.HasFeature("multi_outlet"))
	})

	t.Run("legacy nested document", func(t *testing.T) {
		t.Parallel()

		legacy := catalog["Legacy"]
		limit, ok := legacy.Limit("max_products")
		assert.True(t, ok)
		assert.Equal(t, int64(250), limit)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()

		_, err := plan.LoadCatalog(strings.NewReader("{notyaml"))
		assert.ErrorIs(t, err, plan.ErrFailedToLoadCatalog)
	})
}

func TestNewCatalogResolver(t *testing.T) {
	t.Parallel()

	catalog, err := plan.LoadCatalog(strings.NewReader(testCatalogYAML))
	require.NoError(t, err)

	t.Run("requires tier resolver", func(t *testing.T) {
		t.Parallel()

		_, err := plan.NewCatalogResolver(catalog, nil)
		assert.ErrorIs(t, err, plan.ErrTierResolverRequired)
	})

	t.Run("resolves assigned tier", func(t *testing.T) {
		t.Parallel()

		resolver, err := plan.NewCatalogResolver(catalog, func(ctx context.Context, businessID string) (string, error) {
			return "Growth", nil
		})
		require.NoError(t, err)

		pkg, err := resolver.ActivePackage(context.Background(), "b-1")
		require.NoError(t, err)
		assert.Equal(t, "Growth", pkg.Tier)
		assert.True(t, pkg.HasFeature("multi_outlet"))
	})

	t.Run("empty tier falls back to free plan", func(t *testing.T) {
		t.Parallel()

		resolver, err := plan.NewCatalogResolver(catalog, func(ctx context.Context, businessID string) (string, error) {
			return "", nil
		})
		require.NoError(t, err)

		pkg, err := resolver.ActivePackage(context.Background(), "b-1")
		require.NoError(t, err)
		assert.Equal(t, "Free", pkg.Tier)
	})

	t.Run("unknown tier is catalog drift", func(t *testing.T) {
		t.Parallel()

		resolver, err := plan.NewCatalogResolver(catalog, func(ctx context.Context, businessID string) (string, error) {
			return "Retired", nil
		})
		require.NoError(t, err)

		_, err = resolver.ActivePackage(context.Background(), "b-1")
		assert.ErrorIs(t, err, plan.ErrTierNotInCatalog)
	})

	t.Run("tier lookup failure propagates", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("subscription store down")
		resolver, err := plan.NewCatalogResolver(catalog, func(ctx context.Context, businessID string) (string, error) {
			return "", boom
		})
		require.NoError(t, err)

		_, err = resolver.ActivePackage(context.Background(), "b-1")
		assert.ErrorIs(t, err, boom)
		assert.ErrorIs(t, err, plan.ErrFailedToResolvePlan)
	})
}
