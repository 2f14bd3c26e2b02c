package period_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/storelane/plankit/pkg/period"
)

func TestResolveFromBilling(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		billing string
		want    period.Period
	}{
		{name: "yearly billing", billing: "yearly", want: period.Year},
		{name: "yearly with whitespace", billing: "  Yearly ", want: period.Year},
		{name: "monthly billing", billing: "monthly", want: period.Month},
		{name: "quarterly billing resets monthly", billing: "quarterly", want: period.Month},
		{name: "empty cadence", billing: "", want: period.Month},
		{name: "unknown cadence", billing: "lifetime", want: period.Month},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, period.ResolveFromBilling(tt.billing))
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  period.Period
		ok    bool
	}{
		{name: "month", input: "month", want: period.Month, ok: true},
		{name: "year", input: "year", want: period.Year, ok: true},
		{name: "mixed case", input: " YEAR ", want: period.Year, ok: true},
		{name: "billing is not explicit", input: "billing", ok: false},
		{name: "empty", input: "", ok: false},
		{name: "garbage", input: "weekly", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := period.Parse(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestKey(t *testing.T) {
	t.Parallel()

	ts := time.Date(2025, time.June, 15, 23, 30, 0, 0, time.UTC)

	t.Run("month key", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "2025-06", period.Key(period.Month, ts))
	})

	t.Run("year key", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "2025", period.Key(period.Year, ts))
	})

	t.Run("converts to UTC before formatting", func(t *testing.T) {
		t.Parallel()

		// 2025-07-01 01:00 in UTC+2 is still June in UTC.
		zone := time.FixedZone("UTC+2", 2*60*60)
		local := time.Date(2025, time.July, 1, 1, 0, 0, 0, zone)
		assert.Equal(t, "2025-06", period.Key(period.Month, local))
	})

	t.Run("deterministic", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, period.Key(period.Month, ts), period.Key(period.Month, ts))
	})
}
