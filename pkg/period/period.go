package period

import (
	"strings"
	"time"
)

// Period is the reset granularity of a usage counter.
type Period string

const (
	// Month resets counters every calendar month (UTC).
	Month Period = "month"
	// Year resets counters every calendar year (UTC).
	Year Period = "year"
)

// Billing is the pseudo-period callers pass to derive the real period
// from the package's billing cadence instead of forcing one.
const Billing = "billing"

// ResolveFromBilling maps a package billing cadence to a quota period.
// Only yearly billing gets yearly quotas; every other cadence (monthly,
// quarterly, unset, unrecognized) resets monthly. Lifetime quotas are
// not supported.
func ResolveFromBilling(billingPeriod string) Period {
	if strings.ToLower(strings.TrimSpace(billingPeriod)) == "yearly" {
		return Year
	}
	return Month
}

// Parse returns the Period named by s, if s is an explicit override.
// The Billing pseudo-period and anything unrecognized report false.
func Parse(s string) (Period, bool) {
	switch Period(strings.ToLower(strings.TrimSpace(s))) {
	case Month:
		return Month, true
	case Year:
		return Year, true
	}
	return "", false
}

// Key formats t as the canonical period key: "2006-01" for Month,
// "2006" for Year. Always UTC, so two processes in different zones
// agree on the bucket.
func Key(p Period, t time.Time) string {
	if p == Year {
		return t.UTC().Format("2006")
	}
	return t.UTC().Format("2006-01")
}
