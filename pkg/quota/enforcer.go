package quota

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/storelane/plankit/pkg/period"
	"github.com/storelane/plankit/pkg/plan"
)

// DisableLimitsEnv is the environment toggle that turns off every
// numeric limit process-wide. Feature gates stay active. Meant for
// local and test environments; read once per Reserve call so tests can
// flip it without rebuilding enforcers.
const DisableLimitsEnv = "PLAN_LIMITS_DISABLED"

// Enforcer is the capacity gate for one business, for the duration of
// one logical operation. It snapshots the business's package at
// construction and never refreshes it: build a new enforcer per
// request if plan freshness matters.
//
// The enforcer has no side effects other than ledger writes. It never
// logs, and every failure is a typed *Error the resource handler
// translates at its boundary.
type Enforcer struct {
	businessID     string
	pkg            plan.Package
	ledger         Ledger
	clock          func() time.Time
	limitsDisabled func() bool
}

// Option customizes an Enforcer.
type Option func(*Enforcer)

// WithClock overrides the time source used for period keys and
// record timestamps. For tests.
func WithClock(clock func() time.Time) Option {
	return func(e *Enforcer) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithDisableLimits overrides the process-wide limit kill-switch
// check. The default reads DisableLimitsEnv on every Reserve call.
func WithDisableLimits(disabled func() bool) Option {
	return func(e *Enforcer) {
		if disabled != nil {
			e.limitsDisabled = disabled
		}
	}
}

// New builds an Enforcer bound to businessID, fetching the active
// package snapshot through resolver exactly once. A resolver that
// reports no package yields an empty configuration: every feature
// gate closed, every limit absent and therefore unlimited.
func New(ctx context.Context, businessID string, resolver plan.Resolver, ledger Ledger, opts ...Option) (*Enforcer, error) {
	if resolver == nil {
		return nil, errors.New("quota: plan resolver is required")
	}
	if ledger == nil {
		return nil, errors.New("quota: ledger is required")
	}

	pkg, err := resolver.ActivePackage(ctx, businessID)
	if err != nil {
		return nil, err
	}

	e := &Enforcer{
		businessID: businessID,
		pkg:        pkg,
		ledger:     ledger,
		clock:      time.Now,
		limitsDisabled: func() bool {
			disabled, _ := strconv.ParseBool(os.Getenv(DisableLimitsEnv))
			return disabled
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Package returns the plan snapshot taken at construction.
func (e *Enforcer) Package() plan.Package {
	return e.pkg
}

// HasFeature reports whether the package enables the feature. Absent
// keys and absent feature maps are disabled.
func (e *Enforcer) HasFeature(key string) bool {
	return e.pkg.HasFeature(key)
}

// RequireFeature returns a FEATURE_NOT_AVAILABLE error when the
// package does not enable the feature. No side effects.
func (e *Enforcer) RequireFeature(key string) error {
	if e.HasFeature(key) {
		return nil
	}
	return &Error{
		Code:    CodeFeatureNotAvailable,
		Message: fmt.Sprintf("This feature is not available on your current plan: %s", key),
		Meta: map[string]any{
			"feature": key,
			"tier":    e.pkg.Tier,
		},
	}
}

// Limit returns the cap for the given limit key; limited=false means
// the key is absent from the package and the resource is unlimited.
func (e *Enforcer) Limit(key string) (limit int64, limited bool) {
	return e.pkg.Limit(key)
}

// ReserveRequest names the counter to claim capacity on and the
// package key that caps it.
type ReserveRequest struct {
	// Counter is the usage tally to increment, e.g. "outlets".
	Counter string
	// LimitKey is the package field holding the cap, e.g. "max_outlets".
	LimitKey string
	// Qty is the capacity to claim. Qty <= 0 makes Reserve a no-op.
	Qty int64
	// Period optionally forces "month" or "year" instead of deriving
	// the granularity from the billing cadence. Empty or "billing"
	// derives.
	Period string
	// Reason tags denial metadata for diagnostics, e.g. the calling
	// handler name.
	Reason string
}

// Reservation reports what a successful Reserve claimed and where.
type Reservation struct {
	Reserved  int64
	Limit     int64
	Limited   bool
	Period    period.Period
	PeriodKey string
}

// Reserve atomically claims capacity on a counter within the current
// period bucket.
//
// Two concurrent reservations against the last unit of capacity
// resolve to exactly one success and one PACKAGE_LIMIT_REACHED; the
// atomicity is delegated entirely to Ledger.IncrementIfBelow. A denial
// against a period bucket that has no usage record yet leaves no
// record behind.
func (e *Enforcer) Reserve(ctx context.Context, req ReserveRequest) (Reservation, error) {
	if req.Qty <= 0 {
		return Reservation{}, nil
	}

	p := e.resolvePeriod(req.Period)
	now := e.clock()
	key := RecordKey{BusinessID: e.businessID, Period: p, PeriodKey: period.Key(p, now)}
	res := Reservation{Reserved: req.Qty, Period: p, PeriodKey: key.PeriodKey}

	limit, limited := e.pkg.Limit(req.LimitKey)
	if e.limitsDisabled() {
		limited = false
	}

	if limited {
		if limit < 0 {
			return Reservation{}, &Error{
				Code:    CodeLimitInvalid,
				Message: fmt.Sprintf("Package limit misconfigured: %s", req.LimitKey),
				Meta: map[string]any{
					"limit_key": req.LimitKey,
					"value":     limit,
					"tier":      e.pkg.Tier,
				},
			}
		}
		// A request larger than the whole cap can never be admitted.
		// Denying before the base-record upsert keeps storage fully
		// untouched: no phantom record for a bucket that never held
		// any usage.
		if req.Qty > limit {
			return Reservation{}, e.limitReached(req, key, limit, 0)
		}
		res.Limit, res.Limited = limit, true
	}

	// The base record is created up front so the conditional increment
	// below never needs upsert semantics. Racing creators are fine.
	if err := e.ledger.Ensure(ctx, key, now); err != nil && !errors.Is(err, ErrDuplicateRecord) {
		return Reservation{}, err
	}

	if !limited {
		if err := e.ledger.IncrementUnchecked(ctx, key, req.Counter, req.Qty, now); err != nil {
			return Reservation{}, err
		}
		return res, nil
	}

	ok, err := e.ledger.IncrementIfBelow(ctx, key, req.Counter, req.Qty, limit, now)
	if errors.Is(err, ErrDuplicateRecord) {
		// Lost a race with another request inserting the base record;
		// one retry, then surface whatever happens.
		ok, err = e.ledger.IncrementIfBelow(ctx, key, req.Counter, req.Qty, limit, now)
	}
	if err != nil {
		return Reservation{}, err
	}
	if !ok {
		// Best effort: the observed usage only feeds denial metadata.
		current, _ := e.ledger.Current(ctx, key, req.Counter)
		return Reservation{}, e.limitReached(req, key, limit, current)
	}

	return res, nil
}

// Release returns previously reserved capacity: the compensating
// action for a failed downstream write after a successful Reserve, or
// for a confirmed deletion. The decrement is unconditional with no
// floor at zero, so callers must pair it with a matching Reserve.
func (e *Enforcer) Release(ctx context.Context, counter string, qty int64, periodOverride string) error {
	if qty <= 0 {
		return nil
	}

	p := e.resolvePeriod(periodOverride)
	now := e.clock()
	key := RecordKey{BusinessID: e.businessID, Period: p, PeriodKey: period.Key(p, now)}

	return e.ledger.Decrement(ctx, key, counter, qty, now)
}

// resolvePeriod honors an explicit month/year override and otherwise
// derives the granularity from the package's billing cadence.
func (e *Enforcer) resolvePeriod(override string) period.Period {
	if p, ok := period.Parse(override); ok {
		return p
	}
	return period.ResolveFromBilling(e.pkg.BillingPeriod)
}

func (e *Enforcer) limitReached(req ReserveRequest, key RecordKey, limit, current int64) *Error {
	return &Error{
		Code:    CodeLimitReached,
		Message: fmt.Sprintf("Package limit reached for %s. Upgrade your plan to continue.", req.LimitKey),
		Meta: map[string]any{
			"limit_key":      req.LimitKey,
			"counter":        req.Counter,
			"limit":          limit,
			"current":        current,
			"attempted":      req.Qty,
			"tier":           e.pkg.Tier,
			"period":         key.Period,
			"period_key":     key.PeriodKey,
			"reason":         req.Reason,
			"billing_period": e.pkg.BillingPeriod,
		},
	}
}
