package rules

import (
	"context"
	"sync/atomic"

	"github.com/storelane/plankit/pkg/plan"
	"github.com/storelane/plankit/pkg/quota"
)

// Guard binds a plan resolver, a usage ledger and a ruleset into one
// entry point for resource handlers: acquire capacity before the
// entity write, commit on success, release on failure.
//
// The Hold it returns makes the reserve/release pairing safe by
// construction instead of by caller discipline: defer hold.Release and
// call hold.Commit after the downstream write succeeds, and the
// compensating decrement runs exactly when the write did not.
type Guard struct {
	resolver plan.Resolver
	ledger   quota.Ledger
	rules    Ruleset
	opts     []quota.Option
}

// NewGuard returns a Guard. A nil ruleset means no component is
// restricted.
func NewGuard(resolver plan.Resolver, ledger quota.Ledger, rules Ruleset, opts ...quota.Option) *Guard {
	return &Guard{resolver: resolver, ledger: ledger, rules: rules, opts: opts}
}

// Hold is an acquired reservation awaiting the outcome of the
// downstream write. Exactly one of Commit or Release takes effect;
// whichever runs second is a no-op, so Release is safe in a defer.
type Hold struct {
	enforcer *quota.Enforcer
	rule     Rule
	qty      int64
	settled  atomic.Bool
}

// Commit disarms the hold: the reserved capacity stays claimed.
func (h *Hold) Commit() {
	h.settled.Store(true)
}

// Release gives the reserved capacity back if the hold is still armed.
func (h *Hold) Release(ctx context.Context) error {
	if h.enforcer == nil || h.settled.Swap(true) {
		return nil
	}
	return h.enforcer.Release(ctx, h.rule.Counter, h.qty, h.rule.Period)
}

// Acquire runs the component's feature gate and reserves capacity for
// qty about-to-be-created entities.
//
// An unrestricted component (no rule) succeeds immediately with an
// inert Hold. Denials come back as *quota.Error for the handler
// boundary to translate.
func (g *Guard) Acquire(ctx context.Context, businessID, component string, qty int64) (*Hold, error) {
	rule, restricted := g.rules.Lookup(component)
	if !restricted {
		return &Hold{}, nil
	}

	enforcer, err := quota.New(ctx, businessID, g.resolver, g.ledger, g.opts...)
	if err != nil {
		return nil, err
	}

	if rule.Feature != "" {
		if err := enforcer.RequireFeature(rule.Feature); err != nil {
			return nil, err
		}
	}

	if _, err := enforcer.Reserve(ctx, quota.ReserveRequest{
		Counter:  rule.Counter,
		LimitKey: rule.LimitKey,
		Qty:      qty,
		Period:   rule.Period,
		Reason:   component,
	}); err != nil {
		return nil, err
	}

	return &Hold{enforcer: enforcer, rule: rule, qty: qty}, nil
}

// ReleaseComponent returns capacity for a confirmed deletion of a
// previously created entity. Unrestricted components are a no-op.
func (g *Guard) ReleaseComponent(ctx context.Context, businessID, component string, qty int64) error {
	rule, restricted := g.rules.Lookup(component)
	if !restricted {
		return nil
	}

	enforcer, err := quota.New(ctx, businessID, g.resolver, g.ledger, g.opts...)
	if err != nil {
		return err
	}
	return enforcer.Release(ctx, rule.Counter, qty, rule.Period)
}
