package rules

// Rule wires a business concept to its enforcement keys: the feature
// that must be enabled, the package field holding the cap, the usage
// counter to tally, and an optional period override.
type Rule struct {
	// Feature gates the concept entirely; empty means no gate.
	Feature string
	// LimitKey is the package field naming the cap.
	LimitKey string
	// Counter is the usage tally name in the ledger.
	Counter string
	// Period forces "month" or "year"; empty derives from billing.
	Period string
}

// Ruleset maps component names to their enforcement rules. Components
// with no entry are unrestricted: no feature gate, no cap, no tally.
type Ruleset map[string]Rule

// Lookup returns the rule for a component, if it is restricted.
func (rs Ruleset) Lookup(component string) (Rule, bool) {
	rule, ok := rs[component]
	return rule, ok
}

// DefaultRules is the enforcement table for the POS domain. It is
// configuration, not logic: handlers enforce by component name instead
// of wiring feature/limit/counter keys at every call site.
//
// Transaction volume is deliberately capped per calendar month even on
// yearly billing, so a yearly plan cannot burn a year of volume in one
// spike. Stores, units, categories, taxes and similar low-cardinality
// setup entities carry no rule and are never limited.
func DefaultRules() Ruleset {
	return Ruleset{
		// Core catalog.
		"products":           {Feature: "inventory", LimitKey: "max_products", Counter: "products"},
		"brands":             {Feature: "inventory", LimitKey: "max_brands", Counter: "brands"},
		"variants":           {Feature: "inventory", LimitKey: "max_variants", Counter: "variants"},
		"composite_variants": {Feature: "inventory", LimitKey: "max_composite_variants", Counter: "composite_variants"},

		// Business scale, multi-branch.
		"outlets":            {Feature: "multi_outlet", LimitKey: "max_outlets", Counter: "outlets"},
		"business_locations": {Feature: "multi_outlet", LimitKey: "max_business_locations", Counter: "business_locations"},

		// People, CRM.
		"users":     {Feature: "user_permissions", LimitKey: "max_users", Counter: "users"},
		"customers": {Feature: "reports", LimitKey: "max_customers", Counter: "customers"},
		"suppliers": {Feature: "inventory", LimitKey: "max_suppliers", Counter: "suppliers"},

		// Selling, marketing.
		"discounts":  {Feature: "discount_coupons", LimitKey: "max_discounts", Counter: "discounts"},
		"coupons":    {Feature: "discount_coupons", LimitKey: "max_coupons", Counter: "coupons"},
		"gift_cards": {Feature: "loyalty_program", LimitKey: "max_gift_cards", Counter: "gift_cards"},

		// Transactions reset monthly regardless of billing cadence.
		"sales":           {Feature: "pos", LimitKey: "max_transactions_per_month", Counter: "transactions", Period: "month"},
		"purchase_orders": {Feature: "inventory", LimitKey: "max_purchase_orders", Counter: "purchase_orders"},

		// Ops, accounting.
		"expenses":      {Feature: "reports", LimitKey: "max_expenses", Counter: "expenses"},
		"cash_sessions": {Feature: "pos", LimitKey: "max_cash_sessions", Counter: "cash_sessions"},

		// Stock movements can grow huge; capped on lower tiers.
		"stock": {Feature: "inventory", LimitKey: "max_stock_movements", Counter: "stock_movements"},
	}
}
