package plan

// DefaultFreePlan is the package a business runs on when it has no
// active subscription. It mirrors the free tier sold in the catalog:
// core POS features on, growth features off, tight caps on everything
// countable. Transaction volume is capped per month regardless of
// billing cadence.
func DefaultFreePlan() Package {
	return Package{
		Tier:          "Free",
		Name:          "Free Plan (Default)",
		BillingPeriod: "monthly",
		Features: map[string]bool{
			"pos":                    true,
			"inventory":              true,
			"reports":                true,
			"multi_outlet":           false,
			"api_access":             false,
			"custom_branding":        false,
			"priority_support":       false,
			"advanced_analytics":     false,
			"integrations":           false,
			"mobile_app":             true,
			"web_app":                true,
			"backup_restore":         false,
			"user_permissions":       false,
			"discount_coupons":       true,
			"loyalty_program":        false,
			"email_notifications":    true,
			"sms_notifications":      false,
			"whatsapp_notifications": false,
		},
		Limits: map[string]int64{
			"max_users":                  1,
			"max_outlets":                1,
			"max_products":               100,
			"max_transactions_per_month": 500,
			"storage_limit_gb":           1,
		},
	}
}
