package plan

import "errors"

var (
	ErrFailedToLoadCatalog  = errors.New("plan: failed to load catalog")
	ErrTierNotInCatalog     = errors.New("plan: tier not found in catalog")
	ErrFailedToResolvePlan  = errors.New("plan: failed to resolve active package")
	ErrFailedToDecodePlan   = errors.New("plan: failed to decode plan document")
	ErrTierResolverRequired = errors.New("plan: tier resolver is required")
)
