package contract

import "errors"

// Sentinel errors shared across packages.
var (
	ErrNoCriteria       = errors.New("no criteria persisted")
	ErrCorruptCriteria  = errors.New("persisted criteria are corrupt")
	ErrPartnerNotFound  = errors.New("partner not found")
	ErrUnknownMetric    = errors.New("unknown metric")
	ErrWrongMetricType  = errors.New("operation does not apply to this metric type")
	ErrEmptyPartnerName = errors.New("partner name is required")
	ErrStoreUnavailable = errors.New("store is not initialized")
)
