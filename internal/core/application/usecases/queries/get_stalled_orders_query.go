package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetStalledOrdersQueryIsNotConstructed = errors.New(
		"GetStalledOrdersQuery must be created via NewGetStalledOrdersQuery constructor",
	)
	ErrThresholdIsInvalid = errors.New("threshold must be greater than 0")
)

// GetStalledOrdersQuery retrieves orders stuck in a waiting status longer
// than the threshold. Waiting statuses are VALIDATION_PENDING,
// ALLOCATION_PENDING and PENDING_INVENTORY: each expects an answer from a
// downstream service, so an old row means a lost or unprocessed response.
type GetStalledOrdersQuery struct {
	threshold time.Duration

	guard guard.ConstructorGuard
}

// NewGetStalledOrdersQuery creates a query for orders whose waiting status is
// older than threshold.
func NewGetStalledOrdersQuery(threshold time.Duration) (GetStalledOrdersQuery, error) {
	if threshold <= 0 {
		return GetStalledOrdersQuery{}, ErrThresholdIsInvalid
	}

	return GetStalledOrdersQuery{
		threshold: threshold,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStalledOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetStalledOrdersQueryIsNotConstructed)
}

// Threshold returns the minimum age for a waiting order to count as stalled.
func (q GetStalledOrdersQuery) Threshold() time.Duration {
	return q.threshold
}

// GetStalledOrdersQueryResponse identifies one stalled order.
type GetStalledOrdersQueryResponse struct {
	ID        kernel.UUID
	Status    string
	UpdatedAt time.Time
}
