package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStalledOrdersQueryHandler finds orders whose waiting status has not
// moved within the query's threshold. Used by the stalled order monitor job
// to surface lost validation or allocation responses.
type GetStalledOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetStalledOrdersQueryHandler creates a handler for stalled order queries.
// Requires a GORM database connection for query execution.
func NewGetStalledOrdersQueryHandler(db *gorm.DB) GetStalledOrdersQueryHandler {
	return GetStalledOrdersQueryHandler{db: db}
}

// Handle executes the query. Results are sorted oldest first so operators see
// the longest-waiting orders at the top.
func (h GetStalledOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetStalledOrdersQuery,
) ([]GetStalledOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	cutoff := time.Now().Add(-query.Threshold())
	stalled := make([]GetStalledOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			updated_at
		FROM orders
		WHERE status IN (?, ?, ?)
		  AND updated_at < ?
		ORDER BY updated_at
	`,
		order.StatusValidationPending,
		order.StatusAllocationPending,
		order.StatusPendingInventory,
		cutoff,
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response GetStalledOrdersQueryResponse
		var id uuid.UUID
		var status int

		if err = rows.Scan(&id, &status, &response.UpdatedAt); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ID = orderID
		response.Status = order.Status(status).String()
		stalled = append(stalled, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return stalled, nil
}
