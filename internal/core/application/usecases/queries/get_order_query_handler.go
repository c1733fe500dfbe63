package queries

import (
	"context"
	"database/sql"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order with its lines straight from the
// database, bypassing the aggregate. The write side goes through the
// repository; queries only need the rows.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single order lookups.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the lookup. Returns errs.ObjectNotFoundError when no order
// exists under the requested identifier.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var response GetOrderQueryResponse
	var id, customerID uuid.UUID
	var status int

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			status,
			version
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	if err := row.Scan(&id, &customerID, &status, &response.Version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	response.ID = orderID

	customer, err := kernel.UUIDFromBytes(customerID[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	response.CustomerID = customer
	response.Status = order.Status(status).String()

	lines, err := h.readLines(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	response.Lines = lines

	return response, nil
}

func (h GetOrderQueryHandler) readLines(
	ctx context.Context,
	orderID kernel.UUID,
) ([]OrderLineResponse, error) {
	lines := make([]OrderLineResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			sku,
			quantity,
			allocated_quantity
		FROM order_lines
		WHERE order_id = ?
		ORDER BY id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line OrderLineResponse
		var id uuid.UUID

		if err = rows.Scan(&id, &line.SKU, &line.Quantity, &line.AllocatedQuantity); err != nil {
			return nil, err
		}

		lineID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		line.ID = lineID
		lines = append(lines, line)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}
