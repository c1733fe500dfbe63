// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with proper indexing
// for efficient querying by status and customer.
type OrderDTO struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID      `gorm:"type:uuid;index"`
	Status     int            `gorm:"index"`
	Version    int64
	Lines      []OrderLineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time
	UpdatedAt  time.Time      `gorm:"index"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO represents one order line row. Lines live in their own table
// keyed by the owning order so allocation quantities can be updated per line.
type OrderLineDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID           uuid.UUID `gorm:"type:uuid;index"`
	SKU               string    `gorm:"column:sku"`
	Quantity          int
	AllocatedQuantity int
}

// TableName specifies the database table name for order line entities.
func (OrderLineDTO) TableName() string {
	return "order_lines"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	lines := aggregate.Lines()
	lineDTOs := make([]OrderLineDTO, 0, len(lines))
	for _, line := range lines {
		lineDTOs = append(lineDTOs, OrderLineDTO{
			ID:                line.ID().Bytes(),
			OrderID:           aggregate.ID().Bytes(),
			SKU:               line.SKU(),
			Quantity:          line.Quantity(),
			AllocatedQuantity: line.AllocatedQuantity(),
		})
	}

	return OrderDTO{
		ID:         aggregate.ID().Bytes(),
		CustomerID: aggregate.CustomerID().Bytes(),
		Status:     int(aggregate.Status()),
		Version:    aggregate.Version(),
		Lines:      lineDTOs,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including lines and status using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]*order.Line, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		lineID, lineErr := kernel.UUIDFromBytes(lineDTO.ID[:])
		if lineErr != nil {
			return nil, lineErr
		}

		line, lineErr := order.RestoreLine(lineID, lineDTO.SKU, lineDTO.Quantity, lineDTO.AllocatedQuantity)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(id, customerID, lines, order.Status(dto.Status), dto.Version)
}
