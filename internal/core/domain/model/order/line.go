package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrLineIsNotConstructed is returned when a Line instance was not created
	// through NewLine or RestoreLine.
	ErrLineIsNotConstructed = errors.New("Line must be created via NewLine or RestoreLine")
)

// Line is a single position on an order: a product reference and the quantity
// the customer asked for. Identity and requested quantity are fixed at
// creation; only the allocated quantity changes, and only while the aggregate
// processes an allocation verdict.
type Line struct {
	id kernel.UUID

	// sku references the product being ordered
	sku string

	// quantity is the amount requested by the customer
	quantity int

	// allocatedQuantity is the amount reserved by the allocator, zero until
	// an allocation verdict arrives
	allocatedQuantity int

	isConstructed bool
}

// NewLine creates an order line with nothing allocated yet.
func NewLine(id kernel.UUID, sku string, quantity int) (*Line, error) {
	return RestoreLine(id, sku, quantity, 0)
}

// RestoreLine reconstructs a line from persistence, including the quantity
// already allocated to it.
func RestoreLine(id kernel.UUID, sku string, quantity int, allocatedQuantity int) (*Line, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if sku == "" {
		return nil, errs.NewValueIsRequiredError("sku")
	}
	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if allocatedQuantity < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("allocatedQuantity",
			fmt.Errorf("%d is negative", allocatedQuantity))
	}

	return &Line{
		id:                id,
		sku:               sku,
		quantity:          quantity,
		allocatedQuantity: allocatedQuantity,
		isConstructed:     true,
	}, nil
}

// Validate ensures the Line was created through NewLine or RestoreLine.
func (l *Line) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLineIsNotConstructed
	}
	return nil
}

// ID returns the line's unique identifier.
func (l *Line) ID() kernel.UUID {
	return l.id
}

// SKU returns the product reference.
func (l *Line) SKU() string {
	return l.sku
}

// Quantity returns the requested quantity.
func (l *Line) Quantity() int {
	return l.quantity
}

// AllocatedQuantity returns the quantity the allocator has reserved.
func (l *Line) AllocatedQuantity() int {
	return l.allocatedQuantity
}
