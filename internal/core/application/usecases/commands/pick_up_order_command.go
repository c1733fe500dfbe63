package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrPickUpOrderCommandIsNotConstructed = errors.New(
	"PickUpOrderCommand must be created via NewPickUpOrderCommand constructor",
)

// PickUpOrderCommand records that the customer collected an allocated order.
type PickUpOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewPickUpOrderCommand creates a command to mark an order as picked up.
func NewPickUpOrderCommand(orderID kernel.UUID) (PickUpOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return PickUpOrderCommand{}, err
	}

	return PickUpOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PickUpOrderCommand) Validate() error {
	return c.guard.Validate(ErrPickUpOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being picked up.
func (c PickUpOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
