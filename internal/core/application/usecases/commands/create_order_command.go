package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrLinesAreRequired = errors.New("at least one order line is required")
	ErrSKUIsRequired    = errors.New("sku is required")
	ErrQuantityIsInvalid = errors.New("quantity must be greater than 0")
)

// OrderLineSpec describes one requested line of a new order.
type OrderLineSpec struct {
	LineID   kernel.UUID
	SKU      string
	Quantity int
}

// CreateOrderCommand represents a request to register a new order and start
// its lifecycle. The order is persisted in NEW status and immediately pushed
// into validation.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), customerID, []OrderLineSpec{
//	    {LineID: kernel.NewUUID(), SKU: "IPA-001", Quantity: 5},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID kernel.UUID
	lines      []OrderLineSpec

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates identifiers and requires at least one line with a SKU and a
// positive quantity.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	lines []OrderLineSpec,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setCustomerID(customerID),
		orderCommand.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the ordering customer's identifier.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Lines returns the requested order lines.
func (c CreateOrderCommand) Lines() []OrderLineSpec {
	lines := make([]OrderLineSpec, len(c.lines))
	copy(lines, c.lines)
	return lines
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLineSpec) error {
	if len(lines) == 0 {
		return ErrLinesAreRequired
	}

	for _, line := range lines {
		if err := line.LineID.Validate(); err != nil {
			return err
		}
		if line.SKU == "" {
			return ErrSKUIsRequired
		}
		if line.Quantity <= 0 {
			return ErrQuantityIsInvalid
		}
	}

	c.lines = make([]OrderLineSpec, len(lines))
	copy(c.lines, lines)
	return nil
}
