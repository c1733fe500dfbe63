package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrProcessValidationResultCommandIsNotConstructed = errors.New(
	"ProcessValidationResultCommand must be created via NewProcessValidationResultCommand constructor",
)

// ProcessValidationResultCommand carries the validator's verdict for one
// order back into the lifecycle.
type ProcessValidationResultCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	isValid bool

	guard guard.ConstructorGuard
}

// NewProcessValidationResultCommand creates a command from a validation
// response message.
func NewProcessValidationResultCommand(orderID kernel.UUID, isValid bool) (ProcessValidationResultCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ProcessValidationResultCommand{}, err
	}

	return ProcessValidationResultCommand{
		orderID: orderID,
		isValid: isValid,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ProcessValidationResultCommand) Validate() error {
	return c.guard.Validate(ErrProcessValidationResultCommandIsNotConstructed)
}

// OrderID returns the identifier of the order the verdict refers to.
func (c ProcessValidationResultCommand) OrderID() kernel.UUID {
	return c.orderID
}

// IsValid returns the validator's verdict.
func (c ProcessValidationResultCommand) IsValid() bool {
	return c.isValid
}
