package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrProcessAllocationOutcomeCommandIsNotConstructed = errors.New(
	"ProcessAllocationOutcomeCommand must be created via NewProcessAllocationOutcomeCommand constructor",
)

// AllocationOutcome is the allocator's verdict for one order.
type AllocationOutcome int

const (
	// AllocationOutcomeUnknown represents an invalid or undefined outcome.
	AllocationOutcomeUnknown AllocationOutcome = iota

	// AllocationOutcomeSuccess means every line was fully reserved.
	AllocationOutcomeSuccess

	// AllocationOutcomeNoInventory means stock ran short; the order waits
	// for inventory.
	AllocationOutcomeNoInventory

	// AllocationOutcomeFailed means allocation errored outright.
	AllocationOutcomeFailed
)

// String returns the wire name of the outcome. Implements fmt.Stringer.
func (o AllocationOutcome) String() string {
	switch o {
	case AllocationOutcomeSuccess:
		return "SUCCESS"
	case AllocationOutcomeNoInventory:
		return "NO_INVENTORY"
	case AllocationOutcomeFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// Validate checks that the outcome is a member of the closed outcome set.
func (o AllocationOutcome) Validate() error {
	switch o {
	case AllocationOutcomeSuccess, AllocationOutcomeNoInventory, AllocationOutcomeFailed:
		return nil
	default:
		return fmt.Errorf("%d is not a valid allocation outcome", o)
	}
}

// ProcessAllocationOutcomeCommand carries the allocator's verdict and, for
// verdicts that reserved inventory, the per-line allocated quantities keyed
// by line id.
type ProcessAllocationOutcomeCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	outcome         AllocationOutcome
	lineAllocations map[kernel.UUID]int

	guard guard.ConstructorGuard
}

// NewProcessAllocationOutcomeCommand creates a command from an allocation
// response message. lineAllocations may be nil for FAILED outcomes.
func NewProcessAllocationOutcomeCommand(
	orderID kernel.UUID,
	outcome AllocationOutcome,
	lineAllocations map[kernel.UUID]int,
) (ProcessAllocationOutcomeCommand, error) {
	if err := errors.Join(orderID.Validate(), outcome.Validate()); err != nil {
		return ProcessAllocationOutcomeCommand{}, err
	}

	allocations := make(map[kernel.UUID]int, len(lineAllocations))
	for id, qty := range lineAllocations {
		allocations[id] = qty
	}

	return ProcessAllocationOutcomeCommand{
		orderID:         orderID,
		outcome:         outcome,
		lineAllocations: allocations,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ProcessAllocationOutcomeCommand) Validate() error {
	return c.guard.Validate(ErrProcessAllocationOutcomeCommandIsNotConstructed)
}

// OrderID returns the identifier of the order the verdict refers to.
func (c ProcessAllocationOutcomeCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Outcome returns the allocator's verdict.
func (c ProcessAllocationOutcomeCommand) Outcome() AllocationOutcome {
	return c.outcome
}

// LineAllocations returns the allocated quantity per line id.
func (c ProcessAllocationOutcomeCommand) LineAllocations() map[kernel.UUID]int {
	allocations := make(map[kernel.UUID]int, len(c.lineAllocations))
	for id, qty := range c.lineAllocations {
		allocations[id] = qty
	}
	return allocations
}
