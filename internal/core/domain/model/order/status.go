package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order as it moves through
// validation, inventory allocation and pickup.
//
// Status progression:
//
//	NEW ──> VALIDATION_PENDING ──┬──> VALIDATED ──> ALLOCATION_PENDING ──┬──> ALLOCATED ──> PICKED_UP ──> DELIVERED
//	                             ├──> VALIDATION_EXCEPTION               ├──> PENDING_INVENTORY
//	                             └──> CANCELLED                          ├──> ALLOCATION_EXCEPTION
//	                                                                     └──> CANCELLED
//
// Transitions are defined exclusively by the transition table in transition.go;
// Status itself is a value object with string representations for persistence
// and display.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusNew is the initial status assigned when an order is created.
	StatusNew

	// StatusValidationPending indicates a validation request has been sent
	// and the order is waiting for the validator's verdict.
	StatusValidationPending

	// StatusValidated indicates the validator accepted the order.
	StatusValidated

	// StatusValidationException is a terminal status for orders the validator
	// rejected. Resolution is manual.
	StatusValidationException

	// StatusAllocationPending indicates an allocation request has been sent
	// and the order is waiting for the allocator's verdict.
	StatusAllocationPending

	// StatusAllocated indicates inventory has been reserved for every line.
	StatusAllocated

	// StatusAllocationException is a terminal status for orders whose
	// allocation failed outright. Resolution is manual.
	StatusAllocationException

	// StatusPendingInventory indicates the allocator could not fully reserve
	// inventory; the order waits for stock to arrive.
	StatusPendingInventory

	// StatusPickedUp is a terminal status: the customer collected the order.
	StatusPickedUp

	// StatusDelivered is a terminal status: the order reached the customer.
	StatusDelivered

	// StatusDeliveryException is a terminal status for failed deliveries.
	StatusDeliveryException

	// StatusCancelled is a terminal status reached through CANCEL_ORDER.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:             "UNKNOWN",
		StatusNew:                 "NEW",
		StatusValidationPending:   "VALIDATION_PENDING",
		StatusValidated:           "VALIDATED",
		StatusValidationException: "VALIDATION_EXCEPTION",
		StatusAllocationPending:   "ALLOCATION_PENDING",
		StatusAllocated:           "ALLOCATED",
		StatusAllocationException: "ALLOCATION_EXCEPTION",
		StatusPendingInventory:    "PENDING_INVENTORY",
		StatusPickedUp:            "PICKED_UP",
		StatusDelivered:           "DELIVERED",
		StatusDeliveryException:   "DELIVERY_EXCEPTION",
		StatusCancelled:           "CANCELLED",
	}
}

// Validate checks that the Status is one of the defined lifecycle statuses.
// StatusUnknown and out-of-range values are invalid.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the upper-snake name of the status, or "UNKNOWN" for
// invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no event can move the order out of this status.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusPickedUp, StatusDelivered, StatusCancelled,
		StatusValidationException, StatusAllocationException, StatusDeliveryException:
		return true
	default:
		return false
	}
}
