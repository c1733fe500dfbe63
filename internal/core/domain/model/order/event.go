package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Event is a lifecycle trigger applied to an order. Events come either from
// direct calls (create, pick up, cancel) or from asynchronous response
// messages (validation and allocation verdicts). An event is always scoped
// to exactly one order.
type Event int

const (
	// EventUnknown represents an invalid or undefined event.
	EventUnknown Event = iota

	// EventValidateOrder requests validation of a freshly created order.
	EventValidateOrder

	// EventValidationPassed is the validator's positive verdict.
	EventValidationPassed

	// EventValidationFailed is the validator's negative verdict.
	EventValidationFailed

	// EventAllocateOrder requests inventory allocation for a validated order.
	EventAllocateOrder

	// EventAllocationSuccess is the allocator's verdict when every line was reserved.
	EventAllocationSuccess

	// EventAllocationFailed is the allocator's verdict when allocation errored.
	EventAllocationFailed

	// EventAllocationNoInventory is the allocator's verdict when stock ran short.
	EventAllocationNoInventory

	// EventPickedUp records that the customer collected the order.
	EventPickedUp

	// EventCancelOrder cancels the order from any cancellable status.
	EventCancelOrder
)

func getEventStrings() map[Event]string {
	return map[Event]string{
		EventUnknown:               "UNKNOWN",
		EventValidateOrder:         "VALIDATE_ORDER",
		EventValidationPassed:      "VALIDATION_PASSED",
		EventValidationFailed:      "VALIDATION_FAILED",
		EventAllocateOrder:         "ALLOCATE_ORDER",
		EventAllocationSuccess:     "ALLOCATION_SUCCESS",
		EventAllocationFailed:      "ALLOCATION_FAILED",
		EventAllocationNoInventory: "ALLOCATION_NO_INVENTORY",
		EventPickedUp:              "PICKED_UP",
		EventCancelOrder:           "CANCEL_ORDER",
	}
}

// Validate checks that the Event is a member of the closed event set.
func (e Event) Validate() error {
	if e == EventUnknown {
		return errs.NewValueIsInvalidErrorWithCause("event is invalid",
			fmt.Errorf("%d is not a valid event", e))
	}
	if _, ok := getEventStrings()[e]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("event is invalid",
			fmt.Errorf("%d is not a valid event", e))
	}
	return nil
}

// String returns the upper-snake name of the event. Implements fmt.Stringer.
func (e Event) String() string {
	if str, ok := getEventStrings()[e]; ok {
		return str
	}
	return "UNKNOWN"
}
