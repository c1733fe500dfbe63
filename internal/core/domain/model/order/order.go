package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrEventNotPermitted is returned by Apply when the transition table has no
	// row for the order's current status and the given event. The status stays
	// unchanged; callers treat this as a logged no-op, not a fault.
	ErrEventNotPermitted = errors.New("event is not permitted in the current status")
)

// Order is the aggregate root tracked through fulfillment. It owns its lines
// and its lifecycle status, and is mutated exclusively by applying events
// resolved through the transition table.
//
// Order maintains these invariants:
//   - Must have a valid unique identifier and customer reference
//   - Must carry at least one line; line identity and requested quantity are
//     fixed once the order exists
//   - Status only changes through a transition defined in the table
//   - Once a terminal status is reached no further event is accepted
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerID references the ordering customer
	customerID kernel.UUID

	// lines are the order's positions, fixed in identity and requested quantity
	lines []*Line

	// status is the current state in the order lifecycle
	status Status

	// version is the optimistic concurrency marker maintained by persistence
	version int64

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates an order in StatusNew. The id and customerID must be valid
// and at least one line is required.
func NewOrder(id kernel.UUID, customerID kernel.UUID, lines []*Line) (*Order, error) {
	return RestoreOrder(id, customerID, lines, StatusNew, 0)
}

// RestoreOrder reconstructs an order from persistence with its stored status
// and version. Used by repositories only; business code creates orders with
// NewOrder and moves them with Apply.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	lines []*Line,
	status Status,
	version int64,
) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setLines(lines),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	o.version = version
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the ordering customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Lines returns the order's lines in creation order. The slice is a copy but
// the lines themselves are the aggregate's; callers must not mutate them.
func (o *Order) Lines() []*Line {
	lines := make([]*Line, len(o.lines))
	copy(lines, o.lines)
	return lines
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Version returns the optimistic concurrency marker.
func (o *Order) Version() int64 {
	return o.version
}

// Apply resolves evt against the transition table for the current status and,
// when a row exists, moves the order to the target status and returns the
// transition's action for the caller to execute after persisting.
//
// When no row exists the status is left untouched and ErrEventNotPermitted is
// returned; per the lifecycle contract that is a discrepancy to log, not a
// failure to surface.
func (o *Order) Apply(evt Event) (Action, error) {
	if err := evt.Validate(); err != nil {
		return ActionNone, err
	}

	tr, ok := NextTransition(o.status, evt)
	if !ok {
		return ActionNone, fmt.Errorf("%w: status %s, event %s", ErrEventNotPermitted, o.status, evt)
	}

	o.status = tr.Target
	return tr.Action, nil
}

// RecordAllocations applies per-line allocated quantities from an allocation
// verdict. Quantities are matched by line id; ids present in the verdict but
// not on the order, or the other way round, are ignored. Lines not mentioned
// keep their previous allocated quantity.
func (o *Order) RecordAllocations(allocations map[kernel.UUID]int) {
	for _, line := range o.lines {
		for id, qty := range allocations {
			if line.id.IsEqual(id) && qty >= 0 {
				line.allocatedQuantity = qty
			}
		}
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setLines(lines []*Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}
	o.lines = make([]*Line, len(lines))
	copy(o.lines, lines)
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
