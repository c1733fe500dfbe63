package order

// Action is a side effect attached to a transition. The transition itself only
// moves the status; the caller executes the action after the new status has
// been committed.
type Action int

const (
	// ActionNone marks a transition with no side effect.
	ActionNone Action = iota

	// ActionRequestValidation emits a validation request to the validator.
	ActionRequestValidation

	// ActionRequestAllocation emits an allocation request to the allocator.
	ActionRequestAllocation

	// ActionRecordValidationFailure records a validation failure; there is no
	// outbound effect, the exception status awaits manual intervention.
	ActionRecordValidationFailure

	// ActionRecordAllocationFailure records an allocation failure; there is no
	// outbound effect, the exception status awaits manual intervention.
	ActionRecordAllocationFailure

	// ActionReleaseAllocation notifies the allocator to release inventory that
	// was reserved for an order cancelled after allocation.
	ActionReleaseAllocation
)

// Transition is the outcome of applying an event: the status the order moves
// to and the side effect to run once that status is durable.
type Transition struct {
	Target Status
	Action Action
}

// transitions is the static machine definition. The outer key is the current
// status, the inner key the event. A (status, event) pair absent from the
// table means the event is rejected and the status stays unchanged.
var transitions = map[Status]map[Event]Transition{
	StatusNew: {
		EventValidateOrder: {Target: StatusValidationPending, Action: ActionRequestValidation},
	},
	StatusValidationPending: {
		EventValidationPassed: {Target: StatusValidated},
		EventValidationFailed: {Target: StatusValidationException, Action: ActionRecordValidationFailure},
		EventCancelOrder:      {Target: StatusCancelled},
	},
	StatusValidated: {
		EventAllocateOrder: {Target: StatusAllocationPending, Action: ActionRequestAllocation},
		EventCancelOrder:   {Target: StatusCancelled},
	},
	StatusAllocationPending: {
		EventAllocationSuccess:     {Target: StatusAllocated},
		EventAllocationNoInventory: {Target: StatusPendingInventory},
		EventAllocationFailed:      {Target: StatusAllocationException, Action: ActionRecordAllocationFailure},
		EventCancelOrder:           {Target: StatusCancelled},
	},
	StatusAllocated: {
		EventPickedUp:    {Target: StatusPickedUp},
		EventCancelOrder: {Target: StatusCancelled, Action: ActionReleaseAllocation},
	},
}

// NextTransition resolves the transition for applying evt in status from.
// The second return value is false when the table defines no such row.
func NextTransition(from Status, evt Event) (Transition, bool) {
	rows, ok := transitions[from]
	if !ok {
		return Transition{}, false
	}
	tr, ok := rows[evt]
	return tr, ok
}
