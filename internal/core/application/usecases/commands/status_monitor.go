package commands

import (
	"context"
	"sync"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// StatusMonitor reconciles the gap between "transition committed" and
// "transition observed" when one orchestrator operation chains a second event
// onto the first one's result. The event pipeline calls Notify after every
// commit; a chained path calls Await with the status it depends on.
//
// Await is bounded: when the expected status is not confirmed within the
// timeout the caller proceeds anyway. The dependent event then simply gets
// rejected by the transition table if its precondition truly never held.
// That trade favors availability over strict consistency on purpose.
type StatusMonitor struct {
	mu      sync.Mutex
	last    map[kernel.UUID]order.Status
	waiters map[statusKey][]chan struct{}
}

type statusKey struct {
	orderID kernel.UUID
	status  order.Status
}

// NewStatusMonitor creates an empty monitor.
func NewStatusMonitor() *StatusMonitor {
	return &StatusMonitor{
		last:    make(map[kernel.UUID]order.Status),
		waiters: make(map[statusKey][]chan struct{}),
	}
}

// Notify records that status has been durably committed for the order and
// releases every waiter registered for that (order, status) pair. Terminal
// statuses clear the order's bookkeeping; nothing chains off a terminal state.
func (m *StatusMonitor) Notify(orderID kernel.UUID, status order.Status) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := statusKey{orderID: orderID, status: status}
	for _, ch := range m.waiters[key] {
		close(ch)
	}
	delete(m.waiters, key)

	if status.IsTerminal() {
		delete(m.last, orderID)
	} else {
		m.last[orderID] = status
	}
}

// Await blocks until Notify has reported the expected status for the order,
// or the timeout elapses. Returns true when the status was confirmed, false
// otherwise. A false return is not an error condition: the caller proceeds
// and lets the transition table reject the dependent event if needed.
func (m *StatusMonitor) Await(
	ctx context.Context,
	orderID kernel.UUID,
	expected order.Status,
	timeout time.Duration,
) bool {
	m.mu.Lock()
	if m.last[orderID] == expected {
		m.mu.Unlock()
		return true
	}

	key := statusKey{orderID: orderID, status: expected}
	ch := make(chan struct{})
	m.waiters[key] = append(m.waiters[key], ch)
	m.mu.Unlock()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-ch:
		return true
	case <-timer.C:
		m.drop(key, ch)
		return false
	case <-ctx.Done():
		m.drop(key, ch)
		return false
	}
}

func (m *StatusMonitor) drop(key statusKey, ch chan struct{}) {
	m.mu.Lock()
	defer m.mu.Unlock()

	remaining := m.waiters[key][:0]
	for _, w := range m.waiters[key] {
		if w != ch {
			remaining = append(remaining, w)
		}
	}
	if len(remaining) == 0 {
		delete(m.waiters, key)
	} else {
		m.waiters[key] = remaining
	}
}
