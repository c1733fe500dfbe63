package commands_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
)

func TestStatusMonitor_Await_AfterNotify(t *testing.T) {
	ctx := t.Context()
	m := commands.NewStatusMonitor()
	orderID := kernel.NewUUID()

	m.Notify(orderID, order.StatusValidated)

	assert.True(t, m.Await(ctx, orderID, order.StatusValidated, time.Millisecond))
}

func TestStatusMonitor_Await_BeforeNotify(t *testing.T) {
	ctx := t.Context()
	m := commands.NewStatusMonitor()
	orderID := kernel.NewUUID()

	go func() {
		time.Sleep(10 * time.Millisecond)
		m.Notify(orderID, order.StatusAllocated)
	}()

	assert.True(t, m.Await(ctx, orderID, order.StatusAllocated, time.Second))
}

func TestStatusMonitor_Await_Timeout(t *testing.T) {
	ctx := t.Context()
	m := commands.NewStatusMonitor()
	orderID := kernel.NewUUID()

	assert.False(t, m.Await(ctx, orderID, order.StatusValidated, 5*time.Millisecond))
}

func TestStatusMonitor_Await_DifferentStatusDoesNotRelease(t *testing.T) {
	ctx := t.Context()
	m := commands.NewStatusMonitor()
	orderID := kernel.NewUUID()

	m.Notify(orderID, order.StatusValidationPending)

	assert.False(t, m.Await(ctx, orderID, order.StatusValidated, 5*time.Millisecond))
}

func TestStatusMonitor_Await_DifferentOrderDoesNotRelease(t *testing.T) {
	ctx := t.Context()
	m := commands.NewStatusMonitor()

	m.Notify(kernel.NewUUID(), order.StatusValidated)

	assert.False(t, m.Await(ctx, kernel.NewUUID(), order.StatusValidated, 5*time.Millisecond))
}

func TestStatusMonitor_Await_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	m := commands.NewStatusMonitor()
	orderID := kernel.NewUUID()

	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()

	assert.False(t, m.Await(ctx, orderID, order.StatusValidated, time.Minute))
}

func TestStatusMonitor_Notify_TerminalClearsBookkeeping(t *testing.T) {
	ctx := t.Context()
	m := commands.NewStatusMonitor()
	orderID := kernel.NewUUID()

	m.Notify(orderID, order.StatusValidated)
	m.Notify(orderID, order.StatusCancelled)

	// Terminal statuses end the lifecycle; nothing chains off them, so the
	// last-seen record is dropped and later waits run into the timeout.
	assert.False(t, m.Await(ctx, orderID, order.StatusValidated, 5*time.Millisecond))
}

func TestStatusMonitor_Notify_ReleasesAllWaiters(t *testing.T) {
	ctx := t.Context()
	m := commands.NewStatusMonitor()
	orderID := kernel.NewUUID()

	results := make(chan bool, 2)
	for range 2 {
		go func() {
			results <- m.Await(ctx, orderID, order.StatusAllocated, time.Second)
		}()
	}

	time.Sleep(10 * time.Millisecond)
	m.Notify(orderID, order.StatusAllocated)

	assert.True(t, <-results)
	assert.True(t, <-results)
}
