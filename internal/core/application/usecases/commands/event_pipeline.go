package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// eventPipeline drives one lifecycle event end to end: it loads the order's
// currently persisted status, applies the event through the transition table,
// persists the new status inside the same transaction, signals the status
// monitor after commit and finally runs the transition's action.
//
// The pipeline is stateless between calls. Every sendEvent builds its view of
// the order from storage, which makes the orchestrator safe to run on any
// number of concurrent workers; chains of dependent events bridge the
// persistence-visibility gap through the StatusMonitor.
type eventPipeline struct {
	uowFactory   OrderUoWFactory
	actions      actionDispatcher
	monitor      *StatusMonitor
	awaitTimeout time.Duration
	logger       *slog.Logger
}

func newEventPipeline(
	uowFactory OrderUoWFactory,
	gateway ports.MessageGateway,
	monitor *StatusMonitor,
	awaitTimeout time.Duration,
	logger *slog.Logger,
) eventPipeline {
	return eventPipeline{
		uowFactory:   uowFactory,
		actions:      newActionDispatcher(gateway, logger),
		monitor:      monitor,
		awaitTimeout: awaitTimeout,
		logger:       logger.With("component", "event_pipeline"),
	}
}

// sendEvent applies evt to the order identified by orderID.
//
// A missing order and an event with no row in the transition table are both
// logged no-ops: responses may legitimately race order removal, and replayed
// messages routinely arrive for already-transitioned orders. A persistence
// failure aborts the operation and the event counts as not applied.
func (p eventPipeline) sendEvent(ctx context.Context, orderID kernel.UUID, evt order.Event) error {
	uow := p.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, orderID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			p.logger.ErrorContext(ctx, "Order not found",
				"orderId", orderID.String(), "event", evt.String())
			return nil
		}
		return err
	}

	action, err := o.Apply(evt)
	if err != nil {
		if errors.Is(err, order.ErrEventNotPermitted) {
			p.logger.WarnContext(ctx, "Event rejected in current status",
				"orderId", orderID.String(), "status", o.Status().String(), "event", evt.String())
			return nil
		}
		return err
	}

	if err = repo.Update(ctx, o); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "Order transitioned",
		"orderId", orderID.String(), "event", evt.String(), "status", o.Status().String())
	p.monitor.Notify(orderID, o.Status())
	p.actions.dispatch(ctx, action, o)

	return nil
}

// awaitStatus blocks until the expected status is confirmed committed or the
// pipeline's timeout elapses. A timeout is logged and the caller proceeds;
// the dependent event degrades to a no-op if the precondition never held.
func (p eventPipeline) awaitStatus(ctx context.Context, orderID kernel.UUID, expected order.Status) {
	if p.monitor.Await(ctx, orderID, expected, p.awaitTimeout) {
		return
	}
	p.logger.WarnContext(ctx, "Status not confirmed before timeout; proceeding",
		"orderId", orderID.String(), "expected", expected.String())
}
