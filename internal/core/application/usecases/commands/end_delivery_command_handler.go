package commands

import (
	"context"
	"time"
)

// EndDeliveryCommandHandler completes a delivery on behalf of its assigned
// driver. Loads the aggregate, applies the exactly-once completion transition
// and persists the result within one transaction.
//
// Failure modes:
//   - object-not-found when the delivery does not resolve
//   - forbidden when the acting driver is not the assigned driver
//   - conflict when the delivery was already completed, or when a concurrent
//     writer saved the delivery first (optimistic save)
type EndDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	now        func() time.Time
}

// NewEndDeliveryCommandHandler creates a handler for delivery completion.
func NewEndDeliveryCommandHandler(uowFactory DeliveryUoWFactory) EndDeliveryCommandHandler {
	return EndDeliveryCommandHandler{
		uowFactory: uowFactory,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Handle processes the completion command.
func (h EndDeliveryCommandHandler) Handle(ctx context.Context, cmd EndDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DeliveryRepository()

	aggregate, err := repo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	if err = aggregate.End(cmd.DriverID(), cmd.Image(), h.now()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
