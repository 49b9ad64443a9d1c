package commands

import (
	"context"
)

// CreateDeliveriesCommandHandler applies delivery creation to each batch
// entry sequentially, in input order. A failure on entry k aborts entries
// k+1..n; entries created before the failure stay persisted and their
// notifications stay sent. The batch is not transactional; callers retry the
// remainder after fixing the failing entry.
type CreateDeliveriesCommandHandler struct {
	createHandler CreateDeliveryCommandHandler
}

// NewCreateDeliveriesCommandHandler creates a handler for batched delivery
// creation, delegating each entry to the single-delivery handler.
func NewCreateDeliveriesCommandHandler(createHandler CreateDeliveryCommandHandler) CreateDeliveriesCommandHandler {
	return CreateDeliveriesCommandHandler{createHandler: createHandler}
}

// Handle processes the batch. Because entries run strictly sequentially,
// notification emission order matches input order.
func (h CreateDeliveriesCommandHandler) Handle(ctx context.Context, cmd CreateDeliveriesCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	for _, entry := range cmd.Deliveries() {
		if err := h.createHandler.Handle(ctx, entry); err != nil {
			return err
		}
	}

	return nil
}
