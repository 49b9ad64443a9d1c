package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateDeliveriesCommandIsNotConstructed = errors.New(
		"CreateDeliveriesCommand must be created via NewCreateDeliveriesCommand constructor",
	)
	ErrDeliveriesAreRequired = errors.New("at least one delivery entry is required")
)

// CreateDeliveriesCommand represents a batched request to create several
// deliveries in one call. Entries are processed independently and strictly
// in input order.
type CreateDeliveriesCommand struct {
	deliveries []CreateDeliveryCommand

	guard guard.ConstructorGuard
}

// NewCreateDeliveriesCommand creates a batched creation command.
// The batch must contain at least one entry; each entry must itself be a
// constructed CreateDeliveryCommand.
func NewCreateDeliveriesCommand(deliveries []CreateDeliveryCommand) (CreateDeliveriesCommand, error) {
	if len(deliveries) == 0 {
		return CreateDeliveriesCommand{}, ErrDeliveriesAreRequired
	}

	for _, entry := range deliveries {
		if err := entry.Validate(); err != nil {
			return CreateDeliveriesCommand{}, err
		}
	}

	return CreateDeliveriesCommand{
		deliveries: deliveries,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDeliveriesCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveriesCommandIsNotConstructed)
}

// Deliveries returns the batch entries in input order.
func (c CreateDeliveriesCommand) Deliveries() []CreateDeliveryCommand {
	return c.deliveries
}
