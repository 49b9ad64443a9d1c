package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrReorderDeliveriesCommandIsNotConstructed = errors.New(
		"ReorderDeliveriesCommand must be created via NewReorderDeliveriesCommand constructor",
	)
	ErrOrdersAreRequired = errors.New("at least one order entry is required")
)

// ReorderEntry pairs a delivery identifier with its new route sequence
// number inside a reorder batch.
type ReorderEntry struct {
	deliveryID     kernel.ID
	endOrderNumber int
}

// NewReorderEntry creates a batch entry. The delivery identifier must be
// valid; the end order number is an arbitrary driver-chosen integer.
func NewReorderEntry(deliveryID kernel.ID, endOrderNumber int) (ReorderEntry, error) {
	if err := deliveryID.Validate(); err != nil {
		return ReorderEntry{}, err
	}

	return ReorderEntry{
		deliveryID:     deliveryID,
		endOrderNumber: endOrderNumber,
	}, nil
}

// DeliveryID returns the identifier of the delivery to resequence.
func (e ReorderEntry) DeliveryID() kernel.ID {
	return e.deliveryID
}

// EndOrderNumber returns the new route sequence number.
func (e ReorderEntry) EndOrderNumber() int {
	return e.endOrderNumber
}

// ReorderDeliveriesCommand represents a driver's request to resequence their
// deliveries with an explicit end-order batch.
type ReorderDeliveriesCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.ID
	orders   []ReorderEntry

	guard guard.ConstructorGuard
}

// NewReorderDeliveriesCommand creates a reorder command.
// Validates the driver identifier and requires a non-empty batch.
// Duplicate detection is an application rule handled by the command handler
// so it can surface status-coded bad-request failures.
func NewReorderDeliveriesCommand(driverID kernel.ID, orders []ReorderEntry) (ReorderDeliveriesCommand, error) {
	cmd := ReorderDeliveriesCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDriverID(driverID),
		cmd.setOrders(orders),
	); err != nil {
		return ReorderDeliveriesCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReorderDeliveriesCommand) Validate() error {
	return c.guard.Validate(ErrReorderDeliveriesCommandIsNotConstructed)
}

// DriverID returns the identifier of the acting driver.
func (c ReorderDeliveriesCommand) DriverID() kernel.ID {
	return c.driverID
}

// Orders returns the batch entries in input order.
func (c ReorderDeliveriesCommand) Orders() []ReorderEntry {
	return c.orders
}

func (c *ReorderDeliveriesCommand) setDriverID(driverID kernel.ID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	c.driverID = driverID
	return nil
}

func (c *ReorderDeliveriesCommand) setOrders(orders []ReorderEntry) error {
	if len(orders) == 0 {
		return ErrOrdersAreRequired
	}
	c.orders = orders
	return nil
}
