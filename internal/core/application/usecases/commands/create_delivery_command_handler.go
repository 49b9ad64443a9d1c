package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/ports"
)

// CreateDeliveryCommandHandler handles the business logic for delivery
// creation. Resolves both participants through the identity service, enforces
// the role invariants, persists the new delivery and notifies the assigned
// driver over their realtime group.
//
// Example:
//
//	handler := NewCreateDeliveryCommandHandler(uowFactory, users, publisher)
//	cmd, _ := NewCreateDeliveryCommand(customerID, driverID, "456 Oak Avenue", "")
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("delivery creation failed: %w", err)
//	}
type CreateDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	users      ports.UserProvider
	publisher  ports.NotificationPublisher
	now        func() time.Time
}

// NewCreateDeliveryCommandHandler creates a handler for delivery creation.
// Requires a DeliveryUoWFactory for transactional persistence, a UserProvider
// for participant resolution and a NotificationPublisher for the
// fire-and-forget driver notification.
func NewCreateDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	users ports.UserProvider,
	publisher ports.NotificationPublisher,
) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{
		uowFactory: uowFactory,
		users:      users,
		publisher:  publisher,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Handle processes the delivery creation command.
// Fails with an object-not-found error when either participant does not
// resolve, and with an invalid-assignment error when a participant's role
// does not match their side of the delivery. On success the persisted record
// is published to the driver's broadcast group; publishing is fire-and-forget.
func (h CreateDeliveryCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	customer, err := h.users.Get(ctx, cmd.CustomerID())
	if err != nil {
		return err
	}

	driver, err := h.users.Get(ctx, cmd.DriverID())
	if err != nil {
		return err
	}

	newDelivery, err := delivery.NewDelivery(customer, driver, cmd.Address(), cmd.Comment(), h.now())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	persisted, err := uow.DeliveryRepository().Add(ctx, newDelivery)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(
		ports.GroupForUser(driver.ID()),
		ports.EventDeliveryCreated,
		NewDeliveryCreatedNotification(persisted),
	)

	return nil
}
