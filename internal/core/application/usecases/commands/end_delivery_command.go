package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrEndDeliveryCommandIsNotConstructed = errors.New(
		"EndDeliveryCommand must be created via NewEndDeliveryCommand constructor",
	)
	ErrEndImageIsRequired = errors.New("end image is required")
)

// EndDeliveryCommand represents a driver's request to complete a delivery,
// attaching the proof-of-delivery image reference.
type EndDeliveryCommand struct { //nolint:recvcheck //using for validation
	driverID   kernel.ID
	deliveryID kernel.ID
	image      string

	guard guard.ConstructorGuard
}

// NewEndDeliveryCommand creates a command to complete a delivery.
// Validates both identifiers and requires a non-empty image reference since
// the completion timestamp and image are always set together.
func NewEndDeliveryCommand(driverID kernel.ID, deliveryID kernel.ID, image string) (EndDeliveryCommand, error) {
	cmd := EndDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDriverID(driverID),
		cmd.setDeliveryID(deliveryID),
		cmd.setImage(image),
	); err != nil {
		return EndDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c EndDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrEndDeliveryCommandIsNotConstructed)
}

// DriverID returns the identifier of the acting driver.
func (c EndDeliveryCommand) DriverID() kernel.ID {
	return c.driverID
}

// DeliveryID returns the identifier of the delivery to complete.
func (c EndDeliveryCommand) DeliveryID() kernel.ID {
	return c.deliveryID
}

// Image returns the proof-of-delivery image reference.
func (c EndDeliveryCommand) Image() string {
	return c.image
}

func (c *EndDeliveryCommand) setDriverID(driverID kernel.ID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	c.driverID = driverID
	return nil
}

func (c *EndDeliveryCommand) setDeliveryID(deliveryID kernel.ID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}
	c.deliveryID = deliveryID
	return nil
}

func (c *EndDeliveryCommand) setImage(image string) error {
	if image == "" {
		return ErrEndImageIsRequired
	}
	c.image = image
	return nil
}
