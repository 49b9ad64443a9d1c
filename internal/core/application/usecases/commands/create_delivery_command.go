package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateDeliveryCommandIsNotConstructed = errors.New(
		"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
	)
	ErrAddressIsRequired = errors.New("address is required")
)

// CreateDeliveryCommand represents a request to create a new delivery job
// linking one customer and one driver.
//
// Example:
//
//	customerID, _ := kernel.NewID(2)
//	driverID, _ := kernel.NewID(1)
//	cmd, err := NewCreateDeliveryCommand(customerID, driverID, "123 Main Street", "ring twice")
//	if err != nil {
//	    return fmt.Errorf("invalid delivery data: %w", err)
//	}
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.ID
	driverID   kernel.ID
	address    string
	comment    string

	guard guard.ConstructorGuard
}

// NewCreateDeliveryCommand creates a command to register a new delivery.
// Validates that both participant identifiers are valid and the address is
// not empty. The comment is optional.
func NewCreateDeliveryCommand(customerID kernel.ID, driverID kernel.ID, address string, comment string) (CreateDeliveryCommand, error) {
	cmd := CreateDeliveryCommand{
		comment: comment,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setDriverID(driverID),
		cmd.setAddress(address),
	); err != nil {
		return CreateDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

// CustomerID returns the identifier of the ordering participant.
func (c CreateDeliveryCommand) CustomerID() kernel.ID {
	return c.customerID
}

// DriverID returns the identifier of the executing participant.
func (c CreateDeliveryCommand) DriverID() kernel.ID {
	return c.driverID
}

// Address returns the delivery destination address.
func (c CreateDeliveryCommand) Address() string {
	return c.address
}

// Comment returns the free-form delivery instructions.
func (c CreateDeliveryCommand) Comment() string {
	return c.comment
}

func (c *CreateDeliveryCommand) setCustomerID(customerID kernel.ID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *CreateDeliveryCommand) setDriverID(driverID kernel.ID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	c.driverID = driverID
	return nil
}

func (c *CreateDeliveryCommand) setAddress(address string) error {
	if address == "" {
		return ErrAddressIsRequired
	}
	c.address = address
	return nil
}
