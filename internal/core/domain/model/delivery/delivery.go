package delivery

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
	// created through NewDelivery or RestoreDelivery.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery or RestoreDelivery constructor")
)

// Delivery represents a unit of delivery work linking one customer and one
// driver. It is the aggregate root that manages the delivery lifecycle from
// creation to completion.
//
// Delivery follows these invariants:
//   - The customer must have the customer role and the driver must have the
//     driver role; both are checked at creation time only.
//   - Both participants are bound at creation and immutable thereafter.
//   - The completion timestamp and completion image are set together, exactly
//     once; a second completion attempt fails with a conflict.
//   - The end order number may be changed only by the assigned driver. It
//     remains changeable after completion: drivers keep finished stops in
//     their route plans until the day closes out.
//
// A freshly constructed Delivery has no identifier; the persistence layer
// assigns one and hands back a restored aggregate.
type Delivery struct {
	// id is the storage-assigned identifier; zero until persisted
	id kernel.ID

	// customer ordered the delivery (immutable after creation)
	customer *user.User

	// driver executes the delivery (immutable after creation)
	driver *user.User

	// address is the destination, opaque to the lifecycle rules
	address string

	// comment carries free-form instructions, opaque to the lifecycle rules
	comment string

	createdAt time.Time

	// endedAt is nil while the delivery is open
	endedAt *time.Time

	// endImage references the proof-of-delivery photo, set together with endedAt
	endImage string

	// endOrderNumber sequences the driver's route
	endOrderNumber int

	// version supports optimistic concurrency on save
	version int64

	guard guard.ConstructorGuard
}

// NewDelivery creates a new, not yet persisted Delivery after validating the
// participants. This is the only way to create a delivery for a creation
// request, ensuring the role invariants hold.
//
// Returns:
//   - *Delivery: the created aggregate if all validations pass
//   - error: a validation error, or an invalid-assignment error when a
//     participant's role does not match their side of the delivery
func NewDelivery(customer *user.User, driver *user.User, address string, comment string, createdAt time.Time) (*Delivery, error) {
	d := &Delivery{
		comment: comment,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setCustomer(customer),
		d.setDriver(driver),
		d.setAddress(address),
		d.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDelivery reconstructs a persisted Delivery from storage. Unlike
// NewDelivery it requires an identifier and does not re-check the role
// invariants: they were enforced when the delivery was created and the
// participants are immutable.
func RestoreDelivery(
	id kernel.ID,
	customer *user.User,
	driver *user.User,
	address string,
	comment string,
	createdAt time.Time,
	endedAt *time.Time,
	endImage string,
	endOrderNumber int,
	version int64,
) (*Delivery, error) {
	if err := errors.Join(
		id.Validate(),
		customer.Validate(),
		driver.Validate(),
	); err != nil {
		return nil, err
	}

	return &Delivery{
		id:             id,
		customer:       customer,
		driver:         driver,
		address:        address,
		comment:        comment,
		createdAt:      createdAt,
		endedAt:        endedAt,
		endImage:       endImage,
		endOrderNumber: endOrderNumber,
		version:        version,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Delivery was created through one of its constructors.
func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

// IsEqual compares two deliveries by their unique identifiers.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the delivery's identifier. The zero ID means the delivery has
// not been persisted yet.
func (d *Delivery) ID() kernel.ID {
	return d.id
}

// Customer returns the ordering participant.
func (d *Delivery) Customer() *user.User {
	return d.customer
}

// Driver returns the executing participant.
func (d *Delivery) Driver() *user.User {
	return d.driver
}

// Address returns the destination address.
func (d *Delivery) Address() string {
	return d.address
}

// Comment returns the free-form delivery instructions.
func (d *Delivery) Comment() string {
	return d.comment
}

// CreatedAt returns the creation timestamp.
func (d *Delivery) CreatedAt() time.Time {
	return d.createdAt
}

// EndedAt returns the completion timestamp, or nil while the delivery is open.
func (d *Delivery) EndedAt() *time.Time {
	return d.endedAt
}

// EndImage returns the proof-of-delivery image reference.
func (d *Delivery) EndImage() string {
	return d.endImage
}

// EndOrderNumber returns the driver-assigned route sequence number.
func (d *Delivery) EndOrderNumber() int {
	return d.endOrderNumber
}

// Version returns the optimistic concurrency counter maintained by storage.
func (d *Delivery) Version() int64 {
	return d.version
}

// IsEnded reports whether the delivery has been completed.
func (d *Delivery) IsEnded() bool {
	return d.endedAt != nil
}

// IsAssignedTo reports whether the given driver is the delivery's assigned
// driver.
func (d *Delivery) IsAssignedTo(driverID kernel.ID) bool {
	return d.driver != nil && d.driver.ID().IsEqual(driverID)
}

// End completes the delivery on behalf of a driver.
//
// This method enforces the following business rules:
//   - Only the assigned driver may complete the delivery
//   - A delivery can be completed exactly once
//
// Returns:
//   - nil on success, with the completion timestamp and image set together
//   - a forbidden error if driverID is not the assigned driver
//   - a conflict error if the delivery was already completed; the original
//     completion timestamp is left untouched
func (d *Delivery) End(driverID kernel.ID, image string, endedAt time.Time) error {
	if !d.IsAssignedTo(driverID) {
		return errs.NewForbiddenError(
			fmt.Sprintf("delivery %s is not assigned to driver %s", d.id, driverID))
	}

	if d.IsEnded() {
		return errs.NewConflictError(
			fmt.Sprintf("delivery %s is already ended", d.id))
	}

	d.endedAt = &endedAt
	d.endImage = image
	return nil
}

// AssignEndOrder sets the route sequence number on behalf of a driver.
// Only the assigned driver may change it. Completed deliveries stay
// reorderable.
func (d *Delivery) AssignEndOrder(driverID kernel.ID, endOrderNumber int) error {
	if !d.IsAssignedTo(driverID) {
		return errs.NewForbiddenError(
			fmt.Sprintf("delivery %s is not assigned to driver %s", d.id, driverID))
	}

	d.endOrderNumber = endOrderNumber
	return nil
}

func (d *Delivery) setCustomer(customer *user.User) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	if !customer.IsCustomer() {
		return errs.NewInvalidAssignmentError(
			fmt.Sprintf("user %s has role %s and cannot be a delivery customer", customer.ID(), customer.Role()))
	}
	d.customer = customer
	return nil
}

func (d *Delivery) setDriver(driver *user.User) error {
	if err := driver.Validate(); err != nil {
		return err
	}
	if !driver.IsDriver() {
		return errs.NewInvalidAssignmentError(
			fmt.Sprintf("user %s has role %s and cannot be a delivery driver", driver.ID(), driver.Role()))
	}
	d.driver = driver
	return nil
}

func (d *Delivery) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	d.address = address
	return nil
}

func (d *Delivery) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	d.createdAt = createdAt
	return nil
}
