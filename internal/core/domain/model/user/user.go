package user

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrUserIsNotConstructed is returned when a User instance was not created
// through the NewUser factory method.
var ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

// User represents a participant of the delivery process. It is owned by the
// identity service and is immutable from this core's perspective: the
// lifecycle use cases only read users to validate delivery assignments.
//
// User follows these invariants:
//   - Must have a valid numeric identifier
//   - Must have a non-empty name
//   - Must have a known role (driver or customer)
//   - Can only be created through NewUser
type User struct {
	id   kernel.ID
	name string
	role Role

	guard guard.ConstructorGuard
}

// NewUser creates a new User instance with validation. This is the only way
// to create a valid User, ensuring all invariants are maintained.
func NewUser(id kernel.ID, name string, role Role) (*User, error) {
	u := &User{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		u.setID(id),
		u.setName(name),
		u.setRole(role),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// Validate ensures the User instance was properly constructed through NewUser.
func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

// IsEqual compares two users by their unique identifiers.
func (u *User) IsEqual(other *User) bool {
	return other != nil && u.id.IsEqual(other.id)
}

// ID returns the user's unique identifier.
func (u *User) ID() kernel.ID {
	return u.id
}

// Name returns the user's display name.
func (u *User) Name() string {
	return u.name
}

// Role returns the user's role.
func (u *User) Role() Role {
	return u.role
}

// IsDriver reports whether the user may be assigned as the executing side
// of a delivery.
func (u *User) IsDriver() bool {
	return u.role == RoleDriver
}

// IsCustomer reports whether the user may be the ordering side of a delivery.
func (u *User) IsCustomer() bool {
	return u.role == RoleCustomer
}

func (u *User) setID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	u.name = name
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}
