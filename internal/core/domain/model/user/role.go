package user

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Role classifies a user by the side of a delivery they may occupy.
// Only drivers may be assigned as the executing side of a delivery and only
// customers may be the ordering side; the lifecycle use cases enforce this
// at delivery creation time.
type Role string

const (
	// RoleDriver marks a user who executes deliveries.
	RoleDriver Role = "DRIVER"

	// RoleCustomer marks a user who orders deliveries.
	RoleCustomer Role = "CUSTOMER"
)

// getValidRoles returns the set of roles accepted by the system.
func getValidRoles() map[Role]struct{} {
	return map[Role]struct{}{
		RoleDriver:   {},
		RoleCustomer: {},
	}
}

// Validate checks if the Role value is one of the known roles.
//
// Returns:
//   - nil if the role is valid
//   - error with details if the role is unknown
func (r Role) Validate() error {
	if _, ok := getValidRoles()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid",
			fmt.Errorf("%q is not a valid role", string(r)))
	}
	return nil
}

// String returns the role name.
func (r Role) String() string {
	return string(r)
}
