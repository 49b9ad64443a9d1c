package kernel

import (
	"fmt"
	"strconv"

	"dispatch/internal/pkg/errs"
)

// ErrIDIsNotConstructed indicates that an ID was not properly initialized
// through NewID. This error is returned when validating a zero-value ID.
var ErrIDIsNotConstructed = errs.NewValueIsRequiredError("ID must be created via NewID")

// ID is a value object that represents a numeric entity identifier.
// It wraps an int64 to provide domain-specific validation and ensure
// immutability. IDs identify users and deliveries throughout the system.
//
// The zero value of ID is invalid; construct IDs with NewID.
// ID is immutable and safe for concurrent use.
//
// Example usage:
//
//	driverID, err := kernel.NewID(42)
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(driverID.String()) // "42"
type ID struct {
	value int64
}

// NewID creates an ID from a raw integer value.
// The value must be positive; zero and negative values are rejected because
// identifiers are assigned by the identity service and the database, both of
// which start counting at 1.
func NewID(value int64) (ID, error) {
	if value <= 0 {
		return ID{}, errs.NewValueIsInvalidErrorWithCause("id is invalid",
			fmt.Errorf("%d is not greater than 0", value))
	}
	return ID{value: value}, nil
}

// Int64 returns the raw numeric value of the identifier.
func (i ID) Int64() int64 {
	return i.value
}

// String returns the decimal representation of the identifier.
// Used for logging, error messages and broadcast group naming.
func (i ID) String() string {
	return strconv.FormatInt(i.value, 10)
}

// IsEqual compares two identifiers by value.
func (i ID) IsEqual(other ID) bool {
	return i.value == other.value
}

// Validate checks that the ID was constructed through NewID.
// Returns ErrIDIsNotConstructed for the zero value.
func (i ID) Validate() error {
	if i.value <= 0 {
		return ErrIDIsNotConstructed
	}
	return nil
}
