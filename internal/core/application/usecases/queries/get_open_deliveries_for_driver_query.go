package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetOpenDeliveriesForDriverQueryIsNotConstructed = errors.New(
		"GetOpenDeliveriesForDriverQuery must be created via NewGetOpenDeliveriesForDriverQuery constructor",
	)
)

// GetOpenDeliveriesForDriverQuery retrieves one driver's open deliveries.
// The driver must resolve through the identity service; an unknown driver
// fails with an object-not-found error.
type GetOpenDeliveriesForDriverQuery struct { //nolint:recvcheck //using for validation
	driverID kernel.ID

	guard guard.ConstructorGuard
}

// NewGetOpenDeliveriesForDriverQuery creates a query for a driver's open
// deliveries.
func NewGetOpenDeliveriesForDriverQuery(driverID kernel.ID) (GetOpenDeliveriesForDriverQuery, error) {
	if err := driverID.Validate(); err != nil {
		return GetOpenDeliveriesForDriverQuery{}, err
	}

	return GetOpenDeliveriesForDriverQuery{
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOpenDeliveriesForDriverQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenDeliveriesForDriverQueryIsNotConstructed)
}

// DriverID returns the identifier of the driver.
func (q GetOpenDeliveriesForDriverQuery) DriverID() kernel.ID {
	return q.driverID
}
