package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetTodayDeliveriesForDriverQueryIsNotConstructed = errors.New(
		"GetTodayDeliveriesForDriverQuery must be created via NewGetTodayDeliveriesForDriverQuery constructor",
	)
)

// GetTodayDeliveriesForDriverQuery retrieves a driver's deliveries created
// today. The driver must resolve through the identity service.
type GetTodayDeliveriesForDriverQuery struct { //nolint:recvcheck //using for validation
	driverID kernel.ID

	guard guard.ConstructorGuard
}

// NewGetTodayDeliveriesForDriverQuery creates a query for a driver's
// deliveries created today.
func NewGetTodayDeliveriesForDriverQuery(driverID kernel.ID) (GetTodayDeliveriesForDriverQuery, error) {
	if err := driverID.Validate(); err != nil {
		return GetTodayDeliveriesForDriverQuery{}, err
	}

	return GetTodayDeliveriesForDriverQuery{
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTodayDeliveriesForDriverQuery) Validate() error {
	return q.guard.Validate(ErrGetTodayDeliveriesForDriverQueryIsNotConstructed)
}

// DriverID returns the identifier of the driver.
func (q GetTodayDeliveriesForDriverQuery) DriverID() kernel.ID {
	return q.driverID
}
