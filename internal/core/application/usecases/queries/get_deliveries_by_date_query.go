package queries

import (
	"errors"
	"time"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetDeliveriesByDateQueryIsNotConstructed = errors.New(
		"GetDeliveriesByDateQuery must be created via NewGetDeliveriesByDateQuery constructor",
	)
)

// GetDeliveriesByDateQuery retrieves all deliveries created on a calendar day.
type GetDeliveriesByDateQuery struct { //nolint:recvcheck //using for validation
	date time.Time

	guard guard.ConstructorGuard
}

// NewGetDeliveriesByDateQuery creates a query for deliveries created on the
// given date. The time-of-day portion is ignored.
func NewGetDeliveriesByDateQuery(date time.Time) (GetDeliveriesByDateQuery, error) {
	if date.IsZero() {
		return GetDeliveriesByDateQuery{}, errs.NewValueIsRequiredError("date")
	}

	return GetDeliveriesByDateQuery{
		date:  date,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveriesByDateQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveriesByDateQueryIsNotConstructed)
}

// Date returns the calendar day to filter by.
func (q GetDeliveriesByDateQuery) Date() time.Time {
	return q.date
}
