package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var (
	ErrGetOpenDeliveriesQueryIsNotConstructed = errors.New(
		"GetOpenDeliveriesQuery must be created via NewGetOpenDeliveriesQuery constructor",
	)
)

// GetOpenDeliveriesQuery retrieves all deliveries whose completion timestamp
// is absent, across all drivers.
type GetOpenDeliveriesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOpenDeliveriesQuery creates a parameterless query for open deliveries.
func NewGetOpenDeliveriesQuery() GetOpenDeliveriesQuery {
	return GetOpenDeliveriesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetOpenDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenDeliveriesQueryIsNotConstructed)
}
