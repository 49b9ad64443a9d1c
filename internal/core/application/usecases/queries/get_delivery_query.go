package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetDeliveryQueryIsNotConstructed = errors.New(
		"GetDeliveryQuery must be created via NewGetDeliveryQuery constructor",
	)
)

// GetDeliveryQuery retrieves one delivery by its identifier.
// Absence is not an error: the handler returns a nil response and the
// caller decides how to surface it.
type GetDeliveryQuery struct { //nolint:recvcheck //using for validation
	deliveryID kernel.ID

	guard guard.ConstructorGuard
}

// NewGetDeliveryQuery creates a point-lookup query for a delivery.
func NewGetDeliveryQuery(deliveryID kernel.ID) (GetDeliveryQuery, error) {
	if err := deliveryID.Validate(); err != nil {
		return GetDeliveryQuery{}, err
	}

	return GetDeliveryQuery{
		deliveryID: deliveryID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryQueryIsNotConstructed)
}

// DeliveryID returns the identifier of the delivery to look up.
func (q GetDeliveryQuery) DeliveryID() kernel.ID {
	return q.deliveryID
}
