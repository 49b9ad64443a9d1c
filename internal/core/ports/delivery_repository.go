package ports

import (
	"context"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery aggregates.
// Reads used by the API read models live in the query handlers; this port
// carries the lookups and saves the lifecycle commands and jobs need.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate and returns the persisted
	// aggregate with its storage-assigned identifier.
	Add(ctx context.Context, aggregate *delivery.Delivery) (*delivery.Delivery, error)

	// Update persists changes to an existing delivery aggregate.
	// The save is optimistic: a concurrent writer that already bumped the
	// aggregate's version causes a conflict error instead of a silent clobber.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// UpdateAll persists a set of mutated delivery aggregates as one batched
	// save. Each save follows Update's optimistic semantics.
	UpdateAll(ctx context.Context, aggregates []*delivery.Delivery) error

	// Get retrieves a delivery aggregate by its identifier.
	// Returns an object-not-found error when the delivery does not exist.
	Get(ctx context.Context, id kernel.ID) (*delivery.Delivery, error)

	// GetAllOpen retrieves all deliveries whose completion timestamp is absent.
	GetAllOpen(ctx context.Context) ([]*delivery.Delivery, error)
}
