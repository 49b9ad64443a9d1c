package queries

import (
	"context"

	"dispatch/internal/core/ports"

	"gorm.io/gorm"
)

// GetOpenDeliveriesForDriverQueryHandler retrieves a driver's open
// deliveries, resolving the driver through the identity service first.
type GetOpenDeliveriesForDriverQueryHandler struct {
	db    *gorm.DB
	users ports.UserProvider
}

// NewGetOpenDeliveriesForDriverQueryHandler creates a handler for per-driver
// open-delivery queries.
func NewGetOpenDeliveriesForDriverQueryHandler(db *gorm.DB, users ports.UserProvider) GetOpenDeliveriesForDriverQueryHandler {
	return GetOpenDeliveriesForDriverQueryHandler{db: db, users: users}
}

// Handle executes the query. Fails with an object-not-found error when the
// driver identifier does not resolve.
func (h GetOpenDeliveriesForDriverQueryHandler) Handle(
	ctx context.Context,
	query GetOpenDeliveriesForDriverQuery,
) ([]DeliveryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	driver, err := h.users.Get(ctx, query.DriverID())
	if err != nil {
		return nil, err
	}

	return queryDeliveries(h.db.WithContext(ctx), `
		SELECT `+deliveryColumns+`
		FROM deliveries
		WHERE driver_id = ? AND ended_at IS NULL
		ORDER BY end_order_number, id
	`, driver.ID().Int64())
}
