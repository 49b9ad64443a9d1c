package queries

import (
	"context"
	"time"

	"dispatch/internal/core/ports"

	"gorm.io/gorm"
)

// GetTodayDeliveriesForDriverQueryHandler retrieves the deliveries created
// today for one driver, resolving the driver through the identity service
// first.
type GetTodayDeliveriesForDriverQueryHandler struct {
	db    *gorm.DB
	users ports.UserProvider
	now   func() time.Time
}

// NewGetTodayDeliveriesForDriverQueryHandler creates a handler for a
// driver's same-day deliveries.
func NewGetTodayDeliveriesForDriverQueryHandler(db *gorm.DB, users ports.UserProvider) GetTodayDeliveriesForDriverQueryHandler {
	return GetTodayDeliveriesForDriverQueryHandler{
		db:    db,
		users: users,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Handle executes the query. Fails with an object-not-found error when the
// driver identifier does not resolve.
func (h GetTodayDeliveriesForDriverQueryHandler) Handle(
	ctx context.Context,
	query GetTodayDeliveriesForDriverQuery,
) ([]DeliveryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	driver, err := h.users.Get(ctx, query.DriverID())
	if err != nil {
		return nil, err
	}

	from, to := dayBounds(h.now())

	return queryDeliveries(h.db.WithContext(ctx), `
		SELECT `+deliveryColumns+`
		FROM deliveries
		WHERE driver_id = ? AND created_at >= ? AND created_at < ?
		ORDER BY end_order_number, id
	`, driver.ID().Int64(), from, to)
}
