package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetOpenDeliveriesQueryHandler retrieves deliveries pending completion from
// the database. Filters out completed deliveries to provide active workload
// visibility.
type GetOpenDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetOpenDeliveriesQueryHandler creates a handler for open-delivery
// queries. Requires a GORM database connection for query execution.
func NewGetOpenDeliveriesQueryHandler(db *gorm.DB) GetOpenDeliveriesQueryHandler {
	return GetOpenDeliveriesQueryHandler{db: db}
}

// Handle executes the query to retrieve all open deliveries.
// Results are sorted by identifier for consistent output.
func (h GetOpenDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetOpenDeliveriesQuery,
) ([]DeliveryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return queryDeliveries(h.db.WithContext(ctx), `
		SELECT `+deliveryColumns+`
		FROM deliveries
		WHERE ended_at IS NULL
		ORDER BY id
	`)
}
