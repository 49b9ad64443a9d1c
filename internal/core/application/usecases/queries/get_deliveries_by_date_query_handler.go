package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetDeliveriesByDateQueryHandler retrieves deliveries created on a calendar
// day from the database.
type GetDeliveriesByDateQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveriesByDateQueryHandler creates a handler for by-date queries.
func NewGetDeliveriesByDateQueryHandler(db *gorm.DB) GetDeliveriesByDateQueryHandler {
	return GetDeliveriesByDateQueryHandler{db: db}
}

// Handle executes the query. Results are sorted by identifier for
// consistent output.
func (h GetDeliveriesByDateQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveriesByDateQuery,
) ([]DeliveryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	from, to := dayBounds(query.Date())

	return queryDeliveries(h.db.WithContext(ctx), `
		SELECT `+deliveryColumns+`
		FROM deliveries
		WHERE created_at >= ? AND created_at < ?
		ORDER BY id
	`, from, to)
}
