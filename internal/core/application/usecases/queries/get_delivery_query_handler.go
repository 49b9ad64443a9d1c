package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetDeliveryQueryHandler retrieves a single delivery from the database.
type GetDeliveryQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryQueryHandler creates a handler for delivery point lookups.
// Requires a GORM database connection for query execution.
func NewGetDeliveryQueryHandler(db *gorm.DB) GetDeliveryQueryHandler {
	return GetDeliveryQueryHandler{db: db}
}

// Handle executes the lookup. Returns (nil, nil) when the delivery does not
// exist; absence is the caller's decision to interpret.
func (h GetDeliveryQueryHandler) Handle(ctx context.Context, query GetDeliveryQuery) (*DeliveryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries, err := queryDeliveries(h.db.WithContext(ctx), `
		SELECT `+deliveryColumns+`
		FROM deliveries
		WHERE id = ?
	`, query.DeliveryID().Int64())
	if err != nil {
		return nil, err
	}

	if len(deliveries) == 0 {
		return nil, nil
	}

	return &deliveries[0], nil
}
