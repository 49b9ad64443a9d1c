// Package queries contains read-only operations over the delivery store.
// Implements the Query side of the CQRS architecture: handlers read the
// database directly through lightweight response models instead of
// rehydrating full aggregates.
package queries

import (
	"database/sql"
	"time"

	"gorm.io/gorm"
)

// DeliveryResponse represents one delivery row in query results.
type DeliveryResponse struct {
	ID             int64
	CustomerID     int64
	DriverID       int64
	Address        string
	Comment        string
	CreatedAt      time.Time
	EndedAt        *time.Time
	EndImage       string
	EndOrderNumber int
}

const deliveryColumns = `
		id,
		customer_id,
		driver_id,
		address,
		comment,
		created_at,
		ended_at,
		end_image,
		end_order_number`

// scanDeliveryRows converts raw delivery rows into response models.
func scanDeliveryRows(rows *sql.Rows) ([]DeliveryResponse, error) {
	deliveries := make([]DeliveryResponse, 0)

	for rows.Next() {
		resp, err := scanDeliveryRow(rows)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, resp)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}

func scanDeliveryRow(rows *sql.Rows) (DeliveryResponse, error) {
	var resp DeliveryResponse
	var endedAt sql.NullTime

	err := rows.Scan(
		&resp.ID,
		&resp.CustomerID,
		&resp.DriverID,
		&resp.Address,
		&resp.Comment,
		&resp.CreatedAt,
		&endedAt,
		&resp.EndImage,
		&resp.EndOrderNumber,
	)
	if err != nil {
		return DeliveryResponse{}, err
	}

	if endedAt.Valid {
		resp.EndedAt = &endedAt.Time
	}

	return resp, nil
}

// dayBounds returns the half-open UTC interval covering the calendar day of t.
func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}

// queryDeliveries runs a delivery select and scans the result set.
func queryDeliveries(db *gorm.DB, query string, args ...any) ([]DeliveryResponse, error) {
	rows, err := db.Raw(query, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDeliveryRows(rows)
}
