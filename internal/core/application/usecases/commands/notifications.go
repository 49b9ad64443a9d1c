package commands

import (
	"net/http"
	"time"

	"dispatch/internal/core/domain/model/delivery"
)

// DeliveryPayload is the wire representation of a persisted delivery carried
// inside realtime notifications.
type DeliveryPayload struct {
	ID             int64      `json:"id"`
	CustomerID     int64      `json:"customerId"`
	DriverID       int64      `json:"driverId"`
	Address        string     `json:"address"`
	Comment        string     `json:"comment,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	EndedAt        *time.Time `json:"endedAt,omitempty"`
	EndImage       string     `json:"endImage,omitempty"`
	EndOrderNumber int        `json:"endOrderNumber"`
}

// DeliveryCreatedNotification is the payload emitted to a driver's group when
// a delivery is assigned to them.
type DeliveryCreatedNotification struct {
	Status int             `json:"status"`
	Data   DeliveryPayload `json:"data"`
}

// NewDeliveryCreatedNotification builds the notification for a freshly
// persisted delivery.
func NewDeliveryCreatedNotification(d *delivery.Delivery) DeliveryCreatedNotification {
	return DeliveryCreatedNotification{
		Status: http.StatusOK,
		Data:   toDeliveryPayload(d),
	}
}

// OpenDeliveryReminderNotification is the payload emitted periodically to a
// driver who still has open deliveries.
type OpenDeliveryReminderNotification struct {
	Status int               `json:"status"`
	Data   []DeliveryPayload `json:"data"`
}

// NewOpenDeliveryReminderNotification builds the reminder for one driver's
// open deliveries.
func NewOpenDeliveryReminderNotification(deliveries []*delivery.Delivery) OpenDeliveryReminderNotification {
	payloads := make([]DeliveryPayload, 0, len(deliveries))
	for _, d := range deliveries {
		payloads = append(payloads, toDeliveryPayload(d))
	}

	return OpenDeliveryReminderNotification{
		Status: http.StatusOK,
		Data:   payloads,
	}
}

func toDeliveryPayload(d *delivery.Delivery) DeliveryPayload {
	return DeliveryPayload{
		ID:             d.ID().Int64(),
		CustomerID:     d.Customer().ID().Int64(),
		DriverID:       d.Driver().ID().Int64(),
		Address:        d.Address(),
		Comment:        d.Comment(),
		CreatedAt:      d.CreatedAt(),
		EndedAt:        d.EndedAt(),
		EndImage:       d.EndImage(),
		EndOrderNumber: d.EndOrderNumber(),
	}
}
