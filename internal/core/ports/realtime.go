package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
)

// Realtime event names exchanged with connected clients.
const (
	// EventDeliveryCreated is emitted to a driver's group when a delivery is
	// assigned to them.
	EventDeliveryCreated = "CREATE_NEW_DELIVERY"

	// EventDriverLocation is the inbound event carrying a driver's position
	// report on an authenticated connection.
	EventDriverLocation = "SEND_DRIVER_LOCATION"

	// EventOpenDeliveryReminder is emitted periodically to drivers that still
	// have open deliveries.
	EventOpenDeliveryReminder = "OPEN_DELIVERY_REMINDER"
)

// GroupForUser names the broadcast group that fans out to every live
// connection of one user identity.
func GroupForUser(id kernel.ID) string {
	return "user-" + id.String()
}

// NotificationPublisher pushes events to a named broadcast group.
// Publishing is fire-and-forget: there is no error path, no acknowledgement,
// and a missing or empty group has no observable effect on the caller.
// Business logic holds this capability without any transport knowledge.
type NotificationPublisher interface {
	Publish(groupKey string, event string, payload any)
}

// Claims is the verified identity extracted from a realtime connection token.
type Claims struct {
	// SubjectID is the numeric identity of the connection's user.
	SubjectID kernel.ID
}

// TokenVerifier decodes and verifies a connection token.
// Verification happens exactly once per connection, at connection time.
type TokenVerifier interface {
	Verify(token string) (Claims, error)
}

// LocationSink consumes position reports forwarded from authenticated
// connections. The report body is opaque to this core; malformed payloads
// are the sink's concern.
type LocationSink interface {
	Record(ctx context.Context, driverID kernel.ID, body []byte) error
}
