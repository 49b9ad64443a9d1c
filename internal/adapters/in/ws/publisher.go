package ws

// HubPublisher exposes the hub as a NotificationPublisher so business logic
// can push events without knowing about websockets.
type HubPublisher struct {
	hub *Hub
}

// NewHubPublisher creates a publisher backed by the given hub.
func NewHubPublisher(hub *Hub) *HubPublisher {
	return &HubPublisher{hub: hub}
}

// Publish fans the event out to the group's live connections.
// Fire-and-forget: no error, no acknowledgement, no effect when nobody
// is listening.
func (p *HubPublisher) Publish(groupKey string, event string, payload any) {
	p.hub.Emit(groupKey, event, payload)
}
