package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents what happened to an entity
type EventType string

const (
	EventTypeUpdated   EventType = "updated"
	EventTypeDismissed EventType = "dismissed"
	EventTypeIconSet   EventType = "icon_set"
	EventTypeSynced    EventType = "synced"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypeSettings  EntityType = "settings"
	EntityTypeBanner    EntityType = "banner"
	EntityTypeWorkspace EntityType = "workspace"
)

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "settings.updated"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "settings"
	Payload   interface{} `json:"payload"`   // Full entity data
	Timestamp time.Time   `json:"timestamp"` // Event timestamp
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// SettingsUpdated creates a settings.updated event. Clients re-fetch the
// dashboard when they receive it.
func SettingsUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeSettings, payload)
}

// BannerDismissed creates a banner.dismissed event
func BannerDismissed(payload interface{}) Event {
	return NewEvent(EventTypeDismissed, EntityTypeBanner, payload)
}

// BannerIconSet creates a banner.icon_set event
func BannerIconSet(payload interface{}) Event {
	return NewEvent(EventTypeIconSet, EntityTypeBanner, payload)
}

// WorkspaceSynced creates a workspace.synced event, sent when the account
// sync of a workspace completes
func WorkspaceSynced(payload interface{}) Event {
	return NewEvent(EventTypeSynced, EntityTypeWorkspace, payload)
}
