package events

import (
	"context"
	"encoding/json"
	"time"
)

// Kind names a lifecycle event consumed by the channel-poster and analytics.
type Kind string

const (
	KindVacancyPublished Kind = "vacancy.published"
	KindVacancyClosed    Kind = "vacancy.closed"
	KindVacancyExpired   Kind = "vacancy.expired"
	KindResumePublished  Kind = "resume.published"
)

// Event is the payload sent to downstream consumers.
type Event struct {
	Kind       Kind   `json:"kind"`
	EntityID   string `json:"entityId"`
	OwnerID    int64  `json:"ownerId"`
	OccurredAt string `json:"occurredAt"`
}

// New builds an event stamped with the current UTC time.
func New(kind Kind, entityID string, ownerID int64) Event {
	return Event{
		Kind:       kind,
		EntityID:   entityID,
		OwnerID:    ownerID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// Publisher delivers events to a queue backend.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Encode returns the JSON representation of an event.
func Encode(event Event) ([]byte, error) {
	return json.Marshal(event)
}

// Decode parses a JSON payload into an Event.
func Decode(payload []byte) (Event, error) {
	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return Event{}, err
	}
	return event, nil
}
