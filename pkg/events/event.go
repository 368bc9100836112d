package events

import "time"

// Event types published on the bus.
const (
	TypeUserRegistered     = "user.registered"
	TypeUserLogin          = "user.login"
	TypeSubmissionReceived = "submission.received"
	TypeEntryEmbedded      = "entry.embedded"
	TypeAssistantReplied   = "assistant.replied"
)

// Event is the contract for everything that crosses the bus.
type Event interface {
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// New builds an event stamped with the current time.
func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}
