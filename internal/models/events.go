package models

import "time"

type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventDeleted EventType = "deleted"
)

// Event is the structure pushed to every change feed subscriber
type Event struct {
	Type      EventType `json:"type"`
	Person    Contact   `json:"person"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent stamps an event with the current time.
func NewEvent(t EventType, c Contact) Event {
	return Event{Type: t, Person: c, Timestamp: time.Now().UTC()}
}
