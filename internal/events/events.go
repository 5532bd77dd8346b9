// Package events publishes domain events about rental resources.
package events

import (
	"context"
	"time"
)

const (
	CarCreated      = "car.created"
	CarDeleted      = "car.deleted"
	BookingCreated  = "booking.created"
	AdminRegistered = "admin.registered"
)

// Event is the JSON envelope sent to subscribers.
type Event struct {
	Type       string    `json:"type"`
	ID         string    `json:"id"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload,omitempty"`
}

// New builds an event stamped with the current time.
func New(eventType, id string, payload any) Event {
	return Event{Type: eventType, ID: id, OccurredAt: time.Now().UTC(), Payload: payload}
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// Nop discards every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }
