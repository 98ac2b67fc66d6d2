package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types published by the membership service.
const (
	TypeApplicationSubmitted = "trainer.application_submitted"
	TypeApplicationApproved  = "trainer.application_approved"
	TypeApplicationRejected  = "trainer.application_rejected"
	TypeUserRoleChanged      = "user.role_changed"
	TypeUserDeleted          = "user.deleted"
)

// Topic carries every membership event; consumers filter on Type.
const Topic = "membership.events"

const source = "membership-service"

// Event is the envelope published to the message bus.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewEvent builds an envelope with a fresh id and timestamp.
func NewEvent(eventType string, data interface{}) Event {
	return Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    source,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// Publisher publishes membership events. Implementations must be safe for
// concurrent use by request handlers.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// ApplicationEvent is the payload for trainer lifecycle events.
type ApplicationEvent struct {
	ApplicationID string  `json:"application_id"`
	Email         string  `json:"email"`
	Status        string  `json:"status"`
	Feedback      *string `json:"feedback,omitempty"`
}

// RoleChangedEvent is the payload for direct role mutations.
type RoleChangedEvent struct {
	UserID string `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role"`
}

// UserDeletedEvent is the payload for administrative removals.
type UserDeletedEvent struct {
	UserID string `json:"user_id"`
}
