package events

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/yigit/studentdesk/internal/app/models"
	"github.com/yigit/studentdesk/internal/pkg/logger"
)

// Type names a change to the student directory
type Type string

const (
	StudentCreated Type = "student.created"
	StudentUpdated Type = "student.updated"
	StudentDeleted Type = "student.deleted"
)

// Event is the audit record emitted after a successful mutation
type Event struct {
	Type      Type        `json:"type"`
	StudentID int64       `json:"studentId"`
	ActorID   uuid.UUID   `json:"actorId"`
	ActorRole models.Role `json:"actorRole"`
	Timestamp time.Time   `json:"timestamp"`
}

// New builds an event for actor acting on studentID
func New(t Type, studentID int64, actor models.Identity) Event {
	return Event{
		Type:      t,
		StudentID: studentID,
		ActorID:   actor.UserID,
		ActorRole: actor.Role,
		Timestamp: time.Now().UTC(),
	}
}

// Publisher delivers events to interested parties
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Nop discards every event
type Nop struct{}

// Publish implements Publisher
func (Nop) Publish(context.Context, Event) error { return nil }

// LogPublisher writes events to the structured log
type LogPublisher struct{}

// Publish implements Publisher
func (LogPublisher) Publish(_ context.Context, event Event) error {
	audit := logger.Component("audit")
	audit.Info().
		Str("type", string(event.Type)).
		Int64("studentID", event.StudentID).
		Str("actorID", event.ActorID.String()).
		Str("actorRole", string(event.ActorRole)).
		Time("timestamp", event.Timestamp).
		Msg("Student directory changed")
	return nil
}

// Multi fans an event out to several publishers
type Multi []Publisher

// Publish implements Publisher. Every publisher is tried; failures are joined.
func (m Multi) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
