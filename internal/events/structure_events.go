package events

import (
	"time"

	"github.com/quizdash/builder-service/internal/models"
)

// EventType represents different types of builder events
type EventType string

const (
	// Structure lifecycle events
	EventStructureCreated EventType = "question.structure.created"
	EventStructureDeleted EventType = "question.structure.deleted"

	// Builder session events
	EventSessionStarted   EventType = "builder.session.started"
	EventSessionCancelled EventType = "builder.session.cancelled"
)

// BuilderEvent is the base event structure published for downstream
// consumers (search indexing, notifications, analytics).
type BuilderEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// StructureCreatedEvent is emitted once per successful save.
type StructureCreatedEvent struct {
	StructureID uint                `json:"structure_id,omitempty"`
	MetadataID  uint                `json:"metadata_id"`
	BuilderType models.QuestionType `json:"builder_type"`
	SessionID   string              `json:"session_id"`
	CreatedAt   time.Time           `json:"created_at"`
}

// StructureDeletedEvent is emitted when a saved structure is removed.
type StructureDeletedEvent struct {
	StructureID uint      `json:"structure_id"`
	DeletedAt   time.Time `json:"deleted_at"`
}

// SessionStartedEvent is emitted when an authoring session begins.
type SessionStartedEvent struct {
	SessionID  string    `json:"session_id"`
	MetadataID uint      `json:"metadata_id"`
	StartedAt  time.Time `json:"started_at"`
}

// SessionCancelledEvent is emitted when an authoring session is
// discarded without saving.
type SessionCancelledEvent struct {
	SessionID   string    `json:"session_id"`
	MetadataID  uint      `json:"metadata_id"`
	CancelledAt time.Time `json:"cancelled_at"`
}
