package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/quizdash/builder-service/internal/builder"
	"github.com/quizdash/builder-service/internal/cache"
	"github.com/quizdash/builder-service/internal/events"
	"github.com/quizdash/builder-service/internal/models"
	"github.com/quizdash/builder-service/internal/projector"
	"github.com/quizdash/builder-service/internal/utils"
	"github.com/quizdash/builder-service/internal/validator"
	"gorm.io/datatypes"
)

const eventSource = "builder-service"

// SaveResult describes a successfully persisted structure.
type SaveResult struct {
	StructureID uint                `json:"structure_id,omitempty"`
	MetadataID  uint                `json:"metadata_id"`
	BuilderType models.QuestionType `json:"builder_type"`
	SavedAt     time.Time           `json:"saved_at"`
}

// SessionView is the wizard state returned to the dashboard after every
// session operation.
type SessionView struct {
	SessionID    string              `json:"session_id"`
	MetadataID   uint                `json:"metadata_id"`
	State        builder.State       `json:"state"`
	QuestionType models.QuestionType `json:"question_type,omitempty"`
	Structure    models.Structure    `json:"structure,omitempty"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// BuilderService orchestrates authoring sessions: the wizard steps,
// structure edits, validation, preview and the final save.
type BuilderService interface {
	StartSession(ctx context.Context, metadataID uint) (*SessionView, error)
	GetSession(ctx context.Context, sessionID string) (*SessionView, error)
	CancelSession(ctx context.Context, sessionID string) error

	SelectType(ctx context.Context, sessionID string, typeID models.QuestionType) (*SessionView, error)
	Advance(ctx context.Context, sessionID string) (*SessionView, error)
	Back(ctx context.Context, sessionID string) (*SessionView, error)
	ApplyAction(ctx context.Context, sessionID string, action builder.Action) (*SessionView, error)
	Reorder(ctx context.Context, sessionID string, from, to int) (*SessionView, error)

	Validate(ctx context.Context, sessionID string) (ValidationErrors, error)
	Preview(ctx context.Context, sessionID string) (*models.DisplayPayload, error)
	Save(ctx context.Context, sessionID string) (*SaveResult, error)
}

type builderService struct {
	sessions  builder.Store
	validator *validator.Validator
	projector *projector.Projector
	writer    StructureWriter
	publisher events.EventPublisher
	cache     cache.CacheService
	logger    utils.Logger
	now       func() time.Time
}

// NewBuilderService wires the authoring flow together.
func NewBuilderService(
	sessions builder.Store,
	v *validator.Validator,
	p *projector.Projector,
	writer StructureWriter,
	publisher events.EventPublisher,
	cacheService cache.CacheService,
	logger utils.Logger,
) BuilderService {
	return &builderService{
		sessions:  sessions,
		validator: v,
		projector: p,
		writer:    writer,
		publisher: publisher,
		cache:     cacheService,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *builderService) StartSession(ctx context.Context, metadataID uint) (*SessionView, error) {
	session := builder.NewSession(uuid.NewString(), metadataID)
	s.sessions.Put(session)

	s.logger.InfoContext(ctx, "builder session started",
		"session_id", session.ID,
		"metadata_id", metadataID)

	s.publish(ctx, events.EventSessionStarted, events.SessionStartedEvent{
		SessionID:  session.ID,
		MetadataID: metadataID,
		StartedAt:  session.CreatedAt,
	})

	return s.view(session), nil
}

func (s *builderService) GetSession(ctx context.Context, sessionID string) (*SessionView, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(session), nil
}

func (s *builderService) CancelSession(ctx context.Context, sessionID string) error {
	session, err := s.session(sessionID)
	if err != nil {
		return err
	}
	s.sessions.Delete(sessionID)

	s.logger.InfoContext(ctx, "builder session cancelled",
		"session_id", sessionID,
		"metadata_id", session.MetadataID)

	s.publish(ctx, events.EventSessionCancelled, events.SessionCancelledEvent{
		SessionID:   sessionID,
		MetadataID:  session.MetadataID,
		CancelledAt: s.now().UTC(),
	})
	return nil
}

func (s *builderService) SelectType(ctx context.Context, sessionID string, typeID models.QuestionType) (*SessionView, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.SelectType(typeID); err != nil {
		return nil, err
	}
	return s.view(session), nil
}

func (s *builderService) Advance(ctx context.Context, sessionID string) (*SessionView, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Advance(); err != nil {
		return nil, err
	}
	return s.view(session), nil
}

func (s *builderService) Back(ctx context.Context, sessionID string) (*SessionView, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Back(); err != nil {
		return nil, err
	}
	return s.view(session), nil
}

func (s *builderService) ApplyAction(ctx context.Context, sessionID string, action builder.Action) (*SessionView, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Apply(action); err != nil {
		return nil, err
	}
	return s.view(session), nil
}

func (s *builderService) Reorder(ctx context.Context, sessionID string, from, to int) (*SessionView, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.Reorder(from, to); err != nil {
		return nil, err
	}
	return s.view(session), nil
}

func (s *builderService) Validate(ctx context.Context, sessionID string) (ValidationErrors, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return s.validator.Structure().Validate(session.QuestionType(), session.Structure()), nil
}

func (s *builderService) Preview(ctx context.Context, sessionID string) (*models.DisplayPayload, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	structure := session.Structure()
	if structure == nil {
		return nil, builder.ErrNoTypeSelected
	}
	return s.projector.Project(structure)
}

// Save validates the structure, writes it through the configured
// writer and discards the session, the same way cancel does: once the
// structure is persisted the working copy has no owner left. Any
// failure releases the save guard so the author can fix the structure
// and retry without losing work.
func (s *builderService) Save(ctx context.Context, sessionID string) (*SaveResult, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	if err := session.BeginSave(); err != nil {
		return nil, err
	}

	structure := session.Structure()
	if verrs := s.validator.Structure().Validate(session.QuestionType(), structure); len(verrs) > 0 {
		session.FinishSave(false)
		return nil, verrs
	}

	exists, err := s.writer.HasStructure(ctx, session.MetadataID)
	if err != nil {
		session.FinishSave(false)
		return nil, NewPersistenceError("existence check", err)
	}
	if exists {
		session.FinishSave(false)
		return nil, fmt.Errorf("%w: metadata %d", ErrStructureExists, session.MetadataID)
	}

	// What gets persisted is the projected display payload: the read
	// side and the quiz client consume it as-is.
	payload, err := s.projector.Project(structure)
	if err != nil {
		session.FinishSave(false)
		return nil, err
	}
	data, err := json.Marshal(payload)
	if err != nil {
		session.FinishSave(false)
		return nil, fmt.Errorf("failed to encode display payload: %w", err)
	}

	record := &models.QuestionStructure{
		MetadataID:  session.MetadataID,
		BuilderType: session.QuestionType(),
		Data:        datatypes.JSON(data),
	}
	if err := s.writer.WriteStructure(ctx, record); err != nil {
		session.FinishSave(false)
		s.logger.ErrorContext(ctx, "structure write failed",
			"session_id", sessionID,
			"metadata_id", session.MetadataID,
			"error", err)
		return nil, NewPersistenceError("structure write", err)
	}

	session.FinishSave(true)
	s.sessions.Delete(sessionID)
	savedAt := s.now().UTC()

	s.logger.InfoContext(ctx, "structure saved",
		"session_id", sessionID,
		"metadata_id", session.MetadataID,
		"builder_type", session.QuestionType(),
		"structure_id", record.ID)

	s.publish(ctx, events.EventStructureCreated, events.StructureCreatedEvent{
		StructureID: record.ID,
		MetadataID:  session.MetadataID,
		BuilderType: session.QuestionType(),
		SessionID:   sessionID,
		CreatedAt:   savedAt,
	})

	if err := s.cache.DeletePattern(ctx, "structures:*"); err != nil {
		s.logger.WarnContext(ctx, "cache invalidation failed", "error", err)
	}

	return &SaveResult{
		StructureID: record.ID,
		MetadataID:  session.MetadataID,
		BuilderType: session.QuestionType(),
		SavedAt:     savedAt,
	}, nil
}

func (s *builderService) session(sessionID string) (*builder.Session, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return session, nil
}

func (s *builderService) view(session *builder.Session) *SessionView {
	return &SessionView{
		SessionID:    session.ID,
		MetadataID:   session.MetadataID,
		State:        session.State(),
		QuestionType: session.QuestionType(),
		Structure:    session.Structure(),
		UpdatedAt:    session.UpdatedAt(),
	}
}

// publish sends an event best-effort: a broker outage must never fail
// the authoring operation itself.
func (s *builderService) publish(ctx context.Context, eventType events.EventType, payload any) {
	if s.publisher == nil {
		return
	}
	event := &events.BuilderEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: s.now().UTC(),
		Source:    eventSource,
		Version:   "1.0",
		Data:      payload,
	}
	if err := s.publisher.PublishBuilderEvent(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "event publish failed",
			"event_type", eventType,
			"error", err)
	}
}
