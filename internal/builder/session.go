// Package builder drives the three-step question authoring flow:
// select a type, configure its structure, review and save. One session
// owns one in-progress structure; every edit goes through the reducer
// in reducer.go.
package builder

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/quizdash/builder-service/internal/models"
	"github.com/quizdash/builder-service/internal/registry"
)

// State is the wizard step a session is in.
type State string

const (
	StateSelectType State = "select_type"
	StateConfigure  State = "configure"
	StateReview     State = "review"
	StateCompleted  State = "completed"
)

var (
	ErrNoTypeSelected    = errors.New("no type selected")
	ErrInvalidTransition = errors.New("invalid wizard transition")
	ErrSessionCompleted  = errors.New("session already completed")
	ErrSaveInProgress    = errors.New("save already in progress")
)

// Session is one authoring session. Methods serialize access with an
// internal mutex; HTTP handlers may hit the same session concurrently
// even though the dashboard drives it from a single tab.
type Session struct {
	ID         string
	MetadataID uint

	mu           sync.Mutex
	state        State
	questionType models.QuestionType
	structure    models.Structure
	saveInFlight bool

	CreatedAt time.Time
	updatedAt time.Time
}

// NewSession starts a session in the type-selection step.
func NewSession(id string, metadataID uint) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:         id,
		MetadataID: metadataID,
		state:      StateSelectType,
		CreatedAt:  now,
		updatedAt:  now,
	}
}

// State returns the current wizard step.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// QuestionType returns the selected variant, empty until one is chosen.
func (s *Session) QuestionType() models.QuestionType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.questionType
}

// Structure returns an independent copy of the in-progress structure,
// or nil before a type is selected.
func (s *Session) Structure() models.Structure {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.structure == nil {
		return nil
	}
	return s.structure.Clone()
}

// UpdatedAt returns the time of the last accepted mutation.
func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// SelectType chooses the variant and resets the structure to its
// default shape. Only allowed in the type-selection step; the flow does
// not support mid-wizard type changes.
func (s *Session) SelectType(typeID models.QuestionType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateSelectType {
		return fmt.Errorf("%w: cannot select a type in step %s", ErrInvalidTransition, s.state)
	}

	structure, err := registry.NewStructure(typeID)
	if err != nil {
		return err
	}

	s.questionType = typeID
	s.structure = structure
	s.touch()
	return nil
}

// Advance moves one step forward. Leaving type selection requires a
// selected type; leaving configuration is always allowed because
// validation is deferred to save so the author can iterate freely.
func (s *Session) Advance() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateSelectType:
		if s.structure == nil {
			return ErrNoTypeSelected
		}
		s.state = StateConfigure
	case StateConfigure:
		s.state = StateReview
	default:
		return fmt.Errorf("%w: cannot advance from step %s", ErrInvalidTransition, s.state)
	}
	s.touch()
	return nil
}

// Back moves one step backward. In the first step it is a no-op.
func (s *Session) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateSelectType:
		return nil
	case StateConfigure:
		s.state = StateSelectType
	case StateReview:
		s.state = StateConfigure
	default:
		return fmt.Errorf("%w: cannot go back from step %s", ErrInvalidTransition, s.state)
	}
	s.touch()
	return nil
}

// Apply runs one edit action through the reducer and swaps in the
// resulting structure. Edits only happen in the configuration step.
func (s *Session) Apply(a Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateConfigure {
		return fmt.Errorf("%w: edits are only allowed in step %s", ErrInvalidTransition, StateConfigure)
	}

	next, err := Apply(s.structure, a)
	if err != nil {
		return err
	}
	s.structure = next
	s.touch()
	return nil
}

// Reorder moves the ordering item at from to position to and renumbers
// every item. Only meaningful for the ordering variant.
func (s *Session) Reorder(from, to int) error {
	return s.Apply(Action{Op: OpMoveItem, From: from, To: to})
}

// BeginSave reserves the session's single persistence attempt. It fails
// when the session is not in review, already completed, or another save
// is in flight (double click guard).
func (s *Session) BeginSave() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.state == StateCompleted:
		return ErrSessionCompleted
	case s.state != StateReview:
		return fmt.Errorf("%w: save is only allowed in step %s", ErrInvalidTransition, StateReview)
	case s.saveInFlight:
		return ErrSaveInProgress
	}
	s.saveInFlight = true
	return nil
}

// FinishSave releases the save guard. On success the session is
// completed and its working structure is discarded, since the persisted
// copy is now authoritative; on failure it stays in review with its
// structure intact so the author can retry without re-entering data.
func (s *Session) FinishSave(success bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.saveInFlight = false
	if success {
		s.state = StateCompleted
		s.structure = nil
	}
	s.touch()
}

func (s *Session) touch() {
	s.updatedAt = time.Now().UTC()
}
