// Package registry is the static catalog of supported question-type
// variants: their identifiers, presentation metadata and default
// (empty) structures.
package registry

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/quizdash/builder-service/internal/models"
)

// ErrUnknownType is wrapped by every UnknownTypeError so callers can
// test with errors.Is.
var ErrUnknownType = errors.New("unknown question type")

// UnknownTypeError reports a lookup of a type id that is not in the
// catalog. This is a programming or configuration error, not a user
// mistake, and must never be defaulted away.
type UnknownTypeError struct {
	Type models.QuestionType
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown question type %q", e.Type)
}

func (e *UnknownTypeError) Unwrap() error {
	return ErrUnknownType
}

// Descriptor identifies one variant of the catalog.
type Descriptor struct {
	ID          models.QuestionType `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
}

var descriptors = []Descriptor{
	{models.TrueFalse, "True / False", "A single statement answered with true or false"},
	{models.SingleChoice, "Single Choice", "Multiple options, one correct answer"},
	{models.MultiChoice, "Multiple Choice", "Multiple options, several may be correct"},
	{models.PairedActivity, "Paired Activity", "Two independent option columns answered together"},
	{models.PairedAssertions, "Paired Assertions", "Two assertions linked by a logical relation"},
	{models.Matching, "Matching", "Associate each left item with its right item"},
	{models.Ordering, "Ordering", "Arrange items into the correct sequence"},
	{models.FillInBlank, "Fill In The Blank", "Text with ${{...}} placeholders to complete"},
	{models.GridIntersection, "Grid Intersections", "Select the correct row x column cells"},
}

// constructors builds a fresh zero-value structure per variant. Adding
// a variant means one entry here, one validation rule and one
// projection rule.
var constructors = map[models.QuestionType]func() models.Structure{
	models.TrueFalse:        func() models.Structure { return &models.TrueFalseStructure{} },
	models.SingleChoice:     func() models.Structure { return &models.SingleChoiceStructure{} },
	models.MultiChoice:      func() models.Structure { return &models.MultiChoiceStructure{} },
	models.PairedActivity:   func() models.Structure { return &models.PairedActivityStructure{} },
	models.PairedAssertions: func() models.Structure { return &models.PairedAssertionStructure{} },
	models.Matching:         func() models.Structure { return &models.MatchingStructure{} },
	models.Ordering:         func() models.Structure { return &models.OrderingStructure{} },
	models.FillInBlank:      func() models.Structure { return &models.FillBlankStructure{} },
	models.GridIntersection: func() models.Structure { return &models.GridStructure{} },
}

// Types returns the fixed, ordered descriptor list.
func Types() []Descriptor {
	out := make([]Descriptor, len(descriptors))
	copy(out, descriptors)
	return out
}

// NewStructure returns a fresh, structurally independent zero-value
// structure for typeID. Every call allocates so consecutive builder
// sessions can never share state.
func NewStructure(typeID models.QuestionType) (models.Structure, error) {
	ctor, ok := constructors[typeID]
	if !ok {
		return nil, &UnknownTypeError{Type: typeID}
	}
	return ctor(), nil
}

// DecodeStructure unmarshals raw JSON into the concrete structure type
// for typeID.
func DecodeStructure(typeID models.QuestionType, raw []byte) (models.Structure, error) {
	s, err := NewStructure(typeID)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, s); err != nil {
		return nil, fmt.Errorf("failed to decode %s structure: %w", typeID, err)
	}
	return s, nil
}
