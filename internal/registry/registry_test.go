package registry

import (
	"errors"
	"testing"

	"github.com/quizdash/builder-service/internal/models"
)

func TestTypes(t *testing.T) {
	types := Types()

	if len(types) != 9 {
		t.Fatalf("Expected 9 question types, got %d", len(types))
	}

	expected := []models.QuestionType{
		models.TrueFalse,
		models.SingleChoice,
		models.MultiChoice,
		models.PairedActivity,
		models.PairedAssertions,
		models.Matching,
		models.Ordering,
		models.FillInBlank,
		models.GridIntersection,
	}
	for i, want := range expected {
		if types[i].ID != want {
			t.Errorf("Expected type %s at position %d, got %s", want, i, types[i].ID)
		}
		if types[i].Name == "" {
			t.Errorf("Type %s has an empty name", types[i].ID)
		}
	}

	// The returned slice is a copy; mutating it must not affect the catalog.
	types[0].Name = "tampered"
	if Types()[0].Name == "tampered" {
		t.Error("Types() exposed the internal descriptor slice")
	}
}

func TestNewStructure(t *testing.T) {
	for _, desc := range Types() {
		s, err := NewStructure(desc.ID)
		if err != nil {
			t.Fatalf("NewStructure(%s) failed: %v", desc.ID, err)
		}
		if s.Type() != desc.ID {
			t.Errorf("Expected type %s, got %s", desc.ID, s.Type())
		}
	}
}

func TestNewStructure_Independence(t *testing.T) {
	a, err := NewStructure(models.SingleChoice)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewStructure(models.SingleChoice)
	if err != nil {
		t.Fatal(err)
	}

	a.Common().Content = "first session"
	if b.Common().Content != "" {
		t.Error("Two structures from NewStructure share state")
	}
}

func TestNewStructure_UnknownType(t *testing.T) {
	_, err := NewStructure("NOPE")
	if err == nil {
		t.Fatal("Expected an error for an unknown type")
	}
	if !errors.Is(err, ErrUnknownType) {
		t.Errorf("Expected ErrUnknownType, got %v", err)
	}

	var ute *UnknownTypeError
	if !errors.As(err, &ute) {
		t.Fatalf("Expected *UnknownTypeError, got %T", err)
	}
	if ute.Type != "NOPE" {
		t.Errorf("Expected type NOPE in the error, got %s", ute.Type)
	}
}

func TestDecodeStructure(t *testing.T) {
	raw := []byte(`{"content":"pick one","options":[{"text":"a","is_correct":true},{"text":"b","is_correct":false}]}`)

	s, err := DecodeStructure(models.SingleChoice, raw)
	if err != nil {
		t.Fatalf("DecodeStructure failed: %v", err)
	}

	qcm, ok := s.(*models.SingleChoiceStructure)
	if !ok {
		t.Fatalf("Expected *SingleChoiceStructure, got %T", s)
	}
	if qcm.Content != "pick one" {
		t.Errorf("Expected content 'pick one', got %q", qcm.Content)
	}
	if len(qcm.Options) != 2 || !qcm.Options[0].IsCorrect {
		t.Errorf("Options decoded incorrectly: %+v", qcm.Options)
	}
}

func TestDecodeStructure_Errors(t *testing.T) {
	if _, err := DecodeStructure("NOPE", []byte(`{}`)); !errors.Is(err, ErrUnknownType) {
		t.Errorf("Expected ErrUnknownType, got %v", err)
	}
	if _, err := DecodeStructure(models.TrueFalse, []byte(`not json`)); err == nil {
		t.Error("Expected a decode error for invalid JSON")
	}
}
