package builder

import (
	"testing"

	"github.com/quizdash/builder-service/internal/models"
	"github.com/quizdash/builder-service/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_WizardFlow(t *testing.T) {
	s := NewSession("s1", 42)
	assert.Equal(t, StateSelectType, s.State())
	assert.Nil(t, s.Structure())

	// Cannot move to configuration before a type is chosen.
	assert.ErrorIs(t, s.Advance(), ErrNoTypeSelected)

	require.NoError(t, s.SelectType(models.TrueFalse))
	assert.Equal(t, models.TrueFalse, s.QuestionType())
	require.NotNil(t, s.Structure())

	require.NoError(t, s.Advance())
	assert.Equal(t, StateConfigure, s.State())

	require.NoError(t, s.Apply(Action{Op: OpSetContent, Text: strPtr("Go is compiled")}))
	require.NoError(t, s.Apply(Action{Op: OpSetTrueFalse, Checked: boolPtr(true)}))

	require.NoError(t, s.Advance())
	assert.Equal(t, StateReview, s.State())

	// Edits are rejected outside the configuration step.
	assert.ErrorIs(t, s.Apply(Action{Op: OpSetContent, Text: strPtr("changed")}), ErrInvalidTransition)

	require.NoError(t, s.Back())
	assert.Equal(t, StateConfigure, s.State())
	require.NoError(t, s.Back())
	assert.Equal(t, StateSelectType, s.State())

	// Back in the first step is a no-op, not an error.
	require.NoError(t, s.Back())
	assert.Equal(t, StateSelectType, s.State())
}

func TestSession_SelectTypeRules(t *testing.T) {
	s := NewSession("s1", 42)

	err := s.SelectType("BOGUS")
	assert.ErrorIs(t, err, registry.ErrUnknownType)

	require.NoError(t, s.SelectType(models.Ordering))
	require.NoError(t, s.Advance())

	// No mid-wizard type changes.
	assert.ErrorIs(t, s.SelectType(models.TrueFalse), ErrInvalidTransition)
}

func TestSession_StructureIsACopy(t *testing.T) {
	s := NewSession("s1", 42)
	require.NoError(t, s.SelectType(models.SingleChoice))
	require.NoError(t, s.Advance())
	require.NoError(t, s.Apply(Action{Op: OpAddOption, Text: strPtr("a")}))

	copy1 := s.Structure().(*models.SingleChoiceStructure)
	copy1.Options[0].Text = "tampered"

	copy2 := s.Structure().(*models.SingleChoiceStructure)
	assert.Equal(t, "a", copy2.Options[0].Text)
}

func TestSession_SaveGuard(t *testing.T) {
	s := NewSession("s1", 42)
	require.NoError(t, s.SelectType(models.TrueFalse))
	require.NoError(t, s.Advance())

	// Save is only allowed from review.
	assert.ErrorIs(t, s.BeginSave(), ErrInvalidTransition)

	require.NoError(t, s.Advance())
	require.NoError(t, s.BeginSave())

	// A second click while the first save is running is rejected.
	assert.ErrorIs(t, s.BeginSave(), ErrSaveInProgress)

	// A failed save keeps the session in review for a retry.
	s.FinishSave(false)
	assert.Equal(t, StateReview, s.State())
	require.NoError(t, s.BeginSave())

	s.FinishSave(true)
	assert.Equal(t, StateCompleted, s.State())

	// A successful save discards the working structure.
	assert.Nil(t, s.Structure())

	// A completed session can never be saved again.
	assert.ErrorIs(t, s.BeginSave(), ErrSessionCompleted)
	assert.ErrorIs(t, s.Advance(), ErrInvalidTransition)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	assert.Equal(t, 0, store.Len())

	s := NewSession("s1", 1)
	store.Put(s)
	assert.Equal(t, 1, store.Len())

	got, ok := store.Get("s1")
	require.True(t, ok)
	assert.Same(t, s, got)

	_, ok = store.Get("missing")
	assert.False(t, ok)

	store.Delete("s1")
	assert.Equal(t, 0, store.Len())
}
