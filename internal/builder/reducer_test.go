package builder

import (
	"testing"

	"github.com/quizdash/builder-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func boolPtr(v bool) *bool { return &v }

func TestApply_NeverMutatesInput(t *testing.T) {
	original := &models.SingleChoiceStructure{
		QuestionBase: models.QuestionBase{Content: "before"},
		Options:      []models.ChoiceOption{{Text: "a"}},
	}

	next, err := Apply(original, Action{Op: OpSetContent, Text: strPtr("after")})
	require.NoError(t, err)

	assert.Equal(t, "before", original.Content)
	assert.Equal(t, "after", next.Common().Content)

	next2, err := Apply(next, Action{Op: OpAddOption, Text: strPtr("b")})
	require.NoError(t, err)

	assert.Len(t, next.(*models.SingleChoiceStructure).Options, 1)
	assert.Len(t, next2.(*models.SingleChoiceStructure).Options, 2)
}

func TestApply_SharedOps(t *testing.T) {
	s := &models.TrueFalseStructure{}

	next, err := Apply(s, Action{Op: OpSetImage, Image: strPtr("data:image/png;base64,xyz")})
	require.NoError(t, err)
	require.NotNil(t, next.Common().Image)

	// Clearing the image is an explicit nil, not a missing field.
	next, err = Apply(next, Action{Op: OpSetImage})
	require.NoError(t, err)
	assert.Nil(t, next.Common().Image)
}

func TestApply_TrueFalse(t *testing.T) {
	s := &models.TrueFalseStructure{}

	next, err := Apply(s, Action{Op: OpSetTrueFalse, Checked: boolPtr(true)})
	require.NoError(t, err)
	require.NotNil(t, next.(*models.TrueFalseStructure).CorrectAnswer)
	assert.True(t, *next.(*models.TrueFalseStructure).CorrectAnswer)

	_, err = Apply(s, Action{Op: OpSetTrueFalse})
	assert.ErrorIs(t, err, ErrInvalidAction)

	_, err = Apply(s, Action{Op: OpAddOption, Text: strPtr("nope")})
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestApply_ChoiceList(t *testing.T) {
	var s models.Structure = &models.MultiChoiceStructure{}

	var err error
	s, err = Apply(s, Action{Op: OpAddOption, Text: strPtr("a")})
	require.NoError(t, err)
	s, err = Apply(s, Action{Op: OpAddOption, Text: strPtr("b"), Checked: boolPtr(true)})
	require.NoError(t, err)

	s, err = Apply(s, Action{Op: OpUpdateOption, Index: 0, Checked: boolPtr(true)})
	require.NoError(t, err)

	opts := s.(*models.MultiChoiceStructure).Options
	require.Len(t, opts, 2)
	assert.Equal(t, models.ChoiceOption{Text: "a", IsCorrect: true}, opts[0])

	// Update with only Checked set leaves the text alone.
	assert.Equal(t, "b", opts[1].Text)

	_, err = Apply(s, Action{Op: OpRemoveOption, Index: 5})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	s, err = Apply(s, Action{Op: OpRemoveOption, Index: 0})
	require.NoError(t, err)
	assert.Len(t, s.(*models.MultiChoiceStructure).Options, 1)
}

func TestApply_PairedActivitySides(t *testing.T) {
	var s models.Structure = &models.PairedActivityStructure{}

	var err error
	s, err = Apply(s, Action{Op: OpAddOption, Side: SideLeft, Text: strPtr("l1")})
	require.NoError(t, err)
	s, err = Apply(s, Action{Op: OpAddOption, Side: SideRight, Text: strPtr("r1"), Checked: boolPtr(true)})
	require.NoError(t, err)

	pa := s.(*models.PairedActivityStructure)
	require.Len(t, pa.LeftOptions, 1)
	require.Len(t, pa.RightOptions, 1)
	assert.True(t, pa.RightOptions[0].IsCorrect)

	_, err = Apply(s, Action{Op: OpAddOption, Text: strPtr("no side")})
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestApply_PairedAssertions(t *testing.T) {
	var s models.Structure = &models.PairedAssertionStructure{}

	var err error
	s, err = Apply(s, Action{Op: OpSetAssertionA, Text: strPtr("A is true")})
	require.NoError(t, err)
	s, err = Apply(s, Action{Op: OpSetRelation, Value: 2})
	require.NoError(t, err)

	pas := s.(*models.PairedAssertionStructure)
	assert.Equal(t, "A is true", pas.AssertionA)
	assert.Equal(t, 2, pas.CorrectOption)

	_, err = Apply(s, Action{Op: OpSetRelation, Value: 6})
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestApply_OrderingRenumbers(t *testing.T) {
	var s models.Structure = &models.OrderingStructure{}

	var err error
	for _, text := range []string{"first", "second", "third"} {
		s, err = Apply(s, Action{Op: OpAddItem, Text: strPtr(text)})
		require.NoError(t, err)
	}

	items := s.(*models.OrderingStructure).Items
	assert.Equal(t, []models.OrderItem{
		{Text: "first", Order: 1},
		{Text: "second", Order: 2},
		{Text: "third", Order: 3},
	}, items)

	s, err = Apply(s, Action{Op: OpMoveItem, From: 0, To: 2})
	require.NoError(t, err)

	items = s.(*models.OrderingStructure).Items
	assert.Equal(t, []models.OrderItem{
		{Text: "second", Order: 1},
		{Text: "third", Order: 2},
		{Text: "first", Order: 3},
	}, items)

	// Moving back restores the original sequence.
	s, err = Apply(s, Action{Op: OpMoveItem, From: 2, To: 0})
	require.NoError(t, err)
	assert.Equal(t, []models.OrderItem{
		{Text: "first", Order: 1},
		{Text: "second", Order: 2},
		{Text: "third", Order: 3},
	}, s.(*models.OrderingStructure).Items)

	s, err = Apply(s, Action{Op: OpRemoveItem, Index: 0})
	require.NoError(t, err)
	assert.Equal(t, []models.OrderItem{
		{Text: "second", Order: 1},
		{Text: "third", Order: 2},
	}, s.(*models.OrderingStructure).Items)
}

func TestApply_FillBlankKeepsAnswersAcrossTextEdits(t *testing.T) {
	var s models.Structure = &models.FillBlankStructure{}

	var err error
	s, err = Apply(s, Action{Op: OpSetBlankText, Text: strPtr("the ${{sky}} is ${{blue}}")})
	require.NoError(t, err)

	lac := s.(*models.FillBlankStructure)
	require.Len(t, lac.Blanks, 2)
	assert.Equal(t, models.Blank{Position: 1, Answer: "sky", Placeholder: "sky"}, lac.Blanks[0])

	s, err = Apply(s, Action{Op: OpSetBlankAnswer, Index: 1, Text: strPtr("azure")})
	require.NoError(t, err)

	// Editing the surrounding text keeps the confirmed answer for a
	// surviving placeholder and drops blanks whose placeholder is gone.
	s, err = Apply(s, Action{Op: OpSetBlankText, Text: strPtr("today the ${{blue}} sky")})
	require.NoError(t, err)

	lac = s.(*models.FillBlankStructure)
	require.Len(t, lac.Blanks, 1)
	assert.Equal(t, models.Blank{Position: 1, Answer: "azure", Placeholder: "blue"}, lac.Blanks[0])

	// Removing every placeholder clears the blank list.
	s, err = Apply(s, Action{Op: OpSetBlankText, Text: strPtr("no placeholders left")})
	require.NoError(t, err)
	assert.Empty(t, s.(*models.FillBlankStructure).Blanks)
}

func TestApply_Grid(t *testing.T) {
	var s models.Structure = &models.GridStructure{}

	var err error
	s, err = Apply(s, Action{Op: OpSetGridSize, Rows: 3, Cols: 2})
	require.NoError(t, err)

	grid := s.(*models.GridStructure)
	assert.Len(t, grid.RowHeaders, 3)
	assert.Len(t, grid.ColHeaders, 2)

	s, err = Apply(s, Action{Op: OpSetRowHeader, Index: 0, Text: strPtr("Mammals")})
	require.NoError(t, err)
	s, err = Apply(s, Action{Op: OpToggleIntersection, Row: 2, Col: 1})
	require.NoError(t, err)
	s, err = Apply(s, Action{Op: OpToggleIntersection, Row: 0, Col: 0})
	require.NoError(t, err)

	grid = s.(*models.GridStructure)
	assert.Len(t, grid.Intersections, 2)

	// Toggling a selected cell deselects it.
	s, err = Apply(s, Action{Op: OpToggleIntersection, Row: 0, Col: 0})
	require.NoError(t, err)
	grid = s.(*models.GridStructure)
	assert.Equal(t, []models.Intersection{{Row: 2, Col: 1}}, grid.Intersections)

	// Shrinking the grid clips selections that fell outside.
	s, err = Apply(s, Action{Op: OpSetGridSize, Rows: 2, Cols: 2})
	require.NoError(t, err)
	grid = s.(*models.GridStructure)
	assert.Empty(t, grid.Intersections)
	assert.Equal(t, []string{"Mammals", ""}, grid.RowHeaders)

	_, err = Apply(s, Action{Op: OpToggleIntersection, Row: 5, Col: 0})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = Apply(s, Action{Op: OpSetGridSize, Rows: 0, Cols: 2})
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestApply_NilStructure(t *testing.T) {
	_, err := Apply(nil, Action{Op: OpSetContent, Text: strPtr("x")})
	assert.ErrorIs(t, err, ErrInvalidAction)
}
