package projector

import (
	"math/rand"
	"testing"
	"time"

	"github.com/quizdash/builder-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedProjector(seed int64) *Projector {
	p := NewWithSource(rand.NewSource(seed))
	p.now = func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	return p
}

func boolPtr(v bool) *bool { return &v }

func TestProject_Envelope(t *testing.T) {
	p := fixedProjector(1)
	image := "data:image/png;base64,abc"

	payload, err := p.Project(&models.TrueFalseStructure{
		QuestionBase:  models.QuestionBase{Content: "Go compiles fast", Image: &image},
		CorrectAnswer: boolPtr(true),
	})
	require.NoError(t, err)

	assert.Equal(t, models.TrueFalse, payload.Type)
	assert.Equal(t, "Go compiles fast", payload.Question.Content)
	require.NotNil(t, payload.Question.Image)
	assert.Equal(t, image, *payload.Question.Image)
	assert.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), payload.Timestamp)
}

func TestProject_NilStructure(t *testing.T) {
	p := fixedProjector(1)

	_, err := p.Project(nil)
	assert.Error(t, err)
}

func TestProjectTrueFalse_FixedOptions(t *testing.T) {
	p := fixedProjector(1)

	payload, err := p.Project(&models.TrueFalseStructure{
		QuestionBase:  models.QuestionBase{Content: "vf"},
		CorrectAnswer: boolPtr(false),
	})
	require.NoError(t, err)

	display := payload.Display.(models.TrueFalseDisplay)
	assert.Equal(t, models.DisplayTrueFalse, display.Type)
	require.NotNil(t, display.CorrectAnswer)
	assert.False(t, *display.CorrectAnswer)
	assert.Equal(t, []models.BoolOption{
		{Value: true, Label: "True", Order: 1},
		{Value: false, Label: "False", Order: 2},
	}, display.Options)
}

func TestProjectSingleChoice_IDsFollowPosition(t *testing.T) {
	p := fixedProjector(1)

	payload, err := p.Project(&models.SingleChoiceStructure{
		QuestionBase: models.QuestionBase{Content: "pick"},
		Options: []models.ChoiceOption{
			{Text: "alpha"},
			{Text: "beta", IsCorrect: true},
		},
	})
	require.NoError(t, err)

	display := payload.Display.(models.SingleChoiceDisplay)
	require.Len(t, display.Options, 2)
	assert.Equal(t, models.DisplayOption{ID: 1, Text: "alpha", Order: 1}, display.Options[0])
	assert.Equal(t, models.DisplayOption{ID: 2, Text: "beta", IsCorrect: true, Order: 2}, display.Options[1])
}

func TestProjectMultiChoice_SelectionBounds(t *testing.T) {
	p := fixedProjector(1)

	payload, err := p.Project(&models.MultiChoiceStructure{
		QuestionBase: models.QuestionBase{Content: "pick many"},
		Options: []models.ChoiceOption{
			{Text: "a", IsCorrect: true},
			{Text: "b", IsCorrect: true},
			{Text: "c"},
		},
	})
	require.NoError(t, err)

	display := payload.Display.(models.MultiChoiceDisplay)
	assert.Equal(t, 1, display.MinSelections)
	assert.Equal(t, 2, display.MaxSelections)
}

func TestProjectPairedActivity_PrefixedIDs(t *testing.T) {
	p := fixedProjector(1)

	payload, err := p.Project(&models.PairedActivityStructure{
		QuestionBase: models.QuestionBase{Content: "columns"},
		LeftOptions:  []models.ChoiceOption{{Text: "l", IsCorrect: true}},
		RightOptions: []models.ChoiceOption{{Text: "r"}},
	})
	require.NoError(t, err)

	display := payload.Display.(models.PairedActivityDisplay)
	assert.Equal(t, "L1", display.LeftOptions[0].ID)
	assert.Equal(t, "R1", display.RightOptions[0].ID)
}

func TestProjectPairedAssertions_RelationCatalog(t *testing.T) {
	p := fixedProjector(1)

	payload, err := p.Project(&models.PairedAssertionStructure{
		QuestionBase:  models.QuestionBase{Content: "assertions"},
		AssertionA:    "A",
		AssertionB:    "B",
		CorrectOption: 3,
	})
	require.NoError(t, err)

	display := payload.Display.(models.PairedAssertionDisplay)
	assert.Equal(t, 3, display.CorrectOption)
	require.Len(t, display.RelationOptions, 5)
	assert.Equal(t, "A and B are true and B explains A", display.RelationOptions[0].Label)
	assert.Equal(t, "A and B are false", display.RelationOptions[4].Label)
}

func TestProjectMatching_AssociationsSurviveShuffle(t *testing.T) {
	structure := &models.MatchingStructure{
		QuestionBase: models.QuestionBase{Content: "match"},
		Pairs: []models.MatchPair{
			{Left: "cat", Right: "meow"},
			{Left: "dog", Right: "woof"},
			{Left: "cow", Right: "moo"},
		},
	}

	// Whatever the shuffle does, the authoritative parts never change.
	for seed := int64(1); seed <= 5; seed++ {
		p := fixedProjector(seed)
		payload, err := p.Project(structure)
		require.NoError(t, err)

		display := payload.Display.(models.MatchingDisplay)

		assert.Equal(t, []models.ColumnItem{
			{ID: "L1", Text: "cat"},
			{ID: "L2", Text: "dog"},
			{ID: "L3", Text: "cow"},
		}, display.LeftColumn, "left column keeps authored order")

		assert.Equal(t, map[string]string{
			"L1": "R1",
			"L2": "R2",
			"L3": "R3",
		}, display.CorrectAssociations)

		// Right column is a permutation of the authored entries.
		require.Len(t, display.RightColumn, 3)
		seen := make(map[string]string, 3)
		for _, item := range display.RightColumn {
			seen[item.ID] = item.Text
		}
		assert.Equal(t, map[string]string{
			"R1": "meow",
			"R2": "woof",
			"R3": "moo",
		}, seen)
	}
}

func TestProjectMatching_DoesNotMutateStructure(t *testing.T) {
	structure := &models.MatchingStructure{
		QuestionBase: models.QuestionBase{Content: "match"},
		Pairs: []models.MatchPair{
			{Left: "a", Right: "1"},
			{Left: "b", Right: "2"},
			{Left: "c", Right: "3"},
		},
	}

	p := fixedProjector(42)
	_, err := p.Project(structure)
	require.NoError(t, err)

	assert.Equal(t, []models.MatchPair{
		{Left: "a", Right: "1"},
		{Left: "b", Right: "2"},
		{Left: "c", Right: "3"},
	}, structure.Pairs)
}

func TestProjectOrdering_CorrectOrderIsStable(t *testing.T) {
	structure := &models.OrderingStructure{
		QuestionBase: models.QuestionBase{Content: "order"},
		Items: []models.OrderItem{
			{Text: "boil water", Order: 1},
			{Text: "add pasta", Order: 2},
			{Text: "drain", Order: 3},
		},
	}

	for seed := int64(1); seed <= 5; seed++ {
		p := fixedProjector(seed)
		payload, err := p.Project(structure)
		require.NoError(t, err)

		display := payload.Display.(models.OrderingDisplay)

		assert.Equal(t, []models.SequenceItem{
			{ID: 1, Text: "boil water", Position: 1},
			{ID: 2, Text: "add pasta", Position: 2},
			{ID: 3, Text: "drain", Position: 3},
		}, display.CorrectOrder)

		require.Len(t, display.ShuffledItems, 3)
		ids := make(map[int]string, 3)
		for _, item := range display.ShuffledItems {
			ids[item.ID] = item.Text
		}
		assert.Equal(t, map[int]string{1: "boil water", 2: "add pasta", 3: "drain"}, ids)
	}
}

func TestProjectFillBlank_PlaceholdersMasked(t *testing.T) {
	p := fixedProjector(1)

	payload, err := p.Project(&models.FillBlankStructure{
		QuestionBase:   models.QuestionBase{Content: "complete"},
		TextWithBlanks: "the ${{sky}} is ${{blue}}",
		Blanks: []models.Blank{
			{Position: 1, Answer: "sky", Placeholder: "sky"},
			{Position: 2, Answer: "blue", Placeholder: "blue"},
		},
	})
	require.NoError(t, err)

	display := payload.Display.(models.FillBlankDisplay)
	assert.Equal(t, "the _____ is _____", display.DisplayText)
	require.Len(t, display.Blanks, 2)
	assert.Equal(t, models.BlankDescriptor{Position: 1, Answer: "sky", Placeholder: "sky"}, display.Blanks[0])
}

func TestProjectGrid_BlankHeadersSynthesized(t *testing.T) {
	p := fixedProjector(1)

	payload, err := p.Project(&models.GridStructure{
		QuestionBase:  models.QuestionBase{Content: "grid"},
		Grid:          models.GridSize{Rows: 2, Cols: 2},
		RowHeaders:    []string{"Mammals", "  "},
		ColHeaders:    []string{"", "Flies"},
		Intersections: []models.Intersection{{Row: 1, Col: 1}},
	})
	require.NoError(t, err)

	display := payload.Display.(models.GridDisplay)
	assert.Equal(t, []string{"Mammals", "Row 2"}, display.RowHeaders)
	assert.Equal(t, []string{"Col 1", "Flies"}, display.ColHeaders)

	require.Len(t, display.CorrectIntersections, 1)
	cell := display.CorrectIntersections[0]
	assert.Equal(t, "Row 2", cell.RowLabel)
	assert.Equal(t, "Flies", cell.ColLabel)
}
