// Package projector transforms in-progress question structures into the
// display payloads consumed by the quiz-taking client.
package projector

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/quizdash/builder-service/internal/models"
	"github.com/quizdash/builder-service/internal/registry"
)

// BlankMarker replaces every ${{...}} placeholder in the learner-facing
// text of a fill-in-blank question.
const BlankMarker = "_____"

// relationCatalog is the fixed 5-way catalog for paired assertions:
// the possible logical relations between assertion A and assertion B.
var relationCatalog = []models.RelationOption{
	{Value: 1, Label: "A and B are true and B explains A"},
	{Value: 2, Label: "A and B are true but B does not explain A"},
	{Value: 3, Label: "A is true and B is false"},
	{Value: 4, Label: "A is false and B is true"},
	{Value: 5, Label: "A and B are false"},
}

// trueFalseOptions is the fixed option list of every true/false
// question, independent of the authored data.
var trueFalseOptions = []models.BoolOption{
	{Value: true, Label: "True", Order: 1},
	{Value: false, Label: "False", Order: 2},
}

// Projector builds display payloads. It tolerates partial structures so
// the wizard can render a live preview while the author is still
// editing; validation is the caller's responsibility. The only
// non-determinism is the RNG behind the QAA/ORD presentation shuffles,
// which never feeds back into the authoritative correctness fields.
type Projector struct {
	rng *rand.Rand
	now func() time.Time
}

// New creates a projector with a time-seeded RNG.
func New() *Projector {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource creates a projector with a caller-controlled random
// source, used by tests that need reproducible shuffles.
func NewWithSource(src rand.Source) *Projector {
	return &Projector{
		rng: rand.New(src),
		now: time.Now,
	}
}

var projections = map[models.QuestionType]func(*Projector, models.Structure) any{
	models.TrueFalse:        (*Projector).projectTrueFalse,
	models.SingleChoice:     (*Projector).projectSingleChoice,
	models.MultiChoice:      (*Projector).projectMultiChoice,
	models.PairedActivity:   (*Projector).projectPairedActivity,
	models.PairedAssertions: (*Projector).projectPairedAssertions,
	models.Matching:         (*Projector).projectMatching,
	models.Ordering:         (*Projector).projectOrdering,
	models.FillInBlank:      (*Projector).projectFillBlank,
	models.GridIntersection: (*Projector).projectGrid,
}

// Project converts a structure into its client-facing display payload.
func (p *Projector) Project(s models.Structure) (*models.DisplayPayload, error) {
	if s == nil {
		return nil, fmt.Errorf("cannot project a nil structure")
	}

	project, ok := projections[s.Type()]
	if !ok {
		return nil, &registry.UnknownTypeError{Type: s.Type()}
	}

	base := s.Common()
	return &models.DisplayPayload{
		Type: s.Type(),
		Question: models.QuestionInfo{
			Content: base.Content,
			Image:   base.Image,
		},
		Timestamp: p.now().UTC(),
		Display:   project(p, s),
	}, nil
}

func (p *Projector) projectTrueFalse(s models.Structure) any {
	vf := s.(*models.TrueFalseStructure)

	options := make([]models.BoolOption, len(trueFalseOptions))
	copy(options, trueFalseOptions)

	var answer *bool
	if vf.CorrectAnswer != nil {
		v := *vf.CorrectAnswer
		answer = &v
	}
	return models.TrueFalseDisplay{
		Type:          models.DisplayTrueFalse,
		CorrectAnswer: answer,
		Options:       options,
	}
}

func projectOptions(options []models.ChoiceOption) []models.DisplayOption {
	out := make([]models.DisplayOption, 0, len(options))
	for i, opt := range options {
		out = append(out, models.DisplayOption{
			ID:        i + 1,
			Text:      opt.Text,
			IsCorrect: opt.IsCorrect,
			Order:     i + 1,
		})
	}
	return out
}

func (p *Projector) projectSingleChoice(s models.Structure) any {
	qcm := s.(*models.SingleChoiceStructure)
	return models.SingleChoiceDisplay{
		Type:    models.DisplaySingleChoice,
		Options: projectOptions(qcm.Options),
	}
}

func (p *Projector) projectMultiChoice(s models.Structure) any {
	qrm := s.(*models.MultiChoiceStructure)

	correct := 0
	for _, opt := range qrm.Options {
		if opt.IsCorrect {
			correct++
		}
	}
	if correct < 1 {
		correct = 1
	}
	return models.MultiChoiceDisplay{
		Type:          models.DisplayMultiChoice,
		Options:       projectOptions(qrm.Options),
		MinSelections: 1,
		MaxSelections: correct,
	}
}

func projectPrefixedOptions(prefix string, options []models.ChoiceOption) []models.PrefixedOption {
	out := make([]models.PrefixedOption, 0, len(options))
	for i, opt := range options {
		out = append(out, models.PrefixedOption{
			ID:        fmt.Sprintf("%s%d", prefix, i+1),
			Text:      opt.Text,
			IsCorrect: opt.IsCorrect,
			Order:     i + 1,
		})
	}
	return out
}

func (p *Projector) projectPairedActivity(s models.Structure) any {
	pa := s.(*models.PairedActivityStructure)
	return models.PairedActivityDisplay{
		Type:         models.DisplayPairedActivity,
		LeftOptions:  projectPrefixedOptions("L", pa.LeftOptions),
		RightOptions: projectPrefixedOptions("R", pa.RightOptions),
	}
}

func (p *Projector) projectPairedAssertions(s models.Structure) any {
	pas := s.(*models.PairedAssertionStructure)

	catalog := make([]models.RelationOption, len(relationCatalog))
	copy(catalog, relationCatalog)

	return models.PairedAssertionDisplay{
		Type:            models.DisplayPairedAssertions,
		AssertionA:      pas.AssertionA,
		AssertionB:      pas.AssertionB,
		CorrectOption:   pas.CorrectOption,
		RelationOptions: catalog,
	}
}

func (p *Projector) projectMatching(s models.Structure) any {
	qaa := s.(*models.MatchingStructure)

	left := make([]models.ColumnItem, 0, len(qaa.Pairs))
	right := make([]models.ColumnItem, 0, len(qaa.Pairs))
	associations := make(map[string]string, len(qaa.Pairs))

	for i, pair := range qaa.Pairs {
		leftID := fmt.Sprintf("L%d", i+1)
		rightID := fmt.Sprintf("R%d", i+1)
		left = append(left, models.ColumnItem{ID: leftID, Text: pair.Left})
		right = append(right, models.ColumnItem{ID: rightID, Text: pair.Right})
		associations[leftID] = rightID
	}

	// Shuffle a copy of the right column so presentation order cannot
	// reveal the matching; associations stay authoritative.
	p.rng.Shuffle(len(right), func(i, j int) {
		right[i], right[j] = right[j], right[i]
	})

	return models.MatchingDisplay{
		Type:                models.DisplayMatching,
		LeftColumn:          left,
		RightColumn:         right,
		CorrectAssociations: associations,
	}
}

func (p *Projector) projectOrdering(s models.Structure) any {
	ord := s.(*models.OrderingStructure)

	correct := make([]models.SequenceItem, 0, len(ord.Items))
	shuffled := make([]models.ShuffledItem, 0, len(ord.Items))
	for i, item := range ord.Items {
		correct = append(correct, models.SequenceItem{
			ID:       i + 1,
			Text:     item.Text,
			Position: i + 1,
		})
		shuffled = append(shuffled, models.ShuffledItem{
			ID:   i + 1,
			Text: item.Text,
		})
	}

	p.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	return models.OrderingDisplay{
		Type:          models.DisplayOrdering,
		CorrectOrder:  correct,
		ShuffledItems: shuffled,
	}
}

func (p *Projector) projectFillBlank(s models.Structure) any {
	lac := s.(*models.FillBlankStructure)

	blanks := make([]models.BlankDescriptor, 0, len(lac.Blanks))
	for _, blank := range lac.Blanks {
		blanks = append(blanks, models.BlankDescriptor{
			Position:    blank.Position,
			Answer:      blank.Answer,
			Placeholder: blank.Placeholder,
		})
	}

	return models.FillBlankDisplay{
		Type:        models.DisplayFillInBlank,
		DisplayText: models.ReplacePlaceholders(lac.TextWithBlanks, BlankMarker),
		Blanks:      blanks,
	}
}

func (p *Projector) projectGrid(s models.Structure) any {
	grid := s.(*models.GridStructure)

	rows := projectHeaders("Row", grid.Grid.Rows, grid.RowHeaders)
	cols := projectHeaders("Col", grid.Grid.Cols, grid.ColHeaders)

	intersections := make([]models.IntersectionDisplay, 0, len(grid.Intersections))
	for _, cell := range grid.Intersections {
		intersections = append(intersections, models.IntersectionDisplay{
			Row:      cell.Row,
			Col:      cell.Col,
			RowLabel: headerLabel("Row", rows, cell.Row),
			ColLabel: headerLabel("Col", cols, cell.Col),
		})
	}

	return models.GridDisplay{
		Type:                 models.DisplayGrid,
		RowHeaders:           rows,
		ColHeaders:           cols,
		CorrectIntersections: intersections,
	}
}

// projectHeaders resolves the header labels of one axis, synthesizing
// "Row N" / "Col N" for blank or missing entries.
func projectHeaders(axis string, size int, headers []string) []string {
	if size < len(headers) {
		size = len(headers)
	}
	out := make([]string, 0, size)
	for i := 0; i < size; i++ {
		label := ""
		if i < len(headers) {
			label = headers[i]
		}
		if strings.TrimSpace(label) == "" {
			label = fmt.Sprintf("%s %d", axis, i+1)
		}
		out = append(out, label)
	}
	return out
}

func headerLabel(axis string, labels []string, index int) string {
	if index >= 0 && index < len(labels) {
		return labels[index]
	}
	return fmt.Sprintf("%s %d", axis, index+1)
}
