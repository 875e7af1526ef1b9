package validator

import (
	"fmt"
	"strings"

	"github.com/quizdash/builder-service/internal/models"
)

// StructureValidator checks an in-progress question structure against
// the rules of its variant. Validation is pure: no I/O, no mutation of
// the structure, and every violation is accumulated so the author sees
// all problems at once instead of fixing them one by one.
type StructureValidator struct{}

// NewStructureValidator creates a new structure validator
func NewStructureValidator() *StructureValidator {
	return &StructureValidator{}
}

// structureRules maps each variant to its rule function. A missing
// slice behaves like an empty one; rule functions never panic on
// partially filled structures.
var structureRules = map[models.QuestionType]func(models.Structure) ValidationErrors{
	models.TrueFalse:        validateTrueFalse,
	models.SingleChoice:     validateSingleChoice,
	models.MultiChoice:      validateMultiChoice,
	models.PairedActivity:   validatePairedActivity,
	models.PairedAssertions: validatePairedAssertions,
	models.Matching:         validateMatching,
	models.Ordering:         validateOrdering,
	models.FillInBlank:      validateFillBlank,
	models.GridIntersection: validateGrid,
}

// Validate returns the ordered list of rule violations for the given
// variant; an empty list means the structure is save-ready. An unknown
// type id yields a single error rather than a crash.
func (v *StructureValidator) Validate(typeID models.QuestionType, s models.Structure) ValidationErrors {
	rule, ok := structureRules[typeID]
	if !ok {
		return ValidationErrors{*NewValidationError("type", "unrecognized question type", typeID)}
	}

	var errors ValidationErrors
	if s == nil || strings.TrimSpace(s.Common().Content) == "" {
		errors = append(errors, *NewValidationError("content", "question content is required", nil))
	}
	if s == nil {
		return errors
	}
	if s.Type() != typeID {
		errors = append(errors, *NewValidationError("type", "structure does not match the selected question type", s.Type()))
		return errors
	}

	return append(errors, rule(s)...)
}

func validateTrueFalse(s models.Structure) ValidationErrors {
	vf := s.(*models.TrueFalseStructure)

	var errors ValidationErrors
	if vf.CorrectAnswer == nil {
		errors = append(errors, *NewValidationError("correct_answer", "select whether true or false", nil))
	}
	return errors
}

// validateChoiceList covers the shared QCM_S / QRM shape. The single
// choice variant deliberately reuses the "at least one correct" rule:
// the radio-group UI keeps it to exactly one, but the validator stays
// permissive about multiple correct options.
func validateChoiceList(field, label string, options []models.ChoiceOption) ValidationErrors {
	var errors ValidationErrors
	if len(options) < 2 {
		errors = append(errors, *NewValidationError(field, fmt.Sprintf("at least 2 %s are required", label), len(options)))
	}

	correct := 0
	for _, opt := range options {
		if opt.IsCorrect {
			correct++
		}
	}
	if correct == 0 {
		errors = append(errors, *NewValidationError(field, fmt.Sprintf("at least one %s must be marked correct", strings.TrimSuffix(label, "s")), nil))
	}
	return errors
}

func validateSingleChoice(s models.Structure) ValidationErrors {
	qcm := s.(*models.SingleChoiceStructure)
	return validateChoiceList("options", "options", qcm.Options)
}

func validateMultiChoice(s models.Structure) ValidationErrors {
	qrm := s.(*models.MultiChoiceStructure)
	return validateChoiceList("options", "options", qrm.Options)
}

func validatePairedActivity(s models.Structure) ValidationErrors {
	pa := s.(*models.PairedActivityStructure)

	errors := validateChoiceList("left_options", "left options", pa.LeftOptions)
	return append(errors, validateChoiceList("right_options", "right options", pa.RightOptions)...)
}

func validatePairedAssertions(s models.Structure) ValidationErrors {
	pas := s.(*models.PairedAssertionStructure)

	var errors ValidationErrors
	if strings.TrimSpace(pas.AssertionA) == "" {
		errors = append(errors, *NewValidationError("assertion_a", "assertion A is required", nil))
	}
	if strings.TrimSpace(pas.AssertionB) == "" {
		errors = append(errors, *NewValidationError("assertion_b", "assertion B is required", nil))
	}
	if pas.CorrectOption == 0 {
		errors = append(errors, *NewValidationError("correct_option", "select the relation between assertions A and B", nil))
	} else if pas.CorrectOption < 1 || pas.CorrectOption > 5 {
		errors = append(errors, *NewValidationError("correct_option", "relation option must be between 1 and 5", pas.CorrectOption))
	}
	return errors
}

func validateMatching(s models.Structure) ValidationErrors {
	qaa := s.(*models.MatchingStructure)

	var errors ValidationErrors
	if len(qaa.Pairs) < 2 {
		errors = append(errors, *NewValidationError("pairs", "at least 2 pairs are required", len(qaa.Pairs)))
	}
	for i, pair := range qaa.Pairs {
		if strings.TrimSpace(pair.Left) == "" || strings.TrimSpace(pair.Right) == "" {
			errors = append(errors, *NewValidationError(
				fmt.Sprintf("pairs[%d]", i),
				fmt.Sprintf("pair %d must have both sides filled in", i+1),
				nil,
			))
		}
	}
	return errors
}

func validateOrdering(s models.Structure) ValidationErrors {
	ord := s.(*models.OrderingStructure)

	var errors ValidationErrors
	if len(ord.Items) < 2 {
		errors = append(errors, *NewValidationError("items", "at least 2 items are required", len(ord.Items)))
	}
	for i, item := range ord.Items {
		if strings.TrimSpace(item.Text) == "" {
			errors = append(errors, *NewValidationError(
				fmt.Sprintf("items[%d]", i),
				fmt.Sprintf("item %d text cannot be empty", i+1),
				nil,
			))
		}
		if item.Order != i+1 {
			errors = append(errors, *NewValidationError(
				fmt.Sprintf("items[%d].order", i),
				fmt.Sprintf("item %d has an inconsistent order", i+1),
				item.Order,
			))
		}
	}
	return errors
}

func validateFillBlank(s models.Structure) ValidationErrors {
	lac := s.(*models.FillBlankStructure)

	var errors ValidationErrors
	if strings.TrimSpace(lac.TextWithBlanks) == "" {
		errors = append(errors, *NewValidationError("text_with_blanks", "text with blanks is required", nil))
		return errors
	}

	tokens := models.ScanPlaceholders(lac.TextWithBlanks)
	if len(tokens) == 0 {
		errors = append(errors, *NewValidationError("text_with_blanks", "at least one ${{...}} placeholder is required", nil))
		return errors
	}

	if !blanksMatchPlaceholders(lac.Blanks, tokens) {
		errors = append(errors, *NewValidationError("blanks", "blanks are out of sync with the placeholders in the text", nil))
	}
	for i, blank := range lac.Blanks {
		if strings.TrimSpace(blank.Answer) == "" {
			errors = append(errors, *NewValidationError(
				fmt.Sprintf("blanks[%d]", i),
				fmt.Sprintf("blank %d needs an accepted answer", i+1),
				nil,
			))
		}
	}
	return errors
}

// blanksMatchPlaceholders checks count and left-to-right order of the
// blank list against the placeholders actually present in the text.
func blanksMatchPlaceholders(blanks []models.Blank, tokens []string) bool {
	if len(blanks) != len(tokens) {
		return false
	}
	for i, blank := range blanks {
		if blank.Placeholder != tokens[i] || blank.Position != i+1 {
			return false
		}
	}
	return true
}

func validateGrid(s models.Structure) ValidationErrors {
	grid := s.(*models.GridStructure)

	var errors ValidationErrors
	if countNonBlank(grid.RowHeaders) < 2 {
		errors = append(errors, *NewValidationError("row_headers", "at least 2 row headers are required for the grid", nil))
	}
	if countNonBlank(grid.ColHeaders) < 2 {
		errors = append(errors, *NewValidationError("col_headers", "at least 2 column headers are required for the grid", nil))
	}
	if len(grid.Intersections) == 0 {
		errors = append(errors, *NewValidationError("intersections", "at least one intersection must be selected", nil))
	}

	// The editor should make out-of-range selections unreachable, but the
	// bounds are a data invariant, not a UI guarantee.
	for i, cell := range grid.Intersections {
		if cell.Row < 0 || cell.Row >= grid.Grid.Rows || cell.Col < 0 || cell.Col >= grid.Grid.Cols {
			errors = append(errors, *NewValidationError(
				fmt.Sprintf("intersections[%d]", i),
				fmt.Sprintf("intersection %d is outside the grid", i+1),
				cell,
			))
		}
	}
	return errors
}

func countNonBlank(headers []string) int {
	count := 0
	for _, h := range headers {
		if strings.TrimSpace(h) != "" {
			count++
		}
	}
	return count
}
