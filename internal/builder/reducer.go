package builder

import (
	"errors"
	"fmt"

	"github.com/quizdash/builder-service/internal/models"
)

var (
	// ErrInvalidAction reports an operation that the current structure
	// variant does not support.
	ErrInvalidAction = errors.New("invalid builder action")

	// ErrIndexOutOfRange reports an element index outside the target
	// slice.
	ErrIndexOutOfRange = errors.New("index out of range")
)

func invalidActionf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidAction, fmt.Sprintf(format, args...))
}

func indexError(field string, index int) error {
	return fmt.Errorf("%w: %s[%d]", ErrIndexOutOfRange, field, index)
}

// Apply is the reducer behind every structure edit: it clones the
// current structure, applies one action to the clone and returns it.
// The input structure is never mutated, so no two points in time of a
// session (and no two sessions) share state.
func Apply(s models.Structure, a Action) (models.Structure, error) {
	if s == nil {
		return nil, invalidActionf("no structure to edit")
	}

	next := s.Clone()

	switch a.Op {
	case OpSetContent:
		next.Common().Content = a.text()
		return next, nil
	case OpSetImage:
		next.Common().Image = a.Image
		return next, nil
	}

	var err error
	switch target := next.(type) {
	case *models.TrueFalseStructure:
		err = applyTrueFalse(target, a)
	case *models.SingleChoiceStructure:
		target.Options, err = applyChoiceList(target.Options, a, "options")
	case *models.MultiChoiceStructure:
		target.Options, err = applyChoiceList(target.Options, a, "options")
	case *models.PairedActivityStructure:
		err = applyPairedActivity(target, a)
	case *models.PairedAssertionStructure:
		err = applyPairedAssertions(target, a)
	case *models.MatchingStructure:
		err = applyMatching(target, a)
	case *models.OrderingStructure:
		err = applyOrdering(target, a)
	case *models.FillBlankStructure:
		err = applyFillBlank(target, a)
	case *models.GridStructure:
		err = applyGrid(target, a)
	default:
		err = invalidActionf("unsupported structure %T", next)
	}
	if err != nil {
		return nil, err
	}
	return next, nil
}

func applyTrueFalse(s *models.TrueFalseStructure, a Action) error {
	if a.Op != OpSetTrueFalse {
		return invalidActionf("%s not supported for %s", a.Op, s.Type())
	}
	if a.Checked == nil {
		return invalidActionf("%s requires a checked value", a.Op)
	}
	v := *a.Checked
	s.CorrectAnswer = &v
	return nil
}

func applyChoiceList(options []models.ChoiceOption, a Action, field string) ([]models.ChoiceOption, error) {
	switch a.Op {
	case OpAddOption:
		return append(options, models.ChoiceOption{Text: a.text(), IsCorrect: a.checked()}), nil
	case OpUpdateOption:
		if a.Index < 0 || a.Index >= len(options) {
			return nil, indexError(field, a.Index)
		}
		if a.Text != nil {
			options[a.Index].Text = *a.Text
		}
		if a.Checked != nil {
			options[a.Index].IsCorrect = *a.Checked
		}
		return options, nil
	case OpRemoveOption:
		if a.Index < 0 || a.Index >= len(options) {
			return nil, indexError(field, a.Index)
		}
		return append(options[:a.Index], options[a.Index+1:]...), nil
	default:
		return nil, invalidActionf("%s not supported for a choice list", a.Op)
	}
}

func applyPairedActivity(s *models.PairedActivityStructure, a Action) error {
	switch a.Op {
	case OpAddOption, OpUpdateOption, OpRemoveOption:
	default:
		return invalidActionf("%s not supported for %s", a.Op, s.Type())
	}

	var err error
	switch a.Side {
	case SideLeft:
		s.LeftOptions, err = applyChoiceList(s.LeftOptions, a, "left_options")
	case SideRight:
		s.RightOptions, err = applyChoiceList(s.RightOptions, a, "right_options")
	default:
		err = invalidActionf("%s requires side left or right for %s", a.Op, s.Type())
	}
	return err
}

func applyPairedAssertions(s *models.PairedAssertionStructure, a Action) error {
	switch a.Op {
	case OpSetAssertionA:
		s.AssertionA = a.text()
	case OpSetAssertionB:
		s.AssertionB = a.text()
	case OpSetRelation:
		if a.Value < 1 || a.Value > 5 {
			return invalidActionf("relation option %d is outside 1..5", a.Value)
		}
		s.CorrectOption = a.Value
	default:
		return invalidActionf("%s not supported for %s", a.Op, s.Type())
	}
	return nil
}

func applyMatching(s *models.MatchingStructure, a Action) error {
	str := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}

	switch a.Op {
	case OpAddPair:
		s.Pairs = append(s.Pairs, models.MatchPair{Left: str(a.Left), Right: str(a.Right)})
	case OpUpdatePair:
		if a.Index < 0 || a.Index >= len(s.Pairs) {
			return indexError("pairs", a.Index)
		}
		if a.Left != nil {
			s.Pairs[a.Index].Left = *a.Left
		}
		if a.Right != nil {
			s.Pairs[a.Index].Right = *a.Right
		}
	case OpRemovePair:
		if a.Index < 0 || a.Index >= len(s.Pairs) {
			return indexError("pairs", a.Index)
		}
		s.Pairs = append(s.Pairs[:a.Index], s.Pairs[a.Index+1:]...)
	default:
		return invalidActionf("%s not supported for %s", a.Op, s.Type())
	}
	return nil
}

func applyOrdering(s *models.OrderingStructure, a Action) error {
	switch a.Op {
	case OpAddItem:
		s.Items = append(s.Items, models.OrderItem{Text: a.text()})
	case OpUpdateItem:
		if a.Index < 0 || a.Index >= len(s.Items) {
			return indexError("items", a.Index)
		}
		if a.Text != nil {
			s.Items[a.Index].Text = *a.Text
		}
	case OpRemoveItem:
		if a.Index < 0 || a.Index >= len(s.Items) {
			return indexError("items", a.Index)
		}
		s.Items = append(s.Items[:a.Index], s.Items[a.Index+1:]...)
	case OpMoveItem:
		if a.From < 0 || a.From >= len(s.Items) {
			return indexError("items", a.From)
		}
		if a.To < 0 || a.To >= len(s.Items) {
			return indexError("items", a.To)
		}
		if a.From != a.To {
			item := s.Items[a.From]
			s.Items = append(s.Items[:a.From], s.Items[a.From+1:]...)
			s.Items = append(s.Items[:a.To], append([]models.OrderItem{item}, s.Items[a.To:]...)...)
		}
	default:
		return invalidActionf("%s not supported for %s", a.Op, s.Type())
	}

	// Order always mirrors the 1-based slice position, whatever the edit.
	for i := range s.Items {
		s.Items[i].Order = i + 1
	}
	return nil
}

func applyFillBlank(s *models.FillBlankStructure, a Action) error {
	switch a.Op {
	case OpSetBlankText:
		s.TextWithBlanks = a.text()
		s.Blanks = models.SyncBlanks(s.TextWithBlanks, s.Blanks)
	case OpSetBlankAnswer:
		if a.Index < 0 || a.Index >= len(s.Blanks) {
			return indexError("blanks", a.Index)
		}
		s.Blanks[a.Index].Answer = a.text()
	default:
		return invalidActionf("%s not supported for %s", a.Op, s.Type())
	}
	return nil
}

func applyGrid(s *models.GridStructure, a Action) error {
	switch a.Op {
	case OpSetGridSize:
		if a.Rows < 1 || a.Cols < 1 {
			return invalidActionf("grid must have at least one row and one column")
		}
		s.Grid = models.GridSize{Rows: a.Rows, Cols: a.Cols}
		s.RowHeaders = resizeHeaders(s.RowHeaders, a.Rows)
		s.ColHeaders = resizeHeaders(s.ColHeaders, a.Cols)
		s.Intersections = clipIntersections(s.Intersections, s.Grid)
	case OpSetRowHeader:
		if a.Index < 0 || a.Index >= len(s.RowHeaders) {
			return indexError("row_headers", a.Index)
		}
		s.RowHeaders[a.Index] = a.text()
	case OpSetColHeader:
		if a.Index < 0 || a.Index >= len(s.ColHeaders) {
			return indexError("col_headers", a.Index)
		}
		s.ColHeaders[a.Index] = a.text()
	case OpToggleIntersection:
		if a.Row < 0 || a.Row >= s.Grid.Rows {
			return indexError("rows", a.Row)
		}
		if a.Col < 0 || a.Col >= s.Grid.Cols {
			return indexError("cols", a.Col)
		}
		for i, cell := range s.Intersections {
			if cell.Row == a.Row && cell.Col == a.Col {
				s.Intersections = append(s.Intersections[:i], s.Intersections[i+1:]...)
				return nil
			}
		}
		s.Intersections = append(s.Intersections, models.Intersection{Row: a.Row, Col: a.Col})
	default:
		return invalidActionf("%s not supported for %s", a.Op, s.Type())
	}
	return nil
}

func resizeHeaders(headers []string, size int) []string {
	out := make([]string, size)
	copy(out, headers)
	return out
}

// clipIntersections drops selections that a shrink moved outside the
// grid.
func clipIntersections(cells []models.Intersection, grid models.GridSize) []models.Intersection {
	kept := cells[:0]
	for _, cell := range cells {
		if cell.Row >= 0 && cell.Row < grid.Rows && cell.Col >= 0 && cell.Col < grid.Cols {
			kept = append(kept, cell)
		}
	}
	return kept
}
