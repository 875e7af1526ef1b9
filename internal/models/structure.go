package models

// QuestionBase holds the fields shared by every structure variant.
// Content is the rich-text body of the question; Image is an optional
// data-URL attached by the author.
type QuestionBase struct {
	Content string  `json:"content"`
	Image   *string `json:"image"`
}

// Structure is the in-progress authoring data for one question. Each
// variant has its own concrete type; the builder only ever holds one
// instance at a time and replaces it wholesale when the selected type
// changes.
type Structure interface {
	Type() QuestionType

	// Common returns a pointer into the receiver so reducers can update
	// the shared fields without a type switch.
	Common() *QuestionBase

	// Clone returns a structurally independent deep copy. Builder
	// reducers always clone before mutating so no two sessions (or two
	// points in time of one session) share slices.
	Clone() Structure
}

// ChoiceOption is a single selectable option of a choice-style question.
type ChoiceOption struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// MatchPair is one left/right association of a matching question.
type MatchPair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// OrderItem is one entry of an ordering question. Order is the 1-based
// authored position and must stay consistent with the slice index.
type OrderItem struct {
	Text  string `json:"text"`
	Order int    `json:"order"`
}

// Blank is one detected placeholder of a fill-in-blank question.
// Position is 1-based in left-to-right text order.
type Blank struct {
	Position    int    `json:"position"`
	Answer      string `json:"answer"`
	Placeholder string `json:"placeholder"`
}

// GridSize is the dimensions of a grid-intersection question.
type GridSize struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// Intersection is one selected row x column cell, 0-based.
type Intersection struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// ===== VARIANT STRUCTURES =====

// TrueFalseStructure (VF). CorrectAnswer is a pointer because "unset"
// and "false" are different authoring states.
type TrueFalseStructure struct {
	QuestionBase
	CorrectAnswer *bool `json:"correct_answer"`
}

func (s *TrueFalseStructure) Type() QuestionType { return TrueFalse }
func (s *TrueFalseStructure) Common() *QuestionBase { return &s.QuestionBase }

func (s *TrueFalseStructure) Clone() Structure {
	c := *s
	c.Image = cloneStringPtr(s.Image)
	c.CorrectAnswer = cloneBoolPtr(s.CorrectAnswer)
	return &c
}

// SingleChoiceStructure (QCM_S).
type SingleChoiceStructure struct {
	QuestionBase
	Options []ChoiceOption `json:"options"`
}

func (s *SingleChoiceStructure) Type() QuestionType { return SingleChoice }
func (s *SingleChoiceStructure) Common() *QuestionBase { return &s.QuestionBase }

func (s *SingleChoiceStructure) Clone() Structure {
	c := *s
	c.Image = cloneStringPtr(s.Image)
	c.Options = cloneOptions(s.Options)
	return &c
}

// MultiChoiceStructure (QRM). Same shape as QCM_S; several options may
// be marked correct.
type MultiChoiceStructure struct {
	QuestionBase
	Options []ChoiceOption `json:"options"`
}

func (s *MultiChoiceStructure) Type() QuestionType { return MultiChoice }
func (s *MultiChoiceStructure) Common() *QuestionBase { return &s.QuestionBase }

func (s *MultiChoiceStructure) Clone() Structure {
	c := *s
	c.Image = cloneStringPtr(s.Image)
	c.Options = cloneOptions(s.Options)
	return &c
}

// PairedActivityStructure (QCM_PA): two independent option columns.
type PairedActivityStructure struct {
	QuestionBase
	LeftOptions  []ChoiceOption `json:"left_options"`
	RightOptions []ChoiceOption `json:"right_options"`
}

func (s *PairedActivityStructure) Type() QuestionType { return PairedActivity }
func (s *PairedActivityStructure) Common() *QuestionBase { return &s.QuestionBase }

func (s *PairedActivityStructure) Clone() Structure {
	c := *s
	c.Image = cloneStringPtr(s.Image)
	c.LeftOptions = cloneOptions(s.LeftOptions)
	c.RightOptions = cloneOptions(s.RightOptions)
	return &c
}

// PairedAssertionStructure (QCM_P): two assertions plus the chosen
// logical relation between them. CorrectOption is 1..5, zero while unset.
type PairedAssertionStructure struct {
	QuestionBase
	AssertionA    string `json:"assertion_a"`
	AssertionB    string `json:"assertion_b"`
	CorrectOption int    `json:"correct_option"`
}

func (s *PairedAssertionStructure) Type() QuestionType { return PairedAssertions }
func (s *PairedAssertionStructure) Common() *QuestionBase { return &s.QuestionBase }

func (s *PairedAssertionStructure) Clone() Structure {
	c := *s
	c.Image = cloneStringPtr(s.Image)
	return &c
}

// MatchingStructure (QAA).
type MatchingStructure struct {
	QuestionBase
	Pairs []MatchPair `json:"pairs"`
}

func (s *MatchingStructure) Type() QuestionType { return Matching }
func (s *MatchingStructure) Common() *QuestionBase { return &s.QuestionBase }

func (s *MatchingStructure) Clone() Structure {
	c := *s
	c.Image = cloneStringPtr(s.Image)
	if s.Pairs != nil {
		c.Pairs = make([]MatchPair, len(s.Pairs))
		copy(c.Pairs, s.Pairs)
	}
	return &c
}

// OrderingStructure (ORD).
type OrderingStructure struct {
	QuestionBase
	Items []OrderItem `json:"items"`
}

func (s *OrderingStructure) Type() QuestionType { return Ordering }
func (s *OrderingStructure) Common() *QuestionBase { return &s.QuestionBase }

func (s *OrderingStructure) Clone() Structure {
	c := *s
	c.Image = cloneStringPtr(s.Image)
	if s.Items != nil {
		c.Items = make([]OrderItem, len(s.Items))
		copy(c.Items, s.Items)
	}
	return &c
}

// FillBlankStructure (LAC). Blanks is derived from the ${{token}}
// placeholders in TextWithBlanks and must match them in count and order.
type FillBlankStructure struct {
	QuestionBase
	TextWithBlanks string  `json:"text_with_blanks"`
	Blanks         []Blank `json:"blanks"`
}

func (s *FillBlankStructure) Type() QuestionType { return FillInBlank }
func (s *FillBlankStructure) Common() *QuestionBase { return &s.QuestionBase }

func (s *FillBlankStructure) Clone() Structure {
	c := *s
	c.Image = cloneStringPtr(s.Image)
	if s.Blanks != nil {
		c.Blanks = make([]Blank, len(s.Blanks))
		copy(c.Blanks, s.Blanks)
	}
	return &c
}

// GridStructure (GRID).
type GridStructure struct {
	QuestionBase
	Grid          GridSize       `json:"grid"`
	RowHeaders    []string       `json:"row_headers"`
	ColHeaders    []string       `json:"col_headers"`
	Intersections []Intersection `json:"intersections"`
}

func (s *GridStructure) Type() QuestionType { return GridIntersection }
func (s *GridStructure) Common() *QuestionBase { return &s.QuestionBase }

func (s *GridStructure) Clone() Structure {
	c := *s
	c.Image = cloneStringPtr(s.Image)
	if s.RowHeaders != nil {
		c.RowHeaders = make([]string, len(s.RowHeaders))
		copy(c.RowHeaders, s.RowHeaders)
	}
	if s.ColHeaders != nil {
		c.ColHeaders = make([]string, len(s.ColHeaders))
		copy(c.ColHeaders, s.ColHeaders)
	}
	if s.Intersections != nil {
		c.Intersections = make([]Intersection, len(s.Intersections))
		copy(c.Intersections, s.Intersections)
	}
	return &c
}

// ===== CLONE HELPERS =====

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneBoolPtr(p *bool) *bool {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneOptions(opts []ChoiceOption) []ChoiceOption {
	if opts == nil {
		return nil
	}
	c := make([]ChoiceOption, len(opts))
	copy(c, opts)
	return c
}
