package models

import "time"

// Display type labels consumed by the quiz-taking client.
const (
	DisplayTrueFalse        = "true_false"
	DisplaySingleChoice     = "single_choice"
	DisplayMultiChoice      = "multi_choice"
	DisplayPairedActivity   = "paired_activity"
	DisplayPairedAssertions = "paired_assertions"
	DisplayMatching         = "matching"
	DisplayOrdering         = "ordering"
	DisplayFillInBlank      = "fill_in_blank"
	DisplayGrid             = "grid_intersections"
)

// DisplayPayload is the externally consumed projection of a structure:
// everything the quiz client needs to render and grade the question.
// Constructed fresh on every save or preview, never mutated in place.
type DisplayPayload struct {
	Type      QuestionType `json:"type"`
	Question  QuestionInfo `json:"question"`
	Timestamp time.Time    `json:"timestamp"`
	Display   any          `json:"display"`
}

// QuestionInfo echoes the shared authoring fields.
type QuestionInfo struct {
	Content string  `json:"content"`
	Image   *string `json:"image"`
}

// BoolOption is one of the two fixed true/false choices.
type BoolOption struct {
	Value bool   `json:"value"`
	Label string `json:"label"`
	Order int    `json:"order"`
}

// TrueFalseDisplay (VF). Options is a fixed constant list, independent
// of the authored data.
type TrueFalseDisplay struct {
	Type          string       `json:"type"`
	CorrectAnswer *bool        `json:"correctAnswer"`
	Options       []BoolOption `json:"options"`
}

// DisplayOption is a projected choice option with 1-based id and order
// matching its array position.
type DisplayOption struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
	Order     int    `json:"order"`
}

// SingleChoiceDisplay (QCM_S).
type SingleChoiceDisplay struct {
	Type    string          `json:"type"`
	Options []DisplayOption `json:"options"`
}

// MultiChoiceDisplay (QRM).
type MultiChoiceDisplay struct {
	Type          string          `json:"type"`
	Options       []DisplayOption `json:"options"`
	MinSelections int             `json:"minSelections"`
	MaxSelections int             `json:"maxSelections"`
}

// PrefixedOption is a projected option of one paired-activity column,
// id-prefixed L#/R# so both columns stay addressable in one answer set.
type PrefixedOption struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
	Order     int    `json:"order"`
}

// PairedActivityDisplay (QCM_PA).
type PairedActivityDisplay struct {
	Type         string           `json:"type"`
	LeftOptions  []PrefixedOption `json:"leftOptions"`
	RightOptions []PrefixedOption `json:"rightOptions"`
}

// RelationOption is one entry of the fixed 5-way relation catalog for
// paired assertions.
type RelationOption struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// PairedAssertionDisplay (QCM_P).
type PairedAssertionDisplay struct {
	Type            string           `json:"type"`
	AssertionA      string           `json:"assertionA"`
	AssertionB      string           `json:"assertionB"`
	CorrectOption   int              `json:"correctOption"`
	RelationOptions []RelationOption `json:"relationOptions"`
}

// ColumnItem is one entry of a matching column.
type ColumnItem struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// MatchingDisplay (QAA). RightColumn is a randomized permutation so its
// order never reveals the matching; CorrectAssociations (left id to
// right id) is the grading source of truth.
type MatchingDisplay struct {
	Type                string            `json:"type"`
	LeftColumn          []ColumnItem      `json:"leftColumn"`
	RightColumn         []ColumnItem      `json:"rightColumn"`
	CorrectAssociations map[string]string `json:"correctAssociations"`
}

// SequenceItem is one entry of the authoritative correct order.
type SequenceItem struct {
	ID       int    `json:"id"`
	Text     string `json:"text"`
	Position int    `json:"position"`
}

// ShuffledItem is one entry of the learner-facing shuffled list; it
// deliberately carries no position.
type ShuffledItem struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// OrderingDisplay (ORD).
type OrderingDisplay struct {
	Type          string         `json:"type"`
	CorrectOrder  []SequenceItem `json:"correctOrder"`
	ShuffledItems []ShuffledItem `json:"shuffledItems"`
}

// BlankDescriptor is one projected blank of a fill-in-blank question.
type BlankDescriptor struct {
	Position    int    `json:"position"`
	Answer      string `json:"answer"`
	Placeholder string `json:"placeholder"`
}

// FillBlankDisplay (LAC). DisplayText has every placeholder replaced by
// a fixed blank marker.
type FillBlankDisplay struct {
	Type        string            `json:"type"`
	DisplayText string            `json:"displayText"`
	Blanks      []BlankDescriptor `json:"blanks"`
}

// IntersectionDisplay is one correct cell resolved to both index and
// label form.
type IntersectionDisplay struct {
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	RowLabel string `json:"rowLabel"`
	ColLabel string `json:"colLabel"`
}

// GridDisplay (GRID).
type GridDisplay struct {
	Type                 string                `json:"type"`
	RowHeaders           []string              `json:"rowHeaders"`
	ColHeaders           []string              `json:"colHeaders"`
	CorrectIntersections []IntersectionDisplay `json:"correctIntersections"`
}
