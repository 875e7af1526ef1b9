package models

// QuestionType identifies one variant of the question builder.
// The string values are the wire identifiers used by the dashboard
// front-end and the metadata API.
type QuestionType string

const (
	TrueFalse        QuestionType = "VF"
	SingleChoice     QuestionType = "QCM_S"
	MultiChoice      QuestionType = "QRM"
	PairedActivity   QuestionType = "QCM_PA"
	PairedAssertions QuestionType = "QCM_P"
	Matching         QuestionType = "QAA"
	Ordering         QuestionType = "ORD"
	FillInBlank      QuestionType = "LAC"
	GridIntersection QuestionType = "GRID"
)

// AllQuestionTypes is the fixed, ordered list of supported variants.
var AllQuestionTypes = []QuestionType{
	TrueFalse,
	SingleChoice,
	MultiChoice,
	PairedActivity,
	PairedAssertions,
	Matching,
	Ordering,
	FillInBlank,
	GridIntersection,
}

// IsValidQuestionType reports whether t is one of the supported variants.
func IsValidQuestionType(t QuestionType) bool {
	for _, valid := range AllQuestionTypes {
		if t == valid {
			return true
		}
	}
	return false
}
