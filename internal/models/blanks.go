package models

import "regexp"

// blankPlaceholderPattern matches the ${{token}} placeholders authors
// embed in fill-in-blank text.
var blankPlaceholderPattern = regexp.MustCompile(`\$\{\{(.*?)\}\}`)

// ScanPlaceholders returns the placeholder tokens of text in
// left-to-right order.
func ScanPlaceholders(text string) []string {
	matches := blankPlaceholderPattern.FindAllStringSubmatch(text, -1)
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		tokens = append(tokens, m[1])
	}
	return tokens
}

// SyncBlanks rebuilds the blank list for text from its placeholders.
// Answers already authored for a placeholder token are kept on a
// first-match basis; new blanks default their answer to the placeholder
// text itself.
func SyncBlanks(text string, existing []Blank) []Blank {
	tokens := ScanPlaceholders(text)
	if len(tokens) == 0 {
		return nil
	}

	// Index previous answers by token so an edit elsewhere in the text
	// does not wipe confirmed answers.
	remaining := make([]Blank, len(existing))
	copy(remaining, existing)

	blanks := make([]Blank, 0, len(tokens))
	for i, token := range tokens {
		answer := token
		for j, prev := range remaining {
			if prev.Placeholder == token {
				answer = prev.Answer
				remaining = append(remaining[:j], remaining[j+1:]...)
				break
			}
		}
		blanks = append(blanks, Blank{
			Position:    i + 1,
			Answer:      answer,
			Placeholder: token,
		})
	}
	return blanks
}

// ReplacePlaceholders substitutes every ${{token}} occurrence in text
// with marker.
func ReplacePlaceholders(text, marker string) string {
	return blankPlaceholderPattern.ReplaceAllString(text, marker)
}
