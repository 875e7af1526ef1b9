package models

import (
	"testing"
)

func TestScanPlaceholders(t *testing.T) {
	tokens := ScanPlaceholders("the ${{sky}} is ${{blue}} today")
	if len(tokens) != 2 {
		t.Fatalf("Expected 2 tokens, got %d", len(tokens))
	}
	if tokens[0] != "sky" || tokens[1] != "blue" {
		t.Errorf("Expected [sky blue], got %v", tokens)
	}

	if tokens := ScanPlaceholders("no placeholders"); len(tokens) != 0 {
		t.Errorf("Expected no tokens, got %v", tokens)
	}

	// Empty token is still a placeholder.
	tokens = ScanPlaceholders("a ${{}} here")
	if len(tokens) != 1 || tokens[0] != "" {
		t.Errorf("Expected one empty token, got %v", tokens)
	}
}

func TestSyncBlanks_Defaults(t *testing.T) {
	blanks := SyncBlanks("the ${{sky}} is ${{blue}}", nil)
	if len(blanks) != 2 {
		t.Fatalf("Expected 2 blanks, got %d", len(blanks))
	}
	if blanks[0] != (Blank{Position: 1, Answer: "sky", Placeholder: "sky"}) {
		t.Errorf("Unexpected first blank: %+v", blanks[0])
	}
	if blanks[1] != (Blank{Position: 2, Answer: "blue", Placeholder: "blue"}) {
		t.Errorf("Unexpected second blank: %+v", blanks[1])
	}
}

func TestSyncBlanks_PreservesAnswersByToken(t *testing.T) {
	existing := []Blank{
		{Position: 1, Answer: "heavens", Placeholder: "sky"},
		{Position: 2, Answer: "azure", Placeholder: "blue"},
	}

	// The placeholders swap position; answers follow their tokens.
	blanks := SyncBlanks("${{blue}} is the color of the ${{sky}}", existing)
	if len(blanks) != 2 {
		t.Fatalf("Expected 2 blanks, got %d", len(blanks))
	}
	if blanks[0].Answer != "azure" || blanks[0].Position != 1 {
		t.Errorf("Unexpected first blank: %+v", blanks[0])
	}
	if blanks[1].Answer != "heavens" || blanks[1].Position != 2 {
		t.Errorf("Unexpected second blank: %+v", blanks[1])
	}
}

func TestSyncBlanks_DuplicateTokensConsumeAnswersInOrder(t *testing.T) {
	existing := []Blank{
		{Position: 1, Answer: "first", Placeholder: "x"},
		{Position: 2, Answer: "second", Placeholder: "x"},
	}

	blanks := SyncBlanks("${{x}} then ${{x}}", existing)
	if len(blanks) != 2 {
		t.Fatalf("Expected 2 blanks, got %d", len(blanks))
	}
	if blanks[0].Answer != "first" || blanks[1].Answer != "second" {
		t.Errorf("Duplicate tokens matched out of order: %+v", blanks)
	}
}

func TestSyncBlanks_NoPlaceholders(t *testing.T) {
	blanks := SyncBlanks("plain text", []Blank{{Position: 1, Answer: "a", Placeholder: "a"}})
	if blanks != nil {
		t.Errorf("Expected nil blanks, got %v", blanks)
	}
}

func TestReplacePlaceholders(t *testing.T) {
	got := ReplacePlaceholders("the ${{sky}} is ${{blue}}", "_____")
	want := "the _____ is _____"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
