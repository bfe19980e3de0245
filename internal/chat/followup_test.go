package chat

import (
	"strings"
	"testing"
)

func TestChooseFollowup_Categories(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"exam", "I have an exam tomorrow", followupCategories[0].question},
		{"grade uppercase", "I GOT MY GRADE BACK", followupCategories[0].question},
		{"happy", "I'm so happy today", followupCategories[1].question},
		{"anxious", "feeling anxious about everything", followupCategories[2].question},
		{"deadline", "this deadline is crushing me", followupCategories[2].question},
		{"sleep", "I can't sleep at night", followupCategories[3].question},
		{"friend", "I argued with my friend", followupCategories[4].question},
		{"generic", "just a normal day", genericFollowup},
		{"empty", "", genericFollowup},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChooseFollowup(tt.input); got != tt.want {
				t.Errorf("ChooseFollowup(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// Priority order decides when keywords from several categories appear:
// the exam category wins over stress, stress wins over sleep.
func TestChooseFollowup_PriorityOrder(t *testing.T) {
	got := ChooseFollowup("I'm stressed about my exam")
	if got != followupCategories[0].question {
		t.Errorf("expected exam category to win, got %q", got)
	}
	got = ChooseFollowup("so stressed I can't sleep")
	if got != followupCategories[2].question {
		t.Errorf("expected stress category to win over sleep, got %q", got)
	}
}

// Every category question reads as a question.
func TestFollowupQuestionsEndWithQuestionMark(t *testing.T) {
	for i, cat := range followupCategories {
		if !strings.HasSuffix(cat.question, "?") {
			t.Errorf("category %d question missing question mark: %q", i, cat.question)
		}
	}
	if !strings.HasSuffix(genericFollowup, "?") {
		t.Errorf("generic follow-up missing question mark: %q", genericFollowup)
	}
}
