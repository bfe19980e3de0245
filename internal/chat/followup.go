package chat

import "strings"

// followupCategories are evaluated in fixed priority order against the
// lowercased input; the first category with any keyword hit wins. The
// categories are mutually exclusive by priority, not by keyword
// disjointness.
var followupCategories = []struct {
	keywords []string
	question string
}{
	{
		keywords: []string{"exam", "test", "grade", "marks", "result"},
		question: "Well done for putting in the work. Would you like to sketch a study plan for what comes next?",
	},
	{
		keywords: []string{"happy", "excited", "celebrate", "celebration", "glad"},
		question: "That's lovely to hear! How are you planning to celebrate?",
	},
	{
		keywords: []string{"anxious", "worried", "stressed", "overwhelmed", "pressure", "deadline"},
		question: "Would it help to try a slow breathing exercise together?",
	},
	{
		keywords: []string{"sleep", "tired", "rest", "insomnia"},
		question: "Would you like a few tips for winding down and resting better?",
	},
	{
		keywords: []string{"friend", "relationship", "peer", "roommate"},
		question: "Do you want to talk through what you might say to them?",
	},
}

const genericFollowup = "Would you like to try a quick grounding exercise with me?"

// ChooseFollowup picks a context-appropriate follow-up question for the
// user's message. Deterministic: same input, same question.
func ChooseFollowup(userText string) string {
	lower := strings.ToLower(userText)
	for _, cat := range followupCategories {
		for _, kw := range cat.keywords {
			if strings.Contains(lower, kw) {
				return cat.question
			}
		}
	}
	return genericFollowup
}
