package chat

import (
	_ "embed"
	"encoding/json"
	"strings"
)

// Sentiment is advisory input to tone selection. It shapes the prefix and
// wellness tip attached to a reply but is never required for correctness;
// a classifier that always answers NEUTRAL is a valid one.

const (
	SentimentPositive = "POSITIVE"
	SentimentNegative = "NEGATIVE"
	SentimentNeutral  = "NEUTRAL"
)

type Classifier interface {
	Classify(text string) (label string, score float64)
}

//go:embed tips.json
var tipsJSON []byte

var wellnessTips = loadTips()

func loadTips() map[string][]string {
	tips := map[string][]string{}
	if err := json.Unmarshal(tipsJSON, &tips); err != nil || len(tips) == 0 {
		// Embedded file should always parse; keep a minimal fallback anyway.
		return map[string][]string{
			"relaxation": {"Take deep breaths and stretch your body."},
			"motivation": {"Believe in yourself. You are stronger than you think."},
		}
	}
	return tips
}

// KeywordClassifier is a deterministic lexicon-based classifier. It
// counts positive and negative keyword hits; score is the winning share
// of total hits.
type KeywordClassifier struct{}

var negativeWords = []string{
	"sad", "down", "depressed", "anxious", "worried", "stressed", "scared",
	"afraid", "lonely", "tired", "exhausted", "angry", "upset", "hopeless",
	"overwhelmed", "cry", "crying", "hurt", "fail", "failed", "worst", "hate",
	"panic", "pressure",
}

var positiveWords = []string{
	"happy", "glad", "great", "good", "excited", "awesome", "wonderful",
	"proud", "love", "amazing", "passed", "won", "best", "relieved",
	"grateful", "calm", "better",
}

func (KeywordClassifier) Classify(text string) (string, float64) {
	lower := strings.ToLower(text)
	neg, pos := 0, 0
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			neg++
		}
	}
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			pos++
		}
	}
	total := neg + pos
	switch {
	case total == 0:
		return SentimentNeutral, 0
	case neg > pos:
		return SentimentNegative, float64(neg) / float64(total)
	case pos > neg:
		return SentimentPositive, float64(pos) / float64(total)
	default:
		return SentimentNeutral, 0.5
	}
}

// toneForSentiment maps a sentiment label to a reply prefix and an
// optional wellness tip.
func toneForSentiment(label string) (tone, tip string) {
	switch label {
	case SentimentNegative:
		return "I hear you, that sounds tough. You are not alone.", firstTip("relaxation")
	case SentimentPositive:
		return "That's great to hear! Keep your positive energy going.", firstTip("motivation")
	default:
		return "Thanks for sharing. I'm here for you.", ""
	}
}

func firstTip(category string) string {
	if tips := wellnessTips[category]; len(tips) > 0 {
		return tips[0]
	}
	return ""
}
