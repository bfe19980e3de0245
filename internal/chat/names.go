package chat

import (
	"regexp"
	"strings"
	"unicode"
)

// greetingPhrases short-circuit extraction: a bare greeting is never a name.
var greetingPhrases = map[string]bool{
	"hi":             true,
	"hii":            true,
	"hello":          true,
	"hey":            true,
	"heya":           true,
	"yo":             true,
	"namaste":        true,
	"good morning":   true,
	"good afternoon": true,
	"good evening":   true,
	"good night":     true,
}

// nameBlocklist holds greetings, fillers, emotion words, and affirmations
// that short replies are often made of. A candidate name matching any of
// these (case-insensitive) is rejected by both the extractor and the
// identity store.
var nameBlocklist = map[string]bool{
	"hi": true, "hii": true, "hello": true, "hey": true, "heya": true,
	"yo": true, "namaste": true, "morning": true, "evening": true, "night": true,
	"ok": true, "okay": true, "yes": true, "yeah": true, "yep": true,
	"no": true, "nope": true, "nah": true, "sure": true, "maybe": true,
	"hmm": true, "huh": true, "umm": true, "lol": true, "bye": true,
	"thanks": true, "thank": true, "please": true, "sorry": true,
	"sad": true, "happy": true, "angry": true, "upset": true, "tired": true,
	"fine": true, "good": true, "great": true, "bad": true, "okayish": true,
	"stressed": true, "anxious": true, "worried": true, "lonely": true,
	"bored": true, "excited": true, "scared": true, "depressed": true,
	"nothing": true, "help": true, "what": true, "why": true, "who": true,
}

// Explicit self-introductions, tried in order. "my name is X" beats the
// single-token heuristic, which only runs when no pattern matched.
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bmy name is ([A-Za-z][A-Za-z'\-]*)`),
	regexp.MustCompile(`(?i)\bcall me ([A-Za-z][A-Za-z'\-]*)`),
	regexp.MustCompile(`(?i)\bi am ([A-Za-z][A-Za-z'\-]*)`),
	regexp.MustCompile(`(?i)\bi'm ([A-Za-z][A-Za-z'\-]*)`),
}

var vowels = "aeiouAEIOU"

// ExtractName pulls a candidate name out of free text. Returns "" when
// the text does not look like it contains one. The single-token branch is
// deliberately conservative so short replies like "yes" or "ok" are never
// mistaken for names.
func ExtractName(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ""
	}
	if greetingPhrases[strings.ToLower(trimmed)] {
		return ""
	}

	for _, p := range namePatterns {
		m := p.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		if name := validateCandidate(m[1]); name != "" {
			return name
		}
	}

	tokens := strings.Fields(trimmed)
	if len(tokens) != 1 {
		return ""
	}
	tok := sanitizeName(tokens[0])
	if tok == "" || !isAlphabetic(tok) {
		return ""
	}
	if len(tok) < 2 || len(tok) > 30 {
		return ""
	}
	if BlockedName(tok) {
		return ""
	}
	// Heuristic: real names beyond three letters carry a vowel. Tolerates
	// short names like "Raj" or "Kim" that might not ("Ng").
	if len(tok) > 3 && !strings.ContainsAny(tok, vowels) {
		return ""
	}
	return Capitalize(tok)
}

// BlockedName reports whether a candidate is on the blocklist, ignoring case.
func BlockedName(name string) bool {
	return nameBlocklist[strings.ToLower(name)]
}

// Capitalize upper-cases the first letter and leaves the rest unchanged.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func validateCandidate(raw string) string {
	tok := sanitizeName(raw)
	if len(tok) < 2 || BlockedName(tok) {
		return ""
	}
	return Capitalize(tok)
}

// sanitizeName keeps letters, apostrophes, and hyphens.
func sanitizeName(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || r == '\'' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isAlphabetic(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}
