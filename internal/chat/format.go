package chat

import (
	"regexp"
	"strings"
)

// Structured reply content: a flat sequence of paragraph and list blocks,
// each made of plain and emphasized spans.

type BlockKind string

const (
	BlockParagraph BlockKind = "paragraph"
	BlockList      BlockKind = "list"
)

type Span struct {
	Text     string `json:"text"`
	Emphasis bool   `json:"emphasis,omitempty"`
}

type Block struct {
	Kind  BlockKind `json:"kind"`
	Spans []Span    `json:"spans,omitempty"` // paragraph
	Items [][]Span  `json:"items,omitempty"` // list
}

type Content struct {
	Blocks []Block `json:"blocks"`
}

// Text renders the content back to plain text: paragraphs separated by
// blank lines, list items prefixed with "- ". Emphasis is dropped.
func (c Content) Text() string {
	var parts []string
	for _, b := range c.Blocks {
		switch b.Kind {
		case BlockParagraph:
			parts = append(parts, spansText(b.Spans))
		case BlockList:
			var lines []string
			for _, item := range b.Items {
				lines = append(lines, "- "+spansText(item))
			}
			parts = append(parts, strings.Join(lines, "\n"))
		}
	}
	return strings.Join(parts, "\n\n")
}

func spansText(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

type FormatOptions struct {
	MaxSentences    int    // 0 means the default of 7
	Followup        string // empty means the default question
	EndConversation bool   // suppresses the trailing follow-up
}

const (
	defaultMaxSentences = 7
	defaultFollowup     = "Would you like to tell me more?"
	apologyReply        = "I'm sorry, I don't have a reply for that just now. Could you say it another way?"
)

var (
	citationRe   = regexp.MustCompile(`\[\d+\]`)
	bulletItemRe = regexp.MustCompile(`^\s*[-*]\s+(.*)$`)
	numberItemRe = regexp.MustCompile(`^\s*\d+\.\s+(.*)$`)
)

// Format turns raw provider text into bounded structured content: strip
// citation markers, cap the sentence count, guarantee a trailing
// follow-up question, and parse bullet/numbered lines into list blocks.
// Bold markers become emphasis spans; stray asterisks are dropped.
func Format(raw string, opts FormatOptions) Content {
	maxSentences := opts.MaxSentences
	if maxSentences <= 0 {
		maxSentences = defaultMaxSentences
	}
	followup := opts.Followup
	if followup == "" {
		followup = defaultFollowup
	}

	cleaned := strings.TrimSpace(citationRe.ReplaceAllString(raw, ""))
	if cleaned == "" {
		return Content{Blocks: []Block{paragraphOf(apologyReply)}}
	}

	sentences := splitSentences(cleaned)
	text := cleaned
	if len(sentences) > maxSentences {
		text = strings.TrimSpace(strings.Join(sentences[:maxSentences], ""))
		if !endsWithTerminator(text) {
			text += "."
		}
		text += " …"
	}

	if !opts.EndConversation && !strings.HasSuffix(strings.TrimSpace(text), "?") {
		text = strings.TrimSpace(text) + " " + followup
	}

	if strings.TrimSpace(stripAsterisks(text)) == "" {
		return Content{Blocks: []Block{paragraphOf(stripAsterisks(cleaned))}}
	}

	blocks := parseBlocks(text)
	if len(blocks) == 0 {
		return Content{Blocks: []Block{paragraphOf(stripAsterisks(cleaned))}}
	}
	return Content{Blocks: blocks}
}

// splitSentences cuts on sentence-ending punctuation followed by
// whitespace, keeping each fragment's terminator and trailing whitespace
// so that rejoining fragments reproduces the original text. A simple
// terminator-plus-space heuristic: it will misfire on abbreviations, which
// is an accepted approximation rather than a bug to fix here.
func splitSentences(text string) []string {
	var out []string
	runes := []rune(text)
	start := 0
	i := 0
	for i < len(runes) {
		if isTerminator(runes[i]) {
			// Swallow the full terminator run ("...", "?!", "…").
			for i < len(runes) && isTerminator(runes[i]) {
				i++
			}
			if i < len(runes) && isSpace(runes[i]) {
				for i < len(runes) && isSpace(runes[i]) {
					i++
				}
				if frag := string(runes[start:i]); strings.TrimSpace(frag) != "" {
					out = append(out, frag)
				}
				start = i
			}
			continue
		}
		i++
	}
	if frag := string(runes[start:]); strings.TrimSpace(frag) != "" {
		out = append(out, frag)
	}
	return out
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?' || r == '…'
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func endsWithTerminator(s string) bool {
	r := []rune(strings.TrimSpace(s))
	return len(r) > 0 && isTerminator(r[len(r)-1])
}

// parseBlocks walks the lines: bullet or numbered lines become list items
// (consecutive items share one list block), anything else non-empty is a
// paragraph.
func parseBlocks(text string) []Block {
	var blocks []Block
	var list *Block
	flush := func() {
		if list != nil {
			blocks = append(blocks, *list)
			list = nil
		}
	}
	for _, line := range strings.Split(text, "\n") {
		item := ""
		if m := bulletItemRe.FindStringSubmatch(line); m != nil {
			item = m[1]
		} else if m := numberItemRe.FindStringSubmatch(line); m != nil {
			item = m[1]
		}
		if item != "" {
			if list == nil {
				list = &Block{Kind: BlockList}
			}
			list.Items = append(list.Items, parseSpans(item))
			continue
		}
		flush()
		if strings.TrimSpace(line) != "" {
			blocks = append(blocks, Block{Kind: BlockParagraph, Spans: parseSpans(line)})
		}
	}
	flush()
	return blocks
}

// parseSpans converts **bold** runs into emphasis spans and drops any
// remaining literal asterisks.
func parseSpans(text string) []Span {
	var spans []Span
	for {
		open := strings.Index(text, "**")
		if open < 0 {
			break
		}
		end := strings.Index(text[open+2:], "**")
		if end < 0 {
			break
		}
		if before := stripAsterisks(text[:open]); before != "" {
			spans = append(spans, Span{Text: before})
		}
		if inner := text[open+2 : open+2+end]; inner != "" {
			spans = append(spans, Span{Text: inner, Emphasis: true})
		}
		text = text[open+2+end+2:]
	}
	if rest := stripAsterisks(text); rest != "" {
		spans = append(spans, Span{Text: rest})
	}
	return spans
}

func stripAsterisks(s string) string {
	return strings.ReplaceAll(s, "*", "")
}

func paragraphOf(text string) Block {
	return Block{Kind: BlockParagraph, Spans: []Span{{Text: text}}}
}
