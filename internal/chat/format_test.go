package chat

import (
	"strings"
	"testing"
)

func TestFormat_EmptyInput(t *testing.T) {
	c := Format("", FormatOptions{})
	if len(c.Blocks) != 1 || c.Blocks[0].Kind != BlockParagraph {
		t.Fatalf("expected one apology paragraph, got %+v", c.Blocks)
	}
	if c.Text() != apologyReply {
		t.Errorf("expected apology, got %q", c.Text())
	}
}

func TestFormat_StripsCitations(t *testing.T) {
	c := Format("Breathing helps[1][3]. Try it tonight[12].", FormatOptions{})
	if strings.Contains(c.Text(), "[") {
		t.Errorf("citation markers survived: %q", c.Text())
	}
	if !strings.Contains(c.Text(), "Breathing helps.") {
		t.Errorf("unexpected text: %q", c.Text())
	}
}

func TestFormat_BoldBecomesEmphasis(t *testing.T) {
	c := Format("This is **really** important.", FormatOptions{})
	para := c.Blocks[0]
	var found bool
	for _, s := range para.Spans {
		if s.Emphasis && s.Text == "really" {
			found = true
		}
		if strings.Contains(s.Text, "*") {
			t.Errorf("literal asterisk survived in span %q", s.Text)
		}
	}
	if !found {
		t.Errorf("expected an emphasis span, got %+v", para.Spans)
	}
}

func TestFormat_StraySterisksStripped(t *testing.T) {
	c := Format("A *stray marker here.", FormatOptions{})
	if strings.Contains(c.Text(), "*") {
		t.Errorf("stray asterisk survived: %q", c.Text())
	}
}

func TestFormat_SentenceBound(t *testing.T) {
	raw := "One. Two. Three. Four. Five. Six. Seven. Eight. Nine. Ten."
	c := Format(raw, FormatOptions{MaxSentences: 3, EndConversation: true})
	text := c.Text()
	if !strings.Contains(text, "…") {
		t.Errorf("expected continuation marker, got %q", text)
	}
	if strings.Contains(text, "Four") {
		t.Errorf("sentences beyond the cap survived: %q", text)
	}
	if !strings.Contains(text, "Three.") {
		t.Errorf("capped text missing last kept sentence: %q", text)
	}
}

func TestFormat_NoMarkerUnderBound(t *testing.T) {
	c := Format("Just one sentence.", FormatOptions{EndConversation: true})
	if strings.Contains(c.Text(), "…") {
		t.Errorf("unexpected continuation marker: %q", c.Text())
	}
}

func TestFormat_FollowupAppended(t *testing.T) {
	c := Format("You did well today.", FormatOptions{Followup: "What made it special?"})
	if !strings.HasSuffix(c.Text(), "What made it special?") {
		t.Errorf("expected follow-up at the end, got %q", c.Text())
	}
}

func TestFormat_DefaultFollowup(t *testing.T) {
	c := Format("You did well today.", FormatOptions{})
	if !strings.HasSuffix(c.Text(), defaultFollowup) {
		t.Errorf("expected default follow-up, got %q", c.Text())
	}
}

func TestFormat_NoFollowupWhenAlreadyQuestion(t *testing.T) {
	c := Format("How did that make you feel?", FormatOptions{Followup: "Extra question?"})
	if strings.Contains(c.Text(), "Extra question?") {
		t.Errorf("follow-up added after an existing question: %q", c.Text())
	}
}

func TestFormat_NoFollowupOnEndConversation(t *testing.T) {
	c := Format("Take care of yourself tonight.", FormatOptions{EndConversation: true})
	if strings.HasSuffix(c.Text(), "?") {
		t.Errorf("follow-up appended despite endConversation: %q", c.Text())
	}
}

// Unless the conversation is ending, formatted output always ends with a
// question mark.
func TestFormat_AlwaysEndsWithQuestion(t *testing.T) {
	inputs := []string{
		"I think rest will help.",
		"One. Two. Three. Four. Five. Six. Seven. Eight. Nine.",
		"Try this:\n- sleep early\n- drink water",
		"",
	}
	for _, in := range inputs {
		c := Format(in, FormatOptions{})
		text := strings.TrimSpace(c.Text())
		if !strings.HasSuffix(text, "?") {
			t.Errorf("Format(%q) does not end with a question: %q", in, text)
		}
	}
}

func TestFormat_ListBlocks(t *testing.T) {
	raw := "Here are some ideas:\n- take a walk\n- call a friend\n1. write it down\nAnd be kind to yourself."
	c := Format(raw, FormatOptions{EndConversation: true})

	if len(c.Blocks) != 3 {
		t.Fatalf("expected paragraph, list, paragraph; got %+v", c.Blocks)
	}
	if c.Blocks[0].Kind != BlockParagraph || c.Blocks[2].Kind != BlockParagraph {
		t.Errorf("expected surrounding paragraphs, got %+v", c.Blocks)
	}
	list := c.Blocks[1]
	if list.Kind != BlockList || len(list.Items) != 3 {
		t.Fatalf("expected one list with 3 items, got %+v", list)
	}
	if got := spansText(list.Items[0]); got != "take a walk" {
		t.Errorf("marker not stripped: %q", got)
	}
	if got := spansText(list.Items[2]); got != "write it down" {
		t.Errorf("numeric marker not stripped: %q", got)
	}
}

func TestFormat_EllipsisTerminatorSplit(t *testing.T) {
	c := Format("Well… that was a lot. You handled it.", FormatOptions{MaxSentences: 1, EndConversation: true})
	text := c.Text()
	if strings.Contains(text, "handled") {
		t.Errorf("expected cut after the first sentence, got %q", text)
	}
}

func TestFormat_ApologyIsSingleParagraph(t *testing.T) {
	c := Format("   ", FormatOptions{})
	if len(c.Blocks) != 1 {
		t.Fatalf("expected single block, got %d", len(c.Blocks))
	}
}
