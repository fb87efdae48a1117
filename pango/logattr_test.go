package pango

import "testing"

func TestLogAttrsLength(t *testing.T) {
	text := []rune("hello")
	attrs := ComputeLogAttrs(text, "")
	if len(attrs) != len(text)+1 {
		t.Fatalf("got %d attrs for %d chars, want %d", len(attrs), len(text), len(text)+1)
	}
	if !attrs[0].IsCursorPosition() || !attrs[len(text)].IsCursorPosition() {
		t.Error("text edges are not cursor positions")
	}
	if !attrs[len(text)].IsLineBreak || !attrs[len(text)].IsMandatoryBreak {
		t.Error("end of text is not a mandatory break")
	}
}

func TestLogAttrsWords(t *testing.T) {
	text := []rune("hello world")
	attrs := ComputeLogAttrs(text, "")

	if !attrs[0].IsWordStart {
		t.Error("position 0 is not a word start")
	}
	if !attrs[5].IsWordEnd {
		t.Error("position 5 is not a word end")
	}
	if !attrs[6].IsWordStart {
		t.Error("position 6 is not a word start")
	}
	if !attrs[5].IsWhite {
		t.Error("the space is not marked white")
	}
	if !attrs[6].IsLineBreak {
		t.Error("no break opportunity after the space")
	}
	if attrs[3].IsLineBreak {
		t.Error("break opportunity in the middle of a word")
	}
}

func TestLogAttrsSoftHyphen(t *testing.T) {
	text := []rune("co\u00adop")
	attrs := ComputeLogAttrs(text, "")

	if !attrs[3].IsLineBreak {
		t.Fatal("no break opportunity after the soft hyphen")
	}
	if !attrs[3].BreakInsertsHyphen {
		t.Error("soft hyphen break does not insert a hyphen")
	}
	if !attrs[3].BreakRemovesPreceding {
		t.Error("soft hyphen break does not remove the preceding character")
	}
}

func TestAttrBreakAllowBreaks(t *testing.T) {
	text := []rune("hello world")
	logAttrs := ComputeLogAttrs(text, "")

	var attrs AttrList
	attrs.insert(attrWithRange(NewAttrAllowBreaks(false), 0, len(text)))
	attrBreak(attrs, logAttrs)

	for pos := 1; pos < len(text); pos++ {
		if logAttrs[pos].IsLineBreak || logAttrs[pos].IsCharBreak {
			t.Errorf("break opportunity at %d survived allow-breaks=false", pos)
		}
	}
}

func TestAttrBreakInsertHyphens(t *testing.T) {
	text := []rune("co\u00adop")
	logAttrs := ComputeLogAttrs(text, "")

	var attrs AttrList
	attrs.insert(attrWithRange(NewAttrInsertHyphens(false), 0, len(text)))
	attrBreak(attrs, logAttrs)

	if logAttrs[3].BreakInsertsHyphen {
		t.Error("break_inserts_hyphen survived insert-hyphens=false")
	}
}

func TestAttrBreakWordMarker(t *testing.T) {
	text := []rune("New York")
	logAttrs := ComputeLogAttrs(text, "")

	var attrs AttrList
	attrs.insert(attrWithRange(NewAttrWord(), 0, len(text)))
	attrBreak(attrs, logAttrs)

	if !logAttrs[0].IsWordStart || !logAttrs[len(text)].IsWordEnd {
		t.Error("word marker edges lost")
	}
	if logAttrs[4].IsWordStart || logAttrs[3].IsWordEnd {
		t.Error("interior word boundaries survived a word marker")
	}
}
