package pango

import "testing"

func itemizeAll(t *testing.T, context *Context, text string, attrs AttrList) []*Item {
	t.Helper()
	runes := []rune(text)
	list := context.Itemize(runes, 0, len(runes), attrs, nil)
	list = context.postProcessItems(runes, list)
	var items []*Item
	for l := list; l != nil; l = l.Next {
		items = append(items, l.Data)
	}
	return items
}

// Items must partition the text exactly, in logical order.
func checkItemsPartition(t *testing.T, items []*Item, nRunes int) {
	t.Helper()
	offset := 0
	charOffset := 0
	for i, item := range items {
		if item.Offset != offset {
			t.Fatalf("item %d starts at %d, want %d", i, item.Offset, offset)
		}
		if item.Length <= 0 {
			t.Fatalf("item %d has length %d", i, item.Length)
		}
		if item.Analysis.Flags&AFHasCharOffset == 0 || item.CharOffset != charOffset {
			t.Fatalf("item %d char offset %d (flags %b), want %d", i, item.CharOffset, item.Analysis.Flags, charOffset)
		}
		offset += item.Length
		charOffset += item.NumChars
	}
	if offset != nRunes {
		t.Fatalf("items cover %d runes, text has %d", offset, nRunes)
	}
}

func TestItemizePlain(t *testing.T) {
	context := newTestContext()
	items := itemizeAll(t, context, "hello world", nil)
	checkItemsPartition(t, items, 11)
	if len(items) != 1 {
		t.Fatalf("uniform latin text split into %d items", len(items))
	}
	item := items[0]
	if item.Analysis.Level%2 != 0 {
		t.Errorf("latin text got RTL level %d", item.Analysis.Level)
	}
	if item.Analysis.Font == nil {
		t.Error("no font resolved")
	}
}

// Mixed-direction text itemizes into LTR, RTL, LTR runs
// with the right scripts.
func TestItemizeMixedBidi(t *testing.T) {
	context := newTestContext()
	text := "abcעבריתdef"
	items := itemizeAll(t, context, text, nil)
	checkItemsPartition(t, items, len([]rune(text)))

	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	levels := []fribidiLevel{items[0].Analysis.Level, items[1].Analysis.Level, items[2].Analysis.Level}
	if levels[0]%2 != 0 || levels[1]%2 != 1 || levels[2]%2 != 0 {
		t.Errorf("levels = %v, want even, odd, even", levels)
	}
	if items[0].Analysis.Script != SCRIPT_LATIN || items[2].Analysis.Script != SCRIPT_LATIN {
		t.Errorf("outer scripts = %v, %v, want latin", items[0].Analysis.Script, items[2].Analysis.Script)
	}
	if items[1].Analysis.Script != SCRIPT_HEBREW {
		t.Errorf("middle script = %v, want hebrew", items[1].Analysis.Script)
	}
}

// A language attribute split forces an item boundary even in uniform text.
func TestItemizeLanguageBoundary(t *testing.T) {
	context := newTestContext()
	var attrs AttrList
	attrs.insert(attrWithRange(NewAttrLanguage("ja"), 0, 5))

	items := itemizeAll(t, context, "hello world", attrs)
	checkItemsPartition(t, items, 11)
	if len(items) < 2 {
		t.Fatalf("language boundary did not split: %d items", len(items))
	}
	if items[0].Analysis.Language != "ja" {
		t.Errorf("first item language = %q, want ja", items[0].Analysis.Language)
	}
	if items[1].Analysis.Language == "ja" {
		t.Error("second item still japanese")
	}
}

// Tabs always terminate an item so the breaker sees them alone at the head.
func TestItemizeTabBoundaries(t *testing.T) {
	context := newTestContext()
	items := itemizeAll(t, context, "a\tb", nil)
	checkItemsPartition(t, items, 3)
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3 around the tab", len(items))
	}
	if items[1].Length != 1 {
		t.Errorf("tab item has length %d", items[1].Length)
	}
}
