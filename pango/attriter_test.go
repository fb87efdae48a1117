package pango

import "testing"

// The iterator must tile the attribute space: successive [start, end)
// ranges partition it without gaps or overlap, and every attribute is on
// the stack exactly over the intersection of its range with the tiling.
func TestAttrIteratorTiling(t *testing.T) {
	var list AttrList
	list.insert(attrWithRange(NewAttrFamily("serif"), 0, 10))
	list.insert(attrWithRange(NewAttrWeight(WEIGHT_BOLD), 2, 5))
	list.insert(attrWithRange(NewAttrStyle(STYLE_ITALIC), 5, 30))
	list.insert(attrWithRange(NewAttrLetterSpacing(64), 7, 7)) // empty: on the stack only over the zero-width interval [7,7)

	iter := list.pango_attr_list_get_iterator()

	prevEnd := 0
	for do := true; do; do = iter.pango_attr_iterator_next() {
		if iter.StartIndex != prevEnd {
			t.Fatalf("gap or overlap: range starts at %d, previous ended at %d", iter.StartIndex, prevEnd)
		}
		for _, attr := range iter.attrs() {
			if attr.StartIndex > iter.StartIndex || attr.EndIndex < iter.EndIndex {
				t.Errorf("attribute [%d,%d) on stack outside its range [%d,%d)",
					iter.StartIndex, iter.EndIndex, attr.StartIndex, attr.EndIndex)
			}
		}
		// spot-check membership
		if iter.StartIndex >= 2 && iter.EndIndex <= 5 && iter.get(ATTR_WEIGHT) == nil {
			t.Errorf("weight missing over [%d,%d)", iter.StartIndex, iter.EndIndex)
		}
		prevEnd = iter.EndIndex
	}
	// the tiling runs out exactly at the last attribute end
	if prevEnd != 30 {
		t.Errorf("final range ended at %d, want 30", prevEnd)
	}
}

func TestAttrIteratorGet(t *testing.T) {
	var list AttrList
	list.insert(attrWithRange(NewAttrWeight(WEIGHT_LIGHT), 0, 10))
	list.insert(attrWithRange(NewAttrWeight(WEIGHT_BOLD), 0, 5))

	iter := list.pango_attr_list_get_iterator()
	got := iter.get(ATTR_WEIGHT)
	if got == nil || Weight(got.Data.(AttrInt)) != WEIGHT_BOLD {
		t.Fatalf("get returned %v, want the most recently started (bold)", got)
	}
}

func TestAttrIteratorGetFont(t *testing.T) {
	var list AttrList
	list.insert(attrWithRange(NewAttrFamily("mono"), 0, 10))
	list.insert(attrWithRange(NewAttrSize(10*Scale), 0, 10))
	list.insert(attrWithRange(NewAttrScale(2.0), 0, 10))
	list.insert(attrWithRange(NewAttrLanguage("ja"), 0, 10))
	list.insert(attrWithRange(NewAttrLetterSpacing(64), 0, 10))

	iter := list.pango_attr_list_get_iterator()

	desc := NewFontDescription()
	var lang Language
	var extras AttrList
	iter.pango_attr_iterator_get_font(&desc, &lang, &extras)

	if desc.Family != "mono" {
		t.Errorf("family = %q", desc.Family)
	}
	// scale composes multiplicatively with the size
	if desc.Size() != 20*Scale {
		t.Errorf("size = %d, want %d", desc.Size(), 20*Scale)
	}
	if desc.SizeIsAbsolute() {
		t.Error("absolute flag set by relative size")
	}
	if lang != "ja" {
		t.Errorf("language = %q", lang)
	}
	if len(extras) != 1 || extras[0].Type != ATTR_LETTER_SPACING {
		t.Errorf("extras = %v, want just letter-spacing", extras)
	}
}

// Attributes of an overriding type: the closest-start (topmost) one wins;
// accumulating types contribute every open instance.
func TestAttrIteratorGetFontPriority(t *testing.T) {
	var list AttrList
	list.insert(attrWithRange(NewAttrFamily("serif"), 0, 10))
	list.insert(attrWithRange(NewAttrFamily("mono"), 0, 10))
	list.insert(attrWithRange(NewAttrFontFeatures("tnum=1"), 0, 10))
	list.insert(attrWithRange(NewAttrFontFeatures("smcp=1"), 0, 10))

	iter := list.pango_attr_list_get_iterator()
	desc := NewFontDescription()
	var lang Language
	var extras AttrList
	iter.pango_attr_iterator_get_font(&desc, &lang, &extras)

	if desc.Family != "mono" {
		t.Errorf("family = %q, want the most recently inserted to win", desc.Family)
	}
	features := 0
	for _, a := range extras {
		if a.Type == ATTR_FONT_FEATURES {
			features++
		}
	}
	if features != 2 {
		t.Errorf("%d font-features attributes survived, want both", features)
	}
}
