package pango

import "testing"

func attrWithRange(attr *Attribute, start, end int) *Attribute {
	attr.StartIndex = start
	attr.EndIndex = end
	return attr
}

func checkSorted(t *testing.T, list AttrList, context string) {
	t.Helper()
	for i := 1; i < len(list); i++ {
		if list[i-1].StartIndex > list[i].StartIndex {
			t.Fatalf("%s: list not sorted by start index: %d after %d",
				context, list[i].StartIndex, list[i-1].StartIndex)
		}
	}
}

func TestAttrListInsertKeepsOrder(t *testing.T) {
	var list AttrList
	list.insert(attrWithRange(NewAttrWeight(WEIGHT_BOLD), 10, 20))
	list.insert(attrWithRange(NewAttrFamily("serif"), 0, 30))
	list.insert(attrWithRange(NewAttrStyle(STYLE_ITALIC), 10, 15))
	list.insertBefore(attrWithRange(NewAttrFamily("mono"), 10, 12))
	checkSorted(t, list, "insert")

	// same start index: insert goes after, insertBefore goes first
	if list[1].Type != ATTR_FAMILY || string(list[1].Data.(AttrString)) != "mono" {
		t.Errorf("insertBefore did not land first among equal starts: %v", list[1])
	}
	if list[3].Type != ATTR_STYLE {
		t.Errorf("insert did not land last among equal starts: %v", list[3])
	}
}

func TestAttrListChange(t *testing.T) {
	var list AttrList
	list.change(attrWithRange(NewAttrWeight(WEIGHT_BOLD), 0, 10))
	list.change(attrWithRange(NewAttrWeight(WEIGHT_NORMAL), 3, 6))
	checkSorted(t, list, "change")

	// the bold attribute is trimmed around the normal one
	var bolds, normals int
	for _, a := range list {
		if a.Type != ATTR_WEIGHT {
			continue
		}
		switch Weight(a.Data.(AttrInt)) {
		case WEIGHT_BOLD:
			bolds++
			if !(a.StartIndex == 0 && a.EndIndex == 3) && !(a.StartIndex == 6 && a.EndIndex == 10) {
				t.Errorf("unexpected bold fragment [%d,%d)", a.StartIndex, a.EndIndex)
			}
		case WEIGHT_NORMAL:
			normals++
			if a.StartIndex != 3 || a.EndIndex != 6 {
				t.Errorf("normal fragment [%d,%d), want [3,6)", a.StartIndex, a.EndIndex)
			}
		}
	}
	if bolds != 2 || normals != 1 {
		t.Errorf("got %d bold, %d normal fragments, want 2 and 1", bolds, normals)
	}

	// empty ranges are dropped silently
	before := len(list)
	list.change(attrWithRange(NewAttrWeight(WEIGHT_BOLD), 5, 5))
	if len(list) != before {
		t.Error("change with empty range modified the list")
	}
}

func TestAttrListChangeMergesIdentical(t *testing.T) {
	var list AttrList
	list.change(attrWithRange(NewAttrWeight(WEIGHT_BOLD), 0, 5))
	list.change(attrWithRange(NewAttrWeight(WEIGHT_BOLD), 0, 5))
	if len(list) != 1 {
		t.Fatalf("identical change duplicated the attribute: %d entries", len(list))
	}
}

func TestAttrListChangeMergesAdjoining(t *testing.T) {
	var list AttrList
	list.change(attrWithRange(NewAttrWeight(WEIGHT_BOLD), 0, 5))
	list.change(attrWithRange(NewAttrWeight(WEIGHT_BOLD), 5, 10))
	if len(list) != 1 {
		t.Fatalf("adjoining identical ranges left %d entries, want 1 merged", len(list))
	}
	if list[0].StartIndex != 0 || list[0].EndIndex != 10 {
		t.Errorf("merged range = [%d,%d), want [0,10)", list[0].StartIndex, list[0].EndIndex)
	}

	// extending from the other side merges too
	list.change(attrWithRange(NewAttrWeight(WEIGHT_BOLD), 10, 12))
	list.change(attrWithRange(NewAttrWeight(WEIGHT_BOLD), 14, 16))
	if len(list) != 2 {
		t.Fatalf("got %d entries, want merged [0,12) plus separate [14,16)", len(list))
	}
	if list[0].EndIndex != 12 {
		t.Errorf("first range ends at %d, want 12", list[0].EndIndex)
	}

	// an adjoining attribute with a different value stays separate
	list.change(attrWithRange(NewAttrWeight(WEIGHT_NORMAL), 12, 14))
	if len(list) != 3 {
		t.Fatalf("different-value neighbor merged: %d entries", len(list))
	}
}

func TestAttrListUpdate(t *testing.T) {
	var list AttrList
	list.insert(attrWithRange(NewAttrWeight(WEIGHT_BOLD), 5, 15))
	list.insert(attrWithRange(NewAttrStyle(STYLE_ITALIC), 20, 30))

	// delete [8, 12), insert 2 chars: weight straddles, style translates
	list.update(8, 4, 2)
	checkSorted(t, list, "update")

	if list[0].StartIndex != 5 || list[0].EndIndex != 13 {
		t.Errorf("straddler clipped to [%d,%d), want [5,13)", list[0].StartIndex, list[0].EndIndex)
	}
	if list[1].StartIndex != 18 || list[1].EndIndex != 28 {
		t.Errorf("follower moved to [%d,%d), want [18,28)", list[1].StartIndex, list[1].EndIndex)
	}
}

// Splicing a list into the
// middle stretches the surrounding attributes and overlays the new ones at
// the given offset.
func TestAttrListSplice(t *testing.T) {
	var l1 AttrList
	l1.insert(attrWithRange(NewAttrFamily("serif"), 0, 10))
	l1.insert(attrWithRange(NewAttrWeight(WEIGHT_BOLD), 2, 5))

	var l2 AttrList
	l2.insert(attrWithRange(NewAttrStyle(STYLE_ITALIC), 0, 3))

	l1.splice(l2, 6, 3)
	checkSorted(t, l1, "splice")

	want := map[AttrType][2]int{
		ATTR_FAMILY: {0, 13},
		ATTR_WEIGHT: {2, 5},
		ATTR_STYLE:  {6, 9},
	}
	if len(l1) != len(want) {
		t.Fatalf("got %d attributes, want %d: %v", len(l1), len(want), l1)
	}
	for _, a := range l1 {
		w, ok := want[a.Type]
		if !ok {
			t.Errorf("unexpected attribute %v", a.Type)
			continue
		}
		if a.StartIndex != w[0] || a.EndIndex != w[1] {
			t.Errorf("%v covers [%d,%d), want [%d,%d)", a.Type, a.StartIndex, a.EndIndex, w[0], w[1])
		}
	}
}

func TestAttrListFilterAndEqual(t *testing.T) {
	var list AttrList
	list.insert(attrWithRange(NewAttrFamily("serif"), 0, 10))
	list.insert(attrWithRange(NewAttrLetterSpacing(256), 0, 10))
	list.insert(attrWithRange(NewAttrForeground(Color{Red: 0xffff}), 0, 10))

	breaking := list.filter(affectsBreakOrShape)
	if len(breaking) != 1 || breaking[0].Type != ATTR_LETTER_SPACING {
		t.Fatalf("filter(breakOrShape) = %v", breaking)
	}
	if len(list) != 2 {
		t.Fatalf("filter left %d entries, want 2", len(list))
	}

	other := list.pango_attr_list_copy()
	if !list.equal(other) {
		t.Error("copy not equal to original")
	}
	other[0].EndIndex = 5
	if list.equal(other) {
		t.Error("lists with different ranges reported equal")
	}
}
