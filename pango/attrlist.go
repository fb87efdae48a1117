package pango

import "sort"

// AttrList is an unordered-on-the-wire, sorted-by-start-index-in-memory set
// of attributes applying to some paragraph of text.
// pango_attr_list_get_iterator is defined in attriter.go.
type AttrList []*Attribute

// findType returns the first attribute of type `t` in list order, or nil.
func (list AttrList) findType(t AttrType) *Attribute {
	for _, attr := range list {
		if attr.Type == t {
			return attr
		}
	}
	return nil
}

func (list *AttrList) sortByStart() {
	sort.SliceStable(*list, func(i, j int) bool {
		return (*list)[i].StartIndex < (*list)[j].StartIndex
	})
}

// insert adds `attr` to the list, after any existing attribute with the
// same start index, so that of two attributes covering the same range the
// one inserted later takes priority on the iterator's stack.
func (list *AttrList) insert(attr *Attribute) {
	i := sort.Search(len(*list), func(i int) bool {
		return (*list)[i].StartIndex > attr.StartIndex
	})
	*list = append(*list, nil)
	copy((*list)[i+1:], (*list)[i:])
	(*list)[i] = attr
}

// insertBefore is the same as insert, except among attributes sharing
// `attr`'s start index it is placed first rather than last, giving it the
// lowest priority of that group.
func (list *AttrList) insertBefore(attr *Attribute) {
	i := sort.Search(len(*list), func(i int) bool {
		return (*list)[i].StartIndex >= attr.StartIndex
	})
	*list = append(*list, nil)
	copy((*list)[i+1:], (*list)[i:])
	(*list)[i] = attr
}

// change merges `attr` into the list: existing attributes of the same type
// with a different value are trimmed around attr's range (split in two if
// attr falls strictly inside them), while same-value attributes that
// overlap or exactly adjoin attr's range are absorbed into it, so an
// identical neighbor never survives as a separate entry. Empty ranges are
// dropped.
func (list *AttrList) change(attr *Attribute) {
	if attr.StartIndex >= attr.EndIndex {
		return
	}
	if len(*list) == 0 {
		list.insert(attr)
		return
	}

	var result AttrList
	for _, existing := range *list {
		if existing.Type != attr.Type ||
			existing.EndIndex < attr.StartIndex || existing.StartIndex > attr.EndIndex {
			// no contact: adjoining ranges (end == start) deliberately fall
			// through to the merge/trim handling below
			result = append(result, existing)
			continue
		}
		if existing.equalValue(attr) {
			// identical value, overlapping or adjoining: grow attr over the
			// union and drop the old entry
			attr.StartIndex = min(attr.StartIndex, existing.StartIndex)
			attr.EndIndex = max(attr.EndIndex, existing.EndIndex)
			continue
		}
		// different value: keep whatever of the existing attribute sticks
		// out on either side of attr's range
		if existing.StartIndex < attr.StartIndex {
			left := existing.copy()
			left.EndIndex = attr.StartIndex
			result = append(result, left)
		}
		if existing.EndIndex > attr.EndIndex {
			right := existing.copy()
			right.StartIndex = attr.EndIndex
			result = append(result, right)
		}
	}
	result = append(result, attr)
	result.sortByStart()
	*list = result
}

// update adjusts every attribute's range for a text edit at byte offset
// `pos` that removed `remove` bytes and inserted `add` bytes, growing or
// shrinking attributes whose range straddles the edit and shifting those
// entirely after it.
func (list AttrList) update(pos, remove, add int) {
	for _, attr := range list {
		switch {
		case attr.StartIndex >= pos+remove:
			attr.StartIndex = clampAddIndex(attr.StartIndex, add-remove)
		case attr.StartIndex >= pos:
			attr.StartIndex = pos
		}
		switch {
		case attr.EndIndex >= pos+remove:
			attr.EndIndex = clampAddIndex(attr.EndIndex, add-remove)
		case attr.EndIndex >= pos:
			attr.EndIndex = pos
		}
	}
}

func clampAddIndex(x, delta int) int {
	if x == MaxInt {
		return MaxInt
	}
	return x + delta
}

// splice inserts `other`'s attributes into `list` at byte offset `pos`,
// first stretching every attribute of `list` that extends past `pos` by
// `length` bytes to make room, then overlaying each of `other`'s attributes
// (shifted by `pos`) via change.
func (list *AttrList) splice(other AttrList, pos, length int) {
	list.update(pos, 0, length)
	for _, attr := range other {
		cp := attr.copy()
		cp.StartIndex = clampAddIndex(attr.StartIndex, pos)
		cp.EndIndex = clampAddIndex(attr.EndIndex, pos)
		list.change(cp)
	}
}

// filter removes every attribute matching `pred` from the list and returns
// them as a new list, preserving their relative order.
func (list *AttrList) filter(pred func(*Attribute) bool) AttrList {
	var matched, rest AttrList
	for _, attr := range *list {
		if pred(attr) {
			matched = append(matched, attr)
		} else {
			rest = append(rest, attr)
		}
	}
	*list = rest
	return matched
}

// pango_attr_list_copy returns a deep copy of the list.
func (list AttrList) pango_attr_list_copy() AttrList {
	if list == nil {
		return nil
	}
	cp := make(AttrList, len(list))
	for i, attr := range list {
		cp[i] = attr.copy()
	}
	return cp
}

// equal reports whether `list` and `other` contain the same set of
// attributes, in any order: every attribute in one must have an unused
// match (same type, range and value) in the other.
func (list AttrList) equal(other AttrList) bool {
	if len(list) != len(other) {
		return false
	}
	used := make([]bool, len(other))
	for _, a := range list {
		found := false
		for i, b := range other {
			if used[i] {
				continue
			}
			if a.pango_attribute_equal(b) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
