package pango

// AttrIterator walks an AttrList as a sequence of half-open, piecewise
// constant intervals [StartIndex, EndIndex), each with a stack of the
// attributes currently open over that interval, topmost (last pushed) entry
// having highest priority. Constructed by AttrList.pango_attr_list_get_iterator.
type AttrIterator struct {
	StartIndex int
	EndIndex   int

	list      AttrList // sorted by StartIndex, ascending, stable
	attrIndex int      // index of the next attribute not yet pushed onto the stack
	stack     []*Attribute
}

// pango_attr_list_get_iterator returns an iterator positioned at the first
// interval of `attrs` ([0, end) for whatever end the first boundary is).
func (attrs AttrList) pango_attr_list_get_iterator() *AttrIterator {
	sorted := append(AttrList(nil), attrs...)
	sorted.sortByStart()
	it := &AttrIterator{list: sorted}
	it.pango_attr_iterator_next()
	return it
}

// pango_attr_iterator_next advances to the next interval, returning false
// once the interval it leaves behind was the last one (the text has no more
// attribute boundaries past it).
func (it *AttrIterator) pango_attr_iterator_next() bool {
	if it.EndIndex == MaxInt {
		return false
	}
	it.StartIndex = it.EndIndex

	kept := it.stack[:0]
	for _, a := range it.stack {
		if a.EndIndex > it.StartIndex {
			kept = append(kept, a)
		}
	}
	it.stack = kept

	for it.attrIndex < len(it.list) && it.list[it.attrIndex].StartIndex <= it.StartIndex {
		it.stack = append(it.stack, it.list[it.attrIndex])
		it.attrIndex++
	}

	end := MaxInt
	for _, a := range it.stack {
		if a.EndIndex < end {
			end = a.EndIndex
		}
	}
	if it.attrIndex < len(it.list) && it.list[it.attrIndex].StartIndex < end {
		end = it.list[it.attrIndex].StartIndex
	}
	it.EndIndex = end

	return len(it.stack) > 0 || it.attrIndex < len(it.list)
}

// advanceTo drives the iterator forward until its interval covers `index`,
// returning false if the iterator runs out first. Iterators only move
// forward; callers needing an earlier position keep a copy (see
// AttrIterator.copy).
func (it *AttrIterator) advanceTo(index int) bool {
	for index >= it.EndIndex {
		if !it.pango_attr_iterator_next() {
			return false
		}
	}
	return true
}

// get returns the highest-priority attribute of type `t` open over the
// current interval, or nil.
func (it *AttrIterator) get(t AttrType) *Attribute {
	for i := len(it.stack) - 1; i >= 0; i-- {
		if it.stack[i].Type == t {
			return it.stack[i]
		}
	}
	return nil
}

// attrs returns every attribute open over the current interval, in the
// order they were pushed (lowest to highest priority).
func (it *AttrIterator) attrs() []*Attribute {
	return it.stack
}

// copy duplicates the iterator's position so the copy can be advanced
// independently of the original.
func (it *AttrIterator) copy() *AttrIterator {
	cp := &AttrIterator{
		list:       it.list,
		attrIndex:  it.attrIndex,
		StartIndex: it.StartIndex,
		EndIndex:   it.EndIndex,
	}
	cp.stack = append([]*Attribute(nil), it.stack...)
	return cp
}

// pango_attr_iterator_get_font collapses the current interval's attribute
// stack into a FontDescription (merged onto `desc`, which the caller has
// already seeded with its own defaults), a Language (written to `*lang` if
// an ATTR_LANGUAGE is open and `*lang` is not already set), and a list of
// the remaining attributes the shaper and renderer need but which have no
// place in a FontDescription. Attribute types classified Accumulates
// (ATTR_FONT_DESC, ATTR_FONT_FEATURES) contribute every open instance;
// every other type contributes only its highest-priority instance.
func (it *AttrIterator) pango_attr_iterator_get_font(desc *FontDescription, lang *Language, extraAttrs *AttrList) {
	var scale float64 = 1
	haveScale := false
	seen := map[AttrType]bool{}
	var extra AttrList

	for i := len(it.stack) - 1; i >= 0; i-- {
		attr := it.stack[i]
		switch attr.Type {
		case ATTR_FAMILY:
			if desc.mask&FmFamily == 0 {
				desc.SetFamily(string(attr.Data.(AttrString)))
			}
		case ATTR_STYLE:
			if desc.mask&FmStyle == 0 {
				desc.SetStyle(Style(attr.Data.(AttrInt)))
			}
		case ATTR_VARIANT:
			if desc.mask&FmVariant == 0 {
				desc.SetVariant(Variant(attr.Data.(AttrInt)))
			}
		case ATTR_WEIGHT:
			if desc.mask&FmWeight == 0 {
				desc.SetWeight(Weight(attr.Data.(AttrInt)))
			}
		case ATTR_STRETCH:
			if desc.mask&FmStretch == 0 {
				desc.SetStretch(Stretch(attr.Data.(AttrInt)))
			}
		case ATTR_SIZE:
			if desc.mask&FmSize == 0 {
				desc.SetSize(int32(attr.Data.(AttrInt)))
			}
		case ATTR_ABSOLUTE_SIZE:
			if desc.mask&FmSize == 0 {
				desc.SetAbsoluteSize(int32(attr.Data.(AttrInt)))
			}
		case ATTR_GRAVITY:
			if desc.mask&FmGravity == 0 {
				desc.SetGravity(Gravity(attr.Data.(AttrInt)))
			}
		case ATTR_FONT_DESC:
			other := FontDescription(attr.Data.(AttrFontDesc))
			desc.mergeFrom(other, false)
		case ATTR_LANGUAGE:
			if *lang == "" {
				*lang = Language(attr.Data.(AttrLanguage))
			}
		case ATTR_SCALE:
			scale *= float64(attr.Data.(AttrFloat))
			haveScale = true
		default:
			// overriding types contribute only their topmost instance;
			// accumulating ones (font-features, baseline-shift, font-scale)
			// all ride along
			if attr.Type.info().merge == AttrMergeOverrides {
				if seen[attr.Type] {
					continue
				}
				seen[attr.Type] = true
			}
			extra = append(extra, attr)
		}
	}

	if haveScale && desc.size != 0 && !desc.sizeIsAbsolute {
		desc.size = int32(float64(desc.size) * scale)
	}

	*extraAttrs = extra
}
