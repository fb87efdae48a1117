package pango

import "github.com/benoitkugler/textlayout/fribidi"

// AnalysisFlags records boolean facts about an Item discovered during
// itemization, folded into a single bitset the way upstream Pango packs
// them into Analysis.flags.
type AnalysisFlags uint8

const (
	// AFCenteredBaseline marks an item that should have its baseline
	// centered on the line, for vertical text with upright glyphs.
	AFCenteredBaseline AnalysisFlags = 1 << iota
	// AFIsEllipsis marks an item produced by ellipsization rather than by
	// itemizing the original text.
	AFIsEllipsis
	// AFNeedHyphen marks an item that should have a hyphen appended when a
	// line break is taken immediately after it.
	AFNeedHyphen
	// AFHasCharOffset marks an item for which CharOffset has been filled in
	// by the itemizer's post-processing pass.
	AFHasCharOffset
)

// PANGO_ANALYSIS_FLAG_CENTERED_BASELINE is the upstream name for
// AFCenteredBaseline, kept as an alias of it.
const PANGO_ANALYSIS_FLAG_CENTERED_BASELINE = AFCenteredBaseline

// Analysis carries everything the rest of the pipeline (shaping, line
// breaking, rendering) needs to know about a run of uniformly-styled text,
// beyond its raw byte range.
type Analysis struct {
	Font Font

	Level   fribidiLevel // resolved bidi embedding level
	Gravity Gravity

	Flags AnalysisFlags

	Script   Script
	Language Language

	ExtraAttrs AttrList // attributes whose type's affectsLayout() is false, carried through for the renderer
}

// fribidiLevel aliases the embedding-level type of the bidi engine: a small
// integer 0..125, odd meaning RTL.
type fribidiLevel = fribidi.Level

// Item represents a single run of text with uniform script, language,
// font, and bidi level: the unit of output of itemization and of input to
// shaping.
type Item struct {
	Offset     int // byte offset of the run in the paragraph text (here, rune index; see GLOSSARY)
	Length     int // byte length of the run
	NumChars   int // number of characters (runes) in the run
	CharOffset int // character offset of the run in the paragraph text, filled in by the itemizer's post-process pass

	Analysis Analysis
}

// copy returns a deep copy of the item, duplicating its ExtraAttrs slice so
// that mutating the copy's attributes never affects the original (mirrors
// pango_item_copy).
func (it *Item) copy() *Item {
	if it == nil {
		return nil
	}
	cp := *it
	if it.Analysis.ExtraAttrs != nil {
		cp.Analysis.ExtraAttrs = append(AttrList(nil), it.Analysis.ExtraAttrs...)
	}
	return &cp
}

// split divides the item at character offset `charSplit` (0 < charSplit <
// NumChars), with `splitIndex` the corresponding byte offset (0 < splitIndex
// < Length). It returns a new Item covering [0, splitIndex) and mutates the
// receiver in place to cover [splitIndex, Length); extra attributes are
// duplicated onto both halves, matching pango_item_split.
func (it *Item) split(splitIndex, charSplit int) *Item {
	if splitIndex <= 0 || splitIndex >= it.Length {
		panic("pango: split index out of range")
	}
	if charSplit <= 0 || charSplit >= it.NumChars {
		panic("pango: split char offset out of range")
	}

	newItem := it.copy()
	newItem.Length = splitIndex
	newItem.NumChars = charSplit

	it.Offset += splitIndex
	it.Length -= splitIndex
	it.NumChars -= charSplit
	it.CharOffset += charSplit

	return newItem
}

// unsplit is the inverse of split: it extends the receiver leftward to
// absorb `prefix`, which must be the item immediately preceding it with no
// gap (mirrors pango_item_unsplit, used by the line breaker to undo a
// tentative break).
func (it *Item) unsplit(prefix *Item) {
	it.Offset = prefix.Offset
	it.Length += prefix.Length
	it.NumChars += prefix.NumChars
	it.CharOffset = prefix.CharOffset
}

// ItemList is a simple singly linked list of items, used for the line
// breaker's pending-item queue where cheap head insertion and removal
// matter (runs are pushed back on the front during rollback and undo).
type ItemList struct {
	Data *Item
	Next *ItemList
}

// reverseItems reverses a linked list of items in place and returns the new
// head, used where the line breaker builds an item list by prepending and
// must hand back a left-to-right ordered list.
func reverseItems(list *ItemList) *ItemList {
	var prev *ItemList
	for list != nil {
		next := list.Next
		list.Next = prev
		prev = list
		list = next
	}
	return prev
}

// compareAttr reports whether two attributes have the same type, range,
// and value, used by applyAttrs to avoid attaching duplicate attributes to
// an item (mirrors compare_attr in pango-item.c).
func compareAttr(a, b *Attribute) bool {
	if a.Type != b.Type || a.StartIndex != b.StartIndex || a.EndIndex != b.EndIndex {
		return false
	}
	return a.equalValue(b)
}

// applyAttrs copies every attribute from `iter` whose range overlaps the
// item into item.Analysis.ExtraAttrs, skipping attributes already present
// (by compareAttr), and skipping attributes that affect layout (those are
// already baked into Analysis by the itemizer itself). Mirrors
// pango_item_apply_attrs.
func (it *Item) applyAttrs(iter *AttrIterator) {
	start, end := 0, 0
	for more := true; more && start < it.Offset+it.Length; more = iter.pango_attr_iterator_next() {
		start, end = iter.StartIndex, iter.EndIndex
		if end <= it.Offset {
			continue
		}
		if start >= it.Offset+it.Length {
			break
		}
		for _, attr := range iter.attrs() {
			if attr.Type.affectsLayout() {
				continue
			}
			dup := false
			for _, existing := range it.Analysis.ExtraAttrs {
				if compareAttr(existing, attr) {
					dup = true
					break
				}
			}
			if !dup {
				it.Analysis.ExtraAttrs = append(it.Analysis.ExtraAttrs, attr)
			}
		}
	}
}
