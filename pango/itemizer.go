package pango

import (
	"log"
	"unicode"

	"github.com/benoitkugler/textlayout/fribidi"
)

// Itemize divides text[startIndex:startIndex+length] into items: maximal
// runs over which direction, script, language, font and orientation are
// all constant. Items come back in logical order (ascending offsets), each
// holding a live font reference.
//
// `cachedIter` may carry an iterator over `attrs` already positioned at or
// before startIndex, so a caller itemizing a long text piecewise does not
// re-walk the attribute list from the top every call.
func (context *Context) Itemize(text []rune, startIndex, length int,
	attrs AttrList, cachedIter *AttrIterator) *ItemList {
	if context == nil || startIndex < 0 || length < 0 {
		return nil
	}
	return context.itemizeWithBaseDir(context.base_dir, text, startIndex, length, attrs, cachedIter)
}

// itemizeWithBaseDir is Itemize with the paragraph direction supplied by
// the caller instead of taken from the context.
func (context *Context) itemizeWithBaseDir(baseDir Direction, text []rune,
	startIndex, length int, attrs AttrList, cachedIter *AttrIterator) *ItemList {
	if context == nil || len(text) == 0 || length == 0 {
		return nil
	}

	items := newItemizer(context, text, baseDir, startIndex, length, attrs, cachedIter, nil).run()

	var out *ItemList
	for k := len(items) - 1; k >= 0; k-- {
		items[k].NumChars = items[k].Length
		out = &ItemList{Data: items[k], Next: out}
	}
	return out
}

// itemizeWithFont itemizes against an explicit font description with no
// attribute list, used when measuring sample text for font metrics.
func (context *Context) itemizeWithFont(text []rune, desc *FontDescription) []*Item {
	if len(text) == 0 {
		return nil
	}
	items := newItemizer(context, text, context.base_dir, 0, len(text), nil, nil, desc).run()
	for _, item := range items {
		item.NumChars = item.Length
	}
	return items
}

// itemizerChanges records which run properties changed at the segment
// boundary just crossed, so refreshRunState only recomputes what it must.
type itemizerChanges uint8

const (
	changedEmbedding itemizerChanges = 1 << iota
	changedScript
	changedLang
	changedFont
	changedDerivedLang
	changedOrientation
	changedEmoji
)

// itemizer walks the text once, left to right, tracking one cursor per
// property source (bidi level, attributes, script, emoji presentation,
// vertical orientation). The end of the current homogeneous segment is the
// minimum of the cursors' ends; within a segment, items still split
// whenever the chosen font changes from one character to the next.
type itemizer struct {
	context *Context
	text    []rune
	start   int // first index itemized
	end     int // one past the last index itemized

	runStart, runEnd int // the current homogeneous segment

	// bidi levels, one per rune of [start, end), and the current level run
	levels   []fribidi.Level
	level    fribidi.Level
	levelEnd int

	attrIter *AttrIterator
	attrEnd  int

	scripts scriptIter
	orient  orientationIter
	emoji   EmojiIter

	changed itemizerChanges

	// attribute-derived state, refreshed when the attr cursor moves
	fontDesc        *FontDescription
	fontDescGravity Gravity
	emojiDesc       *FontDescription
	lang            Language
	extraAttrs      AttrList
	fallbackOK      bool
	gravity         Gravity
	gravityHint     GravityHint

	// state derived per segment
	resolvedGravity  Gravity
	centeredBaseline bool
	derivedLang      Language

	fonts    Fontset
	cache    *runeFontCache
	baseFont Font

	items []*Item // accumulated result, logical order
	cur   *Item   // last entry of items while still open
}

func newItemizer(context *Context, text []rune, baseDir Direction,
	startIndex, length int, attrs AttrList, cachedIter *AttrIterator,
	desc *FontDescription) *itemizer {

	i := &itemizer{
		context: context,
		text:    text,
		start:   startIndex,
		end:     startIndex + length,
	}

	i.changed = changedEmbedding | changedScript | changedLang |
		changedFont | changedOrientation | changedEmoji

	_, i.levels = pango_log2vis_get_embedding_levels(text[startIndex:i.end], baseDir)
	i.levelEnd = startIndex
	i.nextLevelRun()

	switch {
	case cachedIter != nil:
		i.attrIter = cachedIter
	case len(attrs) != 0:
		i.attrIter = attrs.pango_attr_list_get_iterator()
	}

	if i.attrIter != nil {
		i.attrIter.advanceTo(startIndex)
		i.refreshAttrs()
	} else {
		if desc == nil {
			cp := context.fontDesc
			i.fontDesc = &cp
		} else {
			i.fontDesc = desc
		}
		i.lang = context.language
		i.attrEnd = i.end
		i.fallbackOK = true
	}

	i.scripts.reset(text, startIndex, length)
	i.orient.reset(text, startIndex, length)
	i.emoji.reset(text, startIndex, length)
	if i.emoji.isEmoji {
		i.orient.end = max(i.orient.end, i.emoji.end)
	}

	if i.fontDesc.mask&FmGravity != 0 {
		i.fontDescGravity = i.fontDesc.Gravity
	} else {
		i.fontDescGravity = GRAVITY_AUTO
	}
	i.gravity = GRAVITY_AUTO
	i.gravityHint = context.gravity_hint
	i.resolvedGravity = GRAVITY_AUTO
	i.centeredBaseline = context.resolved_gravity.IsVertical()

	i.runStart = startIndex
	i.computeRunEnd()

	return i
}

// nextLevelRun loads the level at levelEnd and extends the cursor over the
// whole run of equal levels.
func (i *itemizer) nextLevelRun() {
	i.level = i.levels[i.levelEnd-i.start]
	for i.levelEnd < i.end && i.levels[i.levelEnd-i.start] == i.level {
		i.levelEnd++
	}
}

func (i *itemizer) computeRunEnd() {
	i.runEnd = i.levelEnd
	if i.attrEnd < i.runEnd {
		i.runEnd = i.attrEnd
	}
	if i.scripts.runEnd < i.runEnd {
		i.runEnd = i.scripts.runEnd
	}
	if i.orient.end < i.runEnd {
		i.runEnd = i.orient.end
	}
	if i.emoji.end < i.runEnd {
		i.runEnd = i.emoji.end
	}
}

// nextSegment moves past runEnd, stepping every cursor that stops there,
// and returns false once the whole text has been consumed.
func (i *itemizer) nextSegment() bool {
	if i.runEnd == i.end {
		return false
	}

	i.changed = 0
	i.runStart = i.runEnd

	if i.runEnd == i.levelEnd {
		i.nextLevelRun()
		i.changed |= changedEmbedding
	}
	if i.runEnd == i.attrEnd {
		i.attrIter.pango_attr_iterator_next()
		i.refreshAttrs()
	}
	if i.runEnd == i.scripts.runEnd {
		i.scripts.next()
		i.changed |= changedScript
	}
	if i.runEnd == i.emoji.end {
		i.emoji.next()
		i.changed |= changedEmoji
		if i.emoji.isEmoji {
			i.orient.end = max(i.orient.end, i.emoji.end)
		}
	}
	if i.runEnd == i.orient.end {
		i.orient.next()
		i.changed |= changedOrientation
	}

	i.computeRunEnd()
	return true
}

// refreshAttrs recomputes the attribute-derived state from the iterator's
// current interval: the effective font description (context default merged
// with the open font attributes), language, fallback policy, gravity
// override, and the extra attributes every item of the interval carries.
func (i *itemizer) refreshAttrs() {
	i.attrEnd = i.attrIter.EndIndex
	if i.attrEnd > i.end {
		i.attrEnd = i.end
	}

	i.emojiDesc = nil

	oldLang := i.lang

	cp := i.context.fontDesc
	i.fontDesc = &cp
	i.lang = ""
	i.attrIter.pango_attr_iterator_get_font(i.fontDesc, &i.lang, &i.extraAttrs)

	if i.fontDesc.mask&FmGravity != 0 {
		i.fontDescGravity = i.fontDesc.Gravity
	} else {
		i.fontDescGravity = GRAVITY_AUTO
	}

	if i.lang == "" {
		i.lang = i.context.language
	}

	i.fallbackOK = true
	if attr := i.extraAttrs.findType(ATTR_FALLBACK); attr != nil {
		i.fallbackOK = attr.Data.(AttrInt) != 0
	}

	i.gravity = GRAVITY_AUTO
	if attr := i.extraAttrs.findType(ATTR_GRAVITY); attr != nil {
		i.gravity = Gravity(attr.Data.(AttrInt))
	}

	i.gravityHint = i.context.gravity_hint
	if attr := i.extraAttrs.findType(ATTR_GRAVITY_HINT); attr != nil {
		i.gravityHint = GravityHint(attr.Data.(AttrInt))
	}

	i.changed |= changedFont
	if i.lang != oldLang {
		i.changed |= changedLang
	}
}

// refreshRunState settles the per-segment derived state before characters
// are consumed: the resolved gravity (font-description gravity overrides
// everything, otherwise the gravity attribute or the context gravity is
// composed with the script and orientation), the derived language, and the
// fontset serving this segment.
func (i *itemizer) refreshRunState() {
	if i.changed&(changedFont|changedScript|changedOrientation) != 0 {
		if i.fontDescGravity != GRAVITY_AUTO {
			i.resolvedGravity = i.fontDescGravity
		} else {
			gravity := i.gravity
			if gravity == GRAVITY_AUTO {
				gravity = i.context.resolved_gravity
			}
			i.resolvedGravity = pango_gravity_get_for_script_and_width(
				i.scripts.script, i.orient.upright, gravity, i.gravityHint)
		}

		if i.fontDescGravity != i.resolvedGravity {
			i.fontDesc.SetGravity(i.resolvedGravity)
			i.changed |= changedFont
		}
	}

	if i.changed&(changedScript|changedLang) != 0 {
		derived := compute_derived_language(i.lang, i.scripts.script)
		if derived != i.derivedLang {
			i.derivedLang = derived
			i.changed |= changedDerivedLang
		}
	}

	if i.changed&changedEmoji != 0 {
		i.changed |= changedFont
	}

	if i.changed&(changedFont|changedDerivedLang) != 0 {
		i.fonts = nil
		i.cache = nil
	}

	if i.fonts == nil {
		desc := i.fontDesc
		if i.emoji.isEmoji {
			if i.emojiDesc == nil {
				cp := *i.fontDesc
				i.emojiDesc = &cp
				i.emojiDesc.SetFamily("emoji")
			}
			desc = i.emojiDesc
		}
		i.fonts = i.context.fontMap.LoadFontset(i.context, desc, i.derivedLang)
		i.cache = getFontCache(i.fonts)
	}

	if i.changed&changedFont != 0 {
		i.baseFont = nil
	}
}

// run drives the itemizer over the whole text and returns the items.
func (i *itemizer) run() []*Item {
	for {
		i.refreshRunState()
		i.itemizeRun()
		if !i.nextSegment() {
			break
		}
	}
	return i.items
}

// itemizeRun consumes the characters of the current segment, extending the
// open item while the chosen font stays the same and cutting a new one
// when it changes (or at a forced break).
func (i *itemizer) itemizeRun() {
	if debugMode {
		assert(i.runEnd > i.runStart, "itemizeRun: empty segment")
	}

	lastWasForcedBreak := false
	for pos := i.runStart; pos < i.runEnd; pos++ {
		wc := i.text[pos]

		// Tabs and line/paragraph terminators are kept as their own items
		// so the line breaker can consume them one at a time.
		isForcedBreak := wc == '\t' || wc == '\n' || wc == '\r' ||
			wc == LINE_SEPARATOR || wc == PARAGRAPH_SEPARATOR

		var font Font
		if !fontIrrelevantRune(wc) {
			font = i.chooseFont(wc)
		}

		i.addChar(font, isForcedBreak || lastWasForcedBreak, pos)
		lastWasForcedBreak = isForcedBreak
	}

	// close the item covering the tail of the segment
	i.cur.Length = i.runEnd - i.cur.Offset
	if i.cur.Analysis.Font == nil {
		font := i.chooseFont(' ')
		if font == nil && shouldWarn(i.context.fontMap, i.scripts.script) {
			log.Printf("failed to choose a font for script %s: expect ugly output", i.scripts.script)
		}
		i.fillFontBackward(font)
	}
	i.cur = nil
}

// fontIrrelevantRune reports whether `wc` should not influence font
// selection: control, format and separator characters, ordinary spaces
// (every font is assumed to carry the ASCII space; U+1680 OGHAM SPACE MARK
// is the one space with a visible glyph of its own), and variation
// selectors, which modify the preceding character rather than stand alone.
func fontIrrelevantRune(wc rune) bool {
	if unicode.In(wc, unicode.Cc, unicode.Cf, unicode.Cs, unicode.Zl, unicode.Zp) {
		return true
	}
	if unicode.Is(unicode.Zs, wc) && wc != '\u1680' {
		return true
	}
	return (wc >= 0xFE00 && wc <= 0xFE0F) ||
		(wc >= 0xE0100 && wc <= 0xE01EF)
}

// addChar folds the character at `pos` into the open item, or starts a new
// one. A nil font inherits the open item's font; a newly found font
// back-fills items that accumulated without one.
func (i *itemizer) addChar(font Font, forceBreak bool, pos int) {
	if i.cur != nil {
		if i.cur.Analysis.Font == nil && font != nil {
			i.fillFontBackward(font)
		} else if i.cur.Analysis.Font != nil && font == nil {
			font = i.cur.Analysis.Font
		}

		if !forceBreak && i.cur.Analysis.Font == font {
			i.cur.Length++
			return
		}

		i.cur.Length = pos - i.cur.Offset
	}

	item := &Item{Offset: pos, Length: 1}
	item.Analysis.Font = font
	item.Analysis.Level = i.level
	item.Analysis.Gravity = i.resolvedGravity

	// The level vs. gravity dance, mirrored by the line breaker's resolved
	// direction:
	//   South: level untouched.
	//   North: one level up, so the upside-down text is not also mirrored.
	//   East:  up to an even level; the rotated top is the unrotated left.
	//   West:  up to an odd level; the rotated top is the unrotated right.
	switch i.resolvedGravity {
	case GRAVITY_NORTH:
		item.Analysis.Level++
	case GRAVITY_EAST:
		item.Analysis.Level = (item.Analysis.Level + 1) &^ 1
	case GRAVITY_WEST:
		item.Analysis.Level |= 1
	}

	if i.centeredBaseline {
		item.Analysis.Flags = AFCenteredBaseline
	}

	item.Analysis.Script = i.scripts.script
	item.Analysis.Language = i.derivedLang
	item.Analysis.ExtraAttrs = append(AttrList(nil), i.extraAttrs...)

	i.items = append(i.items, item)
	i.cur = item
}

// fillFontBackward assigns `font` to the trailing stretch of items that
// have none yet (the open item and any predecessors a font-irrelevant
// prefix produced).
func (i *itemizer) fillFontBackward(font Font) {
	if font == nil {
		return
	}
	for k := len(i.items) - 1; k >= 0; k-- {
		if i.items[k].Analysis.Font != nil {
			break
		}
		i.items[k].Analysis.Font = font
	}
}

// chooseFont picks the first font of the segment's fontset that covers
// `wc`, consulting the per-fontset cache. With fallback disabled by an
// attribute, the base font for the segment's description is used whether
// or not it covers the character.
func (i *itemizer) chooseFont(wc rune) Font {
	if !i.fallbackOK {
		if i.baseFont == nil {
			i.baseFont = LoadFont(i.context.fontMap, i.context, i.fontDesc)
		}
		return i.baseFont
	}

	if font, ok := i.cache.get(wc); ok {
		return font
	}

	var chosen Font
	i.fonts.Foreach(func(font Font) bool {
		if font != nil && pango_font_has_char(font, wc) {
			chosen = font
			return true
		}
		return false
	})

	i.cache.put(wc, chosen)
	return chosen
}

/* orientation segments */

// orientationIter partitions text into segments that are uniformly upright
// or uniformly rotated in vertical gravities. Zero-width joiners glue the
// following character to the current segment, and variation selectors,
// tags and emoji modifiers never cause a boundary of their own.
type orientationIter struct {
	text    []rune
	textEnd int

	start, end int
	upright    bool
}

func (it *orientationIter) reset(text []rune, textStart, length int) {
	it.text = text
	it.textEnd = textStart + length
	it.start, it.end = textStart, textStart
	it.next()
}

func (it *orientationIter) next() {
	it.start = it.end
	if it.end < it.textEnd {
		it.upright = uprightRune(it.text[it.end])
	}

	joined := false
	for it.end < it.textEnd {
		r := it.text[it.end]

		if r == 0x200D { // zero-width joiner
			it.end++
			joined = true
			continue
		}
		if joined {
			it.end++
			joined = false
			continue
		}
		if r == 0xFE0E || r == 0xFE0F ||
			(r >= 0xE0020 && r <= 0xE007F) || (r >= 0x1F3FB && r <= 0x1F3FF) {
			it.end++
			continue
		}

		if uprightRune(r) != it.upright {
			break
		}
		it.end++
	}
}

// uprightRune approximates the Unicode Vertical_Orientation=U property:
// wide East Asian characters plus the blocks that stay upright in vertical
// text. The approximation only places segment boundaries; per-glyph
// orientation is the shaper's concern.
func uprightRune(r rune) bool {
	if isWide(r) {
		return true
	}
	switch {
	case r >= 0xA960 && r <= 0xA97F: // Hangul Jamo Extended-A
		return true
	case r >= 0xD7B0 && r <= 0xD7FF: // Hangul Jamo Extended-B
		return true
	case r >= 0xFE10 && r <= 0xFE1F: // Vertical Forms
		return true
	case r >= 0x1B000 && r <= 0x1B2FF: // Kana Supplement/Extended
		return true
	case r >= 0x1F000 && r <= 0x1FAFF: // Mahjong ... Symbols and Pictographs
		return true
	}
	return false
}

/* result post-processing */

// analysisEqual reports whether two analyses would shape identically, used
// when deciding whether adjacent items may collapse back into one.
func analysisEqual(a, b *Analysis) bool {
	return a.Font == b.Font &&
		a.Level == b.Level &&
		a.Gravity == b.Gravity &&
		a.Flags == b.Flags &&
		a.Script == b.Script &&
		a.Language == b.Language &&
		AttrList(a.ExtraAttrs).equal(b.ExtraAttrs)
}

// itemStartsForcedRun reports whether the item must stay its own run: tabs
// and line/paragraph terminators are consumed one item at a time by the
// line breaker.
func itemStartsForcedRun(text []rune, item *Item) bool {
	switch text[item.Offset] {
	case '\t', '\n', '\r', LINE_SEPARATOR, PARAGRAPH_SEPARATOR:
		return true
	}
	return false
}

// postProcessItems finishes an itemization result before the line breaker
// consumes it: adjacent items whose analyses collapsed to the same values
// are merged back together, and every item is stamped with its character
// offset so later splits can be done by char counts alone.
func (context *Context) postProcessItems(text []rune, items *ItemList) *ItemList {
	if items == nil {
		return nil
	}

	for l := items; l.Next != nil; {
		item, next := l.Data, l.Next.Data
		crlf := item.Length == 1 && text[item.Offset] == '\r' &&
			next.Length == 1 && text[next.Offset] == '\n'
		if item.Offset+item.Length == next.Offset &&
			(crlf || (!itemStartsForcedRun(text, next) && !itemStartsForcedRun(text, item) &&
				analysisEqual(&item.Analysis, &next.Analysis))) {
			item.Length += next.Length
			l.Next = l.Next.Next
			continue
		}
		l = l.Next
	}

	charOffset := 0
	for l := items; l != nil; l = l.Next {
		// offsets index the rune slice, so the char count is the length
		l.Data.NumChars = l.Data.Length
		l.Data.CharOffset = charOffset
		l.Data.Analysis.Flags |= AFHasCharOffset
		charOffset += l.Data.NumChars
	}

	return items
}
