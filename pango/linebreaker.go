package pango

import "github.com/go-pango/pangocore/fonts"

// WrapMode determines which break opportunities the line breaker considers
// when a line overflows its width.
type WrapMode uint8

const (
	WRAP_WORD      WrapMode = iota // break only at word boundaries
	WRAP_CHAR                      // break at any grapheme boundary
	WRAP_WORD_CHAR                 // break at word boundaries, falling back to graphemes when a word alone overflows
)

// Characters with the Unicode line/paragraph separator property; only these
// two codepoints carry them.
const (
	LINE_SEPARATOR      = '\u2028'
	PARAGRAPH_SEPARATOR = '\u2029'
)

// itemProperties caches the attribute-derived facts about the head item
// that the breaker consults repeatedly while consuming it.
type itemProperties struct {
	letterSpacing GlyphUnit

	lineHeight         float64
	absoluteLineHeight GlyphUnit
	lineSpacing        GlyphUnit

	shapeSet             bool
	shapeInk, shapeLogical Rectangle

	showingSpace     bool
	noParagraphBreak bool
}

// getProperties extracts itemProperties from the item's extra attributes
// (mirrors pango_item_get_properties).
func (item *Item) getProperties() itemProperties {
	var props itemProperties
	for _, attr := range item.Analysis.ExtraAttrs {
		switch attr.Type {
		case ATTR_LETTER_SPACING:
			props.letterSpacing = GlyphUnit(attr.Data.(AttrInt))
		case ATTR_LINE_HEIGHT:
			props.lineHeight = float64(attr.Data.(AttrFloat))
		case ATTR_ABSOLUTE_LINE_HEIGHT:
			props.absoluteLineHeight = GlyphUnit(attr.Data.(AttrInt))
		case ATTR_LINE_SPACING:
			props.lineSpacing = GlyphUnit(attr.Data.(AttrInt))
		case ATTR_SHAPE:
			shape := attr.Data.(AttrShape)
			props.shapeSet = true
			props.shapeInk = shape.Ink
			props.shapeLogical = shape.Logical
		case ATTR_SHOW:
			props.showingSpace = ShowFlags(attr.Data.(AttrInt))&SHOW_SPACES != 0
		case ATTR_PARAGRAPH:
			props.noParagraphBreak = true
		}
	}
	return props
}

// lastTabState remembers the most recently placed tab run on the current
// line, so later runs can keep adjusting its width for right/center/decimal
// alignment until the alignment is satisfied.
type lastTabState struct {
	glyphs  *GlyphString
	index   int
	width   GlyphUnit
	pos     GlyphUnit
	align   TabAlign
	decimal rune
}

type baselineItem struct {
	attr             *Attribute
	xOffset, yOffset GlyphUnit
}

// LineBreaker turns queued-up text into lines, one next_line call at a
// time. It is a pull-model generator: between calls it keeps the shaped
// glyphs and per-char widths of the partially consumed head item, so
// producing the following line picks up exactly where the last one ended.
// A LineBreaker is not safe for concurrent use.
type LineBreaker struct {
	context *Context
	baseDir Direction
	tabs    *TabArray

	// data we're building lines from, shared among all the lines
	datas       []*LineData // queued-up inputs
	data        *LineData   // the input currently being processed
	dataItems   *ItemList   // original items for data (only used for undoing)
	items       *ItemList   // the remaining unprocessed items for data
	renderAttrs AttrList    // attributes to be re-added after line breaking

	// arguments to NextLine, in effect while processing that line
	lineWrap      WrapMode
	lineEllipsize EllipsizeMode

	tabWidth    GlyphUnit // cached width of a tab; -1 == not yet calculated
	hyphenWidth GlyphUnit // cached width of a hyphen; -1 == not yet calculated
	decimal     rune      // cached decimal point; 0 == not yet calculated

	// state for line breaking
	nLines          int
	glyphs          *GlyphString // glyphs for the head of items
	startOffset     int          // character offset of the head of items in data.text
	properties      itemProperties
	logWidths       []GlyphUnit // per-char logical widths for the head of items
	logWidthsOffset int         // offset into logWidths for the remaining portion of the head item
	lineStartIndex  int         // index of the current line in data.text
	lineStartOffset int         // character offset of the current line in data.text

	lineX          GlyphUnit
	lineWidth      GlyphUnit // goal width of the current line; < 0 for unlimited
	remainingWidth GlyphUnit // amount of space remaining on the line; < 0 for unlimited

	atParagraphStart bool

	baselineShifts []*baselineItem
	lastTab        lastTabState
}

// NewLineBreaker creates a breaker that itemizes and shapes against
// `context`. Feed it with AddText, drain it with NextLine.
func NewLineBreaker(context *Context) *LineBreaker {
	return &LineBreaker{
		context:     context,
		baseDir:     DIRECTION_NEUTRAL,
		tabWidth:    -1,
		hyphenWidth: -1,
	}
}

// SetBaseDir overrides the paragraph direction detected from the text.
func (b *LineBreaker) SetBaseDir(dir Direction) { b.baseDir = dir }

// GetBaseDir returns the base direction set with SetBaseDir.
func (b *LineBreaker) GetBaseDir() Direction { return b.baseDir }

// SetTabs sets the tab stops consumed when laying out tab characters; nil
// restores the default stops every 8 spaces.
func (b *LineBreaker) SetTabs(tabs *TabArray) {
	b.tabs = tabs.Copy()
	b.tabWidth = -1
}

// GetTabs returns the tab stops set with SetTabs, or nil if defaults are
// in use.
func (b *LineBreaker) GetTabs() *TabArray { return b.tabs }

// AddText queues `text` for breaking. The end of the text is treated as a
// paragraph break. AddText may be called repeatedly, including after lines
// have already been produced.
func (b *LineBreaker) AddText(text []rune, attrs AttrList) {
	b.datas = append(b.datas, b.makeLineData(text, attrs))
}

func (b *LineBreaker) makeLineData(text []rune, attrs AttrList) *LineData {
	data := &LineData{
		text:   append([]rune(nil), text...),
		length: len(text),
		nChars: len(text),
	}
	if b.baseDir == DIRECTION_NEUTRAL {
		data.direction = pango_find_base_dir(text)
		if data.direction == DIRECTION_NEUTRAL {
			data.direction = b.context.base_dir
		}
	} else {
		data.direction = b.baseDir
	}
	data.attrs = attrs.pango_attr_list_copy()
	return data
}

func affectsItemization(attr *Attribute) bool {
	return attr.Type.info().affects == AttrAffectsItemization
}

func affectsBreakOrShape(attr *Attribute) bool {
	affects := attr.Type.info().affects
	return affects == AttrAffectsBreaking || affects == AttrAffectsShaping
}

func applyAttributesToItems(items *ItemList, attrs AttrList) {
	if len(attrs) == 0 {
		return
	}
	iter := attrs.pango_attr_list_get_iterator()
	for l := items; l != nil; l = l.Next {
		l.Data.applyAttrs(iter)
	}
}

// ensureItems itemizes the head queue entry if the breaker is between
// inputs: it splits the input attributes into the itemization-affecting
// subset (consumed by the itemizer), the break/shape-affecting subset
// (attached to items as extra attrs), and the render-only remainder
// (reapplied to finished lines), then computes LogAttrs and resets all
// per-input scratch state.
func (b *LineBreaker) ensureItems() {
	if b.items != nil {
		return
	}

	for b.data == nil && len(b.datas) > 0 {
		b.data = b.datas[0]
		b.datas = b.datas[1:]
		if b.data.length == 0 {
			// an empty input produces no lines at all
			b.data = nil
		}
	}
	if b.data == nil {
		return
	}

	b.renderAttrs = b.data.attrs.pango_attr_list_copy()
	shapeAttrs := b.renderAttrs.filter(affectsBreakOrShape)
	itemizeAttrs := b.renderAttrs.filter(affectsItemization)

	b.items = b.context.itemizeWithBaseDir(b.data.direction, b.data.text, 0, b.data.length, itemizeAttrs, nil)

	applyAttributesToItems(b.items, shapeAttrs)

	b.data.logAttrs = computeLogAttrsForData(b.data, b.items)

	b.items = b.context.postProcessItems(b.data.text, b.items)

	if debugMode {
		assert(b.dataItems == nil, "ensureItems: stale dataItems")
	}
	var dataItems *ItemList
	for l := b.items; l != nil; l = l.Next {
		dataItems = &ItemList{Data: l.Data.copy(), Next: dataItems}
	}
	b.dataItems = reverseItems(dataItems)

	b.hyphenWidth = -1
	b.tabWidth = -1

	b.startOffset = 0
	b.lineStartOffset = 0
	b.lineStartIndex = 0

	b.baselineShifts = nil
	b.glyphs = nil
	b.logWidths = nil
	b.logWidthsOffset = 0

	b.remainingWidth = -1
	b.atParagraphStart = true
}

// getResolvedDir resolves the direction for the next line to plain LTR or
// RTL, applying the direction-vs-gravity dance: South leaves the direction
// alone, North flips it, East forces LTR, West forces RTL (kept in sync
// with the itemizer's level adjustment in addChar).
func (b *LineBreaker) getResolvedDir() Direction {
	b.ensureItems()

	if b.data == nil {
		return DIRECTION_NEUTRAL
	}

	var dir Direction
	switch b.data.direction {
	case DIRECTION_RTL, DIRECTION_WEAK_RTL:
		dir = DIRECTION_RTL
	default:
		dir = DIRECTION_LTR
	}

	switch b.context.resolved_gravity {
	case GRAVITY_NORTH:
		dir = DIRECTION_LTR + DIRECTION_RTL - dir
	case GRAVITY_EAST:
		dir = DIRECTION_LTR
	case GRAVITY_WEST:
		dir = DIRECTION_RTL
	}

	return dir
}

// GetDirection returns the resolved direction of the next line, or
// DIRECTION_NEUTRAL if the breaker has no more input.
func (b *LineBreaker) GetDirection() Direction { return b.getResolvedDir() }

// HasLine reports whether the breaker has any text left to process.
func (b *LineBreaker) HasLine() bool {
	b.ensureItems()
	return b.items != nil
}

func (b *LineBreaker) shouldEllipsizeCurrentLine() bool {
	return b.lineEllipsize != ELLIPSIZE_NONE && b.lineWidth >= 0
}

// NextLine produces the next line of the queued text, consuming as much of
// it as fits in `width` (in Pango units; -1 for no limit) under `wrap`. `x`
// is the position the line will be placed at, used to resolve tab stops.
// With a non-none `ellipsize`, all remaining text is consumed and made to
// fit by ellipsizing. Returns nil when no input remains.
func (b *LineBreaker) NextLine(x, width GlyphUnit, wrap WrapMode, ellipsize EllipsizeMode) *Line {
	b.ensureItems()

	if b.items == nil {
		return nil
	}

	line := newLine(b.context, b.data)
	line.StartIndex = b.lineStartIndex
	line.StartOffset = b.lineStartOffset
	line.startsParagraph = b.atParagraphStart
	line.direction = b.getResolvedDir()
	line.ellipsize = ellipsize

	b.lineX = x
	b.lineWidth = width
	b.lineWrap = wrap
	b.lineEllipsize = ellipsize

	b.lastTab = lastTabState{align: TAB_LEFT}

	if b.shouldEllipsizeCurrentLine() {
		b.remainingWidth = -1
	} else {
		b.remainingWidth = width
	}

	b.processLine(line)

	line.NumChars = line.computeNChars()

	b.postprocessLine(line)

	if b.items == nil {
		line.endsParagraph = true
	}

	b.atParagraphStart = line.endsParagraph
	b.nLines++
	b.lineStartIndex += line.Length
	b.lineStartOffset = b.startOffset

	if b.items == nil {
		b.data = nil
		b.dataItems = nil
		b.renderAttrs = nil
	}

	line.checkInvariants()

	return line
}

// UndoLine re-adds the content of `line` to the breaker's unprocessed
// input, so it can be retried with different parameters. Only the most
// recently produced line can be undone (multiple lines must be undone in
// reverse order of production); returns false if `line` is not at the
// breaker's current position.
func (b *LineBreaker) UndoLine(line *Line) bool {
	if b.data == nil && line.StartIndex == 0 && line.Length == line.data.length {
		if debugMode {
			assert(b.items == nil, "UndoLine: items remain without data")
		}
		b.datas = append([]*LineData{line.data}, b.datas...)
		b.nLines--
		b.glyphs = nil
		b.logWidthsOffset = 0
		// ensureItems will set up everything else
		return true
	}

	if b.data == line.data && b.lineStartIndex == line.StartIndex+line.Length {
		// recover the original items overlapping the line's range, trimming
		// the boundary items to it
		var items *ItemList
		for l := b.dataItems; l != nil; l = l.Next {
			item := l.Data

			if item.Offset+item.Length <= line.StartIndex {
				continue
			}
			if item.Offset >= b.lineStartIndex {
				break
			}

			item = item.copy()

			if item.Offset < line.StartIndex {
				item.split(line.StartIndex-item.Offset, line.StartIndex-item.Offset)
			}
			if item.Offset+item.Length > b.lineStartIndex {
				item = item.split(b.lineStartIndex-item.Offset, b.lineStartIndex-item.Offset)
			}

			items = &ItemList{Data: item, Next: items}
		}

		b.items = concatItems(reverseItems(items), b.items)

		b.nLines--

		b.atParagraphStart = line.startsParagraph
		b.lineStartIndex = line.StartIndex
		b.lineStartOffset = line.StartOffset

		b.glyphs = nil
		b.startOffset = line.StartOffset
		b.logWidthsOffset = 0

		return true
	}

	return false
}

func concatItems(a, rest *ItemList) *ItemList {
	if a == nil {
		return rest
	}
	head := a
	for ; a.Next != nil; a = a.Next {
	}
	a.Next = rest
	return head
}

/* line measurement and tabs */

func (b *LineBreaker) getLineWidth(line *Line) GlyphUnit {
	if b.remainingWidth > -1 {
		return b.lineWidth - b.remainingWidth
	}
	return line.computeWidth()
}

func (b *LineBreaker) ensureDecimal() {
	if b.decimal == 0 {
		b.decimal = '.'
	}
}

// ensureTabWidth computes the width of 8 spaces in the context's default
// font, composed with the input's font attributes. Utter performance
// killer, cached per input.
func (b *LineBreaker) ensureTabWidth() {
	if b.tabWidth != -1 {
		return
	}

	fontDesc := b.context.fontDesc
	var language Language
	var tmpAttrs AttrList
	if b.data.attrs != nil {
		iter := b.data.attrs.pango_attr_list_get_iterator()
		var extras AttrList
		iter.pango_attr_iterator_get_font(&fontDesc, &language, &extras)
	}
	tmpAttrs.insertBefore(NewAttrFontDesc(fontDesc))
	if language != "" {
		tmpAttrs.insertBefore(NewAttrLanguage(language))
	}

	spaces := []rune("        ")
	items := b.context.itemizeWithBaseDir(b.context.base_dir, spaces[:1], 0, 1, tmpAttrs, nil)
	if items == nil {
		b.tabWidth = 50 * Scale
		return
	}

	glyphs := new(GlyphString)
	glyphs.shapeWithFlags(spaces, 0, len(spaces), &items.Data.Analysis, b.shapeFlags())
	b.tabWidth = glyphs.getWidth()

	// tabWidth > 0 is needed for tab-stop search to terminate
	if b.tabWidth <= 0 {
		b.tabWidth = 50 * Scale
	}
}

func (b *LineBreaker) shapeFlags() shapeFlags {
	if b.context.round_glyph_positions {
		return shapeRoundPositions
	}
	return shapeNone
}

// getTabPos returns the position, alignment and decimal point of the
// `index`th tab stop, relative to the line origin. With no TabArray set,
// stops fall every tabWidth; with one, positions past the last stop repeat
// the final tab gap.
func (b *LineBreaker) getTabPos(index int) (pos GlyphUnit, align TabAlign, decimal rune, isDefault bool) {
	offset := b.lineX
	align = TAB_LEFT
	isDefault = true

	var nTabs int
	inPixels := false
	if b.tabs != nil {
		nTabs = b.tabs.Len()
		inPixels = b.tabs.PositionsInPixels
		isDefault = false
	}

	if index < nTabs {
		var loc int32
		align, loc = b.tabs.GetTab(index)
		pos = GlyphUnit(loc)
		if inPixels {
			pos *= Scale
		}
		decimal = b.tabs.GetDecimalPoint(index)
	} else if nTabs > 0 {
		// Extrapolate tab position, repeating the last tab gap to infinity.
		var lastLoc, nextToLastLoc int32
		align, lastLoc = b.tabs.GetTab(nTabs - 1)
		decimal = b.tabs.GetDecimalPoint(nTabs - 1)
		if nTabs > 1 {
			_, nextToLastLoc = b.tabs.GetTab(nTabs - 2)
		}
		lastPos := GlyphUnit(lastLoc)
		nextToLastPos := GlyphUnit(nextToLastLoc)
		if inPixels {
			lastPos *= Scale
			nextToLastPos *= Scale
		}

		var tabWidth GlyphUnit
		if lastPos > nextToLastPos {
			tabWidth = lastPos - nextToLastPos
		} else {
			b.ensureTabWidth()
			tabWidth = b.tabWidth
		}

		pos = lastPos + tabWidth*GlyphUnit(index-nTabs+1)
	} else {
		// no tab array set, so use default tab width
		b.ensureTabWidth()
		pos = b.tabWidth * GlyphUnit(index)
	}

	return pos - offset, align, decimal, isDefault
}

// shapeTab produces the single stretched glyph for a tab item, choosing the
// first tab stop past `currentWidth` and recording it as the line's last
// tab so later runs can keep its alignment correct.
func (b *LineBreaker) shapeTab(line *Line, currentWidth GlyphUnit, item *Item, glyphs *GlyphString) {
	glyphs.Glyphs = []GlyphInfo{{attr: GlyphVisAttr{isClusterStart: true}}}
	glyphs.logClusters = []int{0}
	if b.properties.showingSpace {
		glyphs.Glyphs[0].Glyph = AsUnknownGlyph('\t')
	} else {
		glyphs.Glyphs[0].Glyph = GLYPH_EMPTY
	}

	b.ensureTabWidth()
	spaceWidth := b.tabWidth / 8

	var (
		tabPos     GlyphUnit
		tabAlign   TabAlign
		tabDecimal rune
		i          int
	)
	for i = b.lastTab.index; ; i++ {
		var isDefault bool
		tabPos, tabAlign, tabDecimal, isDefault = b.getTabPos(i)

		// Make sure there is at least a space-width of space between
		// tab-aligned text and the text before it. However, only do
		// this if no tab array is set on the line breaker, ie. using default
		// tab positions. If the user has set tab positions, respect it
		// to the pixel.
		var margin GlyphUnit = 1
		if isDefault {
			margin = spaceWidth
		}
		if tabPos >= currentWidth+margin {
			glyphs.Glyphs[0].Geometry.Width = tabPos - currentWidth
			break
		}
	}

	if tabDecimal == 0 {
		b.ensureDecimal()
		tabDecimal = b.decimal
	}

	b.lastTab = lastTabState{
		glyphs:  glyphs,
		index:   i,
		width:   currentWidth,
		pos:     tabPos,
		align:   tabAlign,
		decimal: tabDecimal,
	}
}

// getDecimalPrefixWidth measures the width of the run up to (and half into)
// the first occurrence of the decimal point.
func getDecimalPrefixWidth(item *Item, glyphs *GlyphString, text []rune, decimal rune) (width GlyphUnit, found bool) {
	glyphItem := GlyphItem{Item: item, Glyphs: glyphs}
	logWidths := make([]GlyphUnit, item.NumChars)
	glyphItem.getLogicalWidths(text, logWidths)

	for i := 0; i < item.NumChars; i++ {
		if text[item.Offset+i] == decimal {
			width += logWidths[i] / 2
			return width, true
		}
		width += logWidths[i]
	}
	return width, false
}

func (b *LineBreaker) canBreakAt(offset int, wrap WrapMode) bool {
	if offset == b.data.nChars {
		return true
	}
	if wrap == WRAP_CHAR {
		return b.data.logAttrs[offset].IsCharBreak
	}
	return b.data.logAttrs[offset].IsLineBreak
}

func (b *LineBreaker) canBreakIn(startOffset, numChars int, allowBreakAtStart bool) bool {
	i := 1
	if allowBreakAtStart {
		i = 0
	}
	for ; i < numChars; i++ {
		if b.canBreakAt(startOffset+i, b.lineWrap) {
			return true
		}
	}
	return false
}

/* run shaping */

// shapeRun shapes `item` against the current line state: tabs become a
// single stretched glyph, everything else goes through the shaper seam,
// followed by letter spacing and the pending-tab width adjustment.
func (b *LineBreaker) shapeRun(line *Line, item *Item) *GlyphString {
	glyphs := new(GlyphString)

	if b.data.text[item.Offset] == '\t' {
		b.shapeTab(line, b.getLineWidth(line), item, glyphs)
		return glyphs
	}

	if b.properties.shapeSet {
		shapeShapeAttr(item.NumChars, b.properties.shapeLogical, glyphs)
	} else {
		glyphs.shapeWithFlags(b.data.text, item.Offset, item.Length, &item.Analysis, b.shapeFlags())
		if item.Analysis.Flags&AFNeedHyphen != 0 {
			appendHyphenGlyph(item, glyphs)
		}
	}

	if b.properties.letterSpacing != 0 {
		glyphItem := GlyphItem{Item: item, Glyphs: glyphs}
		glyphItem.letterSpace(b.data.text, b.data.logAttrs[b.startOffset:], b.properties.letterSpacing)

		spaceLeft, spaceRight := distributeLetterSpacing(b.properties.letterSpacing)
		glyphs.Glyphs[0].Geometry.Width += spaceLeft
		glyphs.Glyphs[0].Geometry.XOffset += spaceLeft
		glyphs.Glyphs[len(glyphs.Glyphs)-1].Geometry.Width += spaceRight
	}

	if b.lastTab.glyphs != nil {
		// update the width of the current tab to position this run properly
		w := b.lastTab.pos - b.lastTab.width

		switch b.lastTab.align {
		case TAB_RIGHT:
			w -= glyphs.getWidth()
		case TAB_CENTER:
			w -= glyphs.getWidth() / 2
		case TAB_DECIMAL:
			prefix, _ := getDecimalPrefixWidth(item, glyphs, b.data.text, b.lastTab.decimal)
			w -= prefix
		}

		b.lastTab.glyphs.Glyphs[0].Geometry.Width = maxG(w, 0)
	}

	return glyphs
}

// shapeShapeAttr fills `glyphs` for an item covered by a shape attribute:
// one placeholder glyph per char, each as wide as the shape's logical rect.
func shapeShapeAttr(nChars int, logical Rectangle, glyphs *GlyphString) {
	glyphs.Glyphs = make([]GlyphInfo, nChars)
	glyphs.logClusters = make([]int, nChars)
	for i := range glyphs.Glyphs {
		glyphs.Glyphs[i].Glyph = GLYPH_EMPTY
		glyphs.Glyphs[i].Geometry.Width = GlyphUnit(logical.Width)
		glyphs.Glyphs[i].attr.isClusterStart = true
		glyphs.logClusters[i] = i
	}
}

func hyphenAdvance(font Font) GlyphUnit {
	if font == nil {
		return 0
	}
	face := font.Face()
	if face == nil {
		return 0
	}
	for _, r := range []rune{'\u2010', '-'} {
		if gid, ok := face.NominalGlyph(r); ok {
			return GlyphUnit(face.HorizontalAdvance(gid)) * Scale / GlyphUnit(max(int(face.Upem()), 1))
		}
	}
	return 0
}

// appendHyphenGlyph adds the hyphen glyph a NEED_HYPHEN item ends with.
// This is not technically correct (the whole run should be reshaped with
// the hyphen appended) but is close enough in practice.
func appendHyphenGlyph(item *Item, glyphs *GlyphString) {
	font := item.Analysis.Font
	var gid fonts.GID
	width := hyphenAdvance(font)
	if font != nil && font.Face() != nil {
		for _, r := range []rune{'\u2010', '-'} {
			if g, ok := font.Face().NominalGlyph(r); ok {
				gid = g
				break
			}
		}
	}
	lastCluster := 0
	if n := len(glyphs.logClusters); n > 0 {
		lastCluster = glyphs.logClusters[n-1]
	}
	glyphs.Glyphs = append(glyphs.Glyphs, GlyphInfo{
		Glyph:    gid,
		Geometry: GlyphGeometry{Width: width},
		attr:     GlyphVisAttr{isClusterStart: false},
	})
	glyphs.logClusters = append(glyphs.logClusters, lastCluster)
}

func (b *LineBreaker) ensureHyphenWidth() {
	if b.hyphenWidth < 0 {
		b.hyphenWidth = hyphenAdvance(b.items.Data.Analysis.Font)
	}
}

func (b *LineBreaker) breakNeedsHyphen(pos int) bool {
	la := b.data.logAttrs[b.startOffset+pos]
	return la.BreakInsertsHyphen || la.BreakRemovesPreceding
}

// findBreakExtraWidth returns the width adjustment of breaking after the
// first `pos` chars of the head item: a hyphen about to be inserted adds
// its width (minus the removed char's, when the break removes it), and a
// preceding space that will collapse at line end subtracts its width.
func (b *LineBreaker) findBreakExtraWidth(pos int) GlyphUnit {
	la := b.data.logAttrs[b.startOffset+pos]
	if la.BreakInsertsHyphen {
		b.ensureHyphenWidth()
		if la.BreakRemovesPreceding && pos > 0 {
			return b.hyphenWidth - b.logWidths[b.logWidthsOffset+pos-1]
		}
		return b.hyphenWidth
	}
	if pos > 0 && b.data.logAttrs[b.startOffset+pos-1].IsWhite {
		return -b.logWidths[b.logWidthsOffset+pos-1]
	}
	return 0
}

func (b *LineBreaker) computeLogWidths() {
	item := b.items.Data
	if item.NumChars > len(b.logWidths) {
		b.logWidths = make([]GlyphUnit, item.NumChars)
	}
	if debugMode {
		assert(b.logWidthsOffset == 0, "computeLogWidths: stale offset")
	}
	glyphItem := GlyphItem{Item: item, Glyphs: b.glyphs}
	glyphItem.getLogicalWidths(b.data.text, b.logWidths)
}

// tabWidthChange accounts for the pending tab's width having been adjusted
// by shapeRun since remainingWidth was last charged for it.
func (b *LineBreaker) tabWidthChange() GlyphUnit {
	if b.lastTab.glyphs != nil {
		return b.lastTab.glyphs.Glyphs[0].Geometry.Width - (b.lastTab.pos - b.lastTab.width)
	}
	return 0
}

/* run insertion */

// uninsertRun removes the most recently inserted run from the line and
// hands its item back.
func (b *LineBreaker) uninsertRun(line *Line) *Item {
	run := line.Runs.Data
	line.Runs = line.Runs.Next
	line.Length -= run.Item.Length
	return run.Item
}

// insertRun prepends `runItem` to the line. A nil `glyphs` means "shape it
// now" — except that the scratch glyphs are handed over directly when the
// head item goes in unchanged.
func (b *LineBreaker) insertRun(line *Line, runItem *Item, glyphs *GlyphString, lastRun bool) {
	run := &GlyphItem{Item: runItem}

	switch {
	case glyphs != nil:
		run.Glyphs = glyphs
	case lastRun && b.logWidthsOffset == 0 && runItem.Analysis.Flags&AFNeedHyphen == 0:
		run.Glyphs = b.glyphs
		b.glyphs = nil
	default:
		run.Glyphs = b.shapeRun(line, runItem)
	}

	if lastRun {
		b.glyphs = nil
	}

	line.Runs = &RunList{Data: run, Next: line.Runs}
	line.Length += runItem.Length

	if b.lastTab.glyphs != nil && run.Glyphs != b.lastTab.glyphs {
		// Adjust the tab position so placing further runs will continue to
		// maintain the tab placement. In the case of decimal tabs, we are
		// done once we've placed the run with the decimal point.
		foundDecimal := false
		switch b.lastTab.align {
		case TAB_RIGHT:
			b.lastTab.width += run.Glyphs.getWidth()
		case TAB_CENTER:
			b.lastTab.width += run.Glyphs.getWidth() / 2
		case TAB_DECIMAL:
			var width GlyphUnit
			width, foundDecimal = getDecimalPrefixWidth(run.Item, run.Glyphs, b.data.text, b.lastTab.decimal)
			b.lastTab.width += width
		}

		width := maxG(b.lastTab.pos-b.lastTab.width, 0)
		b.lastTab.glyphs.Glyphs[0].Geometry.Width = width

		if foundDecimal || width == 0 {
			b.lastTab.glyphs = nil
		}
	}
}

func (b *LineBreaker) itemIsParagraphSeparator(item *Item) bool {
	if b.properties.noParagraphBreak {
		return false
	}
	switch b.data.text[item.Offset] {
	case '\r', '\n', PARAGRAPH_SEPARATOR:
		return true
	}
	return false
}

/* the break search */

type breakResult uint8

const (
	brNoneFit breakResult = iota
	brSomeFit
	brAllFit
	brEmptyFit
	brLineSeparator
	brParagraphSeparator
)

// processItem tries to insert as much as possible of the head of b.items
// onto `line`.
//
// If forceFit is true, brNoneFit will never be returned; a run will be
// added even if inserting the minimum amount overflows the line. This is
// used at the start of a line and until some break has been found.
//
// If noBreakAtEnd is true, brAllFit will never be returned even if
// everything fits; the run will be broken earlier, or brNoneFit returned.
// This is used when the position after the run is not a break opportunity.
//
// The outline of the search, without the bookkeeping: if the item appears
// to fit entirely, measure it exactly, and accept if it really fits.
// Otherwise walk the item's break positions left to right, keeping the best
// candidate so far; stop early once the running width is hopelessly past
// the budget; measure non-obvious candidates exactly by tentatively
// splitting and reshaping. If word wrapping found nothing and the mode is
// WRAP_WORD_CHAR, rerun the walk over grapheme breaks.
func (b *LineBreaker) processItem(line *Line, forceFit, noBreakAtEnd, isLastItem bool) breakResult {
	item := b.items.Data

	// Keep the shaping results for the head item in b.glyphs/b.logWidths;
	// when initial parts of the item are broken off, logWidthsOffset tracks
	// what is already consumed. Note that widths computed from logWidths
	// are an approximation, because a) cluster widths are just evenly
	// divided, and b) clusters may change as we break in the middle
	// (think ff-i).
	processingNewItem := false
	if b.glyphs == nil {
		b.properties = item.getProperties()
		b.glyphs = b.shapeRun(line, item)
		b.logWidthsOffset = 0
		processingNewItem = true
	}

	if b.itemIsParagraphSeparator(item) {
		b.glyphs = nil
		return brParagraphSeparator
	}

	if b.data.text[item.Offset] == LINE_SEPARATOR && !b.shouldEllipsizeCurrentLine() {
		b.insertRun(line, item, nil, true)
		b.logWidthsOffset += item.NumChars
		return brLineSeparator
	}

	if b.remainingWidth < 0 && !noBreakAtEnd { // wrapping off
		b.insertRun(line, item, nil, true)
		return brAllFit
	}

	if processingNewItem {
		b.computeLogWidths()
		processingNewItem = false
	}

	var width GlyphUnit
	for i := 0; i < item.NumChars; i++ {
		width += b.logWidths[b.logWidthsOffset+i]
	}

	if b.data.text[item.Offset] == '\t' {
		b.insertRun(line, item, nil, true)
		b.remainingWidth = maxG(b.remainingWidth-width, 0)
		return brAllFit
	}

	var extraWidth GlyphUnit
	if !noBreakAtEnd && b.canBreakAt(b.startOffset+item.NumChars, b.lineWrap) {
		extraWidth = b.findBreakExtraWidth(item.NumChars)
	}

	if (width+extraWidth <= b.remainingWidth || (item.NumChars == 1 && line.Runs == nil) ||
		(b.lastTab.glyphs != nil && b.lastTab.align != TAB_LEFT)) &&
		!noBreakAtEnd {
		glyphs := b.shapeRun(line, item)

		width = glyphs.getWidth() + b.tabWidthChange()

		if width+extraWidth <= b.remainingWidth || (item.NumChars == 1 && line.Runs == nil) {
			b.insertRun(line, item, glyphs, true)
			b.remainingWidth = maxG(b.remainingWidth-width, 0)
			return brAllFit
		}
		// if it doesn't fit after shaping, discard and proceed to break the item
	}

	/* from here on, we look for a way to break the item */

	origWidth := width
	origExtraWidth := extraWidth
	breakWidth := width
	breakExtraWidth := extraWidth
	breakNumChars := item.NumChars
	wrap := b.lineWrap
	var breakGlyphs *GlyphString

	// Add some safety margin: positions farther away from the end of the
	// line than this are not looked at carefully.
	metrics := FontGetMetrics(item.Analysis.Font, item.Analysis.Language)
	safeDistance := metrics.ApproximateCharWidth * 3

retryBreak:
	for {
		limit := item.NumChars + 1
		if noBreakAtEnd {
			limit = item.NumChars
		}
		width = 0
		for numChars := 0; numChars < limit; numChars++ {
			extraWidth = b.findBreakExtraWidth(numChars)

			// Don't walk the entire item if it can be helped; keep going at
			// least until a breakpoint is found that doesn't overflow the
			// budget (or there is no hope of finding a better one). Relies on
			// MIN(width + extraWidth, width) increasing monotonically.
			if minG(width+extraWidth, width) > b.remainingWidth+safeDistance &&
				breakNumChars < item.NumChars {
				break
			}

			// If there are no previous runs, take care to grab at least one char.
			if b.canBreakAt(b.startOffset+numChars, wrap) && (numChars > 0 || line.Runs != nil) {
				if numChars == 0 || width+extraWidth < b.remainingWidth-safeDistance {
					// obviously fits
					breakNumChars = numChars
					breakWidth = width
					breakExtraWidth = extraWidth
					breakGlyphs = nil
				} else {
					// tentatively split and reshape to measure exactly:
					// cluster formation may change at the new boundary
					newItem := item
					if numChars < item.NumChars {
						newItem = item.split(numChars, numChars)
						if b.breakNeedsHyphen(numChars) {
							newItem.Analysis.Flags |= AFNeedHyphen
						} else {
							newItem.Analysis.Flags &^= AFNeedHyphen
						}
					}

					glyphs := b.shapeRun(line, newItem)

					newBreakWidth := glyphs.getWidth() + b.tabWidthChange()

					if numChars > 0 && (newItem != item || !isLastItem) &&
						b.data.logAttrs[b.startOffset+numChars-1].IsWhite {
						extraWidth = -b.logWidths[b.logWidthsOffset+numChars-1]
					} else if newItem == item && !isLastItem && b.breakNeedsHyphen(numChars) {
						b.ensureHyphenWidth()
						extraWidth = b.hyphenWidth
					} else {
						extraWidth = 0
					}

					if newItem != item {
						item.unsplit(newItem)
					}

					if breakNumChars == item.NumChars ||
						newBreakWidth+extraWidth <= b.remainingWidth ||
						newBreakWidth+extraWidth < breakWidth+breakExtraWidth {
						breakNumChars = numChars
						breakWidth = newBreakWidth
						breakExtraWidth = extraWidth
						breakGlyphs = glyphs
					}
				}
			}

			if numChars < item.NumChars {
				width += b.logWidths[b.logWidthsOffset+numChars]
			}
		}

		if wrap == WRAP_WORD_CHAR && forceFit && breakWidth+breakExtraWidth > b.remainingWidth {
			// try again, with looser conditions
			wrap = WRAP_CHAR
			breakNumChars = item.NumChars
			breakWidth = origWidth
			breakExtraWidth = origExtraWidth
			breakGlyphs = nil
			continue retryBreak
		}
		break
	}

	if forceFit || breakWidth+breakExtraWidth <= b.remainingWidth { // successfully broke the item
		if b.remainingWidth >= 0 {
			b.remainingWidth = maxG(b.remainingWidth-breakWidth-breakExtraWidth, 0)
		}

		if breakNumChars == item.NumChars {
			if b.canBreakAt(b.startOffset+breakNumChars, wrap) && b.breakNeedsHyphen(breakNumChars) {
				item.Analysis.Flags |= AFNeedHyphen
			}
			b.insertRun(line, item, nil, true)
			return brAllFit
		} else if breakNumChars == 0 {
			return brEmptyFit
		} else {
			newItem := item.split(breakNumChars, breakNumChars)

			b.insertRun(line, newItem, breakGlyphs, false)

			b.logWidthsOffset += breakNumChars

			return brSomeFit
		}
	} else {
		b.glyphs = nil
		return brNoneFit
	}
}

// processLine runs processItem over the head items until the line wraps or
// the input runs out, tracking the best break candidate so a late non-fit
// can roll the line back to it.
func (b *LineBreaker) processLine(line *Line) {
	var (
		haveBreak           = false     // a break candidate has been seen
		breakRemainingWidth GlyphUnit   // remaining width before adding the run with the break
		breakStartOffset    int         // start offset before adding the run with the break
		breakLink           *RunList    // link in line.Runs just after the break-holding run
		wrapped             = false
	)

	for b.items != nil {
		item := b.items.Data

		oldNumChars := item.NumChars
		oldRemainingWidth := b.remainingWidth
		firstItemInLine := line.Runs == nil
		lastItemInLine := b.items.Next == nil

		result := b.processItem(line, !haveBreak, false, lastItemInLine)

		switch result {
		case brAllFit:
			if b.data.text[item.Offset] != '\t' &&
				b.canBreakIn(b.startOffset, oldNumChars, !firstItemInLine) {
				haveBreak = true
				breakRemainingWidth = oldRemainingWidth
				breakStartOffset = b.startOffset
				breakLink = line.Runs.Next
			}
			b.items = b.items.Next
			b.startOffset += oldNumChars
			continue

		case brEmptyFit:
			wrapped = true

		case brSomeFit:
			b.startOffset += oldNumChars - item.NumChars
			wrapped = true

		case brNoneFit:
			// back up over unused runs to the run holding the break
			for line.Runs != nil && line.Runs != breakLink {
				run := line.Runs.Data

				// reset the tab state if we uninsert the current tab run
				if run.Glyphs == b.lastTab.glyphs {
					b.lastTab.glyphs = nil
					b.lastTab.index = 0
					b.lastTab.align = TAB_LEFT
				}

				b.items = &ItemList{Data: b.uninsertRun(line), Next: b.items}
			}

			b.startOffset = breakStartOffset
			b.remainingWidth = breakRemainingWidth
			lastItemInLine = b.items.Next == nil

			// reshape the run to break
			item = b.items.Data
			oldNumChars = item.NumChars
			result = b.processItem(line, true, true, lastItemInLine)
			if debugMode {
				assert(result == brSomeFit || result == brEmptyFit, "processLine: forced fit failed")
			}

			b.startOffset += oldNumChars - item.NumChars
			wrapped = true

		case brLineSeparator:
			b.items = b.items.Next
			b.startOffset += oldNumChars
			// a line separator is just a forced break; set wrapped so
			// justification may apply
			wrapped = true

		case brParagraphSeparator:
			// the terminator item becomes no run, so line.Length is not
			// grown; but the next line still starts past the terminator
			line.endsParagraph = true
			b.lineStartIndex += item.Length
			b.startOffset += item.NumChars
			b.items = b.items.Next
		}
		break
	}

	line.wrapped = wrapped
}

/* post-processing */

// addMissingHyphen reshapes the last run with NEED_HYPHEN when the line's
// natural end sits at a hyphen-inserting break that processItem did not
// reach (the run fit without breaking).
func (b *LineBreaker) addMissingHyphen(line *Line) {
	if line.Runs == nil {
		return
	}

	run := line.Runs.Data
	item := run.Item

	if b.data.logAttrs[b.lineStartOffset+line.NumChars].BreakInsertsHyphen &&
		item.Analysis.Flags&AFNeedHyphen == 0 {
		// the last run fit onto the line without breaking it, but it still
		// needs a hyphen
		width := run.Glyphs.getWidth()

		// shapeRun reads b.startOffset, so temporarily rewind things to the
		// state before the run was inserted; otherwise the wrong log attrs
		// are passed to the shaping machinery
		startOffset := b.startOffset
		b.startOffset = b.lineStartOffset + line.NumChars - item.NumChars

		item.Analysis.Flags |= AFNeedHyphen
		run.Glyphs = b.shapeRun(line, item)

		b.startOffset = startOffset

		b.remainingWidth += run.Glyphs.getWidth() - width
	}

	line.hyphenated = item.Analysis.Flags&AFNeedHyphen != 0
}

// zeroLineFinalSpace collapses the whitespace character the line wrapped
// at, unless it is a visible line separator or part of a larger cluster.
func (b *LineBreaker) zeroLineFinalSpace(line *Line) {
	if line.Runs == nil {
		return
	}

	run := line.Runs.Data
	item := run.Item
	glyphs := run.Glyphs
	if len(glyphs.Glyphs) == 0 {
		return
	}

	glyph := 0
	if item.Analysis.Level%2 == 0 {
		glyph = len(glyphs.Glyphs) - 1
	}

	if glyphs.Glyphs[glyph].Glyph == AsUnknownGlyph(LINE_SEPARATOR) {
		return // this LS is visible
	}

	// if the final char of the line forms a cluster and it's a whitespace
	// char, zero its glyph's width as it's been wrapped
	if len(glyphs.Glyphs) < 1 || b.startOffset == 0 ||
		!b.data.logAttrs[b.startOffset-1].IsWhite {
		return
	}

	offset := -1
	if item.Analysis.Level%2 != 0 {
		offset = 1
	}
	if len(glyphs.Glyphs) >= 2 && glyph+offset >= 0 && glyph+offset < len(glyphs.Glyphs) &&
		glyphs.logClusters[glyph] == glyphs.logClusters[glyph+offset] {
		return // it's a cluster
	}

	glyphs.Glyphs[glyph].Geometry.Width = 0
	glyphs.Glyphs[glyph].Glyph = GLYPH_EMPTY
}

func isTabRun(line *Line, run *GlyphItem) bool {
	return line.data.text[run.Item.Offset] == '\t'
}

func (b *LineBreaker) padGlyphstringRight(glyphs *GlyphString, adjustment GlyphUnit) {
	glyph := len(glyphs.Glyphs) - 1
	for glyph >= 0 && glyphs.Glyphs[glyph].Geometry.Width == 0 {
		glyph--
	}
	if glyph < 0 {
		return
	}

	b.remainingWidth -= adjustment
	glyphs.Glyphs[glyph].Geometry.Width += adjustment
	if glyphs.Glyphs[glyph].Geometry.Width < 0 {
		b.remainingWidth += glyphs.Glyphs[glyph].Geometry.Width
		glyphs.Glyphs[glyph].Geometry.Width = 0
	}
}

func (b *LineBreaker) padGlyphstringLeft(glyphs *GlyphString, adjustment GlyphUnit) {
	glyph := 0
	for glyph < len(glyphs.Glyphs) && glyphs.Glyphs[glyph].Geometry.Width == 0 {
		glyph++
	}
	if glyph == len(glyphs.Glyphs) {
		return
	}

	b.remainingWidth -= adjustment
	glyphs.Glyphs[glyph].Geometry.Width += adjustment
	glyphs.Glyphs[glyph].Geometry.XOffset += adjustment
}

func getItemLetterSpacing(item *Item) GlyphUnit {
	return item.getProperties().letterSpacing
}

// adjustLineLetterSpacing redistributes the letter spacing shaping added
// after every grapheme: half moves to the front of each run, and the
// spacing at the line edges and around tab stops is trimmed. The breaking
// and tab positioning were computed without this trimming, so they are no
// longer exactly correct, but this won't be very noticeable in most cases.
func (b *LineBreaker) adjustLineLetterSpacing(line *Line) {
	// With tab stops and an RTL line, walk the line in reverse so the
	// corrections follow visual order.
	reversed := false
	if line.direction == DIRECTION_RTL {
		for l := line.Runs; l != nil; l = l.Next {
			if isTabRun(line, l.Data) {
				line.Runs = line.Runs.reverse()
				reversed = true
				break
			}
		}
	}

	// Walk over the runs in the line, redistributing letter spacing from the
	// end of the run to the start, and trimming spacing at the ends of the
	// line and at tab stops. The trimmed amount accumulates into
	// tabAdjustment, added onto the next tab's space to keep things aligned.
	var lastRun *GlyphItem
	var tabAdjustment GlyphUnit
	for l := line.Runs; l != nil; l = l.Next {
		run := l.Data
		var nextRun *GlyphItem
		if l.Next != nil {
			nextRun = l.Next.Data
		}

		if isTabRun(line, run) {
			b.padGlyphstringRight(run.Glyphs, tabAdjustment)
			tabAdjustment = 0
		} else {
			visualNextRun, visualLastRun := nextRun, lastRun
			if reversed {
				visualNextRun, visualLastRun = lastRun, nextRun
			}
			runSpacing := getItemLetterSpacing(run.Item)
			spaceLeft, spaceRight := distributeLetterSpacing(runSpacing)

			if run.Glyphs.Glyphs[0].Geometry.Width == 0 {
				// this space glyph was zeroed at the end of line; remove the
				// letter spacing added to its adjacent glyph
				b.padGlyphstringLeft(run.Glyphs, -spaceLeft)
			} else if visualLastRun == nil || isTabRun(line, visualLastRun) {
				b.padGlyphstringLeft(run.Glyphs, -spaceLeft)
				tabAdjustment += spaceLeft
			}

			if run.Glyphs.Glyphs[len(run.Glyphs.Glyphs)-1].Geometry.Width == 0 {
				b.padGlyphstringRight(run.Glyphs, -spaceRight)
			} else if visualNextRun == nil || isTabRun(line, visualNextRun) {
				b.padGlyphstringRight(run.Glyphs, -spaceRight)
				tabAdjustment += spaceRight
			}
		}

		lastRun = run
	}

	if reversed {
		line.Runs = line.Runs.reverse()
	}
}

// collectBaselineShift accumulates the rise and baseline-shift start/end
// offsets of one item. Baseline-shift attributes are matched up by (range,
// value) pairs on a stack, so nesting composes; named presets consult the
// previous run's font metrics, literal values apply as-is.
func (b *LineBreaker) collectBaselineShift(item, prev *Item) (startXOffset, startYOffset, endXOffset, endYOffset GlyphUnit) {
	for _, attr := range item.Analysis.ExtraAttrs {
		switch attr.Type {
		case ATTR_RISE:
			value := GlyphUnit(attr.Data.(AttrInt))
			startYOffset += value
			endYOffset -= value

		case ATTR_BASELINE_SHIFT:
			if attr.StartIndex == item.Offset {
				entry := &baselineItem{attr: attr}
				b.baselineShifts = append([]*baselineItem{entry}, b.baselineShifts...)

				value := GlyphUnit(attr.Data.(AttrInt))
				if value > 1024 || value < -1024 {
					entry.yOffset = value
					// FIXME: compute an xOffset from the value and the italic angle
				} else {
					superX, superY, subX, subY := baselineShiftMetrics(prev)
					switch BaselineShift(value) {
					case BASELINE_SHIFT_SUPERSCRIPT:
						entry.xOffset = superX
						entry.yOffset = superY
					case BASELINE_SHIFT_SUBSCRIPT:
						entry.xOffset = subX
						entry.yOffset = -subY
					}
				}

				startXOffset += entry.xOffset
				startYOffset += entry.yOffset
			}

			if attr.EndIndex == item.Offset+item.Length {
				if len(b.baselineShifts) > 0 {
					entry := b.baselineShifts[0]
					if attr.StartIndex == entry.attr.StartIndex &&
						attr.EndIndex == entry.attr.EndIndex &&
						attr.Data == entry.attr.Data {
						endXOffset -= entry.xOffset
						endYOffset -= entry.yOffset
					}
					b.baselineShifts = b.baselineShifts[1:]
				} else if debugMode {
					assert(false, "baseline attributes mismatch")
				}
			}
		}
	}
	return
}

// baselineShiftMetrics looks up the superscript/subscript offsets of the
// font the shifted text follows, falling back to 5000 units when the font
// carries no such metrics.
func baselineShiftMetrics(prev *Item) (superX, superY, subX, subY GlyphUnit) {
	if prev != nil && prev.Analysis.Font != nil {
		if face := prev.Analysis.Font.Face(); face != nil {
			scale := Scale / GlyphUnit(max(int(face.Upem()), 1))
			if v, ok := face.LineMetric(fonts.SuperscriptEmXOffset); ok {
				superX = GlyphUnit(v) * scale
			}
			if v, ok := face.LineMetric(fonts.SuperscriptEmYSize); ok {
				superY = GlyphUnit(v) * scale
			}
			if v, ok := face.LineMetric(fonts.SubscriptEmXOffset); ok {
				subX = GlyphUnit(v) * scale
			}
			if v, ok := face.LineMetric(fonts.SubscriptEmYOffset); ok {
				subY = GlyphUnit(v) * scale
			}
		}
	}
	if superY == 0 {
		superY = 5000
	}
	if subY == 0 {
		subY = 5000
	}
	return
}

// applyBaselineShift walks the runs in logical order, maintaining the
// running y offset that rise and baseline-shift attributes push and pop.
func (b *LineBreaker) applyBaselineShift(line *Line) {
	var yOffset GlyphUnit
	var prev *Item

	for l := line.Runs; l != nil; l = l.Next {
		run := l.Data
		item := run.Item

		if item.Analysis.Font == nil {
			continue
		}

		startXOffset, startYOffset, endXOffset, endYOffset := b.collectBaselineShift(item, prev)

		yOffset += startYOffset

		run.YOffset = yOffset
		run.StartXOffset = startXOffset
		run.EndXOffset = endXOffset

		yOffset += endYOffset

		prev = item
	}
}

// applyRenderAttributes re-runs every run through the render-only
// attribute list, splitting runs at attribute boundaries.
func (b *LineBreaker) applyRenderAttributes(line *Line) {
	if len(b.renderAttrs) == 0 {
		return
	}

	runs := line.Runs.reverse()
	line.Runs = nil
	for l := runs; l != nil; l = l.Next {
		newRuns := l.Data.applyAttrsToRun(line.data.text, b.renderAttrs)
		line.Runs = newRuns.concat(line.Runs)
	}
}

func (b *LineBreaker) postprocessLine(line *Line) {
	b.addMissingHyphen(line)

	// truncate the logically-final whitespace if the line broke at it
	if line.wrapped {
		b.zeroLineFinalSpace(line)
	}

	line.Runs = line.Runs.reverse()

	b.applyBaselineShift(line)

	if b.shouldEllipsizeCurrentLine() {
		line.ellipsized = line.ellipsizeLine(b.data.attrs, b.shapeFlags(), b.lineWidth)
	}

	// convert logical to visual order
	line.reorder()

	// fix up letter spacing between runs
	b.adjustLineLetterSpacing(line)

	b.applyRenderAttributes(line)
}

func minG(a, b GlyphUnit) GlyphUnit {
	if a < b {
		return a
	}
	return b
}
