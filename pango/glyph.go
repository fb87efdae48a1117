package pango

import "github.com/go-pango/pangocore/fonts"

// GLYPH_EMPTY is the glyph value for invisible characters that should not
// be drawn at all: zeroed trailing spaces, tabs without SHOW_SPACES.
const GLYPH_EMPTY fonts.GID = 0x0FFFFFFF

// AsUnknownGlyph returns the glyph value used to render `wc` as a hex-box
// placeholder when no font covers it (or when ATTR_SHOW asks for a visible
// representation of an invisible character).
func AsUnknownGlyph(wc rune) fonts.GID {
	return fonts.GID(wc) | 0x10000000
}

// GlyphGeometry records the shaped placement of a single glyph, all in
// Pango units.
type GlyphGeometry struct {
	Width          GlyphUnit
	XOffset, YOffset GlyphUnit
}

// GlyphVisAttr records the visual/cluster attributes of a single glyph.
type GlyphVisAttr struct {
	isClusterStart bool
	isColor        bool
}

// GlyphInfo is a single shaped glyph: its id, its placement, and its
// originating cluster.
type GlyphInfo struct {
	Glyph    fonts.GID
	Geometry GlyphGeometry
	attr     GlyphVisAttr
}

// GlyphString is the shaped output for one Item, as produced by the
// external shape() collaborator. logClusters[i] gives the
// byte offset (relative to the item start) of the character that produced
// Glyphs[i]; a cluster is the maximal run of glyphs sharing a logClusters
// value, per the GLOSSARY.
type GlyphString struct {
	Glyphs      []GlyphInfo
	logClusters []int
}

// getWidth sums the advance of every glyph in the string.
func (g *GlyphString) getWidth() GlyphUnit {
	if g == nil {
		return 0
	}
	var w GlyphUnit
	for _, info := range g.Glyphs {
		w += info.Geometry.Width
	}
	return w
}

// shapeFlags modulates a shape() call; ROUND_POSITIONS corresponds to
// Context.round_glyph_positions.
type shapeFlags uint8

const (
	shapeNone           shapeFlags = 0
	shapeRoundPositions shapeFlags = 1 << iota
)

// ShapeFunc is the external shaper contract the core consumes: shape the runes `text[offset:offset+length]` against
// `analysis`, returning one GlyphString. The core never calls a shaping
// library directly; it calls through this seam, so test code and
// non-HarfBuzz backends can supply their own.
type ShapeFunc func(text []rune, offset, length int, analysis *Analysis, flags shapeFlags) *GlyphString

// shapeImpl is the process-wide shaping seam. It defaults to shapeFallback,
// a naive "one glyph per character, advance from font metrics" shaper
// ported from the reference fallback shaping strategy (no font features, no
// reordering, no ligatures) so that the core remains fully testable without
// a HarfBuzz binding wired in. Callers with a real shaper call SetShaper.
var shapeImpl ShapeFunc = shapeFallback

// SetShaper installs the shape() implementation used by GlyphString.shapeWithFlags.
// Passing nil restores the built-in fallback shaper.
func SetShaper(fn ShapeFunc) {
	if fn == nil {
		fn = shapeFallback
	}
	shapeImpl = fn
}

func (g *GlyphString) shapeWithFlags(text []rune, offset, length int, analysis *Analysis, flags shapeFlags) {
	shaped := shapeImpl(text, offset, length, analysis, flags)
	g.Glyphs = shaped.Glyphs
	g.logClusters = shaped.logClusters
}

// shapeFallback assigns each character its font's nominal glyph (glyph 0
// when the font has none; default-ignorable characters get no special
// treatment) and its horizontal advance, with no font features or
// reordering applied. Ported
// from the naive "do the minimum" strategy of a fallback shaper: it never
// fails, which keeps next_line() total
func shapeFallback(text []rune, offset, length int, analysis *Analysis, _ shapeFlags) *GlyphString {
	out := &GlyphString{}
	if length == 0 {
		return out
	}
	face := facesFor(analysis)
	out.Glyphs = make([]GlyphInfo, 0, length)
	out.logClusters = make([]int, 0, length)
	for i := 0; i < length; i++ {
		r := text[offset+i]
		var gid fonts.GID
		var width GlyphUnit
		if face != nil {
			g, ok := face.NominalGlyph(r)
			if ok {
				gid = g
				width = GlyphUnit(face.HorizontalAdvance(g)) * Scale / GlyphUnit(max(int(face.Upem()), 1))
			}
		}
		if width == 0 {
			width = 10 * Scale / 2 // half-em fallback advance, keeps layout total
		}
		isStart := true
		out.Glyphs = append(out.Glyphs, GlyphInfo{
			Glyph:    gid,
			Geometry: GlyphGeometry{Width: width},
			attr:     GlyphVisAttr{isClusterStart: isStart},
		})
		out.logClusters = append(out.logClusters, i)
	}
	return out
}

func facesFor(analysis *Analysis) fonts.Face {
	if analysis == nil || analysis.Font == nil {
		return nil
	}
	return analysis.Font.Face()
}

// GlyphItem pairs an Item with its shaped glyphs and the per-run offsets
// applied during baseline-shift processing.
type GlyphItem struct {
	Item   *Item
	Glyphs *GlyphString

	YOffset, StartXOffset, EndXOffset GlyphUnit
}

// pango_glyph_item_split divides `orig` at `splitIndex` (byte offset
// relative to orig.Item.Offset), returning the prefix run and mutating
// `orig` into the suffix. Both runs' glyph strings must be reshaped by the
// caller to reflect font state at the new boundary; this function only
// repartitions glyphs that are already clustered consistently with the
// split point.
func (orig *GlyphItem) pango_glyph_item_split(text []rune, splitIndex int) *GlyphItem {
	item := orig.Item
	newItem := item.split(splitIndex, charLenOfUTF8Prefix(text, item.Offset, splitIndex))

	splitGlyph := 0
	for splitGlyph < len(orig.Glyphs.Glyphs) && orig.Glyphs.logClusters[splitGlyph] < splitIndex {
		splitGlyph++
	}

	newGlyphs := &GlyphString{
		Glyphs:      append([]GlyphInfo(nil), orig.Glyphs.Glyphs[:splitGlyph]...),
		logClusters: append([]int(nil), orig.Glyphs.logClusters[:splitGlyph]...),
	}

	orig.Glyphs.Glyphs = orig.Glyphs.Glyphs[splitGlyph:]
	clusters := make([]int, len(orig.Glyphs.logClusters)-splitGlyph)
	for i, c := range orig.Glyphs.logClusters[splitGlyph:] {
		clusters[i] = c - splitIndex
	}
	orig.Glyphs.logClusters = clusters

	orig.Item = item
	return &GlyphItem{Item: newItem, Glyphs: newGlyphs}
}

func charLenOfUTF8Prefix(text []rune, byteOffset, byteLen int) int {
	// Item byte offsets index into the rune slice directly in this port
	// (see item.go), so a byte-length split is just a rune-length split.
	return byteLen
}

// GlyphItemIter walks a GlyphItem one grapheme cluster at a time, in either
// direction, tracking the glyph range and the char range (relative to the
// item) of the current cluster. Used by ellipsization to grow a gap one
// cluster at a time without splitting a cluster in half.
type GlyphItemIter struct {
	glyphItem *GlyphItem
	text      []rune

	startGlyph, endGlyph int
	StartIndex, EndIndex int // byte offsets, relative to item start
	StartChar, EndChar   int // char offsets, relative to item start
}

func (it *GlyphItemIter) isLTR() bool {
	return it.glyphItem.Item.Analysis.Level%2 == 0
}

// InitStart positions the iterator before the first cluster of `gi` and
// advances to it. Returns false if the item has no glyphs. The glyph range
// of the current cluster is [startGlyph, endGlyph) for LTR runs and
// (endGlyph, startGlyph] for RTL runs, matching pango_glyph_item_iter.
func (it *GlyphItemIter) InitStart(gi *GlyphItem, text []rune) bool {
	it.glyphItem = gi
	it.text = text
	if len(gi.Glyphs.Glyphs) == 0 {
		return false
	}
	if it.isLTR() {
		it.endGlyph = 0
	} else {
		it.endGlyph = len(gi.Glyphs.Glyphs) - 1
	}
	it.EndIndex = 0
	it.EndChar = 0
	return it.NextCluster()
}

// InitEnd positions the iterator past the last cluster of `gi` and backs up
// to it.
func (it *GlyphItemIter) InitEnd(gi *GlyphItem, text []rune) bool {
	it.glyphItem = gi
	it.text = text
	if len(gi.Glyphs.Glyphs) == 0 {
		return false
	}
	if it.isLTR() {
		it.startGlyph = len(gi.Glyphs.Glyphs)
	} else {
		it.startGlyph = -1
	}
	it.StartIndex = gi.Item.Length
	it.StartChar = gi.Item.NumChars
	return it.PrevCluster()
}

// NextCluster advances to the following cluster; returns false if already
// past the last one.
func (it *GlyphItemIter) NextCluster() bool {
	glyphs := it.glyphItem.Glyphs
	item := it.glyphItem.Item
	glyphIndex := it.endGlyph

	if it.isLTR() {
		if glyphIndex == len(glyphs.Glyphs) {
			return false
		}
	} else {
		if glyphIndex < 0 {
			return false
		}
	}

	it.startGlyph = it.endGlyph
	it.StartIndex = it.EndIndex
	it.StartChar = it.EndChar

	cluster := glyphs.logClusters[glyphIndex]
	if it.isLTR() {
		for {
			glyphIndex++
			if glyphIndex == len(glyphs.Glyphs) {
				it.EndIndex = item.Length
				it.EndChar = item.NumChars
				break
			}
			if glyphs.logClusters[glyphIndex] != cluster {
				it.EndIndex = glyphs.logClusters[glyphIndex]
				it.EndChar += charsInByteRange(it.text, item, it.StartIndex, it.EndIndex)
				break
			}
		}
	} else {
		for {
			glyphIndex--
			if glyphIndex < 0 {
				it.EndIndex = item.Length
				it.EndChar = item.NumChars
				break
			}
			if glyphs.logClusters[glyphIndex] != cluster {
				it.EndIndex = glyphs.logClusters[glyphIndex]
				it.EndChar += charsInByteRange(it.text, item, it.StartIndex, it.EndIndex)
				break
			}
		}
	}

	it.endGlyph = glyphIndex
	return true
}

// PrevCluster retreats to the preceding cluster; returns false if already
// before the first one.
func (it *GlyphItemIter) PrevCluster() bool {
	glyphs := it.glyphItem.Glyphs
	item := it.glyphItem.Item
	glyphIndex := it.startGlyph

	if it.isLTR() {
		if glyphIndex == 0 {
			return false
		}
	} else {
		if glyphIndex == len(glyphs.Glyphs)-1 {
			return false
		}
	}

	it.endGlyph = it.startGlyph
	it.EndIndex = it.StartIndex
	it.EndChar = it.StartChar

	if it.isLTR() {
		cluster := glyphs.logClusters[glyphIndex-1]
		for {
			if glyphIndex == 0 {
				it.StartIndex = 0
				it.StartChar = 0
				break
			}
			glyphIndex--
			if glyphs.logClusters[glyphIndex] != cluster {
				glyphIndex++
				it.StartIndex = glyphs.logClusters[glyphIndex]
				it.StartChar -= charsInByteRange(it.text, item, it.StartIndex, it.EndIndex)
				break
			}
		}
	} else {
		cluster := glyphs.logClusters[glyphIndex+1]
		for {
			if glyphIndex == len(glyphs.Glyphs)-1 {
				it.StartIndex = 0
				it.StartChar = 0
				break
			}
			glyphIndex++
			if glyphs.logClusters[glyphIndex] != cluster {
				glyphIndex--
				it.StartIndex = glyphs.logClusters[glyphIndex]
				it.StartChar -= charsInByteRange(it.text, item, it.StartIndex, it.EndIndex)
				break
			}
		}
	}

	it.startGlyph = glyphIndex
	return true
}

// charsInByteRange counts characters of `item` that fall in the byte range
// [from, to) relative to the item's own text.
func charsInByteRange(text []rune, item *Item, from, to int) int {
	if to < from {
		return 0
	}
	return to - from
}
