// Package fonts defines the capability surface the layout engine expects
// from a font backend (FreeType, CoreText, DirectWrite, ...): glyph
// coverage, advances and a handful of design metrics. The engine never
// parses or rasterizes fonts itself; backends implement Face and hand it
// to the pango package through its Font interface.
package fonts

// GID identifies a glyph within a font. It is internal to the font and
// should not be confused with Unicode code points.
type GID uint32

// CmapEncoding identifies the system a Cmap uses to describe characters.
type CmapEncoding uint8

const (
	EncOther CmapEncoding = iota
	EncUnicode
	EncSymbol
)

// CmapIter is an iterator over a Cmap.
type CmapIter interface {
	// Next returns true if the iterator still has data to yield.
	Next() bool

	// Char must be called only when `Next` has returned `true`.
	Char() (rune, GID)
}

// Cmap stores a compact representation of a character-to-glyph mapping,
// offering both on-demand rune lookup and full range iteration. It is
// conceptually equivalent to a map[rune]GID, but is often implemented more
// efficiently by backends.
type Cmap interface {
	// Iter returns a new iterator over the cmap. Multiple iterators may be
	// used over the same cmap. The returned interface is guaranteed not to
	// be nil.
	Iter() CmapIter

	// Lookup avoids the construction of a map when only few runes need to
	// be fetched. It returns a default value and false when no glyph is
	// provided.
	Lookup(rune) (GID, bool)
}

var (
	_ Cmap     = CmapSimple(nil)
	_ CmapIter = (*cmap0Iter)(nil)
)

// CmapSimple is a map-based Cmap implementation, suitable for tests and
// for backends with small character repertoires.
type CmapSimple map[rune]GID

type cmap0Iter struct {
	data CmapSimple
	keys []rune
	pos  int
}

func (it *cmap0Iter) Next() bool {
	return it.pos < len(it.keys)
}

func (it *cmap0Iter) Char() (rune, GID) {
	r := it.keys[it.pos]
	it.pos++
	return r, it.data[r]
}

func (s CmapSimple) Iter() CmapIter {
	keys := make([]rune, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	return &cmap0Iter{data: s, keys: keys}
}

func (s CmapSimple) Lookup(r rune) (GID, bool) {
	v, ok := s[r]
	return v, ok
}

// FontExtents exposes the global line metrics of a face, in font units.
type FontExtents struct {
	Ascender  float32 // Typographic ascender.
	Descender float32 // Typographic descender.
	LineGap   float32 // Suggested line spacing gap.
}

// LineMetric identifies one metric about the font.
// Some formats only support a subset of the metrics defined by the constants.
type LineMetric uint8

const (
	// Distance above the baseline of the top of the underline.
	// Since most fonts have underline positions beneath the baseline, this value is typically negative.
	UnderlinePosition LineMetric = iota

	// Suggested thickness to draw for the underline.
	UnderlineThickness

	// Distance above the baseline of the top of the strikethrough.
	StrikethroughPosition

	// Suggested thickness to draw for the strikethrough.
	StrikethroughThickness

	SuperscriptEmYSize
	SuperscriptEmXOffset

	SubscriptEmYSize
	SubscriptEmYOffset
	SubscriptEmXOffset
)

// GlyphExtents exposes extent values, measured in font units.
// Note that height is negative in coordinate systems that grow up.
type GlyphExtents struct {
	XBearing float32 // Left side of glyph from origin
	YBearing float32 // Top side of glyph from origin
	Width    float32 // Distance from left to right side
	Height   float32 // Distance from top to bottom side
}

// Face provides unified access to one font of a font file, whatever its
// format. Implementations must be valid map keys to simplify caching.
type Face interface {
	// Upem returns the units per em of the font file, or 1000 as a
	// fallback value. This value is only relevant for scalable fonts.
	Upem() uint16

	// Cmap returns the mapping between input character codes and glyph
	// ids, and the encoding system the mapping uses.
	Cmap() (Cmap, CmapEncoding)

	// NominalGlyph returns the glyph used to represent the given rune,
	// or false if not found.
	NominalGlyph(ch rune) (GID, bool)

	// HorizontalAdvance returns the horizontal advance in font units.
	// When no data is available but the glyph index is valid, this method
	// should return a default value (the upem number for example).
	// If the glyph is invalid it should return 0.
	HorizontalAdvance(gid GID) float32

	// LineMetric returns the metric identified by `metric` (in font
	// units), or false if the font does not provide such information.
	LineMetric(metric LineMetric) (float32, bool)

	// FontHExtents returns the extents of the font for horizontal text,
	// or false if not available, in font units.
	FontHExtents() (FontExtents, bool)

	// GlyphExtents retrieves the extents for a specified glyph, or false
	// if not available.
	GlyphExtents(glyph GID) (GlyphExtents, bool)
}
