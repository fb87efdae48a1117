package pango

import "github.com/go-pango/pangocore/fonts"

// GlyphUnit is a distance expressed in Pango units (see Scale).
type GlyphUnit int32

// FontMetrics holds overall metric information for a font, as consumed by
// the line breaker for tab stops, letter-spacing safe distances, hyphen
// widths and baseline shifts.
type FontMetrics struct {
	Ascent  GlyphUnit
	Descent GlyphUnit
	Height  GlyphUnit

	ApproximateCharWidth  GlyphUnit
	ApproximateDigitWidth GlyphUnit

	UnderlinePosition  GlyphUnit
	UnderlineThickness GlyphUnit

	StrikethroughPosition  GlyphUnit
	StrikethroughThickness GlyphUnit
}

// updateFromItems folds per-item metrics into the aggregate: ascent,
// descent and height take the maximum over the fonts involved, and the
// approximate character width is the shaped width of the sample text
// divided by its character count.
func (m *FontMetrics) updateFromItems(language Language, text []rune, items []*Item) {
	if len(text) == 0 {
		return
	}
	seenFonts := map[Font]bool{}
	var totalWidth GlyphUnit
	for _, item := range items {
		font := item.Analysis.Font
		if font != nil && !seenFonts[font] {
			seenFonts[font] = true
			raw := FontGetMetrics(font, language)
			if raw.Ascent > m.Ascent {
				m.Ascent = raw.Ascent
			}
			if raw.Descent > m.Descent {
				m.Descent = raw.Descent
			}
			if raw.Height > m.Height {
				m.Height = raw.Height
			}
		}
		glyphs := new(GlyphString)
		glyphs.shapeWithFlags(text, item.Offset, item.Length, &item.Analysis, shapeNone)
		totalWidth += glyphs.getWidth()
	}
	m.ApproximateCharWidth = totalWidth / GlyphUnit(len(text))
}

// Font represents a single resolved, renderable font: a FontDescription
// that a FontMap has matched to an actual font resource. The core never
// rasterizes a Font itself; it only queries its coverage and metrics, and
// hands it to the external shape() collaborator.
//
// Implementations must be valid map keys so that the itemizer can cache
// character->font lookups (see runeFontCache) and the fontset cache can
// key off of them directly.
type Font interface {
	// Describe returns the font's actual resolved description.
	Describe() FontDescription

	// Face exposes the lower-level metrics/coverage surface, as provided by
	// an external font backend (FreeType, CoreText, ...); see fonts.Face.
	Face() fonts.Face

	// GetMetrics returns metrics appropriate for `language`, or the font's
	// default language metrics if language is empty.
	GetMetrics(language Language) FontMetrics
}

// pango_font_has_char reports whether `font` has a glyph for `wc`.
func pango_font_has_char(font Font, wc rune) bool {
	if font == nil {
		return false
	}
	face := font.Face()
	if face == nil {
		return false
	}
	_, ok := face.NominalGlyph(wc)
	return ok
}

// FontGetMetrics fetches the metrics for `font`, substituting the font's own
// default language if `language` is empty.
func FontGetMetrics(font Font, language Language) FontMetrics {
	if font == nil {
		return FontMetrics{}
	}
	return font.GetMetrics(language)
}

// LoadFont loads the font in `fontMap` that is the closest match for `desc`.
func LoadFont(fontMap FontMap, context *Context, desc *FontDescription) Font {
	if fontMap == nil || desc == nil {
		return nil
	}
	return fontMap.LoadFont(context, *desc)
}

// FontFamily represents a group of fonts with the same family name, as
// reported by a FontMap.
type FontFamily interface {
	Name() string
	// Faces lists the distinct faces (styles, weights, ...) of this family.
	Faces() []FontFace
	IsMonospace() bool
}

// FontFace represents a single face (a specific style/weight/stretch
// combination) of a FontFamily.
type FontFace interface {
	FaceName() string
	Describe() FontDescription
}
