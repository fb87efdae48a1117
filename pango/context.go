package pango

// Context carries the process-wide inputs of itemization: the font map
// fonts are resolved against, the default font description and language,
// the paragraph base direction, and the gravity settings for vertical
// text. A Context is cheap to share between LineBreakers; the serial
// counter lets callers detect when any of its settings changed.
type Context struct {
	fontMap  FontMap
	fontDesc FontDescription

	setLanguage Language // language explicitly set by the caller, may be empty
	language    Language // setLanguage with the locale default filled in

	base_dir     Direction
	base_gravity Gravity
	gravity_hint GravityHint

	Matrix           *Matrix
	resolved_gravity Gravity // base_gravity, with AUTO resolved through Matrix

	round_glyph_positions bool

	serial, fontmapSerial uint
}

// NewContext returns a Context bound to `fontmap`, with a 12pt serif
// default font, the locale language, weak-LTR base direction and southern
// gravity.
func NewContext(fontmap FontMap) *Context {
	context := &Context{
		base_dir:              DIRECTION_WEAK_LTR,
		serial:                1,
		language:              DefaultLanguage(),
		round_glyph_positions: true,
	}

	desc := NewFontDescription()
	desc.SetFamily("serif")
	desc.SetStyle(STYLE_NORMAL)
	desc.SetVariant(VARIANT_NORMAL)
	desc.SetWeight(WEIGHT_NORMAL)
	desc.SetStretch(STRETCH_NORMAL)
	desc.SetSize(12 * Scale)
	context.fontDesc = desc

	context.setFontMap(fontmap)
	context.updateResolvedGravity()

	return context
}

func (context *Context) setFontMap(fontMap FontMap) {
	if fontMap == context.fontMap {
		return
	}
	context.changed()
	context.fontMap = fontMap
	context.fontmapSerial = fontMap.GetSerial()
}

// changed bumps the serial, skipping 0 so callers can treat 0 as "never".
func (context *Context) changed() {
	context.serial++
	if context.serial == 0 {
		context.serial++
	}
}

// Serial returns the current change serial of the context. It starts at a
// small nonzero value and is bumped whenever a setter changes a setting
// (SetMatrix bumps it on every call); it may wrap, so
// compare serials only for inequality.
func (context *Context) Serial() uint { return context.serial }

// SetLanguage sets the default language tag used when no language
// attribute covers a position. An empty tag restores the locale default.
func (context *Context) SetLanguage(language Language) {
	if language != context.language {
		context.changed()
	}
	context.setLanguage = language
	if language != "" {
		context.language = language
	} else {
		context.language = DefaultLanguage()
	}
}

// GetLanguage returns the language set with SetLanguage (not the resolved
// locale default).
func (context *Context) GetLanguage() Language { return context.setLanguage }

// SetFontDescription sets the font description used when no font
// attributes cover a position.
func (context *Context) SetFontDescription(desc FontDescription) {
	if !desc.pango_font_description_equal(context.fontDesc) {
		context.changed()
		context.fontDesc = desc
	}
}

// SetBaseDir sets the paragraph direction fed to the bidirectional
// algorithm: LTR/RTL force the paragraph direction, the weak variants
// apply only when the text has no strong character of its own.
func (context *Context) SetBaseDir(direction Direction) {
	if direction != context.base_dir {
		context.changed()
	}
	context.base_dir = direction
}

// GetBaseDir returns the direction set with SetBaseDir.
func (context *Context) GetBaseDir() Direction { return context.base_dir }

// SetBaseGravity sets the gravity vertical text is laid out with;
// GRAVITY_AUTO resolves through the context matrix.
func (context *Context) SetBaseGravity(gravity Gravity) {
	if gravity != context.base_gravity {
		context.changed()
	}
	context.base_gravity = gravity
	context.updateResolvedGravity()
}

// SetMatrix sets the transformation applied when rendering with this
// context; the core only consults it to resolve GRAVITY_AUTO.
func (context *Context) SetMatrix(matrix *Matrix) {
	context.changed()
	context.Matrix = matrix
	context.updateResolvedGravity()
}

func (context *Context) updateResolvedGravity() {
	if context.base_gravity == GRAVITY_AUTO {
		context.resolved_gravity = pango_gravity_get_for_matrix(context.Matrix)
	} else {
		context.resolved_gravity = context.base_gravity
	}
}

// Gravity returns the resolved gravity of the context: the base gravity,
// with AUTO resolved against the matrix rotation.
func (context *Context) Gravity() Gravity { return context.resolved_gravity }

// SetRoundGlyphPositions sets whether shaping should round glyph positions
// and widths to whole device units, for renderers without subpixel
// positioning.
func (context *Context) SetRoundGlyphPositions(round bool) {
	if context.round_glyph_positions != round {
		context.changed()
		context.round_glyph_positions = round
	}
}

// loadFont resolves `desc` against the context's font map.
func (context *Context) loadFont(desc *FontDescription) Font {
	if context == nil || context.fontMap == nil {
		return nil
	}
	return LoadFont(context.fontMap, context, desc)
}

// GetMetrics returns aggregate metrics for text in `desc` and `lang`
// rendered with this context, nil/empty meaning the context defaults.
// Ascent, descent and height come from the fonts of the matching fontset;
// the approximate character width is measured by shaping a sample string
// representative of the language.
func (context *Context) GetMetrics(desc *FontDescription, lang Language) FontMetrics {
	if desc == nil {
		desc = &context.fontDesc
	}
	if lang == "" {
		lang = context.language
	}

	fontset := context.fontMap.LoadFontset(context, desc, lang)
	metrics := baseMetrics(fontset)

	sample := []rune(GetSampleString(lang))
	items := context.itemizeWithFont(sample, desc)
	metrics.updateFromItems(lang, sample, items)

	return metrics
}

// baseMetrics seeds a FontMetrics from the first font of `fontset`.
func baseMetrics(fontset Fontset) FontMetrics {
	var metrics FontMetrics
	language := fontset.GetLanguage()
	fontset.Foreach(func(font Font) bool {
		metrics = FontGetMetrics(font, language)
		return true // first font only
	})
	return metrics
}
