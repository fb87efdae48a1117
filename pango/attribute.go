package pango

import "sync"

// AttrAffects records which stage of the pipeline an attribute type
// influences, matching the PANGO_ATTR_TYPE macro's `affects` argument in the
// original sources: itemization, line breaking, shaping, or only rendering.
type AttrAffects uint8

const (
	AttrAffectsNone AttrAffects = iota
	AttrAffectsItemization
	AttrAffectsBreaking
	AttrAffectsShaping
	AttrAffectsRendering
)

// AttrMerge records how two overlapping attributes of the same type combine
// when an AttrIterator walks past their boundary: the last one inserted
// wins (Overrides), or every open instance contributes (Accumulates, used
// for font descriptions, font features, baseline shifts and font scales,
// which the iterator does not collapse to one value).
type AttrMerge uint8

const (
	AttrMergeOverrides AttrMerge = iota
	AttrMergeAccumulates
)

// AttrType identifies the kind of an Attribute and its Affects/Merge
// classification. Values below attrTypeUserStart are predefined; values at
// or above it come from RegisterAttrType.
type AttrType uint32

const attrTypeUserStart AttrType = 0x01000000

const (
	ATTR_INVALID AttrType = iota

	ATTR_LANGUAGE
	ATTR_FAMILY
	ATTR_STYLE
	ATTR_WEIGHT
	ATTR_VARIANT
	ATTR_STRETCH
	ATTR_SIZE
	ATTR_FONT_DESC
	ATTR_FOREGROUND
	ATTR_BACKGROUND
	ATTR_UNDERLINE
	ATTR_STRIKETHROUGH
	ATTR_RISE
	ATTR_SHAPE
	ATTR_SCALE
	ATTR_FALLBACK
	ATTR_LETTER_SPACING
	ATTR_UNDERLINE_COLOR
	ATTR_STRIKETHROUGH_COLOR
	ATTR_ABSOLUTE_SIZE
	ATTR_GRAVITY
	ATTR_GRAVITY_HINT
	ATTR_FONT_FEATURES
	ATTR_FOREGROUND_ALPHA
	ATTR_BACKGROUND_ALPHA
	ATTR_ALLOW_BREAKS
	ATTR_SHOW
	ATTR_INSERT_HYPHENS
	ATTR_OVERLINE
	ATTR_OVERLINE_COLOR
	ATTR_LINE_HEIGHT
	ATTR_ABSOLUTE_LINE_HEIGHT
	ATTR_TEXT_TRANSFORM
	ATTR_WORD
	ATTR_SENTENCE
	ATTR_PARAGRAPH
	ATTR_BASELINE_SHIFT
	ATTR_FONT_SCALE
	ATTR_LINE_SPACING
)

type attrTypeInfo struct {
	name    string
	affects AttrAffects
	merge   AttrMerge
}

var attrTypeTable = map[AttrType]attrTypeInfo{
	ATTR_LANGUAGE:             {"language", AttrAffectsItemization, AttrMergeOverrides},
	ATTR_FAMILY:               {"family", AttrAffectsItemization, AttrMergeOverrides},
	ATTR_STYLE:                {"style", AttrAffectsItemization, AttrMergeOverrides},
	ATTR_WEIGHT:               {"weight", AttrAffectsItemization, AttrMergeOverrides},
	ATTR_VARIANT:              {"variant", AttrAffectsItemization, AttrMergeOverrides},
	ATTR_STRETCH:              {"stretch", AttrAffectsItemization, AttrMergeOverrides},
	ATTR_SIZE:                 {"size", AttrAffectsItemization, AttrMergeOverrides},
	ATTR_FONT_DESC:            {"font-desc", AttrAffectsItemization, AttrMergeAccumulates},
	ATTR_FOREGROUND:           {"foreground", AttrAffectsRendering, AttrMergeOverrides},
	ATTR_BACKGROUND:           {"background", AttrAffectsRendering, AttrMergeOverrides},
	ATTR_UNDERLINE:            {"underline", AttrAffectsRendering, AttrMergeOverrides},
	ATTR_STRIKETHROUGH:        {"strikethrough", AttrAffectsRendering, AttrMergeOverrides},
	ATTR_RISE:                 {"rise", AttrAffectsShaping, AttrMergeOverrides},
	ATTR_SHAPE:                {"shape", AttrAffectsShaping, AttrMergeOverrides},
	ATTR_SCALE:                {"scale", AttrAffectsItemization, AttrMergeOverrides},
	ATTR_FALLBACK:             {"fallback", AttrAffectsItemization, AttrMergeOverrides},
	ATTR_LETTER_SPACING:       {"letter-spacing", AttrAffectsBreaking, AttrMergeOverrides},
	ATTR_UNDERLINE_COLOR:      {"underline-color", AttrAffectsRendering, AttrMergeOverrides},
	ATTR_STRIKETHROUGH_COLOR:  {"strikethrough-color", AttrAffectsRendering, AttrMergeOverrides},
	ATTR_ABSOLUTE_SIZE:        {"absolute-size", AttrAffectsItemization, AttrMergeOverrides},
	ATTR_GRAVITY:              {"gravity", AttrAffectsItemization, AttrMergeOverrides},
	ATTR_GRAVITY_HINT:         {"gravity-hint", AttrAffectsItemization, AttrMergeOverrides},
	ATTR_FONT_FEATURES:        {"font-features", AttrAffectsShaping, AttrMergeAccumulates},
	ATTR_FOREGROUND_ALPHA:     {"foreground-alpha", AttrAffectsRendering, AttrMergeOverrides},
	ATTR_BACKGROUND_ALPHA:     {"background-alpha", AttrAffectsRendering, AttrMergeOverrides},
	ATTR_ALLOW_BREAKS:         {"allow-breaks", AttrAffectsBreaking, AttrMergeOverrides},
	ATTR_SHOW:                 {"show", AttrAffectsShaping, AttrMergeOverrides},
	ATTR_INSERT_HYPHENS:       {"insert-hyphens", AttrAffectsBreaking, AttrMergeOverrides},
	ATTR_OVERLINE:             {"overline", AttrAffectsRendering, AttrMergeOverrides},
	ATTR_OVERLINE_COLOR:       {"overline-color", AttrAffectsRendering, AttrMergeOverrides},
	ATTR_LINE_HEIGHT:          {"line-height", AttrAffectsShaping, AttrMergeOverrides},
	ATTR_ABSOLUTE_LINE_HEIGHT: {"absolute-line-height", AttrAffectsShaping, AttrMergeOverrides},
	ATTR_TEXT_TRANSFORM:       {"text-transform", AttrAffectsShaping, AttrMergeOverrides},
	ATTR_WORD:                 {"word", AttrAffectsBreaking, AttrMergeOverrides},
	ATTR_SENTENCE:             {"sentence", AttrAffectsBreaking, AttrMergeOverrides},
	ATTR_PARAGRAPH:            {"paragraph", AttrAffectsBreaking, AttrMergeOverrides},
	ATTR_BASELINE_SHIFT:       {"baseline-shift", AttrAffectsShaping, AttrMergeAccumulates},
	ATTR_FONT_SCALE:           {"font-scale", AttrAffectsItemization, AttrMergeAccumulates},
	ATTR_LINE_SPACING:         {"line-spacing", AttrAffectsShaping, AttrMergeOverrides},
}

var (
	attrRegistryMu   sync.Mutex
	attrRegistryNext = attrTypeUserStart
	attrRegistryName = map[AttrType]string{}
	attrRegistryID   = map[string]AttrType{}
)

// RegisterAttrType allocates a new AttrType for an application-specific
// attribute identified by `name`, or returns the type previously allocated
// for that name. Registered types affect rendering only and override on
// conflict, matching pango_attr_type_register's defaults.
func RegisterAttrType(name string) AttrType {
	attrRegistryMu.Lock()
	defer attrRegistryMu.Unlock()

	if t, ok := attrRegistryID[name]; ok {
		return t
	}
	t := attrRegistryNext
	attrRegistryNext++
	attrRegistryID[name] = t
	attrRegistryName[t] = name
	return t
}

// AttrTypeName returns the name of a registered attribute type, or "" if
// `t` is a predefined type or was never registered.
func AttrTypeName(t AttrType) string {
	attrRegistryMu.Lock()
	defer attrRegistryMu.Unlock()
	return attrRegistryName[t]
}

func (t AttrType) info() attrTypeInfo {
	if info, ok := attrTypeTable[t]; ok {
		return info
	}
	return attrTypeInfo{affects: AttrAffectsRendering, merge: AttrMergeOverrides}
}

// affectsLayout reports whether an attribute of this type was already baked
// into Analysis by the itemizer (and so should not also be duplicated into
// Item.Analysis.ExtraAttrs), mirroring pango_attr_type_get_affects returning
// anything other than PANGO_ATTR_AFFECTS_RENDERING... except the itemizer
// only actually consumes the itemization-affecting subset; shaping- and
// breaking-affecting attributes still ride along as extra attrs for the
// shaper and line breaker to consume.
func (t AttrType) affectsLayout() bool {
	return t.info().affects == AttrAffectsItemization
}

func (t AttrType) String() string {
	if info, ok := attrTypeTable[t]; ok {
		return info.name
	}
	if name := AttrTypeName(t); name != "" {
		return name
	}
	return "unknown"
}

// Color is a 16-bit-per-channel RGB color, matching PangoColor.
type Color struct {
	Red, Green, Blue uint16
}

// Rectangle describes a rectangle in Pango units, used by shape attributes
// to report the ink and logical extents of an externally-rendered object
// (an inline image, for instance) that the shaper has no other way to
// measure.
type Rectangle struct {
	X, Y, Width, Height GlyphUnit
}

// AttrInt is the payload of attributes whose value is a small integer or
// enum member (weight, style, underline, and so on).
type AttrInt int32

// AttrFloat is the payload of attributes whose value is a scaling factor or
// other real number (scale, line-height, line-spacing).
type AttrFloat float64

// AttrString is the payload of attributes whose value is free text
// (family name, font feature string).
type AttrString string

// AttrColor is the payload of the foreground/background/underline-color/
// strikethrough-color/overline-color attributes.
type AttrColor Color

// AttrFontDesc is the payload of ATTR_FONT_DESC.
type AttrFontDesc FontDescription

// AttrLanguage is the payload of ATTR_LANGUAGE.
type AttrLanguage Language

// AttrShape is the payload of ATTR_SHAPE: a client-supplied replacement for
// the usual glyph metrics of the run, plus an opaque handle the renderer
// can use to draw whatever the shape represents.
type AttrShape struct {
	Ink, Logical Rectangle
	Data         interface{}
}

// Attribute is a single styling instruction applying to the half-open byte
// range [StartIndex, EndIndex) of some paragraph text. EndIndex may be
// MaxInt to mean "extends to the end of the text".
type Attribute struct {
	Type       AttrType
	StartIndex int
	EndIndex   int
	Data       interface{}
}

func newAttr(t AttrType, data interface{}) *Attribute {
	return &Attribute{Type: t, StartIndex: 0, EndIndex: MaxInt, Data: data}
}

func NewAttrLanguage(lang Language) *Attribute { return newAttr(ATTR_LANGUAGE, AttrLanguage(lang)) }
func NewAttrFamily(family string) *Attribute   { return newAttr(ATTR_FAMILY, AttrString(family)) }
func NewAttrStyle(style Style) *Attribute      { return newAttr(ATTR_STYLE, AttrInt(style)) }
func NewAttrWeight(weight Weight) *Attribute   { return newAttr(ATTR_WEIGHT, AttrInt(weight)) }
func NewAttrVariant(variant Variant) *Attribute {
	return newAttr(ATTR_VARIANT, AttrInt(variant))
}
func NewAttrStretch(stretch Stretch) *Attribute { return newAttr(ATTR_STRETCH, AttrInt(stretch)) }
func NewAttrSize(size int32) *Attribute         { return newAttr(ATTR_SIZE, AttrInt(size)) }
func NewAttrAbsoluteSize(size int32) *Attribute { return newAttr(ATTR_ABSOLUTE_SIZE, AttrInt(size)) }
func NewAttrFontDesc(desc FontDescription) *Attribute {
	return newAttr(ATTR_FONT_DESC, AttrFontDesc(desc))
}
func NewAttrForeground(c Color) *Attribute      { return newAttr(ATTR_FOREGROUND, AttrColor(c)) }
func NewAttrBackground(c Color) *Attribute      { return newAttr(ATTR_BACKGROUND, AttrColor(c)) }
func NewAttrUnderline(u Underline) *Attribute   { return newAttr(ATTR_UNDERLINE, AttrInt(u)) }
func NewAttrUnderlineColor(c Color) *Attribute  { return newAttr(ATTR_UNDERLINE_COLOR, AttrColor(c)) }
func NewAttrOverline(o Overline) *Attribute     { return newAttr(ATTR_OVERLINE, AttrInt(o)) }
func NewAttrOverlineColor(c Color) *Attribute   { return newAttr(ATTR_OVERLINE_COLOR, AttrColor(c)) }
func NewAttrStrikethrough(b bool) *Attribute {
	return newAttr(ATTR_STRIKETHROUGH, AttrInt(boolToInt(b)))
}
func NewAttrStrikethroughColor(c Color) *Attribute {
	return newAttr(ATTR_STRIKETHROUGH_COLOR, AttrColor(c))
}
func NewAttrRise(rise int32) *Attribute { return newAttr(ATTR_RISE, AttrInt(rise)) }
func NewAttrBaselineShift(shift int32) *Attribute {
	return newAttr(ATTR_BASELINE_SHIFT, AttrInt(shift))
}
func NewAttrFontScale(scale FontScale) *Attribute { return newAttr(ATTR_FONT_SCALE, AttrInt(scale)) }
func NewAttrScale(factor float64) *Attribute      { return newAttr(ATTR_SCALE, AttrFloat(factor)) }
func NewAttrFallback(enable bool) *Attribute {
	return newAttr(ATTR_FALLBACK, AttrInt(boolToInt(enable)))
}
func NewAttrLetterSpacing(spacing int32) *Attribute {
	return newAttr(ATTR_LETTER_SPACING, AttrInt(spacing))
}
func NewAttrShape(ink, logical Rectangle, data interface{}) *Attribute {
	return newAttr(ATTR_SHAPE, AttrShape{Ink: ink, Logical: logical, Data: data})
}
func NewAttrGravity(gravity Gravity) *Attribute { return newAttr(ATTR_GRAVITY, AttrInt(gravity)) }
func NewAttrGravityHint(hint GravityHint) *Attribute {
	return newAttr(ATTR_GRAVITY_HINT, AttrInt(hint))
}
func NewAttrFontFeatures(features string) *Attribute {
	return newAttr(ATTR_FONT_FEATURES, AttrString(features))
}
func NewAttrForegroundAlpha(alpha uint16) *Attribute {
	return newAttr(ATTR_FOREGROUND_ALPHA, AttrInt(alpha))
}
func NewAttrBackgroundAlpha(alpha uint16) *Attribute {
	return newAttr(ATTR_BACKGROUND_ALPHA, AttrInt(alpha))
}
func NewAttrAllowBreaks(allow bool) *Attribute {
	return newAttr(ATTR_ALLOW_BREAKS, AttrInt(boolToInt(allow)))
}
func NewAttrInsertHyphens(insert bool) *Attribute {
	return newAttr(ATTR_INSERT_HYPHENS, AttrInt(boolToInt(insert)))
}
func NewAttrShow(flags ShowFlags) *Attribute { return newAttr(ATTR_SHOW, AttrInt(flags)) }
func NewAttrLineHeight(factor float64) *Attribute {
	return newAttr(ATTR_LINE_HEIGHT, AttrFloat(factor))
}
func NewAttrAbsoluteLineHeight(height int32) *Attribute {
	return newAttr(ATTR_ABSOLUTE_LINE_HEIGHT, AttrInt(height))
}
func NewAttrLineSpacing(spacing int32) *Attribute {
	return newAttr(ATTR_LINE_SPACING, AttrInt(spacing))
}
func NewAttrTextTransform(t TextTransform) *Attribute {
	return newAttr(ATTR_TEXT_TRANSFORM, AttrInt(t))
}
func NewAttrWord() *Attribute      { return newAttr(ATTR_WORD, nil) }
func NewAttrSentence() *Attribute  { return newAttr(ATTR_SENTENCE, nil) }
func NewAttrParagraph() *Attribute { return newAttr(ATTR_PARAGRAPH, nil) }

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// Underline enumerates the underline styles of ATTR_UNDERLINE.
type Underline uint8

const (
	UNDERLINE_NONE Underline = iota
	UNDERLINE_SINGLE
	UNDERLINE_DOUBLE
	UNDERLINE_LOW
	UNDERLINE_ERROR
	UNDERLINE_SINGLE_LINE
	UNDERLINE_DOUBLE_LINE
	UNDERLINE_ERROR_LINE
)

// Overline enumerates the overline styles of ATTR_OVERLINE.
type Overline uint8

const (
	OVERLINE_NONE Overline = iota
	OVERLINE_SINGLE
)

// BaselineShift enumerates the named baseline shift presets, alongside the
// numeric offsets ATTR_BASELINE_SHIFT also accepts.
type BaselineShift int32

const (
	BASELINE_SHIFT_NONE BaselineShift = iota
	BASELINE_SHIFT_SUPERSCRIPT
	BASELINE_SHIFT_SUBSCRIPT
)

// FontScale enumerates the named relative-size presets of ATTR_FONT_SCALE.
type FontScale uint8

const (
	FONT_SCALE_NONE FontScale = iota
	FONT_SCALE_SUPERSCRIPT
	FONT_SCALE_SUBSCRIPT
	FONT_SCALE_SMALL_CAPS
)

// ShowFlags controls which normally-invisible characters ATTR_SHOW asks the
// renderer to draw a visible representation of.
type ShowFlags uint8

const (
	SHOW_NONE        ShowFlags = 0
	SHOW_SPACES      ShowFlags = 1 << iota
	SHOW_LINE_BREAKS
	SHOW_IGNORABLES
)

// TextTransform enumerates the case transforms of ATTR_TEXT_TRANSFORM.
type TextTransform uint8

const (
	TEXT_TRANSFORM_NONE TextTransform = iota
	TEXT_TRANSFORM_LOWERCASE
	TEXT_TRANSFORM_UPPERCASE
	TEXT_TRANSFORM_CAPITALIZE
)

// equalValue reports whether `a` and `b` carry the same Data payload,
// assuming they are already known to share a Type. Shape attributes compare
// unequal to everything but themselves (the same *Attribute), since their
// Data is an opaque application handle with no defined equality.
func (a *Attribute) equalValue(b *Attribute) bool {
	if a.Type == ATTR_SHAPE {
		return a == b
	}
	return a.Data == b.Data
}

// pango_attribute_equal reports whether `a` and `b` describe the same
// attribute: same type, same range, same value.
func (a *Attribute) pango_attribute_equal(b *Attribute) bool {
	return a.Type == b.Type && a.StartIndex == b.StartIndex && a.EndIndex == b.EndIndex && a.equalValue(b)
}

// copy returns a shallow copy of the attribute; Data payloads are all value
// types (or, for AttrShape, an opaque handle the application owns), so a
// shallow copy is a full copy.
func (a *Attribute) copy() *Attribute {
	cp := *a
	return &cp
}
