package pango

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-pango/pangocore/language"
)

// Language is re-exported from the language package so that the rest of the
// core can refer to `pango.Language` without importing the subpackage
// directly, matching how upstream Pango exposes PangoLanguage as part of its
// own namespace.
type Language = language.Language

// DefaultLanguage returns the Language found in the process locale
// environment variables, or the zero value if none is set.
func DefaultLanguage() Language { return language.DefaultLanguage() }

// NewLanguage canonicalizes a BCP 47 language tag.
func NewLanguage(tag string) Language { return language.NewLanguage(tag) }

// GetSampleString returns a string that is representative of the characters
// needed to render a font for `language`, used when computing aggregate
// font metrics. This only special-cases a handful of well-known scripts and
// otherwise falls back to a Latin pangram, matching Pango's own modest
// ambitions for this helper.
func GetSampleString(lang Language) string {
	switch lang {
	case "ar":
		return "نص حكيم له سر قاطع وذو شأن عظيم مكتوب على ثوب أخضر"
	case "ja":
		return "いろはにほへと ちりぬるを"
	case "ko":
		return "다람쥐 헌 쳇바퀴에 타고파"
	case "he":
		return "דג סקרן שט בים מאוכזב ולפתע מצא חברה"
	}
	if lang.Matches("zh") {
		return "山水風景如畫"
	}
	return "The quick brown fox jumps over the lazy dog."
}

// Scale is the number of Pango units in one device unit (typically a point).
// All width, position and size fields in the core are expressed in Pango
// units unless otherwise noted. See the GLOSSARY.
const Scale = 1024

// Style is the slant style of a font.
type Style uint8

const (
	STYLE_NORMAL Style = iota
	STYLE_OBLIQUE
	STYLE_ITALIC
)

// Variant specifies capitalization variant of a font.
type Variant uint8

const (
	VARIANT_NORMAL Variant = iota
	VARIANT_SMALL_CAPS
	VARIANT_ALL_SMALL_CAPS
	VARIANT_PETITE_CAPS
	VARIANT_ALL_PETITE_CAPS
	VARIANT_UNICASE
	VARIANT_TITLE_CAPS
)

// Weight specifies the weight (boldness) of a font, on the CSS numeric scale.
type Weight int32

const (
	WEIGHT_THIN       Weight = 100
	WEIGHT_ULTRALIGHT Weight = 200
	WEIGHT_LIGHT      Weight = 300
	WEIGHT_SEMILIGHT  Weight = 350
	WEIGHT_BOOK       Weight = 380
	WEIGHT_NORMAL     Weight = 400
	WEIGHT_MEDIUM     Weight = 500
	WEIGHT_SEMIBOLD   Weight = 600
	WEIGHT_BOLD       Weight = 700
	WEIGHT_ULTRABOLD  Weight = 800
	WEIGHT_HEAVY      Weight = 900
	WEIGHT_ULTRAHEAVY Weight = 1000
)

// Stretch specifies the width of the font relative to other designs within a family.
type Stretch uint8

const (
	STRETCH_ULTRA_CONDENSED Stretch = iota
	STRETCH_EXTRA_CONDENSED
	STRETCH_CONDENSED
	STRETCH_SEMI_CONDENSED
	STRETCH_NORMAL
	STRETCH_SEMI_EXPANDED
	STRETCH_EXPANDED
	STRETCH_EXTRA_EXPANDED
	STRETCH_ULTRA_EXPANDED
)

// FontMask bits record which fields of a FontDescription were explicitly
// set, as opposed to left at their default value. AttrIterator.get_font
// uses this to decide whether an overriding attribute has already supplied
// a value for a given field.
type FontMask uint16

const (
	FmFamily FontMask = 1 << iota
	FmStyle
	FmVariant
	FmWeight
	FmStretch
	FmSize
	FmGravity
	FmVariations
	FmFeatures
)

// FontDescription describes a font in an implementation-independent
// manner, as a family name plus a set of style properties that a FontMap
// resolves against the fonts it has available. Fields not covered by `mask`
// are considered unset and are filled in from context defaults.
type FontDescription struct {
	Family string

	Style   Style
	Variant Variant
	Weight  Weight
	Stretch Stretch
	Gravity Gravity

	size         int32 // in Pango units, or points*Scale if not absolute
	sizeIsAbsolute bool

	Variations string // comma separated list of OpenType variation axis tags/values
	Features   string // comma separated list of OpenType feature tags

	mask FontMask
}

// NewFontDescription creates a new FontDescription with no fields set.
func NewFontDescription() FontDescription {
	return FontDescription{Stretch: STRETCH_NORMAL, Gravity: GRAVITY_SOUTH}
}

func (d *FontDescription) SetFamily(family string) {
	d.Family = family
	d.mask |= FmFamily
}

func (d *FontDescription) SetStyle(style Style) {
	d.Style = style
	d.mask |= FmStyle
}

func (d *FontDescription) SetVariant(variant Variant) {
	d.Variant = variant
	d.mask |= FmVariant
}

func (d *FontDescription) SetWeight(weight Weight) {
	d.Weight = weight
	d.mask |= FmWeight
}

func (d *FontDescription) SetStretch(stretch Stretch) {
	d.Stretch = stretch
	d.mask |= FmStretch
}

// SetSize sets the size, in Pango units, scaled by the device's resolution
// and current font scale factor (i.e. NOT absolute; this is the usual case
// for user-specified point sizes).
func (d *FontDescription) SetSize(size int32) {
	d.size = size
	d.sizeIsAbsolute = false
	d.mask |= FmSize
}

// SetAbsoluteSize sets the size, in device units, with no further scaling.
func (d *FontDescription) SetAbsoluteSize(size int32) {
	d.size = size
	d.sizeIsAbsolute = true
	d.mask |= FmSize
}

func (d *FontDescription) SetGravity(gravity Gravity) {
	d.Gravity = gravity
	d.mask |= FmGravity
}

// Size returns the current size, in Pango units (or device units if
// SizeIsAbsolute).
func (d FontDescription) Size() int32 { return d.size }

func (d FontDescription) SizeIsAbsolute() bool { return d.sizeIsAbsolute }

// unsetFields resets every field named in `toUnset` to its default value
// and clears it from the mask (mirrors pango_font_description_unset_fields).
func (d *FontDescription) unsetFields(toUnset FontMask) {
	if toUnset&FmFamily != 0 {
		d.Family = ""
	}
	if toUnset&FmStyle != 0 {
		d.Style = STYLE_NORMAL
	}
	if toUnset&FmVariant != 0 {
		d.Variant = VARIANT_NORMAL
	}
	if toUnset&FmWeight != 0 {
		d.Weight = WEIGHT_NORMAL
	}
	if toUnset&FmStretch != 0 {
		d.Stretch = STRETCH_NORMAL
	}
	if toUnset&FmSize != 0 {
		d.size = 0
		d.sizeIsAbsolute = false
	}
	if toUnset&FmGravity != 0 {
		d.Gravity = GRAVITY_SOUTH
	}
	d.mask &^= toUnset
}

// mergeFrom copies every field set on `other` onto `d`, optionally
// replacing fields already set on `d` (replaceExisting).
func (d *FontDescription) mergeFrom(other FontDescription, replaceExisting bool) {
	newMask := other.mask
	if !replaceExisting {
		newMask &^= d.mask
	}
	if newMask&FmFamily != 0 {
		d.Family = other.Family
	}
	if newMask&FmStyle != 0 {
		d.Style = other.Style
	}
	if newMask&FmVariant != 0 {
		d.Variant = other.Variant
	}
	if newMask&FmWeight != 0 {
		d.Weight = other.Weight
	}
	if newMask&FmStretch != 0 {
		d.Stretch = other.Stretch
	}
	if newMask&FmSize != 0 {
		d.size = other.size
		d.sizeIsAbsolute = other.sizeIsAbsolute
	}
	if newMask&FmGravity != 0 {
		d.Gravity = other.Gravity
	}
	d.mask |= newMask
}

// pango_font_description_equal reports whether two descriptions would select
// the same font; unset fields compare equal to each other regardless of the
// implied default, matching upstream Pango's "merge-oriented" comparison.
func (d FontDescription) pango_font_description_equal(other FontDescription) bool {
	return d.Family == other.Family &&
		d.Style == other.Style &&
		d.Variant == other.Variant &&
		d.Weight == other.Weight &&
		d.Stretch == other.Stretch &&
		d.Gravity == other.Gravity &&
		d.size == other.size &&
		d.sizeIsAbsolute == other.sizeIsAbsolute &&
		d.Variations == other.Variations &&
		d.Features == other.Features
}

func (d FontDescription) String() string {
	var b strings.Builder
	b.WriteString(d.Family)
	if d.Style != STYLE_NORMAL {
		fmt.Fprintf(&b, " %v", d.Style)
	}
	if d.Weight != WEIGHT_NORMAL {
		fmt.Fprintf(&b, " %d", d.Weight)
	}
	b.WriteByte(' ')
	b.WriteString(strconv.FormatFloat(float64(d.size)/Scale, 'g', -1, 64))
	return b.String()
}
