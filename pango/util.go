package pango

import "fmt"

// debugMode toggles the internal consistency checks ported from the
// original g_assert calls; off by default since they are O(n) in hot loops.
var debugMode = false

func assert(cond bool, context string) {
	if !cond {
		panic(fmt.Sprintf("pango: assertion failed: %s", context))
	}
}

// MaxInt is the sentinel end-of-text index used by attributes:
// PANGO_ATTR_INDEX_TO_TEXT_END in the original sources.
const MaxInt = int(^uint(0) >> 1)

func minL(a, b fribidiLevel) fribidiLevel {
	if a < b {
		return a
	}
	return b
}

func maxG(a, b GlyphUnit) GlyphUnit {
	if a > b {
		return a
	}
	return b
}

// isWide reports whether `r` is a wide (East Asian fullwidth/wide) character,
// used by ellipsization to decide between a baseline and mid-line ellipsis
// glyph.
func isWide(r rune) bool {
	switch {
	case r >= 0x1100 && r <= 0x115F: // Hangul Jamo
		return true
	case r >= 0x2E80 && r <= 0xA4CF && r != 0x303F: // CJK ... Yi
		return true
	case r >= 0xAC00 && r <= 0xD7A3: // Hangul Syllables
		return true
	case r >= 0xF900 && r <= 0xFAFF: // CJK Compatibility Ideographs
		return true
	case r >= 0xFF00 && r <= 0xFF60: // Fullwidth Forms
		return true
	case r >= 0xFFE0 && r <= 0xFFE6:
		return true
	case r >= 0x20000 && r <= 0x3FFFD: // CJK extensions, incl. supplementary
		return true
	}
	return false
}
