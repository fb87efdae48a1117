package pango

import (
	"github.com/benoitkugler/textlayout/fribidi"
)

// strongDirection classifies a rune's strong bidirectional type, used for
// the paragraph-level resolution of pango_find_base_dir (P2/P3 of UAX #9).
type strongDirection uint8

const (
	strongNeutral strongDirection = iota
	strongLTR
	strongRTL
)

func runeStrongDirection(r rune) strongDirection {
	switch {
	case (r >= 0x0590 && r <= 0x08FF) || (r >= 0xFB1D && r <= 0xFDFF) || (r >= 0xFE70 && r <= 0xFEFF):
		// Hebrew, Arabic, and related RTL blocks.
		return strongRTL
	case runeScript(r) == SCRIPT_COMMON || runeScript(r) == SCRIPT_INHERITED || runeScript(r) == SCRIPT_UNKNOWN:
		return strongNeutral
	default:
		return strongLTR
	}
}

// pango_find_base_dir searches `text` for the first character with a strong
// direction and returns it, or DIRECTION_NEUTRAL if there is none.
func pango_find_base_dir(text []rune) Direction {
	for _, r := range text {
		switch runeStrongDirection(r) {
		case strongLTR:
			return DIRECTION_LTR
		case strongRTL:
			return DIRECTION_RTL
		}
	}
	return DIRECTION_NEUTRAL
}

// pango_log2vis_get_embedding_levels resolves the base paragraph direction
// (per UAX #9 P2/P3, when `baseDir` is one of the Weak/Neutral variants)
// and assigns each character its embedding level, one per rune of `text`,
// by running the Unicode bidirectional algorithm from fribidi.
func pango_log2vis_get_embedding_levels(text []rune, baseDir Direction) (Direction, []fribidi.Level) {
	var fribidiBaseDir fribidi.ParType
	switch baseDir {
	case DIRECTION_RTL:
		fribidiBaseDir = fribidi.RTL
	case DIRECTION_LTR:
		fribidiBaseDir = fribidi.LTR
	case DIRECTION_WEAK_RTL:
		fribidiBaseDir = fribidi.WRTL
	case DIRECTION_WEAK_LTR:
		fribidiBaseDir = fribidi.WLTR
	default:
		fribidiBaseDir = fribidi.ON
	}

	bidiTypes := fribidi.GetBidiTypes(text)
	bracketTypes := fribidi.GetBracketTypes(text, bidiTypes)
	levels, _ := fribidi.GetParEmbeddingLevels(bidiTypes, bracketTypes, &fribidiBaseDir)

	if fribidiBaseDir == fribidi.RTL || fribidiBaseDir == fribidi.WRTL {
		baseDir = DIRECTION_RTL
	} else {
		baseDir = DIRECTION_LTR
	}

	return baseDir, levels
}
