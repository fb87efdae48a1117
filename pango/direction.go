package pango

// Direction represents a direction in the Unicode bidirectional
// algorithm; not every value in this enumeration makes sense for
// every usage of `Direction`; for example, the return value of
// unicode character direction or keyboard direction cannot be
// `DIRECTION_WEAK_LTR` or `DIRECTION_WEAK_RTL`, since every character
// is either neutral or has a strong direction; on the other hand
// `DIRECTION_NEUTRAL` doesn't make sense to pass to pango_itemize_with_base_dir().
type Direction uint8

const (
	DIRECTION_LTR Direction = iota
	DIRECTION_RTL
	DIRECTION_TTB_LTR // deprecated alias, kept for source compat with the original bindings
	DIRECTION_TTB_RTL
	DIRECTION_WEAK_LTR
	DIRECTION_WEAK_RTL
	DIRECTION_NEUTRAL
)

// IsRTL reports whether `d` resolves to a right-to-left paragraph direction.
func (d Direction) IsRTL() bool {
	return d == DIRECTION_RTL || d == DIRECTION_WEAK_RTL || d == DIRECTION_TTB_RTL
}

// Gravity represents the orientation of glyphs in a segment
// of text. This is useful when rendering vertical text layouts,
// where the orientation of glyphs is different from the
// orientation of the line.
type Gravity uint8

const (
	GRAVITY_SOUTH Gravity = iota // Glyphs stand upright (default)
	GRAVITY_EAST                 // Glyphs are rotated 90 degrees clockwise
	GRAVITY_NORTH                // Glyphs are upside-down
	GRAVITY_WEST                 // Glyphs are rotated 90 degrees counter-clockwise
	GRAVITY_AUTO                 // Gravity is resolved from the context matrix
)

// IsVertical returns whether `g` causes character orientation to be rotated
// from the base orientation, affecting how text lines are stacked.
func (g Gravity) IsVertical() bool {
	return g == GRAVITY_EAST || g == GRAVITY_WEST
}

// IsImproper returns whether `g` points to the "wrong" (improper) direction,
// that is, West or North, for which the shaped glyph string needs to be
// reversed to be rendered in the right logical order.
func (g Gravity) IsImproper() bool {
	return g == GRAVITY_WEST || g == GRAVITY_NORTH
}

// GravityHint defines how rotated text is laid out when its
// gravity is `GRAVITY_EAST` or `GRAVITY_WEST`.
type GravityHint uint8

const (
	GRAVITY_HINT_NATURAL GravityHint = iota // scripts will take their natural gravity based on the base gravity and the script
	GRAVITY_HINT_STRONG                     // always use the base gravity set, regardless of the script
	GRAVITY_HINT_LINE                       // for scripts not in their natural direction (e.g. Latin in East gravity), choose per-script gravity such that every script respects the line progression
)

// pango_gravity_get_for_script_and_width implements the "level vs. gravity dance"
// described in the itemizer: combine the context's resolved base gravity, any
// attribute-supplied gravity, the script and whether the run is an upright-CJK
// run, into a final gravity for the run.
func pango_gravity_get_for_script_and_width(script Script, wide bool, baseGravity Gravity, hint GravityHint) Gravity {
	if baseGravity == GRAVITY_SOUTH || !baseGravity.IsVertical() {
		// the natural gravity is South for every script except for a few
		// special vertical scripts.
		if isScriptNaturallyVertical(script) {
			return GRAVITY_EAST
		}
		return baseGravity
	}

	switch hint {
	case GRAVITY_HINT_STRONG:
		return baseGravity
	case GRAVITY_HINT_LINE:
		if (baseGravity == GRAVITY_EAST) != wide {
			return GRAVITY_SOUTH
		}
		return baseGravity
	default: // GRAVITY_HINT_NATURAL
		if isScriptNaturallyVertical(script) || wide {
			return baseGravity
		}
		return GRAVITY_SOUTH
	}
}

// isScriptNaturallyVertical reports whether `script` has a traditional top-to-bottom
// writing direction (Mongolian, historically also Chinese/Japanese/Korean, but those
// are rendered horizontally by default in modern usage).
func isScriptNaturallyVertical(script Script) bool {
	return script == SCRIPT_MONGOLIAN
}
