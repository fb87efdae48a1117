package pango

// Matrix represents an affine transformation used when rendering text,
// carried on the Context purely so gravity can be resolved from it when
// GRAVITY_AUTO is requested; the core never applies the transform itself
//.
type Matrix struct {
	XX, XY float64
	YX, YY float64
	X0, Y0 float64
}

// pango_gravity_get_for_matrix resolves GRAVITY_AUTO against the rotation
// encoded in an affine matrix, picking the closest cardinal direction.
func pango_gravity_get_for_matrix(m *Matrix) Gravity {
	if m == nil {
		return GRAVITY_SOUTH
	}
	// the rotation angle, in the mathematical sense, of the transform
	switch {
	case m.XY*m.XY > m.YY*m.YY && m.XY > 0:
		return GRAVITY_EAST
	case m.XY*m.XY > m.YY*m.YY:
		return GRAVITY_WEST
	case m.YY < 0:
		return GRAVITY_NORTH
	default:
		return GRAVITY_SOUTH
	}
}
