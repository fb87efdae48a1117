package pango

// LineData is the input shared by every line produced from one AddText
// call: the paragraph text, its attributes, and the LogAttrs computed for
// it. Lines reference it instead of copying it; the breaker stops touching
// a LineData once its last line has been emitted.
type LineData struct {
	text     []rune
	length   int // length of text, same unit as Item.Offset
	nChars   int
	direction Direction

	attrs    AttrList
	logAttrs []LogAttr
}

// Text returns the paragraph text the line was broken from.
func (d *LineData) Text() []rune { return d.text }

// RunList is a singly linked list of runs, built by prepending while the
// breaker assembles a line (so it holds reverse logical order until
// postprocessing reverses it).
type RunList struct {
	Data *GlyphItem
	Next *RunList
}

func (l *RunList) length() int {
	n := 0
	for ; l != nil; l = l.Next {
		n++
	}
	return n
}

func (l *RunList) reverse() *RunList {
	var out *RunList
	for ; l != nil; l = l.Next {
		out = &RunList{Data: l.Data, Next: out}
	}
	return out
}

func (l *RunList) concat(other *RunList) *RunList {
	if l == nil {
		return other
	}
	head := l
	for ; l.Next != nil; l = l.Next {
	}
	l.Next = other
	return head
}

// Line is one laid-out line: an ordered list of runs plus the flags
// describing how it came to end where it does. Runs are in logical order
// until the breaker's postprocessing reorders them into visual order.
type Line struct {
	context *Context
	data    *LineData

	StartIndex  int // index of the line's first char into data.text
	StartOffset int // character offset of the line in data.text
	Length      int
	NumChars    int

	direction Direction
	Runs      *RunList

	wrapped         bool
	ellipsized      bool
	hyphenated      bool
	justified       bool
	startsParagraph bool
	endsParagraph   bool

	ellipsize EllipsizeMode // requested mode for this line, consulted while ellipsizing
}

func newLine(context *Context, data *LineData) *Line {
	return &Line{context: context, data: data}
}

// Direction returns the resolved direction of the line.
func (line *Line) Direction() Direction { return line.direction }

// Wrapped reports whether the line ends because it was wrapped (or forced
// by a line separator), rather than at a paragraph boundary.
func (line *Line) Wrapped() bool { return line.wrapped }

// Ellipsized reports whether an ellipsis run was substituted into the line.
func (line *Line) Ellipsized() bool { return line.ellipsized }

// Hyphenated reports whether the line ends in a hyphen inserted by the
// breaker.
func (line *Line) Hyphenated() bool { return line.hyphenated }

// StartsParagraph reports whether the line is the first line of a paragraph.
func (line *Line) StartsParagraph() bool { return line.startsParagraph }

// EndsParagraph reports whether the line ends the paragraph it is part of.
func (line *Line) EndsParagraph() bool { return line.endsParagraph }

// Text returns the paragraph text the line was broken from; the line itself
// covers [StartIndex, StartIndex+Length).
func (line *Line) Text() []rune { return line.data.text }

// computeWidth sums the glyph widths of every run. Inefficient, but easier
// than keeping the current width of the line up to date everywhere.
func (line *Line) computeWidth() GlyphUnit {
	var width GlyphUnit
	for l := line.Runs; l != nil; l = l.Next {
		width += l.Data.Glyphs.getWidth()
	}
	return width
}

func (line *Line) computeNChars() int {
	n := 0
	for l := line.Runs; l != nil; l = l.Next {
		n += l.Data.Item.NumChars
	}
	return n
}

// reorderRunsRecurse arranges the first `nItems` runs of `items` into
// visual order, using the recursive minimum-level algorithm from the
// Unicode bidi algorithm: runs at the minimum level act as fixed pivots
// (reversed as a group when the minimum level is odd), and maximal
// stretches of higher-level runs between them recurse.
func reorderRunsRecurse(items *RunList, nItems int) *RunList {
	if nItems == 0 {
		return nil
	}

	minLevel := fribidiLevel(127)
	tmp := items
	for i := 0; i < nItems; i++ {
		minLevel = minL(minLevel, tmp.Data.Item.Analysis.Level)
		tmp = tmp.Next
	}

	var result *RunList
	levelStartI := 0
	levelStartNode := items
	tmp = items
	i := 0
	for ; i < nItems; i++ {
		run := tmp.Data
		if run.Item.Analysis.Level == minLevel {
			if minLevel%2 != 0 {
				if i > levelStartI {
					result = reorderRunsRecurse(levelStartNode, i-levelStartI).concat(result)
				}
				result = &RunList{Data: run, Next: result}
			} else {
				if i > levelStartI {
					result = result.concat(reorderRunsRecurse(levelStartNode, i-levelStartI))
				}
				result = result.concat(&RunList{Data: run})
			}
			levelStartI = i + 1
			levelStartNode = tmp.Next
		}
		tmp = tmp.Next
	}

	if minLevel%2 != 0 {
		if i > levelStartI {
			result = reorderRunsRecurse(levelStartNode, i-levelStartI).concat(result)
		}
	} else {
		if i > levelStartI {
			result = result.concat(reorderRunsRecurse(levelStartNode, i-levelStartI))
		}
	}

	return result
}

// reorder converts line.Runs from logical to visual order. Single-direction
// lines short-circuit: all-even lines are already visual, all-odd lines are
// a plain reversal.
func (line *Line) reorder() {
	var (
		levelOr  fribidiLevel
		levelAnd fribidiLevel = 1
		length   int
	)
	for l := line.Runs; l != nil; l = l.Next {
		levelOr |= l.Data.Item.Analysis.Level
		levelAnd &= l.Data.Item.Analysis.Level
		length++
	}

	allEven := levelOr&1 == 0
	allOdd := levelAnd&1 == 1

	if !allEven && !allOdd {
		line.Runs = reorderRunsRecurse(line.Runs, length)
	} else if allOdd {
		line.Runs = line.Runs.reverse()
	}
}

// checkInvariants verifies the line structure when debugMode is on: run
// ranges tile [StartIndex, StartIndex+Length) in logical order before
// reordering, and the char count agrees with the run contents.
func (line *Line) checkInvariants() {
	if !debugMode {
		return
	}
	assert(line.Length >= 0 && line.NumChars >= 0, "line: negative extent")
	n := 0
	length := 0
	for l := line.Runs; l != nil; l = l.Next {
		n += l.Data.Item.NumChars
		length += l.Data.Item.Length
	}
	if !line.ellipsized {
		assert(n == line.NumChars, "line: run char count mismatch")
		assert(length == line.Length, "line: run length mismatch")
	}
}
