package pango

import "testing"

func collectLines(b *LineBreaker, x, width GlyphUnit, wrap WrapMode) []*Line {
	var lines []*Line
	for b.HasLine() {
		line := b.NextLine(x, width, wrap, ELLIPSIZE_NONE)
		if line == nil {
			break
		}
		lines = append(lines, line)
	}
	return lines
}

func lineWidth(line *Line) GlyphUnit {
	return line.computeWidth()
}

func TestNextLineEmpty(t *testing.T) {
	breaker := NewLineBreaker(newTestContext())
	if breaker.HasLine() {
		t.Error("HasLine on empty breaker")
	}
	if line := breaker.NextLine(0, -1, WRAP_WORD, ELLIPSIZE_NONE); line != nil {
		t.Errorf("NextLine on empty breaker = %v", line)
	}
	if dir := breaker.GetDirection(); dir != DIRECTION_NEUTRAL {
		t.Errorf("GetDirection on empty breaker = %v", dir)
	}
}

func TestNextLineNoWrap(t *testing.T) {
	breaker := newTestBreaker("hello world", nil)
	lines := collectLines(breaker, 0, -1, WRAP_WORD)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	line := lines[0]
	if lineText(line) != "hello world" {
		t.Errorf("line text = %q", lineText(line))
	}
	if line.Wrapped() || !line.EndsParagraph() || !line.StartsParagraph() {
		t.Errorf("flags: wrapped=%v ends=%v starts=%v", line.Wrapped(), line.EndsParagraph(), line.StartsParagraph())
	}
	if lineWidth(line) != 11*Scale {
		t.Errorf("line width = %d, want %d", lineWidth(line), 11*Scale)
	}
}

// "hello world" at five char-widths wraps into two lines,
// with the trailing space of the first collapsed.
func TestNextLineSimpleWrap(t *testing.T) {
	breaker := newTestBreaker("hello world", nil)
	lines := collectLines(breaker, 0, 5*Scale, WRAP_WORD)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	first, second := lines[0], lines[1]
	if lineText(first) != "hello " || lineText(second) != "world" {
		t.Fatalf("lines = %q, %q", lineText(first), lineText(second))
	}
	if !first.Wrapped() {
		t.Error("first line not marked wrapped")
	}
	if first.EndsParagraph() {
		t.Error("first line marked ends-paragraph")
	}
	if !second.EndsParagraph() {
		t.Error("second line not marked ends-paragraph")
	}
	if second.StartsParagraph() {
		t.Error("second line marked starts-paragraph")
	}

	// the wrapped-at space is zeroed
	if w := lineWidth(first); w != 5*Scale {
		t.Errorf("first line width = %d, want %d (trailing space collapsed)", w, 5*Scale)
	}
}

func TestNextLineParagraphs(t *testing.T) {
	breaker := newTestBreaker("one\ntwo", nil)
	lines := collectLines(breaker, 0, -1, WRAP_WORD)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lineText(lines[0]) != "one" || lineText(lines[1]) != "two" {
		t.Fatalf("lines = %q, %q", lineText(lines[0]), lineText(lines[1]))
	}
	if !lines[0].EndsParagraph() || !lines[1].StartsParagraph() {
		t.Error("paragraph flags wrong around the separator")
	}
	if lines[1].StartIndex != 4 {
		t.Errorf("second line starts at %d, want 4 (past the newline)", lines[1].StartIndex)
	}

	// conservation: line extents plus the separator cover the text exactly
	total := lines[0].Length + lines[1].Length + 1
	if total != 7 {
		t.Errorf("lines cover %d chars plus separator, text has 7", total)
	}
}

func TestNextLineLineSeparator(t *testing.T) {
	breaker := newTestBreaker("one\u2028two", nil)
	lines := collectLines(breaker, 0, -1, WRAP_WORD)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !lines[0].Wrapped() {
		t.Error("line before a forced separator not marked wrapped")
	}
	if lines[0].EndsParagraph() {
		t.Error("line separator treated as paragraph end")
	}
	// the separator stays part of the first line
	if lines[0].Length != 4 {
		t.Errorf("first line length = %d, want 4", lines[0].Length)
	}
}

// Conservation over multiple paragraphs and wraps.
func TestBreakerConservation(t *testing.T) {
	text := "aaa bbb ccc\nddd eee\n\nfff"
	breaker := newTestBreaker(text, nil)
	lines := collectLines(breaker, 0, 4*Scale, WRAP_WORD)

	covered := 0
	separators := 0
	for _, line := range lines {
		covered += line.Length
		if line.EndsParagraph() && line != lines[len(lines)-1] {
			separators++
		}
	}
	if covered+separators != len([]rune(text)) {
		t.Errorf("lines cover %d chars + %d separators, text has %d runes",
			covered, separators, len([]rune(text)))
	}
}

// A right-aligned tab stop pushes the following text so
// its right edge lands on the stop.
func TestRightAlignedTab(t *testing.T) {
	breaker := newTestBreaker("a\tb", nil)
	breaker.SetTabs(NewTabArrayWithPositions(false, Tab{Location: 5 * Scale, Alignment: TAB_RIGHT}))

	lines := collectLines(breaker, 0, -1, WRAP_WORD)
	if len(lines) != 1 {
		t.Fatalf("got %d lines", len(lines))
	}
	line := lines[0]

	var tabRun *GlyphItem
	for l := line.Runs; l != nil; l = l.Next {
		if isTabRun(line, l.Data) {
			tabRun = l.Data
		}
	}
	if tabRun == nil {
		t.Fatal("no tab run on the line")
	}
	if w := tabRun.Glyphs.getWidth(); w != 3*Scale {
		t.Errorf("tab width = %d, want %d (stop - width(a) - width(b))", w, 3*Scale)
	}
	if w := lineWidth(line); w != 5*Scale {
		t.Errorf("line width = %d, want the tab stop position %d", w, 5*Scale)
	}
}

func TestDecimalTab(t *testing.T) {
	breaker := newTestBreaker("a\t3.14", nil)
	breaker.SetTabs(NewTabArrayWithPositions(false,
		Tab{Location: 6 * Scale, Alignment: TAB_DECIMAL, DecimalPoint: '.'}))

	lines := collectLines(breaker, 0, -1, WRAP_WORD)
	line := lines[0]

	var tabRun *GlyphItem
	for l := line.Runs; l != nil; l = l.Next {
		if isTabRun(line, l.Data) {
			tabRun = l.Data
		}
	}
	if tabRun == nil {
		t.Fatal("no tab run on the line")
	}
	// the decimal point sits at the stop: tab width is the stop minus "a"
	// minus the "3" and half the "." of the aligned run
	want := 6*Scale - 1*Scale - 1*Scale - Scale/2
	if w := tabRun.Glyphs.getWidth(); w != want {
		t.Errorf("tab width = %d, want %d", w, want)
	}
}

func TestDefaultTabStops(t *testing.T) {
	breaker := newTestBreaker("a\tb", nil)
	lines := collectLines(breaker, 0, -1, WRAP_WORD)
	line := lines[0]

	// with no TabArray the stop falls at the width of 8 spaces
	if w := lineWidth(line); w != 8*Scale+Scale {
		t.Errorf("line width = %d, want %d (default stop + b)", w, 8*Scale+Scale)
	}
}

// Undoing the most recent line restores the
// breaker so an identical call reproduces it, and a wider retry consumes
// the rest.
func TestUndoLine(t *testing.T) {
	breaker := newTestBreaker("one two three", nil)

	first := breaker.NextLine(0, 4*Scale, WRAP_WORD, ELLIPSIZE_NONE)
	if lineText(first) != "one " {
		t.Fatalf("first line = %q", lineText(first))
	}

	second := breaker.NextLine(0, 4*Scale, WRAP_WORD, ELLIPSIZE_NONE)
	if lineText(second) != "two " {
		t.Fatalf("second line = %q", lineText(second))
	}

	// only the most recent line can be undone
	if breaker.UndoLine(first) {
		t.Error("undo of a non-current line succeeded")
	}

	if !breaker.UndoLine(second) {
		t.Fatal("undo of the most recent line failed")
	}

	// identical parameters reproduce the undone line
	again := breaker.NextLine(0, 4*Scale, WRAP_WORD, ELLIPSIZE_NONE)
	if lineText(again) != lineText(second) || again.Length != second.Length ||
		again.StartIndex != second.StartIndex {
		t.Fatalf("line after undo = %q [%d,%d), want %q [%d,%d)",
			lineText(again), again.StartIndex, again.StartIndex+again.Length,
			lineText(second), second.StartIndex, second.StartIndex+second.Length)
	}

	// undo once more, then let the rest fit on one wide line
	if !breaker.UndoLine(again) {
		t.Fatal("second undo failed")
	}
	rest := breaker.NextLine(0, -1, WRAP_WORD, ELLIPSIZE_NONE)
	if lineText(rest) != "two three" {
		t.Errorf("rest = %q, want %q", lineText(rest), "two three")
	}
	if !rest.EndsParagraph() {
		t.Error("rest not marked ends-paragraph")
	}
	if breaker.HasLine() {
		t.Error("input left over after consuming everything")
	}
}

func TestUndoWholeSource(t *testing.T) {
	breaker := newTestBreaker("abc", nil)
	line := breaker.NextLine(0, -1, WRAP_WORD, ELLIPSIZE_NONE)
	if line == nil || breaker.HasLine() {
		t.Fatal("setup failed")
	}
	if !breaker.UndoLine(line) {
		t.Fatal("undo of a whole-source line failed")
	}
	again := breaker.NextLine(0, -1, WRAP_WORD, ELLIPSIZE_NONE)
	if again == nil || lineText(again) != "abc" {
		t.Fatalf("replay after whole-source undo = %v", again)
	}
}

// Breaking at a
// hyphen-inserting position hyphenates the line.
func TestHyphenInsertion(t *testing.T) {
	breaker := newTestBreaker("co\u00adoperate", nil)
	first := breaker.NextLine(0, 5*Scale, WRAP_WORD_CHAR, ELLIPSIZE_NONE)
	if first == nil {
		t.Fatal("no line")
	}
	if !first.Hyphenated() {
		t.Fatalf("line %q not hyphenated", lineText(first))
	}
	lastRun := first.Runs
	for l := first.Runs; l != nil; l = l.Next {
		lastRun = l
	}
	if lastRun.Data.Item.Analysis.Flags&AFNeedHyphen == 0 {
		t.Error("last run does not carry the hyphen flag")
	}
}

func TestLetterSpacing(t *testing.T) {
	var attrs AttrList
	attrs.insert(NewAttrLetterSpacing(512))

	breaker := newTestBreaker("ab", attrs)
	line := breaker.NextLine(0, -1, WRAP_WORD, ELLIPSIZE_NONE)

	// spacing lands between the graphemes; the line edges are trimmed
	if w := lineWidth(line); w != 2*Scale+512 {
		t.Errorf("line width = %d, want %d", w, 2*Scale+512)
	}
}

func TestRiseOffsetsRuns(t *testing.T) {
	var attrs AttrList
	attrs.insert(attrWithRange(NewAttrRise(2048), 0, 5))

	breaker := newTestBreaker("hello", attrs)
	line := breaker.NextLine(0, -1, WRAP_WORD, ELLIPSIZE_NONE)
	if line.Runs == nil {
		t.Fatal("no runs")
	}
	if got := line.Runs.Data.YOffset; got != 2048 {
		t.Errorf("run y offset = %d, want 2048", got)
	}
}

func TestEllipsizeEnd(t *testing.T) {
	breaker := newTestBreaker("hello world again", nil)
	line := breaker.NextLine(0, 8*Scale, WRAP_WORD, ELLIPSIZE_END)
	if line == nil {
		t.Fatal("no line")
	}
	if !line.Ellipsized() {
		t.Fatal("line not ellipsized")
	}
	if breaker.HasLine() {
		t.Error("ellipsizing did not consume all input")
	}
	var ellipsisRuns int
	for l := line.Runs; l != nil; l = l.Next {
		if l.Data.Item.Analysis.Flags&AFIsEllipsis != 0 {
			ellipsisRuns++
		}
	}
	if ellipsisRuns != 1 {
		t.Errorf("%d ellipsis runs, want 1", ellipsisRuns)
	}
	if w := lineWidth(line); w > 8*Scale {
		t.Errorf("ellipsized width = %d, over the goal %d", w, 8*Scale)
	}
}

func TestGetDirection(t *testing.T) {
	ltr := newTestBreaker("hello", nil)
	if dir := ltr.GetDirection(); dir != DIRECTION_LTR {
		t.Errorf("latin direction = %v", dir)
	}

	rtl := newTestBreaker("עברית", nil)
	if dir := rtl.GetDirection(); dir != DIRECTION_RTL {
		t.Errorf("hebrew direction = %v", dir)
	}
}

// Property 8: the visual-order run sequence is a permutation of the
// logical items with the same total extent.
func TestMixedBidiLineRuns(t *testing.T) {
	breaker := newTestBreaker("abcעבריתdef", nil)
	line := breaker.NextLine(0, -1, WRAP_WORD, ELLIPSIZE_NONE)

	seen := map[int]int{}
	total := 0
	for l := line.Runs; l != nil; l = l.Next {
		seen[l.Data.Item.Offset] = l.Data.Item.Length
		total += l.Data.Item.NumChars
	}
	if total != line.NumChars || line.NumChars != 11 {
		t.Fatalf("runs cover %d chars, line has %d", total, line.NumChars)
	}
	// ranges must tile [0, 11) regardless of visual order
	covered := 0
	for off, length := range seen {
		if off < 0 || off+length > 11 {
			t.Errorf("run [%d,%d) outside the line", off, off+length)
		}
		covered += length
	}
	if covered != 11 {
		t.Errorf("runs cover %d runes, want 11", covered)
	}
}
