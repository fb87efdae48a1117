package pango

import "testing"

func runWithLevel(offset, length int, level fribidiLevel) *GlyphItem {
	return &GlyphItem{
		Item: &Item{
			Offset:   offset,
			Length:   length,
			NumChars: length,
			Analysis: Analysis{Level: level},
		},
		Glyphs: &GlyphString{},
	}
}

func runOffsets(line *Line) []int {
	var out []int
	for l := line.Runs; l != nil; l = l.Next {
		out = append(out, l.Data.Item.Offset)
	}
	return out
}

func TestReorderAllEven(t *testing.T) {
	line := &Line{}
	line.Runs = &RunList{Data: runWithLevel(0, 1, 0),
		Next: &RunList{Data: runWithLevel(1, 1, 0),
			Next: &RunList{Data: runWithLevel(2, 1, 0)}}}
	before := runOffsets(line)
	line.reorder()
	after := runOffsets(line)
	if len(after) != len(before) {
		t.Fatalf("run count changed: %v -> %v", before, after)
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("all-even line was reordered: %v -> %v", before, after)
		}
	}
}

func TestReorderAllOdd(t *testing.T) {
	line := &Line{}
	// logical order: offsets 0, 1, 2, all RTL
	line.Runs = &RunList{Data: runWithLevel(0, 1, 1),
		Next: &RunList{Data: runWithLevel(1, 1, 1),
			Next: &RunList{Data: runWithLevel(2, 1, 1)}}}
	line.reorder()
	got := runOffsets(line)
	want := []int{2, 1, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("all-odd visual order = %v, want %v", got, want)
		}
	}
}

func TestReorderMixed(t *testing.T) {
	// logical A(0) B(1) C(1) D(0): the RTL stretch B C reverses in place
	line := &Line{}
	line.Runs = &RunList{Data: runWithLevel(0, 1, 0),
		Next: &RunList{Data: runWithLevel(1, 1, 1),
			Next: &RunList{Data: runWithLevel(2, 1, 1),
				Next: &RunList{Data: runWithLevel(3, 1, 0)}}}}
	line.reorder()
	got := runOffsets(line)
	want := []int{0, 2, 1, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("visual order = %v, want %v", got, want)
		}
	}
}

func TestRunListHelpers(t *testing.T) {
	var l *RunList
	if l.length() != 0 || l.reverse() != nil {
		t.Fatal("nil list mishandled")
	}
	a, b := runWithLevel(0, 1, 0), runWithLevel(1, 1, 0)
	l = &RunList{Data: a, Next: &RunList{Data: b}}
	if l.length() != 2 {
		t.Fatalf("length = %d", l.length())
	}
	r := l.reverse()
	if r.Data != b || r.Next.Data != a {
		t.Fatal("reverse order wrong")
	}
}

func TestGlyphItemLogicalWidths(t *testing.T) {
	text := []rune("abc")
	gi := &GlyphItem{
		Item: &Item{Offset: 0, Length: 3, NumChars: 3},
		Glyphs: &GlyphString{
			Glyphs: []GlyphInfo{
				{Geometry: GlyphGeometry{Width: 10}, attr: GlyphVisAttr{isClusterStart: true}},
				{Geometry: GlyphGeometry{Width: 20}, attr: GlyphVisAttr{isClusterStart: true}},
				{Geometry: GlyphGeometry{Width: 31}, attr: GlyphVisAttr{isClusterStart: true}},
			},
			logClusters: []int{0, 1, 2},
		},
	}
	widths := make([]GlyphUnit, 3)
	gi.getLogicalWidths(text, widths)
	for i, want := range []GlyphUnit{10, 20, 31} {
		if widths[i] != want {
			t.Errorf("width[%d] = %d, want %d", i, widths[i], want)
		}
	}

	// one cluster spanning two chars divides its width, remainder first
	gi.Glyphs.logClusters = []int{0, 0, 2}
	gi.getLogicalWidths(text, widths)
	if widths[0] != 15 || widths[1] != 15 || widths[2] != 31 {
		t.Errorf("cluster division = %v, want [15 15 31]", widths)
	}
}

func TestDistributeLetterSpacing(t *testing.T) {
	l, r := distributeLetterSpacing(2 * Scale)
	if l+r != 2*Scale {
		t.Fatalf("distribution loses units: %d + %d", l, r)
	}
	if l%Scale != 0 {
		t.Errorf("whole-unit spacing not hinted: left = %d", l)
	}

	l, r = distributeLetterSpacing(100)
	if l+r != 100 {
		t.Errorf("odd spacing loses units: %d + %d", l, r)
	}
}
