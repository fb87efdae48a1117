package pango

import "testing"

func TestTabArrayRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		name string
		tabs *TabArray
	}{
		{"units", NewTabArrayWithPositions(false,
			Tab{Location: 0, Alignment: TAB_LEFT},
			Tab{Location: 100, Alignment: TAB_RIGHT},
			Tab{Location: 200, Alignment: TAB_CENTER},
			Tab{Location: 300, Alignment: TAB_DECIMAL, DecimalPoint: ','},
		)},
		{"pixels", NewTabArrayWithPositions(true,
			Tab{Location: 10, Alignment: TAB_LEFT},
			Tab{Location: 20, Alignment: TAB_DECIMAL, DecimalPoint: '.'},
		)},
		{"empty", NewTabArray(0, false)},
	} {
		s := tc.tabs.String()
		got := TabArrayFromString(s)
		if got == nil {
			t.Fatalf("%s: from_string(%q) failed", tc.name, s)
		}
		if !got.Equal(tc.tabs) {
			t.Errorf("%s: round trip mismatch: %q -> %v", tc.name, s, got.Tabs)
		}
	}
}

func TestTabArrayFromString(t *testing.T) {
	tabs := TabArrayFromString("10\nright:20\ncenter:30\ndecimal:40:44")
	if tabs == nil {
		t.Fatal("parse failed")
	}
	want := []Tab{
		{Location: 10, Alignment: TAB_LEFT},
		{Location: 20, Alignment: TAB_RIGHT},
		{Location: 30, Alignment: TAB_CENTER},
		{Location: 40, Alignment: TAB_DECIMAL, DecimalPoint: ','},
	}
	if len(tabs.Tabs) != len(want) {
		t.Fatalf("got %d stops, want %d", len(tabs.Tabs), len(want))
	}
	for i, w := range want {
		if tabs.Tabs[i] != w {
			t.Errorf("stop %d = %+v, want %+v", i, tabs.Tabs[i], w)
		}
	}
	if tabs.PositionsInPixels {
		t.Error("PositionsInPixels = true for plain stops")
	}

	// comma separation and whitespace
	tabs = TabArrayFromString(" 10, right:20 ")
	if tabs == nil || tabs.Len() != 2 {
		t.Fatalf("comma form: got %v", tabs)
	}
}

func TestTabArrayFromStringMalformed(t *testing.T) {
	for _, s := range []string{
		"-10",         // negative position
		"10px\n20",    // mixed units
		"wat:10",      // junk alignment parses as position and fails
		"10q",         // trailing garbage
		"decimal:40:", // missing decimal codepoint
	} {
		if got := TabArrayFromString(s); got != nil {
			t.Errorf("from_string(%q) = %v, want nil", s, got.Tabs)
		}
	}
}

func TestTabArraySortAndResize(t *testing.T) {
	tabs := NewTabArrayWithPositions(false,
		Tab{Location: 300},
		Tab{Location: 100},
		Tab{Location: 200},
	)
	tabs.Sort()
	for i := 1; i < tabs.Len(); i++ {
		if tabs.Tabs[i-1].Location > tabs.Tabs[i].Location {
			t.Fatalf("not sorted at %d: %v", i, tabs.Tabs)
		}
	}

	tabs.SetTab(5, TAB_RIGHT, 999)
	if tabs.Len() != 6 {
		t.Fatalf("auto-extend: len = %d, want 6", tabs.Len())
	}
	if align, loc := tabs.GetTab(5); align != TAB_RIGHT || loc != 999 {
		t.Errorf("GetTab(5) = %v, %d", align, loc)
	}
	if align, loc := tabs.GetTab(3); align != TAB_LEFT || loc != 0 {
		t.Errorf("new intermediate stop = %v, %d, want left at 0", align, loc)
	}
}
