package pango

import (
	"sort"
	"strconv"
	"strings"
)

// TabAlign determines where a tab stop anchors the text that follows it.
type TabAlign uint8

const (
	TAB_LEFT    TabAlign = iota // text appears to the right of the tab stop position
	TAB_RIGHT                   // text ends at the tab stop position
	TAB_CENTER                  // text is centered on the tab stop position
	TAB_DECIMAL                 // the decimal point of the text is lined up with the tab stop position
)

// Tab is one tab stop: a location (in Pango units, or pixels if the owning
// array says so), an alignment, and for TAB_DECIMAL the codepoint to align
// on (0 means "use the locale's decimal point").
type Tab struct {
	Location     int32
	Alignment    TabAlign
	DecimalPoint rune
}

// TabArray contains an ordered array of tab stops, consumed by the line
// breaker to size tab runs.
type TabArray struct {
	Tabs             []Tab
	PositionsInPixels bool
}

// NewTabArray creates an array of `initialSize` tab stops, all left-aligned
// at location 0.
func NewTabArray(initialSize int, positionsInPixels bool) *TabArray {
	return &TabArray{
		Tabs:             make([]Tab, initialSize),
		PositionsInPixels: positionsInPixels,
	}
}

// NewTabArrayWithPositions creates a tab array holding copies of `stops`, a
// convenience mirroring pango_tab_array_new_with_positions.
func NewTabArrayWithPositions(positionsInPixels bool, stops ...Tab) *TabArray {
	return &TabArray{Tabs: append([]Tab(nil), stops...), PositionsInPixels: positionsInPixels}
}

// Copy returns a deep copy of the array.
func (t *TabArray) Copy() *TabArray {
	if t == nil {
		return nil
	}
	return &TabArray{Tabs: append([]Tab(nil), t.Tabs...), PositionsInPixels: t.PositionsInPixels}
}

// Len returns the number of tab stops.
func (t *TabArray) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Tabs)
}

// Resize changes the number of tab stops; new stops are left-aligned at 0.
func (t *TabArray) Resize(newSize int) {
	if newSize <= cap(t.Tabs) {
		for i := len(t.Tabs); i < newSize; i++ {
			t.Tabs = append(t.Tabs, Tab{})
		}
		t.Tabs = t.Tabs[:newSize]
		return
	}
	tabs := make([]Tab, newSize)
	copy(tabs, t.Tabs)
	t.Tabs = tabs
}

// SetTab sets the alignment and location of the tab stop at `index`,
// growing the array if needed.
func (t *TabArray) SetTab(index int, alignment TabAlign, location int32) {
	if index >= len(t.Tabs) {
		t.Resize(index + 1)
	}
	t.Tabs[index].Alignment = alignment
	t.Tabs[index].Location = location
}

// GetTab returns the alignment and location of the tab stop at `index`.
func (t *TabArray) GetTab(index int) (TabAlign, int32) {
	tab := t.Tabs[index]
	return tab.Alignment, tab.Location
}

// SetDecimalPoint sets the codepoint that TAB_DECIMAL stops align on for the
// tab at `index`. 0 restores the default of the locale decimal point.
func (t *TabArray) SetDecimalPoint(index int, decimalPoint rune) {
	if index >= len(t.Tabs) {
		t.Resize(index + 1)
	}
	t.Tabs[index].DecimalPoint = decimalPoint
}

// GetDecimalPoint returns the decimal-alignment codepoint of the tab at
// `index` (0 if unset).
func (t *TabArray) GetDecimalPoint(index int) rune {
	return t.Tabs[index].DecimalPoint
}

// Sort reorders the stops by ascending location, keeping the relative order
// of stops sharing a location.
func (t *TabArray) Sort() {
	sort.SliceStable(t.Tabs, func(i, j int) bool {
		return t.Tabs[i].Location < t.Tabs[j].Location
	})
}

// String serializes the array, one stop per line, in the form
// [ALIGN:]POSITION[px][:DECIMAL]. The counterpart is TabArrayFromString.
func (t *TabArray) String() string {
	var s strings.Builder
	for i, tab := range t.Tabs {
		if i > 0 {
			s.WriteByte('\n')
		}
		switch tab.Alignment {
		case TAB_RIGHT:
			s.WriteString("right:")
		case TAB_CENTER:
			s.WriteString("center:")
		case TAB_DECIMAL:
			s.WriteString("decimal:")
		}
		s.WriteString(strconv.Itoa(int(tab.Location)))
		if t.PositionsInPixels {
			s.WriteString("px")
		}
		if tab.DecimalPoint != 0 {
			s.WriteByte(':')
			s.WriteString(strconv.Itoa(int(tab.DecimalPoint)))
		}
	}
	return s.String()
}

// TabArrayFromString deserializes a TabArray from the format produced by
// String: stops separated by whitespace (or commas), each
// [ALIGN:]POSITION[px][:DECIMAL] with ALIGN one of left, right, center,
// decimal. Returns nil if `text` is malformed: a negative position, a px
// suffix on some stops but not others, or trailing garbage.
func TabArrayFromString(text string) *TabArray {
	pixels := strings.Contains(text, "px")
	array := NewTabArray(0, pixels)

	p := skipTabWhitespace(text)
	index := 0
	for len(p) > 0 {
		align := TAB_LEFT
		switch {
		case strings.HasPrefix(p, "left:"):
			p = p[len("left:"):]
		case strings.HasPrefix(p, "right:"):
			align = TAB_RIGHT
			p = p[len("right:"):]
		case strings.HasPrefix(p, "center:"):
			align = TAB_CENTER
			p = p[len("center:"):]
		case strings.HasPrefix(p, "decimal:"):
			align = TAB_DECIMAL
			p = p[len("decimal:"):]
		}

		pos, rest, ok := parseTabInt(p)
		if !ok || pos < 0 {
			return nil
		}
		if pixels && !strings.HasPrefix(rest, "px") {
			return nil
		}
		if !pixels && len(rest) > 0 && rest[0] != ':' && rest[0] != ',' && !isTabSpace(rest[0]) {
			return nil
		}
		array.SetTab(index, align, int32(pos))
		p = rest
		if pixels {
			p = p[len("px"):]
		}

		if len(p) > 0 && p[0] == ':' {
			ch, rest, ok := parseTabInt(p[1:])
			if !ok || (len(rest) > 0 && rest[0] != ',' && !isTabSpace(rest[0])) {
				return nil
			}
			array.SetDecimalPoint(index, rune(ch))
			p = rest
		}

		if len(p) > 0 && p[0] == ',' {
			p = p[1:]
		}
		p = skipTabWhitespace(p)
		index++
	}

	return array
}

func isTabSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v'
}

func skipTabWhitespace(p string) string {
	for len(p) > 0 && isTabSpace(p[0]) {
		p = p[1:]
	}
	return p
}

func parseTabInt(p string) (int64, string, bool) {
	i := 0
	if i < len(p) && p[i] == '-' {
		i++
	}
	for i < len(p) && p[i] >= '0' && p[i] <= '9' {
		i++
	}
	if i == 0 || (i == 1 && p[0] == '-') {
		return 0, p, false
	}
	v, err := strconv.ParseInt(p[:i], 10, 64)
	if err != nil {
		return 0, p, false
	}
	return v, p[i:], true
}

// Equal reports whether two arrays have the same stops and units.
func (t *TabArray) Equal(other *TabArray) bool {
	if t.PositionsInPixels != other.PositionsInPixels || len(t.Tabs) != len(other.Tabs) {
		return false
	}
	for i, tab := range t.Tabs {
		if tab != other.Tabs[i] {
			return false
		}
	}
	return true
}
