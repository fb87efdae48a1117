package pango

import "github.com/clipperhouse/uax29/v2/words"

// LogAttr records the boundary properties of the gap immediately before a
// character in a paragraph (so a text of N characters has N+1 LogAttrs: one
// before each character, one after the last). The line breaker, cursor
// movement, and ellipsization all read these instead of re-deriving Unicode
// segmentation themselves.
type LogAttr struct {
	IsLineBreak     bool // can break line before this char
	IsMandatoryBreak bool // must break line before this char
	IsCharBreak     bool // a grapheme cluster boundary
	IsWhite         bool // is whitespace
	IsCursorPositionFlag bool // can put cursor before this char (grapheme boundary, excluding some combining marks)

	IsWordStart    bool
	IsWordEnd      bool
	IsWordBoundary bool

	IsSentenceBoundary bool
	IsSentenceStart    bool
	IsSentenceEnd      bool

	BackspaceDeletesCharacter bool
	IsExpandableSpace         bool

	BreakInsertsHyphen bool
	BreakRemovesPreceding bool
}

// IsCursorPosition reports whether the cursor may be placed immediately
// before the character this attribute precedes. Named as a method (rather
// than a plain field read) to read the way call sites in ellipsize.go and
// the line breaker expect.
func (a LogAttr) IsCursorPosition() bool { return a.IsCursorPositionFlag }

// LogAttrFunc computes the per-character LogAttr array for `text`, given the
// resolved language of the run (used to pick locale-specific segmentation
// rules; the default implementation ignores it). The core calls through
// this seam rather than implementing Unicode boundary analysis itself.
type LogAttrFunc func(text []rune, language Language) []LogAttr

// logAttrImpl is the process-wide log-attribute seam, defaulting to
// computeLogAttrsUAX29. Callers with a more complete Unicode break-property
// implementation (hyphenation dictionaries, locale tailoring) call
// SetLogAttrFunc.
var logAttrImpl LogAttrFunc = computeLogAttrsUAX29

// SetLogAttrFunc installs the LogAttr computation used by ComputeLogAttrs.
// Passing nil restores the built-in UAX #29 based implementation.
func SetLogAttrFunc(fn LogAttrFunc) {
	if fn == nil {
		fn = computeLogAttrsUAX29
	}
	logAttrImpl = fn
}

// ComputeLogAttrs computes the LogAttr array for `text` and `language`,
// delegating to whatever LogAttrFunc is currently installed.
func ComputeLogAttrs(text []rune, language Language) []LogAttr {
	return logAttrImpl(text, language)
}

// computeLogAttrsUAX29 is the default LogAttr computation: word boundaries
// come from uax29's word segmenter (UAX #29), sentence boundaries fall back
// to a simple terminal-punctuation heuristic, and mandatory line breaks are
// recognized at the hard Unicode paragraph separators. It does not attempt
// the full UAX #14 line-breaking algorithm (that remains the line breaker's
// own candidate-position walk over IsLineBreak); this function supplies
// just enough granularity to drive word/sentence/cursor queries and the
// small set of "never break here" exceptions the breaker consults.
func computeLogAttrsUAX29(text []rune, _ Language) []LogAttr {
	n := len(text)
	attrs := make([]LogAttr, n+1)

	attrs[0].IsCursorPositionFlag = true
	attrs[0].IsWordBoundary = true
	attrs[0].IsSentenceBoundary = true
	attrs[0].IsSentenceStart = true
	attrs[n].IsCursorPositionFlag = true
	attrs[n].IsWordBoundary = true
	attrs[n].IsSentenceBoundary = true
	attrs[n].IsSentenceEnd = true
	attrs[n].IsMandatoryBreak = true
	attrs[n].IsLineBreak = true

	for i, r := range text {
		attrs[i+1].IsCursorPositionFlag = !isCombiningMark(r)
		if isWhitespace(r) {
			attrs[i].IsWhite = true
			attrs[i+1].IsExpandableSpace = r == ' '
		}
		if r == '\n' || r == '\v' || r == '\f' || r == 0x2028 || r == 0x2029 || r == 0x0085 {
			attrs[i+1].IsMandatoryBreak = true
			attrs[i+1].IsLineBreak = true
		}
		switch r {
		case 0x00AD: // soft hyphen: invisible until broken at, then drawn as a hyphen
			attrs[i+1].IsLineBreak = true
			attrs[i+1].BreakInsertsHyphen = true
			attrs[i+1].BreakRemovesPreceding = true
		case '-', 0x2010, 0x2012, 0x2013: // breaking after visible hyphens and dashes
			if i+1 < n {
				attrs[i+1].IsLineBreak = true
			}
		}
	}

	// word boundaries, from uax29's byte-oriented segmenter: translate rune
	// indices to byte offsets and back since LogAttr is indexed by rune.
	byteOf := make([]int, n+1)
	buf := []byte(string(text))
	bi := 0
	for i, r := range text {
		byteOf[i] = bi
		bi += runeLen(r)
	}
	byteOf[n] = bi

	byteToRune := make(map[int]int, n+1)
	for i, b := range byteOf {
		byteToRune[b] = i
	}

	seg := words.FromBytes(buf)
	pos := 0
	for seg.Next() {
		tok := seg.Value()
		start := pos
		end := pos + len(tok)
		pos = end
		if ri, ok := byteToRune[start]; ok {
			attrs[ri].IsWordBoundary = true
			if isWordLike(tok) {
				attrs[ri].IsWordStart = true
			}
		}
		if ri, ok := byteToRune[end]; ok {
			attrs[ri].IsWordBoundary = true
			if isWordLike(tok) {
				attrs[ri].IsWordEnd = true
			}
		}
	}

	// sentence boundaries: a coarse heuristic keyed off terminal punctuation
	// followed by whitespace or end of text, sufficient for the line
	// breaker's PANGO_ATTR_SENTENCE consumers without a dedicated UAX #29
	// sentence segmenter.
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			j := i + 1
			for j < n && isWhitespace(text[j]) {
				j++
			}
			attrs[j].IsSentenceBoundary = true
			attrs[j].IsSentenceStart = true
			attrs[i+1].IsSentenceEnd = true
		}
	}

	for i := range attrs {
		attrs[i].IsCharBreak = attrs[i].IsCursorPositionFlag
		attrs[i].IsLineBreak = attrs[i].IsLineBreak || (attrs[i].IsWordBoundary && i > 0 && i < n && attrs[i-1].IsWhite)
	}

	return attrs
}

// computeLogAttrsForData computes the LogAttrs of one line-breaker input:
// the installed break seam runs first (tailored to the language of the
// first item), then the break-affecting attributes of the input customize
// the result.
func computeLogAttrsForData(data *LineData, items *ItemList) []LogAttr {
	var language Language
	if items != nil {
		language = items.Data.Analysis.Language
	}
	logAttrs := ComputeLogAttrs(data.text, language)
	attrBreak(data.attrs, logAttrs)
	return logAttrs
}

// attrBreak applies the break-affecting attributes on top of computed
// LogAttrs (mirrors pango_attr_break): allow-breaks=false removes the break
// opportunities inside its range, insert-hyphens=false removes hyphen
// insertion, and word/sentence markers override the segmentation with the
// application's own boundaries. Positions are clamped to the attrs' range.
func attrBreak(attrs AttrList, logAttrs []LogAttr) {
	n := len(logAttrs) - 1
	clamp := func(pos int) int {
		if pos < 0 {
			return 0
		}
		if pos > n {
			return n
		}
		return pos
	}

	for _, attr := range attrs {
		start, end := clamp(attr.StartIndex), clamp(attr.EndIndex)
		switch attr.Type {
		case ATTR_ALLOW_BREAKS:
			if attr.Data.(AttrInt) == 0 {
				for pos := start + 1; pos <= end && pos < n; pos++ {
					logAttrs[pos].IsLineBreak = false
					logAttrs[pos].IsCharBreak = false
				}
			}
		case ATTR_INSERT_HYPHENS:
			if attr.Data.(AttrInt) == 0 {
				for pos := start + 1; pos <= end && pos < n; pos++ {
					logAttrs[pos].BreakInsertsHyphen = false
					logAttrs[pos].BreakRemovesPreceding = false
				}
			}
		case ATTR_WORD:
			logAttrs[start].IsWordStart = true
			logAttrs[start].IsWordBoundary = true
			logAttrs[end].IsWordEnd = true
			logAttrs[end].IsWordBoundary = true
			for pos := start + 1; pos < end; pos++ {
				logAttrs[pos].IsWordStart = false
				logAttrs[pos].IsWordEnd = false
				logAttrs[pos].IsWordBoundary = false
			}
		case ATTR_SENTENCE:
			logAttrs[start].IsSentenceStart = true
			logAttrs[start].IsSentenceBoundary = true
			logAttrs[end].IsSentenceEnd = true
			logAttrs[end].IsSentenceBoundary = true
			for pos := start + 1; pos < end; pos++ {
				logAttrs[pos].IsSentenceStart = false
				logAttrs[pos].IsSentenceEnd = false
				logAttrs[pos].IsSentenceBoundary = false
			}
		}
	}
}

func isWordLike(tok []byte) bool {
	for _, b := range tok {
		if (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') || b >= 0x80 {
			return true
		}
	}
	return false
}

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f', 0x00A0, 0x2028, 0x2029:
		return true
	}
	return false
}

func isCombiningMark(r rune) bool {
	return r >= 0x0300 && r <= 0x036F
}

func runeLen(r rune) int {
	switch {
	case r < 0x80:
		return 1
	case r < 0x800:
		return 2
	case r < 0x10000:
		return 3
	default:
		return 4
	}
}
