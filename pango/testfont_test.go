package pango

import "github.com/go-pango/pangocore/fonts"

// The fixtures below stand in for a font backend: a monospace face covering
// everything except an explicit "missing" set, one em of advance per glyph,
// so that widths in tests are exact multiples of Scale.

type testFace struct {
	missing map[rune]bool
}

func (f *testFace) Upem() uint16 { return 1000 }

func (f *testFace) Cmap() (fonts.Cmap, fonts.CmapEncoding) {
	return fonts.CmapSimple{}, fonts.EncUnicode
}

func (f *testFace) NominalGlyph(ch rune) (fonts.GID, bool) {
	if f.missing[ch] {
		return 0, false
	}
	return fonts.GID(ch), true
}

func (f *testFace) HorizontalAdvance(fonts.GID) float32 { return 1000 }

func (f *testFace) LineMetric(fonts.LineMetric) (float32, bool) { return 0, false }

func (f *testFace) FontHExtents() (fonts.FontExtents, bool) {
	return fonts.FontExtents{Ascender: 800, Descender: -200}, true
}

func (f *testFace) GlyphExtents(fonts.GID) (fonts.GlyphExtents, bool) {
	return fonts.GlyphExtents{}, false
}

type testFont struct {
	face *testFace
	desc FontDescription
}

func (f *testFont) Describe() FontDescription { return f.desc }
func (f *testFont) Face() fonts.Face          { return f.face }

func (f *testFont) GetMetrics(Language) FontMetrics {
	return FontMetrics{
		Ascent:                800 * Scale / 1000,
		Descent:               200 * Scale / 1000,
		Height:                Scale,
		ApproximateCharWidth:  Scale,
		ApproximateDigitWidth: Scale,
	}
}

type testFontset struct {
	font *testFont
	lang Language
}

func (s *testFontset) GetFont(rune) Font      { return s.font }
func (s *testFontset) GetLanguage() Language  { return s.lang }
func (s *testFontset) Foreach(fn FontsetForeachFunc) {
	fn(s.font)
}

type testFontMap struct {
	font *testFont
}

func newTestFontMap() *testFontMap {
	return &testFontMap{font: &testFont{face: &testFace{}}}
}

func (m *testFontMap) LoadFont(_ *Context, desc FontDescription) Font { return m.font }

func (m *testFontMap) ListFamilies() []FontFamily { return nil }

func (m *testFontMap) LoadFontset(_ *Context, _ *FontDescription, lang Language) Fontset {
	return &testFontset{font: m.font, lang: lang}
}

func (m *testFontMap) GetSerial() uint              { return 1 }
func (m *testFontMap) GetFamily(string) FontFamily  { return nil }
func (m *testFontMap) GetFace(Font) FontFace        { return nil }

func newTestContext() *Context {
	return NewContext(newTestFontMap())
}

func newTestBreaker(text string, attrs AttrList) *LineBreaker {
	breaker := NewLineBreaker(newTestContext())
	breaker.AddText([]rune(text), attrs)
	return breaker
}

// lineText reassembles the text a line covers.
func lineText(line *Line) string {
	return string(line.Text()[line.StartIndex : line.StartIndex+line.Length])
}
