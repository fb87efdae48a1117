package pango

import "sync"

// Fontset is the result of resolving a FontDescription against a Context:
// an ordered set of fonts that together cover the characters the
// description may be asked to render. Itemization queries it one character
// at a time to pick the concrete font of each run.
//
// Implementations must be valid map keys; the itemizer caches per-fontset
// lookup results keyed on the Fontset itself.
type Fontset interface {
	// GetFont returns the font of the set best suited to render `wc`.
	GetFont(wc rune) Font

	// GetLanguage returns the language the fontset was loaded for.
	GetLanguage() Language

	// Foreach calls `fn` on the fonts of the set, best match first,
	// stopping as soon as `fn` returns true.
	Foreach(fn FontsetForeachFunc)
}

// FontsetForeachFunc visits one font of a Fontset; returning true stops
// the iteration.
type FontsetForeachFunc = func(font Font) bool

// FontMap is the set of fonts a rendering backend has available. The core
// never enumerates font files itself; everything it knows about fonts
// comes through this interface.
//
// Implementations must be valid map keys (warning deduplication is keyed
// on the map), and must be safe for concurrent lookups: independent
// LineBreakers may share one FontMap.
type FontMap interface {
	// LoadFont returns the single closest match for `desc`, or nil if
	// nothing matches at all.
	LoadFont(context *Context, desc FontDescription) Font

	// LoadFontset resolves `desc` and `language` to a set of fonts that
	// can render text of that description, or nil if nothing matches.
	LoadFontset(context *Context, desc *FontDescription, language Language) Fontset

	// ListFamilies lists every available font family.
	ListFamilies() []FontFamily

	// GetFamily looks a family up by name.
	GetFamily(name string) FontFamily

	// GetFace returns the face `font` was instantiated from.
	GetFace(font Font) FontFace

	// GetSerial returns the font map's change serial: a nonzero counter
	// bumped whenever the available fonts change. It may wrap, so compare
	// serials only for inequality.
	GetSerial() uint
}

// runeFontCache memoizes character-to-font resolution within one fontset,
// so itemizing long uniform text does not re-run the coverage walk for
// every character. A nil font is cached too: a character no font covers
// stays uncovered.
type runeFontCache struct {
	lock  sync.RWMutex
	store map[rune]Font
}

func newRuneFontCache() *runeFontCache {
	return &runeFontCache{store: make(map[rune]Font)}
}

func (cache *runeFontCache) get(wc rune) (Font, bool) {
	cache.lock.RLock()
	defer cache.lock.RUnlock()
	font, ok := cache.store[wc]
	return font, ok
}

func (cache *runeFontCache) put(wc rune, font Font) {
	cache.lock.Lock()
	defer cache.lock.Unlock()
	cache.store[wc] = font
}

var (
	fontsetCaches     = map[Fontset]*runeFontCache{}
	fontsetCachesLock sync.Mutex
)

// getFontCache returns the rune cache attached to `fontset`, creating it
// on first use. Caches live for the life of the process; fontsets are
// assumed to be few and reused.
func getFontCache(fontset Fontset) *runeFontCache {
	fontsetCachesLock.Lock()
	defer fontsetCachesLock.Unlock()

	cache := fontsetCaches[fontset]
	if cache == nil {
		cache = newRuneFontCache()
		fontsetCaches[fontset] = cache
	}
	return cache
}

// missing-font warnings are emitted once per (fontmap, script) pair so a
// long document in an uncovered script does not flood the log
var (
	fontmapScriptWarnings = map[struct {
		fontmap FontMap
		script  Script
	}]bool{}
	fontmapScriptWarningsLock sync.Mutex
)

// shouldWarn reports whether the missing-font warning for (fontmap,
// script) has not been emitted yet, and records that it now has been.
func shouldWarn(fontmap FontMap, script Script) bool {
	fontmapScriptWarningsLock.Lock()
	defer fontmapScriptWarningsLock.Unlock()

	key := struct {
		fontmap FontMap
		script  Script
	}{fontmap, script}

	if fontmapScriptWarnings[key] {
		return false
	}
	fontmapScriptWarnings[key] = true
	return true
}
