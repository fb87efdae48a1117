// Package language stores and canonicalizes BCP 47 language tags, the
// interned form the layout engine keys segmentation tailoring and font
// selection on.
package language

import (
	"os"
	"strings"
)

// canonMap maps ASCII bytes to their canonical tag form: letters lowercase,
// digits kept, '_', '-' and '@' all to '-', everything else dropped.
var canonMap = [256]byte{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, '-', 0, 0,
	'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 0, 0, 0, 0, 0, 0,
	'-', 'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 'i', 'j', 'k', 'l', 'm', 'n', 'o',
	'p', 'q', 'r', 's', 't', 'u', 'v', 'w', 'x', 'y', 'z', 0, 0, 0, 0, '-',
	0, 'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 'i', 'j', 'k', 'l', 'm', 'n', 'o',
	'p', 'q', 'r', 's', 't', 'u', 'v', 'w', 'x', 'y', 'z', 0, 0, 0, 0, 0,
}

// Language is a canonicalized BCP 47 tag ("en-us", "ca-es"). The zero value
// means "unknown language".
type Language string

// NewLanguage canonicalizes `language` as a BCP 47 tag: lowercase, '_'
// and '@' mapped to '-', all characters other than ASCII letters, digits
// and '-' stripped.
func NewLanguage(language string) Language {
	out := make([]byte, 0, len(language))
	for i := 0; i < len(language); i++ {
		can := canonMap[language[i]]
		if can != 0 {
			out = append(out, can)
		}
	}
	return Language(out)
}

// Matches reports whether the language matches `rangeList`, a list of
// language ranges separated by ';', ':', ',' or space. Each range matches
// when it is exactly the language, or a prefix of it terminating at a '-'
// boundary, or "*".
func (l Language) Matches(rangeList string) bool {
	for _, r := range strings.FieldsFunc(rangeList, func(c rune) bool {
		return c == ';' || c == ':' || c == ',' || c == ' '
	}) {
		if r == "*" {
			return true
		}
		if !strings.HasPrefix(string(l), r) {
			continue
		}
		if len(l) == len(r) || l[len(r)] == '-' {
			return true
		}
	}
	return false
}

func languageFromLocale(locale string) Language {
	if i := strings.IndexByte(locale, '.'); i >= 0 {
		locale = locale[:i]
	}
	return NewLanguage(locale)
}

// DefaultLanguage returns the language of the process locale, consulting
// LC_ALL, LC_CTYPE and LANG in that order, or the zero value if none is
// set.
func DefaultLanguage() Language {
	for _, name := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		if p, ok := os.LookupEnv(name); ok {
			return languageFromLocale(p)
		}
	}
	return ""
}
