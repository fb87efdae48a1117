package language

import "testing"

func TestNewLanguage(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Language
	}{
		{"en_US", "en-us"},
		{"CA-es", "ca-es"},
		{"ja", "ja"},
		{"zh_CN.UTF-8", "zh-cnutf-8"},
		{"", ""},
	} {
		if got := NewLanguage(tc.in); got != tc.want {
			t.Errorf("NewLanguage(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMatches(t *testing.T) {
	for _, tc := range []struct {
		lang      Language
		rangeList string
		want      bool
	}{
		{"zh-cn", "zh", true},
		{"zh-cn", "zh-tw", false},
		{"zh", "zh", true},
		{"zhx", "zh", false},
		{"ca-es", "fr;ca", true},
		{"de", "*", true},
		{"de", "", false},
	} {
		if got := tc.lang.Matches(tc.rangeList); got != tc.want {
			t.Errorf("%q.Matches(%q) = %v, want %v", tc.lang, tc.rangeList, got, tc.want)
		}
	}
}

func TestDefaultLanguage(t *testing.T) {
	t.Setenv("LC_ALL", "fr_FR.UTF-8")
	if got := DefaultLanguage(); got != "fr-fr" {
		t.Errorf("DefaultLanguage() = %q, want fr-fr", got)
	}
}
