package fonts

import "testing"

func TestCmapSimple(t *testing.T) {
	cmap := CmapSimple{'a': 1, 'b': 2}

	if gid, ok := cmap.Lookup('a'); !ok || gid != 1 {
		t.Errorf("Lookup('a') = %d, %v", gid, ok)
	}
	if _, ok := cmap.Lookup('z'); ok {
		t.Error("Lookup('z') found a glyph")
	}

	seen := map[rune]GID{}
	for it := cmap.Iter(); it.Next(); {
		r, gid := it.Char()
		seen[r] = gid
	}
	if len(seen) != 2 || seen['a'] != 1 || seen['b'] != 2 {
		t.Errorf("iteration produced %v", seen)
	}
}
