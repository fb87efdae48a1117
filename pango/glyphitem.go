package pango

// getLogicalWidths divides the run's glyph widths among its characters:
// each cluster's total width is split evenly over the cluster's chars, with
// the remainder units going to the first chars (mirrors
// pango_glyph_item_get_logical_widths). logWidths must have room for
// Item.NumChars entries.
func (gi *GlyphItem) getLogicalWidths(text []rune, logWidths []GlyphUnit) {
	var iter GlyphItemIter
	for ok := iter.InitStart(gi, text); ok; ok = iter.NextCluster() {
		var clusterWidth GlyphUnit
		if iter.isLTR() {
			for g := iter.startGlyph; g < iter.endGlyph; g++ {
				clusterWidth += gi.Glyphs.Glyphs[g].Geometry.Width
			}
		} else {
			for g := iter.startGlyph; g > iter.endGlyph; g-- {
				clusterWidth += gi.Glyphs.Glyphs[g].Geometry.Width
			}
		}

		numChars := iter.EndChar - iter.StartChar
		if numChars <= 0 {
			continue
		}
		charWidth := clusterWidth / GlyphUnit(numChars)
		for c := iter.StartChar; c < iter.EndChar; c++ {
			logWidths[c] = charWidth
		}
		remainder := clusterWidth % GlyphUnit(numChars)
		for c := iter.StartChar; remainder > 0; c, remainder = c+1, remainder-1 {
			logWidths[c]++
		}
	}
}

// letterSpace adds `letterSpacing` between every pair of adjacent graphemes
// in the run: half before each interior cluster boundary, half after
// (mirrors pango_glyph_item_letter_space). Boundaries that are not cursor
// positions (i.e. inside a grapheme) get no spacing. logAttrs is indexed by
// character offset relative to the run start.
func (gi *GlyphItem) letterSpace(text []rune, logAttrs []LogAttr, letterSpacing GlyphUnit) {
	spaceLeft, spaceRight := distributeLetterSpacing(letterSpacing)
	glyphs := gi.Glyphs.Glyphs

	var iter GlyphItemIter
	for ok := iter.InitStart(gi, text); ok; ok = iter.NextCluster() {
		if !logAttrs[iter.StartChar].IsCursorPosition() {
			if glyphs[iter.startGlyph].Geometry.Width == 0 {
				if iter.isLTR() {
					glyphs[iter.startGlyph].Geometry.XOffset -= spaceRight
				} else {
					glyphs[iter.startGlyph].Geometry.XOffset += spaceLeft
				}
			}
			continue
		}

		if iter.isLTR() {
			if iter.StartChar > 0 {
				glyphs[iter.startGlyph].Geometry.Width += spaceLeft
				glyphs[iter.startGlyph].Geometry.XOffset += spaceLeft
			}
			if iter.EndChar < gi.Item.NumChars {
				glyphs[iter.endGlyph-1].Geometry.Width += spaceRight
			}
		} else {
			if iter.StartChar > 0 {
				glyphs[iter.startGlyph].Geometry.Width += spaceRight
			}
			if iter.EndChar < gi.Item.NumChars {
				glyphs[iter.endGlyph+1].Geometry.XOffset += spaceLeft
				glyphs[iter.endGlyph+1].Geometry.Width += spaceLeft
			}
		}
	}
}

// distributeLetterSpacing splits a letter-spacing amount into the space to
// put before and after a grapheme. When the spacing is a whole multiple of
// Scale the left half is rounded to a multiple of Scale, so hinted glyph
// positions stay integral.
func distributeLetterSpacing(letterSpacing GlyphUnit) (spaceLeft, spaceRight GlyphUnit) {
	spaceLeft = letterSpacing / 2
	if letterSpacing&(Scale-1) == 0 {
		spaceLeft = (spaceLeft + Scale/2) &^ (Scale - 1)
	}
	spaceRight = letterSpacing - spaceLeft
	return
}

// applyAttrsToRun splits `gi` into consecutive runs such that each run
// falls entirely inside one interval of the attribute list, and attaches
// the covering attributes to each piece's ExtraAttrs (mirrors
// pango_glyph_item_apply_attrs, used to reapply render-only attributes
// after breaking). Split points are snapped forward to the next cluster
// start, so clusters are never divided. Runs are returned in logical order.
func (gi *GlyphItem) applyAttrsToRun(text []rune, list AttrList) *RunList {
	if len(list) == 0 {
		return &RunList{Data: gi}
	}

	itemStart := gi.Item.Offset
	itemEnd := itemStart + gi.Item.Length

	// collect the attribute state boundaries that fall strictly inside the
	// run, snapped to cluster starts
	var boundaries []int
	iter := list.pango_attr_list_get_iterator()
	for do := true; do; do = iter.pango_attr_iterator_next() {
		if iter.StartIndex >= itemEnd {
			break
		}
		if iter.StartIndex > itemStart && iter.StartIndex < itemEnd {
			boundaries = append(boundaries, iter.StartIndex)
		}
	}

	var result *RunList
	remaining := gi
	consumed := itemStart
	for _, b := range boundaries {
		b = snapToClusterStart(remaining, b-consumed) + consumed
		if b <= consumed || b >= itemEnd {
			continue
		}
		prefix := remaining.pango_glyph_item_split(text, b-consumed)
		attachOverlappingAttrs(prefix, list)
		result = &RunList{Data: prefix, Next: result}
		consumed = b
	}
	attachOverlappingAttrs(remaining, list)
	result = &RunList{Data: remaining, Next: result}

	return result.reverse()
}

// snapToClusterStart rounds `index` (relative to the run) up to the nearest
// glyph cluster boundary, so a split never lands inside a cluster.
func snapToClusterStart(gi *GlyphItem, index int) int {
	clusters := gi.Glyphs.logClusters
	for index < gi.Item.Length {
		found := false
		for _, c := range clusters {
			if c == index {
				found = true
				break
			}
		}
		if found {
			break
		}
		index++
	}
	return index
}

func attachOverlappingAttrs(gi *GlyphItem, list AttrList) {
	itemStart := gi.Item.Offset
	itemEnd := itemStart + gi.Item.Length
	for _, attr := range list {
		if attr.StartIndex < itemEnd && attr.EndIndex > itemStart {
			dup := false
			for _, existing := range gi.Item.Analysis.ExtraAttrs {
				if compareAttr(existing, attr) {
					dup = true
					break
				}
			}
			if !dup {
				gi.Item.Analysis.ExtraAttrs = append(gi.Item.Analysis.ExtraAttrs, attr)
			}
		}
	}
}
