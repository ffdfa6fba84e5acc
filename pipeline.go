package fontsys

import (
	"sort"
	"unicode/utf8"

	"github.com/npillmayer/fontsys/fontdb"
	"github.com/npillmayer/fontsys/glyphing"
)

// ResolveMissing resolves registered codepoint-range fallbacks for the
// character positions a primary shaping pass could not render.
//
// glyphs is the primary pass's output for the run line[start:end);
// missing lists the byte offsets of its unrendered clusters. For every
// distinct substitute face the registered rules name, the entire run is
// re-shaped once with that face (full-run re-shaping preserves cluster
// and ligature formation), and the glyphs covering formerly missing
// offsets are spliced into the result.
//
// ResolveMissing returns the merged glyph sequence, stably sorted by
// start offset, and the ascending residual offsets that remain
// unresolved. Every input offset ends up either replaced in the output
// or in the residual, never both, never dropped. The input slices are
// not mutated.
func (s *System) ResolveMissing(glyphs []glyphing.Glyph, line string, attrs Attrs,
	start, end int, dir glyphing.Direction, missing []int) ([]glyphing.Glyph, []int) {
	//
	if s.ranges.IsEmpty() || len(missing) == 0 {
		return glyphs, missing
	}
	attrs = attrs.normalize()
	//
	// group resolvable offsets by substitute face
	groups := make(map[fontdb.ID][]int)
	var residual []int
	for _, off := range missing {
		r, ok := runeAt(line, start, end, off)
		if !ok {
			residual = append(residual, off)
			continue
		}
		id, ok := s.ranges.Find(r, &attrs.Weight, &attrs.Style)
		if !ok {
			residual = append(residual, off)
			continue
		}
		groups[id] = append(groups[id], off)
	}
	//
	merged := append([]glyphing.Glyph(nil), glyphs...)
	for _, id := range sortedGroupKeys(groups) {
		offsets := groups[id]
		h := s.db.Font(id)
		if h == nil {
			tracer().Infof("fallback face #%d failed to load, %d offsets unresolved", id, len(offsets))
			residual = append(residual, offsets...)
			continue
		}
		params := glyphing.Params{Direction: dir}
		run, err := s.shaper.Shape(h, line, params, start, end)
		if err != nil {
			tracer().Errorf("fallback shaping with face #%d: %v", id, err)
			residual = append(residual, offsets...)
			continue
		}
		stillMissing := make(map[int]bool, len(run.Missing))
		for _, off := range run.Missing {
			stillMissing[off] = true
		}
		for _, off := range offsets {
			if stillMissing[off] {
				residual = append(residual, off)
				continue
			}
			if g, ok := glyphAt(run.Glyphs, off); ok {
				g.Font = id
				merged = splice(merged, g)
			} else {
				// the face formed a ligature swallowing this offset
				residual = append(residual, off)
			}
		}
	}
	//
	sort.SliceStable(merged, func(i, j int) bool { return merged[i].Start < merged[j].Start })
	sort.Ints(residual)
	return merged, residual
}

// runeAt decodes the character at byte offset off of line, restricted
// to [start,end). Offsets outside the run or not on a rune boundary are
// invalid.
func runeAt(line string, start, end, off int) (rune, bool) {
	if off < start || off >= end || end > len(line) {
		return 0, false
	}
	if !utf8.RuneStart(line[off]) {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(line[off:end])
	if r == utf8.RuneError && size < 2 {
		return 0, false
	}
	return r, true
}

// glyphAt finds the glyph of a shaped run whose cluster starts at the
// given byte offset.
func glyphAt(glyphs []glyphing.Glyph, off int) (glyphing.Glyph, bool) {
	for _, g := range glyphs {
		if g.Start == off {
			return g, true
		}
	}
	return glyphing.Glyph{}, false
}

// splice replaces the glyph with g's start offset, or appends g if no
// glyph starts there.
func splice(glyphs []glyphing.Glyph, g glyphing.Glyph) []glyphing.Glyph {
	for i := range glyphs {
		if glyphs[i].Start == g.Start {
			glyphs[i] = g
			return glyphs
		}
	}
	return append(glyphs, g)
}

func sortedGroupKeys(groups map[fontdb.ID][]int) []fontdb.ID {
	ids := make([]fontdb.ID, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
