package fontsys

import (
	"sort"
	"strings"
	"unicode"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/fontsys/fontdb"
	"golang.org/x/text/language"
)

// scriptProbeMin is the number of codepoints of a script a face must
// cover before the script index lists it for that script.
const scriptProbeMin = 20

// monospaceIndex is a precomputed table of monospace faces, optionally
// indexed by the scripts they cover. Read-only after construction.
type monospaceIndex struct {
	ids       []fontdb.ID                    // sorted IDs of all monospace faces
	perScript map[language.Script][]fontdb.ID // sorted, deduplicated; nil until built
}

// newMonospaceIndex collects all faces flagged monospace, excluding
// emoji-only fonts (identified by name), and sorts their IDs.
func newMonospaceIndex(db *fontdb.Database) *monospaceIndex {
	idx := &monospaceIndex{}
	for _, face := range db.Faces() {
		if !face.Monospace {
			continue
		}
		if strings.Contains(strings.ToLower(face.Name), "emoji") {
			continue
		}
		idx.ids = append(idx.ids, face.ID)
	}
	sort.Slice(idx.ids, func(i, j int) bool { return idx.ids[i] < idx.ids[j] })
	tracer().Debugf("monospace index holds %d faces", len(idx.ids))
	return idx
}

func (idx *monospaceIndex) isMonospace(id fontdb.ID) bool {
	i := sort.Search(len(idx.ids), func(i int) bool { return idx.ids[i] >= id })
	return i < len(idx.ids) && idx.ids[i] == id
}

// scriptRanges maps the script tags the index recognizes to their
// Unicode codepoint ranges. Coverage of a script is probed against a
// face's codepoint set; this sidesteps parsing OpenType layout tables.
var scriptRanges = []struct {
	tag    language.Script
	ranges *unicode.RangeTable
}{
	{language.MustParseScript("Latn"), unicode.Latin},
	{language.MustParseScript("Cyrl"), unicode.Cyrillic},
	{language.MustParseScript("Grek"), unicode.Greek},
	{language.MustParseScript("Arab"), unicode.Arabic},
	{language.MustParseScript("Hebr"), unicode.Hebrew},
	{language.MustParseScript("Deva"), unicode.Devanagari},
	{language.MustParseScript("Beng"), unicode.Bengali},
	{language.MustParseScript("Taml"), unicode.Tamil},
	{language.MustParseScript("Telu"), unicode.Telugu},
	{language.MustParseScript("Knda"), unicode.Kannada},
	{language.MustParseScript("Mlym"), unicode.Malayalam},
	{language.MustParseScript("Gujr"), unicode.Gujarati},
	{language.MustParseScript("Guru"), unicode.Gurmukhi},
	{language.MustParseScript("Sinh"), unicode.Sinhala},
	{language.MustParseScript("Thai"), unicode.Thai},
	{language.MustParseScript("Laoo"), unicode.Lao},
	{language.MustParseScript("Khmr"), unicode.Khmer},
	{language.MustParseScript("Mymr"), unicode.Myanmar},
	{language.MustParseScript("Hang"), unicode.Hangul},
	{language.MustParseScript("Hira"), unicode.Hiragana},
	{language.MustParseScript("Kana"), unicode.Katakana},
	{language.MustParseScript("Hani"), unicode.Han},
	{language.MustParseScript("Geor"), unicode.Georgian},
	{language.MustParseScript("Armn"), unicode.Armenian},
	{language.MustParseScript("Ethi"), unicode.Ethiopic},
}

// IndexMonospaceScripts builds the per-script monospace table: for every
// monospace face, its codepoint coverage is probed against the known
// script ranges. This loads every monospace font, so it is not part of
// System construction; call it once if per-script monospace lookup is
// wanted.
func (s *System) IndexMonospaceScripts() {
	sets := make(map[language.Script]*treeset.Set)
	for _, id := range s.mono.ids {
		h := s.db.Font(id)
		if h == nil {
			continue
		}
		counts := make([]int, len(scriptRanges))
		for _, r := range h.Codepoints() {
			for i := range scriptRanges {
				if unicode.Is(scriptRanges[i].ranges, r) {
					counts[i]++
					break
				}
			}
		}
		for i, count := range counts {
			if count < scriptProbeMin {
				continue
			}
			tag := scriptRanges[i].tag
			set, ok := sets[tag]
			if !ok {
				set = treeset.NewWith(idComparator)
				sets[tag] = set
			}
			set.Add(id)
		}
	}
	s.mono.perScript = make(map[language.Script][]fontdb.ID, len(sets))
	for tag, set := range sets {
		ids := make([]fontdb.ID, 0, set.Size())
		for _, v := range set.Values() {
			ids = append(ids, v.(fontdb.ID))
		}
		s.mono.perScript[tag] = ids
	}
	tracer().Infof("monospace script index covers %d scripts", len(s.mono.perScript))
}

func idComparator(a, b interface{}) int {
	x, y := a.(fontdb.ID), b.(fontdb.ID)
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

// IsMonospace tells whether a face is a monospace face. O(log n).
func (s *System) IsMonospace(id fontdb.ID) bool {
	return s.mono.isMonospace(id)
}

// MonospaceIDsForScripts returns the sorted, deduplicated union of
// monospace faces covering any of the given scripts. The result is
// empty until IndexMonospaceScripts has been called.
func (s *System) MonospaceIDsForScripts(scripts []language.Script) []fontdb.ID {
	var ids []fontdb.ID
	for _, script := range scripts {
		ids = append(ids, s.mono.perScript[script]...)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	n := 0
	for _, id := range ids {
		if n > 0 && id == ids[n-1] {
			continue
		}
		ids[n] = id
		n++
	}
	return ids[:n]
}
