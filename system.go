package fontsys

import (
	"errors"
	"sort"

	"github.com/cloudfoundry/jibber_jabber"
	"github.com/npillmayer/fontsys/core"
	"github.com/npillmayer/fontsys/core/font"
	"github.com/npillmayer/fontsys/fallback"
	"github.com/npillmayer/fontsys/fontdb"
	"github.com/npillmayer/fontsys/glyphing"
	"github.com/npillmayer/fontsys/glyphing/harfbuzz"
	"golang.org/x/text/language"
)

// ErrUnknownFamilyName is returned when a family-name based fallback
// rule names a family with no matching face. The rule is not installed.
var ErrUnknownFamilyName = errors.New("no installed face matches family")

// matchCacheLimit caps the number of memoized match results. A full
// cache is flushed wholesale before the next result is inserted.
const matchCacheLimit = 256

// MatchKey ranks one face for a match request. Keys order ascending by
// weight distance to the request, then by face weight, then by face ID,
// which guarantees deterministic, closest-weight-first results.
type MatchKey struct {
	WeightDiff uint16 // |requested weight − face weight|
	Weight     font.Weight
	ID         fontdb.ID
}

func matchKeyLess(a, b MatchKey) bool {
	if a.WeightDiff != b.WeightDiff {
		return a.WeightDiff < b.WeightDiff
	}
	if a.Weight != b.Weight {
		return a.Weight < b.Weight
	}
	return a.ID < b.ID
}

// System is the font resolution engine: it owns the font database plus
// all caches and fallback tables, and orchestrates fallback resolution
// for shaped runs.
//
// Construct one System at startup and pass it by reference into every
// call needing font resolution. A System is not safe for concurrent
// mutation.
type System struct {
	locale string
	db     *fontdb.Database
	shaper glyphing.Shaper
	chain  fallback.Chain
	ranges *fallback.Ranges

	matches  map[AttrsKey][]MatchKey
	matchGen uint64 // db generation the match cache was filled against

	support map[fontdb.ID]*codepointSupport
	mono    *monospaceIndex
}

// New creates a System with access to all installed system fonts.
//
// This function takes some time to run: it scans and parses every font
// face the platform knows about. It should be called once, with the
// resulting System shared for the lifetime of the process.
func New() *System {
	db := fontdb.NewDatabase()
	db.LoadSystemFonts()
	return NewWithDatabase(detectLocale(), db, fallback.Platform())
}

// NewWithDatabase creates a System from a pre-populated database, a
// locale and a family fallback chain. Intended for tests and for
// embedders that manage font loading themselves.
func NewWithDatabase(locale string, db *fontdb.Database, chain fallback.Chain) *System {
	s := &System{
		locale:  locale,
		db:      db,
		shaper:  harfbuzz.Shaper(),
		chain:   chain,
		ranges:  fallback.NewRanges(),
		matches: make(map[AttrsKey][]MatchKey),
		support: make(map[fontdb.ID]*codepointSupport),
	}
	s.matchGen = db.Generation()
	s.mono = newMonospaceIndex(db)
	return s
}

func detectLocale() string {
	locale, err := jibber_jabber.DetectIETF()
	if err != nil || locale == "" {
		tracer().Infof("failed to detect system locale, falling back to en-US")
		return "en-US"
	}
	return locale
}

// Locale returns the locale the System was created for.
func (s *System) Locale() string {
	return s.locale
}

// Database returns the underlying font database. Mutating it directly
// is allowed; the System notices mutations through the database's
// generation counter.
func (s *System) Database() *fontdb.Database {
	return s.db
}

// SetShaper replaces the shaping engine used for fallback re-shaping.
// The default is the HarfBuzz shaper.
func (s *System) SetShaper(sh glyphing.Shaper) {
	s.shaper = sh
}

// Load adds a font source to the database. All match results cached so
// far are invalidated: stale face sets must never be served.
func (s *System) Load(src fontdb.Source) []fontdb.ID {
	return s.db.Load(src)
}

// Font returns the loaded font for a face, or nil if the face does not
// exist or failed to load. Load failures are cached; see fontdb.
func (s *System) Font(id fontdb.ID) *font.Handle {
	return s.db.Font(id)
}

// Matches resolves a match request to all compatible faces, ranked
// closest-weight-first. Results are memoized under the normalized
// request; the memo is flushed wholesale when it reaches capacity, and
// discarded entirely whenever the database has been mutated.
func (s *System) Matches(attrs Attrs) []MatchKey {
	if gen := s.db.Generation(); gen != s.matchGen {
		tracer().Debugf("font database changed, dropping %d match results", len(s.matches))
		s.matches = make(map[AttrsKey][]MatchKey)
		s.matchGen = gen
	}
	key := attrs.Key()
	if keys, ok := s.matches[key]; ok {
		return keys
	}
	if len(s.matches) >= matchCacheLimit {
		tracer().Debugf("match cache at capacity, flushing")
		s.matches = make(map[AttrsKey][]MatchKey)
	}
	attrs = attrs.normalize()
	var keys []MatchKey
	for _, face := range s.db.Faces() {
		if !attrs.Matches(s.db, face) {
			continue
		}
		w := face.Weight
		if w == 0 {
			w = font.WeightNormal
		}
		keys = append(keys, MatchKey{
			WeightDiff: absDiff(uint16(attrs.Weight), uint16(w)),
			Weight:     w,
			ID:         face.ID,
		})
	}
	sort.Slice(keys, func(i, j int) bool { return matchKeyLess(keys[i], keys[j]) })
	s.matches[key] = keys
	return keys
}

func absDiff(a, b uint16) uint16 {
	if a > b {
		return a - b
	}
	return b - a
}

// FallbackFamilies returns the ordered family-name fallback sequence
// for a script, under the System's locale.
func (s *System) FallbackFamilies(script language.Script) []string {
	return s.chain.Families(s.locale, script)
}

// --- Unicode-range fallback registration -----------------------------------

// AddRangeFallback registers an unconstrained codepoint-range fallback
// rule mapping [start,end] to a face.
func (s *System) AddRangeFallback(start, end rune, id fontdb.ID) {
	s.ranges.Add(start, end, id)
}

// AddRangeFallbackConstrained registers a codepoint-range fallback rule
// that only answers requests of exactly the given weight and style.
func (s *System) AddRangeFallbackConstrained(start, end rune, id fontdb.ID,
	w *font.Weight, style *font.Style) {
	s.ranges.AddConstrained(start, end, id, w, style)
}

// AddFamilyRangeFallback registers a codepoint-range fallback rule by
// family name. The family is resolved to a representative face (the one
// closest to normal text weight) at registration time; if no installed
// face matches the family, ErrUnknownFamilyName is returned and the
// rule is not installed.
func (s *System) AddFamilyRangeFallback(start, end rune, family string) error {
	ids := s.db.FindFamily(family)
	if len(ids) == 0 {
		return core.WrapError(ErrUnknownFamilyName, core.EMISSING,
			"fallback rule for family %q: %v", family, ErrUnknownFamilyName)
	}
	best := ids[0]
	bestDiff := s.weightDiffToNormal(best)
	for _, id := range ids[1:] {
		if d := s.weightDiffToNormal(id); d < bestDiff || (d == bestDiff && id < best) {
			best, bestDiff = id, d
		}
	}
	s.ranges.Add(start, end, best)
	return nil
}

func (s *System) weightDiffToNormal(id fontdb.ID) uint16 {
	face, ok := s.db.Face(id)
	if !ok {
		return 1000
	}
	w := face.Weight
	if w == 0 {
		w = font.WeightNormal
	}
	return absDiff(uint16(w), uint16(font.WeightNormal))
}

// HasRangeFallbacks tells whether any codepoint-range fallback rules
// are registered.
func (s *System) HasRangeFallbacks() bool {
	return !s.ranges.IsEmpty()
}

// RangeFallbackFor resolves the registered substitute face for a single
// codepoint, given the requesting run's weight and style.
func (s *System) RangeFallbackFor(r rune, w *font.Weight, style *font.Style) (fontdb.ID, bool) {
	return s.ranges.Find(r, w, style)
}
