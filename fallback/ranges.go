package fallback

import (
	"github.com/npillmayer/fontsys/core/font"
	"github.com/npillmayer/fontsys/fontdb"
)

// A Rule maps an inclusive range of codepoints to a substitute face,
// optionally constrained to a weight and style. Rules remember their
// registration sequence number; later registrations win ties.
type Rule struct {
	Start, End rune         // inclusive codepoint range
	Font       fontdb.ID    // substitute face
	Weight     *font.Weight // nil = unconstrained
	Style      *font.Style  // nil = unconstrained
	seq        int
}

func (rule Rule) contains(r rune) bool {
	return rule.Start <= r && r <= rule.End
}

// constrained tells whether both a weight and a style constraint are
// present.
func (rule Rule) constrained() bool {
	return rule.Weight != nil && rule.Style != nil
}

// unconstrained tells whether neither constraint is present.
func (rule Rule) unconstrained() bool {
	return rule.Weight == nil && rule.Style == nil
}

// Ranges is a registry of codepoint-range fallback rules. Ranges may
// overlap; rule priority is decided per query, see Find. Rules never
// expire.
//
// The zero value is ready to use.
type Ranges struct {
	rules []Rule
}

// NewRanges creates an empty fallback rule table.
func NewRanges() *Ranges {
	return &Ranges{}
}

// Add registers an unconstrained rule: any request for a codepoint in
// [start,end] may be answered with the given face.
func (t *Ranges) Add(start, end rune, id fontdb.ID) {
	t.AddConstrained(start, end, id, nil, nil)
}

// AddConstrained registers a rule that additionally demands the
// requesting run to have exactly the given weight and style. A nil
// weight or style leaves that dimension unconstrained.
func (t *Ranges) AddConstrained(start, end rune, id fontdb.ID, w *font.Weight, s *font.Style) {
	rule := Rule{Start: start, End: end, Font: id, Weight: w, Style: s, seq: len(t.rules)}
	t.rules = append(t.rules, rule)
	tracer().Debugf("fallback rule #%d: U+%04X–U+%04X → face #%d", rule.seq, start, end, id)
}

// Find resolves the substitute face for a codepoint, given the
// requesting run's weight and style. Among all rules containing r:
//
//  1. rules whose weight and style constraints are both present and
//     exactly equal to the request win;
//  2. among those, the most recently registered rule wins;
//  3. with no exact constraint match, the most recent rule carrying no
//     constraints at all wins;
//  4. otherwise there is no substitute.
//
// Rules with only one constraint present never match a request on the
// other tier; this favors precise overrides over generic ones.
func (t *Ranges) Find(r rune, w *font.Weight, s *font.Style) (fontdb.ID, bool) {
	var exact, generic *Rule
	for i := range t.rules {
		rule := &t.rules[i]
		if !rule.contains(r) {
			continue
		}
		switch {
		case rule.constrained():
			if w != nil && s != nil && *rule.Weight == *w && *rule.Style == *s {
				if exact == nil || rule.seq > exact.seq {
					exact = rule
				}
			}
		case rule.unconstrained():
			if generic == nil || rule.seq > generic.seq {
				generic = rule
			}
		}
	}
	if exact != nil {
		return exact.Font, true
	}
	if generic != nil {
		return generic.Font, true
	}
	return 0, false
}

// IsEmpty tells whether no rules are registered. Callers use it to
// short-circuit fallback resolution entirely.
func (t *Ranges) IsEmpty() bool {
	return len(t.rules) == 0
}

// Len returns the number of registered rules.
func (t *Ranges) Len() int {
	return len(t.rules)
}
