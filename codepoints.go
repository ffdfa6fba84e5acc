package fontsys

import (
	"sort"

	"github.com/npillmayer/fontsys/fontdb"
)

// Caps for the per-font codepoint support memo. Once a sequence is
// full, further unknown codepoints are still answered correctly but no
// longer recorded (soft degrade; deliberately not an LRU).
const (
	supportedMaxSize    = 512
	notSupportedMaxSize = 1024
)

// codepointSupport memoizes which codepoints a single face can render.
// Both sequences are sorted; a codepoint appears in at most one of them.
type codepointSupport struct {
	supported    []rune
	notSupported []rune
}

func newCodepointSupport() *codepointSupport {
	return &codepointSupport{
		supported:    make([]rune, 0, 64),
		notSupported: make([]rune, 0, 64),
	}
}

// has answers whether the face supports r, consulting the memo first
// and falling back to the face's full codepoint set. consult answers
// the authoritative question on a memo miss.
func (cs *codepointSupport) has(r rune, consult func(rune) bool) bool {
	supPos := sort.Search(len(cs.supported), func(i int) bool { return cs.supported[i] >= r })
	if supPos < len(cs.supported) && cs.supported[supPos] == r {
		return true
	}
	notPos := sort.Search(len(cs.notSupported), func(i int) bool { return cs.notSupported[i] >= r })
	if notPos < len(cs.notSupported) && cs.notSupported[notPos] == r {
		return false
	}
	ok := consult(r)
	if ok {
		if len(cs.supported) < supportedMaxSize {
			cs.supported = insertRune(cs.supported, supPos, r)
		}
	} else {
		if len(cs.notSupported) < notSupportedMaxSize {
			cs.notSupported = insertRune(cs.notSupported, notPos, r)
		}
	}
	return ok
}

func insertRune(runes []rune, pos int, r rune) []rune {
	runes = append(runes, 0)
	copy(runes[pos+1:], runes[pos:])
	runes[pos] = r
	return runes
}

// HasCodepoint answers whether a face has a glyph for a codepoint.
// Hot lookups are O(log n) against a bounded per-font memo; only memo
// misses consult the face's full codepoint set. A face that cannot be
// loaded supports nothing.
func (s *System) HasCodepoint(id fontdb.ID, r rune) bool {
	h := s.db.Font(id)
	if h == nil {
		return false
	}
	cs, ok := s.support[id]
	if !ok {
		cs = newCodepointSupport()
		s.support[id] = cs
	}
	return cs.has(r, h.SupportsCodepoint)
}

// SupportedInWord counts how many of the word's characters a face can
// render. Layout code uses the count to score candidate fonts by
// coverage.
func (s *System) SupportedInWord(id fontdb.ID, word string) int {
	count := 0
	for _, r := range word {
		if s.HasCodepoint(id, r) {
			count++
		}
	}
	return count
}
