package font

import (
	"bytes"
	"io/ioutil"
	"sort"
	"strings"
	"sync"

	hbtt "github.com/benoitkugler/textlayout/fonts/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Handle is a loaded, parsed, immutable font face. Handles are shared by
// pointer; all exported state is read-only after parsing. The raw binary
// is kept around because shapers may want to re-parse it.
type Handle struct {
	Fontname string     // full face name, e.g. "Noto Sans Bold"
	Filepath string     // file path, if loaded from disk
	Binary   []byte     // raw font data
	SFNT     *sfnt.Font // golang.org/x/image container, used for metadata
	otf      *hbtt.Font // textlayout container, used for cmap and shaping

	cpOnce     sync.Once
	codepoints []rune // sorted set of supported codepoints, built lazily
}

// LoadOpenTypeFont reads and parses an OpenType font from a file.
func LoadOpenTypeFont(fontfile string) (*Handle, error) {
	bytez, err := ioutil.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	h, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, err
	}
	h.Filepath = fontfile
	return h, nil
}

// ParseOpenTypeFont parses an OpenType font from binary data.
func ParseOpenTypeFont(fbytes []byte) (h *Handle, err error) {
	h = &Handle{Binary: fbytes}
	if h.SFNT, err = sfnt.Parse(h.Binary); err != nil {
		return nil, err
	}
	if h.otf, err = hbtt.Parse(bytes.NewReader(h.Binary), true); err != nil {
		return nil, err
	}
	h.Fontname, _ = h.SFNT.Name(nil, sfnt.NameIDFull)
	return h, nil
}

// OpenTypeFace returns the face in textlayout's format, suitable for
// handing to a HarfBuzz shaper.
func (h *Handle) OpenTypeFace() *hbtt.Font {
	return h.otf
}

// Codepoints returns the sorted set of Unicode codepoints this face has
// glyphs for. The set is built from the face's cmap on first call and
// cached; callers must not mutate it.
func (h *Handle) Codepoints() []rune {
	h.cpOnce.Do(func() {
		cmap, _ := h.otf.Cmap()
		iter := cmap.Iter()
		for iter.Next() {
			r, gid := iter.Char()
			if gid == 0 {
				continue
			}
			h.codepoints = append(h.codepoints, r)
		}
		sort.Slice(h.codepoints, func(i, j int) bool {
			return h.codepoints[i] < h.codepoints[j]
		})
		// cmaps may map a rune in more than one subtable
		h.codepoints = dedupRunes(h.codepoints)
		tracer().Debugf("font %s supports %d codepoints", h.Fontname, len(h.codepoints))
	})
	return h.codepoints
}

// SupportsCodepoint checks h's codepoint set for a single rune.
func (h *Handle) SupportsCodepoint(r rune) bool {
	cps := h.Codepoints()
	i := sort.Search(len(cps), func(i int) bool { return cps[i] >= r })
	return i < len(cps) && cps[i] == r
}

func dedupRunes(runes []rune) []rune {
	n := 0
	for _, r := range runes {
		if n > 0 && r == runes[n-1] {
			continue
		}
		runes[n] = r
		n++
	}
	return runes[:n]
}

// Describe derives matching metadata for a face: family and face names
// from the name table, weight/style/stretch guessed from the face name,
// fixed-pitch detection from advance widths.
func (h *Handle) Describe() Descriptor {
	d := Descriptor{Name: h.Fontname}
	d.Family, _ = h.SFNT.Name(nil, sfnt.NameIDFamily)
	if d.Family == "" {
		d.Family = h.Fontname
	}
	subfamily, _ := h.SFNT.Name(nil, sfnt.NameIDSubfamily)
	d.Style, d.Weight = GuessStyleAndWeight(d.Family + " " + subfamily)
	d.Stretch = GuessStretch(d.Family + " " + subfamily)
	d.Monospace = h.isFixedPitch() ||
		strings.Contains(strings.ToLower(d.Family), "mono")
	return d
}

// isFixedPitch probes the advance widths of a handful of runes with very
// different natural widths. Faces missing all probe runes are not
// considered fixed-pitch.
func (h *Handle) isFixedPitch() bool {
	var buf sfnt.Buffer
	ppem := fixed.I(16)
	var advance fixed.Int26_6
	seen := 0
	for _, r := range [...]rune{'i', 'l', '.', 'm', 'W'} {
		gid, err := h.SFNT.GlyphIndex(&buf, r)
		if err != nil || gid == 0 {
			continue
		}
		adv, err := h.SFNT.GlyphAdvance(&buf, gid, ppem, font.HintingNone)
		if err != nil {
			continue
		}
		if seen > 0 && adv != advance {
			return false
		}
		advance = adv
		seen++
	}
	return seen > 1
}

// --- Fallback font ---------------------------------------------------------

// FallbackFont returns a font to be used if everything else failes. It is
// always present. Currently we use Go Sans.
func FallbackFont() *Handle {
	fallbackFontLoading.Do(func() {
		fallbackFont = loadFallbackFont()
	})
	return fallbackFont
}

var fallbackFontLoading sync.Once

var fallbackFont *Handle

func loadFallbackFont() *Handle {
	h, err := ParseOpenTypeFont(goregular.TTF)
	if err != nil {
		panic("cannot load packaged fallback font") // this cannot happen
	}
	h.Fontname = "Go Sans"
	h.Filepath = "internal"
	return h
}
