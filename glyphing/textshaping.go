package glyphing

import (
	"fmt"

	"github.com/npillmayer/fontsys/core/font"
	"github.com/npillmayer/fontsys/fontdb"
	"golang.org/x/text/language"
)

// Direction is the direction to typeset text in.
type Direction int

// Direction to typeset text in.
const (
	LeftToRight Direction = iota
	RightToLeft
	TopToBottom
	BottomToTop
)

// GlyphIndex is a glyph's index within a font.
type GlyphIndex uint32

// A Glyph is one positioned glyph of a shaped run. Start and End are
// byte offsets into the source line; a glyph formed from several runes
// (a ligature) spans all of them. Advances and offsets are in font
// design units.
type Glyph struct {
	Start, End int        // byte offsets of the cluster in the source line
	GID        GlyphIndex // glyph index within the font
	ClusterID  int        // shaper cluster this glyph belongs to
	XAdvance   int32      // advance after glyph has been set
	YAdvance   int32
	XOffset    int32 // position of anchor dot for glyph
	YOffset    int32
	CodePoint  rune      // first rune of the cluster producing this glyph
	Font       fontdb.ID // face that rendered this glyph; zero if unresolved
}

func (g Glyph) String() string {
	return fmt.Sprintf("(GID=%d, start=%d)", g.GID, g.Start)
}

// A ShapedRun is the output of shaping one run: the glyph sequence plus
// the byte offsets of clusters the font had no glyph for.
type ShapedRun struct {
	Glyphs  []Glyph
	Missing []int // byte offsets with no renderable glyph, ascending
}

// Params collects shaping parameters.
type Params struct {
	Direction Direction       // writing direction
	Script    language.Script // 4-letter ISO 15924 script identifier
	Language  language.Tag    // BCP 47 language tag
	Buf       []Glyph         // optional scratch buffer, reused for output
}

// A Shaper converts a run of characters into a sequence of positioned
// glyphs, taken from a given font face. Shaping covers line[start:end);
// the full line is passed so shapers can use out-of-run context.
//
// Shape is pure given its inputs: it owns no state shared with callers.
type Shaper interface {
	Shape(h *font.Handle, line string, params Params, start, end int) (ShapedRun, error)
}
