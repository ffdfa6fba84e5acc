/*
Package harfbuzz uses HarfBuzz to convert text to sequences of glyphs.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package harfbuzz

import (
	"encoding/binary"
	"sort"
	"unicode"

	hb "github.com/benoitkugler/textlayout/harfbuzz"
	hblang "github.com/benoitkugler/textlayout/language"
	"github.com/npillmayer/fontsys/core/font"
	"github.com/npillmayer/fontsys/glyphing"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/language"
)

// tracer traces with key 'fontsys.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("fontsys.glyphs")
}

// --- Type conversion -------------------------------------------------------

// Lang4HB returns a language tag as a HarfBuzz language.
func Lang4HB(l language.Tag) hblang.Language {
	return hblang.NewLanguage(l.String())
}

// Script4HB returns a script as a HarfBuzz script.
func Script4HB(s language.Script) hblang.Script {
	b := []byte(s.String())
	b[0] = byte(unicode.ToLower(rune(b[0])))
	h := binary.BigEndian.Uint32(b)
	return hblang.Script(h)
}

// Direction4HB translates a direction to a HarfBuzz direction.
func Direction4HB(d glyphing.Direction) hb.Direction {
	switch d {
	case glyphing.LeftToRight:
		return hb.LeftToRight
	case glyphing.RightToLeft:
		return hb.RightToLeft
	case glyphing.TopToBottom:
		return hb.TopToBottom
	case glyphing.BottomToTop:
		return hb.BottomToTop
	}
	return hb.LeftToRight
}

// --- Shaper ----------------------------------------------------------------

type hbshaper struct {
	fonts map[*font.Handle]*hb.Font // HarfBuzz font objects, one per handle
}

// Shaper creates a HarfBuzz-backed shaper.
//
// The shaper keeps a HarfBuzz font object per handle it has seen, so
// shaping the same face repeatedly does not re-prepare it.
func Shaper() glyphing.Shaper {
	return &hbshaper{fonts: make(map[*font.Handle]*hb.Font)}
}

func (sh *hbshaper) font(h *font.Handle) *hb.Font {
	if f, ok := sh.fonts[h]; ok {
		return f
	}
	f := hb.NewFont(h.OpenTypeFace())
	sh.fonts[h] = f
	return f
}

// Shape shapes line[start:end) with the given face, turning its Unicode
// characters into positioned glyphs.
//
// Characters the face has no glyph for produce a .notdef glyph in the
// output and their cluster's byte offset is reported in Missing.
func (sh *hbshaper) Shape(h *font.Handle, line string, params glyphing.Params,
	start, end int) (glyphing.ShapedRun, error) {
	//
	if h == nil || start >= end {
		return glyphing.ShapedRun{}, nil
	}
	hbFont := sh.font(h)
	// rune index → byte offset within line
	runes := make([]rune, 0, end-start)
	offs := make([]int, 0, end-start+1)
	for i, r := range line[start:end] {
		runes = append(runes, r)
		offs = append(offs, start+i)
	}
	offs = append(offs, end)
	//
	hbBuf := hb.NewBuffer()
	convertParams(&hbBuf.Props, params)
	hbBuf.AddRunes(runes, 0, len(runes))
	hbBuf.Shape(hbFont, nil)
	//
	run := glyphing.ShapedRun{Glyphs: params.Buf[:0]}
	if run.Glyphs == nil {
		run.Glyphs = make([]glyphing.Glyph, 0, len(hbBuf.Info))
	}
	clusterEnd := nextClusterTable(hbBuf.Info, len(runes))
	missing := make(map[int]bool)
	for i, ginfo := range hbBuf.Info {
		gpos := hbBuf.Pos[i]
		cluster := ginfo.Cluster
		g := glyphing.Glyph{
			Start:     offs[cluster],
			End:       offs[clusterEnd[cluster]],
			GID:       glyphing.GlyphIndex(ginfo.Glyph),
			ClusterID: cluster,
			XAdvance:  gpos.XAdvance,
			YAdvance:  gpos.YAdvance,
			XOffset:   gpos.XOffset,
			YOffset:   gpos.YOffset,
			CodePoint: runes[cluster],
		}
		if ginfo.Glyph == 0 {
			missing[g.Start] = true
		}
		run.Glyphs = append(run.Glyphs, g)
	}
	for off := range missing {
		run.Missing = append(run.Missing, off)
	}
	sort.Ints(run.Missing)
	tracer().Debugf("shaped %d runes into %d glyphs, %d missing",
		len(runes), len(run.Glyphs), len(run.Missing))
	return run, nil
}

// nextClusterTable maps each cluster value occurring in infos to the
// next larger cluster value, or to runeCount for the last cluster.
// Clusters are rune indices into the shaped text.
func nextClusterTable(infos []hb.GlyphInfo, runeCount int) map[int]int {
	clusters := make([]int, 0, len(infos))
	seen := make(map[int]bool)
	for _, info := range infos {
		if !seen[info.Cluster] {
			seen[info.Cluster] = true
			clusters = append(clusters, info.Cluster)
		}
	}
	sort.Ints(clusters)
	next := make(map[int]int, len(clusters))
	for i, c := range clusters {
		if i+1 < len(clusters) {
			next[c] = clusters[i+1]
		} else {
			next[c] = runeCount
		}
	}
	return next
}

// convertParams is a helper function to convert shaping parameters to
// HarfBuzz's format.
func convertParams(hbSeqProps *hb.SegmentProperties, params glyphing.Params) {
	if params.Language != language.Und {
		hbSeqProps.Language = Lang4HB(params.Language)
	}
	var none language.Script
	if params.Script != none {
		hbSeqProps.Script = Script4HB(params.Script)
	}
	hbSeqProps.Direction = Direction4HB(params.Direction)
}
