package fontsys

import (
	"testing"

	"github.com/npillmayer/fontsys/core/font"
	"github.com/npillmayer/fontsys/fontdb"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

func TestAttrsKeyNormalization(t *testing.T) {
	a := Attrs{Families: []string{"Go Mono"}}
	b := Attrs{Families: []string{"  go mono "}, Weight: font.WeightNormal, Stretch: font.StretchNormal}
	require.Equal(t, a.Key(), b.Key(), "equivalent requests must share a cache key")
	//
	c := Attrs{Families: []string{"Go Mono"}, Weight: font.WeightBold}
	require.NotEqual(t, a.Key(), c.Key())
}

func TestAttrsMatches(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsys.match")
	defer teardown()
	//
	db := fontdb.NewDatabase()
	italic := db.AddFace(font.Descriptor{Family: "Testfam", Name: "Testfam Italic",
		Weight: 400, Style: font.StyleItalic}, fontdb.Source{})
	condensed := db.AddFace(font.Descriptor{Family: "Testfam", Name: "Testfam Condensed",
		Weight: 400, Stretch: font.StretchCondensed}, fontdb.Source{})
	//
	italicFace, _ := db.Face(italic)
	condensedFace, _ := db.Face(condensed)
	//
	require.False(t, Attrs{Families: []string{"Testfam"}}.Matches(db, italicFace),
		"an upright request does not accept an italic face")
	require.True(t, Attrs{Families: []string{"Testfam"}, Style: font.StyleOblique}.Matches(db, italicFace),
		"oblique and italic substitute for each other")
	require.False(t, Attrs{Families: []string{"Testfam"}}.Matches(db, condensedFace),
		"stretch must match exactly")
	require.False(t, Attrs{Families: []string{"Other"}}.Matches(db, italicFace))
	require.True(t, Attrs{Style: font.StyleItalic}.Matches(db, italicFace),
		"an empty family list accepts every family")
}
