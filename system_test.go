package fontsys

import (
	"errors"
	"fmt"
	"testing"

	"github.com/npillmayer/fontsys/core/font"
	"github.com/npillmayer/fontsys/fallback"
	"github.com/npillmayer/fontsys/fontdb"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func testSystem(t *testing.T, descs ...font.Descriptor) (*System, []fontdb.ID) {
	t.Helper()
	db := fontdb.NewDatabase()
	ids := make([]fontdb.ID, len(descs))
	for i, d := range descs {
		ids[i] = db.AddFace(d, fontdb.Source{})
	}
	return NewWithDatabase("en-US", db, fallback.ListChain{"Testfam"}), ids
}

func TestMatchesWeightOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsys.match")
	defer teardown()
	//
	s, ids := testSystem(t,
		font.Descriptor{Family: "Testfam", Name: "Testfam Thin", Weight: 100},
		font.Descriptor{Family: "Testfam", Name: "Testfam Regular", Weight: 400},
		font.Descriptor{Family: "Testfam", Name: "Testfam Bold", Weight: 700},
	)
	keys := s.Matches(Attrs{Families: []string{"Testfam"}, Weight: 450})
	require.Len(t, keys, 3)
	require.Equal(t, ids[1], keys[0].ID, "weight 400 has the smallest diff (50)")
	require.Equal(t, ids[2], keys[1].ID, "weight 700 comes second (diff 250)")
	require.Equal(t, ids[0], keys[2].ID, "weight 100 comes last (diff 350)")
}

func TestMatchesDeterministicTieBreak(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsys.match")
	defer teardown()
	//
	// two faces at the same weight order by ID
	s, ids := testSystem(t,
		font.Descriptor{Family: "Testfam", Name: "Testfam A", Weight: 400},
		font.Descriptor{Family: "Testfam", Name: "Testfam B", Weight: 400},
	)
	keys := s.Matches(Attrs{Families: []string{"Testfam"}, Weight: 400})
	require.Len(t, keys, 2)
	require.Equal(t, ids[0], keys[0].ID)
	require.Equal(t, ids[1], keys[1].ID)
}

func TestMatchesCacheInvalidation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsys.match")
	defer teardown()
	//
	s, _ := testSystem(t,
		font.Descriptor{Family: "Testfam", Name: "Testfam Regular", Weight: 400},
	)
	attrs := Attrs{Families: []string{"Testfam"}}
	require.Len(t, s.Matches(attrs), 1)
	// mutating the database must not leave stale match results behind
	s.Database().AddFace(font.Descriptor{Family: "Testfam", Name: "Testfam Black", Weight: 900},
		fontdb.Source{})
	require.Len(t, s.Matches(attrs), 2, "expected recomputed matches to include the new face")
}

func TestMatchesCacheFlushAtCapacity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsys.match")
	defer teardown()
	//
	s, _ := testSystem(t,
		font.Descriptor{Family: "Testfam", Name: "Testfam Regular", Weight: 400},
	)
	for i := 0; i < matchCacheLimit+10; i++ {
		s.Matches(Attrs{Families: []string{fmt.Sprintf("fam-%d", i)}})
	}
	if len(s.matches) > matchCacheLimit {
		t.Errorf("match cache grew to %d entries, cap is %d", len(s.matches), matchCacheLimit)
	}
}

func TestAddFamilyRangeFallback(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsys.match")
	defer teardown()
	//
	s, ids := testSystem(t,
		font.Descriptor{Family: "Testfam", Name: "Testfam Bold", Weight: 700},
		font.Descriptor{Family: "Testfam", Name: "Testfam Regular", Weight: 400},
	)
	require.False(t, s.HasRangeFallbacks())
	require.NoError(t, s.AddFamilyRangeFallback('a', 'z', "Testfam"))
	require.True(t, s.HasRangeFallbacks())
	//
	id, ok := s.RangeFallbackFor('q', nil, nil)
	require.True(t, ok)
	require.Equal(t, ids[1], id, "representative face should be the one closest to normal weight")
}

func TestAddFamilyRangeFallbackUnknown(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsys.match")
	defer teardown()
	//
	s, _ := testSystem(t)
	err := s.AddFamilyRangeFallback('a', 'z', "No Such Family")
	require.Error(t, err)
	if !errors.Is(err, ErrUnknownFamilyName) {
		t.Errorf("expected ErrUnknownFamilyName in error chain, got %v", err)
	}
	require.False(t, s.HasRangeFallbacks(), "failed registration must not install a rule")
}

func TestSystemAccessors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsys.match")
	defer teardown()
	//
	s, _ := testSystem(t)
	require.Equal(t, "en-US", s.Locale())
	require.NotNil(t, s.Database())
	fams := s.FallbackFamilies(language.MustParseScript("Arab"))
	require.Equal(t, []string{"Testfam"}, fams, "list chains ignore locale and script")
}
