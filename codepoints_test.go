package fontsys

import (
	"testing"

	"github.com/npillmayer/fontsys/core/font"
	"github.com/npillmayer/fontsys/fallback"
	"github.com/npillmayer/fontsys/fontdb"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestHasCodepoint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsys.match")
	defer teardown()
	//
	db := fontdb.NewDatabase()
	ids := db.Load(fontdb.Source{Data: goregular.TTF})
	require.Len(t, ids, 1)
	s := NewWithDatabase("en-US", db, fallback.ListChain{})
	//
	require.True(t, s.HasCodepoint(ids[0], 'a'))
	require.False(t, s.HasCodepoint(ids[0], '漢'))
	//
	cs := s.support[ids[0]]
	require.NotNil(t, cs)
	require.Len(t, cs.supported, 1)
	require.Len(t, cs.notSupported, 1)
	// repeated queries must be answered from the memo, not re-recorded
	require.True(t, s.HasCodepoint(ids[0], 'a'))
	require.False(t, s.HasCodepoint(ids[0], '漢'))
	require.Len(t, cs.supported, 1)
	require.Len(t, cs.notSupported, 1)
}

func TestHasCodepointUnloadableFace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsys.match")
	defer teardown()
	//
	s, ids := testSystem(t, font.Descriptor{Family: "Testfam", Name: "Testfam Regular", Weight: 400})
	require.False(t, s.HasCodepoint(ids[0], 'a'))
}

func TestCodepointMemoStaysSorted(t *testing.T) {
	cs := newCodepointSupport()
	even := func(r rune) bool { return r%2 == 0 }
	for _, r := range []rune{'z', 'a', 'm', 'b', 'y'} {
		cs.has(r, even)
	}
	for i := 1; i < len(cs.supported); i++ {
		if cs.supported[i-1] >= cs.supported[i] {
			t.Fatalf("supported memo out of order: %v", cs.supported)
		}
	}
	for i := 1; i < len(cs.notSupported); i++ {
		if cs.notSupported[i-1] >= cs.notSupported[i] {
			t.Fatalf("not-supported memo out of order: %v", cs.notSupported)
		}
	}
}

func TestCodepointMemoCap(t *testing.T) {
	cs := newCodepointSupport()
	yes := func(rune) bool { return true }
	for r := rune(0x1000); r < rune(0x1000+supportedMaxSize+100); r++ {
		require.True(t, cs.has(r, yes))
	}
	require.Len(t, cs.supported, supportedMaxSize, "memo must stop growing at its cap")
	// answers beyond the cap stay correct, they are just not recorded
	require.True(t, cs.has(rune(0x2000), yes))
	require.Len(t, cs.supported, supportedMaxSize)
}

func TestSupportedInWord(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsys.match")
	defer teardown()
	//
	db := fontdb.NewDatabase()
	ids := db.Load(fontdb.Source{Data: goregular.TTF})
	s := NewWithDatabase("en-US", db, fallback.ListChain{})
	require.Equal(t, 3, s.SupportedInWord(ids[0], "ab漢c"))
}
