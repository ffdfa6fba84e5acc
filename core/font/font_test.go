package font

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

func TestParseOpenTypeFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsys.fonts")
	defer teardown()
	//
	h, err := ParseOpenTypeFont(goregular.TTF)
	require.NoError(t, err)
	require.NotNil(t, h.SFNT)
	require.NotNil(t, h.OpenTypeFace())
	if h.Fontname == "" {
		t.Errorf("expected parsed font to carry a name")
	}
}

func TestCodepoints(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsys.fonts")
	defer teardown()
	//
	h, err := ParseOpenTypeFont(goregular.TTF)
	require.NoError(t, err)
	cps := h.Codepoints()
	if len(cps) == 0 {
		t.Fatalf("expected non-empty codepoint set")
	}
	for i := 1; i < len(cps); i++ {
		if cps[i] <= cps[i-1] {
			t.Fatalf("codepoint set not strictly sorted at %d", i)
		}
	}
	if !h.SupportsCodepoint('a') {
		t.Errorf("expected Go Regular to support 'a'")
	}
	if h.SupportsCodepoint('漢') {
		t.Errorf("did not expect Go Regular to support U+6F22")
	}
}

func TestDescribe(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontsys.fonts")
	defer teardown()
	//
	cases := []struct {
		ttf       []byte
		weight    Weight
		style     Style
		monospace bool
	}{
		{goregular.TTF, WeightNormal, StyleNormal, false},
		{gobold.TTF, WeightBold, StyleNormal, false},
		{goitalic.TTF, WeightNormal, StyleItalic, false},
		{gomono.TTF, WeightNormal, StyleNormal, true},
	}
	for _, c := range cases {
		h, err := ParseOpenTypeFont(c.ttf)
		require.NoError(t, err)
		d := h.Describe()
		t.Logf("face %q described as %+v", h.Fontname, d)
		if d.Weight != c.weight {
			t.Errorf("face %q: expected weight %d, got %d", h.Fontname, c.weight, d.Weight)
		}
		if d.Style != c.style {
			t.Errorf("face %q: expected style %v, got %v", h.Fontname, c.style, d.Style)
		}
		if d.Monospace != c.monospace {
			t.Errorf("face %q: expected monospace=%v", h.Fontname, c.monospace)
		}
	}
}

func TestGuessStyleAndWeight(t *testing.T) {
	cases := []struct {
		name   string
		style  Style
		weight Weight
	}{
		{"NotoSans-Regular.ttf", StyleNormal, WeightNormal},
		{"NotoSans-BoldItalic.ttf", StyleItalic, WeightBold},
		{"Inter-ExtraBold", StyleNormal, WeightExtraBold},
		{"FiraMono-Medium.ttf", StyleNormal, WeightMedium},
		{"SomeFace-Oblique", StyleOblique, WeightNormal},
	}
	for _, c := range cases {
		s, w := GuessStyleAndWeight(c.name)
		if s != c.style || w != c.weight {
			t.Errorf("%s: got (%v, %d), expected (%v, %d)", c.name, s, w, c.style, c.weight)
		}
	}
}

func TestFallbackFont(t *testing.T) {
	f := FallbackFont()
	require.NotNil(t, f)
	if f.Fontname != "Go Sans" {
		t.Errorf("expected packaged fallback to be Go Sans, is %q", f.Fontname)
	}
}
