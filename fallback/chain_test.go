package fallback

import (
	"testing"

	"golang.org/x/text/language"
)

func TestListChain(t *testing.T) {
	chain := ListChain{"Inter", "Noto Sans"}
	fams := chain.Families("en-US", language.MustParseScript("Latn"))
	if len(fams) != 2 || fams[0] != "Inter" {
		t.Errorf("unexpected families %v", fams)
	}
}

func TestPlatformChainGeneral(t *testing.T) {
	chain := Platform()
	fams := chain.Families("en-US", language.MustParseScript("Latn"))
	if len(fams) == 0 {
		t.Fatalf("platform chain must never be empty")
	}
}

func TestPlatformChainScriptSpecific(t *testing.T) {
	chain := platformChain{goos: "linux"}
	fams := chain.Families("en-US", scrArab)
	if fams[0] != "Noto Sans Arabic" {
		t.Errorf("expected Arabic families first, got %v", fams)
	}
	// Han resolution depends on the locale
	fams = chain.Families("ja-JP", scrHani)
	if fams[0] != "Noto Sans CJK JP" {
		t.Errorf("expected Japanese Han variant first, got %v", fams)
	}
	fams = chain.Families("zh-CN", scrHani)
	if fams[0] != "Noto Sans CJK SC" {
		t.Errorf("expected Simplified Chinese Han variant first, got %v", fams)
	}
}
