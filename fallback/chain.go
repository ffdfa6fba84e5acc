package fallback

import (
	"runtime"
	"strings"

	"golang.org/x/text/language"
)

// A Chain produces an ordered family-name fallback sequence for a given
// locale and script. Implementations are held as interface values by
// whoever owns the resolution engine; a custom chain replaces the
// platform default wholesale.
type Chain interface {
	Families(locale string, script language.Script) []string
}

// ListChain is a fixed, locale- and script-independent family sequence.
type ListChain []string

// Families returns the list itself.
func (lc ListChain) Families(string, language.Script) []string {
	return lc
}

// Platform returns the fallback chain for the operating system this
// process runs on.
func Platform() Chain {
	return platformChain{goos: runtime.GOOS}
}

type platformChain struct {
	goos string
}

var scrArab = language.MustParseScript("Arab")
var scrHebr = language.MustParseScript("Hebr")
var scrHani = language.MustParseScript("Hani")
var scrHang = language.MustParseScript("Hang")
var scrKana = language.MustParseScript("Kana")
var scrHira = language.MustParseScript("Hira")
var scrDeva = language.MustParseScript("Deva")
var scrThai = language.MustParseScript("Thai")

// Families returns script-specific families first, then the platform's
// general-purpose sequence.
func (pc platformChain) Families(locale string, script language.Script) []string {
	families := pc.scriptFamilies(locale, script)
	switch pc.goos {
	case "darwin":
		families = append(families,
			"Helvetica Neue", "Helvetica", "Menlo", "Apple Color Emoji", "Arial Unicode MS")
	case "windows":
		families = append(families,
			"Segoe UI", "Arial", "Consolas", "Segoe UI Emoji", "Segoe UI Symbol")
	default:
		families = append(families,
			"Noto Sans", "DejaVu Sans", "FreeSans", "Noto Color Emoji", "Noto Sans Symbols")
	}
	return families
}

func (pc platformChain) scriptFamilies(locale string, script language.Script) []string {
	switch script {
	case scrArab:
		if pc.goos == "darwin" {
			return []string{"Geeza Pro"}
		}
		return []string{"Noto Sans Arabic"}
	case scrHebr:
		if pc.goos == "darwin" {
			return []string{"Arial Hebrew"}
		}
		return []string{"Noto Sans Hebrew"}
	case scrDeva:
		return []string{"Noto Sans Devanagari"}
	case scrThai:
		return []string{"Noto Sans Thai"}
	case scrHang:
		return []string{"Noto Sans CJK KR", "Apple SD Gothic Neo", "Malgun Gothic"}
	case scrKana, scrHira:
		return []string{"Noto Sans CJK JP", "Hiragino Sans", "Yu Gothic"}
	case scrHani:
		// Han unification: the locale decides which variant comes first
		lang := strings.ToLower(locale)
		switch {
		case strings.HasPrefix(lang, "ja"):
			return []string{"Noto Sans CJK JP", "Hiragino Sans"}
		case strings.HasPrefix(lang, "ko"):
			return []string{"Noto Sans CJK KR"}
		case strings.HasPrefix(lang, "zh-tw"), strings.HasPrefix(lang, "zh-hant"):
			return []string{"Noto Sans CJK TC", "PingFang TC"}
		default:
			return []string{"Noto Sans CJK SC", "PingFang SC"}
		}
	}
	return nil
}
