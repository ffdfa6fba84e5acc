package font

import (
	"path"
	"strings"
)

// Weight is the degree of blackness of a face, on the numeric scale
// known from CSS: 1…1000, with 400 being normal text weight.
type Weight uint16

// Weights on the CSS scale.
const (
	WeightThin       Weight = 100
	WeightExtraLight Weight = 200
	WeightLight      Weight = 300
	WeightNormal     Weight = 400
	WeightMedium     Weight = 500
	WeightSemiBold   Weight = 600
	WeightBold       Weight = 700
	WeightExtraBold  Weight = 800
	WeightBlack      Weight = 900
)

// Style is the slant variant of a face.
type Style uint8

// Styles of a face.
const (
	StyleNormal Style = iota
	StyleItalic
	StyleOblique
)

func (s Style) String() string {
	switch s {
	case StyleItalic:
		return "italic"
	case StyleOblique:
		return "oblique"
	}
	return "normal"
}

// Stretch is the width variant of a face, in percent of normal width.
type Stretch uint16

// Stretch values, a subset of the usWidthClass scale.
const (
	StretchCondensed Stretch = 75
	StretchNormal    Stretch = 100
	StretchExpanded  Stretch = 125
)

// Descriptor holds derived metadata for a single face: enough to match
// a face against a set of requested attributes without loading it.
type Descriptor struct {
	Family    string  // typeface family, e.g. "Noto Sans"
	Name      string  // human readable face name, e.g. "Noto Sans Bold"
	Weight    Weight  // blackness on the CSS scale
	Style     Style   // normal, italic or oblique
	Stretch   Stretch // width variant in percent
	Monospace bool    // fixed-pitch face?
}

// weightNames are ordered so that longer, more specific indicators are
// found before their substrings ("extrabold" before "bold").
var weightNames = []struct {
	indicator string
	weight    Weight
}{
	{"extrablack", WeightBlack},
	{"ultrabold", WeightExtraBold},
	{"extrabold", WeightExtraBold},
	{"semibold", WeightSemiBold},
	{"demibold", WeightSemiBold},
	{"extralight", WeightExtraLight},
	{"ultralight", WeightExtraLight},
	{"black", WeightBlack},
	{"heavy", WeightBlack},
	{"bold", WeightBold},
	{"medium", WeightMedium},
	{"light", WeightLight},
	{"thin", WeightThin},
	{"hairline", WeightThin},
}

// GuessStyleAndWeight trys to guess a face's style and weight from its
// name or file name. Unrecognized names yield (StyleNormal, WeightNormal).
func GuessStyleAndWeight(fontname string) (Style, Weight) {
	fontname = path.Base(fontname)
	if ext := path.Ext(fontname); ext != "" {
		fontname = fontname[:len(fontname)-len(ext)]
	}
	fontname = strings.ToLower(fontname)
	style, weight := StyleNormal, WeightNormal
	if strings.Contains(fontname, "italic") {
		style = StyleItalic
	} else if strings.Contains(fontname, "obliq") {
		style = StyleOblique
	}
	for _, w := range weightNames {
		if strings.Contains(fontname, w.indicator) {
			weight = w.weight
			break
		}
	}
	return style, weight
}

// GuessStretch trys to guess a face's width variant from its name or
// file name.
func GuessStretch(fontname string) Stretch {
	fontname = strings.ToLower(fontname)
	switch {
	case strings.Contains(fontname, "condensed"), strings.Contains(fontname, "narrow"):
		return StretchCondensed
	case strings.Contains(fontname, "expanded"), strings.Contains(fontname, "extended"):
		return StretchExpanded
	}
	return StretchNormal
}
