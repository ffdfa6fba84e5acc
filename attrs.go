package fontsys

import (
	"strings"

	"github.com/npillmayer/fontsys/core/font"
	"github.com/npillmayer/fontsys/fontdb"
)

// Attrs is a font match request: an ordered list of acceptable families
// plus the requested weight, style and stretch. The zero values of
// weight and stretch stand for normal text weight and width.
type Attrs struct {
	Families []string // family names, most preferred first; generic names allowed
	Weight   font.Weight
	Style    font.Style
	Stretch  font.Stretch
}

// normalize fills defaulted fields so that equivalent requests compare
// equal.
func (a Attrs) normalize() Attrs {
	if a.Weight == 0 {
		a.Weight = font.WeightNormal
	}
	if a.Stretch == 0 {
		a.Stretch = font.StretchNormal
	}
	return a
}

// AttrsKey is the normalized, comparable form of a match request, used
// as cache key.
type AttrsKey struct {
	families string
	weight   font.Weight
	style    font.Style
	stretch  font.Stretch
}

// Key normalizes a into its cache-key form.
func (a Attrs) Key() AttrsKey {
	a = a.normalize()
	fams := make([]string, len(a.Families))
	for i, f := range a.Families {
		fams[i] = fontdb.NormalizeFamilyName(f)
	}
	return AttrsKey{
		families: strings.Join(fams, "\x1f"),
		weight:   a.Weight,
		style:    a.Style,
		stretch:  a.Stretch,
	}
}

// Matches is the attribute-compatibility predicate deciding whether a
// face may answer this request at all. Family and stretch must match;
// italic and oblique faces may stand in for one another; weight is not
// filtered here — match results are ranked by weight distance instead.
func (a Attrs) Matches(db *fontdb.Database, face fontdb.FaceInfo) bool {
	a = a.normalize()
	if !a.familyMatches(db, face) {
		return false
	}
	stretch := face.Stretch
	if stretch == 0 {
		stretch = font.StretchNormal
	}
	if stretch != a.Stretch {
		return false
	}
	return styleCompatible(a.Style, face.Style)
}

func (a Attrs) familyMatches(db *fontdb.Database, face fontdb.FaceInfo) bool {
	if len(a.Families) == 0 {
		return true
	}
	for _, fam := range a.Families {
		for _, id := range db.FindFamily(fam) {
			if id == face.ID {
				return true
			}
		}
	}
	return false
}

func styleCompatible(requested, have font.Style) bool {
	if requested == have {
		return true
	}
	// italic and oblique substitute for each other
	return requested != font.StyleNormal && have != font.StyleNormal
}
