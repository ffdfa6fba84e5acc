/*
Package fallback decides which substitute faces may render characters a
primary face cannot.

Two independent mechanisms live here:

▪︎ Ranges, a table of user-declared Unicode-range → face rules, optionally
constrained to a weight and style. Layout code registers rules up front
and queries them per character.

▪︎ Chain, an ordered family-name fallback sequence per locale and script,
with a platform-specific default implementation.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fallback

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fontsys.fallback'.
func tracer() tracing.Trace {
	return tracing.Select("fontsys.fallback")
}
