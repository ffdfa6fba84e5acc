/*
Package fontsys implements font matching, caching, and Unicode-range
fallback resolution for text shaping and layout.

Given a run of text with requested attributes (family, weight, style),
the engine decides which installed face renders each character,
substitutes alternate faces for characters the primary face cannot
render, and keeps the steady-state cost of doing so low through a set of
purpose-built bounded caches.

A System is constructed once per application (the startup scan of
installed fonts is expensive) and then threaded explicitly through every
layout call that needs font resolution. A System is not internally
synchronized: use one instance per goroutine or serialize access
externally. Loaded font handles, in contrast, are immutable and may be
shared freely.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fontsys

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fontsys.match'.
func tracer() tracing.Trace {
	return tracing.Select("fontsys.match")
}
