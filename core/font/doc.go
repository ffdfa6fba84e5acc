/*
Package font handles typefaces and font faces.

There is a certain confusion in the nomenclature of typesetting. We will
stick to the following definitions:

* A "typeface" is a family of fonts. An example is "Helvetica".

* A "face" is a variant of a typeface with a certain weight, style and
stretch. An example is "Helvetica Bold".

Please note that Go (Golang) does use the terms "font" and "face"
differently–actually more or less in an opposite manner.

This package loads and parses OpenType faces and derives descriptive
metadata from them. Clients will usually not use it directly, but rather
go through a font database (package fontdb).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package font

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fontsys.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("fontsys.fonts")
}
