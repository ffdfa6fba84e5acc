/*
Package fontdb manages a database of installed font faces.

The database scans font sources (system font directories, single files,
in-memory data), derives matching metadata for every face it finds, and
hands out loaded font handles on demand. Loading a face is a one-shot
operation: a face that fails to parse is logged once and treated as
permanently absent.

Mutating the database (loading additional sources) bumps a generation
counter. Clients holding caches keyed on database contents compare
generations to know when to invalidate.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fontdb

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'fontsys.db'.
func tracer() tracing.Trace {
	return tracing.Select("fontsys.db")
}
