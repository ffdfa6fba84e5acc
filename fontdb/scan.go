package fontdb

import (
	"path/filepath"
	"strings"

	"github.com/flopp/go-findfont"
)

// LoadSystemFonts scans the platform's font directories and loads every
// OpenType face found there. It returns the number of faces added.
//
// This is the one inherently slow operation of the database and is
// expected to run once, at application startup.
func (db *Database) LoadSystemFonts() int {
	count := 0
	for _, fpath := range findfont.List() {
		switch strings.ToLower(filepath.Ext(fpath)) {
		case ".ttf", ".otf":
		default:
			continue // no collection (.ttc) support yet
		}
		count += len(db.Load(Source{Path: fpath}))
	}
	tracer().Infof("scanned %d system font faces", count)
	return count
}
