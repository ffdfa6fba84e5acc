package fontdb

import (
	"strings"

	"github.com/derekparker/trie"
	"github.com/npillmayer/fontsys/core/font"
)

// ID identifies a face within a database. IDs are opaque, dense and
// never reused; the zero ID is invalid.
type ID uint32

// Source describes where a font face comes from. Either Path or Data is
// set; Data takes precedence.
type Source struct {
	Path string // font file on disk
	Data []byte // in-memory font data
}

// FaceInfo is the public record for a single face: its ID plus derived
// metadata.
type FaceInfo struct {
	ID ID
	font.Descriptor
}

type faceRec struct {
	info         FaceInfo
	src          Source
	handle       *font.Handle // memoized; may be nil after a failed load
	loadAttempts int
	loadFailed   bool
}

// Database holds metadata for all scanned faces and memoizes loaded
// handles. A Database is not internally synchronized; callers requiring
// concurrent mutation must serialize access externally.
type Database struct {
	faces      []*faceRec
	byFamily   *trie.Trie // normalized family name → []ID
	generation uint64

	// generic family defaults, settable by the embedding application
	serifFamily     string
	sansSerifFamily string
	monospaceFamily string
}

// NewDatabase creates an empty font database.
func NewDatabase() *Database {
	return &Database{
		byFamily:        trie.New(),
		serifFamily:     "DejaVu Serif",
		sansSerifFamily: "Open Sans",
		monospaceFamily: "Noto Sans Mono",
	}
}

// Generation returns the mutation counter of the database. It increases
// whenever faces are added.
func (db *Database) Generation() uint64 {
	return db.generation
}

// NumFaces returns the number of known faces.
func (db *Database) NumFaces() int {
	return len(db.faces)
}

// Faces returns the records of all known faces, in ID order. The
// returned slice is shared; callers must treat it as read-only.
func (db *Database) Faces() []FaceInfo {
	infos := make([]FaceInfo, len(db.faces))
	for i, rec := range db.faces {
		infos[i] = rec.info
	}
	return infos
}

// Face returns the metadata record for a face.
func (db *Database) Face(id ID) (FaceInfo, bool) {
	rec := db.rec(id)
	if rec == nil {
		return FaceInfo{}, false
	}
	return rec.info, true
}

func (db *Database) rec(id ID) *faceRec {
	if id == 0 || int(id) > len(db.faces) {
		return nil
	}
	return db.faces[id-1]
}

// Load scans a font source and adds all faces it contains to the
// database, returning their IDs. A source that fails to parse yields no
// IDs and is not an error: the face is treated as absent.
//
// Load mutates the database; see Generation.
func (db *Database) Load(src Source) []ID {
	var h *font.Handle
	var err error
	if src.Data != nil {
		h, err = font.ParseOpenTypeFont(src.Data)
	} else {
		h, err = font.LoadOpenTypeFont(src.Path)
	}
	if err != nil {
		tracer().Infof("cannot scan font source %s: %v", src.Path, err)
		return nil
	}
	id := db.addFace(h.Describe(), src)
	// scanning parsed the face anyway, keep the handle
	db.faces[id-1].handle = h
	db.faces[id-1].loadAttempts = 1
	return []ID{id}
}

// AddFace registers a face record without scanning its source. The
// source is consulted later, when the face's font is first requested.
// Intended for embedders that derive metadata through other channels.
//
// AddFace mutates the database; see Generation.
func (db *Database) AddFace(desc font.Descriptor, src Source) ID {
	return db.addFace(desc, src)
}

func (db *Database) addFace(desc font.Descriptor, src Source) ID {
	id := ID(len(db.faces) + 1)
	db.faces = append(db.faces, &faceRec{
		info: FaceInfo{ID: id, Descriptor: desc},
		src:  src,
	})
	db.indexFamily(desc.Family, id)
	db.generation++
	tracer().Debugf("db registers face #%d %q", id, desc.Name)
	return id
}

func (db *Database) indexFamily(family string, id ID) {
	key := NormalizeFamilyName(family)
	if key == "" {
		return
	}
	ids := []ID{id}
	if node, ok := db.byFamily.Find(key); ok {
		ids = append(node.Meta().([]ID), id)
	}
	db.byFamily.Add(key, ids)
}

// Font returns the loaded font for a face, parsing it on first request.
// A face whose source fails to load or parse is logged once and cached
// as permanently absent: Font returns nil for it forever after, without
// retrying.
func (db *Database) Font(id ID) *font.Handle {
	rec := db.rec(id)
	if rec == nil {
		return nil
	}
	if rec.handle != nil || rec.loadFailed {
		return rec.handle
	}
	rec.loadAttempts++
	var err error
	if rec.src.Data != nil {
		rec.handle, err = font.ParseOpenTypeFont(rec.src.Data)
	} else if rec.src.Path != "" {
		rec.handle, err = font.LoadOpenTypeFont(rec.src.Path)
	} else {
		err = errNoSource
	}
	if err != nil {
		tracer().Errorf("failed to load font %q: %v", rec.info.Name, err)
		rec.handle = nil
		rec.loadFailed = true
	}
	return rec.handle
}

type noSourceError struct{}

func (noSourceError) Error() string { return "face has no font source" }

var errNoSource noSourceError

// FindFamily resolves a family name to the IDs of all faces of that
// family. Lookup is exact on the normalized name; if that misses and the
// name is an unambiguous prefix of exactly one known family, that family
// is used. Generic names ("serif", "sans-serif", "monospace") resolve
// through the configured default families.
func (db *Database) FindFamily(name string) []ID {
	key := NormalizeFamilyName(name)
	switch key {
	case "serif":
		key = NormalizeFamilyName(db.serifFamily)
	case "sans-serif", "sans serif":
		key = NormalizeFamilyName(db.sansSerifFamily)
	case "monospace":
		key = NormalizeFamilyName(db.monospaceFamily)
	}
	if node, ok := db.byFamily.Find(key); ok {
		return node.Meta().([]ID)
	}
	if keys := db.byFamily.PrefixSearch(key); len(keys) == 1 {
		if node, ok := db.byFamily.Find(keys[0]); ok {
			return node.Meta().([]ID)
		}
	}
	return nil
}

// SetSerifFamily sets the concrete family backing the generic "serif"
// family name.
func (db *Database) SetSerifFamily(name string) { db.serifFamily = name }

// SetSansSerifFamily sets the concrete family backing the generic
// "sans-serif" family name.
func (db *Database) SetSansSerifFamily(name string) { db.sansSerifFamily = name }

// SetMonospaceFamily sets the concrete family backing the generic
// "monospace" family name.
func (db *Database) SetMonospaceFamily(name string) { db.monospaceFamily = name }

// NormalizeFamilyName brings a family name into the canonical form used
// as index key: trimmed, lower-cased, inner whitespace collapsed.
func NormalizeFamilyName(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	return strings.Join(strings.Fields(name), " ")
}
