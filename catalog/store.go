// Package catalog implements the SQLite-backed icon store: an
// incremental, idempotent builder that joins multiple font bundles
// into a single searchable (name -> compressed SVG path) table.
package catalog

import (
	"bytes"
	"compress/zlib"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/aslpavel/icon-provider/sfnt"
)

const createTables = `
PRAGMA journal_mode=wal;

CREATE TABLE IF NOT EXISTS icons (
	id        INTEGER PRIMARY KEY,
	name      TEXT NOT NULL UNIQUE,
	codepoint INTEGER NOT NULL,
	svg       BLOB NOT NULL,
	font_id   INTEGER NOT NULL
) STRICT;
CREATE INDEX IF NOT EXISTS icon_name ON icons(name);

CREATE TABLE IF NOT EXISTS fonts (
	id        INTEGER PRIMARY KEY,
	name      TEXT NOT NULL UNIQUE,
	family    TEXT NOT NULL,
	file      TEXT NOT NULL,
	modified  INTEGER NOT NULL
) STRICT;
`

const upsertFont = `
INSERT INTO fonts(name, family, file, modified) VALUES(?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
	family=excluded.family,
	file=excluded.file,
	modified=excluded.modified
RETURNING id;
`

const upsertIcon = `
INSERT INTO icons(name, codepoint, svg, font_id) VALUES(?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
	codepoint=excluded.codepoint,
	svg=excluded.svg,
	font_id=excluded.font_id;
`

// FontDesc describes one row of the fonts table.
type FontDesc struct {
	FontID   int64
	Name     string
	Family   string
	File     string
	Modified time.Time
}

// Icon is a single catalog entry joined with its owning font.
type Icon struct {
	IconID    int64
	Name      string
	Codepoint rune
	SVG       string
	Font      FontDesc
}

// CatalogInconsistencyError reports that an icons row references a
// font_id absent from the fonts table, a structural invariant
// violation per spec.md §3/§7.
type CatalogInconsistencyError struct {
	FontID int64
}

func (e *CatalogInconsistencyError) Error() string {
	return fmt.Sprintf("catalog: icon references missing font_id %d", e.FontID)
}

// ManifestEntry is one entry of descriptions.json: a named font bundle
// plus the relative paths to its metadata and font-file assets.
type ManifestEntry struct {
	Name         string `json:"name"`
	Family       string `json:"family"`
	MetadataPath string `json:"metadata"`
	FontPath     string `json:"font"`
}

// fontMetadata is a per-font metadata.json document: family plus the
// icon_name -> codepoint map.
type fontMetadata struct {
	Family string         `json:"family"`
	Names  map[string]int `json:"names"`
}

// IconStore is a single-process, single-writer handle onto the
// icons.sqlite catalog. Reads after Update returns are safe from
// multiple goroutines; database/sql pools connections internally.
type IconStore struct {
	db           *sql.DB
	manifestPath string
	fontDescs    map[int64]FontDesc
}

// Open opens (creating if absent) the catalog database at dbPath and
// ensures its schema exists. manifestPath is the descriptions.json
// used by Update.
func Open(dbPath, manifestPath string) (*IconStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", dbPath, err)
	}
	if _, err := db.Exec(createTables); err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog: create schema: %w", err)
	}
	return &IconStore{db: db, manifestPath: manifestPath}, nil
}

// Close releases the underlying database handle.
func (s *IconStore) Close() error {
	return s.db.Close()
}

// GetIcon returns a single icon by its "{font}-{icon}" name.
func (s *IconStore) GetIcon(name string) (*Icon, error) {
	row := s.db.QueryRow(`SELECT id, name, codepoint, svg, font_id FROM icons WHERE name = ?`, name)
	var (
		iconID    int64
		iconName  string
		codepoint int64
		svgBlob   []byte
		fontID    int64
	)
	if err := row.Scan(&iconID, &iconName, &codepoint, &svgBlob, &fontID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	fonts, err := s.GetFonts()
	if err != nil {
		return nil, err
	}
	font, ok := fonts[fontID]
	if !ok {
		return nil, &CatalogInconsistencyError{FontID: fontID}
	}
	svg, err := inflate(svgBlob)
	if err != nil {
		return nil, err
	}
	return &Icon{IconID: iconID, Name: iconName, Codepoint: rune(codepoint), SVG: svg, Font: font}, nil
}

// GetIcons returns every catalog row, joined with its font descriptor.
func (s *IconStore) GetIcons() ([]Icon, error) {
	fonts, err := s.GetFonts()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Query(`SELECT id, name, codepoint, svg, font_id FROM icons`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var icons []Icon
	for rows.Next() {
		var (
			iconID    int64
			iconName  string
			codepoint int64
			svgBlob   []byte
			fontID    int64
		)
		if err := rows.Scan(&iconID, &iconName, &codepoint, &svgBlob, &fontID); err != nil {
			return nil, err
		}
		font, ok := fonts[fontID]
		if !ok {
			return nil, &CatalogInconsistencyError{FontID: fontID}
		}
		svg, err := inflate(svgBlob)
		if err != nil {
			return nil, err
		}
		icons = append(icons, Icon{
			IconID: iconID, Name: iconName, Codepoint: rune(codepoint), SVG: svg, Font: font,
		})
	}
	return icons, rows.Err()
}

// GetFonts returns every font descriptor, memoized until the next
// Update call invalidates the cache.
func (s *IconStore) GetFonts() (map[int64]FontDesc, error) {
	if s.fontDescs != nil {
		return s.fontDescs, nil
	}
	rows, err := s.db.Query(`SELECT id, name, family, file, modified FROM fonts`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	descs := make(map[int64]FontDesc)
	for rows.Next() {
		var (
			id       int64
			name     string
			family   string
			file     string
			modified int64
		)
		if err := rows.Scan(&id, &name, &family, &file, &modified); err != nil {
			return nil, err
		}
		descs[id] = FontDesc{
			FontID: id, Name: name, Family: family, File: file,
			Modified: time.Unix(modified, 0),
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	s.fontDescs = descs
	return descs, nil
}

// Update reconciles the catalog against the manifest: for each entry
// whose source mtime has advanced (or whose font row does not yet
// exist), it re-parses the font, upserts the font row, and upserts
// every resolvable (font_prefix + icon_name, codepoint, compressed
// svg, font_id) row. Unchanged entries are skipped entirely, making
// repeated calls a no-op, per spec.md §8's idempotence property.
func (s *IconStore) Update() error {
	manifestBytes, err := os.ReadFile(s.manifestPath)
	if err != nil {
		return fmt.Errorf("catalog: manifest not found: %w", err)
	}
	var entries []ManifestEntry
	if err := json.Unmarshal(manifestBytes, &entries); err != nil {
		return fmt.Errorf("catalog: parse manifest: %w", err)
	}

	existing, err := s.GetFonts()
	if err != nil {
		return err
	}
	byName := make(map[string]FontDesc, len(existing))
	for _, desc := range existing {
		byName[desc.Name] = desc
	}

	root := filepath.Dir(s.manifestPath)
	for _, entry := range entries {
		if err := s.updateOne(root, entry, byName); err != nil {
			logrus.WithFields(logrus.Fields{
				"font": entry.Name,
			}).WithError(err).Error("catalog: update failed for font, skipping")
			continue
		}
	}

	s.fontDescs = nil
	return nil
}

func (s *IconStore) updateOne(root string, entry ManifestEntry, byName map[string]FontDesc) error {
	metadataPath := filepath.Join(root, entry.MetadataPath)
	fontPath := filepath.Join(root, entry.FontPath)

	metaInfo, err := os.Stat(metadataPath)
	if err != nil {
		return err
	}
	fontInfo, err := os.Stat(fontPath)
	if err != nil {
		return err
	}
	modified := metaInfo.ModTime()
	if fontInfo.ModTime().After(modified) {
		modified = fontInfo.ModTime()
	}
	// The fonts table stores whole seconds; compare at that granularity.
	modified = time.Unix(modified.Unix(), 0)

	prior, exists := byName[entry.Name]
	if exists && !prior.Modified.Before(modified) {
		return nil
	}

	metadataBytes, err := os.ReadFile(metadataPath)
	if err != nil {
		return err
	}
	var meta fontMetadata
	if err := json.Unmarshal(metadataBytes, &meta); err != nil {
		return err
	}
	family := entry.Family
	if family == "" {
		family = meta.Family
	}

	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return err
	}
	font, err := sfnt.New(fontBytes)
	if err != nil {
		return fmt.Errorf("parse %s: %w", fontPath, err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var fontID int64
	row := tx.QueryRow(upsertFont, entry.Name, family, entry.FontPath, modified.Unix())
	if err := row.Scan(&fontID); err != nil {
		return fmt.Errorf("upsert font row: %w", err)
	}

	for iconName, codepoint := range meta.Names {
		glyph, err := font.GlyphByCodepoint(rune(codepoint))
		if err != nil {
			return fmt.Errorf("glyph for %s: %w", iconName, err)
		}
		if glyph == nil {
			continue
		}
		svgPath, err := font.ToSVGPath(glyph, sfnt.SVGPathBuilderOptions{Precision: 2})
		if err != nil {
			return fmt.Errorf("svg path for %s: %w", iconName, err)
		}
		compressed, err := deflate(svgPath)
		if err != nil {
			return err
		}
		fullName := entry.Name + "-" + iconName
		if _, err := tx.Exec(upsertIcon, fullName, codepoint, compressed, fontID); err != nil {
			return fmt.Errorf("upsert icon %s: %w", fullName, err)
		}
	}

	return tx.Commit()
}

func deflate(s string) ([]byte, error) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write([]byte(s)); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func inflate(b []byte) (string, error) {
	r, err := zlib.NewReader(bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
