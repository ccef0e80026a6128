package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// buildMinimalTTF assembles a tiny but complete sfnt-valid TTF font
// with one real glyph (glyph id 1, a 100x100 square) mapped from
// codepoint 0x41 by cmap format 4, plus an empty .notdef.
func buildMinimalTTF(t *testing.T) []byte {
	t.Helper()

	be16 := func(v uint16) []byte { return []byte{byte(v >> 8), byte(v)} }
	be32 := func(v uint32) []byte { return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)} }
	bei16 := func(v int16) []byte { return be16(uint16(v)) }
	cat := func(parts ...[]byte) []byte {
		var out []byte
		for _, p := range parts {
			out = append(out, p...)
		}
		return out
	}

	maxpBytes := cat(be32(0x00010000), be16(2)) // version, numGlyphs=2

	headBytes := cat(
		be16(1), be16(0), // majorVersion, minorVersion
		be32(0x00010000), // fontRevision
		be32(0),          // checksumAdjustment
		be32(0x5F0F3CF5), // magic
		be16(0),          // flags
		be16(1000),       // unitsPerEm
		make([]byte, 8),  // created
		make([]byte, 8),  // modified
		be16(0), be16(0), be16(100), be16(100), // xMin,yMin,xMax,yMax
		be16(0),          // macStyle
		be16(8),          // lowestRecPPEM
		be16(2),          // fontDirectionHint
		be16(1),          // indexToLocFormat (long, u32 offsets)
		be16(0),          // glyphDataFormat
	)

	nameBytes := cat(be16(0), be16(0), be16(6)) // format, count=0, storageOffset=6

	// cmap: one subtable, platform 0 (unicode), encoding 4, format 4.
	cmapSubtable := cat(
		be16(4),  // format
		be16(32), // length (informational, unused by parser)
		be16(0),  // language
		be16(4),  // segCountX2 (2 segments)
		be16(0), be16(0), be16(0), // searchRange, entrySelector, rangeShift
		be16(0x41), be16(0xFFFF), // endCodes
		be16(0),                  // reservedPad
		be16(0x41), be16(0xFFFF), // startCodes
		bei16(1-0x41), be16(1), // idDeltas: glyph 1 at 0x41, delta 1 at 0xFFFF
		be16(0), be16(0), // idRangeOffsets
	)
	cmapBytes := cat(
		be16(0), be16(1), // version, numTables
		be16(0), be16(4), be32(12), // platformID, encodingID, offset (12 = header+1 record)
		cmapSubtable,
	)

	// glyf: glyph 0 (.notdef, empty), glyph 1 (100x100 square).
	notdef := cat(be16(0), be16(0), be16(0), be16(0), be16(0)) // contoursCount=0, min=(0,0), max=(0,0)
	squareHeader := cat(be16(1), be16(0), be16(0), be16(100), be16(100))
	squareBody := cat(
		be16(3), // endpoint index of last point
		be16(0), // instructionLength
		[]byte{1, 1, 1, 1}, // flags: all on-curve
		be16(0), be16(100), be16(0), bei16(-100), // x deltas
		be16(0), be16(0), be16(100), be16(0), // y deltas
	)
	glyph1 := cat(squareHeader, squareBody)
	glyfBytes := cat(notdef, glyph1)

	locaBytes := cat(
		be32(0),
		be32(uint32(len(notdef))),
		be32(uint32(len(notdef)+len(glyph1))),
	)

	tables := []struct {
		tag  string
		data []byte
	}{
		{"maxp", maxpBytes},
		{"head", headBytes},
		{"name", nameBytes},
		{"cmap", cmapBytes},
		{"loca", locaBytes},
		{"glyf", glyfBytes},
	}

	header := cat(be32(0x00010000), be16(uint16(len(tables))), be16(0), be16(0), be16(0))
	dirSize := 12 + 16*len(tables)
	offset := uint32(dirSize)

	var directory, body []byte
	for _, tbl := range tables {
		directory = append(directory, cat([]byte(tbl.tag), be32(0), be32(offset), be32(uint32(len(tbl.data))))...)
		body = append(body, tbl.data...)
		offset += uint32(len(tbl.data))
	}

	return cat(header, directory, body)
}

func writeManifestFixture(t *testing.T, root string) (fontPath, metadataPath, manifestPath string) {
	t.Helper()

	fontBytes := buildMinimalTTF(t)
	fontPath = filepath.Join(root, "test.ttf")
	if err := os.WriteFile(fontPath, fontBytes, 0o644); err != nil {
		t.Fatalf("write font: %v", err)
	}

	metadata := fontMetadata{Family: "Test", Names: map[string]int{"square": 0x41}}
	metadataBytes, err := json.Marshal(metadata)
	if err != nil {
		t.Fatalf("marshal metadata: %v", err)
	}
	metadataPath = filepath.Join(root, "test.json")
	if err := os.WriteFile(metadataPath, metadataBytes, 0o644); err != nil {
		t.Fatalf("write metadata: %v", err)
	}

	manifest := []ManifestEntry{{
		Name: "test", Family: "Test",
		MetadataPath: "test.json", FontPath: "test.ttf",
	}}
	manifestBytes, err := json.Marshal(manifest)
	if err != nil {
		t.Fatalf("marshal manifest: %v", err)
	}
	manifestPath = filepath.Join(root, "descriptions.json")
	if err := os.WriteFile(manifestPath, manifestBytes, 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return fontPath, metadataPath, manifestPath
}

func TestIconStoreUpdateAndGet(t *testing.T) {
	root := t.TempDir()
	_, _, manifestPath := writeManifestFixture(t, root)
	dbPath := filepath.Join(root, "icons.sqlite")

	store, err := Open(dbPath, manifestPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if err := store.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}

	icon, err := store.GetIcon("test-square")
	if err != nil {
		t.Fatalf("GetIcon: %v", err)
	}
	if icon == nil {
		t.Fatal("GetIcon(\"test-square\") = nil, want an icon")
	}
	if icon.Codepoint != 0x41 {
		t.Errorf("Codepoint = %#x, want 0x41", icon.Codepoint)
	}
	if icon.SVG == "" {
		t.Error("SVG is empty")
	}
	if icon.Font.Name != "test" {
		t.Errorf("Font.Name = %q, want test", icon.Font.Name)
	}
}

func TestIconStoreUpdateIdempotent(t *testing.T) {
	root := t.TempDir()
	_, _, manifestPath := writeManifestFixture(t, root)
	dbPath := filepath.Join(root, "icons.sqlite")

	store, err := Open(dbPath, manifestPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if err := store.Update(); err != nil {
		t.Fatalf("first Update: %v", err)
	}
	before, err := store.GetIcons()
	if err != nil {
		t.Fatalf("GetIcons: %v", err)
	}

	if err := store.Update(); err != nil {
		t.Fatalf("second Update: %v", err)
	}
	after, err := store.GetIcons()
	if err != nil {
		t.Fatalf("GetIcons after second Update: %v", err)
	}

	if len(before) != len(after) {
		t.Fatalf("icon count changed across idempotent Update: %d vs %d", len(before), len(after))
	}
}

func TestCatalogInconsistencyError(t *testing.T) {
	root := t.TempDir()
	dbPath := filepath.Join(root, "icons.sqlite")
	store, err := Open(dbPath, filepath.Join(root, "descriptions.json"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if _, err := store.db.Exec(
		`INSERT INTO icons(name, codepoint, svg, font_id) VALUES(?, ?, ?, ?)`,
		"orphan-icon", 0x41, []byte{}, 999,
	); err != nil {
		t.Fatalf("insert orphan icon: %v", err)
	}

	_, err = store.GetIcon("orphan-icon")
	var inconsistent *CatalogInconsistencyError
	if err == nil {
		t.Fatal("GetIcon on orphaned row: err = nil, want CatalogInconsistencyError")
	}
	if !asCatalogInconsistency(err, &inconsistent) {
		t.Fatalf("GetIcon err = %v, want *CatalogInconsistencyError", err)
	}
	if inconsistent.FontID != 999 {
		t.Errorf("FontID = %d, want 999", inconsistent.FontID)
	}
}

func asCatalogInconsistency(err error, target **CatalogInconsistencyError) bool {
	e, ok := err.(*CatalogInconsistencyError)
	if !ok {
		return false
	}
	*target = e
	return true
}
