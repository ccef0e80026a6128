package sfnt

import (
	"errors"
	"testing"
)

// sfntHeader builds the 12-byte sfnt header plus a table directory
// with no entries, per spec.md §8 scenario 1.
func sfntHeader(version uint32, numTables uint16) []byte {
	var data []byte
	be32 := func(v uint32) { data = append(data, byte(v>>24), byte(v>>16), byte(v>>8), byte(v)) }
	be16 := func(v uint16) { data = append(data, byte(v>>8), byte(v)) }
	be32(version)
	be16(numTables)
	be16(0) // searchRange
	be16(0) // entrySelector
	be16(0) // rangeShift
	return data
}

func TestNewFontMissingMaxp(t *testing.T) {
	data := sfntHeader(sfntVersionTTF, 0)
	_, err := New(data)
	var missing *MissingTableError
	if !errors.As(err, &missing) {
		t.Fatalf("New() err = %v, want *MissingTableError", err)
	}
	if missing.Tag != "maxp" {
		t.Fatalf("missing table = %q, want maxp", missing.Tag)
	}
}

func TestNewFontUnknownVersion(t *testing.T) {
	data := sfntHeader(0, 0)
	_, err := New(data)
	if !errors.Is(err, ErrUnknownSfntVersion) {
		t.Fatalf("New() err = %v, want ErrUnknownSfntVersion", err)
	}
}

func TestNormalizingTransformFlipsY(t *testing.T) {
	// A bbox exactly matching the em square still gets the 1.1 margin
	// (em = 1100), so the corners land inside the viewBox, Y-flipped.
	tr := normalizingTransform(Point{0, 0}, Point{1000, 1000}, 1000)
	p := tr.Apply(Point{0, 0})
	if p.Y <= 50 {
		t.Fatalf("Apply({0,0}).Y = %v, want > 50 (flipped toward bottom)", p.Y)
	}
	q := tr.Apply(Point{1000, 1000})
	if q.Y >= 50 {
		t.Fatalf("Apply({1000,1000}).Y = %v, want < 50 (flipped toward top)", q.Y)
	}
}
