package sfnt

import "testing"

// buildCmapFormat12 constructs a minimal format-12 cmap table with one
// group, per spec.md §8 scenario 2.
func buildCmapFormat12(startCP, endCP, startGID uint32) []byte {
	data := make([]byte, 0, 28)
	be32 := func(v uint32) {
		data = append(data, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	}
	be16 := func(v uint16) {
		data = append(data, byte(v>>8), byte(v))
	}
	be16(0)  // platformID (unused by parseCmap's sub-reader)
	be16(12) // format
	be16(0)  // reserved
	be32(0)  // length
	be32(0)  // language
	be32(1)  // numGroups
	be32(startCP)
	be32(endCP)
	be32(startGID)
	// skip the fake platformID/format prefix; the real subtable starts
	// at offset 2 (format field).
	return data[2:]
}

func TestCmapFormat12Expansion(t *testing.T) {
	sub := buildCmapFormat12(0x41, 0x43, 10)
	r := newReader(sub)
	format, err := r.readU16()
	if err != nil || format != 12 {
		t.Fatalf("format = %d, err = %v", format, err)
	}
	cmap, err := parseCmapFormat12(r)
	if err != nil {
		t.Fatalf("parseCmapFormat12: %v", err)
	}
	want := map[rune]int{0x41: 10, 0x42: 11, 0x43: 12}
	for cp, gid := range want {
		if got := cmap.CodepointToGlyphID[cp]; got != gid {
			t.Errorf("CodepointToGlyphID[%#x] = %d, want %d", cp, got, gid)
		}
		if got := cmap.GlyphIDToCodepoint[gid]; got != cp {
			t.Errorf("GlyphIDToCodepoint[%d] = %#x, want %#x", gid, got, cp)
		}
	}
}

func TestCmapFormat4SingleSegment(t *testing.T) {
	// segCount = 2: {0x41..0x42, delta -65}, {0xFFFF..0xFFFF, delta 1}.
	endCodes := []uint16{0x42, 0xFFFF}
	startCodes := []uint16{0x41, 0xFFFF}
	deltas := []int16{-65, 1}
	rangeOffsets := []uint16{0, 0}

	var data []byte
	be16 := func(v uint16) { data = append(data, byte(v>>8), byte(v)) }
	be16(4)                        // length (unused)
	be16(0)                        // language
	be16(uint16(2 * len(endCodes))) // segCountX2
	be16(0)                        // searchRange
	be16(0)                        // entrySelector
	be16(0)                        // rangeShift
	for _, v := range endCodes {
		be16(v)
	}
	be16(0) // reservedPad
	for _, v := range startCodes {
		be16(v)
	}
	for _, v := range deltas {
		be16(uint16(v))
	}
	for _, v := range rangeOffsets {
		be16(v)
	}

	r := newReader(data)
	cmap, err := parseCmapFormat4(r)
	if err != nil {
		t.Fatalf("parseCmapFormat4: %v", err)
	}
	want := map[rune]int{0x41: 0, 0x42: 1}
	if len(cmap.CodepointToGlyphID) != len(want) {
		t.Fatalf("CodepointToGlyphID = %v, want %v", cmap.CodepointToGlyphID, want)
	}
	for cp, gid := range want {
		if got := cmap.CodepointToGlyphID[cp]; got != gid {
			t.Errorf("CodepointToGlyphID[%#x] = %d, want %d", cp, got, gid)
		}
	}
}
