// Copyright 2010 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package sfnt

import "github.com/sirupsen/logrus"

// CmapTable holds the two mutually-inverse partial maps spec.md §3
// describes: codepoint -> glyph id, and its inverse.
type CmapTable struct {
	CodepointToGlyphID map[rune]int
	GlyphIDToCodepoint map[int]rune
}

func newCmapTable() CmapTable {
	return CmapTable{
		CodepointToGlyphID: make(map[rune]int),
		GlyphIDToCodepoint: make(map[int]rune),
	}
}

func (c CmapTable) set(codepoint rune, glyphID int) {
	c.CodepointToGlyphID[codepoint] = glyphID
	c.GlyphIDToCodepoint[glyphID] = codepoint
}

// parseCmap selects the preferred subtable (unicode platform, encoding
// 4 preferred over encoding 3) and decodes it. Formats 4 and 12 are
// supported; anything else, or the absence of a unicode subtable,
// fails per spec.md §7 (UnsupportedCmapError / UnsupportedCmapFormatError).
func parseCmap(data []byte) (CmapTable, error) {
	r := newReader(data)
	r.skip(2) // version

	numTables, err := r.readU16()
	if err != nil {
		return CmapTable{}, err
	}

	var subtableOffset uint32
	var found bool
	var seen []CmapSubtableID
	for i := 0; i < int(numTables); i++ {
		platformID, err := r.readU16()
		if err != nil {
			return CmapTable{}, err
		}
		encodingID, err := r.readU16()
		if err != nil {
			return CmapTable{}, err
		}
		offset, err := r.readU32()
		if err != nil {
			return CmapTable{}, err
		}
		seen = append(seen, CmapSubtableID{platformID, encodingID})
		if platformID != 0 {
			continue
		}
		switch encodingID {
		case 4:
			subtableOffset, found = offset, true
		case 3:
			if !found {
				subtableOffset, found = offset, true
			}
		}
	}
	if !found {
		return CmapTable{}, &UnsupportedCmapError{Subtables: seen}
	}
	if int(subtableOffset) >= len(data) {
		return CmapTable{}, ErrTruncated
	}

	sub := newReader(data[subtableOffset:])
	format, err := sub.readU16()
	if err != nil {
		return CmapTable{}, err
	}
	switch format {
	case 12:
		return parseCmapFormat12(sub)
	case 4:
		return parseCmapFormat4(sub)
	default:
		return CmapTable{}, &UnsupportedCmapFormatError{Format: format}
	}
}

// parseCmapFormat12 decodes the segmented-coverage subtable format.
func parseCmapFormat12(r *reader) (CmapTable, error) {
	r.skip(2) // reserved
	r.skip(4) // length
	r.skip(4) // language

	numGroups, err := r.readU32()
	if err != nil {
		return CmapTable{}, err
	}

	cmap := newCmapTable()
	for i := 0; i < int(numGroups); i++ {
		startCP, err := r.readU32()
		if err != nil {
			return CmapTable{}, err
		}
		endCP, err := r.readU32()
		if err != nil {
			return CmapTable{}, err
		}
		startGID, err := r.readU32()
		if err != nil {
			return CmapTable{}, err
		}
		glyphID := startGID
		for cp := startCP; cp <= endCP; cp++ {
			cmap.set(rune(cp), int(glyphID))
			glyphID++
			if cp == 0xFFFFFFFF { // avoid infinite loop on pathological input
				break
			}
		}
	}
	return cmap, nil
}

// parseCmapFormat4 decodes the segment-mapping-with-delta subtable
// format.
func parseCmapFormat4(r *reader) (CmapTable, error) {
	length, err := r.readU16()
	if err != nil {
		return CmapTable{}, err
	}
	r.skip(2) // language

	segCountX2, err := r.readU16()
	if err != nil {
		return CmapTable{}, err
	}
	segCount := int(segCountX2) / 2
	r.skip(6) // searchRange, entrySelector, rangeShift

	endCodes := make([]uint16, segCount)
	for i := range endCodes {
		if endCodes[i], err = r.readU16(); err != nil {
			return CmapTable{}, err
		}
	}
	r.skip(2) // reservedPad

	startCodes := make([]uint16, segCount)
	for i := range startCodes {
		if startCodes[i], err = r.readU16(); err != nil {
			return CmapTable{}, err
		}
	}
	idDeltas := make([]int16, segCount)
	for i := range idDeltas {
		if idDeltas[i], err = r.readI16(); err != nil {
			return CmapTable{}, err
		}
	}
	idRangeOffsets := make([]uint16, segCount)
	glyphIDArrayStart := r.tell() + 2*segCount
	for i := range idRangeOffsets {
		if idRangeOffsets[i], err = r.readU16(); err != nil {
			return CmapTable{}, err
		}
	}
	_ = length

	cmap := newCmapTable()
	for seg := 0; seg < segCount; seg++ {
		start, end := startCodes[seg], endCodes[seg]
		if start == 0xFFFF && end == 0xFFFF {
			break
		}
		for cp := uint32(start); cp <= uint32(end); cp++ {
			var glyphID uint16
			if idRangeOffsets[seg] == 0 {
				glyphID = uint16(uint32(cp) + uint32(uint16(idDeltas[seg])))
			} else {
				// The reference implementation does not exercise this
				// branch; treat it as best-effort per spec.md §9.
				gidOffset := glyphIDArrayStart +
					2*(seg-segCount) + int(idRangeOffsets[seg]) + 2*int(cp-uint32(start))
				gr, err := r.view(gidOffset, gidOffset+2)
				if err != nil {
					logrus.WithFields(logrus.Fields{
						"segment":   seg,
						"codepoint": cp,
					}).Warn("cmap format 4: id_range_offset != 0 not fully supported")
					continue
				}
				g, err := gr.readU16()
				if err != nil || g == 0 {
					continue
				}
				glyphID = uint16(uint32(g) + uint32(uint16(idDeltas[seg])))
			}
			if cp > uint32(^uint16(0)) {
				break
			}
			cmap.set(rune(cp), int(glyphID))
		}
	}
	return cmap, nil
}
