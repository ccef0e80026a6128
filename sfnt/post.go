// Copyright 2010 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package sfnt

// PostTable is the decoded glyph_id -> PostScript name mapping from a
// 'post' table. Only version 2.0 carries names; other versions decode
// to an empty table, per spec.md §3.
type PostTable struct {
	GlyphIDToName map[int]string
}

func parsePost(data []byte) (PostTable, error) {
	r := newReader(data)
	version, err := r.readFixed()
	if err != nil {
		return PostTable{}, err
	}
	if version != 2 {
		return PostTable{GlyphIDToName: map[int]string{}}, nil
	}
	r.skip(28) // italicAngle, underlinePosition/Thickness, isFixedPitch, memory hints

	glyphCount, err := r.readU16()
	if err != nil {
		return PostTable{}, err
	}

	glyphIDToName := make(map[int]string, glyphCount)
	glyphIDToIndex := make(map[int]int)
	maxIndex := -1
	for glyphID := 0; glyphID < int(glyphCount); glyphID++ {
		nameIndex, err := r.readU16()
		if err != nil {
			return PostTable{}, err
		}
		// Indices below 258 name a standard Mac/MS glyph directly;
		// only indices >= 258 index into this table's own appended
		// Pascal-string array.
		if nameIndex < 258 {
			glyphIDToName[glyphID] = standardName(int(nameIndex))
			continue
		}
		index := int(nameIndex) - 258
		glyphIDToIndex[glyphID] = index
		if index > maxIndex {
			maxIndex = index
		}
	}

	// Every name_index was < 258: no appended Pascal-string names to
	// read (glyphIDToName is already fully populated from the
	// standard-258 list above); guard the would-be negative-length
	// slice allocation rather than indexing an empty array (spec.md §9).
	if maxIndex < 0 {
		return PostTable{GlyphIDToName: glyphIDToName}, nil
	}

	names := make([]string, maxIndex+1)
	for i := range names {
		length, err := r.readU8()
		if err != nil {
			return PostTable{}, err
		}
		s, err := r.readString(int(length))
		if err != nil {
			return PostTable{}, err
		}
		names[i] = s
	}

	for glyphID, index := range glyphIDToIndex {
		glyphIDToName[glyphID] = names[index]
	}
	return PostTable{GlyphIDToName: glyphIDToName}, nil
}

// standardName returns the standard-258 name for a name_index < 258.
func standardName(nameIndex int) string {
	if nameIndex < 0 || nameIndex >= len(standardMacGlyphNames) {
		return ""
	}
	return standardMacGlyphNames[nameIndex]
}
