// Copyright 2010 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package sfnt

// locaTable holds glyph_count+1 byte offsets into the glyf table.
type locaTable []uint32

func parseLoca(data []byte, glyphCount int, indexToLocFormat int16) (locaTable, error) {
	r := newReader(data)
	offsets := make(locaTable, glyphCount+1)
	if indexToLocFormat == 0 {
		for i := range offsets {
			v, err := r.readU16()
			if err != nil {
				return nil, err
			}
			offsets[i] = 2 * uint32(v)
		}
	} else {
		for i := range offsets {
			v, err := r.readU32()
			if err != nil {
				return nil, err
			}
			offsets[i] = v
		}
	}
	return offsets, nil
}
