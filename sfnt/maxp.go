// Copyright 2010 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package sfnt

// parseMaxp reads the glyph count out of the Maximum Profile table.
// Only the version-independent prefix (version + numGlyphs) is used;
// the rest of the table (hinting-related bounds) is irrelevant here.
func parseMaxp(data []byte) (glyphCount int, err error) {
	r := newReader(data)
	r.skip(4) // version
	n, err := r.readU16()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
